package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/logicossoftware/go-esp"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

type fileConfig struct {
	Paths struct {
		DataPath string `toml:"data_path"`
	} `toml:"paths"`
	Decode struct {
		UnknownSubrecords string `toml:"unknown_subrecords"`
		StrictSubrecords  bool   `toml:"strict_subrecords"`
		StringEncoding    string `toml:"string_encoding"`
		Compression       string `toml:"compression"`
	} `toml:"decode"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// envConfig overrides the settings file. Empty values leave the file setting alone.
type envConfig struct {
	DataPath          string `env:"ESPDUMP_DATA_PATH"`
	UnknownSubrecords string `env:"ESPDUMP_UNKNOWN_SUBRECORDS"`
	StrictSubrecords  string `env:"ESPDUMP_STRICT_SUBRECORDS"`
	StringEncoding    string `env:"ESPDUMP_STRING_ENCODING"`
	Compression       string `env:"ESPDUMP_COMPRESSION"`
	LogLevel          string `env:"ESPDUMP_LOG_LEVEL"`
}

type settings struct {
	DataPath     string
	Unknown      esp.UnknownPolicy
	Strict       bool
	EncodingName string
	Encoding     encoding.Encoding
	Compression  esp.Compression
	LogLevel     zerolog.Level
}

func defaultSettings() settings {
	return settings{
		Unknown:     esp.SkipUnknown,
		Compression: esp.CompZlib,
		LogLevel:    zerolog.WarnLevel,
	}
}

// loadSettings reads the TOML file at path (skipped when empty) and then applies
// environment overrides. environ replaces the process environment when non-nil.
func loadSettings(path string, environ map[string]string) (settings, error) {
	s := defaultSettings()

	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return settings{}, fmt.Errorf("load espdump config: %w", err)
		}
		if meta.IsDefined("paths", "data_path") {
			s.DataPath = strings.TrimSpace(raw.Paths.DataPath)
		}
		if meta.IsDefined("decode", "unknown_subrecords") {
			if s.Unknown, err = parsePolicy(raw.Decode.UnknownSubrecords); err != nil {
				return settings{}, err
			}
		}
		if meta.IsDefined("decode", "strict_subrecords") {
			s.Strict = raw.Decode.StrictSubrecords
		}
		if meta.IsDefined("decode", "string_encoding") {
			if err := s.setEncoding(raw.Decode.StringEncoding); err != nil {
				return settings{}, err
			}
		}
		if meta.IsDefined("decode", "compression") {
			if s.Compression, err = esp.ParseCompression(raw.Decode.Compression); err != nil {
				return settings{}, err
			}
		}
		if meta.IsDefined("log", "level") {
			if s.LogLevel, err = zerolog.ParseLevel(strings.TrimSpace(raw.Log.Level)); err != nil {
				return settings{}, fmt.Errorf("parse log level: %w", err)
			}
		}
	}

	var e envConfig
	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return settings{}, fmt.Errorf("parse env: %w", err)
	}
	var err error
	if e.DataPath != "" {
		s.DataPath = e.DataPath
	}
	if e.UnknownSubrecords != "" {
		if s.Unknown, err = parsePolicy(e.UnknownSubrecords); err != nil {
			return settings{}, err
		}
	}
	if e.StrictSubrecords != "" {
		if s.Strict, err = strconv.ParseBool(e.StrictSubrecords); err != nil {
			return settings{}, fmt.Errorf("parse ESPDUMP_STRICT_SUBRECORDS: %w", err)
		}
	}
	if e.StringEncoding != "" {
		if err := s.setEncoding(e.StringEncoding); err != nil {
			return settings{}, err
		}
	}
	if e.Compression != "" {
		if s.Compression, err = esp.ParseCompression(e.Compression); err != nil {
			return settings{}, err
		}
	}
	if e.LogLevel != "" {
		if s.LogLevel, err = zerolog.ParseLevel(e.LogLevel); err != nil {
			return settings{}, fmt.Errorf("parse ESPDUMP_LOG_LEVEL: %w", err)
		}
	}
	return s, nil
}

func parsePolicy(v string) (esp.UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "skip":
		return esp.SkipUnknown, nil
	case "reject":
		return esp.RejectUnknown, nil
	default:
		return 0, fmt.Errorf("unknown subrecord policy %q (want skip or reject)", v)
	}
}

// setEncoding selects a code page by IANA name. UTF-8 keeps strict validation.
func (s *settings) setEncoding(name string) error {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		s.EncodingName, s.Encoding = "", nil
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return fmt.Errorf("string encoding %q: %w", name, err)
	}
	if enc == nil {
		return fmt.Errorf("string encoding %q is not supported", name)
	}
	s.EncodingName, s.Encoding = name, enc
	return nil
}

func (s settings) readOptions(logger zerolog.Logger) []esp.ReadOption {
	opts := []esp.ReadOption{
		esp.WithUnknownSubrecords(s.Unknown),
		esp.WithStrictSubrecords(s.Strict),
		esp.WithRecordCompression(s.Compression),
		esp.WithLogger(logger),
	}
	if s.Encoding != nil {
		opts = append(opts, esp.WithStringEncoding(s.Encoding))
	}
	return opts
}

// resolve joins relative plugin paths onto the data directory.
func (s settings) resolve(plugin string) string {
	if s.DataPath == "" || filepath.IsAbs(plugin) {
		return plugin
	}
	return filepath.Join(s.DataPath, plugin)
}
