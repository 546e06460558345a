package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/logicossoftware/go-esp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries the global flags and the resolved settings of one invocation.
type app struct {
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
	configPath string

	out      io.Writer
	settings settings
	logger   zerolog.Logger
}

func newRootCmd(out io.Writer, environ map[string]string) *cobra.Command {
	a := &app{out: out}
	cmd := &cobra.Command{
		Use:   "espdump",
		Short: "Inspect Bethesda plugin files",
		Long: `espdump decodes ESP/ESM plugin files and reports their header, groups and
records. Relative plugin paths are resolved against data_path from the settings
file or ESPDUMP_DATA_PATH.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(a.configPath, environ)
			if err != nil {
				return err
			}
			a.settings = s
			a.logger = a.newLogger()
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored log output")
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("ESPDUMP_CONFIG"), "Settings file (TOML)")

	cmd.AddCommand(
		newInfoCmd(a),
		newGroupsCmd(a),
		newRecordsCmd(a),
		newRecordCmd(a),
		newValidateCmd(a),
	)
	return cmd
}

func execute() {
	if err := newRootCmd(os.Stdout, nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) newLogger() zerolog.Logger {
	level := a.settings.LogLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    a.noColor,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "espdump").Logger()
}

// decode opens a plugin with the configured options. extra options are applied last.
func (a *app) decode(path string, extra ...esp.ReadOption) (*esp.Plugin, error) {
	path = a.settings.resolve(path)
	a.logger.Debug().Str("path", path).Msg("decoding plugin")
	opts := append(a.settings.readOptions(a.logger), extra...)
	return esp.DecodeFile(path, opts...)
}

func (a *app) printf(format string, args ...any) {
	if !a.quiet {
		fmt.Fprintf(a.out, format, args...)
	}
}

func (a *app) printJSON(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
