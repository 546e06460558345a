package main

import (
	"github.com/logicossoftware/go-esp"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <plugin>",
		Short: "Show the file header of a plugin",
		Long: `The info command decodes a plugin and prints its TES4 header: format version,
author, description, master and flags, plus a count of decoded groups and records.

Example:
  espdump info Skyrim.esm
  espdump info Update.esm --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(args[0])
			if err != nil {
				return err
			}
			info := summarize(args[0], p)
			if a.jsonOut {
				return a.printJSON(info)
			}
			a.printf("Plugin: %s\n", info.File)
			a.printf("  Version:     %.2f\n", info.Version)
			a.printf("  Author:      %s\n", info.Author)
			a.printf("  Description: %s\n", info.Description)
			a.printf("  Master:      %s\n", info.Master)
			a.printf("  Flags:       master=%t localized=%t light=%t\n", info.IsMaster, info.Localized, info.Light)
			a.printf("  Groups:      %d\n", info.Groups)
			a.printf("  Records:     %d (header declares %d)\n", info.Records, info.DeclaredRecords)
			return nil
		},
	}
}

type pluginInfo struct {
	File            string  `json:"file"`
	Version         float32 `json:"version"`
	Author          string  `json:"author,omitempty"`
	Description     string  `json:"description,omitempty"`
	Master          string  `json:"master,omitempty"`
	IsMaster        bool    `json:"is_master"`
	Localized       bool    `json:"localized"`
	Light           bool    `json:"light"`
	Groups          int     `json:"groups"`
	Records         int     `json:"records"`
	DeclaredRecords int32   `json:"declared_records"`
}

func summarize(file string, p *esp.Plugin) pluginInfo {
	h := p.Header
	info := pluginInfo{
		File:        file,
		Author:      h.Data.Author(),
		Description: h.Data.Description(),
		Master:      h.Data.Master(),
		IsMaster:    h.Header.Flags.Has(esp.PluginMaster),
		Localized:   p.Localized(),
		Light:       h.Header.Flags.Has(esp.PluginLight),
		Groups:      len(p.Groups),
		Records:     p.Len(),
	}
	if h.Data.HEDR != nil {
		info.Version = h.Data.HEDR.Data.Version
		info.DeclaredRecords = h.Data.HEDR.Data.NumRecords
	}
	return info
}
