package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/logicossoftware/go-esp"
	"github.com/spf13/cobra"
)

type recordRow struct {
	FormID   string `json:"form_id"`
	Kind     string `json:"kind"`
	EditorID string `json:"editor_id,omitempty"`
	Flags    string `json:"flags"`
}

func rowOf(f esp.Form) recordRow {
	return recordRow{
		FormID:   fmt.Sprintf("%08X", f.FormID()),
		Kind:     f.Kind().String(),
		EditorID: f.EditorID(),
		Flags:    fmt.Sprintf("0x%08x", uint32(f.Flags())),
	}
}

func newRecordsCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "records <plugin>",
		Short: "List records with their form ids and editor ids",
		Long: `The records command lists every decoded record in file order.

Example:
  espdump records Skyrim.esm
  espdump records Skyrim.esm --kind GMST --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(args[0])
			if err != nil {
				return err
			}
			kinds := p.Kinds()
			if kind != "" {
				tag, err := esp.TagOf(strings.ToUpper(kind))
				if err != nil {
					return err
				}
				kinds = []esp.RecordType{tag.RecordType()}
			}
			var rows []recordRow
			for _, k := range kinds {
				g, ok := p.Group(k)
				if !ok {
					continue
				}
				for _, f := range g.Forms() {
					rows = append(rows, rowOf(f))
				}
			}
			if a.jsonOut {
				if rows == nil {
					rows = []recordRow{}
				}
				return a.printJSON(rows)
			}
			for _, r := range rows {
				a.printf("%s %s %s %s\n", r.FormID, r.Kind, r.Flags, r.EditorID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only list records of this type code (e.g. KYWD)")
	return cmd
}

func newRecordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "record <plugin> <formid>",
		Short: "Dump one record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseFormID(args[1])
			if err != nil {
				return err
			}
			p, err := a.decode(args[0])
			if err != nil {
				return err
			}
			f, ok := p.Record(id)
			if !ok {
				return fmt.Errorf("no record with form id %08X", id)
			}
			return a.printJSON(f)
		},
	}
}

func parseFormID(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid form id %q: %w", s, err)
	}
	return uint32(v), nil
}
