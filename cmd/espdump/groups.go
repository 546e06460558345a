package main

import (
	"github.com/spf13/cobra"
)

type groupRow struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Records int    `json:"records"`
	Size    uint32 `json:"size"`
}

func newGroupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groups <plugin>",
		Short: "List the top-level groups of a plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.decode(args[0])
			if err != nil {
				return err
			}
			rows := make([]groupRow, 0, len(p.Groups))
			for _, kind := range p.Kinds() {
				g, _ := p.Group(kind)
				rows = append(rows, groupRow{
					Kind:    kind.String(),
					Name:    kind.Name(),
					Records: g.Len(),
					Size:    g.GroupHeader().Size,
				})
			}
			if a.jsonOut {
				return a.printJSON(rows)
			}
			for _, r := range rows {
				a.printf("%s  %-16s %6d records %10d bytes\n", r.Kind, r.Name, r.Records, r.Size)
			}
			return nil
		},
	}
}
