package main

import (
	"errors"
	"io"

	"github.com/logicossoftware/go-esp"
	"github.com/spf13/cobra"
)

type validation struct {
	File      string `json:"file"`
	Valid     bool   `json:"valid"`
	Truncated bool   `json:"truncated,omitempty"`
	Format    bool   `json:"format_error,omitempty"`
	Error     string `json:"error,omitempty"`
}

var errInvalid = errors.New("plugin is invalid")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plugin>",
		Short: "Decode a plugin strictly and report whether it is well formed",
		Long: `The validate command decodes with unknown subrecords rejected and exact
subrecord lengths enforced. It exits non-zero when the plugin is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.decode(args[0], esp.WithUnknownSubrecords(esp.RejectUnknown), esp.WithStrictSubrecords(true))
			v := validation{File: args[0], Valid: err == nil}
			if err != nil {
				v.Error = err.Error()
				v.Format = esp.IsFormatError(err)
				v.Truncated = errors.Is(err, io.ErrUnexpectedEOF)
			}
			if a.jsonOut {
				if perr := a.printJSON(v); perr != nil {
					return perr
				}
			} else if v.Valid {
				a.printf("%s: valid\n", v.File)
			} else {
				a.printf("%s: invalid: %s\n", v.File, v.Error)
			}
			if !v.Valid {
				return errInvalid
			}
			return nil
		},
	}
}
