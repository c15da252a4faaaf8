package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/buildergen/compiler/gen"
)

// NewDescribeCmd returns the command printing the classified records.
func NewDescribeCmd(verbose *bool) *cobra.Command {
	var (
		f      = &flags{verbose: verbose}
		output string
	)
	cmd := &cobra.Command{
		Use:   "describe [dir]",
		Short: "`describe` prints the classified fields of the records in a package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.args(args)
			graph, err := f.graph(cmd.Context())
			if err != nil {
				return err
			}
			return writeDescription(cmd.OutOrStdout(), output, graph.Describe())
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func writeDescription(w io.Writer, format string, ds []*gen.Description) error {
	switch format {
	case "json":
		buf, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(buf, '\n'))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}
