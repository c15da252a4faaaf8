// buildergen generates builder types for Go record structs.
//
// Typical use is a go:generate directive next to the record:
//
//	//go:generate go run github.com/syssam/buildergen/cmd/buildergen generate
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd returns the main command for the 'buildergen' binary.
func NewRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "buildergen",
		Short:         "`buildergen` generates builders for Go record structs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(
		NewGenerateCmd(&verbose),
		NewDescribeCmd(&verbose),
		NewWatchCmd(&verbose),
		NewVersionCmd(),
	)
	return cmd
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
