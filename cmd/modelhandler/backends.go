package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelhandler/internal/backend"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the registered backends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range backend.Default().Names() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
