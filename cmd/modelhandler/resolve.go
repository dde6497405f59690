package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelhandler/internal/resolver"
)

var flagShowPath bool

var resolveCmd = &cobra.Command{
	Use:   "resolve [dir]",
	Short: "Print the backend identifier of an artifact directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&flagShowPath, "path", false, "Also print the definition file path")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := cfg.ModelDir
	if len(args) == 1 {
		dir = args[0]
	}

	artifact, err := resolver.Find(dir, cfg.BackendSuffix)
	if err != nil {
		return err
	}

	if flagShowPath {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", artifact.Name, artifact.Path)
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), artifact.Name)
	return err
}
