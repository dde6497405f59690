package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelhandler/internal/backend"
	"github.com/ekisa-team/modelhandler/internal/env"
	"github.com/ekisa-team/modelhandler/internal/handler"
	"github.com/ekisa-team/modelhandler/internal/logger"
	"github.com/ekisa-team/modelhandler/internal/table"
)

var (
	flagInput  string
	flagPretty bool
)

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Run the backend once on a request body",
	Long:  "Run the backend once on a request body read from a file or stdin and print the records.",
	Args:  cobra.NoArgs,
	RunE:  runInvoke,
}

func init() {
	invokeCmd.Flags().StringVarP(&flagInput, "input", "i", "-", "Request body file, - for stdin")
	invokeCmd.Flags().BoolVar(&flagPretty, "pretty", false, "Render the result as a table")
	rootCmd.AddCommand(invokeCmd)
}

func runInvoke(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	body, err := readInput(cmd.InOrStdin(), flagInput)
	if err != nil {
		return err
	}

	log := logger.New(env.FromEnv(),
		logger.WithLevel(logger.ParseLevel(cfg.Log.Level)),
		logger.WithOutput(cmd.ErrOrStderr()),
	)
	h := handler.New(backend.Default(),
		handler.WithSuffix(cfg.BackendSuffix),
		handler.WithLogger(log),
	)

	var req backend.Request
	if len(body) > 0 {
		req = backend.NewRequest(body, map[string]string{"Content-Type": "application/json"})
	}

	out, err := h.Dispatch(cmd.Context(), req, handler.Properties{Dir: cfg.ModelDir})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	if !flagPretty {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}

	result, err := table.FromJSON(out)
	if err != nil {
		return err
	}
	renderTable(cmd.OutOrStdout(), result)
	return nil
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
