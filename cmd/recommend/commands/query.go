package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"travelrec/internal/service"
)

// noQueryResult is printed when query is run without text
var noQueryResult = map[string]any{
	"success": false,
	"error":   "No query provided",
}

func newQueryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query [text...]",
		Short: "Answer one query and print the result as JSON",
		Long: `Answer one query and print exactly one JSON object on stdout.
Diagnostics go to stderr. The exit code is 0 whenever a result object was
printed, including success=false results.`,
		Example: `  recommend query "cheap Italian restaurants in Bandra"
  recommend --data-dir ./data query best hotels in Juhu`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, strings.TrimSpace(strings.Join(args, " ")))
		},
	}
}

func runQuery(cmd *cobra.Command, opts *options, query string) error {
	if query == "" {
		return writeJSON(cmd, noQueryResult)
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return writeJSON(cmd, service.FailureResponse(query, fmt.Errorf("invalid configuration: %w", err)))
	}

	engine, logger, err := newEngine(cmd.Context(), cmd, cfg)
	if err != nil {
		return writeJSON(cmd, service.FailureResponse(query, err))
	}
	defer engine.Close()

	resp := engine.Evaluator.Evaluate(cmd.Context(), query)
	logger.Debug().
		Bool("success", resp.Success).
		Str("category", resp.Category).
		Int("count", resp.Count).
		Msg("Query answered")

	return writeJSON(cmd, resp)
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
