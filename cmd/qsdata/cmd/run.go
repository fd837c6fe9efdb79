package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asaidimu/go-qsdata/core/engine"
)

func newRunCommand(a *app) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "run <operation> [json|-]",
		Short: "Run a single operation",
		Long: `Runs an operation with a JSON object of arguments, read from stdin
when omitted or "-". Prints the output as JSON.

Examples:
  qsdata run anagram '{"a": "listen", "b": "silent"}'
  qsdata run filter_above '{"records": [{"age": 31}], "key": "age", "threshold": 30}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 1)
			if err != nil {
				return err
			}
			e, err := a.newEngine()
			if err != nil {
				return err
			}

			res, err := e.Execute(cmd.Context(), engine.Invocation{
				Operation: args[0],
				Args:      json.RawMessage(bytes.TrimSpace(input)),
			})
			if err != nil {
				return err
			}
			if full {
				return printJSON(cmd, res)
			}
			return printJSON(cmd, res.Output)
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print the whole result including id and duration")
	return cmd
}

func newBatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Run a JSON array of invocations concurrently",
		Long: `Runs every invocation of a JSON array concurrently:

  [{"operation": "compress", "args": {"text": "aaa"}}, {"operation": "prime_factors", "args": {"n": 12}}]

Failures are reported per invocation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 1 && args[0] != "-" {
				data, err = readFile(args[0])
			} else {
				data, err = readInput(cmd, args, 0)
			}
			if err != nil {
				return err
			}

			var invs []engine.Invocation
			if err := json.Unmarshal(data, &invs); err != nil {
				return fmt.Errorf("malformed batch: %w", err)
			}
			e, err := a.newEngine()
			if err != nil {
				return err
			}
			results, err := e.ExecuteBatch(cmd.Context(), invs)
			if err != nil {
				return err
			}
			return printJSON(cmd, results)
		},
	}
}
