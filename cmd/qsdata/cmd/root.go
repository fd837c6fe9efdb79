// Package cmd implements the qsdata command line.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asaidimu/go-qsdata/core/config"
	"github.com/asaidimu/go-qsdata/core/engine"
)

// app carries the state shared by every command of one invocation.
type app struct {
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the complete command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "qsdata",
		Short: "Record, sequence and string algorithms",
		Long: `qsdata runs its data algorithms from the command line.

Every algorithm is a named operation taking a JSON object of arguments:

  qsdata ops
  qsdata run compress '{"text": "aabcccccaaa"}'
  echo '{"n": 28}' | qsdata run prime_factors -`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML or YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides the config file")

	root.AddCommand(
		newOpsCommand(a),
		newRunCommand(a),
		newBatchCommand(a),
		newQueryCommand(a),
		newImportCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) newEngine() (*engine.Engine, error) {
	return engine.NewEngine(a.logger.Named("engine"), a.cfg.EngineOptions()...)
}

// readInput returns arg, or stdin when arg is "-" or absent.
func readInput(cmd *cobra.Command, args []string, index int) ([]byte, error) {
	if len(args) <= index || args[index] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	return []byte(args[index]), nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
