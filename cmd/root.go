// Package cmd implements the mlnotes command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/viant/mlnotes/config"
	"github.com/viant/mlnotes/logging"
)

// app carries state shared by every subcommand once the root has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.SugaredLogger
}

// NewRootCommand builds the mlnotes command tree.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: config.Default(), log: logging.Nop()}
	root := &cobra.Command{
		Use:           "mlnotes",
		Short:         "k-nearest-neighbor classification and classic ML formulas",
		SilenceUsage:  true, // don't print usage on operational errors
		SilenceErrors: true,
		Long: `mlnotes classifies feature vectors by majority vote of their k nearest
training examples, and evaluates the small formulas that go with it:
Bayes' posterior, entropy, neuron activation and linear regression.`,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newClassifyCmd(a),
		newNormalizeCmd(a),
		newImportCmd(a),
		newSQLCmd(a),
		newPosteriorCmd(),
		newEntropyCmd(),
		newActivateCmd(),
		newRegressCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute is called by main.go.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mlnotes:", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = a.logLevel
	}
	log, err := logging.NewWriter(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	if a.configPath != "" {
		log.Debugw("config loaded", "path", a.configPath)
	}
	return nil
}
