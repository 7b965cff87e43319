// Package cli implements the footprint command-line tool.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carbonwise/carbonwise/internal/footprint"
)

// app carries state resolved by the root command for its subcommands.
type app struct {
	logger      zerolog.Logger
	service     *footprint.Service
	factorsPath string
	debug       bool
}

// NewRootCmd creates the root command for the footprint CLI.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:     "footprint",
		Short:   "Household carbon footprint calculator",
		Long:    "footprint estimates annual household emissions in kg CO2e and suggests reductions.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = newLogger(cmd, a.debug)
			return a.init()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&a.factorsPath, "factors", os.Getenv("FACTORS_PATH"),
		"YAML file overriding the default emission factors")

	cmd.AddCommand(newCalculateCmd(a), newDefaultsCmd(), newFactorsCmd(a))
	return cmd
}

const rootCmdExample = `  # Calculate from a questionnaire file
  footprint calculate --input household.yaml

  # Fill unanswered questions with defaults and emit JSON
  footprint calculate --input partial.json --defaults --output json

  # Start from the default questionnaire
  footprint defaults > household.yaml

  # Show the factors in effect
  footprint factors --factors factors.yaml`

func (a *app) init() error {
	engineCfg := footprint.EngineConfig{}
	if a.factorsPath != "" {
		factors, err := footprint.LoadFactors(a.factorsPath)
		if err != nil {
			return err
		}
		engineCfg.Factors = &factors
		a.logger.Debug().Str("path", a.factorsPath).Msg("emission factors loaded")
	}

	engine, err := footprint.NewEngine(engineCfg)
	if err != nil {
		return err
	}
	a.service, err = footprint.NewService(footprint.ServiceConfig{Engine: engine, Logger: a.logger})
	return err
}

// newLogger writes human-readable logs to stderr. --debug wins over LOG_LEVEL.
func newLogger(cmd *cobra.Command, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(env)); err == nil {
			level = parsed
		}
	}
	if debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: !isWriterTerminal(cmd.ErrOrStderr())}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("component", "cli").
		Logger()
}

func isWriterTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outputFormat selects how results are written.
type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseOutputFormat(s string, allowed ...outputFormat) (outputFormat, error) {
	names := make([]string, 0, len(allowed))
	for _, f := range allowed {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unsupported output format %q (want one of %s)", s, strings.Join(names, ", "))
}
