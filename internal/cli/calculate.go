package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/carbonwise/carbonwise/internal/footprint"
	"github.com/carbonwise/carbonwise/internal/report"
)

// calculation is the machine-readable output of the calculate command.
type calculation struct {
	ID      string            `json:"id" yaml:"id"`
	Result  *footprint.Result `json:"result" yaml:"result"`
	Summary report.Summary    `json:"summary" yaml:"summary"`
}

func newCalculateCmd(a *app) *cobra.Command {
	var (
		input       string
		output      string
		useDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the footprint for a questionnaire file",
		Long: `Reads a questionnaire as YAML or JSON (chosen by file extension; "-" reads YAML
from stdin) and prints the annual footprint, its breakdown and the top recommendations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output, formatTable, formatJSON, formatYAML)
			if err != nil {
				return err
			}

			in, err := readInput(cmd.InOrStdin(), input, useDefaults)
			if err != nil {
				return err
			}

			calc, err := a.service.Calculate(cmd.Context(), in)
			if err != nil {
				return err
			}

			a.logger.Debug().
				Str("calculation_id", calc.ID).
				Float64("total_kg", calc.Result.TotalEmissions).
				Msg("footprint calculated")

			out := calculation{ID: calc.ID, Result: calc.Result, Summary: report.Build(calc.Result)}
			switch format {
			case formatJSON:
				return writeJSON(cmd.OutOrStdout(), out)
			case formatYAML:
				return writeYAML(cmd.OutOrStdout(), out)
			default:
				return renderReport(cmd.OutOrStdout(), calc.Result, out.Summary)
			}
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", `questionnaire file ("-" for stdin)`)
	cmd.Flags().StringVarP(&output, "output", "o", string(formatTable), "output format: table, json or yaml")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "fill omitted questions from the default questionnaire")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// readInput decodes a questionnaire, rejecting unknown keys.
func readInput(stdin io.Reader, path string, useDefaults bool) (footprint.Input, error) {
	var in footprint.Input
	if useDefaults {
		in = footprint.DefaultInput()
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return in, fmt.Errorf("read input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return in, errors.New("input is empty")
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&in)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&in)
	}
	if err != nil {
		return in, fmt.Errorf("parse input %s: %w", path, err)
	}
	return in, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
