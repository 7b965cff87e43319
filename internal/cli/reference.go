package cli

import (
	"github.com/spf13/cobra"

	"github.com/carbonwise/carbonwise/internal/footprint"
)

func newDefaultsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output, formatYAML, formatJSON)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), footprint.DefaultInput())
			}
			return writeYAML(cmd.OutOrStdout(), footprint.DefaultInput())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(formatYAML), "output format: yaml or json")
	return cmd
}

func newFactorsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Print the emission factors in effect",
		Long:  "Prints the default factors, or the result of applying --factors on top of them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output, formatYAML, formatJSON)
			if err != nil {
				return err
			}
			factors := a.service.Engine().Factors()
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), factors)
			}
			return writeYAML(cmd.OutOrStdout(), factors)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(formatYAML), "output format: yaml or json")
	return cmd
}
