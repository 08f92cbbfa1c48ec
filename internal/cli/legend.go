package cli

import (
	"github.com/spf13/cobra"
	"github.com/yildizm/sentimoji/internal/formatter"
)

func newLegendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Show the sentiment rating scale",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := formatter.FormatLegend(getOutputFormat(), isColorEnabled())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
