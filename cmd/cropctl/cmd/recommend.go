package cmd

import (
	"github.com/spf13/cobra"
)

func recommendCmd() *cobra.Command {
	var farm farmFlags

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend crops for a farm",
		Long: "Send a farm description to the server and print the recommended crops\n" +
			"by category. The result source is fresh, cached, or fallback when the\n" +
			"model could not be reached.",
		Example: `  cropctl recommend --location Nairobi --land-size 10 --soil Loamy \
    --water rainfed --budget 1000 --priority profit

  cropctl recommend --file farm.json --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := farm.farm()
			if err != nil {
				return err
			}
			rec, err := newClient().Recommend(cmd.Context(), raw)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), rec)
			}
			return printRecommendation(cmd.OutOrStdout(), rec)
		},
	}

	farm.register(cmd)
	return cmd
}
