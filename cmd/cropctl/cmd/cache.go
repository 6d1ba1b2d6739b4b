package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/crop-advisor/internal/api/client"
)

func cacheCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the recommendation cache",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "get <fingerprint>",
			Short: "Show the cached result for a fingerprint",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := newClient().GetCachedResult(cmd.Context(), args[0])
				if err != nil {
					if apiclient.IsNotFound(err) {
						return fmt.Errorf("no cached result for %s", args[0])
					}
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), res)
				}
				return printResult(cmd.OutOrStdout(), res)
			},
		},
		&cobra.Command{
			Use:   "evict <fingerprint>",
			Short: "Remove a cached result so the next request calls the model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := newClient().EvictCachedResult(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Evicted %s.\n", args[0])
				return nil
			},
		},
	)

	return root
}
