package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/crop-advisor/internal/api/client"
)

func profilesCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage saved farm profiles",
		Long: "Manage saved farm descriptions, request recommendations for them,\n" +
			"and review what was served. Requires a server with a database.",
	}

	root.AddCommand(
		profilesListCmd(),
		profilesGetCmd(),
		profilesCreateCmd(),
		profilesDeleteCmd(),
		profilesRecommendCmd(),
		profilesHistoryCmd(),
	)

	return root
}

func profilesListCmd() *cobra.Command {
	var params apiclient.ListProfilesParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Example: `  cropctl profiles list
  cropctl profiles list --soil Clay --priority profit --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ListProfiles(cmd.Context(), &params)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			if len(resp.Profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles found.")
				return nil
			}
			if err := printProfilesTable(cmd.OutOrStdout(), resp.Profiles); err != nil {
				return err
			}
			if resp.Total > len(resp.Profiles) {
				fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d profiles.\n", len(resp.Profiles), resp.Total)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&params.SoilType, "soil", "", "filter by soil type")
	fs.StringVar(&params.FarmingPriority, "priority", "", "filter by farming priority")
	fs.StringVar(&params.Name, "name", "", "filter by name substring")
	fs.IntVar(&params.Limit, "limit", 0, "maximum number of profiles")
	fs.IntVar(&params.Offset, "offset", 0, "pagination offset")
	return cmd
}

func profilesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show profile details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newClient().GetProfile(cmd.Context(), args[0])
			if err != nil {
				return notFound(err, args[0])
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), p)
			}
			return printProfileDetail(cmd.OutOrStdout(), p)
		},
	}
}

func profilesCreateCmd() *cobra.Command {
	var (
		name string
		farm farmFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Save a farm profile",
		Example: `  cropctl profiles create --name "North plot" --location Nakuru \
    --land-size 4 --soil "Black Cotton" --water 18 --budget 600`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			raw, err := farm.farm()
			if err != nil {
				return err
			}
			p, err := newClient().CreateProfile(cmd.Context(), name, raw)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile created: %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "profile name (required)")
	farm.register(cmd)
	return cmd
}

func profilesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeleteProfile(cmd.Context(), args[0]); err != nil {
				return notFound(err, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s deleted.\n", args[0])
			return nil
		},
	}
}

func profilesRecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <id>",
		Short: "Recommend crops for a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := newClient().RecommendProfile(cmd.Context(), args[0])
			if err != nil {
				return notFound(err, args[0])
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), rec)
			}
			return printRecommendation(cmd.OutOrStdout(), rec)
		},
	}
}

func profilesHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "List recommendations served for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := newClient().ListHistory(cmd.Context(), args[0], limit)
			if err != nil {
				return notFound(err, args[0])
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recommendations recorded.")
				return nil
			}
			return printHistoryTable(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries (default 20)")
	return cmd
}

func notFound(err error, id string) error {
	if apiclient.IsNotFound(err) {
		return fmt.Errorf("profile %s not found", id)
	}
	return err
}
