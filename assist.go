package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/rentlink/modules/assistant"
)

func describeCmd() *cobra.Command {
	var in assistant.DescriptionInput
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Generate a listing description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, closeLogs, err := setup(cmd)
			if err != nil {
				return err
			}
			defer closeLogs()

			if strings.TrimSpace(in.Location) == "" {
				return fmt.Errorf("--location is required")
			}
			provider, err := assistant.NewProvider(cmd.Context(), cfg.APIKey, cfg.Model)
			if err != nil {
				return err
			}
			text, err := provider.GenerateDescription(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Type, "type", "Apartment", "property type")
	cmd.Flags().StringVar(&in.Location, "location", "", "listing location")
	cmd.Flags().IntVar(&in.Bedrooms, "bedrooms", 1, "number of bedrooms")
	cmd.Flags().StringVar(&in.Highlights, "highlights", assistant.DefaultHighlights, "comma separated highlights")
	return cmd
}

func interpretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interpret <query>",
		Short: "Turn a free-text search into a short filter label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, closeLogs, err := setup(cmd)
			if err != nil {
				return err
			}
			defer closeLogs()

			provider, err := assistant.NewProvider(cmd.Context(), cfg.APIKey, cfg.Model)
			if err != nil {
				return err
			}
			label, err := provider.InterpretSearch(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}
