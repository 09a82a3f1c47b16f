package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"trivia-service/internal/scoring"
)

// NewColorCmd prints the display color for each seed argument.
func NewColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <seed>...",
		Short: "Print the HSL color derived from each seed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, seed := range args {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", seed, scoring.SeedToColor(seed)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
