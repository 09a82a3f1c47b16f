package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"trivia-service/internal/domain"
	"trivia-service/internal/scoring"
)

// NewScoreCmd aggregates section scores read as JSON from a file or stdin.
func NewScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [file]",
		Short: "Aggregate a JSON array of {code, correctness} sections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runScore(in, cmd.OutOrStdout())
		},
	}
}

func runScore(in io.Reader, out io.Writer) error {
	var inputs []domain.SectionScoreInput
	if err := json.NewDecoder(in).Decode(&inputs); err != nil {
		return fmt.Errorf("decode sections: %w", err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(scoring.AggregateScores(inputs))
}
