package cli

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"trivia-service/internal/config"
	"trivia-service/internal/infra/file"
	pgstore "trivia-service/internal/infra/postgres"
)

// NewSeedCmd loads the YAML question banks into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Validate YAML question banks and upsert them into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "bank directory (overrides banks.dir)")
	return cmd
}

func runSeed(ctx context.Context, configPath, dirFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	dir := dirFlag
	if dir == "" {
		dir = cfg.BanksDir()
	}
	banks, err := file.NewBankLoader(dir).LoadAll(ctx)
	if err != nil {
		return err
	}

	writer := pgstore.OpenBankWriter(cfg.Postgres.URL)
	defer writer.Close()

	for _, bank := range banks {
		if err := writer.Upsert(ctx, bank); err != nil {
			return err
		}
		log.Printf("seeded bank %s (%d entries)", bank.Code, bank.Len())
	}
	log.Printf("seeded %d banks from %s", len(banks), dir)
	return nil
}
