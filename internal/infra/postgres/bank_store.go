package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"trivia-service/internal/domain"
	pgmigrations "trivia-service/internal/infra/postgres/migrations"
)

// BankLoader loads bank JSONB from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, code string) (domain.Bank, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE code=$1`, code).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, code)
		}
		return domain.Bank{}, fmt.Errorf("load bank: %w", err)
	}
	var bank domain.Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("unmarshal bank: %w", err)
	}
	return bank, nil
}

// BankWriter stores banks through bun.
type BankWriter struct {
	db *bun.DB
}

// OpenBankWriter connects bun to the Postgres DSN. Callers must Close it.
func OpenBankWriter(dsn string) *BankWriter {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &BankWriter{db: bun.NewDB(sqldb, pgdialect.New())}
}

func (w *BankWriter) Close() error {
	return w.db.Close()
}

// Migrate applies all pending migrations and returns the group that ran.
func (w *BankWriter) Migrate(ctx context.Context) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(w.db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, err
	}
	return migrator.Migrate(ctx)
}

// Upsert validates bank and inserts or replaces it by code.
func (w *BankWriter) Upsert(ctx context.Context, bank domain.Bank) error {
	if err := bank.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(bank)
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	_, err = w.db.ExecContext(ctx,
		`INSERT INTO question_banks (code, kind, data, updated_at) VALUES (?, ?, ?::jsonb, now())
		 ON CONFLICT (code) DO UPDATE SET kind=EXCLUDED.kind, data=EXCLUDED.data, updated_at=now()`,
		bank.Code, string(bank.Kind), string(data))
	if err != nil {
		return fmt.Errorf("upsert bank %s: %w", bank.Code, err)
	}
	return nil
}
