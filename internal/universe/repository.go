package universe

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the ticker roster in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE tickers (
//	    position INTEGER PRIMARY KEY,
//	    symbol   TEXT NOT NULL UNIQUE
//	);
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new roster repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Load returns all ticker symbols in roster order.
func (r *Repository) Load(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT symbol FROM tickers ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tickers: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickers: %w", err)
	}

	return symbols, nil
}

// Count returns the number of stored tickers.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tickers: %w", err)
	}
	return count, nil
}

// Replace swaps the stored roster for the given symbols in one transaction,
// preserving the slice order as roster order.
func (r *Repository) Replace(ctx context.Context, symbols []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tickers`); err != nil {
		return fmt.Errorf("clear tickers: %w", err)
	}

	batch := &pgx.Batch{}
	for i, symbol := range symbols {
		batch.Queue(`INSERT INTO tickers (position, symbol) VALUES ($1, $2)`, i, symbol)
	}

	results := tx.SendBatch(ctx, batch)
	for range symbols {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert ticker: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close ticker batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit roster replace: %w", err)
	}

	return nil
}
