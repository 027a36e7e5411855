package manifest

import (
	"context"
	"database/sql"
	"fmt"

	"conveyorhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Replace swaps the whole manifest in one transaction: old expected rows
// and count go away, the new rows and their cardinality land together.
// A concurrent reader sees either the old manifest or the new one, never
// an empty or half-written state.
func (r *Repo) Replace(ctx context.Context, pairs []models.Pair) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expected_records`); err != nil {
		return fmt.Errorf("clear expected records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expected_records (order_number, clp_number) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare expected insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pairs {
		if _, err := stmt.ExecContext(ctx, p.OrderNumber, p.ClpNumber); err != nil {
			return fmt.Errorf("insert expected record: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO expected_count (id, expected_count) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET expected_count = excluded.expected_count
	`, len(pairs)); err != nil {
		return fmt.Errorf("set expected count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (r *Repo) ExpectedCount(ctx context.Context) (int64, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT expected_count FROM expected_count WHERE id = 1
	`)

	var count int64
	if err := row.Scan(&count); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("expected count scan: %w", err)
	}
	return count, nil
}

func (r *Repo) Pairs(ctx context.Context) ([]models.Pair, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_number, clp_number FROM expected_records
	`)
	if err != nil {
		return nil, fmt.Errorf("expected pairs query: %w", err)
	}
	defer rows.Close()

	var pairs []models.Pair
	for rows.Next() {
		var p models.Pair
		if err := rows.Scan(&p.OrderNumber, &p.ClpNumber); err != nil {
			return nil, fmt.Errorf("expected pairs scan: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expected pairs rows: %w", err)
	}
	return pairs, nil
}
