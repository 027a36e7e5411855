package scans

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

func (r *Repo) Insert(ctx context.Context, recordedAt string, orderNumber, clpNumber int64, status bool) (models.ScanRecord, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO scans (recorded_at, order_number, clp_number, status)
		VALUES (?, ?, ?, ?)
	`, recordedAt, orderNumber, clpNumber, status)
	if err != nil {
		return models.ScanRecord{}, fmt.Errorf("insert scan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.ScanRecord{}, fmt.Errorf("scan id: %w", err)
	}

	return models.ScanRecord{
		ID:          id,
		RecordedAt:  recordedAt,
		OrderNumber: orderNumber,
		ClpNumber:   clpNumber,
		Status:      status,
	}, nil
}

func (r *Repo) PairExists(ctx context.Context, orderNumber, clpNumber int64) (bool, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM scans WHERE order_number = ? AND clp_number = ?
		)
	`, orderNumber, clpNumber)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("pair exists scan: %w", err)
	}
	return exists, nil
}

// Latest returns the most recent n scans ordered oldest to newest within
// that window, which is the order the dashboards render them in.
func (r *Repo) Latest(ctx context.Context, n int) ([]models.ScanRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, recorded_at, order_number, clp_number, status
		FROM scans
		ORDER BY id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("latest query: %w", err)
	}
	defer rows.Close()

	out := make([]models.ScanRecord, 0, n)
	for rows.Next() {
		var rec models.ScanRecord
		if err := rows.Scan(&rec.ID, &rec.RecordedAt, &rec.OrderNumber, &rec.ClpNumber, &rec.Status); err != nil {
			return nil, fmt.Errorf("latest scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("latest rows: %w", err)
	}

	// query is newest-first; flip to oldest-first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// AllPairs materializes every scanned (order, clp) pair as a set. The
// reconciliation engine builds this once per run and shares it read-only
// across its workers.
func (r *Repo) AllPairs(ctx context.Context) (map[models.Pair]struct{}, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT order_number, clp_number FROM scans
	`)
	if err != nil {
		return nil, fmt.Errorf("all pairs query: %w", err)
	}
	defer rows.Close()

	pairs := make(map[models.Pair]struct{})
	for rows.Next() {
		var p models.Pair
		if err := rows.Scan(&p.OrderNumber, &p.ClpNumber); err != nil {
			return nil, fmt.Errorf("all pairs scan: %w", err)
		}
		pairs[p] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all pairs rows: %w", err)
	}
	return pairs, nil
}
