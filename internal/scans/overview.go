package scans

import (
	"context"
	"database/sql"
	"fmt"

	"conveyorhub/pkg/models"
)

// DayOverview aggregates every scan whose recorded_at starts with day
// ("YYYY-MM-DD"). Day membership is a textual prefix match on the stored
// timestamp, mirroring how the line software formats recorded_at; the
// ingestion handler validates the format at the boundary so the prefix
// stays well-formed.
//
// ExpectedCount is left zero; the caller merges it from the manifest store.
func (r *Repo) DayOverview(ctx context.Context, day string) (models.DailyOverview, error) {
	var ov models.DailyOverview

	row := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(status), 0)
		FROM scans
		WHERE recorded_at LIKE ?
	`, day+"%")
	if err := row.Scan(&ov.TotalBoxes, &ov.OkCount); err != nil {
		return ov, fmt.Errorf("day counts scan: %w", err)
	}
	ov.NotOkCount = ov.TotalBoxes - ov.OkCount

	row = r.DB.QueryRowContext(ctx, `
		SELECT order_number, clp_number
		FROM scans
		WHERE recorded_at LIKE ?
		ORDER BY id DESC
		LIMIT 1
	`, day+"%")

	var orderNumber, clpNumber int64
	switch err := row.Scan(&orderNumber, &clpNumber); err {
	case nil:
		ov.LatestOrderNumber = &orderNumber
		ov.LatestClpNumber = &clpNumber
	case sql.ErrNoRows:
		// no scans for this day yet
	default:
		return ov, fmt.Errorf("day latest scan: %w", err)
	}

	return ov, nil
}
