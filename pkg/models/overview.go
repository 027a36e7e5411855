package models

// DailyOverview is the per-day aggregate pushed to the daily-overview topic
// after every ingested scan. It is derived, never persisted.
//
// Latest* are nil when the day has no scans yet.
type DailyOverview struct {
	TotalBoxes        int64  `json:"total_boxes"`
	OkCount           int64  `json:"ok_count"`
	NotOkCount        int64  `json:"not_ok_count"`
	LatestClpNumber   *int64 `json:"latest_clp_number"`
	LatestOrderNumber *int64 `json:"latest_order_number"`
	ExpectedCount     int64  `json:"expected_count"`
}
