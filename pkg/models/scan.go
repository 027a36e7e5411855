package models

// ScanRecord is one (order, handling unit) reading taken on the line.
// Rows are append-only: the classifier creates them, nothing updates them.
type ScanRecord struct {
	ID          int64  `json:"id"`
	RecordedAt  string `json:"recorded_date_time"`
	OrderNumber int64  `json:"order_number"`
	ClpNumber   int64  `json:"clp_number"`
	Status      bool   `json:"status"`
}

// ScanView is the shape pushed to the recent-scans topic: same record with
// the status rendered for dashboards instead of the raw boolean.
type ScanView struct {
	ID          int64  `json:"id"`
	RecordedAt  string `json:"recorded_date_time"`
	OrderNumber int64  `json:"order_number"`
	ClpNumber   int64  `json:"clp_number"`
	Status      string `json:"status"` // "OK" or "NOK"
}

func (s ScanRecord) View() ScanView {
	status := "NOK"
	if s.Status {
		status = "OK"
	}
	return ScanView{
		ID:          s.ID,
		RecordedAt:  s.RecordedAt,
		OrderNumber: s.OrderNumber,
		ClpNumber:   s.ClpNumber,
		Status:      status,
	}
}
