package models

// Pair is an (order_number, clp_number) identity. Scans and expected
// manifest rows are compared on exact pair equality only.
type Pair struct {
	OrderNumber int64 `json:"order_number"`
	ClpNumber   int64 `json:"clp_number"`
}
