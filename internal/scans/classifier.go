package scans

import (
	"context"

	"conveyorhub/pkg/models"
)

// Classify decides a scan's OK/NOK status and persists it.
//
// Rules, in order: either number zero is a sentinel scan and is stored NOK;
// a pair already seen is a duplicate and is stored NOK; anything else is OK.
//
// The duplicate check is a read-then-write with no isolation from concurrent
// classifies: two simultaneous submissions of the same new pair can both
// land as OK. Accepted for this workload rather than serializing all line
// traffic through a lock.
func (r *Repo) Classify(ctx context.Context, recordedAt string, orderNumber, clpNumber int64) (models.ScanRecord, error) {
	status := true

	if orderNumber == 0 || clpNumber == 0 {
		status = false
	} else {
		exists, err := r.PairExists(ctx, orderNumber, clpNumber)
		if err != nil {
			return models.ScanRecord{}, err
		}
		if exists {
			status = false
		}
	}

	return r.Insert(ctx, recordedAt, orderNumber, clpNumber, status)
}
