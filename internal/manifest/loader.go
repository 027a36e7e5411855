package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"conveyorhub/pkg/models"
)

// Column headers as they appear in the planning export. Matching is
// case-insensitive and whitespace-trimmed.
const (
	orderColumn = "Document Number"
	clpColumn   = "Handling Unit"
)

// ErrMissingColumns means the uploaded table lacks a required column; the
// whole load is rejected and the stored manifest stays untouched.
var ErrMissingColumns = errors.New("required columns missing: Document Number, Handling Unit")

// LoadResult reports what a parse actually yielded. SkippedRows holds
// 1-based data-row indices of rows that could not be coerced; those rows
// are dropped, not fatal.
type LoadResult struct {
	Pairs       []models.Pair
	TotalRows   int
	SkippedRows []int
}

// ParseCSV reads the collaborator-exported table into normalized pairs.
// TotalRows counts rows actually parsed, which is what the expected count
// becomes after a replace.
func ParseCSV(r io.Reader) (LoadResult, error) {
	var res LoadResult

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return res, ErrMissingColumns
		}
		return res, fmt.Errorf("read header: %w", err)
	}

	orderIdx, clpIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case strings.ToLower(orderColumn):
			orderIdx = i
		case strings.ToLower(clpColumn):
			clpIdx = i
		}
	}
	if orderIdx < 0 || clpIdx < 0 {
		return res, ErrMissingColumns
	}

	rowNum := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		rowNum++

		pair, ok := parseRow(row, orderIdx, clpIdx)
		if !ok {
			res.SkippedRows = append(res.SkippedRows, rowNum)
			continue
		}
		res.Pairs = append(res.Pairs, pair)
	}

	res.TotalRows = len(res.Pairs)
	return res, nil
}

func parseRow(row []string, orderIdx, clpIdx int) (models.Pair, bool) {
	if orderIdx >= len(row) || clpIdx >= len(row) {
		return models.Pair{}, false
	}

	orderNumber, err := strconv.ParseInt(strings.TrimSpace(row[orderIdx]), 10, 64)
	if err != nil {
		return models.Pair{}, false
	}
	clpNumber, err := strconv.ParseInt(strings.TrimSpace(row[clpIdx]), 10, 64)
	if err != nil {
		return models.Pair{}, false
	}

	return models.Pair{OrderNumber: orderNumber, ClpNumber: clpNumber}, true
}
