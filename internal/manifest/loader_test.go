package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conveyorhub/pkg/models"
)

func TestParseCSV(t *testing.T) {
	csv := "Document Number,Handling Unit\n100,200\n300,400\n"

	res, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalRows)
	assert.Empty(t, res.SkippedRows)
	assert.Equal(t, []models.Pair{
		{OrderNumber: 100, ClpNumber: 200},
		{OrderNumber: 300, ClpNumber: 400},
	}, res.Pairs)
}

func TestParseCSVHeaderMatchingIsLenient(t *testing.T) {
	csv := "Plant, document number , HANDLING UNIT \nX1,100,200\n"

	res, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalRows)
	assert.Equal(t, models.Pair{OrderNumber: 100, ClpNumber: 200}, res.Pairs[0])
}

func TestParseCSVMissingColumnsRejectsWholeFile(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"no handling unit", "Document Number,Qty\n100,5\n"},
		{"no document number", "Handling Unit\n200\n"},
		{"empty file", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tc.csv))
			assert.ErrorIs(t, err, ErrMissingColumns)
		})
	}
}

func TestParseCSVSkipsBadRowsWithIndices(t *testing.T) {
	csv := "Document Number,Handling Unit\n" +
		"100,200\n" +
		"abc,300\n" +
		"400,\n" +
		"500,600\n"

	res, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalRows, "expected count reflects inserted rows, not source rows")
	assert.Equal(t, []int{2, 3}, res.SkippedRows)
	assert.Equal(t, []models.Pair{
		{OrderNumber: 100, ClpNumber: 200},
		{OrderNumber: 500, ClpNumber: 600},
	}, res.Pairs)
}
