package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := NewCSVFile(path)
	ctx := context.Background()

	for _, rec := range sampleRecords() {
		require.NoError(t, s.Store(ctx, rec))
	}
	require.NoError(t, s.Flush(ctx))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	assert.Equal(t, "BBCA", rows[1][0])
	assert.Equal(t, "9875.50", rows[1][3])
	assert.Equal(t, "9900", rows[1][4])
	assert.Equal(t, "2024-03-11 14:22:05", rows[1][8])

	// Absent fields are empty cells.
	assert.Equal(t, "INDF", rows[2][0])
	for _, cell := range rows[2][3:] {
		assert.Empty(t, cell)
	}
}
