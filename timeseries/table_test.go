package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	table, err := NewTable(map[string][]any{
		"b": {1, 2, 3},
		"a": {"x", "y", nil},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, table.Names())
	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, []any{"y", 2}, table.Row(1))
}

func TestNewTableRagged(t *testing.T) {
	_, err := NewTable(map[string][]any{
		"a": {1, 2, 3},
		"b": {1, 2},
	})
	assert.ErrorIs(t, err, ErrRaggedColumns)
}

func TestTableSeries(t *testing.T) {
	table, err := NewTable(map[string][]any{
		"value": {"1", nil, "3", "oops"},
	})
	require.NoError(t, err)

	s, err := table.Series("value")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, s.Values)
	assert.Equal(t, "value", s.Name)

	_, err = table.Series("missing")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestEmptyTable(t *testing.T) {
	table, err := NewTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Rows())
	assert.Empty(t, table.Names())
}
