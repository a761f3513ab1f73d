package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelations(t *testing.T) {
	n := 50
	a := make([]any, n)
	b := make([]any, n)
	c := make([]any, n)
	d := make([]any, n)
	for i := 0; i < n; i++ {
		a[i] = float64(i)
		b[i] = 2*float64(i) + 1
		c[i] = -float64(i)
		d[i] = 3.0
	}
	c[10] = nil
	b[20] = "n/a"

	tbl := table(t, map[string][]any{"a": a, "b": b, "c": c, "d": d})
	corr := Correlations(tbl, []string{"a", "b", "c", "d"})
	require.NotNil(t, corr)

	assert.Equal(t, 1.0, corr["a"]["a"])
	assert.Equal(t, 1.0, corr["a"]["b"])
	assert.Equal(t, -1.0, corr["a"]["c"])
	assert.Equal(t, corr["c"]["a"], corr["a"]["c"])
	assert.Zero(t, corr["a"]["d"])
	assert.Zero(t, corr["d"]["d"])
}

func TestCorrelationsNeedTwoColumns(t *testing.T) {
	tbl := table(t, map[string][]any{"a": {1.0, 2.0}, "b": {"x", "y"}})

	assert.Nil(t, Correlations(tbl, []string{"a"}))
	assert.Nil(t, Correlations(tbl, nil))
	assert.Nil(t, Correlations(tbl, []string{"a", "missing"}))
}

func TestReportCorrelations(t *testing.T) {
	r := Analyze(table(t, map[string][]any{
		"x": {1, 2, 3, 4, 5},
		"y": {2, 4, 6, 8, 11},
		"z": {"a", "b", "c", "d", "e"},
	}))

	require.NotNil(t, r.Correlations)
	assert.Len(t, r.Correlations, 2)
	assert.Greater(t, r.Correlations["x"]["y"], 0.99)
	assert.NotContains(t, r.Correlations, "z")
}
