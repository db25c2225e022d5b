package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		metric   Metric
		expected string
	}{
		{name: "Finite", metric: FiniteMetric(decimal.NewFromFloat(1.25)), expected: `"1.25"`},
		{name: "Infinite", metric: InfiniteMetric(), expected: `"Infinity"`},
		{name: "Undefined", metric: UndefinedMetric(), expected: `"NaN"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.metric)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(data))
		})
	}
}

func TestMetricUnmarshalJSON(t *testing.T) {
	var m Metric

	require.NoError(t, json.Unmarshal([]byte(`"Infinity"`), &m))
	assert.True(t, m.Infinite)

	require.NoError(t, json.Unmarshal([]byte(`"NaN"`), &m))
	assert.True(t, m.Undefined)

	require.NoError(t, json.Unmarshal([]byte(`"42.5"`), &m))
	assert.True(t, m.IsFinite())
	assert.True(t, m.Value.Equal(decimal.NewFromFloat(42.5)))
}

func TestSafeRatio(t *testing.T) {
	ratio := SafeRatio(decimal.NewFromInt(10), decimal.NewFromInt(4))
	require.True(t, ratio.IsFinite())
	assert.True(t, ratio.Value.Equal(decimal.NewFromFloat(2.5)))

	zero := SafeRatio(decimal.NewFromInt(10), decimal.Zero)
	assert.True(t, zero.Undefined)
}
