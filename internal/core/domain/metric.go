package domain

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Metric is a KPI value that can carry the non-finite outcomes the engine
// produces: break-even sales becomes infinite when the contribution ratio is
// non-positive, and ratios become undefined when their denominator is zero.
// decimal.Decimal has no Inf/NaN representation, so the outcome is explicit
// and callers must branch on it rather than read a silently coerced zero.
type Metric struct {
	Value     decimal.Decimal
	Infinite  bool
	Undefined bool
}

// FiniteMetric wraps a finite decimal value.
func FiniteMetric(value decimal.Decimal) Metric {
	return Metric{Value: value}
}

// InfiniteMetric is the +Infinity sentinel.
func InfiniteMetric() Metric {
	return Metric{Infinite: true}
}

// UndefinedMetric is the NaN sentinel.
func UndefinedMetric() Metric {
	return Metric{Undefined: true}
}

// IsFinite reports whether the metric holds a usable decimal value.
func (m Metric) IsFinite() bool {
	return !m.Infinite && !m.Undefined
}

func (m Metric) String() string {
	switch {
	case m.Infinite:
		return "Infinity"
	case m.Undefined:
		return "NaN"
	default:
		return m.Value.String()
	}
}

// MarshalJSON renders non-finite metrics as the strings "Infinity"/"NaN" so
// downstream formatting can map them to placeholders.
func (m Metric) MarshalJSON() ([]byte, error) {
	switch {
	case m.Infinite:
		return []byte(`"Infinity"`), nil
	case m.Undefined:
		return []byte(`"NaN"`), nil
	default:
		return m.Value.MarshalJSON()
	}
}

// UnmarshalJSON accepts the sentinel strings or any decimal representation.
func (m *Metric) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte(`"Infinity"`)):
		*m = InfiniteMetric()
		return nil
	case bytes.Equal(data, []byte(`"NaN"`)):
		*m = UndefinedMetric()
		return nil
	}
	var value decimal.Decimal
	if err := value.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = FiniteMetric(value)
	return nil
}

// SafeRatio divides num by den, yielding the undefined sentinel when den is
// zero.
func SafeRatio(num, den decimal.Decimal) Metric {
	if den.IsZero() {
		return UndefinedMetric()
	}
	return FiniteMetric(num.Div(den))
}
