// Package trend compares period aggregates and classifies overall financial
// health. Deltas are directional: the same numeric change reads differently
// for expenses and for income, so polarity is parameterized by metric kind
// instead of being decided at call sites.
package trend

// Metric identifies what a comparison measures.
type Metric string

const (
	Expense Metric = "despesas"
	Income  Metric = "receitas"
)

// Direction is the raw movement of the metric.
type Direction int

const (
	Flat Direction = iota
	Up
	Down
)

// Favorability is the directional reading of a delta under a metric's polarity.
type Favorability int

const (
	Neutral Favorability = iota
	Favorable
	Unfavorable
)

// Health tiers for the efficiency ratio of a year.
type Health string

const (
	Excellent Health = "EXCELLENT"
	Good      Health = "GOOD"
	Critical  Health = "CRITICAL"
)

// Fixed monotonic tier boundaries: a higher ratio never yields a worse tier.
const (
	excellentRatio = 20.0 // saving at least a fifth of income
	goodRatio      = 0.0  // breaking even or better
)

// Comparison is the delta between a current and a prior period total.
// Valid is false when no prior period existed; the numeric delta is 0 then
// and must not be read as a real 0% change.
type Comparison struct {
	Metric       Metric
	Current      float64
	Prior        float64
	DeltaPercent float64
	Valid        bool
}

// Compare computes the percentage delta of current against prior.
// A zero prior signals insufficient data rather than dividing by zero.
func Compare(current, prior float64, metric Metric) Comparison {
	c := Comparison{Metric: metric, Current: current, Prior: prior}
	if prior == 0 {
		return c
	}
	c.Valid = true
	c.DeltaPercent = (current - prior) / prior * 100
	return c
}

// Direction reports whether the metric moved up, down, or not at all.
func (c Comparison) Direction() Direction {
	switch {
	case !c.Valid || c.DeltaPercent == 0:
		return Flat
	case c.DeltaPercent > 0:
		return Up
	default:
		return Down
	}
}

// Favorability applies the metric's polarity: rising expenses are
// unfavorable, rising income is favorable, and vice versa.
func (c Comparison) Favorability() Favorability {
	dir := c.Direction()
	if dir == Flat {
		return Neutral
	}
	rising := dir == Up
	switch c.Metric {
	case Expense:
		if rising {
			return Unfavorable
		}
		return Favorable
	case Income:
		if rising {
			return Favorable
		}
		return Unfavorable
	}
	return Neutral
}

// EfficiencyRatio is the net balance as a percentage of total income.
// ok is false when there was no income to measure against.
func EfficiencyRatio(net, income float64) (ratio float64, ok bool) {
	if income == 0 {
		return 0, false
	}
	return net / income * 100, true
}

// ClassifyHealth maps an efficiency ratio onto the three health tiers.
func ClassifyHealth(ratio float64) Health {
	switch {
	case ratio >= excellentRatio:
		return Excellent
	case ratio >= goodRatio:
		return Good
	default:
		return Critical
	}
}
