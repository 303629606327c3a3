// Package rollup aggregates (category, amount) records into per-category
// totals with percentage shares, collapsing small slices into a single
// trailing bucket. Both the dashboard and analytics donuts feed on it.
package rollup

import (
	"math"
	"sort"

	"financas/internal/core"
)

const (
	// ThresholdPercent is the share below which a category is folded into
	// the trailing bucket.
	ThresholdPercent = 3.0

	// Uncategorized labels records whose category is missing.
	Uncategorized = "Uncategorized"

	// OtherBucket names the collapsed small-share entry.
	OtherBucket = "Other"

	// OtherBucketAll names the degenerate output when every category falls
	// under the threshold: the aggregate total must still surface.
	OtherBucketAll = "Other (100%)"
)

// Item is one raw (category, amount) record. Amounts are non-negative.
type Item struct {
	Label  string
	Amount core.Money
}

// Entry is one aggregated slice of the roll-up.
type Entry struct {
	Name       string
	Value      core.Money
	Percentage float64
}

// Reduce aggregates items by label and partitions the result around
// ThresholdPercent. The output is sorted by value descending (ties keep
// first-encountered order), with the collapsed bucket trailing. A zero total
// yields an empty slice; callers render a distinct no-data state.
//
// Invariant: the entry values, including the bucket, sum to the input total.
func Reduce(items []Item) []Entry {
	totals := make(map[string]int64)
	order := make([]string, 0, len(items))
	for _, it := range items {
		label := it.Label
		if label == "" {
			label = Uncategorized
		}
		if _, seen := totals[label]; !seen {
			order = append(order, label)
		}
		totals[label] += it.Amount.Cents
	}

	var grand int64
	for _, v := range totals {
		grand += v
	}
	if grand == 0 {
		return nil
	}

	// First pass: shares for every category, in first-encountered order so
	// the descending sort below stays deterministic on ties.
	entries := make([]Entry, 0, len(order))
	for _, label := range order {
		entries = append(entries, Entry{
			Name:       label,
			Value:      core.Money{Cents: totals[label]},
			Percentage: float64(totals[label]) / float64(grand) * 100,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value.Cents > entries[j].Value.Cents
	})

	// Second pass: partition around the threshold.
	var (
		major  []Entry
		others int64
	)
	for _, e := range entries {
		if e.Percentage < ThresholdPercent {
			others += e.Value.Cents
		} else {
			major = append(major, e)
		}
	}

	if len(major) == 0 {
		// Every slice was minor; the total is never silently dropped.
		return []Entry{{Name: OtherBucketAll, Value: core.Money{Cents: grand}, Percentage: 100}}
	}
	if others > 0 {
		major = append(major, Entry{
			Name:       OtherBucket,
			Value:      core.Money{Cents: others},
			Percentage: float64(others) / float64(grand) * 100,
		})
	}
	return major
}

// Total sums entry values; used by callers asserting conservation.
func Total(entries []Entry) core.Money {
	var sum int64
	for _, e := range entries {
		sum += e.Value.Cents
	}
	return core.Money{Cents: sum}
}

// SharesSumTo100 reports whether the percentages add up to 100 within eps.
func SharesSumTo100(entries []Entry, eps float64) bool {
	if len(entries) == 0 {
		return true
	}
	var sum float64
	for _, e := range entries {
		sum += e.Percentage
	}
	return math.Abs(sum-100) <= eps
}
