// Package forecast extrapolates historical monthly aggregates into
// N-month-ahead projections, per category and in aggregate, and evaluates an
// advisory rule set over the result. Inputs are the pre-aggregated monthly
// series from the backend; everything here is pure derivation.
package forecast

import (
	"sort"

	"financas/internal/core"
	"financas/internal/format"
	"financas/internal/rollup"
	"financas/internal/trend"
)

// DefaultHorizonMonths is the projection window shown by the views.
const DefaultHorizonMonths = 3

// savingRate is the share of average monthly income suggested as a saving
// target. Progress toward it is manual; see the goals view.
const savingRate = 0.20

// CategoryForecast is one row of the per-category projection table.
type CategoryForecast struct {
	Name       string
	MonthlyAvg float64
	Projected  float64 // MonthlyAvg * horizon
}

// Report carries every projection metric a view needs for one selected year.
type Report struct {
	Year            int
	HorizonMonths   int
	MonthsWithData  int
	AvailableYears  []int
	AvailableMonths []int // months with data in the selected year, ascending

	AvgMonthlyIncome  float64
	AvgMonthlyExpense float64
	AvgMonthlyNet     float64
	AvgDailyExpense   float64
	AvgWeeklyExpense  float64

	ForecastExpense float64
	ForecastIncome  float64
	ForecastNet     float64

	YearIncome  float64
	YearExpense float64
	YearNet     float64

	EfficiencyRatio   float64
	EfficiencyValid   bool
	Health            trend.Health
	RecommendedSaving float64

	ExpenseTrend     trend.Comparison
	IncomeTrend      trend.Comparison
	ComparisonPeriod string // "Mai/25 vs Abr/25", empty when insufficient data

	// Categories is sorted by projected value descending. Zero-average rows
	// stay in the table; ChartCategories filters them out of chart series.
	Categories []CategoryForecast
}

// Build computes a Report for the selected year with the default horizon.
func Build(year int, months []core.MonthBucket, byCategory []core.CategoryMonth) Report {
	return BuildHorizon(year, DefaultHorizonMonths, months, byCategory)
}

// BuildHorizon is Build with an explicit projection window.
// All ratios and averages degrade to zero on empty input; no division by
// zero escapes this package.
func BuildHorizon(year, horizon int, months []core.MonthBucket, byCategory []core.CategoryMonth) Report {
	r := Report{Year: year, HorizonMonths: horizon}

	yearSet := make(map[int]struct{})
	var inYear []core.MonthBucket
	for _, b := range months {
		yearSet[b.Year] = struct{}{}
		if b.Year == year && (b.Income.Cents != 0 || b.Expense.Cents != 0) {
			inYear = append(inYear, b)
		}
	}
	for y := range yearSet {
		r.AvailableYears = append(r.AvailableYears, y)
	}
	sort.Ints(r.AvailableYears)

	sort.Slice(inYear, func(i, j int) bool { return inYear[i].Before(inYear[j]) })
	for _, b := range inYear {
		r.AvailableMonths = append(r.AvailableMonths, b.Month)
		r.YearIncome += b.Income.Reais()
		r.YearExpense += b.Expense.Reais()
	}
	r.YearNet = r.YearIncome - r.YearExpense
	r.MonthsWithData = len(inYear)

	if r.MonthsWithData > 0 {
		n := float64(r.MonthsWithData)
		r.AvgMonthlyIncome = r.YearIncome / n
		r.AvgMonthlyExpense = r.YearExpense / n
		r.AvgMonthlyNet = r.AvgMonthlyIncome - r.AvgMonthlyExpense
	}
	r.AvgDailyExpense = r.AvgMonthlyExpense * 12 / 365
	r.AvgWeeklyExpense = r.AvgMonthlyExpense * 12 / 52

	h := float64(horizon)
	r.ForecastExpense = r.AvgMonthlyExpense * h
	r.ForecastIncome = r.AvgMonthlyIncome * h
	r.ForecastNet = r.ForecastIncome - r.ForecastExpense

	r.EfficiencyRatio, r.EfficiencyValid = trend.EfficiencyRatio(r.YearNet, r.YearIncome)
	r.Health = trend.ClassifyHealth(r.EfficiencyRatio)
	r.RecommendedSaving = r.AvgMonthlyIncome * savingRate

	// Trends compare the two most recent months with data in the year.
	if len(inYear) >= 2 {
		cur := inYear[len(inYear)-1]
		prev := inYear[len(inYear)-2]
		r.ExpenseTrend = trend.Compare(cur.Expense.Reais(), prev.Expense.Reais(), trend.Expense)
		r.IncomeTrend = trend.Compare(cur.Income.Reais(), prev.Income.Reais(), trend.Income)
		r.ComparisonPeriod = format.MonthLabel(cur.Year, cur.Month) + " vs " + format.MonthLabel(prev.Year, prev.Month)
	} else {
		r.ExpenseTrend = trend.Comparison{Metric: trend.Expense}
		r.IncomeTrend = trend.Comparison{Metric: trend.Income}
	}

	r.Categories = categoryForecasts(year, horizon, r.MonthsWithData, byCategory)
	return r
}

func categoryForecasts(year, horizon, monthsWithData int, byCategory []core.CategoryMonth) []CategoryForecast {
	totals := make(map[string]int64)
	order := make([]string, 0, len(byCategory))
	for _, cm := range byCategory {
		if cm.Year != year {
			continue
		}
		name := cm.CategoryName
		if name == "" {
			name = rollup.Uncategorized
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += cm.Total.Cents
	}
	if len(order) == 0 {
		return nil
	}

	out := make([]CategoryForecast, 0, len(order))
	for _, name := range order {
		var avg float64
		if monthsWithData > 0 {
			avg = float64(totals[name]) / 100.0 / float64(monthsWithData)
		}
		out = append(out, CategoryForecast{
			Name:       name,
			MonthlyAvg: avg,
			Projected:  avg * float64(horizon),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Projected > out[j].Projected })
	return out
}

// ChartCategories drops zero-valued rows from the chart series; the tabular
// breakdown keeps them.
func (r Report) ChartCategories() []CategoryForecast {
	var out []CategoryForecast
	for _, c := range r.Categories {
		if c.Projected > 0 {
			out = append(out, c)
		}
	}
	return out
}
