// Package present shapes derivation outputs into chart-ready view-models:
// labeled series with deterministic ordering and colors, indicator cards and
// per-widget empty states. The views render these structs directly.
package present

import (
	"fmt"
	"sort"
	"time"

	"financas/internal/core"
	"financas/internal/forecast"
	"financas/internal/format"
	"financas/internal/goal"
	"financas/internal/rollup"
	"financas/internal/trend"
)

// CategoryPalette cycles through the donut slices in output order.
var CategoryPalette = []string{
	"#6366F1", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#EC4899", "#3B82F6", "#A855F7", "#D97706", "#06B6D4", "#C026D3",
}

// Series colors shared by the bar charts.
const (
	ColorReceita = "#10B981"
	ColorDespesa = "#EF4444"
	ColorSaldo   = "#6366F1"

	colorPago     = "#10B981"
	colorPendente = "#F59E0B"
)

// Display names for the status bars.
const (
	statusPagoLabel     = "Pagos"
	statusPendenteLabel = "Pendentes"
)

type (
	// MonthlyPoint is one month of the balance chart, labeled "Jan/25".
	MonthlyPoint struct {
		Year    int
		Month   int
		Label   string
		Income  float64
		Expense float64
		Net     float64
	}

	// PieSlice is one donut slice with its display label precomputed.
	PieSlice struct {
		Name       string
		Value      float64
		Percentage float64
		Color      string
		Label      string // `Name (NN%)`, empty when the share rounds to 0%
	}

	// Bar is one labeled bar of a simple bar chart.
	Bar struct {
		Name  string
		Value float64
		Color string
		Label string
	}

	// GoalCard is the display state of one goal.
	GoalCard struct {
		Name             string
		Description      string
		TypeLabel        string
		DueDate          string
		DaysRemaining    string
		Target           string
		Achieved         string
		Remaining        string
		BarPercent       float64
		ProgressText     string // true unclamped percentage
		CompletionStatus string // empty unless the goal is completed
		Completed        bool
		Expired          bool
	}

	// DashboardView is the dashboard page view-model.
	DashboardView struct {
		Reference       string
		IncomeCard      string
		ExpenseCard     string
		BalanceCard     string
		BalanceNegative bool
		IncomeVsExpense []Bar
		ByCategory      []PieSlice
		ByStatus        []Bar
	}

	// TrendCard is one trend indicator with polarity-resolved rendering hints.
	TrendCard struct {
		Title     string
		Value     string // absolute delta, formatted
		Direction trend.Direction
		Favorable bool
		Neutral   bool
	}

	// AnalyticsView is the analytics page view-model.
	AnalyticsView struct {
		Months     []MonthlyPoint
		ByCategory []PieSlice
	}

	// ProjectionsView is the projections page view-model.
	ProjectionsView struct {
		Report       forecast.Report
		ExpenseTrend TrendCard
		IncomeTrend  TrendCard
		CategoryBars []Bar
		Alerts       []forecast.Advice
		Suggestions  []forecast.Advice
	}
)

// MonthlySeries labels and chronologically orders the monthly buckets.
// The sort key is (year, month); the label never participates.
func MonthlySeries(months []core.MonthBucket) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, len(months))
	for _, b := range months {
		points = append(points, MonthlyPoint{
			Year:    b.Year,
			Month:   b.Month,
			Label:   format.MonthLabel(b.Year, b.Month),
			Income:  b.Income.Reais(),
			Expense: b.Expense.Reais(),
			Net:     b.Net.Reais(),
		})
	}
	sortPoints(points)
	return points
}

// ResortByLabel restores chronological order for points that arrive keyed
// only by their label (chart libraries may reorder by label string). The
// label is mapped back to (year, month) through the stable inverse mapping.
func ResortByLabel(points []MonthlyPoint) []MonthlyPoint {
	for i := range points {
		if y, m, ok := format.ParseMonthLabel(points[i].Label); ok {
			points[i].Year, points[i].Month = y, m
		}
	}
	sortPoints(points)
	return points
}

func sortPoints(points []MonthlyPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})
}

// PieData colors and labels roll-up entries in order. Slices whose share
// rounds to 0% carry no label to keep the chart readable.
func PieData(entries []rollup.Entry) []PieSlice {
	slices := make([]PieSlice, 0, len(entries))
	for i, e := range entries {
		s := PieSlice{
			Name:       e.Name,
			Value:      e.Value.Reais(),
			Percentage: e.Percentage,
			Color:      CategoryPalette[i%len(CategoryPalette)],
		}
		if pct := int(e.Percentage + 0.5); pct > 0 {
			s.Label = fmt.Sprintf("%s (%d%%)", e.Name, pct)
		}
		slices = append(slices, s)
	}
	return slices
}

// Dashboard assembles the dashboard view-model from the backend summary.
func Dashboard(s core.DashboardSummary) DashboardView {
	v := DashboardView{
		Reference:       s.Reference,
		IncomeCard:      format.Money(s.Income),
		ExpenseCard:     format.Money(s.TotalSpent),
		BalanceCard:     format.Money(s.ProjectedBalance),
		BalanceNegative: s.ProjectedBalance.IsNegative(),
	}

	// Income vs expense pair; zero bars are filtered, share labels over the pair total.
	pairTotal := s.Income.Reais() + s.TotalSpent.Reais()
	for _, bar := range []Bar{
		{Name: "Receitas", Value: s.Income.Reais(), Color: ColorReceita},
		{Name: "Despesas", Value: s.TotalSpent.Reais(), Color: ColorDespesa},
	} {
		if bar.Value <= 0 {
			continue
		}
		if pairTotal > 0 {
			bar.Label = format.Percent(bar.Value / pairTotal * 100)
		}
		v.IncomeVsExpense = append(v.IncomeVsExpense, bar)
	}

	items := make([]rollup.Item, 0, len(s.ByCategory))
	for _, ct := range s.ByCategory {
		items = append(items, rollup.Item{Label: ct.Name, Amount: ct.Total})
	}
	v.ByCategory = PieData(rollup.Reduce(items))

	for _, st := range s.ByStatus {
		if st.Total.Cents <= 0 {
			continue
		}
		bar := Bar{Value: st.Total.Reais(), Label: format.Money(st.Total)}
		switch st.Status {
		case core.Pago:
			bar.Name, bar.Color = statusPagoLabel, colorPago
		case core.Pendente:
			bar.Name, bar.Color = statusPendenteLabel, colorPendente
		default:
			continue // unknown tags never reach the chart
		}
		v.ByStatus = append(v.ByStatus, bar)
	}
	return v
}

// Analytics assembles the analytics view-model from the backend summary.
func Analytics(s core.AnalyticsSummary) AnalyticsView {
	items := make([]rollup.Item, 0, len(s.CategoryMonths))
	for _, cm := range s.CategoryMonths {
		items = append(items, rollup.Item{Label: cm.CategoryName, Amount: cm.Total})
	}
	return AnalyticsView{
		Months:     MonthlySeries(s.Months),
		ByCategory: PieData(rollup.Reduce(items)),
	}
}

// Projections assembles the projections view-model from a forecast report.
func Projections(r forecast.Report) ProjectionsView {
	v := ProjectionsView{
		Report:       r,
		ExpenseTrend: trendCard("Tendência de Despesas", r.ExpenseTrend),
		IncomeTrend:  trendCard("Tendência de Receitas", r.IncomeTrend),
	}
	for i, c := range r.ChartCategories() {
		v.CategoryBars = append(v.CategoryBars, Bar{
			Name:  c.Name,
			Value: c.MonthlyAvg,
			Color: CategoryPalette[i%len(CategoryPalette)],
			Label: format.Currency(c.MonthlyAvg),
		})
	}
	v.Alerts, v.Suggestions = forecast.Advise(r)
	return v
}

func trendCard(title string, c trend.Comparison) TrendCard {
	delta := c.DeltaPercent
	if delta < 0 {
		delta = -delta
	}
	return TrendCard{
		Title:     title,
		Value:     format.Percent(delta),
		Direction: c.Direction(),
		Favorable: c.Favorability() == trend.Favorable,
		Neutral:   c.Favorability() == trend.Neutral,
	}
}

// Goals assembles the goal cards, preserving backend order.
func Goals(goals []core.Goal, now time.Time) []GoalCard {
	cards := make([]GoalCard, 0, len(goals))
	for _, g := range goals {
		p := goal.Measure(g)
		deadline := goal.DaysRemaining(g.DueDate, now)
		card := GoalCard{
			Name:          g.Name,
			Description:   g.Description,
			TypeLabel:     goalTypeLabel(g.Type),
			DueDate:       g.DueDate.Key(),
			DaysRemaining: deadline.Label(),
			Target:        format.Money(g.TargetAmount),
			Achieved:      format.Money(g.AchievedAmount),
			Remaining:     format.Money(p.Remaining),
			BarPercent:    p.BarPercent,
			ProgressText:  format.Percent(p.Percent),
			Completed:     g.Completed,
			Expired:       !g.Completed && deadline.Expired,
		}
		if msg, ok := goal.CompletionStatus(g); ok {
			card.CompletionStatus = msg
		}
		cards = append(cards, card)
	}
	return cards
}

// goalTypeLabel is the exhaustive display mapping for goal types; unknown
// tags were already rejected at the boundary.
func goalTypeLabel(t core.GoalType) string {
	switch t {
	case core.GoalEconomizar:
		return "economizar"
	case core.GoalInvestir:
		return "investir"
	case core.GoalAbaterDivida:
		return "abater dívida"
	case core.GoalOutros:
		return "outros"
	}
	return string(t)
}
