package present

import (
	"testing"
	"time"

	"financas/internal/core"
	"financas/internal/forecast"
	"financas/internal/rollup"
	"financas/internal/trend"
)

func money(cents int64) core.Money { return core.Money{Cents: cents} }

func TestMonthlySeriesChronological(t *testing.T) {
	points := MonthlySeries([]core.MonthBucket{
		{Year: 2025, Month: 1, Income: money(100)},
		{Year: 2024, Month: 3, Income: money(200)},
		{Year: 2024, Month: 12, Income: money(300)},
	})
	want := []string{"Mar/24", "Dez/24", "Jan/25"}
	for i, p := range points {
		if p.Label != want[i] {
			t.Fatalf("position %d: got %q want %q (points %+v)", i, p.Label, want[i], points)
		}
	}
}

func TestResortByLabel(t *testing.T) {
	// Labels only, as a chart library would hand them back after reordering.
	points := []MonthlyPoint{
		{Label: "Mar/24"},
		{Label: "Jan/25"},
		{Label: "Dez/24"},
	}
	got := ResortByLabel(points)
	want := []string{"Mar/24", "Dez/24", "Jan/25"}
	for i, p := range got {
		if p.Label != want[i] {
			t.Fatalf("position %d: got %q want %q", i, p.Label, want[i])
		}
	}
	if got[2].Year != 2025 || got[2].Month != 1 {
		t.Fatalf("inverse mapping not applied: %+v", got[2])
	}
}

func TestPieData(t *testing.T) {
	entries := []rollup.Entry{
		{Name: "Mercado", Value: money(60000), Percentage: 60},
		{Name: "Lazer", Value: money(40000), Percentage: 40},
	}
	slices := PieData(entries)
	if len(slices) != 2 {
		t.Fatalf("len = %d", len(slices))
	}
	if slices[0].Label != "Mercado (60%)" {
		t.Fatalf("label = %q", slices[0].Label)
	}
	if slices[0].Color == slices[1].Color {
		t.Fatalf("palette must advance per slice")
	}
}

func TestPieDataSuppressesZeroLabels(t *testing.T) {
	slices := PieData([]rollup.Entry{{Name: "Minúscula", Value: money(1), Percentage: 0.2}})
	if slices[0].Label != "" {
		t.Fatalf("0%% share should carry no label, got %q", slices[0].Label)
	}
}

func TestDashboard(t *testing.T) {
	v := Dashboard(core.DashboardSummary{
		Reference:        "Junho/2025",
		Income:           money(500000),
		TotalSpent:       money(300000),
		PendingExpenses:  money(50000),
		ProjectedBalance: money(200000),
		ByCategory: []core.CategoryTotal{
			{Name: "Mercado", Total: money(200000)},
			{Name: "", Total: money(100000)},
		},
		ByStatus: []core.StatusTotal{
			{Status: core.Pago, Total: money(250000)},
			{Status: core.Pendente, Total: money(50000)},
			{Status: "desconhecido", Total: money(99)},
		},
	})

	if v.IncomeCard != "R$ 5000,00" || v.ExpenseCard != "R$ 3000,00" {
		t.Fatalf("cards wrong: %q %q", v.IncomeCard, v.ExpenseCard)
	}
	if v.BalanceNegative {
		t.Fatalf("positive balance flagged negative")
	}
	if len(v.IncomeVsExpense) != 2 {
		t.Fatalf("income vs expense bars: %+v", v.IncomeVsExpense)
	}
	if v.IncomeVsExpense[0].Label != "62,50%" {
		t.Fatalf("share label = %q", v.IncomeVsExpense[0].Label)
	}
	if len(v.ByStatus) != 2 {
		t.Fatalf("unknown status must be dropped: %+v", v.ByStatus)
	}
	if v.ByStatus[0].Name != "Pagos" || v.ByStatus[1].Name != "Pendentes" {
		t.Fatalf("status names: %+v", v.ByStatus)
	}
	// The sentinel from the roll-up shows up for the unnamed category.
	foundSentinel := false
	for _, s := range v.ByCategory {
		if s.Name == rollup.Uncategorized {
			foundSentinel = true
		}
	}
	if !foundSentinel {
		t.Fatalf("sentinel slice missing: %+v", v.ByCategory)
	}
}

func TestDashboardEmpty(t *testing.T) {
	v := Dashboard(core.DashboardSummary{Reference: "Junho/2025"})
	if len(v.IncomeVsExpense) != 0 || len(v.ByCategory) != 0 || len(v.ByStatus) != 0 {
		t.Fatalf("zero data must yield empty series, not zero-filled charts: %+v", v)
	}
}

func TestAnalytics(t *testing.T) {
	v := Analytics(core.AnalyticsSummary{
		Months: []core.MonthBucket{
			{Year: 2025, Month: 2, Expense: money(1000)},
			{Year: 2025, Month: 1, Expense: money(2000)},
		},
		CategoryMonths: []core.CategoryMonth{
			{Year: 2025, Month: 1, CategoryName: "Mercado", Total: money(2000)},
			{Year: 2025, Month: 2, CategoryName: "Mercado", Total: money(1000)},
		},
	})
	if v.Months[0].Label != "Jan/25" || v.Months[1].Label != "Fev/25" {
		t.Fatalf("months out of order: %+v", v.Months)
	}
	if len(v.ByCategory) != 1 || v.ByCategory[0].Name != "Mercado" {
		t.Fatalf("category aggregation wrong: %+v", v.ByCategory)
	}
}

func TestProjections(t *testing.T) {
	months := []core.MonthBucket{
		{Year: 2025, Month: 1, Income: money(500000), Expense: money(100000), Net: money(400000)},
		{Year: 2025, Month: 2, Income: money(500000), Expense: money(150000), Net: money(350000)},
	}
	cats := []core.CategoryMonth{
		{Year: 2025, Month: 1, CategoryName: "Mercado", Total: money(100000)},
		{Year: 2025, Month: 2, CategoryName: "Mercado", Total: money(150000)},
	}
	v := Projections(forecast.Build(2025, months, cats))

	if v.ExpenseTrend.Value != "50,00%" {
		t.Fatalf("expense trend value = %q", v.ExpenseTrend.Value)
	}
	if v.ExpenseTrend.Favorable || v.ExpenseTrend.Neutral {
		t.Fatalf("rising expenses must render unfavorable: %+v", v.ExpenseTrend)
	}
	if v.ExpenseTrend.Direction != trend.Up {
		t.Fatalf("direction = %v", v.ExpenseTrend.Direction)
	}
	if v.IncomeTrend.Value != "0,00%" || !v.IncomeTrend.Neutral {
		t.Fatalf("flat income should be neutral: %+v", v.IncomeTrend)
	}
	if len(v.CategoryBars) != 1 || v.CategoryBars[0].Label != "R$ 1250,00" {
		t.Fatalf("category bars: %+v", v.CategoryBars)
	}
	if len(v.Alerts) == 0 || len(v.Suggestions) == 0 {
		t.Fatalf("advice lists must never be empty")
	}
}

func TestGoals(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	goals := []core.Goal{
		{
			Name:           "Reserva",
			Type:           core.GoalEconomizar,
			TargetAmount:   money(100000),
			AchievedAmount: money(150000),
			DueDate:        core.NewDate(2025, 6, 16),
		},
		{
			Name:           "Quitar cartão",
			Type:           core.GoalAbaterDivida,
			TargetAmount:   money(100000),
			AchievedAmount: money(40000),
			DueDate:        core.NewDate(2025, 6, 1),
			Completed:      true,
		},
	}
	cards := Goals(goals, now)

	if cards[0].BarPercent != 100 || cards[0].ProgressText != "150,00%" {
		t.Fatalf("clamped bar with true text expected: %+v", cards[0])
	}
	if cards[0].DaysRemaining != "1 day" {
		t.Fatalf("days remaining = %q", cards[0].DaysRemaining)
	}
	if cards[0].CompletionStatus != "" {
		t.Fatalf("open goal must show no completion status")
	}

	if cards[1].CompletionStatus != "Partially Completed: 40%" {
		t.Fatalf("completion = %q", cards[1].CompletionStatus)
	}
	if cards[1].TypeLabel != "abater dívida" {
		t.Fatalf("type label = %q", cards[1].TypeLabel)
	}
	if cards[1].Expired {
		t.Fatalf("completed goal is never flagged expired")
	}
}
