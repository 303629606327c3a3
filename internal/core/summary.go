package core

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Name  string
	Total Money
}

// StatusTotal is an expense amount aggregated by payment status.
type StatusTotal struct {
	Status Status
	Total  Money
}

// DashboardSummary is the backend's pre-aggregated dashboard snapshot for a
// selected period (one month, or the whole history).
type DashboardSummary struct {
	Reference        string // display label for the period, backend-owned
	Income           Money
	TotalSpent       Money // paid and pending expenses together
	PendingExpenses  Money
	ProjectedBalance Money
	ByCategory       []CategoryTotal
	ByStatus         []StatusTotal
}

// AnalyticsSummary is the backend's pre-aggregated analytics snapshot:
// the monthly balance series and the category-month expense breakdown.
type AnalyticsSummary struct {
	Months         []MonthBucket
	CategoryMonths []CategoryMonth
}
