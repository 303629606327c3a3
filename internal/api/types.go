package api

import (
	"fmt"

	"financas/internal/core"
)

// Wire types mirror the backend's JSON field names. Money travels as a
// decimal string and dates as "YYYY-MM-DD"; core types decode both.

type transactionWire struct {
	ID          int64      `json:"id,omitempty"`
	Description string     `json:"descricao"`
	Amount      core.Money `json:"valor"`
	Date        core.Date  `json:"data_transacao"`
	Kind        string     `json:"tipo"`
	Status      string     `json:"status"`
	CategoryID  int64      `json:"categoria"`
}

func (w transactionWire) toCore() (core.Transaction, error) {
	kind, err := core.ParseKind(w.Kind)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", w.ID, err)
	}
	status, err := core.ParseStatus(w.Status)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", w.ID, err)
	}
	return core.Transaction{
		ID:          w.ID,
		Description: w.Description,
		Amount:      w.Amount,
		Date:        w.Date,
		Kind:        kind,
		Status:      status,
		CategoryID:  w.CategoryID,
	}, nil
}

func transactionToWire(t core.Transaction) transactionWire {
	return transactionWire{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date,
		Kind:        string(t.Kind),
		Status:      string(t.Status),
		CategoryID:  t.CategoryID,
	}
}

type categoryWire struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"nome"`
	Description string `json:"descricao,omitempty"`
	Type        string `json:"tipo_categoria"`
}

func (w categoryWire) toCore() (core.Category, error) {
	typ, err := core.ParseCategoryType(w.Type)
	if err != nil {
		return core.Category{}, fmt.Errorf("category %d: %w", w.ID, err)
	}
	return core.Category{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Type:        typ,
	}, nil
}

func categoryToWire(c core.Category) categoryWire {
	return categoryWire{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Type:        string(c.Type),
	}
}

type goalWire struct {
	ID             int64      `json:"id,omitempty"`
	Name           string     `json:"nome"`
	Description    string     `json:"descricao,omitempty"`
	Type           string     `json:"tipo"`
	TargetAmount   core.Money `json:"valor_alvo"`
	AchievedAmount core.Money `json:"valor_atingido"`
	StartDate      core.Date  `json:"data_inicio,omitempty"`
	DueDate        core.Date  `json:"data_limite"`
	Completed      bool       `json:"concluida"`
}

func (w goalWire) toCore() (core.Goal, error) {
	typ, err := core.ParseGoalType(w.Type)
	if err != nil {
		return core.Goal{}, fmt.Errorf("goal %d: %w", w.ID, err)
	}
	return core.Goal{
		ID:             w.ID,
		Name:           w.Name,
		Description:    w.Description,
		Type:           typ,
		TargetAmount:   w.TargetAmount,
		AchievedAmount: w.AchievedAmount,
		StartDate:      w.StartDate,
		DueDate:        w.DueDate,
		Completed:      w.Completed,
	}, nil
}

func goalToWire(g core.Goal) goalWire {
	return goalWire{
		ID:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		Type:           string(g.Type),
		TargetAmount:   g.TargetAmount,
		AchievedAmount: g.AchievedAmount,
		StartDate:      g.StartDate,
		DueDate:        g.DueDate,
		Completed:      g.Completed,
	}
}

type dashboardWire struct {
	Reference        string     `json:"mes_referencia"`
	Income           core.Money `json:"receitas_mes_atual"`
	TotalSpent       core.Money `json:"total_gasto_mes"`
	PendingExpenses  core.Money `json:"total_despesas_pendentes"`
	ProjectedBalance core.Money `json:"saldo_final_projetado"`
	ByCategory       []struct {
		Name  string     `json:"categoria__nome"`
		Total core.Money `json:"total"`
	} `json:"gastos_por_categoria_mes_atual"`
	ByStatus []struct {
		Status string     `json:"status"`
		Total  core.Money `json:"total"`
	} `json:"gastos_por_status_mes_atual"`
}

func (w dashboardWire) toCore() core.DashboardSummary {
	s := core.DashboardSummary{
		Reference:        w.Reference,
		Income:           w.Income,
		TotalSpent:       w.TotalSpent,
		PendingExpenses:  w.PendingExpenses,
		ProjectedBalance: w.ProjectedBalance,
	}
	for _, row := range w.ByCategory {
		s.ByCategory = append(s.ByCategory, core.CategoryTotal{Name: row.Name, Total: row.Total})
	}
	for _, row := range w.ByStatus {
		s.ByStatus = append(s.ByStatus, core.StatusTotal{Status: core.Status(row.Status), Total: row.Total})
	}
	return s
}

type analyticsWire struct {
	MonthlyBalance []struct {
		Year    int        `json:"ano"`
		Month   int        `json:"mes"`
		Income  core.Money `json:"receita_total"`
		Expense core.Money `json:"despesa_total"`
		Net     core.Money `json:"saldo_final"`
	} `json:"saldo_mensal"`
	CategoryMonths []struct {
		Year     int        `json:"ano"`
		Month    int        `json:"mes"`
		Category string     `json:"categoria_nome"`
		Total    core.Money `json:"total"`
	} `json:"gastos_por_categoria_mes"`
}

func (w analyticsWire) toCore() core.AnalyticsSummary {
	var s core.AnalyticsSummary
	for _, row := range w.MonthlyBalance {
		s.Months = append(s.Months, core.MonthBucket{
			Year:    row.Year,
			Month:   row.Month,
			Income:  row.Income,
			Expense: row.Expense,
			Net:     row.Net,
		})
	}
	for _, row := range w.CategoryMonths {
		s.CategoryMonths = append(s.CategoryMonths, core.CategoryMonth{
			Year:         row.Year,
			Month:        row.Month,
			CategoryName: row.Category,
			Total:        row.Total,
		})
	}
	return s
}
