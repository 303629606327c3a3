package forecast

import (
	"fmt"

	"financas/internal/format"
	"financas/internal/trend"
)

// AdviceType tags an advisory message for rendering.
type AdviceType string

const (
	Warning AdviceType = "warning"
	Info    AdviceType = "info"
	Success AdviceType = "success"
)

// Advice is one alert or suggestion produced by the rule engine.
type Advice struct {
	Type    AdviceType
	Message string
}

// Rule trigger boundaries.
const (
	expenseSurgePercent = 15.0 // month-over-month expense growth worth an alert
	incomeDropPercent   = -10.0
	thinMarginRatio     = 10.0 // efficiency below this reads as fragile
	dominantShare       = 30.0 // one category holding this much of spending
)

// Fallback messages; the views never render an empty list with no message.
var (
	defaultAffirmation = Advice{Type: Success, Message: "Tudo sob controle! Seus padrões financeiros estão saudáveis."}
	defaultSuggestion  = Advice{Type: Info, Message: "Nenhuma sugestão ou elogio específico no momento. Continue registrando suas transações!"}
)

// Advise evaluates the rule set over a report. Each condition fires at most
// once per pass. When nothing negative triggers, the alert list degrades to a
// single affirmation; an empty suggestion list degrades to a neutral message.
func Advise(r Report) (alerts, suggestions []Advice) {
	fired := make(map[string]bool)
	alert := func(id string, a Advice) {
		if !fired[id] {
			fired[id] = true
			alerts = append(alerts, a)
		}
	}
	suggest := func(id string, a Advice) {
		if !fired[id] {
			fired[id] = true
			suggestions = append(suggestions, a)
		}
	}

	if r.ExpenseTrend.Valid && r.ExpenseTrend.DeltaPercent > expenseSurgePercent {
		alert("expense-surge", Advice{
			Type:    Warning,
			Message: fmt.Sprintf("Seus gastos subiram %s em relação ao mês anterior (%s).", format.Percent(r.ExpenseTrend.DeltaPercent), r.ComparisonPeriod),
		})
	}
	if r.EfficiencyValid && r.EfficiencyRatio < 0 {
		alert("overspending", Advice{
			Type:    Warning,
			Message: fmt.Sprintf("Você gastou mais do que ganhou em %d: saldo de %s.", r.Year, format.Currency(r.YearNet)),
		})
	}
	if r.MonthsWithData > 0 && r.ForecastNet < 0 {
		alert("negative-forecast", Advice{
			Type:    Warning,
			Message: fmt.Sprintf("O saldo projetado para %d meses é negativo (%s).", r.HorizonMonths, format.Currency(r.ForecastNet)),
		})
	}
	if r.EfficiencyValid && r.EfficiencyRatio >= 0 && r.EfficiencyRatio < thinMarginRatio {
		alert("thin-margin", Advice{
			Type:    Info,
			Message: fmt.Sprintf("Sua margem de economia está apertada: sobra apenas %s da renda.", format.Percent(r.EfficiencyRatio)),
		})
	}

	if r.IncomeTrend.Valid && r.IncomeTrend.DeltaPercent < incomeDropPercent {
		suggest("income-drop", Advice{
			Type:    Info,
			Message: fmt.Sprintf("Sua renda caiu %s em relação ao mês anterior; revise os recebimentos recorrentes.", format.Percent(-r.IncomeTrend.DeltaPercent)),
		})
	}
	if share, name, ok := dominantCategory(r); ok {
		suggest("dominant-category", Advice{
			Type:    Info,
			Message: fmt.Sprintf("%q concentra %s dos seus gastos; é o primeiro lugar para cortar.", name, format.Percent(share)),
		})
	}
	if r.EfficiencyValid && r.Health == trend.Excellent {
		suggest("excellent", Advice{
			Type:    Success,
			Message: fmt.Sprintf("Excelente eficiência (%s). Considere direcionar o excedente para investimentos.", format.Percent(r.EfficiencyRatio)),
		})
	}
	if r.EfficiencyValid && r.Health != trend.Excellent && r.RecommendedSaving > 0 {
		suggest("saving-target", Advice{
			Type:    Info,
			Message: fmt.Sprintf("Tente reservar %s por mês, cerca de %s da sua renda média.", format.Currency(r.RecommendedSaving), format.Percent(savingRate*100)),
		})
	}

	if len(alerts) == 0 {
		alerts = []Advice{defaultAffirmation}
	}
	if len(suggestions) == 0 {
		suggestions = []Advice{defaultSuggestion}
	}
	return alerts, suggestions
}

// dominantCategory finds the largest category share of total projected
// spending, when it crosses the dominance threshold.
func dominantCategory(r Report) (share float64, name string, ok bool) {
	var total float64
	for _, c := range r.Categories {
		total += c.Projected
	}
	if total <= 0 || len(r.Categories) < 2 {
		return 0, "", false
	}
	top := r.Categories[0] // already sorted descending
	share = top.Projected / total * 100
	if share <= dominantShare {
		return 0, "", false
	}
	return share, top.Name, true
}
