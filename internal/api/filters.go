package api

import (
	"fmt"
	"net/url"
	"strconv"

	"financas/internal/core"
)

// TransactionFilter narrows the transaction listing. Zero values mean
// "no constraint". Validated locally so a bad filter never reaches the wire.
type TransactionFilter struct {
	Description string
	MinAmount   *core.Money
	MaxAmount   *core.Money
	From        *core.Date
	To          *core.Date
	CategoryID  int64
	Kind        core.Kind
	Status      core.Status
}

func (f TransactionFilter) Validate() error {
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.Cents > f.MaxAmount.Cents {
		return fmt.Errorf("%w: minimum amount above maximum", ErrInvalidFilter)
	}
	if f.From != nil && f.To != nil && f.From.After(f.To.Time) {
		return fmt.Errorf("%w: start date after end date", ErrInvalidFilter)
	}
	if f.Kind != "" {
		if _, err := core.ParseKind(string(f.Kind)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}
	if f.Status != "" {
		if _, err := core.ParseStatus(string(f.Status)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}
	return nil
}

func (f TransactionFilter) query() url.Values {
	q := url.Values{}
	if f.Description != "" {
		q.Set("descricao", f.Description)
	}
	if f.MinAmount != nil {
		q.Set("valor_min", f.MinAmount.String())
	}
	if f.MaxAmount != nil {
		q.Set("valor_max", f.MaxAmount.String())
	}
	if f.From != nil {
		q.Set("data_inicio", f.From.Key())
	}
	if f.To != nil {
		q.Set("data_fim", f.To.Key())
	}
	if f.CategoryID != 0 {
		q.Set("categoria", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Kind != "" {
		q.Set("tipo", string(f.Kind))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	return q
}

// DashboardFilter selects the dashboard period. Both fields zero means the
// whole history; otherwise both must be set.
type DashboardFilter struct {
	Year  int
	Month int
}

func (f DashboardFilter) Validate() error {
	if f.Year == 0 && f.Month == 0 {
		return nil
	}
	if f.Year <= 0 {
		return fmt.Errorf("%w: year required with month", ErrInvalidFilter)
	}
	if f.Month < 1 || f.Month > 12 {
		return fmt.Errorf("%w: month must be 1-12", ErrInvalidFilter)
	}
	return nil
}

func (f DashboardFilter) query() url.Values {
	q := url.Values{}
	if f.Year != 0 {
		q.Set("ano", strconv.Itoa(f.Year))
		q.Set("mes", strconv.Itoa(f.Month))
	}
	return q
}

// AnalyticsFilter narrows the analytics series. Month zero means all months.
type AnalyticsFilter struct {
	Month    int
	Category string
}

func (f AnalyticsFilter) Validate() error {
	if f.Month != 0 && (f.Month < 1 || f.Month > 12) {
		return fmt.Errorf("%w: month must be 1-12", ErrInvalidFilter)
	}
	return nil
}

func (f AnalyticsFilter) query() url.Values {
	q := url.Values{}
	if f.Month != 0 {
		q.Set("mes", strconv.Itoa(f.Month))
	}
	if f.Category != "" {
		q.Set("categoria_nome", f.Category)
	}
	return q
}
