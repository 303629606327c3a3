package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"financas/internal/api"
	"financas/internal/core"
	"financas/internal/forecast"
	"financas/internal/log"
)

// Backend is the slice of the REST client the page fetchers need.
type Backend interface {
	Dashboard(ctx context.Context, f api.DashboardFilter) (core.DashboardSummary, error)
	Analytics(ctx context.Context, f api.AnalyticsFilter) (core.AnalyticsSummary, error)
	Categories(ctx context.Context) ([]core.Category, error)
	Goals(ctx context.Context) ([]core.Goal, error)
}

// AnalyticsPage is everything the analytics view needs: the aggregated
// series plus the category list for the filter control.
type AnalyticsPage struct {
	Summary    core.AnalyticsSummary
	Categories []core.Category
}

// ProjectionsQuery selects the forecast year and horizon.
type ProjectionsQuery struct {
	Year    int
	Horizon int
}

// NewDashboardLoader builds a loader over the dashboard endpoint.
func NewDashboardLoader(b Backend, logger *log.Logger, onSwap func(api.DashboardFilter, core.DashboardSummary)) *Loader[api.DashboardFilter, core.DashboardSummary] {
	return NewLoader(b.Dashboard, logger, onSwap)
}

// NewAnalyticsLoader builds a loader that fetches the analytics summary and
// the category list concurrently, failing the page if either fetch fails.
func NewAnalyticsLoader(b Backend, logger *log.Logger, onSwap func(api.AnalyticsFilter, AnalyticsPage)) *Loader[api.AnalyticsFilter, AnalyticsPage] {
	fetch := func(ctx context.Context, f api.AnalyticsFilter) (AnalyticsPage, error) {
		var page AnalyticsPage
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			summary, err := b.Analytics(gctx, f)
			if err != nil {
				return err
			}
			page.Summary = summary
			return nil
		})
		g.Go(func() error {
			categories, err := b.Categories(gctx)
			if err != nil {
				return err
			}
			page.Categories = categories
			return nil
		})
		if err := g.Wait(); err != nil {
			return AnalyticsPage{}, err
		}
		return page, nil
	}
	return NewLoader(fetch, logger, onSwap)
}

// NewProjectionsLoader builds a loader that derives the forecast report
// from the full analytics history.
func NewProjectionsLoader(b Backend, logger *log.Logger, onSwap func(ProjectionsQuery, forecast.Report)) *Loader[ProjectionsQuery, forecast.Report] {
	fetch := func(ctx context.Context, q ProjectionsQuery) (forecast.Report, error) {
		summary, err := b.Analytics(ctx, api.AnalyticsFilter{})
		if err != nil {
			return forecast.Report{}, err
		}
		horizon := q.Horizon
		if horizon <= 0 {
			horizon = forecast.DefaultHorizonMonths
		}
		return forecast.BuildHorizon(q.Year, horizon, summary.Months, summary.CategoryMonths), nil
	}
	return NewLoader(fetch, logger, onSwap)
}

// NewGoalsLoader builds a loader over the goals endpoint.
func NewGoalsLoader(b Backend, logger *log.Logger, onSwap func(struct{}, []core.Goal)) *Loader[struct{}, []core.Goal] {
	fetch := func(ctx context.Context, _ struct{}) ([]core.Goal, error) {
		return b.Goals(ctx)
	}
	return NewLoader(fetch, logger, onSwap)
}
