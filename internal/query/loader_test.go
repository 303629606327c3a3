package query

import (
	"context"
	"errors"
	"sync"
	"testing"

	"financas/internal/api"
	"financas/internal/core"
	"financas/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestReloadAppliesValue(t *testing.T) {
	var swapped []string
	l := NewLoader(func(ctx context.Context, q string) (int, error) {
		return len(q), nil
	}, testLogger(), func(q string, v int) {
		swapped = append(swapped, q)
	})

	if _, _, ok := l.Snapshot(); ok {
		t.Fatalf("Snapshot reported loaded before first reload")
	}

	v, err := l.Reload(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if v != 3 {
		t.Fatalf("Reload = %d, want 3", v)
	}

	got, q, ok := l.Snapshot()
	if !ok || got != 3 || q != "abc" {
		t.Fatalf("Snapshot = %d, %q, %v", got, q, ok)
	}
	if len(swapped) != 1 || swapped[0] != "abc" {
		t.Fatalf("onSwap calls = %v", swapped)
	}
}

func TestReloadErrorKeepsPriorValue(t *testing.T) {
	fail := false
	l := NewLoader(func(ctx context.Context, q string) (int, error) {
		if fail {
			return 0, errors.New("backend down")
		}
		return 1, nil
	}, testLogger(), nil)

	if _, err := l.Reload(context.Background(), "a"); err != nil {
		t.Fatalf("first reload: %v", err)
	}

	fail = true
	if _, err := l.Reload(context.Background(), "b"); err == nil {
		t.Fatalf("expected error from failing fetch")
	}

	got, q, ok := l.Snapshot()
	if !ok || got != 1 || q != "a" {
		t.Fatalf("failed reload must not clobber snapshot, got %d, %q, %v", got, q, ok)
	}
}

// A slow first fetch must not overwrite the result of a faster second one.
func TestStaleResponseNeverOverwritesNewer(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	calls := 0
	var mu sync.Mutex
	l := NewLoader(func(ctx context.Context, q string) (string, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
		}
		return q, nil
	}, testLogger(), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = l.Reload(context.Background(), "stale")
	}()

	<-firstStarted
	if _, err := l.Reload(context.Background(), "fresh"); err != nil {
		t.Fatalf("second reload: %v", err)
	}

	close(releaseFirst)
	wg.Wait()

	if !errors.Is(firstErr, context.Canceled) {
		t.Fatalf("superseded reload err = %v, want context.Canceled", firstErr)
	}
	got, _, _ := l.Snapshot()
	if got != "fresh" {
		t.Fatalf("Snapshot = %q, stale response overwrote newer one", got)
	}
}

func TestReloadCancelsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})

	first := true
	l := NewLoader(func(ctx context.Context, q string) (string, error) {
		if first {
			first = false
			close(started)
			<-ctx.Done()
			close(cancelled)
			return "", ctx.Err()
		}
		return q, nil
	}, testLogger(), nil)

	go l.Reload(context.Background(), "slow")
	<-started

	if _, err := l.Reload(context.Background(), "next"); err != nil {
		t.Fatalf("second reload: %v", err)
	}
	<-cancelled
}

// onSwap runs in apply order, so after a burst of concurrent reloads the
// last callback must carry the value the snapshot settled on.
func TestSwapCallbackMatchesFinalSnapshot(t *testing.T) {
	var cbMu sync.Mutex
	last := -1
	l := NewLoader(func(ctx context.Context, q int) (int, error) {
		return q, nil
	}, testLogger(), func(q, v int) {
		cbMu.Lock()
		last = v
		cbMu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Reload(context.Background(), n)
		}(i)
	}
	wg.Wait()

	got, _, ok := l.Snapshot()
	if !ok {
		t.Fatalf("no reload applied")
	}
	cbMu.Lock()
	defer cbMu.Unlock()
	if last != got {
		t.Fatalf("last onSwap value = %d, snapshot = %d", last, got)
	}
}

func TestCancelAbortsInFlightFetch(t *testing.T) {
	started := make(chan struct{})

	l := NewLoader(func(ctx context.Context, q string) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	}, testLogger(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := l.Reload(context.Background(), "slow")
		done <- err
	}()

	<-started
	l.Cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled reload err = %v, want context.Canceled", err)
	}
	if _, _, ok := l.Snapshot(); ok {
		t.Fatalf("cancelled reload must not apply a value")
	}
}

type fakeBackend struct {
	mu           sync.Mutex
	analytics    core.AnalyticsSummary
	categories   []core.Category
	goals        []core.Goal
	errAnalytics error

	analyticsCalls  int
	categoriesCalls int
}

func (f *fakeBackend) Dashboard(ctx context.Context, _ api.DashboardFilter) (core.DashboardSummary, error) {
	return core.DashboardSummary{}, nil
}

func (f *fakeBackend) Analytics(ctx context.Context, _ api.AnalyticsFilter) (core.AnalyticsSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyticsCalls++
	if f.errAnalytics != nil {
		return core.AnalyticsSummary{}, f.errAnalytics
	}
	return f.analytics, nil
}

func (f *fakeBackend) Categories(ctx context.Context) ([]core.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoriesCalls++
	return f.categories, nil
}

func (f *fakeBackend) Goals(ctx context.Context) ([]core.Goal, error) {
	return f.goals, nil
}

func TestAnalyticsLoaderFetchesBothEndpoints(t *testing.T) {
	backend := &fakeBackend{
		analytics: core.AnalyticsSummary{
			Months: []core.MonthBucket{{Year: 2025, Month: 5, Income: core.MustMoney("100.00")}},
		},
		categories: []core.Category{{ID: 1, Name: "Moradia", Type: core.CategoryDespesa}},
	}

	l := NewAnalyticsLoader(backend, testLogger(), nil)
	page, err := l.Reload(context.Background(), api.AnalyticsFilter{})
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(page.Summary.Months) != 1 || len(page.Categories) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if backend.analyticsCalls != 1 || backend.categoriesCalls != 1 {
		t.Fatalf("calls = %d analytics, %d categories", backend.analyticsCalls, backend.categoriesCalls)
	}
}

func TestAnalyticsLoaderPropagatesError(t *testing.T) {
	backend := &fakeBackend{errAnalytics: errors.New("boom")}

	l := NewAnalyticsLoader(backend, testLogger(), nil)
	if _, err := l.Reload(context.Background(), api.AnalyticsFilter{}); err == nil {
		t.Fatalf("expected error when one endpoint fails")
	}
	if _, _, ok := l.Snapshot(); ok {
		t.Fatalf("failed page must not be applied")
	}
}

func TestProjectionsLoaderBuildsReport(t *testing.T) {
	backend := &fakeBackend{
		analytics: core.AnalyticsSummary{
			Months: []core.MonthBucket{
				{Year: 2025, Month: 4, Income: core.MustMoney("5000.00"), Expense: core.MustMoney("3000.00"), Net: core.MustMoney("2000.00")},
				{Year: 2025, Month: 5, Income: core.MustMoney("5000.00"), Expense: core.MustMoney("4000.00"), Net: core.MustMoney("1000.00")},
			},
		},
	}

	l := NewProjectionsLoader(backend, testLogger(), nil)
	report, err := l.Reload(context.Background(), ProjectionsQuery{Year: 2025})
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if report.MonthsWithData != 2 {
		t.Fatalf("MonthsWithData = %d", report.MonthsWithData)
	}
	if report.HorizonMonths != 3 {
		t.Fatalf("default horizon = %d, want 3", report.HorizonMonths)
	}
}
