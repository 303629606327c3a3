package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"financas/internal/api"
	"financas/internal/cache"
	"financas/internal/charts"
	"financas/internal/config"
	"financas/internal/format"
	"financas/internal/log"
	"financas/internal/present"
	"financas/internal/query"
	"financas/internal/trend"
)

func main() {
	// .env is optional, real env vars win either way.
	_ = godotenv.Load()

	mode := flag.String("mode", "dashboard", "view to render: dashboard | analytics | projections | goals")
	year := flag.Int("year", time.Now().Year(), "reference year")
	month := flag.Int("month", 0, "reference month 1-12, 0 for the whole period")
	category := flag.String("category", "", "category name filter (analytics)")
	horizon := flag.Int("horizon", 0, "forecast horizon in months (projections)")
	chartDir := flag.String("charts", "", "write chart PNGs to this directory")
	flag.Parse()

	cfg := config.Load()
	if *chartDir != "" {
		cfg.ChartDir = *chartDir
	}
	if *horizon != 0 {
		cfg.ForecastHorizon = *horizon
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentApp,
		JSON:      cfg.LogFormat == "json",
	})
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	responses := cache.NewLRU[[]byte](cfg.CacheSize, cfg.CacheTTL)
	go cache.NewSweeper(responses).Run(ctx, cfg.CacheTTL)

	client := api.New(cfg.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		api.WithLogger(logger),
		api.WithCache(responses),
	)
	renderer := charts.NewRenderer(logger)

	startup := log.NewFields().WithOperation(log.OpStartup).WithPeriod(*year, *month)
	startup[log.FieldMode] = *mode
	logger.InfoContext(ctx, "starting", startup.ToSlice()...)

	var err error
	switch *mode {
	case "dashboard":
		err = runDashboard(ctx, client, logger, renderer, cfg.ChartDir, *year, *month)
	case "analytics":
		err = runAnalytics(ctx, client, logger, renderer, cfg.ChartDir, *month, *category)
	case "projections":
		err = runProjections(ctx, client, logger, renderer, cfg.ChartDir, *year, cfg.ForecastHorizon)
	case "goals":
		err = runGoals(ctx, client, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.ErrorContext(ctx, "run failed", log.FieldMode, *mode, log.FieldError, err.Error())
		os.Exit(1)
	}
}

func runDashboard(ctx context.Context, client *api.Client, logger *log.Logger, renderer *charts.Renderer, chartDir string, year, month int) error {
	loader := query.NewDashboardLoader(client, logger, nil)
	defer loader.Cancel()

	filter := api.DashboardFilter{}
	if month != 0 {
		filter = api.DashboardFilter{Year: year, Month: month}
	}
	summary, err := loader.Reload(ctx, filter)
	if err != nil {
		return err
	}

	view := present.Dashboard(summary)
	fmt.Printf("Dashboard - %s\n\n", view.Reference)
	fmt.Printf("  Receitas:        %s\n", view.IncomeCard)
	fmt.Printf("  Gastos:          %s\n", view.ExpenseCard)
	fmt.Printf("  Saldo projetado: %s\n\n", view.BalanceCard)

	if len(view.ByCategory) > 0 {
		fmt.Println("Gastos por categoria:")
		for _, s := range view.ByCategory {
			fmt.Printf("  %-28s %s\n", s.Name, format.Currency(s.Value))
		}
		fmt.Println()
	}
	if len(view.ByStatus) > 0 {
		fmt.Println("Por status:")
		for _, b := range view.ByStatus {
			fmt.Printf("  %-28s %s\n", b.Name, b.Label)
		}
	}

	if chartDir != "" {
		png, err := renderer.CategoryDonut("Gastos por categoria", view.ByCategory)
		if err != nil {
			return err
		}
		if _, err := renderer.WritePNG(chartDir, "dashboard-categorias.png", png); err != nil {
			return err
		}
	}
	return nil
}

func runAnalytics(ctx context.Context, client *api.Client, logger *log.Logger, renderer *charts.Renderer, chartDir string, month int, category string) error {
	loader := query.NewAnalyticsLoader(client, logger, nil)
	defer loader.Cancel()

	page, err := loader.Reload(ctx, api.AnalyticsFilter{Month: month, Category: category})
	if err != nil {
		return err
	}

	view := present.Analytics(page.Summary)
	fmt.Println("Saldo mensal:")
	for _, p := range view.Months {
		fmt.Printf("  %-8s receita %14s  despesa %14s  saldo %14s\n",
			p.Label, format.Currency(p.Income), format.Currency(p.Expense), format.Currency(p.Net))
	}
	if len(view.ByCategory) > 0 {
		fmt.Println("\nGastos por categoria:")
		for _, s := range view.ByCategory {
			fmt.Printf("  %-28s %s\n", s.Name, format.Currency(s.Value))
		}
	}

	if chartDir != "" {
		png, err := renderer.MonthlyBalance(view.Months)
		if err != nil {
			return err
		}
		if _, err := renderer.WritePNG(chartDir, "saldo-mensal.png", png); err != nil {
			return err
		}
		donut, err := renderer.CategoryDonut("Gastos por categoria", view.ByCategory)
		if err != nil {
			return err
		}
		if _, err := renderer.WritePNG(chartDir, "analise-categorias.png", donut); err != nil {
			return err
		}
	}
	return nil
}

func runProjections(ctx context.Context, client *api.Client, logger *log.Logger, renderer *charts.Renderer, chartDir string, year, horizon int) error {
	loader := query.NewProjectionsLoader(client, logger, nil)
	defer loader.Cancel()

	report, err := loader.Reload(ctx, query.ProjectionsQuery{Year: year, Horizon: horizon})
	if err != nil {
		return err
	}

	view := present.Projections(report)
	fmt.Printf("Projeções %d (%d meses com dados)\n\n", report.Year, report.MonthsWithData)
	fmt.Printf("  Receita média mensal: %s\n", format.Currency(report.AvgMonthlyIncome))
	fmt.Printf("  Despesa média mensal: %s\n", format.Currency(report.AvgMonthlyExpense))
	fmt.Printf("  Despesa média diária: %s\n", format.Currency(report.AvgDailyExpense))
	fmt.Printf("  Previsão %d meses: receita %s, despesa %s, saldo %s\n\n",
		report.HorizonMonths,
		format.Currency(report.ForecastIncome),
		format.Currency(report.ForecastExpense),
		format.Currency(report.ForecastNet))

	if report.MonthsWithData > 0 {
		fmt.Printf("  Saúde financeira: %s", report.Health)
		if report.EfficiencyValid {
			fmt.Printf(" (eficiência %s)", format.Percent(report.EfficiencyRatio))
		}
		fmt.Println()
		fmt.Printf("  Economia recomendada: %s por mês\n\n", format.Currency(report.RecommendedSaving))
	}

	printTrendCard(view.ExpenseTrend)
	printTrendCard(view.IncomeTrend)
	if report.ComparisonPeriod != "" {
		fmt.Printf("  Comparação: %s\n", report.ComparisonPeriod)
	}
	fmt.Println()

	if len(view.CategoryBars) > 0 {
		fmt.Println("Projeção por categoria:")
		for _, b := range view.CategoryBars {
			fmt.Printf("  %-28s %s\n", b.Name, b.Label)
		}
		fmt.Println()
	}

	fmt.Println("Alertas:")
	for _, a := range view.Alerts {
		fmt.Printf("  [%s] %s\n", a.Type, a.Message)
	}
	fmt.Println("Sugestões:")
	for _, s := range view.Suggestions {
		fmt.Printf("  [%s] %s\n", s.Type, s.Message)
	}

	if chartDir != "" {
		png, err := renderer.CategoryProjections(view.CategoryBars)
		if err != nil {
			return err
		}
		if _, err := renderer.WritePNG(chartDir, "projecao-categorias.png", png); err != nil {
			return err
		}
	}
	return nil
}

func runGoals(ctx context.Context, client *api.Client, logger *log.Logger) error {
	loader := query.NewGoalsLoader(client, logger, nil)
	defer loader.Cancel()

	goals, err := loader.Reload(ctx, struct{}{})
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "goals loaded", log.FieldCount, len(goals))

	cards := present.Goals(goals, time.Now())
	if len(cards) == 0 {
		fmt.Println("Nenhuma meta cadastrada.")
		return nil
	}
	for _, c := range cards {
		fmt.Printf("%s (%s)\n", c.Name, c.TypeLabel)
		if c.Description != "" {
			fmt.Printf("  %s\n", c.Description)
		}
		fmt.Printf("  Alvo %s, atingido %s, restante %s (%s)\n",
			c.Target, c.Achieved, c.Remaining, c.ProgressText)
		if c.CompletionStatus != "" {
			fmt.Printf("  %s\n", c.CompletionStatus)
		} else {
			fmt.Printf("  Prazo: %s (%s)\n", c.DueDate, c.DaysRemaining)
		}
		fmt.Println()
	}
	return nil
}

func printTrendCard(c present.TrendCard) {
	arrow := "→"
	switch c.Direction {
	case trend.Up:
		arrow = "↑"
	case trend.Down:
		arrow = "↓"
	}
	reading := "neutra"
	if !c.Neutral {
		if c.Favorable {
			reading = "favorável"
		} else {
			reading = "desfavorável"
		}
	}
	fmt.Printf("  %s: %s %s (%s)\n", c.Title, arrow, c.Value, reading)
}
