package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/alert"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/config"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/domain/model"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/metrics"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/ingest"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/insight"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/pipeline/normalize"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/registry"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/scheduler"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/source"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/source/github"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/store/postgres"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/summarizer"
	"github.com/dgarciap88/Crypto-Intelligence-Platform/internal/tracing"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("pulse exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("pulse shut down gracefully")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracingEndpoint := ""
	if cfg.Tracing.Enabled {
		tracingEndpoint = cfg.Tracing.Endpoint
	}
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: "cip-pulse",
		Endpoint:    tracingEndpoint,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown error", "error", err)
		}
	}()

	db, err := postgres.New(postgres.Config{
		URL:             cfg.DB.URL,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.DB.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	projectRepo := postgres.NewProjectRepo(db)
	sourceRepo := postgres.NewSourceRepo(db)
	rawEventRepo := postgres.NewRawEventRepo(db)
	normalizedRepo := postgres.NewNormalizedEventRepo(db)
	insightRepo := postgres.NewInsightRepo(db)
	scheduleRepo := postgres.NewScheduleRepo(db)

	roster, err := registry.Load(cfg.Registry.ProjectsFile)
	if err != nil {
		return fmt.Errorf("load project roster: %w", err)
	}
	roster, err = registry.Filter(roster, cfg.Scheduler.ProjectFilter)
	if err != nil {
		return fmt.Errorf("apply project filter: %w", err)
	}
	if err := registry.Sync(ctx, projectRepo, sourceRepo, roster, logger); err != nil {
		return fmt.Errorf("sync project roster: %w", err)
	}

	adapters := source.NewRegistry(github.New(github.Config{
		APIURL:     cfg.GitHub.APIURL,
		Token:      cfg.GitHub.Token,
		FetchLimit: cfg.GitHub.FetchLimit,
		RateRPS:    cfg.GitHub.RateRPS,
		RateBurst:  cfg.GitHub.RateBurst,
		Timeout:    cfg.GitHub.Timeout,
	}, logger))

	openai := summarizer.NewOpenAI(summarizer.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		APIBase: cfg.OpenAI.APIBase,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout,
	}, logger)

	alerter := buildAlerter(cfg, logger)

	runner := pipeline.NewRunner(
		ingest.NewStage(adapters, sourceRepo, rawEventRepo, logger),
		normalize.NewStage(rawEventRepo, normalizedRepo, cfg.Registry.NormalizeBatchSize, logger),
		insight.NewStage(normalizedRepo, insightRepo, openai, insight.Config{
			Languages: cfg.Insight.Languages,
			Lookback:  time.Duration(cfg.Insight.LookbackDays) * 24 * time.Hour,
			Cooldown:  time.Duration(cfg.Insight.CooldownHours) * time.Hour,
			MaxEvents: cfg.Insight.MaxEvents,
			Force:     cfg.Insight.Force,
		}, logger),
		alerter,
		pipeline.Options{
			SkipIngest:   cfg.Scheduler.SkipIngest,
			SkipInsights: cfg.Scheduler.SkipInsights,
		},
		logger,
	)

	sched := scheduler.New(
		schedulePairs(roster),
		projectRepo,
		scheduleRepo,
		runner,
		scheduler.Config{
			Intervals: scheduler.Intervals{
				model.SourceTypeGitHub:  cfg.Scheduler.GitHubInterval,
				model.SourceTypeTwitter: cfg.Scheduler.TwitterInterval,
				model.SourceTypeOnchain: cfg.Scheduler.OnchainInterval,
			},
			CheckInterval: cfg.Scheduler.CheckInterval,
			ProjectDelay:  cfg.Scheduler.ProjectDelay,
		},
		logger,
	)

	if cfg.Scheduler.Mode == config.RunModeOnce {
		report, err := sched.RunOnce(ctx)
		if err != nil {
			return fmt.Errorf("one-shot run: %w", err)
		}
		logTickReport(logger, report)
		return nil
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runHealthServer(gCtx, cfg.Server.HealthPort, logger)
	})

	g.Go(func() error {
		return sched.RunContinuous(gCtx)
	})

	startDBPoolStatsPump(gCtx, db, logger)

	g.Go(func() error {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// schedulePairs derives the scheduling units from the roster: one pair per
// (project, configured source type).
func schedulePairs(roster []registry.Project) []model.SchedulePair {
	var pairs []model.SchedulePair
	for _, p := range roster {
		for _, st := range p.SourceTypes() {
			pairs = append(pairs, model.SchedulePair{ProjectID: p.ProjectID, SourceType: st})
		}
	}
	return pairs
}

func buildAlerter(cfg *config.Config, logger *slog.Logger) alert.Alerter {
	var channels []alert.Alerter
	if cfg.Alert.SlackURL != "" {
		channels = append(channels, alert.NewSlackAlerter(cfg.Alert.SlackURL))
	}
	if cfg.Alert.WebhookURL != "" {
		channels = append(channels, alert.NewWebhookAlerter(cfg.Alert.WebhookURL))
	}
	if len(channels) == 0 {
		return &alert.NoopAlerter{}
	}
	cooldown := time.Duration(cfg.Alert.CooldownMin) * time.Minute
	return alert.NewMultiAlerter(cooldown, logger, channels...)
}

func logTickReport(logger *slog.Logger, report scheduler.TickReport) {
	for _, pr := range report.Reports {
		logger.Info("pair finished",
			"pair", pr.Pair.String(),
			"state", pr.State,
			"ingest", pr.Report.Ingest.Status,
			"normalize", pr.Report.Normalize.Status,
			"insight", pr.Report.Insight.Status,
			"elapsed", pr.Report.Elapsed,
		)
	}
	logger.Info("run complete", "checked", report.Checked, "due", report.Due)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startDBPoolStatsPump publishes sql.DB pool stats every 15 seconds.
func startDBPoolStatsPump(ctx context.Context, db *postgres.DB, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := db.Stats()
				metrics.DBPoolOpen.Set(float64(stats.OpenConnections))
				metrics.DBPoolInUse.Set(float64(stats.InUse))
				metrics.DBPoolIdle.Set(float64(stats.Idle))
			}
		}
	}()
	logger.Debug("db pool stats pump started")
}

func runHealthServer(ctx context.Context, port int, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			logger.Warn("failed to write health response", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
			logger.Warn("health server shutdown error", "error", err)
		}
	}()

	logger.Info("health server started", "port", port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}
