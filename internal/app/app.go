package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/matchday/prediction-league/internal/config"
	"github.com/matchday/prediction-league/internal/domain/fixture"
	"github.com/matchday/prediction-league/internal/domain/prediction"
	"github.com/matchday/prediction-league/internal/domain/round"
	"github.com/matchday/prediction-league/internal/domain/scoring"
	"github.com/matchday/prediction-league/internal/domain/user"
	"github.com/matchday/prediction-league/internal/infrastructure/repository/memory"
	"github.com/matchday/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/matchday/prediction-league/internal/interfaces/httpapi"
	"github.com/matchday/prediction-league/internal/platform/cache"
	idgen "github.com/matchday/prediction-league/internal/platform/id"
	"github.com/matchday/prediction-league/internal/platform/logging"
	"github.com/matchday/prediction-league/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server, the storage handle, and the background sweep
// that settles closed rounds whose deadline has passed.
type App struct {
	cfg     config.Config
	logger  *slog.Logger
	server  *http.Server
	scoring *usecase.ScoringService
	closeDB func() error
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		roundRepo      round.Repository
		fixtureRepo    fixture.Repository
		predictionRepo prediction.Repository
		userRepo       user.Repository
		scoringStore   scoring.Store
		closeDB        func() error
	)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		memory.SeedStore(store, time.Now().UTC())
		roundRepo = memory.NewRoundRepository(store)
		fixtureRepo = memory.NewFixtureRepository(store)
		predictionRepo = memory.NewPredictionRepository(store)
		userRepo = memory.NewUserRepository(store)
		scoringStore = memory.NewScoringStore(store)
	case config.StoragePostgres:
		db, err := otelsqlx.Connect("postgres",
			normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		closeDB = db.Close
		roundRepo = postgres.NewRoundRepository(db)
		fixtureRepo = postgres.NewFixtureRepository(db)
		predictionRepo = postgres.NewPredictionRepository(db)
		userRepo = postgres.NewUserRepository(db)
		scoringStore = postgres.NewScoringStore(db)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	var standingsCache *cache.Store
	if cfg.CacheEnabled {
		standingsCache = cache.NewStore(cfg.CacheTTL)
	}

	appLogger := logging.Default()
	generator := idgen.NewRandomGenerator()

	roundSvc := usecase.NewRoundService(roundRepo, generator, appLogger)
	fixtureSvc := usecase.NewFixtureService(roundRepo, fixtureRepo, generator, appLogger)
	predictionSvc := usecase.NewPredictionService(roundRepo, fixtureRepo, predictionRepo, userRepo, generator, appLogger)
	scoringSvc := usecase.NewScoringService(scoringStore, roundRepo, standingsCache, appLogger, cfg.ScoreDueMaxWorkers)
	standingsSvc := usecase.NewStandingsService(roundRepo, predictionRepo, userRepo, standingsCache, appLogger)

	handler := httpapi.NewHandler(roundSvc, fixtureSvc, predictionSvc, scoringSvc, standingsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.OperatorToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		server:  server,
		scoring: scoringSvc,
		closeDB: closeDB,
	}, nil
}

// Run serves HTTP and the score-due sweep until ctx is cancelled, then shuts
// down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr, "storage", a.cfg.StorageDriver)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go a.runScoreDueSweep(sweepCtx)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	stopSweep()
	if a.closeDB != nil {
		if err := a.closeDB(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
	}

	a.logger.Info("http server stopped")
	return nil
}

func (a *App) runScoreDueSweep(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.ScoreDueInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			summary, err := a.scoring.ScoreDueRounds(ctx, tick.UTC())
			if err != nil {
				a.logger.ErrorContext(ctx, "score due sweep failed", "error", err)
				continue
			}
			if summary.Attempted > 0 {
				a.logger.InfoContext(ctx, "score due sweep finished",
					"attempted", summary.Attempted,
					"completed", len(summary.Completed),
					"skipped", len(summary.Skipped),
				)
			}
		}
	}
}
