package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/pretium/internal/common"
	"github.com/ternarybob/pretium/internal/handlers"
	"github.com/ternarybob/pretium/internal/interfaces"
	"github.com/ternarybob/pretium/internal/models"
	"github.com/ternarybob/pretium/internal/services/scheduler"
	"github.com/ternarybob/pretium/internal/services/stocks"
	"github.com/ternarybob/pretium/internal/storage/csvtable"
	"github.com/ternarybob/pretium/internal/yahoo"
)

// App holds all application components and dependencies
type App struct {
	Config    *common.Config
	Logger    arbor.ILogger
	ctx       context.Context
	cancelCtx context.CancelFunc

	// Storage
	RawStore      interfaces.TableStore
	AnalyzedStore interfaces.TableStore

	// Services
	Fetcher      interfaces.QuoteFetcher
	StockService *stocks.Service
	Scheduler    *scheduler.Scheduler

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	StockHandler   *handlers.StockHandler
	CollectHandler *handlers.CollectHandler
	StatusHandler  *handlers.StatusHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	if logger == nil {
		logger = common.GetLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:    cfg,
		Logger:    logger,
		ctx:       ctx,
		cancelCtx: cancel,
	}

	app.initStorage()
	app.initServices()
	app.initHandlers()

	if cfg.Scheduler.Enabled {
		if err := app.Scheduler.Start(cfg.Scheduler.Schedule); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	logger.Info().
		Str("raw_table", cfg.RawTablePath()).
		Str("analyzed_table", cfg.AnalyzedTablePath()).
		Int("symbols", len(app.StockService.Symbols())).
		Bool("scheduler_enabled", cfg.Scheduler.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initStorage() {
	a.RawStore = csvtable.New(a.Config.RawTablePath(), models.RawColumns, a.Logger)
	a.AnalyzedStore = csvtable.New(a.Config.AnalyzedTablePath(), models.AnalyzedColumns, a.Logger)
}

func (a *App) initServices() {
	a.Fetcher = yahoo.NewClient(
		yahoo.WithBaseURL(a.Config.Fetcher.BaseURL),
		yahoo.WithUserAgent(a.Config.Fetcher.UserAgent),
		yahoo.WithTimeout(a.Config.Fetcher.RequestTimeout),
		yahoo.WithRateInterval(a.Config.Fetcher.RateLimit),
		yahoo.WithLogger(a.Logger),
	)

	a.StockService = stocks.NewService(
		a.Config.Stocks.Symbols,
		a.Fetcher,
		a.RawStore,
		a.AnalyzedStore,
		a.Logger,
	)

	a.Scheduler = scheduler.NewScheduler(a.StockService, a.Logger)
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.StockHandler = handlers.NewStockHandler(a.StockService, a.Logger)
	a.CollectHandler = handlers.NewCollectHandler(a.StockService, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.Config, a.RawStore, a.AnalyzedStore, a.Logger)
}

// CollectOnce runs a single foreground collection pass for the -collect flag.
func (a *App) CollectOnce(ctx context.Context) (*models.CollectResult, error) {
	return a.StockService.Collect(ctx)
}

// Context returns the application lifecycle context.
func (a *App) Context() context.Context {
	return a.ctx
}

// Close releases application resources
func (a *App) Close() error {
	if a.Config.Scheduler.Enabled && a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	a.cancelCtx()
	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
