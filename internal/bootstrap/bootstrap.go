package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	feedbackinadapter "pulse/internal/modules/feedback/adapter/in"
	feedbackoutadapter "pulse/internal/modules/feedback/adapter/out"
	feedbackservice "pulse/internal/modules/feedback/service"
	feedbackusecase "pulse/internal/modules/feedback/usecase"
	metricsinadapter "pulse/internal/modules/metrics/adapter/in"
	metricsoutadapter "pulse/internal/modules/metrics/adapter/out"
	metricsservice "pulse/internal/modules/metrics/service"
	metricsusecase "pulse/internal/modules/metrics/usecase"
	navinadapter "pulse/internal/modules/navigation/adapter/in"
	navoutadapter "pulse/internal/modules/navigation/adapter/out"
	navout "pulse/internal/modules/navigation/port/out"
	navservice "pulse/internal/modules/navigation/service"
	navusecase "pulse/internal/modules/navigation/usecase"
	"pulse/internal/platform/clock"
	"pulse/internal/platform/config"
	"pulse/internal/platform/id"
	"pulse/internal/platform/logging"
	uiapp "pulse/internal/ui/app"
)

type App struct {
	NavigationCLI navinadapter.CLIHandler
	FeedbackCLI   feedbackinadapter.CLIHandler
	MetricsCLI    metricsinadapter.CLIHandler

	Config config.Config
	Logger *zap.Logger

	closers []io.Closer
}

// New wires the modules against cfg. Callers own the returned App and must
// Close it.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	clk := clock.SystemClock{}
	sched := clock.SystemScheduler{}

	app := &App{Config: cfg, Logger: logger}

	store, err := newFlagStore(cfg, app)
	if err != nil {
		return nil, err
	}
	logger.Debug("flag store ready", zap.String("backend", cfg.FlagStore))

	navSvc := navservice.NewNavigationService(store, sched, cfg.StartupDelay, logger)
	app.NavigationCLI = navinadapter.NewCLIHandler(navusecase.NewInteractor(navSvc))

	feedbackSvc := feedbackservice.NewFeedbackService(
		clk,
		id.UUID{},
		sched,
		feedbackoutadapter.NewLogSubmitter(logger),
		cfg.FeedbackDelay,
		cfg.AppVersion,
		logger,
	)
	app.FeedbackCLI = feedbackinadapter.NewCLIHandler(feedbackusecase.NewInteractor(feedbackSvc))

	metricsSvc := metricsservice.NewMetricsService(
		metricsoutadapter.NewSyntheticSource(clk, uint64(time.Now().UnixNano())),
		sched,
		cfg.RefreshDelay,
		logger,
	)
	app.MetricsCLI = metricsinadapter.NewCLIHandler(metricsusecase.NewInteractor(metricsSvc))

	return app, nil
}

func newFlagStore(cfg config.Config, app *App) (navout.FlagStore, error) {
	switch cfg.FlagStore {
	case config.FlagStoreFile:
		return navoutadapter.NewFileFlagStore(cfg.FlagsPath), nil
	case config.FlagStoreSQLite, "":
		store, err := navoutadapter.NewSQLiteFlagStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("new sqlite flag store: %w", err)
		}
		app.closers = append(app.closers, store)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown flag store %q", cfg.FlagStore)
	}
}

// Close releases stores opened by New and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	// Sync on stderr returns EINVAL on some platforms; ignore it.
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.AppVersion, app.NavigationCLI, app.MetricsCLI, app.FeedbackCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
