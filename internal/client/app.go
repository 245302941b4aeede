package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/tui"
	"github.com/MKhiriev/go-note-keeper/internal/workers"
)

// App is the interactive note client. It owns the client service graph and
// the terminal UI, and drives the login -> session -> logout lifecycle.
type App struct {
	cfg      *config.ClientConfig
	logger   *logger.Logger
	services *service.ClientServices
	tui      *tui.TUI
}

func NewApp() (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	log := logger.NewClientLogger("client")

	store := adapter.NewHTTPNoteStore(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.ServerURL,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	services := service.NewClientServices(store, cfg.Trash.GracePeriod, log)

	ui, err := tui.New(services, log)
	if err != nil {
		return nil, fmt.Errorf("create tui: %w", err)
	}

	log.Info().
		Str("server_url", cfg.Adapter.ServerURL).
		Dur("grace_period", cfg.Trash.GracePeriod).
		Msg("client application created")

	return &App{cfg: cfg, logger: log, services: services, tui: ui}, nil
}

// Run blocks until the user quits. A logout tears the session down and
// restarts the login flow against the same service graph, so pending
// deletion timers are cancelled between sessions.
func (a *App) Run() error {
	ctx := context.Background()

	userID, err := a.tui.LoginFlow(ctx)
	if err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return fmt.Errorf("login flow: %w", err)
	}

	a.logger.Info().Int64("user_id", userID).Msg("user session started")

	jobs := workers.NewWorkers(
		workers.NewRefreshWorker(a.services.Notes, userID, a.cfg.Workers.RefreshInterval, a.logger),
	)
	jobs.Run()

	logout, err := a.tui.MainLoop(ctx, userID)

	jobs.Stop()
	a.services.Trash.Stop()

	if err != nil {
		return fmt.Errorf("main loop: %w", err)
	}
	if logout {
		a.logger.Info().Int64("user_id", userID).Msg("user logged out")
		return a.Run()
	}

	return nil
}
