package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
)

// RefreshWorker periodically re-fetches the user's note list from the server
// into the shared cache, keeping every surface's view current without user
// interaction. The worker is idle until Run is called.
type RefreshWorker struct {
	mutator  service.NoteMutator
	userID   int64
	interval time.Duration

	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshWorker creates a RefreshWorker for the given user. If interval is
// zero or negative it defaults to 30 seconds.
func NewRefreshWorker(mutator service.NoteMutator, userID int64, interval time.Duration, logger *logger.Logger) *RefreshWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &RefreshWorker{
		mutator:  mutator,
		userID:   userID,
		interval: interval,
		logger:   logger,
	}
}

// Run implements Worker. It stops any previously running refresh loop, then
// launches a background goroutine that calls Refresh every interval. The
// goroutine exits when Stop is called.
func (w *RefreshWorker) Run() {
	w.Stop()

	w.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := w.mutator.Refresh(ctx, w.userID); err != nil {
					w.logger.Debug().Err(err).Msg("background refresh failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has fully
// exited. Safe to call when the worker is not running (no-op in that case).
func (w *RefreshWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
