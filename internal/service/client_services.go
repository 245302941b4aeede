package service

import (
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/notecache"
)

// ClientServices bundles every client-side service around one shared cache.
// All UI surfaces depend on this container and nothing else.
type ClientServices struct {
	Cache   *notecache.Cache
	Auth    ClientAuthService
	Notes   NoteMutator
	Trash   TrashScheduler
	Viewer  NoteViewer
	Summary SummaryService
}

// NewClientServices wires the client service graph: one cache, one mutator
// over it, one deferred-deletion scheduler feeding the mutator's delete
// path, and the visibility filter every surface reads through.
func NewClientServices(store adapter.NoteStore, gracePeriod time.Duration, logger *logger.Logger) *ClientServices {
	cache := notecache.New()
	mutator := NewNoteMutator(cache, store, logger)
	trash := NewTrashScheduler(mutator, cache, gracePeriod, logger)

	return &ClientServices{
		Cache:   cache,
		Auth:    NewClientAuthService(store, logger),
		Notes:   mutator,
		Trash:   trash,
		Viewer:  NewNoteViewer(cache, trash),
		Summary: NewSummaryService(store, logger),
	}
}
