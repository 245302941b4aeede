// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/notecache"
	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the client-side contract for account
// registration and login against the note server.
type ClientAuthService interface {
	// Register creates a new account and returns the server-assigned user
	// record. On success the transport adapter holds a valid bearer token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user and returns the server-assigned user ID.
	// On success the transport adapter holds a valid bearer token.
	Login(ctx context.Context, user models.User) (int64, error)
}

// NoteMutator wraps every note mutation in the optimistic-update/rollback
// protocol against the shared cache.
//
// Each mutation applies its effect to the cache before the remote call is
// issued and reconciles when the call settles: a confirmed result replaces
// the optimistic value, a failure restores the cache byte-for-byte to its
// pre-mutation state. No partial optimistic state ever remains visible
// after a failure.
type NoteMutator interface {
	// Create builds a provisional note with a temporary ID, places it at the
	// front of the owner's collection, and issues the remote create. On
	// success the provisional record is substituted (by ID, preserving
	// position) with the server-confirmed note. On failure the provisional
	// record is removed and the failure returned.
	Create(ctx context.Context, userID int64, fields models.NoteFields) (models.Note, error)

	// Update snapshots the cached note and collection, applies fields
	// optimistically with a refreshed updated_at, and issues the remote
	// update. On failure the snapshot is restored verbatim, updated_at
	// included. On success a divergent server value overwrites the cache.
	Update(ctx context.Context, userID int64, id string, fields models.NoteFields) (models.Note, error)

	// Delete issues the remote delete and, on success, removes the note
	// from every collection and the single-note entries. Only the deferred
	// deletion scheduler calls this, so every delete goes through the
	// grace-period protocol. On failure the cache is left untouched.
	Delete(ctx context.Context, id string) error

	// Get returns the cached note for id, falling back to a remote fetch
	// that populates the cache.
	Get(ctx context.Context, id string) (models.Note, error)

	// Refresh re-fetches the owner's full note list from the server into
	// the cache.
	Refresh(ctx context.Context, userID int64) error
}

// TrashScheduler converts user-initiated deletes into cancellable,
// time-delayed commits. It owns at most one live grace-period timer per
// note ID and is the only component allowed to invoke [NoteMutator.Delete].
type TrashScheduler interface {
	// RequestDelete captures the current cached note for undo, marks the ID
	// pending (hiding it from every visible view without touching the cache
	// payload), and starts the grace-period timer. If a deletion is already
	// pending for id the existing timer is restarted, never stacked, and
	// ErrAlreadyPending is returned so the caller knows the grace period
	// began anew.
	RequestDelete(ctx context.Context, id string) error

	// Undo cancels a pending deletion. The note was never removed from the
	// cache, so undo is pure cancellation; the saved snapshot is re-inserted
	// only if a concurrent refresh evicted the note in the meantime.
	// Returns ErrNotPending once the timer has fired: a commit in flight
	// cannot be undone.
	Undo(id string) error

	// IsPending reports whether id is hidden from visible views, i.e. in
	// the PendingDeletion state or committed but not yet reconciled.
	IsPending(id string) bool

	// Events exposes the scheduler's notification stream (scheduled,
	// undone, committed, commit failed). The channel is buffered; events
	// overflowing a slow consumer are dropped.
	Events() <-chan TrashEvent

	// Stop cancels every live timer without committing. Pending notes stay
	// in the cache. Intended for client shutdown.
	Stop()
}

// NoteViewer derives what the UI surfaces actually display: the cached
// collection minus notes the scheduler currently hides. Every surface reads
// through this filter, so a note hidden on one surface is hidden on all of
// them with no cross-surface messaging.
type NoteViewer interface {
	// Visible returns the ordered note sequence for key with all
	// pending-deletion entries excluded.
	Visible(key notecache.Key) []models.Note
}

// SummaryService produces AI summaries for note content on behalf of the
// create/update flow. Failures never block a mutation; callers log and
// continue with an empty summary.
type SummaryService interface {
	// Summarize returns a summary of text, serving repeated requests for
	// identical content from a local content-hash cache.
	Summarize(ctx context.Context, text string) (string, error)
}
