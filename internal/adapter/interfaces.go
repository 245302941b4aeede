// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-note-keeper server.
//
// The primary abstraction is [NoteStore], which decouples the client service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPNoteStore]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401). The
// adapter never retries: failures are surfaced synchronously to the caller,
// which owns the rollback decision.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/note_store_mock.go -package=mock

// NoteStore defines transport-agnostic communication with the note server.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type NoteStore interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request to the server with the provided
	// user credentials. On success it stores the returned bearer token via
	// SetToken and returns the user with its server-assigned ID.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user with the server. On success it stores the
	// returned bearer token via SetToken and returns it together with the
	// user ID parsed from the token's subject claim.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// List fetches every note owned by the authenticated user, ordered by
	// creation time descending (newest first).
	List(ctx context.Context) ([]models.Note, error)

	// Get fetches the single note identified by id. Returns a wrapped
	// [ErrNotFound] if the note does not exist or belongs to another user.
	Get(ctx context.Context, id string) (models.Note, error)

	// Create stores a new note built from fields and returns the
	// server-confirmed record carrying the server-assigned ID and timestamps.
	Create(ctx context.Context, fields models.NoteFields) (models.Note, error)

	// Update replaces the user-editable fields of the note identified by id
	// and returns the server-confirmed record with its refreshed updated_at.
	Update(ctx context.Context, id string, fields models.NoteFields) (models.Note, error)

	// Delete permanently removes the note identified by id.
	Delete(ctx context.Context, id string) error

	// Summarize asks the server's summarization endpoint to produce a short
	// summary of text. Slow and allowed to fail; callers must not let a
	// summarization failure block a note mutation.
	Summarize(ctx context.Context, text string) (string, error)
}
