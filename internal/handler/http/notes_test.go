// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock NotesService
// ─────────────────────────────────────────────

// mockNotesService implements service.NotesService for unit tests.
// Each method field can be overridden per test case.
type mockNotesService struct {
	createNoteFn func(ctx context.Context, userID int64, fields models.NoteFields) (models.Note, error)
	getNoteFn    func(ctx context.Context, userID int64, noteID string) (models.Note, error)
	listNotesFn  func(ctx context.Context, userID int64, filter models.NoteFilter) ([]models.Note, error)
	updateNoteFn func(ctx context.Context, userID int64, noteID string, fields models.NoteFields) (models.Note, error)
	deleteNoteFn func(ctx context.Context, userID int64, noteID string) error
}

func (m *mockNotesService) CreateNote(ctx context.Context, userID int64, fields models.NoteFields) (models.Note, error) {
	return m.createNoteFn(ctx, userID, fields)
}

func (m *mockNotesService) GetNote(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	return m.getNoteFn(ctx, userID, noteID)
}

func (m *mockNotesService) ListNotes(ctx context.Context, userID int64, filter models.NoteFilter) ([]models.Note, error) {
	return m.listNotesFn(ctx, userID, filter)
}

func (m *mockNotesService) UpdateNote(ctx context.Context, userID int64, noteID string, fields models.NoteFields) (models.Note, error) {
	return m.updateNoteFn(ctx, userID, noteID, fields)
}

func (m *mockNotesService) DeleteNote(ctx context.Context, userID int64, noteID string) error {
	return m.deleteNoteFn(ctx, userID, noteID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newHandlerWithNotes(t *testing.T, notes service.NotesService) *Handler {
	t.Helper()
	svcs := &service.Services{
		NotesService: notes,
	}
	return NewHandler(svcs, logger.Nop())
}

// authedRequest builds a request carrying userID in its context, the way the
// auth middleware would after validating a token.
func authedRequest(method, target string, body string, userID int64) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	return req.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request context so that
// chi.URLParam resolves it outside a live router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleNote(id string) models.Note {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return models.Note{
		ID:        id,
		Title:     "groceries",
		Content:   "milk, eggs",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

const notesUserID = int64(42)

// ─────────────────────────────────────────────
// createNote
// ─────────────────────────────────────────────

func TestCreateNote_Success(t *testing.T) {
	notes := &mockNotesService{
		createNoteFn: func(_ context.Context, userID int64, fields models.NoteFields) (models.Note, error) {
			require.Equal(t, notesUserID, userID)
			require.Equal(t, "groceries", fields.Title)
			return sampleNote("note-1"), nil
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := authedRequest(http.MethodPost, "/api/notes", `{"title":"groceries","content":"milk, eggs"}`, notesUserID)
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "note-1", got.ID)
}

func TestCreateNote_NoUserInContext(t *testing.T) {
	h := newHandlerWithNotes(t, &mockNotesService{})
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateNote_InvalidJSON(t *testing.T) {
	h := newHandlerWithNotes(t, &mockNotesService{})
	req := authedRequest(http.MethodPost, "/api/notes", "{broken", notesUserID)
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateNote_TitleRequired(t *testing.T) {
	notes := &mockNotesService{
		createNoteFn: func(_ context.Context, _ int64, _ models.NoteFields) (models.Note, error) {
			return models.Note{}, service.ErrTitleRequired
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := authedRequest(http.MethodPost, "/api/notes", `{"title":"  "}`, notesUserID)
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// getNote
// ─────────────────────────────────────────────

func TestGetNote_Success(t *testing.T) {
	notes := &mockNotesService{
		getNoteFn: func(_ context.Context, userID int64, noteID string) (models.Note, error) {
			require.Equal(t, notesUserID, userID)
			require.Equal(t, "note-7", noteID)
			return sampleNote("note-7"), nil
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := withURLParam(authedRequest(http.MethodGet, "/api/notes/note-7", "", notesUserID), "id", "note-7")
	rec := httptest.NewRecorder()

	h.getNote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "note-7", got.ID)
}

func TestGetNote_NotFound(t *testing.T) {
	notes := &mockNotesService{
		getNoteFn: func(_ context.Context, _ int64, _ string) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := withURLParam(authedRequest(http.MethodGet, "/api/notes/missing", "", notesUserID), "id", "missing")
	rec := httptest.NewRecorder()

	h.getNote(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// listNotes
// ─────────────────────────────────────────────

func TestListNotes_Success(t *testing.T) {
	notes := &mockNotesService{
		listNotesFn: func(_ context.Context, userID int64, _ models.NoteFilter) ([]models.Note, error) {
			require.Equal(t, notesUserID, userID)
			return []models.Note{sampleNote("a"), sampleNote("b")}, nil
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := authedRequest(http.MethodGet, "/api/notes", "", notesUserID)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

// TestListNotes_EmptyResultIsJSONArray verifies that an empty list serialises
// as [] rather than null, which clients decode into an empty slice.
func TestListNotes_EmptyResultIsJSONArray(t *testing.T) {
	notes := &mockNotesService{
		listNotesFn: func(_ context.Context, _ int64, _ models.NoteFilter) ([]models.Note, error) {
			return nil, nil
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := authedRequest(http.MethodGet, "/api/notes", "", notesUserID)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListNotes_FilterFromQuery(t *testing.T) {
	var gotFilter models.NoteFilter
	notes := &mockNotesService{
		listNotesFn: func(_ context.Context, _ int64, filter models.NoteFilter) ([]models.Note, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := authedRequest(http.MethodGet, "/api/notes?title_contains=grocery&limit=10", "", notesUserID)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "grocery", gotFilter.TitleContains)
	assert.Equal(t, uint64(10), gotFilter.Limit)
}

// TestListNotes_UnparseableLimitIgnored verifies that a garbage limit value is
// dropped instead of failing the request.
func TestListNotes_UnparseableLimitIgnored(t *testing.T) {
	var gotFilter models.NoteFilter
	notes := &mockNotesService{
		listNotesFn: func(_ context.Context, _ int64, filter models.NoteFilter) ([]models.Note, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := authedRequest(http.MethodGet, "/api/notes?limit=banana", "", notesUserID)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, gotFilter.Limit)
}

func TestListNotes_StoreError(t *testing.T) {
	notes := &mockNotesService{
		listNotesFn: func(_ context.Context, _ int64, _ models.NoteFilter) ([]models.Note, error) {
			return nil, errors.Join(store.ErrExecutingQuery, errors.New("connection refused"))
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := authedRequest(http.MethodGet, "/api/notes", "", notesUserID)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// updateNote
// ─────────────────────────────────────────────

func TestUpdateNote_Success(t *testing.T) {
	notes := &mockNotesService{
		updateNoteFn: func(_ context.Context, userID int64, noteID string, fields models.NoteFields) (models.Note, error) {
			require.Equal(t, notesUserID, userID)
			require.Equal(t, "note-3", noteID)
			updated := sampleNote("note-3")
			updated.Title = fields.Title
			return updated, nil
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := withURLParam(authedRequest(http.MethodPut, "/api/notes/note-3", `{"title":"renamed"}`, notesUserID), "id", "note-3")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "renamed", got.Title)
}

func TestUpdateNote_NotFound(t *testing.T) {
	notes := &mockNotesService{
		updateNoteFn: func(_ context.Context, _ int64, _ string, _ models.NoteFields) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := withURLParam(authedRequest(http.MethodPut, "/api/notes/gone", `{"title":"x"}`, notesUserID), "id", "gone")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateNote_InvalidJSON(t *testing.T) {
	h := newHandlerWithNotes(t, &mockNotesService{})
	req := withURLParam(authedRequest(http.MethodPut, "/api/notes/note-3", "oops", notesUserID), "id", "note-3")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// deleteNote
// ─────────────────────────────────────────────

func TestDeleteNote_Success(t *testing.T) {
	deleted := ""
	notes := &mockNotesService{
		deleteNoteFn: func(_ context.Context, userID int64, noteID string) error {
			require.Equal(t, notesUserID, userID)
			deleted = noteID
			return nil
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := withURLParam(authedRequest(http.MethodDelete, "/api/notes/note-9", "", notesUserID), "id", "note-9")
	rec := httptest.NewRecorder()

	h.deleteNote(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "note-9", deleted)
}

func TestDeleteNote_NotFound(t *testing.T) {
	notes := &mockNotesService{
		deleteNoteFn: func(_ context.Context, _ int64, _ string) error {
			return store.ErrNoteNotFound
		},
	}

	h := newHandlerWithNotes(t, notes)
	req := withURLParam(authedRequest(http.MethodDelete, "/api/notes/gone", "", notesUserID), "id", "gone")
	rec := httptest.NewRecorder()

	h.deleteNote(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
