// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/notecache"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testUserID = int64(1)

func newTestMutator(t *testing.T, ctrl *gomock.Controller) (NoteMutator, *notecache.Cache, *mock.MockNoteStore) {
	t.Helper()
	mockStore := mock.NewMockNoteStore(ctrl)
	cache := notecache.New()
	m := NewNoteMutator(cache, mockStore, logger.Nop())
	return m, cache, mockStore
}

func cachedNote(id, title string) models.Note {
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return models.Note{ID: id, UserID: testUserID, Title: title, Content: "body of " + title, CreatedAt: ts, UpdatedAt: ts}
}

func seedCollection(cache *notecache.Cache, notes ...models.Note) notecache.Key {
	key := notecache.AllNotesKey(testUserID)
	cache.SetCollection(key, notes)
	return key
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestNoteMutator_Create_Success_SubstitutesServerID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := seedCollection(cache, cachedNote("a", "A"))
	fields := models.NoteFields{Title: "new", Content: "fresh"}

	confirmed := models.Note{ID: "server-id", UserID: testUserID, Title: "new", Content: "fresh"}
	mockStore.EXPECT().Create(gomock.Any(), fields).Return(confirmed, nil)

	got, err := m.Create(context.Background(), testUserID, fields)
	require.NoError(t, err)
	assert.Equal(t, "server-id", got.ID)

	seq := cache.GetCollection(key)
	require.Len(t, seq, 2)
	assert.Equal(t, "server-id", seq[0].ID, "confirmed note replaces the provisional one at the front")

	for _, n := range seq {
		assert.False(t, n.IsProvisional(), "no provisional record may remain after confirmation")
	}
}

func TestNoteMutator_Create_OptimisticNoteVisibleBeforeConfirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := seedCollection(cache, cachedNote("a", "A"))

	// assert mid-flight cache state from inside the transport call
	mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.NoteFields) (models.Note, error) {
			seq := cache.GetCollection(key)
			require.Len(t, seq, 2)
			assert.True(t, seq[0].IsProvisional(), "provisional note must be at the front while the call is in flight")
			assert.True(t, strings.HasPrefix(seq[0].ID, models.TempIDPrefix))
			return models.Note{ID: "server-id", UserID: testUserID, Title: "new"}, nil
		})

	_, err := m.Create(context.Background(), testUserID, models.NoteFields{Title: "new"})
	require.NoError(t, err)
}

func TestNoteMutator_Create_Failure_LeavesNoProvisionalNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := seedCollection(cache, cachedNote("a", "A"), cachedNote("b", "B"))
	before := cache.GetCollection(key)

	mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Note{}, adapter.ErrUnavailable)

	_, err := m.Create(context.Background(), testUserID, models.NoteFields{Title: "doomed"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.Equal(t, before, cache.GetCollection(key), "cache must be exactly as before the call")
}

func TestNoteMutator_Create_Rejected_MapsTaxonomy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, mockStore := newTestMutator(t, ctrl)
	mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Note{}, adapter.ErrBadRequest)

	_, err := m.Create(context.Background(), testUserID, models.NoteFields{})
	assert.ErrorIs(t, err, ErrRejected)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestNoteMutator_Update_Success_ServerValueWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := seedCollection(cache, cachedNote("a", "A"), cachedNote("b", "B"))
	fields := models.NoteFields{Title: "B2", Content: "edited", Summary: "* edited"}

	serverTime := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	confirmed := models.Note{ID: "b", UserID: testUserID, Title: "B2", Content: "edited", Summary: "* edited", UpdatedAt: serverTime}
	mockStore.EXPECT().Update(gomock.Any(), "b", fields).Return(confirmed, nil)

	got, err := m.Update(context.Background(), testUserID, "b", fields)
	require.NoError(t, err)
	assert.Equal(t, serverTime, got.UpdatedAt)

	seq := cache.GetCollection(key)
	require.Len(t, seq, 2)
	assert.Equal(t, "b", seq[1].ID, "position preserved")
	assert.Equal(t, confirmed, seq[1])
}

func TestNoteMutator_Update_Failure_RollbackIsExact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := seedCollection(cache, cachedNote("a", "A"), cachedNote("b", "B"))

	beforeNote, ok := cache.GetNote("b")
	require.True(t, ok)
	beforeSeq := cache.GetCollection(key)

	mockStore.EXPECT().Update(gomock.Any(), "b", gomock.Any()).Return(models.Note{}, adapter.ErrUnavailable)

	_, err := m.Update(context.Background(), testUserID, "b", models.NoteFields{Title: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	afterNote, ok := cache.GetNote("b")
	require.True(t, ok)
	assert.Equal(t, beforeNote, afterNote, "field-for-field restore, updated_at included")
	assert.Equal(t, beforeSeq, cache.GetCollection(key))
}

func TestNoteMutator_Update_AppliesOptimisticallyBeforeConfirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	seedCollection(cache, cachedNote("b", "B"))
	prev, _ := cache.GetNote("b")

	mockStore.EXPECT().Update(gomock.Any(), "b", gomock.Any()).DoAndReturn(
		func(context.Context, string, models.NoteFields) (models.Note, error) {
			mid, ok := cache.GetNote("b")
			require.True(t, ok)
			assert.Equal(t, "B2", mid.Title, "optimistic title visible while in flight")
			assert.True(t, mid.UpdatedAt.After(prev.UpdatedAt), "updated_at refreshed optimistically")
			return models.Note{ID: "b", UserID: testUserID, Title: "B2"}, nil
		})

	_, err := m.Update(context.Background(), testUserID, "b", models.NoteFields{Title: "B2"})
	require.NoError(t, err)
}

func TestNoteMutator_Update_NotCached_StillCallsServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := notecache.AllNotesKey(testUserID)

	confirmed := models.Note{ID: "x", UserID: testUserID, Title: "X"}
	mockStore.EXPECT().Update(gomock.Any(), "x", gomock.Any()).Return(confirmed, nil)

	_, err := m.Update(context.Background(), testUserID, "x", models.NoteFields{Title: "X"})
	require.NoError(t, err)

	seq := cache.GetCollection(key)
	require.Len(t, seq, 1)
	assert.Equal(t, "x", seq[0].ID)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestNoteMutator_Delete_Success_RemovesEverywhere(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := seedCollection(cache, cachedNote("a", "A"), cachedNote("b", "B"))

	mockStore.EXPECT().Delete(gomock.Any(), "b").Return(nil)

	require.NoError(t, m.Delete(context.Background(), "b"))

	seq := cache.GetCollection(key)
	require.Len(t, seq, 1)
	assert.Equal(t, "a", seq[0].ID)
	_, ok := cache.GetNote("b")
	assert.False(t, ok)
}

func TestNoteMutator_Delete_Failure_CacheUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := seedCollection(cache, cachedNote("a", "A"), cachedNote("b", "B"))
	before := cache.GetCollection(key)

	mockStore.EXPECT().Delete(gomock.Any(), "b").Return(adapter.ErrUnavailable)

	err := m.Delete(context.Background(), "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, before, cache.GetCollection(key))
}

// ── Get / Refresh ────────────────────────────────────────────────────────────

func TestNoteMutator_Get_CacheHit_NoRemoteCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, _ := newTestMutator(t, ctrl)
	seedCollection(cache, cachedNote("a", "A"))

	got, err := m.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestNoteMutator_Get_CacheMiss_FetchesAndStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	want := cachedNote("z", "Z")
	mockStore.EXPECT().Get(gomock.Any(), "z").Return(want, nil)

	got, err := m.Get(context.Background(), "z")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	stored, ok := cache.GetNote("z")
	require.True(t, ok)
	assert.Equal(t, want, stored)
}

func TestNoteMutator_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, mockStore := newTestMutator(t, ctrl)
	mockStore.EXPECT().Get(gomock.Any(), "missing").Return(models.Note{}, adapter.ErrNotFound)

	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteMutator_Refresh_ReplacesCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, cache, mockStore := newTestMutator(t, ctrl)
	key := seedCollection(cache, cachedNote("old", "stale"))

	fresh := []models.Note{cachedNote("n2", "newer"), cachedNote("n1", "older")}
	mockStore.EXPECT().List(gomock.Any()).Return(fresh, nil)

	require.NoError(t, m.Refresh(context.Background(), testUserID))

	seq := cache.GetCollection(key)
	require.Len(t, seq, 2)
	assert.Equal(t, "n2", seq[0].ID)
}

func TestNoteMutator_Refresh_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _, mockStore := newTestMutator(t, ctrl)
	mockStore.EXPECT().List(gomock.Any()).Return(nil, adapter.ErrUnauthorized)

	err := m.Refresh(context.Background(), testUserID)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
