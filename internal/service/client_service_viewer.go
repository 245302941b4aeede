// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/notecache"
	"github.com/MKhiriev/go-note-keeper/models"
)

type noteViewer struct {
	cache *notecache.Cache
	trash TrashScheduler
}

// NewNoteViewer constructs the read-side projection all UI surfaces share.
func NewNoteViewer(cache *notecache.Cache, trash TrashScheduler) NoteViewer {
	return &noteViewer{cache: cache, trash: trash}
}

// Visible is a pure projection: the cached sequence minus every ID the
// scheduler currently hides. Hiding is read-time only, so the underlying
// note data survives until the deletion actually commits.
func (v *noteViewer) Visible(key notecache.Key) []models.Note {
	seq := v.cache.GetCollection(key)
	if len(seq) == 0 {
		return seq
	}

	out := make([]models.Note, 0, len(seq))
	for _, n := range seq {
		if v.trash.IsPending(n.ID) {
			continue
		}
		out = append(out, n)
	}
	return out
}
