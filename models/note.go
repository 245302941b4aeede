// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// TempIDPrefix marks client-generated provisional note identifiers.
//
// A note created optimistically carries a temporary ID until the server
// confirms the create and assigns the permanent one. The prefix lets any
// layer recognise a note that has not been acknowledged by the server yet.
const TempIDPrefix = "temp-"

// Note is a single user note as stored on the server and cached on the
// client. The ID is a server-assigned UUID, except for in-flight optimistic
// creates where it is a client-generated temporary ID (see [TempIDPrefix]).
type Note struct {
	// ID uniquely identifies the note. At most one record per ID may exist
	// in any cache or collection.
	ID string `json:"id"`

	// UserID is the owning account. Assigned by the server from the
	// authenticated identity; client-supplied values are ignored.
	UserID int64 `json:"user_id"`

	// Title is the note heading. Required, non-empty.
	Title string `json:"title"`

	// Content is the note body. May be empty.
	Content string `json:"content"`

	// Summary is the AI-generated summary of Content. Empty when no
	// summary has been produced; never required for a note to be valid.
	Summary string `json:"summary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsProvisional reports whether the note carries a client-generated
// temporary ID, i.e. its create has not been confirmed by the server.
func (n Note) IsProvisional() bool {
	return strings.HasPrefix(n.ID, TempIDPrefix)
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NoteFields carries the user-editable subset of a note for create and
// update operations. Summary is optional and filled by the summarization
// flow before the mutation is issued.
type NoteFields struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary,omitempty"`
}

// NoteFilter narrows a note listing. Zero values mean "no restriction";
// results are always scoped to the requesting user and ordered newest first.
type NoteFilter struct {
	// TitleContains keeps only notes whose title contains the substring,
	// case-insensitively.
	TitleContains string `json:"title_contains,omitempty"`

	// Limit caps the number of returned notes. Zero means no cap.
	Limit uint64 `json:"limit,omitempty"`
}
