// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notecache

import (
	"strconv"
	"sync"

	"github.com/MKhiriev/go-note-keeper/models"
)

// Key identifies a cached query result, e.g. "all notes of one owner,
// newest first". One ordered note sequence is held per Key.
type Key string

// AllNotesKey returns the collection key for the full newest-first note
// list of the given owner.
func AllNotesKey(userID int64) Key {
	return Key("notes/" + strconv.FormatInt(userID, 10))
}

// Cache is the process-wide, in-memory view of the remote note store.
//
// It maps collection keys to ordered note sequences and note IDs to
// individual records, and is the single source of truth every UI surface
// renders from. The cache itself enforces only the one-record-per-ID
// invariant; ordering of concurrent writers is the mutation layer's
// responsibility.
//
// All methods are safe for concurrent use. Returned slices and notes are
// copies; callers can never mutate cached state through them.
type Cache struct {
	mu          sync.RWMutex
	collections map[Key][]models.Note
	notes       map[string]models.Note

	subs   map[int]chan struct{}
	nextID int
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{
		collections: make(map[Key][]models.Note),
		notes:       make(map[string]models.Note),
		subs:        make(map[int]chan struct{}),
	}
}

// GetCollection returns a copy of the ordered note sequence stored under
// key, or nil if the collection has never been set.
func (c *Cache) GetCollection(key Key) []models.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seq, ok := c.collections[key]
	if !ok {
		return nil
	}
	return append([]models.Note(nil), seq...)
}

// SetCollection replaces the sequence stored under key and refreshes the
// per-ID note entries for every note in it. Per-ID entries carried by the
// previous sequence but absent from the new one are dropped, so a refresh
// evicts records the server no longer has.
func (c *Cache) SetCollection(key Key, notes []models.Note) {
	c.mu.Lock()
	fresh := make(map[string]bool, len(notes))
	for _, n := range notes {
		fresh[n.ID] = true
	}
	for _, old := range c.collections[key] {
		if !fresh[old.ID] {
			delete(c.notes, old.ID)
		}
	}
	c.collections[key] = append([]models.Note(nil), notes...)
	for _, n := range notes {
		c.notes[n.ID] = n
	}
	c.mu.Unlock()

	c.notify()
}

// GetNote returns the cached record for id. The second result is false if
// no record is present.
func (c *Cache) GetNote(id string) (models.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.notes[id]
	return n, ok
}

// SetNote stores or replaces the single-note entry for note.ID without
// touching any collection.
func (c *Cache) SetNote(note models.Note) {
	c.mu.Lock()
	c.notes[note.ID] = note
	c.mu.Unlock()

	c.notify()
}

// UpsertIntoCollection inserts note at the front of the key's sequence if
// no record with the same ID exists, or replaces the existing record in
// place (preserving its position) if one does. The per-ID entry is updated
// either way.
func (c *Cache) UpsertIntoCollection(key Key, note models.Note) {
	c.mu.Lock()
	seq := c.collections[key]
	replaced := false
	for i := range seq {
		if seq[i].ID == note.ID {
			seq[i] = note
			replaced = true
			break
		}
	}
	if !replaced {
		seq = append([]models.Note{note}, seq...)
	}
	c.collections[key] = seq
	c.notes[note.ID] = note
	c.mu.Unlock()

	c.notify()
}

// ReplaceID substitutes the record carrying oldID in the key's sequence
// with note, keeping its position in the ordering. The oldID per-ID entry
// is dropped and note is stored under its own ID.
//
// This is the reconcile step of an optimistic create: the provisional
// client-side ID and the server-assigned ID differ, so the swap must match
// by ID, not by value. If oldID is not present the note is upserted at the
// front instead, so a confirmed create is never lost.
func (c *Cache) ReplaceID(key Key, oldID string, note models.Note) {
	c.mu.Lock()
	seq := c.collections[key]
	replaced := false
	for i := range seq {
		if seq[i].ID == oldID {
			seq[i] = note
			replaced = true
			break
		}
	}
	if !replaced {
		seq = append([]models.Note{note}, seq...)
	}
	c.collections[key] = seq
	delete(c.notes, oldID)
	c.notes[note.ID] = note
	c.mu.Unlock()

	c.notify()
}

// RemoveFromCollection deletes the record with id from the key's sequence.
// The per-ID entry is left untouched.
func (c *Cache) RemoveFromCollection(key Key, id string) {
	c.mu.Lock()
	seq := c.collections[key]
	for i := range seq {
		if seq[i].ID == id {
			c.collections[key] = append(seq[:i:i], seq[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.notify()
}

// Remove deletes the record with id from every collection and from the
// per-ID entries.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	for key, seq := range c.collections {
		for i := range seq {
			if seq[i].ID == id {
				c.collections[key] = append(seq[:i:i], seq[i+1:]...)
				break
			}
		}
	}
	delete(c.notes, id)
	c.mu.Unlock()

	c.notify()
}

// Subscribe registers a change listener and returns a channel that receives
// a signal after every cache write, plus a cancel function that must be
// called when the listener is done. The channel has a buffer of one and
// signals are coalesced, so a slow listener sees at least one signal for
// any burst of writes.
func (c *Cache) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
	return ch, cancel
}

func (c *Cache) notify() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default: // listener already has a pending signal
		}
	}
}
