// Package store persists feedback records in an append-only log keyed by
// timestamp.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/myssom/letterbrick/internal/feedback"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("record not found")

// History is the append log of feedback records. Appending a key that already
// exists overwrites it; LoadAll returns every entry ordered by key.
type History interface {
	Append(ctx context.Context, key string, rec feedback.Record) error
	LoadAll(ctx context.Context) ([]Entry, error)
}

// Entry is one stored record with its key.
type Entry struct {
	Key    string          `json:"key"`
	Record feedback.Record `json:"record"`
}

// FindByID scans a history for the record with the given id.
func FindByID(ctx context.Context, h History, id uuid.UUID) (Entry, error) {
	entries, err := h.LoadAll(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Record.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// NewestFirst returns a copy of entries sorted by key, newest first.
func NewestFirst(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out
}

func sortByKey(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
}
