package store

import (
	"context"
	"sync"

	"github.com/myssom/letterbrick/internal/feedback"
)

// Memory is a process-local history, used when nothing durable is
// configured and in tests.
type Memory struct {
	mu      sync.Mutex
	records map[string]feedback.Record
	appends int
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]feedback.Record)}
}

func (m *Memory) Append(_ context.Context, key string, rec feedback.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = rec
	m.appends++
	return nil
}

func (m *Memory) LoadAll(_ context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]Entry, 0, len(m.records))
	for k, rec := range m.records {
		entries = append(entries, Entry{Key: k, Record: rec})
	}
	sortByKey(entries)
	return entries, nil
}

// Appends returns how many times Append was called.
func (m *Memory) Appends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appends
}
