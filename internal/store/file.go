package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/myssom/letterbrick/internal/feedback"
)

// File keeps the history as a single JSON object mapping key to record.
// Every append rewrites the whole file.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: expandHome(path)}
}

// Path returns the resolved file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Append(_ context.Context, key string, rec feedback.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return err
	}
	all[key] = rec

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func (f *File) LoadAll(_ context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(all))
	for k, rec := range all {
		entries = append(entries, Entry{Key: k, Record: rec})
	}
	sortByKey(entries)
	return entries, nil
}

func (f *File) read() (map[string]feedback.Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]feedback.Record{}, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	all := map[string]feedback.Record{}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return all, nil
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
