// Package store persists extraction results as JSON documents on disk, one
// file per document ID.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/structify/outliner/internal/outline"
)

// ErrNotFound is returned when no result exists for a document ID.
var ErrNotFound = errors.New("document not found")

// Store writes and reads outline results under a single data directory.
// Writes are atomic (temp file + rename), so concurrent readers never see a
// partial document.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Meta summarizes one stored document.
type Meta struct {
	DocID     string    `json:"doc_id"`
	Title     string    `json:"title"`
	Headings  int       `json:"headings"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Save writes the result for a document ID, replacing any previous one.
func (s *Store) Save(id string, res *outline.Result) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".outline-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename result: %w", err)
	}
	return nil
}

// Load reads the result for a document ID.
func (s *Store) Load(id string) (*outline.Result, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read result: %w", err)
	}
	var res outline.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", id, err)
	}
	return &res, nil
}

// List returns metadata for stored documents, newest first, up to limit.
func (s *Store) List(limit int) ([]Meta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var metas []Meta
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		res, err := s.Load(id)
		if err != nil {
			// Skip unreadable entries; a partial listing beats none.
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		metas = append(metas, Meta{
			DocID:     id,
			Title:     res.Title,
			Headings:  len(res.Outline),
			UpdatedAt: info.ModTime(),
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
	if limit > 0 && len(metas) > limit {
		metas = metas[:limit]
	}
	return metas, nil
}

// Delete removes the stored result for a document ID.
func (s *Store) Delete(id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete result: %w", err)
	}
	return nil
}

func (s *Store) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid document id: %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}
