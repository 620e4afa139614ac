package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/store"
)

// JSON-backed storage. One file per namespace, human-readable, portable.
// No locking; fine for a local single-user app.

// Store keeps the records of one namespace in <Dir>/<Namespace>.json.
type Store struct {
	Dir       string
	Namespace string
}

func (s Store) path() string {
	ns := s.Namespace
	if ns == "" {
		ns = store.DefaultNamespace
	}
	return filepath.Join(s.Dir, ns+".json")
}

func (s Store) load() ([]model.Item, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}

func (s Store) save(items []model.Item) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	// Write then rename so a crash never leaves a truncated file behind.
	tmp, err := os.CreateTemp(s.Dir, ".todos-*.json")
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s Store) Create(ctx context.Context, it model.Item) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	items, err := s.load()
	if err != nil {
		return "", err
	}
	it.ID = store.NewID()
	items = append(items, it)
	if err := s.save(items); err != nil {
		return "", err
	}
	return it.ID, nil
}

func (s Store) ReadAll(ctx context.Context) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load()
}

func (s Store) Update(ctx context.Context, id string, it model.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	items, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	it.ID = id
	items[idx] = it
	return s.save(items)
}

func (s Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	items, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	items = append(items[:idx], items[idx+1:]...)
	return s.save(items)
}

func indexOf(items []model.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
