package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileTextRepo(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("missing document", func(t *testing.T) {
		repo := NewFileTextRepo(filepath.Join(dir, "missing.json"))
		_, err := repo.Load(ctx)
		if !errors.Is(err, ErrTextNotFound) {
			t.Errorf("Load() error = %v, want ErrTextNotFound", err)
		}
	})

	t.Run("corrupted document", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		os.WriteFile(path, []byte("{not json"), 0644)

		_, err := NewFileTextRepo(path).Load(ctx)
		if !errors.Is(err, ErrTextCorrupted) {
			t.Errorf("Load() error = %v, want ErrTextCorrupted", err)
		}
	})

	t.Run("save overwrites", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "text.json")
		repo := NewFileTextRepo(path)

		if err := repo.Save(ctx, "first"); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := repo.Save(ctx, "zweite Seite <b>& ü"); err != nil {
			t.Fatalf("Save: %v", err)
		}

		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != "zweite Seite <b>& ü" {
			t.Errorf("Load() = %q", got)
		}

		data, _ := os.ReadFile(path)
		if !strings.Contains(string(data), "<b>&") {
			t.Errorf("document escaped HTML characters: %s", data)
		}
	})

	t.Run("missing text key", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		os.WriteFile(path, []byte(`{}`), 0644)

		got, err := NewFileTextRepo(path).Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != "" {
			t.Errorf("Load() = %q, want empty", got)
		}
	})
}
