package database

import (
	"path/filepath"
	"testing"
	"time"

	"fpath-go/internal/catalog"
	"fpath-go/internal/fpath"
)

// newTestStore creates a new in-memory store with schema applied.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func newRoot(id, path string) *catalog.Root {
	return &catalog.Root{
		ID:        id,
		Path:      fpath.MustParse(path).AsDirectory(),
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_FindRoot(t *testing.T) {
	t.Run("returns nil when root not found", func(t *testing.T) {
		s := newTestStore(t)

		r, err := s.FindRoot(fpath.MustParse("/nonexistent").Key())
		if err != nil {
			t.Fatalf("FindRoot() error = %v", err)
		}
		if r != nil {
			t.Errorf("FindRoot() = %v, want nil", r)
		}
	})

	t.Run("finds root by case-insensitive key", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.CreateRoot(newRoot("r-1", "/home/user/Docs"), nil); err != nil {
			t.Fatalf("CreateRoot() error = %v", err)
		}

		r, err := s.FindRoot(fpath.MustParse("/HOME/user/docs/").Key())
		if err != nil {
			t.Fatalf("FindRoot() error = %v", err)
		}
		if r == nil {
			t.Fatal("FindRoot() = nil, want root")
		}
		if r.ID != "r-1" {
			t.Errorf("ID = %q, want %q", r.ID, "r-1")
		}
		if !r.Path.IsDirectory() || r.Path.Name() != "Docs" {
			t.Errorf("Path = %q, want directory named Docs", r.Path.String())
		}
		if !r.CreatedAt.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)) {
			t.Errorf("CreatedAt = %v", r.CreatedAt)
		}
	})
}

func TestSQLiteStore_CreateRoot(t *testing.T) {
	t.Run("rejects duplicate key", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.CreateRoot(newRoot("r-1", "/data"), nil); err != nil {
			t.Fatalf("CreateRoot() error = %v", err)
		}
		if err := s.CreateRoot(newRoot("r-2", "/DATA/"), nil); err == nil {
			t.Fatal("CreateRoot() expected error for duplicate key")
		}
	})

	t.Run("replaces roots in one transaction", func(t *testing.T) {
		s := newTestStore(t)

		for _, r := range []*catalog.Root{newRoot("r-1", "/data/a"), newRoot("r-2", "/data/b"), newRoot("r-3", "/other")} {
			if err := s.CreateRoot(r, nil); err != nil {
				t.Fatalf("CreateRoot() error = %v", err)
			}
		}

		if err := s.CreateRoot(newRoot("r-4", "/data"), []string{"r-1", "r-2"}); err != nil {
			t.Fatalf("CreateRoot() error = %v", err)
		}

		roots, err := s.ListRoots()
		if err != nil {
			t.Fatalf("ListRoots() error = %v", err)
		}
		var ids []string
		for _, r := range roots {
			ids = append(ids, r.ID)
		}
		if len(ids) != 2 || ids[0] != "r-3" || ids[1] != "r-4" {
			t.Errorf("ListRoots() ids = %v, want [r-3 r-4]", ids)
		}
	})

	t.Run("failed insert keeps replaced roots", func(t *testing.T) {
		s := newTestStore(t)

		if err := s.CreateRoot(newRoot("r-1", "/data/a"), nil); err != nil {
			t.Fatalf("CreateRoot() error = %v", err)
		}
		if err := s.CreateRoot(newRoot("r-2", "/data"), nil); err != nil {
			t.Fatalf("CreateRoot() error = %v", err)
		}

		// Same key as r-2, so the insert fails and the delete is rolled back.
		if err := s.CreateRoot(newRoot("r-3", "/data"), []string{"r-1"}); err == nil {
			t.Fatal("CreateRoot() expected error")
		}

		r, err := s.FindRoot(fpath.MustParse("/data/a").Key())
		if err != nil {
			t.Fatalf("FindRoot() error = %v", err)
		}
		if r == nil {
			t.Error("replaced root was deleted despite failed insert")
		}
	})
}

func TestSQLiteStore_DeleteRoot(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateRoot(newRoot("r-1", "/data"), nil); err != nil {
		t.Fatalf("CreateRoot() error = %v", err)
	}
	if err := s.DeleteRoot("r-1"); err != nil {
		t.Fatalf("DeleteRoot() error = %v", err)
	}

	roots, err := s.ListRoots()
	if err != nil {
		t.Fatalf("ListRoots() error = %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("len(ListRoots()) = %d, want 0", len(roots))
	}
}

func TestSQLiteStore_BackupTo(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreateRoot(newRoot("r-1", "/data"), nil); err != nil {
		t.Fatalf("CreateRoot() error = %v", err)
	}

	dest := filepath.Join(t.TempDir(), "backup.db")
	if err := s.BackupTo(dest); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}

	copied, err := NewSQLiteStore(dest)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer copied.Close()

	if err := copied.CheckMigrations(); err != nil {
		t.Errorf("CheckMigrations() on backup error = %v", err)
	}
	roots, err := copied.ListRoots()
	if err != nil {
		t.Fatalf("ListRoots() error = %v", err)
	}
	if len(roots) != 1 || roots[0].ID != "r-1" {
		t.Errorf("backup roots = %v, want [r-1]", roots)
	}
}

func TestSQLiteStore_Status(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer s.Close()

	before, err := s.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !before.Empty {
		t.Errorf("Status() before Migrate = %+v, want Empty", before)
	}

	if err := s.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	after, err := s.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if after.Empty || after.Dirty || after.Current != after.Latest {
		t.Errorf("Status() after Migrate = %+v, want current at latest", after)
	}
}
