package index

import (
	"log/slog"
	"testing"

	"github.com/mkraev/worklog/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testStore(t *testing.T) storage.Provider {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return store
}

const syncDaily = "---\ntype: daily\ndate: \"2026-01-15\"\n---\n\n## Completed\n\nwork\n"

func TestSync_IndexesNewFiles(t *testing.T) {
	db := testDB(t)
	store := testStore(t)
	if err := store.Write("dailies/2026-01-15.md", []byte(syncDaily)); err != nil {
		t.Fatal(err)
	}

	if err := Sync(db, store, discardLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	d, _ := db.GetDocument("dailies/2026-01-15.md")
	if d == nil {
		t.Fatal("daily not indexed")
	}
	if d.Week != "2026-W03" {
		t.Errorf("week = %q", d.Week)
	}
}

func TestSync_RemovesStaleEntries(t *testing.T) {
	db := testDB(t)
	store := testStore(t)
	_ = store.Write("dailies/2026-01-15.md", []byte(syncDaily))
	if err := Sync(db, store, discardLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if err := store.Delete("dailies/2026-01-15.md"); err != nil {
		t.Fatal(err)
	}
	if err := Sync(db, store, discardLogger()); err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	d, _ := db.GetDocument("dailies/2026-01-15.md")
	if d != nil {
		t.Error("stale entry survived sync")
	}
}

func TestSync_SkipsUnparsableMarkdown(t *testing.T) {
	db := testDB(t)
	store := testStore(t)
	_ = store.Write("README.md", []byte("# Not a work record\n"))
	_ = store.Write("dailies/2026-01-15.md", []byte(syncDaily))

	if err := Sync(db, store, discardLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if d, _ := db.GetDocument("README.md"); d != nil {
		t.Error("non-record markdown must not be indexed")
	}
	if d, _ := db.GetDocument("dailies/2026-01-15.md"); d == nil {
		t.Error("valid record must be indexed")
	}
}
