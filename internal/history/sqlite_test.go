package history

import (
	"path/filepath"
	"testing"

	"sanavoz/internal/domain"
)

func TestAppendAndRecent(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	for _, entry := range []domain.HistoryEntry{
		{Preview: "SÍNTOMAS: dolor de cabeza...", Level: "LEVE"},
		{Preview: "SÍNTOMAS: fiebre alta y tos...", Level: "MODERADO"},
		{Preview: "LLAMA AL 911 INMEDIATAMENTE...", Level: "EMERGENCIA"},
	} {
		if err := store.Append(entry); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "EMERGENCIA" || entries[1].Level != "MODERADO" {
		t.Fatalf("entries must be most recent first: %+v", entries)
	}
	if entries[0].ID <= entries[1].ID {
		t.Fatalf("ids must descend: %d, %d", entries[0].ID, entries[1].ID)
	}
	if entries[0].CreatedAt == "" {
		t.Fatalf("created_at must be populated")
	}
}

func TestRecentDefaultsLimit(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	if err := store.Append(domain.HistoryEntry{Preview: "x", Level: "LEVE"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, err := store.Recent(0)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestEntriesSurviveReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if err := store.Append(domain.HistoryEntry{Preview: "persistente", Level: "LEVE"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Recent(10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Preview != "persistente" {
		t.Fatalf("entries must survive a reopen: %+v", entries)
	}
}
