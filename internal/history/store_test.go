package history

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadEmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	archive := store.Load()
	if len(archive) != 0 {
		t.Errorf("expected empty archive, got %d items", len(archive))
	}
}

func TestAppendCapsAtTwenty(t *testing.T) {
	store := newTestStore(t)

	archive := store.Load()
	for i := 0; i < 25; i++ {
		archive = store.Append(archive, canvas.CanvasData{
			ValuePropositions: fmt.Sprintf("plan %d", i),
		})
	}

	if len(archive) != MaxEntries {
		t.Fatalf("expected %d items, got %d", MaxEntries, len(archive))
	}
	// Newest first: item 24 at the head, item 5 at the tail.
	if archive[0].Preview != "plan 24" {
		t.Errorf("head preview = %q, want %q", archive[0].Preview, "plan 24")
	}
	if archive[MaxEntries-1].Preview != "plan 5" {
		t.Errorf("tail preview = %q, want %q", archive[MaxEntries-1].Preview, "plan 5")
	}
}

func TestAppendAssignsUniqueIDs(t *testing.T) {
	store := newTestStore(t)

	archive := store.Load()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		archive = store.Append(archive, canvas.CanvasData{KeyActivities: "a"})
	}
	for _, item := range archive {
		if item.ID == "" {
			t.Fatal("item with empty id")
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id %s", item.ID)
		}
		seen[item.ID] = true
		if item.Timestamp == "" {
			t.Error("item with empty timestamp")
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	archive := store.Load()
	archive = store.Append(archive, canvas.CanvasData{ValuePropositions: "keep"})
	archive = store.Append(archive, canvas.CanvasData{ValuePropositions: "drop"})

	id := archive[0].ID
	once := store.Delete(archive, id)
	if len(once) != 1 {
		t.Fatalf("expected 1 item after delete, got %d", len(once))
	}

	twice := store.Delete(once, id)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second delete changed the archive (-first +second):\n%s", diff)
	}
}

func TestPersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	archive := store.Load()
	archive = store.Append(archive, canvas.CanvasData{
		ValuePropositions: "সাশ্রয়ী ভ্রমণ প্যাকেজ",
		CustomerSegments:  "তরুণ পেশাজীবী",
	})
	archive = store.Append(archive, canvas.CanvasData{KeyActivities: "tour planning"})
	store.Close()

	reopened, err := NewStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	loaded := reopened.Load()
	if diff := cmp.Diff(archive, loaded); diff != "" {
		t.Errorf("round trip mismatch (-persisted +loaded):\n%s", diff)
	}
}

func TestLoadCorruptArchive(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)`, archiveKey, "{not json"); err != nil {
		t.Fatalf("failed to plant corrupt value: %v", err)
	}

	archive := store.Load()
	if len(archive) != 0 {
		t.Errorf("corrupt archive should load empty, got %d items", len(archive))
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		data canvas.CanvasData
		want string
	}{
		{
			name: "prefers value propositions",
			data: canvas.CanvasData{ValuePropositions: "vp", KeyActivities: "ka", CustomerSegments: "cs"},
			want: "vp",
		},
		{
			name: "falls back to key activities",
			data: canvas.CanvasData{KeyActivities: "ka", CustomerSegments: "cs"},
			want: "ka",
		},
		{
			name: "falls back to customer segments",
			data: canvas.CanvasData{CustomerSegments: "cs"},
			want: "cs",
		},
		{
			name: "whitespace does not count",
			data: canvas.CanvasData{ValuePropositions: "   ", CustomerSegments: "cs"},
			want: "cs",
		},
		{
			name: "placeholder when all sources empty",
			data: canvas.CanvasData{KeyPartners: "partners only"},
			want: "Untitled Plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.data); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.Repeat("ক", 90)
	got := Preview(canvas.CanvasData{ValuePropositions: long})

	runes := []rune(got)
	if len(runes) != previewLimit+3 {
		t.Fatalf("truncated preview rune length = %d, want %d", len(runes), previewLimit+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated preview should end with ellipsis, got %q", got)
	}

	exact := strings.Repeat("a", previewLimit)
	if got := Preview(canvas.CanvasData{ValuePropositions: exact}); got != exact {
		t.Errorf("preview at exactly the limit should be unchanged, got %q", got)
	}
}
