// pkg/history/store_test.go
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func openStore(t *testing.T, path string, max int) *Store {
	t.Helper()
	s, err := Open(path, max)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func assertOrder(t *testing.T, s *Store, want ...string) {
	t.Helper()
	got := paths(s.Snapshot())
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Expected order %v, got %v", want, got)
	}
}

func assertFile(t *testing.T, path string, want ...string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read backing file: %v", err)
	}
	expected := ""
	for _, w := range want {
		expected += w + "\n"
	}
	if string(raw) != expected {
		t.Fatalf("Expected file %q, got %q", expected, raw)
	}
}

func TestStoreCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hopp.db")
	s := openStore(t, path, DefaultMaxEntries)

	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d entries", s.Len())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Backing file should exist: %v", err)
	}
}

func TestStoreInvalidCapacity(t *testing.T) {
	for _, max := range []int{0, -1} {
		if _, err := Open(filepath.Join(t.TempDir(), "hopp.db"), max); !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("Capacity %d: expected ErrInvalidCapacity, got %v", max, err)
		}
	}
}

func TestStoreOpenFailure(t *testing.T) {
	// A directory cannot be opened as the backing file
	if _, err := Open(t.TempDir(), DefaultMaxEntries); err == nil {
		t.Error("Expected error opening a directory as history file")
	}
}

func TestStoreEvictionScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hopp.db")
	s := openStore(t, path, 5)

	for _, p := range []string{"a", "b", "c", "d", "e", "f"} {
		if err := s.Insert(p); err != nil {
			t.Fatalf("Insert %s failed: %v", p, err)
		}
	}
	assertOrder(t, s, "f", "e", "d", "c", "b")
	assertFile(t, path, "f", "e", "d", "c", "b")

	// Re-inserting a present path moves it to the front without growing
	if err := s.Insert("c"); err != nil {
		t.Fatalf("Insert c failed: %v", err)
	}
	assertOrder(t, s, "c", "f", "e", "d", "b")
	assertFile(t, path, "c", "f", "e", "d", "b")
	if s.Len() != 5 {
		t.Errorf("Expected 5 entries, got %d", s.Len())
	}
}

func TestStoreCapacityPlusOne(t *testing.T) {
	for _, max := range []int{1, 3, 7} {
		t.Run(fmt.Sprintf("max=%d", max), func(t *testing.T) {
			s := openStore(t, filepath.Join(t.TempDir(), "hopp.db"), max)

			var inserted []string
			for i := 0; i <= max; i++ {
				p := fmt.Sprintf("/archives/%d.zip", i)
				inserted = append(inserted, p)
				if err := s.Insert(p); err != nil {
					t.Fatalf("Insert failed: %v", err)
				}
			}

			got := paths(s.Snapshot())
			if len(got) != max {
				t.Fatalf("Expected %d entries, got %d", max, len(got))
			}
			for _, p := range got {
				if p == inserted[0] {
					t.Errorf("First inserted path %s should have been evicted", p)
				}
			}
			// Most recent first
			for i, p := range got {
				if want := inserted[len(inserted)-1-i]; p != want {
					t.Errorf("Position %d: expected %s, got %s", i, want, p)
				}
			}
		})
	}
}

func TestStoreMoveToFrontKeepsCount(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "hopp.db"), 5)
	for _, p := range []string{"x", "y", "z"} {
		s.Insert(p)
	}
	s.Insert("x")
	s.Insert("x")

	assertOrder(t, s, "x", "z", "y")
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hopp.db")
	s := openStore(t, path, 5)

	for _, p := range []string{"/a.zip", "/b.zip", "/c.zip", "/a.zip", "/d.zip", "/e.zip", "/f.zip", "/b.zip"} {
		if err := s.Insert(p); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	before := s.Snapshot()
	s.Close()

	reopened := openStore(t, path, 5)
	after := reopened.Snapshot()

	if len(before) != len(after) {
		t.Fatalf("Expected %d entries after reopen, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Entry %d: expected %+v, got %+v", i, before[i], after[i])
		}
	}
}

func TestStoreLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hopp.db")
	content := "/one.zip\r\n\n/two.zip\n/one.zip\n/three.zip\n/four.zip\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	s := openStore(t, path, 3)
	assertOrder(t, s, "/one.zip", "/two.zip", "/three.zip")

	// The file is only rewritten by the next insert
	if err := s.Insert("/two.zip"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	assertFile(t, path, "/two.zip", "/one.zip", "/three.zip")
}

func TestStoreLoadLongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hopp.db")
	long := "/" + strings.Repeat("d", 70*1024) + "/archive.zip"
	content := long + "\n/short.zip"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	s := openStore(t, path, 5)
	assertOrder(t, s, long, "/short.zip")
}

func TestStoreSnapshotNames(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "hopp.db"), 5)
	p := filepath.Join("home", "user", "backup.zip")
	s.Insert(p)

	snap := s.Snapshot()
	if snap[0].Name != "backup.zip" || snap[0].Path != p {
		t.Errorf("Unexpected entry: %+v", snap[0])
	}

	// Mutating the snapshot must not affect the store
	snap[0].Path = "changed"
	if s.Snapshot()[0].Path != p {
		t.Error("Snapshot should be a copy")
	}
}

func TestStoreRejectsBadPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hopp.db")
	s := openStore(t, path, 5)

	if err := s.Insert(""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("Expected ErrEmptyPath, got %v", err)
	}
	if err := s.Insert("a\nb"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Expected ErrInvalidPath, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Rejected paths must not be stored, got %d entries", s.Len())
	}
}

func TestStoreClosed(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "hopp.db"), 5)
	s.Insert("/kept.zip")

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
	if err := s.Insert("/late.zip"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	assertOrder(t, s, "/kept.zip")
}

func TestStoreConcurrentInserts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hopp.db")
	s := openStore(t, path, 5)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if err := s.Insert(fmt.Sprintf("/g%d/%d.zip", g, i%7)); err != nil {
					t.Errorf("Insert failed: %v", err)
					return
				}
				s.Snapshot()
			}
		}(g)
	}
	wg.Wait()

	snap := paths(s.Snapshot())
	if len(snap) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(snap))
	}
	seen := make(map[string]bool)
	for _, p := range snap {
		if seen[p] {
			t.Errorf("Duplicate path %s", p)
		}
		seen[p] = true
	}
	// File mirrors memory after the last insert
	assertFile(t, path, snap...)
}
