// pkg/history/store.go
package history

import (
	"bufio"
	"container/list"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultMaxEntries is the number of recent archives kept by default
const DefaultMaxEntries = 5

// Entry is one recently opened archive as shown to callers
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Store is a bounded, most-recently-used-first list of paths mirrored to a
// plain text file (one path per line, front to back).
// Every Insert rewrites the file; Snapshot never touches it.
type Store struct {
	mu         sync.Mutex
	file       *os.File
	maxEntries int
	order      *list.List               // front = most recent, values are paths
	index      map[string]*list.Element // path -> node in order
}

// Open opens (creating if needed) the backing file and loads its lines.
// The caller should treat an error as fatal: history cannot work without its file.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		return nil, ErrInvalidCapacity
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}

	s := &Store{
		file:       file,
		maxEntries: maxEntries,
		order:      list.New(),
		index:      make(map[string]*list.Element),
	}

	if err := s.load(); err != nil {
		file.Close()
		return nil, fmt.Errorf("load history file: %w", err)
	}

	return s, nil
}

// load reads the file top to bottom as front to back.
// Blank lines and repeats are skipped, lines past capacity are dropped.
func (s *Store) load() error {
	r := bufio.NewReader(s.file)
	for s.order.Len() < s.maxEntries {
		raw, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}

		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if line != "" {
			if _, exists := s.index[line]; !exists {
				s.index[line] = s.order.PushBack(line)
			}
		}

		if err == io.EOF {
			return nil
		}
	}
	return nil
}

// Insert moves path to the front, adding it if new and evicting the least
// recently used path when full, then rewrites the backing file.
// If the rewrite fails the in-memory order has already changed.
func (s *Store) Insert(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsAny(path, "\r\n") {
		return ErrInvalidPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return ErrClosed
	}

	if node, exists := s.index[path]; exists {
		s.order.MoveToFront(node)
	} else {
		if s.order.Len() >= s.maxEntries {
			s.evictLRU()
		}
		s.index[path] = s.order.PushFront(path)
	}

	return s.save()
}

// evictLRU removes the least recently used path
// Must be called with lock held
func (s *Store) evictLRU() {
	back := s.order.Back()
	if back == nil {
		return
	}
	delete(s.index, back.Value.(string))
	s.order.Remove(back)
}

// save overwrites the backing file with the current order
// Must be called with lock held
func (s *Store) save() error {
	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate history file: %w", err)
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek history file: %w", err)
	}

	w := bufio.NewWriter(s.file)
	for node := s.order.Front(); node != nil; node = node.Next() {
		if _, err := fmt.Fprintln(w, node.Value.(string)); err != nil {
			return fmt.Errorf("write history file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync history file: %w", err)
	}
	return nil
}

// Snapshot returns the paths front to back with their display names
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, s.order.Len())
	for node := s.order.Front(); node != nil; node = node.Next() {
		path := node.Value.(string)
		entries = append(entries, Entry{
			Name: displayName(path),
			Path: path,
		})
	}
	return entries
}

// Len returns the number of paths held
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Close releases the backing file. Snapshot keeps working; Insert returns ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// displayName is the last path element, or the path itself when there is none
func displayName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return path
	}
	return name
}
