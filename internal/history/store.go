package history

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 200

// ChangeType indicates the type of store change.
type ChangeType int

const (
	// ChangeTypeAdd indicates an entry was added.
	ChangeTypeAdd ChangeType = iota
	// ChangeTypeHidden indicates an entry's bar was hidden.
	ChangeTypeHidden
	// ChangeTypeClear indicates all entries were cleared.
	ChangeTypeClear
)

// ChangeEvent signals store content changes.
type ChangeEvent struct {
	Type ChangeType
	ID   string
}

// Format selects an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Store holds the most recent entries with thread-safe operations.
type Store struct {
	mu      sync.RWMutex
	entries []Entry        // oldest first
	index   map[string]int // id -> slice index
	limit   int

	persistence Persistence

	subscribers []chan ChangeEvent
	closed      bool
}

// NewStore creates a Store keeping at most limit entries (DefaultLimit when
// limit <= 0). If persistence is not nil, changes are written through it.
func NewStore(limit int, persistence Persistence) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		index:       make(map[string]int),
		limit:       limit,
		persistence: persistence,
	}
}

// Add appends an entry, dropping the oldest entries beyond the limit.
// Entries with an ID already in the store are ignored.
func (s *Store) Add(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if _, exists := s.index[e.ID]; exists {
		return nil
	}

	s.entries = append(s.entries, e)
	s.trim()
	s.reindex()

	if s.persistence != nil {
		if err := s.persistence.Append(e); err != nil {
			return fmt.Errorf("persist entry: %w", err)
		}
	}

	s.notifyChange(ChangeEvent{Type: ChangeTypeAdd, ID: e.ID})
	return nil
}

// MarkHidden records when the bar for id was hidden.
func (s *Store) MarkHidden(id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	idx, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}

	s.entries[idx].HiddenAt = at
	if s.persistence != nil {
		if err := s.persistence.Append(s.entries[idx]); err != nil {
			return fmt.Errorf("persist entry: %w", err)
		}
	}

	s.notifyChange(ChangeEvent{Type: ChangeTypeHidden, ID: id})
	return nil
}

// Get returns the entry with id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[idx], true
}

// All returns a copy of all entries, newest first.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.entries)
	slices.Reverse(out)
	return out
}

// Count returns the number of entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Limit returns the maximum number of entries kept.
func (s *Store) Limit() int {
	return s.limit
}

// Clear removes all entries.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.entries = nil
	s.index = make(map[string]int)

	if s.persistence != nil {
		if err := s.persistence.Clear(); err != nil {
			return err
		}
	}

	s.notifyChange(ChangeEvent{Type: ChangeTypeClear})
	return nil
}

// Hydrate loads entries from persistence, keeping the newest up to the
// limit. The backing file is compacted when it holds superseded records.
func (s *Store) Hydrate() error {
	if s.persistence == nil {
		return nil
	}

	records, err := s.persistence.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	// Later records for the same id supersede earlier ones
	latest := make(map[string]int)
	var merged []Entry
	for _, e := range records {
		if i, ok := latest[e.ID]; ok {
			merged[i] = e
			continue
		}
		latest[e.ID] = len(merged)
		merged = append(merged, e)
	}

	s.entries = merged
	s.trim()
	s.reindex()

	if len(records) != len(s.entries) {
		if err := s.persistence.Rewrite(s.entries); err != nil {
			return fmt.Errorf("compact history: %w", err)
		}
	}
	return nil
}

// Export writes all entries, newest first, as JSON or YAML.
func (s *Store) Export(w io.Writer, format Format) error {
	return Export(w, s.All(), format)
}

// Export writes entries as JSON or YAML.
func Export(w io.Writer, entries []Entry, format Format) error {
	if entries == nil {
		entries = []Entry{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q, must be json or yaml", format)
	}
}

// Subscribe returns a channel that receives change events.
func (s *Store) Subscribe() <-chan ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	if s.closed {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription.
func (s *Store) Unsubscribe(ch <-chan ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close releases resources and closes all subscriber channels.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil

	if s.persistence != nil {
		return s.persistence.Close()
	}
	return nil
}

// trim drops the oldest entries beyond the limit. Callers hold the lock.
func (s *Store) trim() {
	if over := len(s.entries) - s.limit; over > 0 {
		s.entries = slices.Delete(s.entries, 0, over)
	}
}

func (s *Store) reindex() {
	clear(s.index)
	for i, e := range s.entries {
		s.index[e.ID] = i
	}
}

// notifyChange sends a change event to all subscribers (non-blocking).
func (s *Store) notifyChange(event ChangeEvent) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}
