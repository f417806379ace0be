package review

import (
	stderrors "errors"
	"sync"
	"time"

	"topicreview/domain/topics"
)

// ErrNoTable is returned when a view is requested before a file was loaded.
var ErrNoTable = stderrors.New("no spreadsheet loaded")

// Session holds one user's loaded table and current selection.
// Every action takes the session lock, so one recomputation completes before the next starts.
type Session struct {
	ID string

	mu         sync.Mutex
	filename   string
	table      *topics.Table
	topics     []string
	selected   topics.Selection
	lastActive time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, selected: topics.NewSelection(), lastActive: now}
}

// Load replaces the table and presumes every topic correct.
func (s *Session) Load(filename string, table *topics.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filename = filename
	s.table = table
	s.topics = topics.DistinctTopics(table)
	s.selected = topics.NewSelection(s.topics...)
	s.lastActive = time.Now()
}

// Select replaces the selection. Labels outside the topic set are dropped.
func (s *Session) Select(labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return ErrNoTable
	}
	s.selected = topics.NewSelection(labels...).Restrict(s.topics)
	s.lastActive = time.Now()
	return nil
}

// Loaded reports whether a table has been loaded
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table != nil
}

// View derives the annotated table, summary and topic options from the current state.
func (s *Session) View() (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return nil, ErrNoTable
	}
	s.lastActive = time.Now()
	return Derive(s.filename, s.table, s.selected), nil
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot returns the loaded filename and table
func (s *Session) Snapshot() (string, *topics.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return "", nil, ErrNoTable
	}
	s.lastActive = time.Now()
	return s.filename, s.table, nil
}

// Topics returns the topic set of the loaded table
func (s *Session) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.topics))
	copy(out, s.topics)
	return out
}

// Clear returns the session to the "file not loaded" state
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filename = ""
	s.table = nil
	s.topics = nil
	s.selected = topics.NewSelection()
	s.lastActive = time.Now()
}
