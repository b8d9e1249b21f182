// Package session keeps the wizard state of API clients: one record and one navigator per
// session, mutated only under the store lock.
package session

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
	"github.com/dpshade/srs-wizard/internal/wizard"
)

// Session is one wizard in progress
type Session struct {
	ID        string
	Record    models.Record
	Navigator *wizard.Navigator
	CreatedAt time.Time
	UpdatedAt time.Time

	rendering atomic.Bool
}

// BeginRender claims the session for a document render. It returns false when a render is
// already running for this session.
func (s *Session) BeginRender() bool {
	return s.rendering.CompareAndSwap(false, true)
}

// EndRender releases the claim taken by BeginRender
func (s *Session) EndRender() {
	s.rendering.Store(false)
}

// View is a copy of a session that is safe to read without the store lock
type View struct {
	ID        string
	Record    models.Record
	Snapshot  wizard.Snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Session) view() View {
	return View{
		ID:        s.ID,
		Record:    s.Record.Clone(),
		Snapshot:  s.Navigator.Snapshot(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Store holds the sessions in memory
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a session at step 0 with the given record, or an empty one when record is nil
func (st *Store) Create(record *models.Record) View {
	r := models.NewRecord()
	if record != nil {
		r = record.Clone()
		r.Normalize()
	}

	now := st.now()
	s := &Session{
		ID:        uuid.NewString(),
		Record:    r,
		Navigator: wizard.NewNavigator(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s.view()
}

// Get returns a copy of the session
func (st *Store) Get(id string) (View, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return View{}, notFound(id)
	}
	return s.view(), nil
}

// Update runs fn with exclusive access to the session. When fn fails the record and navigator
// are put back the way they were, so a refused action never leaves a partial change behind.
func (st *Store) Update(id string, fn func(s *Session) error) (View, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return View{}, notFound(id)
	}

	record := s.Record.Clone()
	snap := s.Navigator.Snapshot()
	if err := fn(s); err != nil {
		s.Record = record
		s.Navigator = wizard.Restore(snap.Current, snap.Completed)
		return s.view(), err
	}

	s.UpdatedAt = st.now()
	return s.view(), nil
}

// Acquire claims a session for rendering and returns a copy of its record. The caller must call
// Release when done. A second claim before Release fails with RENDER_IN_PROGRESS.
func (st *Store) Acquire(id string) (models.Record, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return models.Record{}, notFound(id)
	}
	if !s.BeginRender() {
		return models.Record{}, errors.RenderInProgressError().WithContext("session", id)
	}
	return s.Record.Clone(), nil
}

// Release ends a render claimed with Acquire
func (st *Store) Release(id string) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if s, ok := st.sessions[id]; ok {
		s.EndRender()
	}
}

// Delete discards a session
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return notFound(id)
	}
	delete(st.sessions, id)
	return nil
}

// Prune drops sessions idle for longer than ttl and returns how many were removed
func (st *Store) Prune(ttl time.Duration) int {
	cutoff := st.now().Add(-ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.UpdatedAt.Before(cutoff) && !s.rendering.Load() {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// IDs lists the live session IDs in sorted order
func (st *Store) IDs() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len is the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func notFound(id string) *errors.AppError {
	return errors.NotFoundError("Session").WithContext("session", id)
}
