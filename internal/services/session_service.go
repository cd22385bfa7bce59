package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/xconsult/internal/models"
	"github.com/robfig/cron/v3"
)

// SessionStore keeps every visitor's draft, toast and flags in memory.
// Nothing here survives a restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
	ttl      time.Duration
	now      func() time.Time
	cron     *cron.Cron
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open returns the session for the raw cookie value, creating a fresh one when
// the value is missing, malformed or already evicted.
func (s *SessionStore) Open(raw string) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if id, err := uuid.Parse(raw); err == nil {
		if sess, ok := s.sessions[id]; ok {
			sess.LastSeen = now
			return sess.Clone()
		}
	}

	sess := &models.Session{ID: uuid.New(), LastSeen: now}
	s.sessions[sess.ID] = sess
	return sess.Clone()
}

func (s *SessionStore) Get(id uuid.UUID) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return models.Session{}, fmt.Errorf("session %s: %w", id, models.ErrSessionNotFound)
	}
	return sess.Clone(), nil
}

// Update runs fn against a copy of the session and stores the copy only when
// fn returns nil. The stored value is replaced, never mutated in place.
func (s *SessionStore) Update(id uuid.UUID, fn func(*models.Session) error) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return models.Session{}, fmt.Errorf("session %s: %w", id, models.ErrSessionNotFound)
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		return current.Clone(), err
	}
	next.LastSeen = s.now()
	s.sessions[id] = &next
	return next.Clone(), nil
}

// Sweep evicts sessions idle for longer than the TTL. Sessions with a
// submission in flight are kept.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.Submitting || sess.LastSeen.After(cutoff) {
			continue
		}
		delete(s.sessions, id)
		evicted++
	}
	return evicted
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSweeper schedules Sweep every interval.
func (s *SessionStore) StartSweeper(interval time.Duration) error {
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if n := s.Sweep(); n > 0 {
			log.Printf("🧹 Evicted %d idle sessions, %d remain", n, s.Len())
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling session sweeper: %w", err)
	}

	s.cron = c
	c.Start()
	return nil
}

// Stop halts the sweeper, if running.
func (s *SessionStore) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
