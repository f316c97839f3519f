package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"spacescope/internal/analysis"
	"spacescope/internal/assistant"
	"spacescope/internal/interest"
	"spacescope/internal/llm"
	"spacescope/internal/share"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

// Session is one visitor's state: dialogue, analyses, interests and share
// acknowledgement
type Session struct {
	ID        string
	CreatedAt time.Time

	Assistant *assistant.Session
	Interests *interest.Set
	Missions  *analysis.Mission
	Weather   *analysis.Weather
	Share     *share.Resolver
	Clipboard *share.MemoryClipboard

	mu       sync.Mutex
	premium  bool
	lastSeen time.Time
}

// Premium reports whether the session holds the premium entitlement
func (s *Session) Premium() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.premium
}

// SetPremium grants or revokes the premium entitlement
func (s *Session) SetPremium(premium bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.premium = premium
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	s.Missions.Close()
	s.Weather.Close()
	s.Share.Close()
}

// SessionService keeps sessions in memory and expires idle ones
type SessionService struct {
	gen    llm.Generator
	model  string
	origin string
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionService creates a session registry. A nil gen behaves like
// llm.Unavailable.
func NewSessionService(gen llm.Generator, model, origin string, ttl time.Duration, logger *zap.Logger) *SessionService {
	if gen == nil {
		gen = llm.Unavailable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		gen:      gen,
		model:    model,
		origin:   origin,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session
func (s *SessionService) Create(premium bool) *Session {
	now := s.now()
	clip := &share.MemoryClipboard{}
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Assistant: assistant.NewSession(s.gen, s.model, s.logger),
		Interests: &interest.Set{},
		Missions:  analysis.NewMission(s.gen, s.model, s.logger),
		Weather:   analysis.NewWeather(s.gen, s.model, s.logger),
		Share:     share.NewResolver(s.origin, nil, clip, s.logger),
		Clipboard: clip,
		premium:   premium,
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session", sess.ID), zap.Bool("premium", premium))
	return sess
}

// Get returns a live session and refreshes its idle timer
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if now.Sub(sess.idleSince()) > s.ttl {
		s.remove(id)
		return nil, ErrSessionNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Delete ends a session
func (s *SessionService) Delete(id string) error {
	if !s.remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

// Len returns the number of tracked sessions
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL
func (s *SessionService) Sweep() int {
	now := s.now()

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.ttl {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.close()
	}
	if len(expired) > 0 {
		s.logger.Info("expired sessions swept", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps expired sessions until ctx is done
func (s *SessionService) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *SessionService) remove(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.close()
	}
	return ok
}
