package web

import (
	"context"
	"sync"
	"time"

	"github.com/bornholm/feedsearch/pkg/search"
	"github.com/bornholm/feedsearch/pkg/ui"
	"github.com/google/uuid"
)

const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 1000
)

// Session is the client of one browser: its search bar and the controller
// the bar submits to.
type Session struct {
	ID         string
	Controller *ui.Controller
	SearchBar  *ui.SearchBar

	lastSeen time.Time
}

type SessionStoreOptions struct {
	Seed        string
	IdleTimeout time.Duration
	MaxSessions int
	Now         func() time.Time
}

type SessionStoreOptionFunc func(opts *SessionStoreOptions)

func WithSeed(seed string) SessionStoreOptionFunc {
	return func(opts *SessionStoreOptions) {
		opts.Seed = seed
	}
}

// WithIdleTimeout sets how long a session survives without being looked
// up.
func WithIdleTimeout(timeout time.Duration) SessionStoreOptionFunc {
	return func(opts *SessionStoreOptions) {
		opts.IdleTimeout = timeout
	}
}

// WithMaxSessions caps the number of live sessions. When the cap is reached
// the least recently seen session is dropped.
func WithMaxSessions(n int) SessionStoreOptionFunc {
	return func(opts *SessionStoreOptions) {
		opts.MaxSessions = n
	}
}

func WithClock(now func() time.Time) SessionStoreOptionFunc {
	return func(opts *SessionStoreOptions) {
		opts.Now = now
	}
}

type SessionStore struct {
	client      search.Client
	seed        string
	idleTimeout time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// Lookup returns the live session with the given id and marks it as seen.
func (s *SessionStore) Lookup(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, false
	}

	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, false
	}

	sess.lastSeen = now

	return sess, true
}

// Create registers a new session and mounts its controller, which starts
// the seed search.
func (s *SessionStore) Create(ctx context.Context) *Session {
	controller := ui.NewController(s.client, ui.WithSeed(s.seed))
	sess := &Session{
		ID:         uuid.NewString(),
		Controller: controller,
		SearchBar: ui.NewSearchBar(controller.Seed(), func(ctx context.Context, query string) {
			controller.Search(ctx, query)
		}),
	}

	s.mu.Lock()
	now := s.now()
	s.evict(now)
	sess.lastSeen = now
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	controller.Mount(ctx)

	return sess
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// evict drops expired sessions, then the least recently seen ones until
// there is room for one more. Callers hold s.mu.
func (s *SessionStore) evict(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}

	if s.maxSessions <= 0 {
		return
	}

	for len(s.sessions) >= s.maxSessions {
		var oldest *Session
		for _, sess := range s.sessions {
			if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
				oldest = sess
			}
		}

		delete(s.sessions, oldest.ID)
	}
}

func (s *SessionStore) expired(sess *Session, now time.Time) bool {
	return s.idleTimeout > 0 && now.Sub(sess.lastSeen) > s.idleTimeout
}

func NewSessionStore(client search.Client, funcs ...SessionStoreOptionFunc) *SessionStore {
	opts := &SessionStoreOptions{
		Seed:        ui.DefaultSeed,
		IdleTimeout: DefaultIdleTimeout,
		MaxSessions: DefaultMaxSessions,
		Now:         time.Now,
	}
	for _, fn := range funcs {
		fn(opts)
	}

	return &SessionStore{
		client:      client,
		seed:        opts.Seed,
		idleTimeout: opts.IdleTimeout,
		maxSessions: opts.MaxSessions,
		now:         opts.Now,
		sessions:    make(map[string]*Session),
	}
}
