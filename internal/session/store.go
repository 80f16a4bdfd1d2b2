package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fretehub/fretehub-go/internal/core/domain"
	"github.com/fretehub/fretehub-go/internal/telemetry/logger"
)

// Session events reported to an EventRecorder.
const (
	EventLogin    = "login"
	EventLogout   = "logout"
	EventRestored = "restored"
)

// EventRecorder counts session transitions. *metric.Registry satisfies it.
type EventRecorder interface {
	RecordSessionEvent(event string)
}

// Store owns the authentication state of one client.
//
// Reads initialize the store lazily from its Storage. Login and Logout
// are serialized; each replaces the in-memory state in one step before
// persisting, so readers never observe a half-applied session.
type Store struct {
	storage Storage
	logger  logger.Logger
	events  EventRecorder

	initOnce sync.Once
	writeMu  sync.Mutex // serializes Login/Logout including persistence

	mu      sync.RWMutex
	current domain.Session
	subs    map[int]func(domain.Session)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed storage failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithEventRecorder reports login, logout and restore events.
func WithEventRecorder(r EventRecorder) Option {
	return func(s *Store) {
		s.events = r
	}
}

// NewStore creates a store backed by storage. A nil storage keeps the
// session in memory only.
func NewStore(storage Storage, opts ...Option) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Store{
		storage: storage,
		logger:  logger.Default(),
		subs:    make(map[int]func(domain.Session)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads a previously persisted session. It runs at most once;
// later calls (and the implicit call made by every read) are no-ops.
// Missing or malformed data leaves the store unauthenticated.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		restored, ok := s.load(ctx)
		if !ok {
			return
		}

		s.mu.Lock()
		s.current = restored
		s.mu.Unlock()

		s.record(EventRestored)
		logger.L(ctx).Debug("session restored")
	})
}

// load reads the persisted session. ok is false when there is nothing
// usable to restore.
func (s *Store) load(ctx context.Context) (domain.Session, bool) {
	log := logger.L(ctx)

	tok, ok, err := s.storage.Get(ctx, domain.KeyToken)
	if err != nil {
		log.Debug("session token unreadable, starting unauthenticated", "error", err)
		return domain.Session{}, false
	}
	if !ok || tok == "" {
		return domain.Session{}, false
	}

	user, ok := s.loadRecord(ctx, domain.KeyUser)
	if !ok {
		return domain.Session{}, false
	}
	company, ok := s.loadRecord(ctx, domain.KeyCompany)
	if !ok {
		return domain.Session{}, false
	}

	return domain.NewSession(tok, user, company), true
}

// loadRecord reads one JSON record. An absent key is a valid absent
// record; an unreadable or invalid one makes the whole session unusable.
func (s *Store) loadRecord(ctx context.Context, key string) (json.RawMessage, bool) {
	raw, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		logger.L(ctx).Debug("session record unreadable, starting unauthenticated",
			"record", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, true
	}
	if !json.Valid([]byte(raw)) {
		logger.L(ctx).Debug("session record malformed, starting unauthenticated", "record", key)
		return nil, false
	}
	return json.RawMessage(raw), true
}

// Login replaces the session and persists it. It fails only when tok is
// empty or a record is not valid JSON; storage failures are logged and
// do not undo the in-memory login.
func (s *Store) Login(ctx context.Context, tok string, user, company json.RawMessage) error {
	if tok == "" {
		return domain.ErrEmptyToken
	}
	next := domain.NewSession(tok, user, company)
	if next.User != nil && !json.Valid(next.User) {
		return domain.ErrSessionMalformed.WithDetails(domain.KeyUser)
	}
	if next.Company != nil && !json.Valid(next.Company) {
		return domain.ErrSessionMalformed.WithDetails(domain.KeyCompany)
	}

	// A lazy initialize after this point would overwrite the login.
	s.Initialize(ctx)

	s.writeMu.Lock()
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.persist(ctx, next)
	s.writeMu.Unlock()

	s.record(EventLogin)
	s.notify(next)
	return nil
}

func (s *Store) persist(ctx context.Context, sess domain.Session) {
	log := logger.L(ctx)

	if err := s.storage.Set(ctx, domain.KeyToken, sess.Token); err != nil {
		log.Warn("session not persisted", "record", domain.KeyToken, "error", err)
	}

	records := []struct {
		key   string
		value json.RawMessage
	}{
		{domain.KeyUser, sess.User},
		{domain.KeyCompany, sess.Company},
	}
	for _, r := range records {
		var err error
		if r.value == nil {
			err = s.storage.Remove(ctx, r.key)
		} else {
			err = s.storage.Set(ctx, r.key, string(r.value))
		}
		if err != nil {
			log.Warn("session not persisted", "record", r.key, "error", err)
		}
	}
}

// Logout clears the session and every persisted key. Calling it when
// already logged out is a no-op apart from re-clearing storage.
func (s *Store) Logout(ctx context.Context) {
	s.Initialize(ctx)

	s.writeMu.Lock()
	s.mu.Lock()
	was := s.current.IsAuthenticated()
	s.current = domain.Session{}
	s.mu.Unlock()

	for _, key := range domain.SessionKeys {
		if err := s.storage.Remove(ctx, key); err != nil {
			logger.L(ctx).Warn("persisted session not cleared", "record", key, "error", err)
		}
	}
	s.writeMu.Unlock()

	if was {
		s.record(EventLogout)
		s.notify(domain.Session{})
	}
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	s.Initialize(context.Background())

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsAuthenticated()
}

// Session returns a copy of the current session.
func (s *Store) Session() domain.Session {
	s.Initialize(context.Background())

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Subscribe registers fn to be called with the new session after every
// login and every logout that changed state. The returned func removes
// the subscription.
func (s *Store) Subscribe(fn func(domain.Session)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify(sess domain.Session) {
	s.mu.RLock()
	fns := make([]func(domain.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(sess.Clone())
	}
}

func (s *Store) record(event string) {
	if s.events != nil {
		s.events.RecordSessionEvent(event)
	}
}
