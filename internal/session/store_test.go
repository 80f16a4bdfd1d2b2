package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/fretehub/fretehub-go/internal/core/domain"
)

// failingStorage fails every operation, like a disabled or full medium.
type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage disabled")
}
func (failingStorage) Set(context.Context, string, string) error { return errors.New("quota exceeded") }
func (failingStorage) Remove(context.Context, string) error      { return errors.New("storage disabled") }

type eventCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *eventCounter) RecordSessionEvent(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[event]++
}

func (c *eventCounter) get(event string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[event]
}

func TestStore_StartsUnauthenticated(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for empty storage")
	}
	if sess := s.Session(); !sess.Equal(domain.Session{}) {
		t.Errorf("Session() = %+v, want empty", sess)
	}
}

func TestStore_LoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	s := NewStore(storage)
	user := json.RawMessage(`{"id":"u1","name":"Ana"}`)
	company := json.RawMessage(`{"id":"c1"}`)
	if err := s.Login(ctx, "T", user, company); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = false after Login()")
	}

	// A fresh store over the same storage simulates a reload.
	reloaded := NewStore(storage)
	reloaded.Initialize(ctx)

	if !reloaded.IsAuthenticated() {
		t.Fatal("reloaded store is not authenticated")
	}
	want := domain.NewSession("T", user, company)
	if got := reloaded.Session(); !got.Equal(want) {
		t.Errorf("reloaded Session() = %+v, want %+v", got, want)
	}
}

func TestStore_LoginEmptyToken(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	err := s.Login(context.Background(), "", nil, nil)
	if !errors.Is(err, domain.ErrEmptyToken) {
		t.Errorf("Login(\"\") error = %v, want ErrEmptyToken", err)
	}
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after rejected login")
	}
}

func TestStore_LoginInvalidRecord(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	err := s.Login(context.Background(), "T", json.RawMessage(`{broken`), nil)
	if !errors.Is(err, domain.ErrSessionMalformed) {
		t.Errorf("Login() error = %v, want ErrSessionMalformed", err)
	}
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after rejected login")
	}
}

func TestStore_LoginSurvivesStorageFailure(t *testing.T) {
	s := NewStore(failingStorage{})
	if err := s.Login(context.Background(), "T", json.RawMessage(`{}`), nil); err != nil {
		t.Fatalf("Login() error = %v, want nil despite storage failure", err)
	}
	if !s.IsAuthenticated() {
		t.Error("in-memory login must survive storage failure")
	}

	s.Logout(context.Background())
	if s.IsAuthenticated() {
		t.Error("Logout() must clear in-memory state despite storage failure")
	}
}

func TestStore_LogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	s := NewStore(storage)

	if err := s.Login(ctx, "T", json.RawMessage(`{}`), json.RawMessage(`{}`)); err != nil {
		t.Fatal(err)
	}

	s.Logout(ctx)
	first := s.Session()
	firstLen := storage.Len()

	s.Logout(ctx)
	if got := s.Session(); !got.Equal(first) {
		t.Errorf("second Logout() changed session: %+v", got)
	}
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after Logout()")
	}
	if firstLen != 0 || storage.Len() != 0 {
		t.Errorf("storage keys after logout = %d/%d, want 0", firstLen, storage.Len())
	}
}

func TestStore_Initialize_Degrades(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]string
		wantAuth bool
	}{
		{"empty storage", nil, false},
		{"empty token", map[string]string{"token": ""}, false},
		{"token only", map[string]string{"token": "T"}, true},
		{"valid records", map[string]string{"token": "T", "user": `{"id":1}`, "company": `{"id":2}`}, true},
		{"malformed user", map[string]string{"token": "T", "user": "{not json"}, false},
		{"malformed company", map[string]string{"token": "T", "user": "{}", "company": "["}, false},
		{"records without token", map[string]string{"user": "{}", "company": "{}"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			storage := NewMemoryStorage()
			for k, v := range tt.values {
				if err := storage.Set(ctx, k, v); err != nil {
					t.Fatal(err)
				}
			}

			s := NewStore(storage)
			s.Initialize(ctx)

			if got := s.IsAuthenticated(); got != tt.wantAuth {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.wantAuth)
			}
			if !tt.wantAuth && !s.Session().Equal(domain.Session{}) {
				t.Errorf("Session() = %+v, want empty after degrade", s.Session())
			}
		})
	}
}

func TestStore_Initialize_StorageError(t *testing.T) {
	s := NewStore(failingStorage{})
	s.Initialize(context.Background())
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true when storage is unreadable")
	}
}

func TestStore_LoginBeforeInitialize(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	_ = storage.Set(ctx, domain.KeyToken, "OLD")

	s := NewStore(storage)
	if err := s.Login(ctx, "NEW", nil, nil); err != nil {
		t.Fatal(err)
	}

	// A read after login must not be clobbered by a late restore.
	if got := s.Session().Token; got != "NEW" {
		t.Errorf("Session().Token = %q, want %q", got, "NEW")
	}
}

func TestStore_LoginClearsStaleRecords(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	s := NewStore(storage)

	if err := s.Login(ctx, "A", json.RawMessage(`{"id":"a"}`), json.RawMessage(`{"id":"a"}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Login(ctx, "B", json.RawMessage(`{"id":"b"}`), nil); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := storage.Get(ctx, domain.KeyCompany); ok {
		t.Error("company from previous login should be removed")
	}
}

func TestStore_SessionIsCopy(t *testing.T) {
	s := NewStore(nil)
	if err := s.Login(context.Background(), "T", json.RawMessage(`{"a":1}`), nil); err != nil {
		t.Fatal(err)
	}

	sess := s.Session()
	sess.User[2] = 'X'

	if string(s.Session().User) != `{"a":1}` {
		t.Errorf("store state mutated through Session() copy: %s", s.Session().User)
	}
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	var got []bool
	cancel := s.Subscribe(func(sess domain.Session) {
		got = append(got, sess.IsAuthenticated())
	})

	_ = s.Login(ctx, "T", nil, nil)
	s.Logout(ctx)
	s.Logout(ctx) // no change, no notification

	cancel()
	cancel()
	_ = s.Login(ctx, "T2", nil, nil)

	want := []bool{true, false}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStore_Events(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	events := &eventCounter{}

	s := NewStore(storage, WithEventRecorder(events))
	_ = s.Login(ctx, "T", nil, nil)
	s.Logout(ctx)
	s.Logout(ctx)

	_ = NewStore(storage).Login(ctx, "T", nil, nil)
	restored := NewStore(storage, WithEventRecorder(events))
	restored.Initialize(ctx)

	if events.get(EventLogin) != 1 || events.get(EventLogout) != 1 || events.get(EventRestored) != 1 {
		t.Errorf("events = %v, want one login, logout and restore", events.counts)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryStorage())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Login(ctx, "T", json.RawMessage(`{}`), nil)
			s.Logout(ctx)
		}()
		go func() {
			defer wg.Done()
			sess := s.Session()
			if sess.IsAuthenticated() != (sess.Token != "") {
				t.Error("observed inconsistent session")
			}
		}()
	}
	wg.Wait()
}
