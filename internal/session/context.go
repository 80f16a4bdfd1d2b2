package session

import "context"

type storeKey struct{}

// NewContext returns a child context carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the Store provisioned with NewContext.
//
// It panics when ctx carries no store: reaching for the session outside
// the scope that provisions it is a programming error.
func FromContext(ctx context.Context) *Store {
	s, ok := Lookup(ctx)
	if !ok {
		panic("session: no Store in context; wrap the context with session.NewContext")
	}
	return s
}

// Lookup is like FromContext but reports absence instead of panicking.
func Lookup(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	return s, ok && s != nil
}
