package session

import (
	"context"
	"testing"
)

func TestContext(t *testing.T) {
	s := NewStore(nil)
	ctx := NewContext(context.Background(), s)

	if got := FromContext(ctx); got != s {
		t.Error("FromContext() returned a different store")
	}
	if got, ok := Lookup(ctx); !ok || got != s {
		t.Error("Lookup() did not find the provisioned store")
	}
}

func TestFromContext_PanicsWithoutStore(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromContext() should panic when no store is provisioned")
		}
	}()
	FromContext(context.Background())
}

func TestLookup_Missing(t *testing.T) {
	if _, ok := Lookup(context.Background()); ok {
		t.Error("Lookup() reported a store in an empty context")
	}
	if _, ok := Lookup(NewContext(context.Background(), nil)); ok {
		t.Error("Lookup() reported a nil store as present")
	}
}
