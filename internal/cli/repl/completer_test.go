package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter([]string{"login", "logout", "config show", "config set", "config path", "login"})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"log", []string{"login", "logout"}},
		{"config  s", []string{"config set", "config show"}},
		{"ex", []string{"exit"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_Commands(t *testing.T) {
	c := NewCompleter([]string{"whoami", "", "whoami"})
	got := c.Commands()

	want := []string{"complete", "exit", "help", "history", "quit", "whoami"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() = %v, want %v", got, want)
	}

	got[0] = "mutated"
	if c.Commands()[0] != "complete" {
		t.Error("Commands() must return a copy")
	}
}

func TestCompleter_EmptyPrefix(t *testing.T) {
	c := NewCompleter([]string{"login"})
	if got := c.Complete(""); len(got) != len(Builtins)+1 {
		t.Errorf("Complete(\"\") = %v", got)
	}
}
