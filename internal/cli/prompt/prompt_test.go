package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLine(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  ana@example.com  \nlast"), &out)

	got, err := p.Line("Email")
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if got != "ana@example.com" {
		t.Errorf("Line() = %q", got)
	}
	if out.String() != "Email: " {
		t.Errorf("prompt = %q", out.String())
	}

	// A final line without newline is still an answer.
	if got, err := p.Line("Next"); err != nil || got != "last" {
		t.Errorf("Line() = %q, %v", got, err)
	}
	if _, err := p.Line("More"); !errors.Is(err, ErrNoInput) {
		t.Errorf("Line() at EOF error = %v, want ErrNoInput", err)
	}
}

func TestSecret_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("abcdef\n"), &out)

	if p.Interactive() {
		t.Fatal("strings.Reader must not be interactive")
	}
	got, err := p.Secret("Password")
	if err != nil || got != "abcdef" {
		t.Errorf("Secret() = %q, %v", got, err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"sim\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\ny\n", false, true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := New(strings.NewReader(tt.input), &out)
		got, err := p.Confirm("Accept the terms of use", tt.def)
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestChoice(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("br\n"), &out)

	got, err := p.Choice("Phone country", []string{"br", "us", "pt"})
	if err != nil || got != "br" {
		t.Errorf("Choice() = %q, %v", got, err)
	}
	if out.String() != "Phone country (br/us/pt): " {
		t.Errorf("prompt = %q", out.String())
	}
}

func TestSharedReader(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("first\nsecond\n"))
	p := New(br, &bytes.Buffer{})

	if p.Reader() != br {
		t.Fatal("bufio.Reader input should be shared, not wrapped")
	}
	line, _ := br.ReadString('\n')
	if line != "first\n" {
		t.Fatalf("shared read = %q", line)
	}
	if got, _ := p.Line("x"); got != "second" {
		t.Errorf("Line() after shared read = %q", got)
	}
}

func TestWithTerminal_NotATerminal(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{}).WithTerminal(-1)
	if p.Interactive() {
		t.Error("fd -1 must not be interactive")
	}
}
