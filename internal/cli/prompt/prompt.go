// Package prompt reads form values from the user.
//
// Secrets are read without echo when the input is a terminal; otherwise
// every value is read as a plain line so scripts can pipe answers in.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when the input ends before an answer is read.
var ErrNoInput = errors.New("prompt: no input")

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	fd          int
	interactive bool
}

type fdReader interface {
	Fd() uintptr
}

// New creates a prompter. Input that is a terminal enables hidden secret
// entry. An *bufio.Reader is used as-is so the prompter can share it with
// a line reader such as the shell.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{out: out, fd: -1}
	if f, ok := in.(fdReader); ok {
		p.fd = int(f.Fd())
		p.interactive = term.IsTerminal(p.fd)
	}
	if br, ok := in.(*bufio.Reader); ok {
		p.in = br
	} else {
		p.in = bufio.NewReader(in)
	}
	return p
}

// WithTerminal returns a copy that hides secrets on fd when it is a
// terminal. The shell uses it to keep its buffered reader while reading
// passwords from the real stdin.
func (p *Prompter) WithTerminal(fd int) *Prompter {
	c := *p
	c.fd = fd
	c.interactive = term.IsTerminal(fd)
	return &c
}

// Reader returns the buffered input.
func (p *Prompter) Reader() *bufio.Reader {
	return p.in
}

// Interactive reports whether the input is a terminal.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Line asks for a value and returns it trimmed.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret asks for a value without echoing it on a terminal.
func (p *Prompter) Secret(label string) (string, error) {
	if !p.interactive {
		return p.Line(label)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		answer, err := p.Line(fmt.Sprintf("%s [%s]", label, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes", "s", "sim":
			return true, nil
		case "n", "no", "nao", "não":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Choice asks for one of options. The answer is not checked here; the
// form's own rules report invalid choices.
func (p *Prompter) Choice(label string, options []string) (string, error) {
	if len(options) == 0 {
		return p.Line(label)
	}
	return p.Line(fmt.Sprintf("%s (%s)", label, strings.Join(options, "/")))
}
