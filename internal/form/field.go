package form

import (
	"fmt"
	"strings"
)

// General is the error key for form-level messages.
const General = "general"

// Kind is the type of value a field holds.
type Kind int

const (
	// KindText fields hold strings.
	KindText Kind = iota
	// KindBool fields hold booleans (checkboxes).
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// zero returns the initial value of a field of this kind.
func (k Kind) zero() any {
	if k == KindBool {
		return false
	}
	return ""
}

// Field declares one input of a form.
type Field struct {
	// Name is the field key, also used in request bodies and server errors.
	Name string

	// Label is the human-readable name shown when prompting.
	Label string

	Kind Kind

	// Rules run in order; the first non-empty message wins.
	Rules []Rule

	// Omit keeps the field out of the default request body. Confirmation
	// fields are validated but never transmitted.
	Omit bool

	// Secret marks values that must not be echoed (passwords).
	Secret bool

	// Options lists the accepted values of a selector field.
	Options []string
}

// Validate returns the first error message produced by the field's rules.
func (f Field) Validate(all Values) string {
	v := all[f.Name]
	for _, rule := range f.Rules {
		if msg := rule(v, all); msg != "" {
			return msg
		}
	}
	return ""
}

// Values maps field names to their current value: string for KindText,
// bool for KindBool.
type Values map[string]any

// Text returns the string value of name, or "" if it is not text.
func (v Values) Text(name string) string {
	s, _ := v[name].(string)
	return s
}

// TrimmedText returns Text with surrounding whitespace removed.
func (v Values) TrimmedText(name string) string {
	return strings.TrimSpace(v.Text(name))
}

// Bool returns the boolean value of name, or false if it is not a bool.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Clone returns a shallow copy; values are immutable scalars.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Errors maps every field name plus General to a message. An empty
// message means no error.
type Errors map[string]string

// HasAny reports whether any slot holds a message.
func (e Errors) HasAny() bool {
	for _, msg := range e {
		if msg != "" {
			return true
		}
	}
	return false
}

// General returns the form-level message.
func (e Errors) General() string {
	return e[General]
}

// Clone returns a copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, msg := range e {
		out[k] = msg
	}
	return out
}
