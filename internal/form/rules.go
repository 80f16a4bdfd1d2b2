package form

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule checks one field value. It returns the error message, or "" when
// the value passes. Rules must be pure: the same inputs always produce the
// same message.
type Rule func(value any, all Values) string

// emailPattern accepts local@domain.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func text(v any) string {
	s, _ := v.(string)
	return s
}

// Required fails when a text value is blank after trimming, or a bool
// value is false.
func Required(msg string) Rule {
	return func(v any, _ Values) string {
		switch val := v.(type) {
		case bool:
			if !val {
				return msg
			}
		default:
			if strings.TrimSpace(text(v)) == "" {
				return msg
			}
		}
		return ""
	}
}

// Email fails when a non-empty value is not shaped like local@domain.tld.
func Email(msg string) Rule {
	return func(v any, _ Values) string {
		s := strings.TrimSpace(text(v))
		if s != "" && !emailPattern.MatchString(s) {
			return msg
		}
		return ""
	}
}

// MinLength fails when a non-empty value has fewer than n characters.
func MinLength(n int, msg string) Rule {
	return func(v any, _ Values) string {
		s := text(v)
		if s != "" && utf8.RuneCountInString(s) < n {
			return msg
		}
		return ""
	}
}

// Matches fails when both this value and the other field are non-empty
// and differ.
func Matches(other, msg string) Rule {
	return func(v any, all Values) string {
		s, o := text(v), all.Text(other)
		if s != "" && o != "" && s != o {
			return msg
		}
		return ""
	}
}

// Accepted fails unless the value is the boolean true.
func Accepted(msg string) Rule {
	return func(v any, _ Values) string {
		if b, _ := v.(bool); !b {
			return msg
		}
		return ""
	}
}

// OneOf fails when a non-empty value is not one of options.
func OneOf(options []string, msg string) Rule {
	return func(v any, _ Values) string {
		s := strings.TrimSpace(text(v))
		if s == "" {
			return ""
		}
		for _, o := range options {
			if s == o {
				return ""
			}
		}
		return msg
	}
}

// Pattern fails when a non-empty value does not match re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(v any, _ Values) string {
		s := strings.TrimSpace(text(v))
		if s != "" && !re.MatchString(s) {
			return msg
		}
		return ""
	}
}

// Format is a pattern and its error message.
type Format struct {
	Pattern *regexp.Regexp
	Message string
}

// PatternBySelector validates a non-empty value against the format chosen
// by the current value of the selector field (a document type, a phone
// country). Selector values without a format are left to the selector's
// own rules.
func PatternBySelector(selector string, formats map[string]Format) Rule {
	return func(v any, all Values) string {
		s := strings.TrimSpace(text(v))
		if s == "" {
			return ""
		}
		f, ok := formats[all.TrimmedText(selector)]
		if !ok {
			return ""
		}
		if !f.Pattern.MatchString(s) {
			return f.Message
		}
		return ""
	}
}
