// Package form holds the typed input forms of the app and their validation.
// Field rules are plain func(string) error values so the same rules drive
// both Validate and the huh inputs in the TUI.
package form

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a field name to its first failing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fe[name])
	}
	return strings.Join(parts, "; ")
}

// Result is the outcome of validating a form: either valid, or a set of
// field errors.
type Result struct {
	errs FieldErrors
}

// Valid returns a passing Result.
func Valid() Result { return Result{} }

// OK reports whether the form passed validation.
func (r Result) OK() bool { return len(r.errs) == 0 }

// Errors returns the field errors, nil when OK.
func (r Result) Errors() FieldErrors {
	if r.OK() {
		return nil
	}
	return r.errs
}

// Err returns the field errors as an error, nil when OK.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return r.errs
}

// Rule validates one field value.
type Rule func(string) error

// Field combines rules into a single validator. The first failing rule wins.
func Field(rules ...Rule) func(string) error {
	return func(s string) error {
		for _, rule := range rules {
			if err := rule(s); err != nil {
				return err
			}
		}
		return nil
	}
}

// Required fails on blank input.
func Required(msg string) Rule {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// MinLen fails when s has fewer than n characters.
func MinLen(n int) Rule {
	return func(s string) error {
		if utf8.RuneCountInString(s) < n {
			return fmt.Errorf("must be at least %d characters", n)
		}
		return nil
	}
}

// MaxLen fails when s has more than n characters.
func MaxLen(n int) Rule {
	return func(s string) error {
		if utf8.RuneCountInString(s) > n {
			return fmt.Errorf("must be at most %d characters", n)
		}
		return nil
	}
}

// Email fails unless s is a bare address such as name@example.com.
func Email() Rule {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@")+1:], ".") {
			return errors.New("invalid email address")
		}
		return nil
	}
}

type check struct {
	field string
	value string
	rule  func(string) error
}

func run(checks ...check) Result {
	errs := FieldErrors{}
	for _, c := range checks {
		if _, seen := errs[c.field]; seen {
			continue
		}
		if err := c.rule(c.value); err != nil {
			errs[c.field] = err.Error()
		}
	}
	if len(errs) == 0 {
		return Valid()
	}
	return Result{errs: errs}
}
