package rules

import (
	"errors"
	"strings"
)

var (
	ErrRequired     = errors.New("field is required")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrDomain       = errors.New("email is outside the institutional domain")

	ErrFormat   = errors.New("phone contains characters other than digits, spaces, parentheses and hyphens")
	ErrEmpty    = errors.New("phone contains no digits")
	ErrTooShort = errors.New("phone has fewer than 10 digits")
	ErrTooLong  = errors.New("phone has more than 11 digits")

	ErrUserNotFound      = errors.New("no user with this email")
	ErrInvalidCredential = errors.New("password does not match")
)

// FieldError attaches a rule violation to a form field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// ValidationError carries at most one FieldError per field, in form order.
type ValidationError struct {
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes every field cause to errors.Is / errors.As.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f)
	}
	return out
}

// First returns the first violation in form order.
func (e *ValidationError) First() *FieldError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e.Fields[0]
}

// Field returns the cause recorded for name, or nil.
func (e *ValidationError) Field(name string) error {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Err
		}
	}
	return nil
}

func (e *ValidationError) add(field string, err error) {
	if err == nil || e.Field(field) != nil {
		return
	}
	e.Fields = append(e.Fields, &FieldError{Field: field, Err: err})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
