package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrField is one failed check; Msg is a full sentence naming the field.
type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

func (e *ErrField) Error() string { return e.Msg }

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Msg)
	}
	return b.String()
}

// Collect keeps every failed check, in order.
func Collect(checks ...*ErrField) Errs {
	var out Errs
	for _, c := range checks {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// First returns the first failed check or nil.
func First(checks ...*ErrField) *ErrField {
	for _, c := range checks {
		if c != nil {
			return c
		}
	}
	return nil
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: field + " is required"}
	}
	return nil
}

func NotEmpty(field, value string) *ErrField {
	if value == "" {
		return &ErrField{Field: field, Msg: field + " cannot be empty"}
	}
	return nil
}

// MinLen counts characters, not bytes.
func MinLen(field, value string, min int) *ErrField {
	if utf8.RuneCountInString(value) < min {
		return &ErrField{Field: field, Msg: field + " must be at least " + strconv.Itoa(min) + " characters"}
	}
	return nil
}
