package services

import (
	"errors"

	"github.com/baharkarakas/bloglist-backend/internal/api/validate"
)

// Kind classifies a service failure; the HTTP layer maps kinds to statuses.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindInvalidCredentials
	KindForbidden
	KindNotFound
)

type Error struct {
	Kind   Kind
	Msg    string
	Fields validate.Errs
}

func (e *Error) Error() string { return e.Msg }

var (
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Msg: "token missing or invalid"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Msg: "invalid username or password"}
	ErrForbidden          = &Error{Kind: KindForbidden, Msg: "only the creator can delete a blog"}
	ErrUsernameTaken      = &Error{Kind: KindConflict, Msg: "expected username to be unique"}
	ErrBlogNotFound       = &Error{Kind: KindNotFound, Msg: "blog not found"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Msg: "user not found"}
)

func invalid(f *validate.ErrField) *Error {
	return &Error{Kind: KindValidation, Msg: f.Msg, Fields: validate.Errs{*f}}
}

// KindOf returns KindInternal for errors that are not *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
