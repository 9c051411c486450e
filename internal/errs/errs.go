// Package errs carries the error taxonomy shared by the services and the
// HTTP layer. Errors are built with E and classified by Kind.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Op names the operation that failed, e.g. "teamStore.Insert".
type Op string

// Kind classifies an error so callers can react without string matching.
type Kind uint8

const (
	Other Kind = iota
	InvalidInput
	NotFound
	IDExhausted
	Conflict
	Store
	CatalogRead
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NotFound:
		return "not found"
	case IDExhausted:
		return "id exhausted"
	case Conflict:
		return "conflict"
	case Store:
		return "store failure"
	case CatalogRead:
		return "catalog read failure"
	case Internal:
		return "internal error"
	}
	return "other error"
}

type Error struct {
	Op   Op
	Kind Kind
	Err  error
}

// E builds an *Error from its arguments. Accepted argument types are Op,
// Kind, error and string (wrapped with errors.New). Unknown types panic.
func E(args ...any) error {
	if len(args) == 0 {
		panic("call to errs.E with no arguments")
	}

	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case error:
			e.Err = a
		case string:
			e.Err = errors.New(a)
		default:
			panic(fmt.Sprintf("errs.E: bad call with argument of type %T", arg))
		}
	}

	// Inherit the kind of a wrapped *Error when none was given.
	if e.Kind == Other {
		var inner *Error
		if errors.As(e.Err, &inner) {
			e.Kind = inner.Kind
		}
	}

	return e
}

func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(string(e.Op))
		b.WriteString(": ")
	}

	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(e.Kind.String())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindIs reports whether err, or any *Error it wraps, has the given kind.
func KindIs(kind Kind, err error) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Kind == kind {
			return true
		}
		if e.Kind != Other {
			return false
		}
		err = e.Err
	}
	return false
}

// KindOf returns the outermost kind found on err.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text that is safe to show to API clients.
func Message(err error) string {
	switch kind := KindOf(err); kind {
	case InvalidInput, NotFound:
		var e *Error
		if errors.As(err, &e) && e.Err != nil {
			return innermost(e).Error()
		}
		return kind.String()
	case IDExhausted:
		return "could not allocate a team id, try again"
	default:
		return "internal server error"
	}
}

func innermost(e *Error) error {
	for {
		var next *Error
		if !errors.As(e.Err, &next) {
			return e.Err
		}
		if next.Err == nil {
			return next
		}
		e = next
	}
}
