package store

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("bill not found")
	ErrNoFile   = errors.New("no file in create request")
)

type Class int

const (
	ClassUnknown Class = iota
	ClassClient
	ClassServer
)

func (c Class) String() string {
	switch c {
	case ClassClient:
		return "client"
	case ClassServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a store failure carrying the status the backend reported.
type Error struct {
	Status int
	Err    error
}

func NewError(status int, err error) *Error {
	return &Error{Status: status, Err: err}
}

// Error returns the message shown to users, e.g. "Erreur 404".
func (e *Error) Error() string {
	return fmt.Sprintf("Erreur %d", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Class() Class {
	switch {
	case e.Status >= 400 && e.Status < 500:
		return ClassClient
	case e.Status >= 500:
		return ClassServer
	default:
		return ClassUnknown
	}
}

// StatusOf returns the HTTP status attached to err, or 500 when there is none.
func StatusOf(err error) int {
	var se *Error
	if errors.As(err, &se) && se.Status != 0 {
		return se.Status
	}
	return http.StatusInternalServerError
}

// ClassOf classifies err. Failures without a status count as server side,
// like StatusOf.
func ClassOf(err error) Class {
	var se *Error
	if errors.As(err, &se) {
		return se.Class()
	}
	return ClassServer
}

// Message returns the text shown to users for err: "Erreur <status>" for a
// store error, the error's own text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
