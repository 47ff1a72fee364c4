package entities

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyPool means the guild has no drawable items.
	ErrEmptyPool = errors.New("the prize pool is empty")
	// ErrInsufficientFunds means a debit would take a token balance below zero.
	ErrInsufficientFunds = errors.New("insufficient tokens")
	// ErrPermissionDenied is returned by the platform when the bot cannot manage a role.
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	// ErrAmbiguousReference means a partial name matched more than one item.
	ErrAmbiguousReference = errors.New("ambiguous reference")
	// ErrNoTicket means the user lacks the ticket role required to spin.
	ErrNoTicket        = errors.New("missing ticket role")
	ErrInvalidArgument = errors.New("invalid argument")
)

// AmbiguousReferenceError carries the candidate names of an ambiguous lookup.
type AmbiguousReferenceError struct {
	Query   string
	Matches []string
}

func (e *AmbiguousReferenceError) Error() string {
	return "ambiguous reference " + e.Query + ": matches " + strings.Join(e.Matches, ", ")
}

func (e *AmbiguousReferenceError) Unwrap() error {
	return ErrAmbiguousReference
}
