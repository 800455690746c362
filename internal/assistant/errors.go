package assistant

import (
	"errors"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

var (
	// ErrMissingArgument is returned when a command gets fewer arguments than it needs.
	ErrMissingArgument = errors.New(config.ErrMissingArgument)

	// ErrUnknownCommand is returned for keywords not in the command table.
	ErrUnknownCommand = errors.New(config.ErrUnknownCommand)

	// ErrNoSuchName is returned when a command must modify a contact that does not exist.
	ErrNoSuchName = errors.New(config.ErrNoSuchName)
)

// failureKind classifies a command error for reply translation.
type failureKind int

const (
	kindInternal failureKind = iota
	kindMissingArgument
	kindUnknownCommand
	kindNotFound
	kindNoSuchName
	kindInvalidFormat
	kindEndOfSequence
)

var kindNames = map[failureKind]string{
	kindInternal:        "internal",
	kindMissingArgument: "missing_argument",
	kindUnknownCommand:  "unknown_command",
	kindNotFound:        "not_found",
	kindNoSuchName:      "no_such_name",
	kindInvalidFormat:   "invalid_format",
	kindEndOfSequence:   "end_of_sequence",
}

func (k failureKind) String() string {
	return kindNames[k]
}

func classify(err error) failureKind {
	switch {
	case errors.Is(err, ErrMissingArgument):
		return kindMissingArgument
	case errors.Is(err, ErrUnknownCommand):
		return kindUnknownCommand
	case errors.Is(err, ErrNoSuchName):
		return kindNoSuchName
	case errors.Is(err, contacts.ErrNotFound):
		return kindNotFound
	case errors.Is(err, contacts.ErrInvalidFormat):
		return kindInvalidFormat
	case errors.Is(err, contacts.ErrEndOfSequence):
		return kindEndOfSequence
	default:
		return kindInternal
	}
}
