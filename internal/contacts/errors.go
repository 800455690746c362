package contacts

import (
	"errors"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Sentinel errors. Callers classify with errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidFormat is returned when a phone or birthday fails validation.
	ErrInvalidFormat = errors.New(config.ErrInvalidFormat)

	// ErrNotFound is returned when a phone is not part of a record.
	ErrNotFound = errors.New(config.ErrNotFound)

	// ErrEndOfSequence is returned by Cursor.Next once a full pass has completed.
	ErrEndOfSequence = errors.New(config.ErrEndOfSequence)
)
