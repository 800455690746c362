package assistant

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// Session is the state one command loop works on: the book and the run flag.
type Session struct {
	Book    *contacts.Book
	running bool
}

// NewSession starts a running session over book.
func NewSession(book *contacts.Book) *Session {
	return &Session{Book: book, running: true}
}

// Running reports whether the loop should read another command.
func (s *Session) Running() bool {
	return s.running
}

// Stop ends the session after the current command.
func (s *Session) Stop() {
	s.running = false
}

// Seed adds the two demo contacts.
func Seed(book *contacts.Book) error {
	seeds := []struct{ name, phone, birthday string }{
		{config.SeedFirstName, config.SeedFirstPhone, config.SeedFirstBirthday},
		{config.SeedSecondName, config.SeedSecondPhone, config.SeedSecondBirthday},
	}

	for _, s := range seeds {
		name, err := contacts.NewName(s.name)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrSeed, err)
		}
		phone, err := contacts.NewPhone(s.phone)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrSeed, err)
		}
		bday, err := contacts.NewBirthday(s.birthday)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrSeed, err)
		}

		rec := contacts.NewRecord(name, phone)
		rec.SetBirthday(bday)
		book.AddRecord(rec)
	}

	slog.Debug(config.MsgSeeded,
		config.LogKeyComponent, config.CompLoop,
		config.LogKeyRecords, book.Len())
	return nil
}
