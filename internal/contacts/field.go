package contacts

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(config.PatternPhoneLong),
	regexp.MustCompile(config.PatternPhoneShort),
}

// Parser validates raw user input and converts it to the stored representation.
type Parser[T any] func(raw string) (T, error)

// Field holds a single value that always passed its Parser.
// The zero Field has no parser and rejects every assignment.
type Field[T any] struct {
	value T
	parse Parser[T]
}

func newField[T any](raw string, parse Parser[T]) (Field[T], error) {
	f := Field[T]{parse: parse}
	if err := f.Set(raw); err != nil {
		return Field[T]{}, err
	}
	return f, nil
}

// Set validates raw and replaces the stored value.
// On failure the previous value is kept.
func (f *Field[T]) Set(raw string) error {
	if f.parse == nil {
		return fmt.Errorf("%w: field has no validator", ErrInvalidFormat)
	}
	v, err := f.parse(raw)
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

// Value returns the stored value.
func (f Field[T]) Value() T {
	return f.value
}

// Name is a contact name. Any string is accepted.
type Name struct {
	Field[string]
}

// NewName wraps raw as a Name.
func NewName(raw string) (Name, error) {
	f, err := newField(raw, parseName)
	return Name{f}, err
}

func (n Name) String() string {
	return n.Value()
}

// Phone is a phone number shaped +CCC(NN)NNN-NN-NN or +CCC(NN)NNN-N-NNN.
type Phone struct {
	Field[string]
}

// NewPhone validates raw against the accepted phone shapes.
func NewPhone(raw string) (Phone, error) {
	f, err := newField(raw, parsePhone)
	return Phone{f}, err
}

func (p Phone) String() string {
	return p.Value()
}

// Birthday is a calendar date entered as day/month/year.
type Birthday struct {
	Field[time.Time]
}

// NewBirthday parses raw as day/month/year.
// Impossible dates such as 30/02/2000 are rejected by the parser.
func NewBirthday(raw string) (Birthday, error) {
	f, err := newField(raw, parseBirthday)
	return Birthday{f}, err
}

// BirthdayFromDate builds a Birthday from an already parsed date, e.g. a vCard BDAY.
func BirthdayFromDate(t time.Time) Birthday {
	y, m, d := t.Date()
	return Birthday{Field[time.Time]{
		value: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		parse: parseBirthday,
	}}
}

func (b Birthday) String() string {
	return b.Value().Format(config.DateFormatDisplay)
}

func parseName(raw string) (string, error) {
	return raw, nil
}

func parsePhone(raw string) (string, error) {
	for _, re := range phonePatterns {
		if re.MatchString(raw) {
			return raw, nil
		}
	}
	return "", fmt.Errorf("%w: %s: %q", ErrInvalidFormat, config.ErrInvalidPhone, raw)
}

func parseBirthday(raw string) (time.Time, error) {
	t, err := time.Parse(config.DateFormatInput, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, config.ErrInvalidBirthday, err)
	}
	return t, nil
}
