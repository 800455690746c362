package contacts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Record is one contact: a fixed name, an ordered phone list and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record owning its own copy of phones.
func NewRecord(name Name, phones ...Phone) *Record {
	r := &Record{
		name:   name,
		phones: make([]Phone, 0, len(phones)),
	}
	r.phones = append(r.phones, phones...)
	return r
}

// Name returns the record key.
func (r *Record) Name() string {
	return r.name.Value()
}

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// PhoneValues returns the phone numbers as strings, in order.
func (r *Record) PhoneValues() []string {
	out := make([]string, 0, len(r.phones))
	for _, p := range r.phones {
		out = append(out, p.Value())
	}
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// SetBirthday sets or replaces the birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

// AddPhone appends p. Duplicates are allowed.
func (r *Record) AddPhone(p Phone) {
	r.phones = append(r.phones, p)
}

// SetPhones replaces the whole phone list.
func (r *Record) SetPhones(phones ...Phone) {
	r.phones = append(make([]Phone, 0, len(phones)), phones...)
}

// RemovePhone removes the first phone equal to p.
func (r *Record) RemovePhone(p Phone) error {
	for i, existing := range r.phones {
		if existing.Value() == p.Value() {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q", ErrNotFound, config.ErrPhoneNotFound, p.Value())
}

// ReplacePhone substitutes every occurrence of oldPhone's value with newPhone's value
// inside each phone of the list, so partial matches are rewritten too.
// Every rewritten number is validated again; if one is invalid nothing changes.
func (r *Record) ReplacePhone(oldPhone, newPhone Phone) error {
	replaced := make([]Phone, 0, len(r.phones))
	for _, p := range r.phones {
		np, err := NewPhone(strings.ReplaceAll(p.Value(), oldPhone.Value(), newPhone.Value()))
		if err != nil {
			return err
		}
		replaced = append(replaced, np)
	}
	r.phones = replaced
	return nil
}

// DaysToBirthday returns the days from today until the next occurrence of the
// birthday. Today itself counts as this year's occurrence. The boolean is false
// when no birthday is set.
func (r *Record) DaysToBirthday(today time.Time) (int, bool) {
	if r.birthday == nil {
		return 0, false
	}
	return daysUntil(today, r.birthday.Value()), true
}

// daysUntil counts calendar days in UTC so DST shifts never produce fractional days.
// Feb 29 falls on March 1 in non-leap years (time.Date normalisation).
func daysUntil(today, birthDate time.Time) int {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	next := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(start) {
		next = time.Date(y+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(start).Hours()) / config.HoursPerDay
}

// Describe renders "<name>: [<phones>] <birthday> <days>" relative to today.
func (r *Record) Describe(today time.Time) string {
	bday, days := "", config.DaysUnknown
	if r.birthday != nil {
		bday = r.birthday.String()
		n, _ := r.DaysToBirthday(today)
		days = strconv.Itoa(n)
	}
	line := fmt.Sprintf(config.FormatRecord, r.Name(), FormatPhones(r.phones), bday, days)
	return strings.TrimRight(line, " ")
}

func (r *Record) String() string {
	return r.Describe(time.Now())
}

// FormatPhones renders a phone list as "[a, b]".
func FormatPhones(phones []Phone) string {
	values := make([]string, 0, len(phones))
	for _, p := range phones {
		values = append(values, p.Value())
	}
	return config.PhoneListOpen + strings.Join(values, config.PhoneListSep) + config.PhoneListClose
}
