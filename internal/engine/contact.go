package engine

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

const (
	telURIPrefix = "tel:"
	valueURI     = "uri"
	vcardV4      = "4.0"
)

// cardEntry is a vCard reduced to what the contact book can store.
// It decouples the book from the vCard field model.
type cardEntry struct {
	Name     string
	Phones   []contacts.Phone
	Birthday *contacts.Birthday

	// SkippedPhones counts TEL values that do not match the accepted phone shapes.
	SkippedPhones int
}

// entryFromCard extracts name, phones and birthday from card.
// Name Strategy: FN (Formatted) > N (Structured). Cards with neither are rejected.
func entryFromCard(card vcard.Card) (cardEntry, bool) {
	var e cardEntry

	if fn := card.Get(vcard.FieldFormattedName); fn != nil && fn.Value != "" {
		e.Name = fn.Value
	} else if n := card.Get(vcard.FieldName); n != nil && n.Value != "" {
		e.Name = n.Value
	} else {
		return e, false
	}

	for _, raw := range card.Values(vcard.FieldTelephone) {
		p, err := contacts.NewPhone(strings.TrimPrefix(raw, telURIPrefix))
		if err != nil {
			e.SkippedPhones++
			continue
		}
		e.Phones = append(e.Phones, p)
	}

	if bday := card.Get(vcard.FieldBirthday); bday != nil && bday.Value != "" {
		t, yearKnown, err := parseDate(bday.Value)
		switch {
		case err != nil:
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, e.Name,
				config.LogKeyValue, bday.Value)
		case yearKnown:
			b := contacts.BirthdayFromDate(t)
			e.Birthday = &b
		}
	}
	return e, true
}

// cardFromRecord renders a record as a vCard 4.0 card.
func cardFromRecord(r *contacts.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, vcardV4)
	card.SetValue(vcard.FieldFormattedName, r.Name())
	// vCard 4.0 carries TEL as a tel: URI.
	for _, p := range r.PhoneValues() {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  telURIPrefix + p,
			Params: vcard.Params{vcard.ParamValue: {valueURI}},
		})
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Value().Format(config.DateFormatFullBasic))
	}
	return card
}

// parseDate handles various vCard date formats.
// The boolean reports whether the value carried a year.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown), safe leap year fallback.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
