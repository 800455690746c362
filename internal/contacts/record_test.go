package contacts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// mustPhone is a test helper for phones known to be valid.
func mustPhone(t *testing.T, raw string) contacts.Phone {
	t.Helper()
	p, err := contacts.NewPhone(raw)
	require.NoError(t, err)
	return p
}

func mustRecord(t *testing.T, name string, phones ...string) *contacts.Record {
	t.Helper()
	n, err := contacts.NewName(name)
	require.NoError(t, err)
	r := contacts.NewRecord(n)
	for _, p := range phones {
		r.AddPhone(mustPhone(t, p))
	}
	return r
}

func TestRecord_AddPhone_KeepsOrderAndDuplicates(t *testing.T) {
	r := mustRecord(t, "name", "+380(67)444-47-74")

	r.AddPhone(mustPhone(t, "+380(99)111-22-33"))
	r.AddPhone(mustPhone(t, "+380(67)444-47-74"))

	assert.Equal(t, []string{"+380(67)444-47-74", "+380(99)111-22-33", "+380(67)444-47-74"}, r.PhoneValues())
}

func TestNewRecord_DoesNotShareSlices(t *testing.T) {
	n, err := contacts.NewName("a")
	require.NoError(t, err)

	phones := []contacts.Phone{mustPhone(t, "+380(67)444-47-74")}
	r1 := contacts.NewRecord(n, phones...)
	r2 := contacts.NewRecord(n, phones...)

	r1.AddPhone(mustPhone(t, "+380(99)111-22-33"))

	assert.Len(t, r1.PhoneValues(), 2)
	assert.Len(t, r2.PhoneValues(), 1, "Records must not share their phone list")

	got := r2.Phones()
	got[0] = mustPhone(t, "+380(50)000-00-00")
	assert.Equal(t, "+380(67)444-47-74", r2.PhoneValues()[0], "Phones() must return a copy")
}

func TestRecord_RemovePhone(t *testing.T) {
	r := mustRecord(t, "name", "+380(67)444-47-74", "+380(99)111-22-33", "+380(67)444-47-74")

	require.NoError(t, r.RemovePhone(mustPhone(t, "+380(67)444-47-74")))
	assert.Equal(t, []string{"+380(99)111-22-33", "+380(67)444-47-74"}, r.PhoneValues(), "Only the first match is removed")

	err := r.RemovePhone(mustPhone(t, "+380(50)000-00-00"))
	assert.ErrorIs(t, err, contacts.ErrNotFound)
	assert.Len(t, r.PhoneValues(), 2)
}

func TestRecord_ReplacePhone_SubstringSemantics(t *testing.T) {
	r := mustRecord(t, "name", "+380(67)444-47-74", "+380(99)111-22-33")

	require.NoError(t, r.ReplacePhone(mustPhone(t, "+380(67)444-47-74"), mustPhone(t, "+380(50)555-55-55")))
	assert.Equal(t, []string{"+380(50)555-55-55", "+380(99)111-22-33"}, r.PhoneValues())
}

func TestRecord_ReplacePhone_NoMatchIsNoop(t *testing.T) {
	r := mustRecord(t, "name", "+380(67)444-47-74")

	require.NoError(t, r.ReplacePhone(mustPhone(t, "+380(50)000-00-00"), mustPhone(t, "+380(50)555-55-55")))
	assert.Equal(t, []string{"+380(67)444-47-74"}, r.PhoneValues())
}

func TestRecord_SetPhones(t *testing.T) {
	r := mustRecord(t, "name", "+380(67)444-47-74", "+380(99)111-22-33")
	r.SetPhones(mustPhone(t, "+380(50)555-55-55"))
	assert.Equal(t, []string{"+380(50)555-55-55"}, r.PhoneValues())
}

func TestRecord_DaysToBirthday_Unset(t *testing.T) {
	r := mustRecord(t, "name")
	days, ok := r.DaysToBirthday(time.Now())
	assert.False(t, ok)
	assert.Zero(t, days)

	_, ok = r.Birthday()
	assert.False(t, ok)
}

func TestRecord_Describe(t *testing.T) {
	today := time.Date(2025, 11, 30, 9, 0, 0, 0, time.UTC)

	r := mustRecord(t, "name", "+380(67)444-47-74")
	assert.Equal(t, "name: [+380(67)444-47-74]", r.Describe(today), "No birthday renders no trailing fields")

	b, err := contacts.NewBirthday("2/12/1980")
	require.NoError(t, err)
	r.SetBirthday(b)
	r.AddPhone(mustPhone(t, "+380(99)111-22-33"))

	assert.Equal(t, "name: [+380(67)444-47-74, +380(99)111-22-33] 1980-12-02 2", r.Describe(today))

	got, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, b.Value(), got.Value())
}

func TestRecord_Describe_NoPhones(t *testing.T) {
	r := mustRecord(t, "lonely")
	assert.Equal(t, "lonely: []", r.Describe(time.Now()))
}
