package assistant_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/assistant"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
	"github.com/tartampluch/go-contacts/internal/messages"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// MockClock pins "today" to 2025-06-01.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var testClock = MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}

// newFixture returns a router and a session over the seeded book.
func newFixture(t *testing.T) (*assistant.Router, *assistant.Session) {
	t.Helper()
	book := contacts.NewBook(testClock)
	require.NoError(t, assistant.Seed(book))

	router := assistant.NewRouter(messages.New(config.DefaultLanguage), nil, &engine.Generator{Clock: testClock})
	return router, assistant.NewSession(book)
}

func dispatch(r *assistant.Router, s *assistant.Session, line string) string {
	return r.Dispatch(context.Background(), s, line)
}

func phonesOf(t *testing.T, s *assistant.Session, name string) []string {
	t.Helper()
	rec, ok := s.Book.Get(name)
	require.True(t, ok, "record %q should exist", name)
	return rec.PhoneValues()
}

// -----------------------------------------------------------------------------
// Splitting
// -----------------------------------------------------------------------------

func TestSplit(t *testing.T) {
	tests := []struct {
		line     string
		wantCmd  string
		wantArgs []string
	}{
		{"add Polina +380(67)111-11-11", "add", []string{"Polina", "+380(67)111-11-11"}},
		{"ADD Polina x", "add", []string{"Polina", "x"}},
		{"  show all  ", "show all", nil},
		{"Show All", "show all", nil},
		{"good bye", "good bye", nil},
		{"show", "show", []string{}},
		{"show all extra", "show", []string{"all", "extra"}},
		{"", "", nil},
		{"   ", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, args := assistant.Split(tt.line)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, len(tt.wantArgs), len(args))
			for i := range tt.wantArgs {
				assert.Equal(t, tt.wantArgs[i], args[i])
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

func TestRouter_Hello(t *testing.T) {
	r, s := newFixture(t)
	assert.Equal(t, "How can I help you?", dispatch(r, s, "hello"))
	assert.Equal(t, "How can I help you?", dispatch(r, s, "HeLLo"))
}

func TestRouter_Help(t *testing.T) {
	r, s := newFixture(t)
	assert.Contains(t, dispatch(r, s, "help"), "add <name> <phone>")
}

func TestRouter_Add(t *testing.T) {
	r, s := newFixture(t)

	assert.Equal(t, "DONE!", dispatch(r, s, "add Ivan +380(50)123-45-67"))
	assert.Equal(t, []string{"+380(50)123-45-67"}, phonesOf(t, s, "Ivan"))
	assert.Equal(t, 3, s.Book.Len())

	// Existing name: phone is appended, record is not replaced.
	assert.Equal(t, "DONE!", dispatch(r, s, "add Polina +380(67)111-11-11"))
	assert.Equal(t, []string{"+380(67)777-77-77", "+380(67)111-11-11"}, phonesOf(t, s, "Polina"))
	rec, _ := s.Book.Get("Polina")
	_, hasBday := rec.Birthday()
	assert.True(t, hasBday, "append keeps the birthday")

	assert.Equal(t, "DONE!", dispatch(r, s, "add Ivan +380(50)123-4-567 extra"))
	assert.Equal(t, []string{"+380(50)123-45-67", "+380(50)123-4-567"}, phonesOf(t, s, "Ivan"))
}

func TestRouter_AddErrors(t *testing.T) {
	r, s := newFixture(t)

	assert.Equal(t, "Give me name and phone please", dispatch(r, s, "add"))
	assert.Equal(t, "Give me name and phone please", dispatch(r, s, "add Ivan"))
	assert.Equal(t, "Invalid format", dispatch(r, s, "add Ivan 12345"))

	_, ok := s.Book.Get("Ivan")
	assert.False(t, ok, "a rejected phone must not create the record")
}

func TestRouter_Change(t *testing.T) {
	r, s := newFixture(t)
	dispatch(r, s, "add Polina +380(67)111-11-11")

	assert.Equal(t, "DONE!", dispatch(r, s, "change Polina +380(67)000-00-00"))
	assert.Equal(t, []string{"+380(67)000-00-00"}, phonesOf(t, s, "Polina"))
}

func TestRouter_ChangeUnknownName(t *testing.T) {
	r, s := newFixture(t)
	before := s.Book.Describe()

	assert.Equal(t, "There is no such name", dispatch(r, s, "change Nobody +380(67)000-00-00"))
	assert.Equal(t, before, s.Book.Describe(), "book must be unchanged")
	assert.Equal(t, 2, s.Book.Len())
}

func TestRouter_ChangeErrors(t *testing.T) {
	r, s := newFixture(t)
	assert.Equal(t, "Give me name and phone please", dispatch(r, s, "change Polina"))
	assert.Equal(t, "Invalid format", dispatch(r, s, "change Polina 0671234567"))
	assert.Equal(t, []string{"+380(67)777-77-77"}, phonesOf(t, s, "Polina"))
}

func TestRouter_Phone(t *testing.T) {
	r, s := newFixture(t)

	assert.Equal(t, "[+380(67)777-77-77]", dispatch(r, s, "phone Polina"))
	assert.Equal(t, "No such phone", dispatch(r, s, "phone Nobody"))
	assert.Equal(t, "Give me name for finding phone", dispatch(r, s, "phone"))
}

func TestRouter_Remove(t *testing.T) {
	r, s := newFixture(t)

	assert.Equal(t, "No such phone", dispatch(r, s, "remove Polina +380(67)111-11-11"))
	assert.Equal(t, "DONE!", dispatch(r, s, "remove Polina +380(67)777-77-77"))
	assert.Empty(t, phonesOf(t, s, "Polina"))

	assert.Equal(t, "There is no such name", dispatch(r, s, "remove Nobody +380(67)777-77-77"))
	assert.Equal(t, "Give me name and phone please", dispatch(r, s, "remove Polina"))
	assert.Equal(t, "Invalid format", dispatch(r, s, "remove Polina 777"))
}

func TestRouter_Replace(t *testing.T) {
	r, s := newFixture(t)

	assert.Equal(t, "DONE!", dispatch(r, s, "replace Polina +380(67)777-77-77 +380(67)888-88-88"))
	assert.Equal(t, []string{"+380(67)888-88-88"}, phonesOf(t, s, "Polina"))

	assert.Equal(t, "There is no such name", dispatch(r, s, "replace Nobody +380(67)777-77-77 +380(67)888-88-88"))
	assert.Equal(t, "Give me name and phone please", dispatch(r, s, "replace Polina +380(67)888-88-88"))
	assert.Equal(t, "Invalid format", dispatch(r, s, "replace Polina +380(67)888-88-88 888"))
}

func TestRouter_Birthday(t *testing.T) {
	r, s := newFixture(t)

	assert.Equal(t, "DONE!", dispatch(r, s, "birthday Polina 1/1/2000"))
	rec, _ := s.Book.Get("Polina")
	bday, ok := rec.Birthday()
	require.True(t, ok)
	assert.Equal(t, "2000-01-01", bday.String())

	assert.Equal(t, "Invalid format", dispatch(r, s, "birthday Polina 30/02/2000"))
	bday, _ = rec.Birthday()
	assert.Equal(t, "2000-01-01", bday.String(), "rejected date keeps the old birthday")
	assert.Equal(t, "Give me name and birthday please", dispatch(r, s, "birthday Polina"))
	assert.Equal(t, "There is no such name", dispatch(r, s, "birthday Nobody 1/1/2000"))
}

func TestRouter_Days(t *testing.T) {
	r, s := newFixture(t)

	assert.Equal(t, "345 days until Polina's birthday", dispatch(r, s, "days Polina"))
	assert.Equal(t, "184 days until name's birthday", dispatch(r, s, "days name"))

	dispatch(r, s, "add Ivan +380(50)123-45-67")
	assert.Equal(t, "No birthday set for Ivan", dispatch(r, s, "days Ivan"))
	assert.Equal(t, "There is no such name", dispatch(r, s, "days Nobody"))
	assert.Equal(t, "Give me name for finding phone", dispatch(r, s, "days"))
}

func TestRouter_ShowAll(t *testing.T) {
	r, s := newFixture(t)

	want := "name: [+380(67)444-47-74] 1980-12-02 184\n" +
		"Polina: [+380(67)777-77-77] 1996-05-12 345"
	assert.Equal(t, want, dispatch(r, s, "show all"))
	assert.Equal(t, want, dispatch(r, s, "SHOW ALL"))

	empty := assistant.NewSession(contacts.NewBook(testClock))
	assert.Equal(t, "The contact book is empty", dispatch(r, empty, "show all"))
}

// TestRouter_ShowCycle checks that N records take N+1 calls per pass,
// the extra call reporting the end, and that the next call restarts.
func TestRouter_ShowCycle(t *testing.T) {
	r, s := newFixture(t)

	first := "name: [+380(67)444-47-74] 1980-12-02 184"
	second := "Polina: [+380(67)777-77-77] 1996-05-12 345"
	end := "No more contacts, the next show starts over"

	for pass := 0; pass < 2; pass++ {
		assert.Equal(t, first, dispatch(r, s, "show"))
		assert.Equal(t, second, dispatch(r, s, "show"))
		assert.Equal(t, end, dispatch(r, s, "show"))
	}

	empty := assistant.NewSession(contacts.NewBook(testClock))
	assert.Equal(t, end, dispatch(r, empty, "show"))
}

func TestRouter_Farewell(t *testing.T) {
	for _, line := range []string{"close", "exit", "good bye", "  Good Bye ", ".", "EXIT"} {
		t.Run(line, func(t *testing.T) {
			r, s := newFixture(t)
			assert.Equal(t, "Good bye!", dispatch(r, s, line))
			assert.False(t, s.Running())
		})
	}
}

func TestRouter_UnknownCommand(t *testing.T) {
	r, s := newFixture(t)

	for _, line := range []string{"fly", "", "   ", "good", "bye"} {
		assert.Equal(t, "No such command", dispatch(r, s, line), "line %q", line)
	}
	assert.True(t, s.Running())
}

func TestRouter_Export(t *testing.T) {
	r, s := newFixture(t)

	out := dispatch(r, s, "export")
	assert.Contains(t, out, "BEGIN:VCARD")
	assert.Contains(t, out, "FN:Polina")
	assert.Contains(t, out, "+380(67)444-47-74")

	empty := assistant.NewSession(contacts.NewBook(testClock))
	assert.Equal(t, "The contact book is empty", dispatch(r, empty, "export"))
}

func TestRouter_Calendar(t *testing.T) {
	r, s := newFixture(t)

	out := dispatch(r, s, "calendar")
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "Polina")

	empty := assistant.NewSession(contacts.NewBook(testClock))
	assert.Contains(t, dispatch(r, empty, "calendar"), "BEGIN:VCALENDAR")
}

func TestRouter_Import(t *testing.T) {
	r, s := newFixture(t)

	path := filepath.Join(t.TempDir(), "contacts.vcf")
	vcf := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Ivan\r\nTEL:+380(50)123-45-67\r\nEND:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Polina\r\nTEL:+380(67)111-11-11\r\nEND:VCARD\r\n"
	require.NoError(t, os.WriteFile(path, []byte(vcf), 0o600))

	assert.Equal(t, "Imported 2 contacts", dispatch(r, s, "import "+path))
	assert.Equal(t, []string{"+380(50)123-45-67"}, phonesOf(t, s, "Ivan"))
	assert.Equal(t, []string{"+380(67)777-77-77", "+380(67)111-11-11"}, phonesOf(t, s, "Polina"))
}

func TestRouter_ImportErrors(t *testing.T) {
	r, s := newFixture(t)

	assert.Equal(t, "Give me a file or URL to import", dispatch(r, s, "import"))
	assert.Equal(t, "Something went wrong, see the log",
		dispatch(r, s, "import "+filepath.Join(t.TempDir(), "missing.vcf")))
	assert.Equal(t, "Something went wrong, see the log",
		dispatch(r, s, "import https://example.com/contacts.vcf"), "no fetcher configured")
	assert.True(t, s.Running())
}
