package contacts

import "strings"

// Book maps contact names to records and keeps insertion order.
// It is not safe for concurrent use.
type Book struct {
	clock   Clock
	records map[string]*Record
	order   []string
	cursor  *Cursor
}

// NewBook creates an empty book. A nil clock means the real clock.
func NewBook(clock Clock) *Book {
	if clock == nil {
		clock = RealClock{}
	}
	return &Book{
		clock:   clock,
		records: make(map[string]*Record),
	}
}

// AddRecord inserts r, or overwrites the record with the same name in place.
func (b *Book) AddRecord(r *Record) {
	name := r.Name()
	if _, ok := b.records[name]; !ok {
		b.order = append(b.order, name)
	}
	b.records[name] = r
}

// Get looks a record up by name.
func (b *Book) Get(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.order)
}

// Records returns the records in insertion order.
func (b *Book) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Clock returns the clock used for birthday arithmetic.
func (b *Book) Clock() Clock {
	return b.clock
}

// Cursor returns the book's single shared cursor, creating it on first use.
func (b *Book) Cursor() *Cursor {
	if b.cursor == nil {
		b.cursor = &Cursor{book: b}
	}
	return b.cursor
}

// Describe renders every record on its own line, relative to the book clock.
func (b *Book) Describe() string {
	today := b.clock.Now()
	lines := make([]string, 0, len(b.order))
	for _, r := range b.Records() {
		lines = append(lines, r.Describe(today))
	}
	return strings.Join(lines, "\n")
}

func (b *Book) String() string {
	return b.Describe()
}

// Cursor walks the book one record per call. After the last record it
// rewinds and reports ErrEndOfSequence, so the next call starts a new pass.
// Each call reads the book's current order, records added mid-pass are visited.
type Cursor struct {
	book  *Book
	index int
}

// Next returns the next record or ErrEndOfSequence once the pass is complete.
func (c *Cursor) Next() (*Record, error) {
	if c.index >= c.book.Len() {
		c.index = 0
		return nil, ErrEndOfSequence
	}
	r := c.book.records[c.book.order[c.index]]
	c.index++
	return r, nil
}
