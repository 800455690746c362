package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// Importer merges vCard streams from files or http(s) URLs into a book.
type Importer struct {
	Fetcher     VCardFetcher    // Used for http(s) sources.
	Credentials CredentialStore // Optional; resolves the password for user.
}

// Import reads every card from source and merges it into book.
// Existing contacts keep their phones and gain the imported ones; a birthday
// is only filled in when the contact has none. It returns the number of cards merged.
func (im *Importer) Import(ctx context.Context, book *contacts.Book, source, user string) (int, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeySource, source,
	)

	reader, err := im.acquireStream(ctx, source, user)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	decoder := vcard.NewDecoder(reader)
	stats := struct{ processed, imported int }{}

	for {
		if err := ctx.Err(); err != nil {
			return stats.imported, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken card leaves the decoder mid-stream; stop rather than loop on it.
			return stats.imported, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		stats.processed++

		entry, ok := entryFromCard(card)
		if !ok {
			log.Warn(config.MsgSkippedCard)
			continue
		}
		if entry.SkippedPhones > 0 {
			log.Debug(config.MsgSkippedPhone,
				config.LogKeyName, entry.Name,
				config.LogKeyTotal, entry.SkippedPhones)
		}

		if err := merge(book, entry); err != nil {
			return stats.imported, err
		}
		stats.imported++
	}

	log.Info(config.MsgImportDone,
		config.LogKeyTotal, stats.processed,
		config.LogKeyImported, stats.imported)
	return stats.imported, nil
}

// acquireStream opens source as a local file or downloads it.
func (im *Importer) acquireStream(ctx context.Context, source, user string) (io.ReadCloser, error) {
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if !isRemote(source) {
		return os.Open(source)
	}
	if im.Fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}

	if user == "" {
		user = remoteUser(source)
	}
	pass := ""
	if im.Credentials != nil && user != "" {
		p, err := im.Credentials.Password(user)
		if err != nil {
			return nil, err
		}
		pass = p
	}
	return im.Fetcher.Fetch(ctx, source, user, pass)
}

func merge(book *contacts.Book, e cardEntry) error {
	rec, ok := book.Get(e.Name)
	if !ok {
		name, err := contacts.NewName(e.Name)
		if err != nil {
			return err
		}
		rec = contacts.NewRecord(name)
		book.AddRecord(rec)
	}

	for _, p := range e.Phones {
		rec.AddPhone(p)
	}
	if _, has := rec.Birthday(); !has && e.Birthday != nil {
		rec.SetBirthday(*e.Birthday)
	}
	return nil
}

// Export writes every record of book to w as vCard 4.0, in book order.
func Export(w io.Writer, book *contacts.Book) error {
	enc := vcard.NewEncoder(w)
	for _, r := range book.Records() {
		if err := enc.Encode(cardFromRecord(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	slog.Debug(config.MsgExportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyRecords, book.Len())
	return nil
}
