package assistant

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
	"github.com/tartampluch/go-contacts/internal/messages"
)

// handler runs one command. args holds at least the command's minArgs entries.
type handler func(ctx context.Context, s *Session, args []string) (string, error)

type command struct {
	minArgs int
	run     handler
}

// Router resolves a command line to its handler and turns every handler
// failure into a user-facing reply.
type Router struct {
	catalog   *messages.Catalog
	importer  *engine.Importer
	generator *engine.Generator
	commands  map[string]command
}

// defaultReplies answers failures of commands with no specific entry.
var defaultReplies = map[failureKind]string{
	kindInternal:        config.TKeyInternalError,
	kindMissingArgument: config.TKeyMissingArgument,
	kindUnknownCommand:  config.TKeyNoSuchCommand,
	kindNotFound:        config.TKeyNoSuchCommand,
	kindNoSuchName:      config.TKeyNoSuchName,
	kindInvalidFormat:   config.TKeyInvalidFormat,
	kindEndOfSequence:   config.TKeyEndOfContacts,
}

// commandReplies overrides defaultReplies per command.
var commandReplies = map[string]map[failureKind]string{
	config.CmdAdd:      {kindMissingArgument: config.TKeyNeedNameAndPhone},
	config.CmdChange:   {kindMissingArgument: config.TKeyNeedNameAndPhone},
	config.CmdRemove:   {kindMissingArgument: config.TKeyNeedNameAndPhone, kindNotFound: config.TKeyNoSuchPhone},
	config.CmdReplace:  {kindMissingArgument: config.TKeyNeedNameAndPhone, kindNotFound: config.TKeyNoSuchPhone},
	config.CmdPhone:    {kindMissingArgument: config.TKeyNeedName, kindNotFound: config.TKeyNoSuchPhone},
	config.CmdDays:     {kindMissingArgument: config.TKeyNeedName},
	config.CmdBirthday: {kindMissingArgument: config.TKeyNeedNameAndBday},
	config.CmdImport:   {kindMissingArgument: config.TKeyNeedSource},
}

// NewRouter builds the command table. A nil importer only reads local files;
// a nil generator renders the feed with default titles and no alarms.
func NewRouter(catalog *messages.Catalog, importer *engine.Importer, generator *engine.Generator) *Router {
	if importer == nil {
		importer = &engine.Importer{}
	}
	if generator == nil {
		generator = &engine.Generator{}
	}

	r := &Router{
		catalog:   catalog,
		importer:  importer,
		generator: generator,
	}

	farewell := command{run: r.farewell}
	r.commands = map[string]command{
		config.CmdHello:    {run: r.reply(config.TKeyGreeting)},
		config.CmdHelp:     {run: r.reply(config.TKeyHelp)},
		config.CmdAdd:      {minArgs: 2, run: r.add},
		config.CmdChange:   {minArgs: 2, run: r.change},
		config.CmdPhone:    {minArgs: 1, run: r.phone},
		config.CmdRemove:   {minArgs: 2, run: r.remove},
		config.CmdReplace:  {minArgs: 3, run: r.replace},
		config.CmdBirthday: {minArgs: 2, run: r.birthday},
		config.CmdDays:     {minArgs: 1, run: r.days},
		config.CmdShowAll:  {run: r.showAll},
		config.CmdShow:     {run: r.show},
		config.CmdExport:   {run: r.export},
		config.CmdCalendar: {run: r.calendar},
		config.CmdImport:   {minArgs: 1, run: r.importCards},
		config.CmdClose:    farewell,
		config.CmdExit:     farewell,
		config.CmdGoodBye:  farewell,
		config.CmdDot:      farewell,
	}
	return r
}

// Split separates a raw line into a lower-cased command keyword and its arguments.
// A line equal to a multi-word command (ignoring case and outer spaces) is that command.
func Split(line string) (string, []string) {
	normalized := strings.ToLower(strings.TrimSpace(line))
	for _, phrase := range config.PhraseCommands {
		if normalized == phrase {
			return phrase, nil
		}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Dispatch runs one line against the session and always returns a reply.
func (r *Router) Dispatch(ctx context.Context, s *Session, line string) string {
	name, args := Split(line)

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompRouter,
		config.LogKeyCommand, name,
		config.LogKeyArgCount, len(args))

	cmd, ok := r.commands[name]
	if !ok {
		return r.translate(name, fmt.Errorf("%w: %q", ErrUnknownCommand, name))
	}
	if len(args) < cmd.minArgs {
		return r.translate(name, ErrMissingArgument)
	}

	reply, err := cmd.run(ctx, s, args)
	if err != nil {
		return r.translate(name, err)
	}
	return reply
}

// translate maps err to the reply configured for the command, falling back to the defaults.
func (r *Router) translate(name string, err error) string {
	kind := classify(err)
	key, ok := commandReplies[name][kind]
	if !ok {
		key = defaultReplies[kind]
	}

	if kind == kindInternal {
		slog.Error(config.MsgUnknownFailure,
			config.LogKeyComponent, config.CompRouter,
			config.LogKeyCommand, name,
			config.LogKeyError, err)
	} else {
		slog.Debug(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompRouter,
			config.LogKeyCommand, name,
			config.LogKeyKind, kind.String(),
			config.LogKeyError, err)
	}
	return r.catalog.Get(key)
}

// ----------------------------------------------------------------------------
// Handlers
// ----------------------------------------------------------------------------

func (r *Router) reply(key string) handler {
	return func(context.Context, *Session, []string) (string, error) {
		return r.catalog.Get(key), nil
	}
}

func (r *Router) farewell(_ context.Context, s *Session, _ []string) (string, error) {
	s.Stop()
	return r.catalog.Get(config.TKeyFarewell), nil
}

func (r *Router) add(_ context.Context, s *Session, args []string) (string, error) {
	phone, err := contacts.NewPhone(args[1])
	if err != nil {
		return "", err
	}

	if rec, ok := s.Book.Get(args[0]); ok {
		rec.AddPhone(phone)
		return r.catalog.Get(config.TKeyDone), nil
	}

	name, err := contacts.NewName(args[0])
	if err != nil {
		return "", err
	}
	s.Book.AddRecord(contacts.NewRecord(name, phone))
	return r.catalog.Get(config.TKeyDone), nil
}

func (r *Router) change(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := existing(s, args[0])
	if err != nil {
		return "", err
	}
	phone, err := contacts.NewPhone(args[1])
	if err != nil {
		return "", err
	}
	rec.SetPhones(phone)
	return r.catalog.Get(config.TKeyDone), nil
}

func (r *Router) phone(_ context.Context, s *Session, args []string) (string, error) {
	rec, ok := s.Book.Get(args[0])
	if !ok {
		return "", fmt.Errorf("%w: %q", contacts.ErrNotFound, args[0])
	}
	return contacts.FormatPhones(rec.Phones()), nil
}

func (r *Router) remove(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := existing(s, args[0])
	if err != nil {
		return "", err
	}
	phone, err := contacts.NewPhone(args[1])
	if err != nil {
		return "", err
	}
	if err := rec.RemovePhone(phone); err != nil {
		return "", err
	}
	return r.catalog.Get(config.TKeyDone), nil
}

func (r *Router) replace(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := existing(s, args[0])
	if err != nil {
		return "", err
	}
	oldPhone, err := contacts.NewPhone(args[1])
	if err != nil {
		return "", err
	}
	newPhone, err := contacts.NewPhone(args[2])
	if err != nil {
		return "", err
	}
	if err := rec.ReplacePhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return r.catalog.Get(config.TKeyDone), nil
}

func (r *Router) birthday(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := existing(s, args[0])
	if err != nil {
		return "", err
	}
	bday, err := contacts.NewBirthday(args[1])
	if err != nil {
		return "", err
	}
	rec.SetBirthday(bday)
	return r.catalog.Get(config.TKeyDone), nil
}

func (r *Router) days(_ context.Context, s *Session, args []string) (string, error) {
	rec, err := existing(s, args[0])
	if err != nil {
		return "", err
	}

	days, ok := rec.DaysToBirthday(s.Book.Clock().Now())
	if !ok {
		return r.catalog.Format(config.TKeyNoBirthday, map[string]any{
			config.TemplateKeyName: rec.Name(),
		}), nil
	}
	return r.catalog.Format(config.TKeyDaysToBirthday, map[string]any{
		config.TemplateKeyName: rec.Name(),
		config.TemplateKeyDays: days,
	}), nil
}

func (r *Router) showAll(_ context.Context, s *Session, _ []string) (string, error) {
	if s.Book.Len() == 0 {
		return r.catalog.Get(config.TKeyEmptyBook), nil
	}
	return s.Book.Describe(), nil
}

func (r *Router) show(_ context.Context, s *Session, _ []string) (string, error) {
	rec, err := s.Book.Cursor().Next()
	if err != nil {
		return "", err
	}
	return rec.Describe(s.Book.Clock().Now()), nil
}

func (r *Router) export(_ context.Context, s *Session, _ []string) (string, error) {
	if s.Book.Len() == 0 {
		return r.catalog.Get(config.TKeyEmptyBook), nil
	}
	var buf bytes.Buffer
	if err := engine.Export(&buf, s.Book); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

func (r *Router) calendar(ctx context.Context, s *Session, _ []string) (string, error) {
	data, _, err := r.generator.Generate(ctx, s.Book)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (r *Router) importCards(ctx context.Context, s *Session, args []string) (string, error) {
	user := ""
	if len(args) > 1 {
		user = args[1]
	}
	n, err := r.importer.Import(ctx, s.Book, args[0], user)
	if err != nil {
		return "", err
	}
	return r.catalog.Format(config.TKeyImported, map[string]any{
		config.TemplateKeyCount: n,
	}), nil
}

// existing returns the record for name, or ErrNoSuchName.
func existing(s *Session, name string) (*contacts.Record, error) {
	rec, ok := s.Book.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchName, name)
	}
	return rec, nil
}
