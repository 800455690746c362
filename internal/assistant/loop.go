package assistant

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/engine"
)

// Publisher receives the rendered birthday feed after every command.
type Publisher interface {
	Update(data []byte)
}

// Loop reads one command per line, dispatches it and prints the reply.
type Loop struct {
	Router  *Router
	Session *Session
	Prompt  string

	// Calendar and Publisher are optional; both are needed to publish the feed.
	Calendar  *engine.Generator
	Publisher Publisher
}

// Run drives the session until a close command, EOF on in, or ctx cancellation.
// Lines of any length are read whole.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	l.publish(ctx)

	for l.Session.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(out, l.Prompt); err != nil {
			return err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: %w", config.ErrReadInput, err)
		}
		if err != nil && line == "" {
			break
		}

		reply := l.Router.Dispatch(ctx, l.Session, strings.TrimRight(line, "\r\n"))
		if _, err := fmt.Fprintln(out, reply); err != nil {
			return err
		}
		l.publish(ctx)
	}

	slog.Debug(config.MsgLoopStop,
		config.LogKeyComponent, config.CompLoop,
		config.LogKeyRecords, l.Session.Book.Len())
	return nil
}

// publish regenerates the feed; failures are logged and the loop carries on.
func (l *Loop) publish(ctx context.Context) {
	if l.Calendar == nil || l.Publisher == nil {
		return
	}

	data, _, err := l.Calendar.Generate(ctx, l.Session.Book)
	if err != nil {
		slog.Warn(config.ErrPublish,
			config.LogKeyComponent, config.CompLoop,
			config.LogKeyError, err)
		return
	}
	l.Publisher.Update(data)
}
