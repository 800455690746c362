package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/tartampluch/go-contacts/internal/assistant"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
	"github.com/tartampluch/go-contacts/internal/messages"
	"github.com/tartampluch/go-contacts/internal/server"
)

// options holds the parsed command line.
type options struct {
	debug     bool
	noSeed    bool
	servePort string
	reminder  string
	lang      string
}

// main delegates to runMain so deferred closes run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain returns config.ExitCodeSuccess on a normal end, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	var opts options
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	flag.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flag.BoolVar(&opts.noSeed, config.FlagNoSeed, false, config.FlagDescNoSeed)
	flag.StringVar(&opts.servePort, config.FlagServePort, config.DefaultServePort, config.FlagDescServePort)
	flag.StringVar(&opts.reminder, config.FlagReminder, "", config.FlagDescReminder)
	flag.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging
	// -------------------------------------------------------------------------
	// stdout belongs to the conversation, so logs go to a file and, in debug, stderr.
	if logCloser := setupLogging(opts.debug); logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the book, router and optional feed server, then drives the loop.
func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := contacts.RealClock{}
	book := contacts.NewBook(clock)
	if !opts.noSeed {
		if err := assistant.Seed(book); err != nil {
			return err
		}
	}

	catalog := messages.New(opts.lang)
	generator := &engine.Generator{
		Clock:           clock,
		ReminderTrigger: opts.reminder,
		FormatSummary:   catalog.EventSummary,
		Stamp:           clock.Now(),
	}
	importer := &engine.Importer{
		Fetcher:     engine.NewHTTPFetcher(),
		Credentials: engine.NewKeyringCredentials(),
	}

	loop := &assistant.Loop{
		Router:   assistant.NewRouter(catalog, importer, generator),
		Session:  assistant.NewSession(book),
		Prompt:   config.Prompt,
		Calendar: generator,
	}

	errs := make(chan error, 2)
	if opts.servePort != "" {
		srv := server.NewFeedServer(opts.servePort)
		loop.Publisher = srv

		srvDone := make(chan struct{})
		defer func() {
			cancel()
			<-srvDone
		}()
		go func() {
			defer close(srvDone)
			if err := srv.Start(ctx); err != nil {
				errs <- err
			}
		}()
	}

	// The loop blocks on stdin, so it runs aside and a signal can still end the process.
	go func() {
		errs <- loop.Run(ctx, in, out)
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		return nil
	case err := <-errs:
		return err
	}
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
