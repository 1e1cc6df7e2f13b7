package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/k0kubun/pp"
	flag "github.com/spf13/pflag"
	"github.com/uptrace/bun"
	"go.uber.org/automaxprocs/maxprocs"

	sitecms "github.com/goliatone/go-sitecms"
	"github.com/goliatone/go-sitecms/commands"
	markdowncmd "github.com/goliatone/go-sitecms/internal/commands/markdown"
	"github.com/goliatone/go-sitecms/internal/di"
	sitehttp "github.com/goliatone/go-sitecms/internal/http"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args, os.Stdout, os.LookupEnv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, lookup func(string) (string, bool)) error {
	flags, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg, err := resolveConfig(flags, lookup)
	if err != nil {
		return err
	}
	if flags.printConfig {
		_, err := pp.Fprintln(stdout, cfg)
		return err
	}

	app, err := newApp(ctx, cfg, flags.drafts)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Serve(ctx)
}

// resolveConfig layers defaults, the config file, the environment and flags.
func resolveConfig(flags cliFlags, lookup func(string) (string, bool)) (sitecms.Config, error) {
	cfg := sitecms.DefaultConfig()
	if path := strings.TrimSpace(flags.config); path != "" {
		loaded, err := sitecms.LoadConfig(path)
		if err != nil {
			return sitecms.Config{}, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(lookup)

	if flags.addr != "" {
		cfg.HTTP.Addr = flags.addr
	}
	if flags.db != "" {
		cfg.Storage.DSN = flags.db
	}
	if flags.drafts != "" {
		cfg.Markdown.DraftsDir = flags.drafts
		cfg.Features.Markdown = true
	}
	if flags.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return sitecms.Config{}, err
	}
	return cfg, nil
}

type app struct {
	cfg           sitecms.Config
	db            *bun.DB
	module        *sitecms.Module
	commands      *commands.RegistrationResult
	logger        interfaces.Logger
	subscriptions []commands.CommandSubscription
}

func newApp(ctx context.Context, cfg sitecms.Config, drafts string) (*app, error) {
	db, err := sitecms.OpenDatabase(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if err := sitecms.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	module, err := sitecms.New(cfg, di.WithBunDB(db))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		db:     db,
		module: module,
		logger: logging.ModuleLogger(module.LoggerProvider(), logging.RootModule),
	}

	result, err := commands.RegisterContainerCommands(module.Container(), commands.RegistrationOptions{
		Dispatcher: commands.NewDispatcher(),
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("register commands: %w", err)
	}
	a.commands = result
	a.subscriptions = result.Subscriptions

	if dir := strings.TrimSpace(drafts); dir != "" {
		if err := a.importDrafts(ctx, dir); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *app) importDrafts(ctx context.Context, dir string) error {
	if a.commands == nil || a.commands.Markdown == nil {
		return fmt.Errorf("markdown import unavailable; enable features.markdown")
	}
	started := time.Now()
	if err := dispatcher.Dispatch(ctx, markdowncmd.ImportDraftsCommand{Directory: dir}); err != nil {
		return fmt.Errorf("import drafts: %w", err)
	}
	a.logger.Info("server.drafts.imported", "directory", dir, "took", time.Since(started).String())
	return nil
}

func (a *app) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	api := sitehttp.NewContainerAPI(a.module.Container())
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

func (a *app) Serve(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server.listening", "addr", server.Addr, "ai", a.module.Generator() != nil, "automation", a.module.Automation() != nil)
		errCh <- server.ListenAndServe()
	}()

	started := time.Now()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("server.stopping", "uptime", humanize.RelTime(started, time.Now(), "", ""))
	return server.Shutdown(shutdownCtx)
}

func (a *app) Close() {
	for _, sub := range a.subscriptions {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	a.subscriptions = nil
	if a.db != nil {
		_ = a.db.Close()
	}
}
