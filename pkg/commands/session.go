package commands

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/calendar"
	"tableflip.dev/gardencal/pkg/climate"
	"tableflip.dev/gardencal/pkg/journal"
	"tableflip.dev/gardencal/pkg/logging"
	"tableflip.dev/gardencal/pkg/prefs"
	"tableflip.dev/gardencal/pkg/selection"
	"tableflip.dev/gardencal/pkg/store"
)

const gridTimeout = 30 * time.Second

// session is everything a command needs, opened from the config file.
type session struct {
	cfg      *store.FileConfig
	store    store.Store
	log      logging.Logger
	app      *app.Service
	tracker  *selection.Tracker
	prefs    *prefs.Preferences
	resolver *climate.Resolver
	journal  *journal.Journal
}

func openSession(ctx context.Context, opts ...app.Option) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if ephemeral {
		cfg.DriverName = store.DriverMemory
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, store: st, log: log}

	catalog, err := calendar.OpenCatalog(cfg.Catalog)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.app, err = app.New(ctx, st, catalog, append([]app.Option{app.WithLogger(log)}, opts...)...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.tracker = selection.NewTracker(st, log)
	s.prefs = prefs.New(st, log)
	s.journal = journal.New(st, journal.WithLogger(log))
	s.resolver = climate.NewResolver(st, cfg.Grid,
		climate.WithLocationSource(s.prefs),
		climate.WithLogger(log),
		climate.WithHTTPClient(&http.Client{Timeout: gridTimeout}),
	)
	return s, nil
}

func (s *session) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// withSession opens a session for cmd, runs fn and reports its error the
// way --json asks for.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	return withSessionContext(commandContext(cmd), cmd, fn)
}

func withSessionContext(ctx context.Context, cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cmd.SilenceUsage = true
	s, err := openSession(ctx)
	if err != nil {
		return output.HandleError(err)
	}
	defer s.Close()
	return output.HandleError(fn(ctx, s))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
