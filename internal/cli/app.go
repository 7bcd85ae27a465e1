package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	history "github.com/Mayur-Pagote/README-Design-Kit-sub001"
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/internal/config"
	"github.com/Mayur-Pagote/README-Design-Kit-sub001/storage"
)

// emptyDocument is the present state of a key nothing has been written to.
var emptyDocument = json.RawMessage(`{"elements":[]}`)

// app is what a command needs once configuration is resolved.
type app struct {
	cfg    *config.Config
	store  storage.Store
	logger *slog.Logger
	m      *history.Manager[json.RawMessage]
}

// loadConfig loads the configuration files and applies flag overrides.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("key") {
		cfg.History.Key = o.key
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend = o.backend
	}
	if flags.Changed("path") {
		cfg.Storage.Path = config.ExpandHome(o.path)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOptions) open(cmd *cobra.Command) (*app, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}

	m := history.New(cfg.History.Key, emptyDocument,
		history.WithStore(store),
		history.WithMaxHistory(cfg.History.MaxHistory),
		history.WithLogger(logger),
	)

	return &app{cfg: cfg, store: store, logger: logger, m: m}, nil
}

// run wraps a command body with opening and closing the app.
func (o *rootOptions) run(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := o.open(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.store.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args, a)
	}
}

func newLogger(w io.Writer, lc config.LogConfig) (*slog.Logger, error) {
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
