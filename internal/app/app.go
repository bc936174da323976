package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/comm"
	"github.com/five82/tablegrid/internal/config"
	"github.com/five82/tablegrid/internal/export"
	"github.com/five82/tablegrid/internal/kernel"
	"github.com/five82/tablegrid/internal/logging"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/prefs"
	"github.com/five82/tablegrid/internal/source"
	"github.com/five82/tablegrid/internal/ui"
)

// ErrNoSource is returned when no model file, database or kernel is given.
var ErrNoSource = errors.New("no model source: pass a file, --sqlite or --kernel")

// Options configure the tablegrid application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/tablegrid/prefs.toml

	// ModelPath is a .json, .yaml or .yml model record.
	ModelPath string
	// SQLitePath and Query build the model from a query result.
	SQLitePath string
	Query      string
	// KernelURL overrides the configured kernel bridge.
	KernelURL string

	LogLevel  string        // overrides the configured level
	PollEvery time.Duration // model file watch interval; zero uses the config

	// Dump writes the grid as a text table to Out instead of starting the
	// TUI.
	Dump bool
	Out  io.Writer
}

// session is one loaded model and the way it stays current.
type session struct {
	record model.Record
	title  string
	feed   func(ctx context.Context, send func(tea.Msg))
	bridge kernel.Bridge
}

// Run boots tablegrid until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.KernelURL != "" {
		cfg.Kernel.URL = opts.KernelURL
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	if opts.PollEvery > 0 {
		cfg.Kernel.PollInterval = opts.PollEvery
	}

	logger, closer, err := logging.New(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		if opts.LogLevel != "" {
			return fmt.Errorf("init logging: %w", err)
		}
		logger = logging.Discard()
	} else {
		defer func() { _ = closer.Close() }()
	}
	for _, key := range cfg.Defaulted {
		logger.Debug("config value invalid, using default", "key", key)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	s, err := open(ctx, opts, cfg, logger)
	if err != nil {
		return err
	}
	if s.bridge != nil {
		defer func() { _ = s.bridge.Close() }()
	}
	record := cfg.Grid.Apply(s.record)
	record.HeadersVertical = record.HeadersVertical || userPrefs.HeadersVertical
	logger.Info("model loaded", "source", s.title, "rows", len(record.Values), "columns", len(record.ColumnNames))

	g, host, err := ui.NewGrid(record, userPrefs.Palette(), logger, clock.Real{})
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}
	defer g.Destroy()

	if opts.Dump {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return export.Text(out, g)
	}

	if s.bridge != nil {
		bridge := s.bridge
		g.Signal().Connect(func(msg comm.Message) {
			if err := bridge.Send(msg); err != nil {
				logger.Warn("comm message not sent", "event", msg.Event(), "error", err)
			}
		})
	}

	logPath := ""
	if closer != nil {
		logPath = cfg.LogPath()
	}
	return ui.Run(ui.Options{
		Context:   ctx,
		Grid:      g,
		Host:      host,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		LogPath:   logPath,
		Title:     s.title,
		Clock:     clock.Real{},
		Logger:    logger,
		Feed:      s.feed,
	})
}

// open loads the initial record from the first configured source: a model
// file, a SQLite query, then the kernel.
func open(ctx context.Context, opts Options, cfg config.Config, logger *log.Logger) (session, error) {
	switch {
	case opts.ModelPath != "":
		return openFile(opts.ModelPath, cfg, logger)
	case opts.SQLitePath != "":
		return openSQLite(ctx, opts.SQLitePath, opts.Query, cfg, logger)
	case cfg.Kernel.URL != "":
		return openKernel(ctx, cfg, logger)
	}
	return session{}, ErrNoSource
}

func openFile(path string, cfg config.Config, logger *log.Logger) (session, error) {
	record, err := source.Load(path)
	if err != nil {
		return session{}, fmt.Errorf("load model: %w", err)
	}
	s := session{record: record, title: filepath.Base(path)}
	s.feed = watchFeed(path, cfg, record, logger, func(context.Context) (model.Record, error) {
		return source.Load(path)
	})
	return s, nil
}

func openSQLite(ctx context.Context, dbPath, query string, cfg config.Config, logger *log.Logger) (session, error) {
	if strings.TrimSpace(query) == "" {
		return session{}, fmt.Errorf("open sqlite %s: --query is required", dbPath)
	}
	record, err := source.SQLite(ctx, dbPath, query)
	if err != nil {
		return session{}, fmt.Errorf("load model: %w", err)
	}
	s := session{record: record, title: "sqlite " + filepath.Base(dbPath)}
	s.feed = watchFeed(dbPath, cfg, record, logger, func(ctx context.Context) (model.Record, error) {
		return source.SQLite(ctx, dbPath, query)
	})
	return s, nil
}

func openKernel(ctx context.Context, cfg config.Config, logger *log.Logger) (session, error) {
	client, err := kernel.NewClient(cfg.Kernel.URL, kernel.WithLogger(logger), kernel.WithMaxDelay(cfg.Kernel.ReconnectMax))
	if err != nil {
		return session{}, fmt.Errorf("init kernel client: %w", err)
	}
	record, err := client.FetchModel(ctx)
	if err != nil {
		_ = client.Close()
		return session{}, fmt.Errorf("fetch model: %w", err)
	}
	s := session{record: record, title: "kernel " + cfg.Kernel.URL, bridge: client}
	s.feed = func(ctx context.Context, send func(tea.Msg)) {
		err := client.Stream(ctx, func(u kernel.Update) {
			send(ui.UpdateMsg{Record: cfg.Grid.Apply(u.Record), Patch: u.Method == kernel.MethodPatch})
		})
		if err != nil && ctx.Err() == nil && !errors.Is(err, kernel.ErrClosed) {
			logger.Warn("kernel stream ended", "error", err)
			send(ui.StatusMsg{Text: "kernel disconnected: " + err.Error(), Err: true})
		}
	}
	return s, nil
}

// watchFeed reloads the model when path changes. Records with the same
// columns patch the values so that sorting and filters survive.
func watchFeed(path string, cfg config.Config, initial model.Record, logger *log.Logger, load func(context.Context) (model.Record, error)) func(context.Context, func(tea.Msg)) {
	return func(ctx context.Context, send func(tea.Msg)) {
		last := initial
		StartWatcher(ctx, path, cfg.Kernel.PollInterval, func() error {
			record, err := load(ctx)
			if err != nil {
				return err
			}
			patch := sameColumns(last, record)
			last = record
			logger.Info("model reloaded", "path", path, "rows", len(record.Values), "patch", patch)
			send(ui.UpdateMsg{Record: cfg.Grid.Apply(record), Patch: patch})
			return nil
		})
	}
}

func sameColumns(a, b model.Record) bool {
	return reflect.DeepEqual(a.ColumnNames, b.ColumnNames) && reflect.DeepEqual(a.Types, b.Types)
}
