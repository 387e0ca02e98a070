package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/calcstorm/internal/config"
	"github.com/dshills/calcstorm/internal/engine/history"
	"github.com/dshills/calcstorm/internal/engine/session"
	"github.com/dshills/calcstorm/internal/terminal"
)

// ErrQuit signals a normal user-requested exit.
var ErrQuit = errors.New("quit")

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file (TOML or YAML). Empty uses
	// the built-in defaults.
	ConfigPath string

	// HistoryPath overrides the configured history file.
	HistoryPath string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// Debug forces debug-level logging.
	Debug bool
}

// Application wires the calculator session, configuration, and the
// terminal host together.
type Application struct {
	opts   Options
	logger *Logger

	mu      sync.Mutex
	cfg     config.Config
	store   *history.Store
	session *session.Session
	watcher *config.Watcher

	shutdownOnce sync.Once
}

// New creates an application from options: configuration is loaded,
// history restored if a file is configured, and the session assembled.
// The terminal is not touched until Run.
func New(opts Options) (*Application, error) {
	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(opts.LogLevel)
	if opts.Debug {
		logCfg.Level = LogLevelDebug
	}
	logger := NewLogger(logCfg)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store := history.NewStore(cfg.History.MaxEntries)
	if path := historyPath(opts, cfg); path != "" {
		if err := store.Load(path); err != nil {
			// A corrupt history file should not keep the calculator
			// from starting.
			logger.WithComponent("history").Warn("load failed: %v", err)
		} else {
			logger.WithComponent("history").Debug("loaded %d entries from %s", store.Len(), path)
		}
	}

	mode, err := session.ParseLoadMode(cfg.History.Load)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	application := &Application{
		opts:    opts,
		logger:  logger,
		cfg:     cfg,
		store:   store,
		session: session.New(store, mode),
	}

	if opts.ConfigPath != "" {
		watcher, err := config.Watch(opts.ConfigPath, application.applyConfig, func(err error) {
			logger.WithComponent("config").Warn("reload failed: %v", err)
		})
		if err != nil {
			logger.WithComponent("config").Warn("watch failed: %v", err)
		} else {
			application.watcher = watcher
		}
	}

	return application, nil
}

// Session returns the calculator session.
func (app *Application) Session() *session.Session {
	return app.session
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Run drives the terminal host until the user quits. It returns ErrQuit
// on a normal exit.
func (app *Application) Run() error {
	ui, err := terminal.New(app.session)
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := ui.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer ui.Shutdown()

	app.logger.Info("started")

	err = ui.Run()
	if errors.Is(err, terminal.ErrQuit) {
		return ErrQuit
	}
	return err
}

// Shutdown releases resources and persists history. Safe to call more
// than once and from a signal handler.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.WithComponent("config").Warn("watcher close failed: %v", err)
			}
		}

		app.mu.Lock()
		cfg := app.cfg
		app.mu.Unlock()

		if path := historyPath(app.opts, cfg); path != "" {
			if err := app.store.Save(path); err != nil {
				app.logger.WithComponent("history").Error("save failed: %v", err)
			} else {
				app.logger.WithComponent("history").Debug("saved %d entries to %s", app.store.Len(), path)
			}
		}

		app.logger.Info("shutdown complete")
	})
}

// applyConfig applies a reloaded configuration to the running pieces.
func (app *Application) applyConfig(cfg config.Config) {
	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()

	app.store.SetMaxEntries(cfg.History.MaxEntries)

	if mode, err := session.ParseLoadMode(cfg.History.Load); err == nil {
		app.session.SetLoadMode(mode)
	}
	if !app.opts.Debug {
		app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	}

	app.logger.WithComponent("config").Info("configuration reloaded")
}

// historyPath resolves the history file: the command-line override
// wins over the configured path.
func historyPath(opts Options, cfg config.Config) string {
	if opts.HistoryPath != "" {
		return opts.HistoryPath
	}
	return cfg.History.File
}
