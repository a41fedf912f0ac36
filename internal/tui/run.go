package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/jmylchreest/notibar/internal/audio"
	"github.com/jmylchreest/notibar/internal/config"
	"github.com/jmylchreest/notibar/internal/dbus"
	"github.com/jmylchreest/notibar/internal/history"
	"github.com/jmylchreest/notibar/internal/notifier"
	"github.com/jmylchreest/notibar/internal/style"
)

// RunOptions configures Run.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Watched for changes when set
	Logger     *slog.Logger
	Tracer     trace.Tracer

	// DBus serves Show, Hide and History on the session bus.
	DBus bool
	// Mirror shows desktop notifications as bars.
	Mirror bool

	OneShot bool
	Message string
	Preset  style.Preset
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := openHistory(cfg, opts.OneShot, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sound := audio.NewManager(cfg, logger)
	if err := sound.Start(); err != nil {
		logger.Warn("failed to start audio", "error", err)
	}
	defer sound.Stop()

	m, err := New(Options{
		Config: cfg,
		Logger: logger,
		Notifier: notifier.Options{
			Tracer:  opts.Tracer,
			Sound:   sound,
			History: store,
		},
		OneShot: opts.OneShot,
		Message: opts.Message,
		Preset:  opts.Preset,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if opts.ConfigPath != "" && !opts.OneShot {
		watcher, err := config.NewWatcher(opts.ConfigPath, func(c *config.Config, err error) {
			if err == nil {
				sound.UpdateConfig(c)
			}
			p.Send(ConfigMsg{Config: c, Err: err})
		}, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer func() { _ = watcher.Stop() }()
		}
	}

	if opts.DBus && !opts.OneShot {
		server := dbus.NewServer(programHandler{program: p, store: store}, logger)
		if err := server.Start(); err != nil {
			logger.Warn("D-Bus server unavailable", "error", err)
		} else {
			defer func() { _ = server.Stop() }()
			go forwardSignals(ctx, store.Subscribe(), store, server, logger)
		}
	}

	if opts.Mirror && !opts.OneShot {
		monitor := dbus.NewMonitor(func(n *dbus.Notification) {
			p.Send(ShowMsg{Message: n.Message(), Preset: n.Preset()})
		}, logger)
		if err := monitor.Start(); err != nil {
			logger.Warn("desktop notification mirror unavailable", "error", err)
		} else {
			defer func() { _ = monitor.Stop() }()
		}
	}

	_, err = p.Run()
	return err
}

// openHistory opens the persisted history, or an in-memory one for one-shot
// runs and when persistence is off.
func openHistory(cfg *config.Config, oneShot bool, logger *slog.Logger) (*history.Store, error) {
	if oneShot || !cfg.History.Persist {
		return history.NewStore(cfg.History.Limit, nil), nil
	}

	persistence, err := history.NewJSONLPersistence(config.HistoryPath())
	if err != nil {
		return nil, err
	}
	store := history.NewStore(cfg.History.Limit, persistence)
	if err := store.Hydrate(); err != nil {
		logger.Warn("failed to load history", "path", persistence.Path(), "error", err)
	}
	return store, nil
}

// programHandler serves D-Bus calls by posting messages to the program.
type programHandler struct {
	program *tea.Program
	store   *history.Store
}

func (h programHandler) Show(message string, preset style.Preset) error {
	h.program.Send(ShowMsg{Message: message, Preset: preset})
	return nil
}

func (h programHandler) Hide() error {
	h.program.Send(HideMsg{})
	return nil
}

func (h programHandler) History() []history.Entry {
	return h.store.All()
}

// signalEmitter is the part of the D-Bus server that announces bars.
type signalEmitter interface {
	EmitShown(id, preset string) error
	EmitHidden(id string) error
}

// forwardSignals turns history changes received on ch into Shown and
// Hidden signals.
func forwardSignals(ctx context.Context, ch <-chan history.ChangeEvent, store *history.Store, server signalEmitter, logger *slog.Logger) {
	defer store.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			var err error
			switch event.Type {
			case history.ChangeTypeAdd:
				preset := ""
				if e, found := store.Get(event.ID); found {
					preset = e.Preset
				}
				err = server.EmitShown(event.ID, preset)
			case history.ChangeTypeHidden:
				err = server.EmitHidden(event.ID)
			}
			if err != nil {
				logger.Debug("failed to emit signal", "error", err)
			}
		}
	}
}
