package dbus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/notibar/internal/history"
	"github.com/jmylchreest/notibar/internal/style"
)

const (
	// Interface is the notibar interface name.
	Interface = "io.github.notibar.Bar"
	// Path is the notibar object path.
	Path = dbus.ObjectPath("/io/github/notibar/Bar")
	// BusName is the bus name claimed by the server.
	BusName = "io.github.notibar"

	errInvalidArgs = Interface + ".Error.InvalidArgs"
	errFailed      = Interface + ".Error.Failed"
)

// Handler performs the requests received over the bus. Show and Hide are
// called from the bus goroutine and must hand the work to the UI loop.
type Handler interface {
	Show(message string, preset style.Preset) error
	Hide() error
	History() []history.Entry
}

// Server implements the io.github.notibar.Bar interface.
type Server struct {
	logger  *slog.Logger
	handler Handler

	mu      sync.Mutex
	conn    *dbus.Conn
	running bool
}

// NewServer creates a server that forwards calls to handler.
func NewServer(handler Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{handler: handler, logger: logger}
}

// Start connects to the session bus and claims BusName.
func (s *Server) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	if err := s.Serve(conn); err != nil {
		_ = conn.Close()
		return err
	}
	return nil
}

// Serve exports the server on conn and claims BusName.
func (s *Server) Serve(conn *dbus.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("server already running")
	}

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}
	if err := conn.Export(introspect.NewIntrospectable(introspection()), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	s.conn = conn
	s.running = true
	s.logger.Info("D-Bus server started", "name", BusName, "path", Path)
	return nil
}

// Stop releases the bus name and closes the connection.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	err := s.conn.Close()
	s.conn = nil
	s.logger.Info("D-Bus server stopped")
	return err
}

// Show displays message with the named preset.
// D-Bus method: Show(ss) -> nothing
func (s *Server) Show(message, preset string) *dbus.Error {
	p, err := style.ParsePreset(preset)
	if err != nil {
		return dbus.NewError(errInvalidArgs, []any{err.Error()})
	}
	s.logger.Debug("Show called", "preset", p, "length", len(message))
	if err := s.handler.Show(message, p); err != nil {
		return dbus.NewError(errFailed, []any{err.Error()})
	}
	return nil
}

// Hide hides the visible bar.
// D-Bus method: Hide() -> nothing
func (s *Server) Hide() *dbus.Error {
	s.logger.Debug("Hide called")
	if err := s.handler.Hide(); err != nil {
		return dbus.NewError(errFailed, []any{err.Error()})
	}
	return nil
}

// History returns the session history, newest first, as a JSON array.
// D-Bus method: History() -> s
func (s *Server) History() (string, *dbus.Error) {
	entries := s.handler.History()
	if entries == nil {
		entries = []history.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}

func introspection() *introspect.Node {
	return &introspect.Node{
		Name: string(Path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name: Interface,
				Methods: []introspect.Method{
					{
						Name: "Show",
						Args: []introspect.Arg{
							{Name: "message", Type: "s", Direction: "in"},
							{Name: "preset", Type: "s", Direction: "in"},
						},
					},
					{Name: "Hide"},
					{
						Name: "History",
						Args: []introspect.Arg{
							{Name: "entries", Type: "s", Direction: "out"},
						},
					},
				},
				Signals: []introspect.Signal{
					{
						Name: "Shown",
						Args: []introspect.Arg{
							{Name: "id", Type: "s"},
							{Name: "preset", Type: "s"},
						},
					},
					{
						Name: "Hidden",
						Args: []introspect.Arg{{Name: "id", Type: "s"}},
					},
				},
			},
		},
	}
}
