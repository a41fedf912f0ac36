package dbus

import (
	"errors"
	"fmt"
)

var errNotConnected = errors.New("not connected to D-Bus")

// EmitShown emits the Shown signal for a history entry.
func (s *Server) EmitShown(id, preset string) error {
	return s.emit("Shown", id, preset)
}

// EmitHidden emits the Hidden signal for a history entry.
func (s *Server) EmitHidden(id string) error {
	return s.emit("Hidden", id)
}

func (s *Server) emit(name string, args ...any) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return errNotConnected
	}
	if err := conn.Emit(Path, Interface+"."+name, args...); err != nil {
		return fmt.Errorf("failed to emit %s signal: %w", name, err)
	}
	s.logger.Debug("emitted signal", "signal", name)
	return nil
}
