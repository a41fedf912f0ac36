package dbus

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsInterface = "org.freedesktop.Notifications"
	notifyMatchRule        = "type='method_call',interface='" + notificationsInterface + "',member='Notify'"
)

// Monitor passively observes desktop notifications without claiming the
// notification service, so it runs alongside the desktop's own daemon.
type Monitor struct {
	conn     *dbus.Conn
	logger   *slog.Logger
	onNotify func(*Notification)
}

// NewMonitor creates a monitor that calls onNotify for each notification.
// onNotify runs on the monitor's goroutine.
func NewMonitor(onNotify func(*Notification), logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{onNotify: onNotify, logger: logger}
}

// Start connects to the session bus and begins monitoring.
func (m *Monitor) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	m.conn = conn

	err = conn.BusObject().Call("org.freedesktop.DBus.Monitoring.BecomeMonitor", 0,
		[]string{notifyMatchRule}, uint32(0)).Err
	if err != nil {
		m.logger.Warn("BecomeMonitor not available, trying AddMatch", "error", err)
		err = conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0,
			notifyMatchRule+",eavesdrop='true'").Err
		if err != nil {
			_ = conn.Close()
			return fmt.Errorf("failed to add match rule (eavesdrop may require permissions): %w", err)
		}
	}

	ch := make(chan *dbus.Message, 100)
	conn.Eavesdrop(ch)
	go m.process(ch)

	m.logger.Info("desktop notification monitor started")
	return nil
}

func (m *Monitor) process(ch <-chan *dbus.Message) {
	for msg := range ch {
		m.handle(msg)
	}
}

func (m *Monitor) handle(msg *dbus.Message) {
	if msg.Type != dbus.TypeMethodCall {
		return
	}
	if iface, _ := msg.Headers[dbus.FieldInterface].Value().(string); iface != notificationsInterface {
		return
	}
	if member, _ := msg.Headers[dbus.FieldMember].Value().(string); member != "Notify" {
		return
	}

	n, err := parseNotify(msg.Body)
	if err != nil {
		m.logger.Warn("ignoring notification", "error", err)
		return
	}
	m.logger.Debug("captured notification", "app", n.AppName, "preset", n.Preset())
	if m.onNotify != nil {
		m.onNotify(n)
	}
}

// Stop closes the monitor's connection.
func (m *Monitor) Stop() error {
	if m.conn == nil {
		return nil
	}
	return m.conn.Close()
}
