package dbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/notibar/internal/history"
	"github.com/jmylchreest/notibar/internal/style"
)

// Client calls a running notibar server.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect opens a private session bus connection.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return NewClient(conn), nil
}

// NewClient wraps an existing connection.
func NewClient(conn *dbus.Conn) *Client {
	return &Client{conn: conn, obj: conn.Object(BusName, Path)}
}

// Show asks the server to display message with preset.
func (c *Client) Show(ctx context.Context, message string, preset style.Preset) error {
	if err := c.obj.CallWithContext(ctx, Interface+".Show", 0, message, string(preset)).Err; err != nil {
		return fmt.Errorf("show: %w", err)
	}
	return nil
}

// Hide asks the server to hide the visible bar.
func (c *Client) Hide(ctx context.Context) error {
	if err := c.obj.CallWithContext(ctx, Interface+".Hide", 0).Err; err != nil {
		return fmt.Errorf("hide: %w", err)
	}
	return nil
}

// History fetches the server's session history, newest first.
func (c *Client) History(ctx context.Context) ([]history.Entry, error) {
	var data string
	if err := c.obj.CallWithContext(ctx, Interface+".History", 0).Store(&data); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return decodeHistory(data)
}

func decodeHistory(data string) ([]history.Entry, error) {
	var entries []history.Entry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

// WaitShownHidden waits for the next Shown signal and then for the Hidden
// signal of the same entry. It returns the entry ID. Subscribe before
// calling Show so the Shown signal is not missed.
func (c *Client) WaitShownHidden(ctx context.Context, signals <-chan *dbus.Signal) (string, error) {
	var id string
	for {
		select {
		case <-ctx.Done():
			return id, ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return id, errNotConnected
			}
			if len(sig.Body) == 0 {
				continue
			}
			sigID, _ := sig.Body[0].(string)
			switch sig.Name {
			case Interface + ".Shown":
				if id == "" {
					id = sigID
				}
			case Interface + ".Hidden":
				if id != "" && sigID == id {
					return id, nil
				}
			}
		}
	}
}

// Subscribe starts receiving the server's signals.
func (c *Client) Subscribe() (<-chan *dbus.Signal, error) {
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(Path),
		dbus.WithMatchInterface(Interface),
	); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	ch := make(chan *dbus.Signal, 16)
	c.conn.Signal(ch)
	return ch, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
