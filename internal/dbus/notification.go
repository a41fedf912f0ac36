package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/notibar/internal/style"
)

// Urgency levels from the freedesktop notification hints.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// Notification is a desktop notification observed on the bus.
type Notification struct {
	AppName string
	Summary string
	Body    string
	Hints   map[string]dbus.Variant
}

// parseNotify reads the arguments of an
// org.freedesktop.Notifications.Notify call (susssasa{sv}i).
func parseNotify(body []any) (*Notification, error) {
	if len(body) < 8 {
		return nil, fmt.Errorf("malformed Notify call: %d arguments", len(body))
	}
	n := &Notification{}
	var ok bool
	if n.AppName, ok = body[0].(string); !ok {
		return nil, fmt.Errorf("invalid app_name type %T", body[0])
	}
	if n.Summary, ok = body[3].(string); !ok {
		return nil, fmt.Errorf("invalid summary type %T", body[3])
	}
	if n.Body, ok = body[4].(string); !ok {
		return nil, fmt.Errorf("invalid body type %T", body[4])
	}
	n.Hints, _ = body[6].(map[string]dbus.Variant)
	return n, nil
}

// Urgency returns the urgency hint, or UrgencyNormal.
func (n *Notification) Urgency() int {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return UrgencyNormal
}

// Category returns the category hint, or "".
func (n *Notification) Category() string {
	if v, ok := n.Hints["category"]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// Message is the bar text: the summary, followed by the body when there is
// one.
func (n *Notification) Message() string {
	switch {
	case n.Body == "":
		return n.Summary
	case n.Summary == "":
		return n.Body
	default:
		return n.Summary + ": " + n.Body
	}
}

// Preset picks a bar preset from the urgency and category hints.
func (n *Notification) Preset() style.Preset {
	if n.Urgency() >= UrgencyCritical {
		return style.PresetError
	}
	switch n.Category() {
	case "transfer.complete", "presence.online":
		return style.PresetSuccess
	case "transfer.error", "network.error", "device.error":
		return style.PresetWarning
	}
	if n.Urgency() == UrgencyLow {
		return style.PresetInfo
	}
	return style.PresetDefault
}
