// Package history records the notification bars that have been shown.
package history

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// Entry is one shown bar.
type Entry struct {
	ID       string    `json:"id" yaml:"id"`
	Message  string    `json:"message" yaml:"message"`
	Preset   string    `json:"preset" yaml:"preset"`
	Source   string    `json:"source,omitempty" yaml:"source,omitempty"` // tui, dbus, cli
	ShownAt  time.Time `json:"shown_at" yaml:"shown_at"`
	HiddenAt time.Time `json:"hidden_at,omitzero" yaml:"hidden_at,omitempty"`
}

// NewEntry creates an entry with a fresh ULID, shown now.
func NewEntry(message, preset, source string) (Entry, error) {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to generate ULID: %w", err)
	}
	return Entry{
		ID:      id.String(),
		Message: message,
		Preset:  preset,
		Source:  source,
		ShownAt: now,
	}, nil
}

// Visible reports whether the bar has not been hidden yet.
func (e Entry) Visible() bool {
	return e.HiddenAt.IsZero()
}

// Duration returns how long the bar was on screen, or zero while visible.
func (e Entry) Duration() time.Duration {
	if e.Visible() {
		return 0
	}
	return e.HiddenAt.Sub(e.ShownAt)
}

// RelativeTime formats when the entry was shown relative to now, such as
// "3 minutes ago".
func (e Entry) RelativeTime(now time.Time) string {
	return humanize.RelTime(e.ShownAt, now, "ago", "from now")
}

// Validate checks that the entry has the required fields.
func (e Entry) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if _, err := ulid.ParseStrict(e.ID); err != nil {
		return fmt.Errorf("invalid id %q: %w", e.ID, err)
	}
	if e.ShownAt.IsZero() {
		return ErrZeroShownAt
	}
	return nil
}

// Errors
var (
	ErrStoreClosed       = historyError("history store is closed")
	ErrPersistenceClosed = historyError("persistence is closed")
	ErrNotFound          = historyError("entry not found")
	ErrEmptyID           = historyError("id cannot be empty")
	ErrZeroShownAt       = historyError("shown_at must be set")
)

type historyError string

func (e historyError) Error() string {
	return string(e)
}
