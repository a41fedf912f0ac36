// Package dbus exposes a running notibar on the session bus. The server
// accepts Show, Hide and History calls from other processes and emits
// Shown and Hidden signals. Client is the matching caller used by the CLI.
// Monitor mirrors freedesktop desktop notifications into bars.
package dbus
