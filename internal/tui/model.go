// Package tui provides the BubbleTea host for notification bars: an
// interactive demo and a one-shot mode that shows a single message.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/notibar/internal/animation"
	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/config"
	"github.com/jmylchreest/notibar/internal/history"
	"github.com/jmylchreest/notibar/internal/layout"
	"github.com/jmylchreest/notibar/internal/notifier"
	"github.com/jmylchreest/notibar/internal/render"
	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/view"
)

// frameInterval is the animation frame period.
const frameInterval = time.Second / 30

const (
	headerBackground = lipgloss.Color("#5A56E0")
	statusBackground = lipgloss.Color("#262626")
	mutedColor       = lipgloss.Color("#A8A8A8")
	errorColor       = lipgloss.Color("#FF5F5F")
	textColor        = lipgloss.Color("#FFFFFF")
)

var sampleMessages = []string{
	"Settings saved",
	"Connection restored. Syncing 3 pending changes in the background.",
	"New version available",
	"Could not reach the server. Check your network connection and try again in a few moments.",
	"Copied to clipboard",
}

// ShowMsg asks the model to display a message. It is how other goroutines,
// such as the D-Bus server, reach the notifier.
type ShowMsg struct {
	Message string
	Preset  style.Preset
}

// HideMsg asks the model to hide the visible bar.
type HideMsg struct{}

// ConfigMsg carries a reloaded configuration.
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

type frameMsg time.Time

type historyChangedMsg struct{}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Options configures a Model.
type Options struct {
	Config   *config.Config
	Notifier notifier.Options // Style and Animator are filled from Config
	Logger   *slog.Logger

	// OneShot shows Message on start and quits once it hides. The demo
	// chrome is not drawn.
	OneShot bool
	Message string
	Preset  style.Preset
}

// Model is the BubbleTea model hosting the notifier.
type Model struct {
	cfg      *config.Config
	base     style.Style
	logger   *slog.Logger
	notifier *notifier.Notifier
	animator *animation.Animator
	history  *history.Store

	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	// View tree: the bar is attached to root above the chrome.
	root   *view.View
	header *view.View
	body   *view.View
	status *view.View

	width  int
	height int
	ready  bool

	top      bool
	guide    bool
	buttons  bool
	debug    bool
	showHelp bool

	statusMsg string
	statusErr bool
	ticking   bool
	sent      int

	oneShot   bool
	message   string
	preset    style.Preset
	presented bool

	refreshCh <-chan history.ChangeEvent
}

// New creates the model. The style comes from opts.Config, or the default
// configuration when nil.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	animator := opts.Notifier.Animator
	if animator == nil {
		animator = animation.New(logger)
	}
	base, err := cfg.Style(animator)
	if err != nil {
		return Model{}, err
	}

	root := view.New("root")
	header := newRow("header", headerBackground)
	header.Bold = true
	body := view.NewLabel("history", "")
	body.Wrap = false
	body.Foreground = textColor
	status := newRow("status", statusBackground)
	status.Foreground = mutedColor
	for _, v := range []*view.View{header, body, status} {
		root.AddSubview(v)
	}

	b := layout.Builder{}
	b.Stack(header, root, 1, false)
	b.Stack(status, root, 1, true)
	b.FillParent(body, root, 0, false)
	root.AddConstraints(
		view.Constraint{Item: body, Attr: view.AttrTop, ToItem: header, ToAttr: view.AttrBottom},
		view.Constraint{Item: body, Attr: view.AttrBottom, ToItem: status, ToAttr: view.AttrTop},
	)

	nopts := opts.Notifier
	nopts.Style = base
	nopts.Animator = animator
	nopts.Logger = logger
	if nopts.Source == "" {
		nopts.Source = "tui"
	}

	h := help.New()
	plain := lipgloss.NewStyle()
	h.Styles = help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}

	m := Model{
		cfg:      cfg,
		base:     base,
		logger:   logger,
		notifier: notifier.New(root, nopts),
		animator: animator,
		history:  nopts.History,
		keys:     DefaultKeyMap(),
		help:     h,
		root:     root,
		header:   header,
		body:     body,
		status:   status,
		top:      base.Bar.LocationTop,
		buttons:  base.LeftButton != nil,
		debug:    base.Bar.DebugMode,
		oneShot:  opts.OneShot,
		message:  opts.Message,
		preset:   opts.Preset,
	}
	if m.oneShot {
		header.Hidden = true
		body.Hidden = true
		status.Hidden = true
	}
	if m.history != nil {
		m.refreshCh = m.history.Subscribe()
	}
	return m, nil
}

func newRow(name string, bg lipgloss.Color) *view.View {
	v := view.NewLabel(name, "")
	v.Wrap = false
	v.NumberOfLines = 1
	v.Background = bg
	v.Foreground = textColor
	return v
}

// Notifier returns the notifier driven by the model.
func (m Model) Notifier() *notifier.Notifier {
	return m.notifier
}

// Init starts watching the history for changes.
func (m Model) Init() tea.Cmd {
	return m.watchHistory
}

func (m Model) watchHistory() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	if _, ok := <-m.refreshCh; !ok {
		return nil
	}
	return historyChangedMsg{}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.root.SetFrame(view.NewRect(0, 0, msg.Width, msg.Height))
		m.viewport = viewport.New(msg.Width, max(msg.Height-2, 0))
		m.ready = true

		if m.oneShot && !m.presented {
			m.presented = true
			cmds = append(cmds, m.show(m.message, m.preset))
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case ShowMsg:
		cmds = append(cmds, m.show(msg.Message, msg.Preset))

	case HideMsg:
		cmds = append(cmds, m.hide())

	case ConfigMsg:
		cmds = append(cmds, m.applyConfig(msg))

	case frameMsg:
		m.ticking = false
		m.notifier.Tick(time.Time(msg))

	case historyChangedMsg:
		cmds = append(cmds, m.watchHistory)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		cmds = append(cmds, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		}))

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
	}

	m.refresh()
	if m.oneShot && m.presented && !m.notifier.Visible() {
		return m, tea.Quit
	}
	cmds = append(cmds, m.ensureTicking())
	return m, tea.Batch(cmds...)
}

func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || !m.notifier.Active() {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Hide):
		return m.hide()
	}

	if m.oneShot {
		if key.Matches(msg, m.keys.Tap) {
			m.notifier.Tap()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Show):
		return m.showSample(style.PresetDefault)
	case key.Matches(msg, m.keys.Info):
		return m.showSample(style.PresetInfo)
	case key.Matches(msg, m.keys.Success):
		return m.showSample(style.PresetSuccess)
	case key.Matches(msg, m.keys.Warning):
		return m.showSample(style.PresetWarning)
	case key.Matches(msg, m.keys.Error):
		return m.showSample(style.PresetError)
	case key.Matches(msg, m.keys.Tap):
		if !m.notifier.Tap() {
			return setStatus("tap ignored", false)
		}
	case key.Matches(msg, m.keys.TapLeft):
		return m.tapButton(0)
	case key.Matches(msg, m.keys.TapRight):
		return m.tapButton(1)
	case key.Matches(msg, m.keys.ToggleButtons):
		m.buttons = !m.buttons
		return setStatus(fmt.Sprintf("buttons %s for the next message", onOff(m.buttons)), false)
	case key.Matches(msg, m.keys.TogglePlacement):
		m.top = !m.top
		return setStatus(fmt.Sprintf("placement %s for the next message", m.placement()), false)
	case key.Matches(msg, m.keys.ToggleGuide):
		m.guide = !m.guide
		return setStatus(fmt.Sprintf("layout guide %s for the next message", onOff(m.guide)), false)
	case key.Matches(msg, m.keys.ToggleDebug):
		m.debug = !m.debug
		return setStatus(fmt.Sprintf("debug %s for the next message", onOff(m.debug)), false)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// handleMouse taps whatever is under a left click: a button, else the bar.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	b := m.notifier.Bar()
	if b == nil {
		return nil
	}
	t := b.View().Translation
	x, y := msg.X-t.DX, msg.Y-t.DY
	for i, btn := range b.Buttons() {
		if btn.View().Frame().Contains(x, y) {
			return m.tapButton(i)
		}
	}
	if b.View().Frame().Contains(x, y) {
		m.notifier.Tap()
	}
	return nil
}

func (m *Model) tapButton(index int) tea.Cmd {
	b := m.notifier.Bar()
	if b == nil || index >= len(b.Buttons()) {
		return setStatus("no button to tap", false)
	}
	label := b.Buttons()[index].Style().AccessibilityLabel
	m.notifier.TapButton(index)
	return setStatus(fmt.Sprintf("%s tapped", label), false)
}

func (m *Model) showSample(preset style.Preset) tea.Cmd {
	msg := sampleMessages[m.sent%len(sampleMessages)]
	m.sent++
	return m.show(msg, preset)
}

func (m *Model) show(message string, preset style.Preset) tea.Cmd {
	m.applyStyle()
	if err := m.notifier.ShowPreset(message, preset); err != nil {
		m.logger.Error("failed to show message", "error", err)
		return setStatus(err.Error(), true)
	}
	return nil
}

func (m *Model) hide() tea.Cmd {
	if err := m.notifier.Hide(); err != nil {
		return setStatus(err.Error(), true)
	}
	return nil
}

func (m *Model) applyConfig(msg ConfigMsg) tea.Cmd {
	if msg.Err != nil {
		return setStatus("config reload failed: "+msg.Err.Error(), true)
	}
	base, err := msg.Config.Style(m.animator)
	if err != nil {
		return setStatus("config reload failed: "+err.Error(), true)
	}
	m.cfg = msg.Config
	m.base = base
	m.top = base.Bar.LocationTop
	m.buttons = base.LeftButton != nil
	m.debug = base.Bar.DebugMode
	return setStatus("config reloaded", false)
}

// applyStyle pushes the base style with the demo toggles to the notifier.
func (m *Model) applyStyle() {
	st := m.base.Clone()
	st.Bar.LocationTop = m.top
	st.Bar.DebugMode = m.debug
	switch {
	case !m.buttons:
		st.LeftButton, st.RightButton = nil, nil
	case st.LeftButton == nil:
		st.LeftButton = &button.Style{
			AccessibilityLabel: "Reload",
			Icon:               button.IconReload,
			TintColor:          textColor,
		}
		st.RightButton = &button.Style{
			AccessibilityLabel: "Close",
			Icon:               button.IconClose,
			HideOnTap:          true,
			TintColor:          textColor,
		}
	}
	m.notifier.SetStyle(st)

	switch {
	case !m.guide || m.oneShot:
		m.notifier.RemoveLayoutGuide()
	case m.top:
		m.notifier.SetLayoutGuide(m.header)
	default:
		m.notifier.SetLayoutGuide(m.status)
	}
}

func (m Model) placement() string {
	if m.top {
		return "top"
	}
	return "bottom"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: isErr} }
}

// refresh rewrites the chrome labels from the model state. It runs after
// every message.
func (m *Model) refresh() {
	if !m.ready || m.oneShot {
		return
	}

	count := 0
	if m.history != nil {
		count = m.history.Count()
	}
	m.header.Text = fmt.Sprintf(" notibar · %s · guide %s · buttons %s · debug %s · %s shown",
		m.placement(), onOff(m.guide), onOff(m.buttons), onOff(m.debug), humanize.Comma(int64(count)))

	if m.showHelp {
		m.viewport.SetContent(m.help.View(m.keys))
	} else {
		m.viewport.SetContent(m.historyContent(time.Now()))
	}
	m.body.Text = m.viewport.View()

	switch {
	case m.statusMsg != "":
		m.status.Text = " " + m.statusMsg
		m.status.Foreground = textColor
		if m.statusErr {
			m.status.Foreground = errorColor
		}
	default:
		m.status.Text = " " + m.help.ShortHelpView(m.keys.ShortHelp())
		m.status.Foreground = mutedColor
	}
}

func (m Model) historyContent(now time.Time) string {
	if m.history == nil || m.history.Count() == 0 {
		return "\n  No messages yet. Press n to show one, ? for help."
	}
	var sb strings.Builder
	for _, e := range m.history.All() {
		marker := " "
		if e.Visible() {
			marker = "▸"
		}
		message, _, _ := strings.Cut(e.Message, "\n")
		fmt.Fprintf(&sb, " %s %-8s %-16s %s\n", marker, e.Preset, e.RelativeTime(now), message)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// View renders the view tree, with the bar drawn over the chrome.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return render.Render(m.root)
}
