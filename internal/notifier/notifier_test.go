package notifier

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jmylchreest/notibar/internal/animation"
	"github.com/jmylchreest/notibar/internal/bar"
	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/history"
	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/view"
)

type recordingSound struct {
	played []style.Preset
}

func (r *recordingSound) PlayPreset(p style.Preset) error {
	r.played = append(r.played, p)
	return nil
}

type fixedGuide struct{ rect view.Rect }

func (g fixedGuide) Frame() view.Rect { return g.rect }

func newHost() *view.View {
	host := view.New("host")
	host.SetFrame(view.NewRect(0, 0, 80, 24))
	return host
}

// labelText returns the message of the bar attached to host.
func labelText(t *testing.T, n *Notifier) string {
	t.Helper()
	require.True(t, n.Visible())
	return n.Bar().Label().Text
}

func TestShow(t *testing.T) {
	host := newHost()
	store := history.NewStore(10, nil)
	sound := &recordingSound{}
	n := New(host, Options{Style: style.Default(), History: store, Sound: sound, Source: "test"})

	require.NoError(t, n.Show("Saved"))
	assert.True(t, n.Visible())
	assert.Equal(t, bar.StateShown, n.Bar().State())
	assert.Equal(t, "Saved", labelText(t, n))
	assert.Len(t, host.Subviews(), 1)

	require.Equal(t, 1, store.Count())
	e := store.All()[0]
	assert.Equal(t, "Saved", e.Message)
	assert.Equal(t, "default", e.Preset)
	assert.Equal(t, "test", e.Source)
	assert.True(t, e.Visible())
	assert.Equal(t, []style.Preset{style.PresetDefault}, sound.played)

	require.NoError(t, n.Hide())
	assert.False(t, n.Visible())
	assert.Empty(t, host.Subviews())
	assert.False(t, store.All()[0].Visible())
}

func TestHide_NothingShown(t *testing.T) {
	n := New(newHost(), Options{Style: style.Default()})
	assert.ErrorIs(t, n.Hide(), bar.ErrNotShown)
	assert.False(t, n.Tap())
	assert.False(t, n.TapButton(0))
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name string
		show func(n *Notifier, msg string) error
		want lipgloss.Color
	}{
		{"info", (*Notifier).Info, "#2D7DB3"},
		{"success", (*Notifier).Success, "#26A65B"},
		{"warning", (*Notifier).Warning, "#C87F0A"},
		{"error", (*Notifier).Error, "#C0392B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(newHost(), Options{Style: style.Default()})
			require.NoError(t, tt.show(n, "x"))
			assert.Equal(t, tt.want, n.Bar().View().Background)
			assert.Equal(t, lipgloss.Color("#333333"), n.Style().Bar.BackgroundColor, "base style untouched")
		})
	}
}

func TestShow_ReplacesVisibleBar(t *testing.T) {
	host := newHost()
	store := history.NewStore(10, nil)
	n := New(host, Options{Style: style.Default(), History: store})

	require.NoError(t, n.Show("first"))
	first := n.Bar()
	require.NoError(t, n.Warning("second"))

	assert.Equal(t, "second", labelText(t, n))
	assert.NotSame(t, first, n.Bar())
	assert.Equal(t, bar.StateDetached, first.State())
	assert.Len(t, host.Subviews(), 1, "only one bar is ever attached")

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Message)
	assert.False(t, all[1].Visible(), "first entry marked hidden")
}

func animatedStyle(a *animation.Animator, d time.Duration) style.Style {
	st := style.Default()
	st.Bar.AnimationShow = a.ShowFunc(animation.KindSlideVertically)
	st.Bar.AnimationHide = a.HideFunc(animation.KindSlideVertically)
	st.Bar.AnimationShowDuration = d
	st.Bar.AnimationHideDuration = d
	return st
}

func TestShow_ReplaceWaitsForAnimations(t *testing.T) {
	host := newHost()
	a := animation.New(nil)
	d := 100 * time.Millisecond
	n := New(host, Options{Style: animatedStyle(a, d), Animator: a})
	t0 := time.Unix(0, 0)

	require.NoError(t, n.Show("first"))
	assert.Equal(t, bar.StateShowing, n.Bar().State())
	assert.True(t, n.Active())

	// Replace twice while the first is still showing; only the latest is kept
	require.NoError(t, n.Show("second"))
	require.NoError(t, n.Show("third"))
	assert.Equal(t, "first", labelText(t, n))

	n.Tick(t0)
	n.Tick(t0.Add(d)) // show completes, queued hide starts
	assert.Equal(t, bar.StateHiding, n.Bar().State())

	n.Tick(t0.Add(d))
	n.Tick(t0.Add(2 * d)) // hide completes, third is presented
	assert.Equal(t, "third", labelText(t, n))
	assert.Equal(t, bar.StateShowing, n.Bar().State())

	n.Tick(t0.Add(2 * d))
	n.Tick(t0.Add(3 * d))
	assert.Equal(t, bar.StateShown, n.Bar().State())
	assert.Equal(t, 0, n.Bar().View().Translation.DY)
	assert.False(t, n.Active())
}

func TestHide_DropsPendingMessage(t *testing.T) {
	a := animation.New(nil)
	n := New(newHost(), Options{Style: animatedStyle(a, 0), Animator: a})

	require.NoError(t, n.Show("first"))
	require.NoError(t, n.Show("second"))
	require.NoError(t, n.Hide())

	a.Finish()
	assert.False(t, n.Visible())
}

func TestAutoHide(t *testing.T) {
	t0 := time.Unix(1000, 0)
	now := t0
	st := style.Default()
	st.Bar.HideAfterDelay = 2 * time.Second
	n := New(newHost(), Options{Style: st, Now: func() time.Time { return now }})

	require.NoError(t, n.Show("bye"))
	assert.True(t, n.Active())

	n.Tick(t0.Add(time.Second))
	assert.True(t, n.Visible())

	n.Tick(t0.Add(2 * time.Second))
	assert.False(t, n.Visible())
	assert.False(t, n.Active())
}

func TestButtons(t *testing.T) {
	st := style.Default()
	left, right := 0, 0
	st.LeftButton = &button.Style{Icon: button.IconReload, OnTap: func() { left++ }}
	st.RightButton = &button.Style{Icon: button.IconClose, HideOnTap: true, OnTap: func() { right++ }}
	n := New(newHost(), Options{Style: st})

	require.NoError(t, n.Show("with buttons"))
	require.Len(t, n.Bar().Buttons(), 2)

	assert.True(t, n.TapButton(0))
	assert.Equal(t, 1, left)
	assert.True(t, n.Visible())

	assert.False(t, n.TapButton(5))

	assert.True(t, n.TapButton(1))
	assert.Equal(t, 1, right)
	assert.False(t, n.Visible())
}

func TestButtons_StaleButtonDoesNotHideCurrentBar(t *testing.T) {
	st := style.Default()
	taps := 0
	st.LeftButton = &button.Style{Icon: button.IconReload}
	st.RightButton = &button.Style{Icon: button.IconClose, HideOnTap: true, OnTap: func() { taps++ }}
	n := New(newHost(), Options{Style: st})

	require.NoError(t, n.Show("first"))
	stale := n.Bar().Buttons()[1]
	require.NoError(t, n.Show("second"))
	require.NotSame(t, stale, n.Bar().Buttons()[1])

	stale.Tap()
	assert.Equal(t, 1, taps, "the button's own action still runs")
	assert.True(t, n.Visible())
	assert.Equal(t, "second", labelText(t, n))

	assert.True(t, n.TapButton(1))
	assert.False(t, n.Visible())
}

func TestTap(t *testing.T) {
	st := style.Default()
	n := New(newHost(), Options{Style: st})
	require.NoError(t, n.Show("x"))
	assert.False(t, n.Tap(), "bar ignores taps unless HideOnTap")

	st.Bar.HideOnTap = true
	n.SetStyle(st)
	require.NoError(t, n.Show("y"))
	assert.True(t, n.Tap())
	assert.False(t, n.Visible())
}

func TestLayoutGuide(t *testing.T) {
	n := New(newHost(), Options{Style: style.Default()})
	g := fixedGuide{rect: view.NewRect(0, 23, 80, 1)}

	n.SetLayoutGuide(g)
	assert.Equal(t, g, n.LayoutGuide())
	require.NoError(t, n.Show("above the status line"))
	view.Solve(n.Bar().View().Root())
	// guide.top = bar.bottom + 1
	assert.Equal(t, 22, n.Bar().View().Frame().Bottom())
	require.NoError(t, n.Hide())

	n.RemoveLayoutGuide()
	assert.Nil(t, n.LayoutGuide())
	require.NoError(t, n.Show("at the edge"))
	view.Solve(n.Bar().View().Root())
	assert.Equal(t, 23, n.Bar().View().Frame().Bottom())
}

func TestShow_Error(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	st := style.Default()
	st.LeftButton = &button.Style{Icon: button.IconClose}
	n := New(newHost(), Options{Style: st, Tracer: tp.Tracer("test")})

	err := n.Show("one button")
	assert.ErrorIs(t, err, bar.ErrUnsupportedButtonCount)
	assert.False(t, n.Visible())

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "Error", ended[0].Status().Code.String())
}

func TestTracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	n := New(newHost(), Options{
		Style:   style.Default(),
		Tracer:  tp.Tracer("test"),
		History: history.NewStore(10, nil),
	})

	require.NoError(t, n.Success("done"))
	assert.Empty(t, sr.Ended(), "span stays open while the bar is visible")
	require.NoError(t, n.Hide())

	ended := sr.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "notibar.show", span.Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "success", attrs["notibar.preset"].AsString())
	assert.Equal(t, int64(4), attrs["notibar.message.length"].AsInt64())
	assert.NotEmpty(t, attrs["notibar.entry.id"].AsString())

	require.Len(t, span.Events(), 1)
	assert.Equal(t, "hidden", span.Events()[0].Name)
}
