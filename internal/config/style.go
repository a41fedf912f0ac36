package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/notibar/internal/animation"
	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/view"
)

// Style builds the bar style described by the configuration. Animations
// are driven by animator; with a nil animator the bar appears and
// disappears immediately.
func (c *Config) Style(animator *animation.Animator) (style.Style, error) {
	if err := c.Validate(); err != nil {
		return style.Style{}, err
	}

	st := style.Style{
		Bar: style.BarStyle{
			BackgroundColor: lipgloss.Color(c.Bar.Background),
			CornerRadius:    c.Bar.CornerRadius,
			BorderColor:     lipgloss.Color(c.Bar.BorderColor),
			BorderWidth:     c.Bar.BorderWidth,
			MarginToSuperview: style.Margin{
				Width:  c.Bar.MarginWidth,
				Height: c.Bar.MarginHeight,
			},
			LocationTop:           c.Bar.Location == LocationTop,
			DebugMode:             c.Bar.Debug,
			AnimationShowDuration: c.Bar.ShowDuration.Duration(),
			AnimationHideDuration: c.Bar.HideDuration.Duration(),
			HideAfterDelay:        c.Bar.HideAfter.Duration(),
			HideOnTap:             c.Bar.HideOnTap,
		},
		Label: style.LabelStyle{
			Color:            lipgloss.Color(c.Label.Color),
			NumberOfLines:    c.Label.Lines,
			HorizontalMargin: c.Label.Margin,
			ShadowColor:      lipgloss.Color(c.Label.ShadowColor),
			ShadowOffset:     view.Offset{DX: c.Label.ShadowX, DY: c.Label.ShadowY},
			Bold:             c.Label.Bold,
			Italic:           c.Label.Italic,
		},
	}

	if animator != nil {
		show, _ := animation.ParseKind(c.Bar.AnimationShow)
		hide, _ := animation.ParseKind(c.Bar.AnimationHide)
		st.Bar.AnimationShow = animator.ShowFunc(show)
		st.Bar.AnimationHide = animator.HideFunc(hide)
	}

	var err error
	if st.LeftButton, err = c.Buttons.Left.style(); err != nil {
		return style.Style{}, fmt.Errorf("buttons.left: %w", err)
	}
	if st.RightButton, err = c.Buttons.Right.style(); err != nil {
		return style.Style{}, fmt.Errorf("buttons.right: %w", err)
	}
	return st, nil
}

func (b *ButtonConfig) style() (*button.Style, error) {
	if b == nil {
		return nil, nil
	}
	icon, err := button.ParseIcon(b.Icon)
	if err != nil {
		return nil, err
	}
	tint := b.Tint
	if tint == "" {
		tint = "#FFFFFF"
	}
	return &button.Style{
		AccessibilityLabel:    b.Label,
		HideOnTap:             b.HideOnTap,
		HorizontalMarginToBar: b.Margin,
		Icon:                  icon,
		Text:                  b.Text,
		Size:                  button.Size{Width: b.Width, Height: b.Height},
		TintColor:             lipgloss.Color(tint),
	}, nil
}
