package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/config"
	"github.com/jmylchreest/notibar/internal/notifier"
	"github.com/jmylchreest/notibar/internal/render"
	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/view"
)

var previewOpts struct {
	preset  string
	width   int
	height  int
	top     bool
	buttons bool
	plain   bool
}

var previewCmd = &cobra.Command{
	Use:   "preview MESSAGE",
	Short: "Print a shown bar without animating it",
	Long: `Lay out a bar for MESSAGE on an empty screen and print the result.

The screen defaults to the terminal size. Use --plain to print text only,
which is handy for checking wrapping and placement.

Examples:
  notibar preview "Saved" --preset success
  notibar preview "A much longer message that wraps" --width 30 --height 8 --plain
  notibar preview "Retry?" --buttons --top`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOpts.preset, "preset", "p", "",
		fmt.Sprintf("Preset %v", style.ValidPresets()))
	previewCmd.Flags().IntVar(&previewOpts.width, "width", 0,
		"Screen width (default: terminal width)")
	previewCmd.Flags().IntVar(&previewOpts.height, "height", 0,
		"Screen height (default: terminal height)")
	previewCmd.Flags().BoolVar(&previewOpts.top, "top", false,
		"Place the bar at the top")
	previewCmd.Flags().BoolVar(&previewOpts.buttons, "buttons", false,
		"Add reload and close buttons")
	previewCmd.Flags().BoolVar(&previewOpts.plain, "plain", false,
		"Print without colours")
}

func runPreview(cmd *cobra.Command, args []string) error {
	preset, err := style.ParsePreset(previewOpts.preset)
	if err != nil {
		return err
	}

	width, height := previewOpts.width, previewOpts.height
	if width <= 0 || height <= 0 {
		w, h, err := term.GetSize(os.Stdout.Fd())
		if err != nil {
			w, h = 80, 24
		}
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}

	c := *cfg
	if previewOpts.top {
		c.Bar.Location = config.LocationTop
	}

	canvas, err := previewCanvas(&c, strings.Join(args, " "), preset, width, height, previewOpts.buttons)
	if err != nil {
		return err
	}
	if previewOpts.plain {
		fmt.Fprintln(cmd.OutOrStdout(), canvas.Plain())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), canvas.String())
	}
	return nil
}

// previewCanvas shows message on a width x height screen and draws the
// result once the bar is in its shown position.
func previewCanvas(c *config.Config, message string, preset style.Preset, width, height int, buttons bool) (*render.Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", width, height)
	}

	st, err := c.Style(nil)
	if err != nil {
		return nil, err
	}
	if buttons && st.LeftButton == nil {
		st.LeftButton = &button.Style{AccessibilityLabel: "Reload", Icon: button.IconReload, TintColor: st.Label.Color}
		st.RightButton = &button.Style{AccessibilityLabel: "Close", Icon: button.IconClose, TintColor: st.Label.Color}
	}

	screen := view.New("screen")
	screen.SetFrame(view.NewRect(0, 0, width, height))

	n := notifier.New(screen, notifier.Options{Style: st, Logger: logger})
	if err := n.ShowPreset(message, preset); err != nil {
		return nil, err
	}
	return render.Canvasize(screen), nil
}
