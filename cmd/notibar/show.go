package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notibar/internal/config"
	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/telemetry"
	"github.com/jmylchreest/notibar/internal/tui"
)

var showOpts struct {
	preset string
	top    bool
	hold   bool
}

var showCmd = &cobra.Command{
	Use:   "show MESSAGE",
	Short: "Show one bar and exit when it hides",
	Long: `Show a single bar in the terminal and exit once it has hidden.

The bar hides after the configured delay, when tapped, or when h is pressed.
With --hold it stays until tapped or dismissed.

Examples:
  notibar show "Build finished" --preset success
  notibar show "Disk almost full" --preset warning --top --hold`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOpts.preset, "preset", "p", "",
		fmt.Sprintf("Preset %v", style.ValidPresets()))
	showCmd.Flags().BoolVar(&showOpts.top, "top", false,
		"Show the bar at the top")
	showCmd.Flags().BoolVar(&showOpts.hold, "hold", false,
		"Keep the bar until it is dismissed")
}

func runShow(cmd *cobra.Command, args []string) error {
	preset, err := style.ParsePreset(showOpts.preset)
	if err != nil {
		return err
	}

	c := *cfg
	if showOpts.top {
		c.Bar.Location = config.LocationTop
	}
	if showOpts.hold {
		c.Bar.HideAfter = 0
		c.Bar.HideOnTap = true
	}

	closeLog, err := logToFile()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	tp, err := telemetry.Setup(ctx, "notibar")
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	return tui.Run(ctx, tui.RunOptions{
		Config:  &c,
		Logger:  logger,
		Tracer:  tp.Tracer(),
		OneShot: true,
		Message: strings.Join(args, " "),
		Preset:  preset,
	})
}
