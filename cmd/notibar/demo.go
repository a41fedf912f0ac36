package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/notibar/internal/telemetry"
	"github.com/jmylchreest/notibar/internal/tui"
)

var demoOpts struct {
	mirror bool
	noDBus bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive demo",
	Long: `Launch the interactive demo. Bars are drawn over a list of the messages
shown so far.

Key bindings:
  n           Show a message
  i/s/w/e     Show an info, success, warning or error message
  h           Hide the bar
  space       Tap the bar
  1/2         Tap the left/right button
  b           Toggle buttons
  t           Toggle top/bottom placement
  g           Toggle the layout guide
  d           Toggle debug colours
  ?           Show help
  q           Quit

While the demo runs it serves "notibar send" and "notibar hide" over D-Bus.
With --mirror, desktop notifications are shown as bars too.

Logs are written to ~/.local/state/notibar/notibar.log.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoOpts.mirror, "mirror", false,
		"Show desktop notifications as bars")
	demoCmd.Flags().BoolVar(&demoOpts.noDBus, "no-dbus", false,
		"Do not serve the D-Bus interface")
}

func runDemo(cmd *cobra.Command, args []string) error {
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
		Config:     cfg,
		ConfigPath: configPath(),
		Logger:     logger,
		Tracer:     tp.Tracer(),
		DBus:       cfg.DBus.Enabled && !demoOpts.noDBus,
		Mirror:     demoOpts.mirror,
	})
}
