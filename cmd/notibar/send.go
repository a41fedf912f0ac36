package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notibar/internal/dbus"
	"github.com/jmylchreest/notibar/internal/style"
)

var sendOpts struct {
	preset  string
	wait    bool
	timeout time.Duration
}

var sendCmd = &cobra.Command{
	Use:   "send MESSAGE",
	Short: "Show a bar in a running notibar",
	Long: `Ask a running notibar demo to show MESSAGE over D-Bus.

With --wait the command blocks until the bar has been hidden again and
prints its history id.

Examples:
  notibar send "Deploy started"
  notibar send "Deploy failed" --preset error --wait`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the bar in a running notibar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dbus.Connect()
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return client.Hide(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(sendCmd, hideCmd)

	sendCmd.Flags().StringVarP(&sendOpts.preset, "preset", "p", "",
		fmt.Sprintf("Preset %v", style.ValidPresets()))
	sendCmd.Flags().BoolVarP(&sendOpts.wait, "wait", "w", false,
		"Wait until the bar is hidden")
	sendCmd.Flags().DurationVar(&sendOpts.timeout, "timeout", 0,
		"Give up waiting after this long (0 = no limit)")
}

func runSend(cmd *cobra.Command, args []string) error {
	preset, err := style.ParsePreset(sendOpts.preset)
	if err != nil {
		return err
	}

	client, err := dbus.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := cmd.Context()
	message := strings.Join(args, " ")

	if !sendOpts.wait {
		return client.Show(ctx, message, preset)
	}

	// Subscribe before showing so the Shown signal cannot be missed.
	signals, err := client.Subscribe()
	if err != nil {
		return err
	}
	if err := client.Show(ctx, message, preset); err != nil {
		return err
	}

	if sendOpts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sendOpts.timeout)
		defer cancel()
	}
	id, err := client.WaitShownHidden(ctx, signals)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
