package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/notibar/internal/config"
	"github.com/jmylchreest/notibar/internal/dbus"
	"github.com/jmylchreest/notibar/internal/history"
)

var historyOpts struct {
	format string
	local  bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List messages that have been shown",
	Long: `List the messages shown by notibar.

By default the running demo is asked over D-Bus. With --local the persisted
history file is read instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := loadHistory(cmd)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, e := range entries {
			state := "visible"
			if !e.Visible() {
				state = e.Duration().Round(time.Millisecond).String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-8s %-8s %s\n",
				e.RelativeTime(now), e.Preset, state, e.Message)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No messages")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s messages\n", humanize.Comma(int64(len(entries))))
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as JSON or YAML",
	Long: `Export the history to stdout.

Examples:
  notibar history export
  notibar history export --format yaml --local`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := history.Format(historyOpts.format)
		if format != history.FormatJSON && format != history.FormatYAML {
			return fmt.Errorf("invalid format %q, must be %q or %q", historyOpts.format, history.FormatJSON, history.FormatYAML)
		}
		entries, err := loadHistory(cmd)
		if err != nil {
			return err
		}
		return history.Export(cmd.OutOrStdout(), entries, format)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyExportCmd)

	historyCmd.PersistentFlags().BoolVar(&historyOpts.local, "local", false,
		"Read the persisted history file instead of asking over D-Bus")
	historyExportCmd.Flags().StringVarP(&historyOpts.format, "format", "f", string(history.FormatJSON),
		"Output format: json, yaml")
}

func loadHistory(cmd *cobra.Command) ([]history.Entry, error) {
	if historyOpts.local {
		return readHistoryFile(config.HistoryPath(), cfg.History.Limit)
	}

	client, err := dbus.Connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()
	return client.History(cmd.Context())
}

// readHistoryFile loads the persisted history at path without creating it.
func readHistoryFile(path string, limit int) ([]history.Entry, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	persistence, err := history.NewJSONLPersistence(path)
	if err != nil {
		return nil, err
	}
	store := history.NewStore(limit, persistence)
	defer func() { _ = store.Close() }()

	if err := store.Hydrate(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return store.All(), nil
}
