package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planbrew/planbrew/internal/activity"
	"github.com/planbrew/planbrew/internal/export"
	"github.com/planbrew/planbrew/internal/setup"
	"github.com/planbrew/planbrew/internal/week"
)

var (
	exportFormat string
	exportType   string
	exportSearch string
	exportWeek   int
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a week of activity to CSV or JSON",
	Long: `Export one week of activity without opening the dashboard.

Examples:
  # This week as CSV into the current directory
  planbrew export

  # Last week's completions as JSON
  planbrew export --week -1 --type completion --format json

  # Only items mentioning auth
  planbrew export --search auth --out ~/reports`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	exportCmd.Flags().StringVar(&exportType, "type", "all", "event type filter: all, completion, session, update, blocker")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "free-text filter over summaries, feature areas, and file paths")
	exportCmd.Flags().IntVar(&exportWeek, "week", 0, "week offset: 0 is this week, -1 last week")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	format := export.Format(exportFormat)
	if !format.Valid() {
		return fmt.Errorf("unknown format %q: want csv or json", exportFormat)
	}
	if exportWeek > 0 {
		return fmt.Errorf("week offset must be 0 or negative, got %d", exportWeek)
	}

	if err := a.requireSignIn(); err != nil {
		return err
	}

	project, err := setup.EnsureProject(cmd.Context(), a.client)
	if err != nil {
		return err
	}

	window := week.ForOffset(time.Now(), exportWeek)
	feed, err := a.client.ActivityFeed(cmd.Context(), project.ProjectID, window, 100)
	if err != nil {
		return err
	}

	filter := activity.Filter{Type: activity.Type(exportType), Query: exportSearch}
	items := filter.Apply(feed.Activities)

	content, err := export.Encode(items, format, time.Local)
	if err != nil {
		return err
	}

	dir := exportOut
	if dir == "" {
		dir = a.cfg.Export.Dir
	}
	path, err := export.Save(dir, format, content)
	if err != nil {
		return err
	}

	a.logger.Info("exported activity",
		zap.String("path", path),
		zap.String("week", window.Label()),
		zap.Int("items", len(items)))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items (%s) to %s\n", len(items), window.Label(), path)
	return nil
}
