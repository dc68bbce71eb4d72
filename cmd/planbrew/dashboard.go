package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/planbrew/planbrew/internal/setup"
	"github.com/planbrew/planbrew/internal/ui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the weekly activity dashboard",
	Long: `Open the interactive dashboard: this week's activity feed, stat
cards, and insights. Navigate weeks with the arrow keys, filter with
'f' and '/', export the visible list with 'e' (CSV) or 'E' (JSON).`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireSignIn(); err != nil {
		return err
	}

	project, err := setup.EnsureProject(cmd.Context(), a.client)
	if err != nil {
		return err
	}
	if project.Created {
		fmt.Fprintln(cmd.OutOrStdout(), "Created project 'My Project' with a fresh API key.")
	}

	model := ui.NewModel(ui.Options{
		Gateway:   a.client,
		Session:   a.session,
		Logger:    a.logger,
		ProjectID: project.ProjectID,
		ExportDir: a.cfg.Export.Dir,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
