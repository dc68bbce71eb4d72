package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/planbrew/planbrew/internal/activity"
	"github.com/planbrew/planbrew/internal/insight"
	"github.com/planbrew/planbrew/internal/setup"
)

var insightsUnreadOnly bool

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "List backend-generated insights",
	Args:  cobra.NoArgs,
	RunE:  runInsights,
}

var insightsReadCmd = &cobra.Command{
	Use:   "read <insight-id>",
	Short: "Mark an insight as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsightsRead,
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsUnreadOnly, "unread", false, "only show unread insights")
	insightsCmd.AddCommand(insightsReadCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
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

	insights, err := a.client.Insights(cmd.Context(), project.ProjectID)
	if err != nil {
		return err
	}

	shown := 0
	now := time.Now()
	for _, in := range insights {
		if insightsUnreadOnly && in.IsRead {
			continue
		}
		shown++
		marker := " "
		if !in.IsRead {
			marker = "•"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s  %s  (%s)\n",
			marker, in.Severity, in.Title, activity.RelativeTime(in.CreatedAt, now), in.ID)
		if in.Summary != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", in.Summary)
		}
		for _, section := range insight.Sections(in.Details) {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s:\n", section.Label)
			for _, item := range section.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "      - %s\n", item)
			}
		}
	}
	if shown == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No insights.")
	}
	return nil
}

func runInsightsRead(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireSignIn(); err != nil {
		return err
	}

	card := insight.NewCard(insight.Insight{ID: args[0]})
	res := card.MarkRead(cmd.Context(), a.client, nil)
	if res.Err != nil {
		return res.Err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Marked read.")
	return nil
}
