package ui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"

	"github.com/planbrew/planbrew/internal/activity"
	"github.com/planbrew/planbrew/internal/insight"
	"github.com/planbrew/planbrew/internal/stats"
)

const (
	chartWidth  = 28
	chartHeight = 6
	maxFeedRows = 12
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.expired {
		return containerStyle.Render(
			headerStyle.Render(" PlanBrew ") + "\n\n" +
				errorStyle.Render("Session expired") + "\n" +
				dimStyle.Render("Run 'planbrew login' to sign in again."))
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(" PlanBrew "))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(m.window.Label()))
	if m.offset == 0 {
		b.WriteString(dimStyle.Render("  (this week)"))
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("\n" + m.spinner.View() + dimStyle.Render(" loading activity…") + "\n")
	case m.loadErr != nil:
		b.WriteString("\n" + errorStyle.Render(m.loadErr.Error()) + "\n")
		b.WriteString(dimStyle.Render("Press ") + footerKeyStyle.Render("r") + dimStyle.Render(" to retry.") + "\n")
	case m.feed != nil:
		m.renderFeed(&b)
	}

	m.renderInsights(&b)

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + m.footer())

	return containerStyle.Render(b.String())
}

func (m Model) renderFeed(b *strings.Builder) {
	b.WriteString("\n" + sectionStyle.Render("┃ This Week") + "\n")
	for _, card := range stats.Cards(m.feed.Stats, m.now().Location()) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-13s", card.Label)))
		b.WriteString(valueStyle.Render(card.Value))
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.renderChart() + "\n")

	b.WriteString(sectionStyle.Render("┃ Activity") + "\n")
	if m.searching || m.filter.Query != "" {
		b.WriteString("  " + m.search.View() + "\n")
	}
	b.WriteString(labelStyle.Render("  Filter: ") + valueStyle.Render(m.filter.Type.Label()) + "\n")

	items := m.visibleItems()
	if len(items) == 0 {
		if m.filter.IsZero() {
			b.WriteString(dimStyle.Render("  No activity this week. Progress logged by your coding tool shows up here.") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  Nothing matches the current filter.") + "\n")
		}
		return
	}

	shown := items
	if len(shown) > maxFeedRows {
		shown = shown[:maxFeedRows]
	}
	for _, it := range shown {
		b.WriteString(m.renderItem(it))
	}
	if len(items) > len(shown) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(items)-len(shown))) + "\n")
	}
}

func (m Model) renderItem(it activity.Item) string {
	marker := infoStyle.Render("●")
	switch it.Type {
	case activity.TypeCompletion:
		marker = chartStyle.Render("✔")
	case activity.TypeBlocker:
		marker = severityStyle(it.Severity).Render("✗")
	case activity.TypeSession:
		marker = dimStyle.Render("◆")
	}

	line := fmt.Sprintf("  %s %s %s",
		marker,
		valueStyle.Render(it.Summary),
		dimStyle.Render(activity.RelativeTime(it.CreatedAt, m.now())))
	if it.FeatureArea != "" {
		line += " " + labelStyle.Render("["+it.FeatureArea+"]")
	}
	return line + "\n"
}

// renderChart draws the per-type counts as a bar chart.
func (m Model) renderChart() string {
	s := m.feed.Stats
	if s.TotalUpdates+s.Completions+s.Sessions+s.Blockers == 0 {
		return dimStyle.Render("  no activity to chart")
	}

	bc := barchart.New(chartWidth, chartHeight)
	push := func(label string, v int) {
		bc.Push(barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: label, Value: float64(v), Style: chartStyle}},
		})
	}
	push("Upd", s.TotalUpdates)
	push("Done", s.Completions)
	push("Sess", s.Sessions)
	push("Blk", s.Blockers)
	bc.Draw()
	return bc.View()
}

func (m Model) renderInsights(b *strings.Builder) {
	if len(m.cards) == 0 {
		return
	}
	b.WriteString("\n" + sectionStyle.Render("┃ Insights") + "\n")
	for i, card := range m.cards {
		b.WriteString(m.renderCard(card, i == m.cursor))
	}
}

func (m Model) renderCard(card *insight.Card, selected bool) string {
	badge := severityStyle(string(card.Insight.Severity)).Render("[" + string(card.Insight.Severity) + "]")
	title := card.Insight.Title
	if selected {
		title = selectedStyle.Render(title)
	} else if !card.Insight.IsRead {
		title = unreadStyle.Render(title)
	} else {
		title = dimStyle.Render(title)
	}

	state := ""
	switch {
	case card.Marking():
		state = dimStyle.Render(" marking…")
	case !card.Insight.IsRead:
		state = unreadStyle.Render(" •")
	}

	out := fmt.Sprintf("  %s %s%s %s\n",
		badge, title, state,
		dimStyle.Render(activity.RelativeTime(card.Insight.CreatedAt, m.now())))

	if !card.Expanded {
		return out
	}

	if card.Insight.Summary != "" {
		out += "    " + labelStyle.Render(card.Insight.Summary) + "\n"
	}
	if card.Insight.Details.ProgressSummary != "" {
		out += "    " + dimStyle.Render(card.Insight.Details.ProgressSummary) + "\n"
	}
	for _, section := range insight.Sections(card.Insight.Details) {
		out += "    " + sectionStyle.Render(section.Label) + "\n"
		for _, item := range section.Items {
			out += "      " + dimStyle.Render("– "+item) + "\n"
		}
	}
	return out
}

func (m Model) footer() string {
	key := func(k, desc string) string {
		return footerKeyStyle.Render("["+k+"]") + footerStyle.Render(" "+desc+"  ")
	}
	return key("←/→", "week") +
		key("/", "search") +
		key("f", "filter") +
		key("↑/↓", "insights") +
		key("enter", "expand") +
		key("m", "mark read") +
		key("e/E", "export csv/json") +
		key("r", "refresh") +
		key("q", "quit")
}
