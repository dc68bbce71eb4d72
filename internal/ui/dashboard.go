// Package ui is the bubbletea dashboard: one week of activity, the stat
// cards, and the insight list, navigated entirely from the keyboard.
//
// Every fetch command carries the sequence number it was issued under.
// A response whose sequence is not the latest belongs to a window the
// user has already navigated away from and is dropped on arrival, so
// rapid week changes can never paint stale data.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/planbrew/planbrew/internal/activity"
	"github.com/planbrew/planbrew/internal/api"
	"github.com/planbrew/planbrew/internal/export"
	"github.com/planbrew/planbrew/internal/insight"
	"github.com/planbrew/planbrew/internal/week"
)

const (
	feedLimit    = 100
	fetchTimeout = 30 * time.Second
)

// Gateway is the slice of the API client the dashboard needs.
type Gateway interface {
	ActivityFeed(ctx context.Context, projectID string, r week.Range, limit int) (*activity.Feed, error)
	Insights(ctx context.Context, projectID string) ([]insight.Insight, error)
	MarkInsightRead(ctx context.Context, id string) error
}

// Model is the dashboard state. All mutation happens on the update loop.
type Model struct {
	gateway   Gateway
	session   *api.Session
	logger    *zap.Logger
	projectID string
	exportDir string
	now       func() time.Time

	// Window navigation. offset 0 is the current week; it never goes
	// positive.
	offset int
	window week.Range

	// Request fencing.
	feedSeq    uint64
	insightSeq uint64

	loading bool
	loadErr error
	expired bool

	feed      *activity.Feed
	filter    activity.Filter
	filterIdx int
	search    textinput.Model
	searching bool

	cards  []*insight.Card
	cursor int

	status   string
	spinner  spinner.Model
	width    int
	quitting bool
}

// Options configures a dashboard.
type Options struct {
	Gateway   Gateway
	Session   *api.Session
	Logger    *zap.Logger
	ProjectID string
	ExportDir string

	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewModel creates a dashboard anchored on the current week.
func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	search := textinput.New()
	search.Placeholder = "search activity"
	search.CharLimit = 120
	search.Width = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = chartStyle

	return Model{
		gateway:   opts.Gateway,
		session:   opts.Session,
		logger:    opts.Logger,
		projectID: opts.ProjectID,
		exportDir: opts.ExportDir,
		now:       opts.Now,
		window:    week.Containing(opts.Now()),
		filter:    activity.Filter{Type: activity.TypeAll},
		search:    search,
		spinner:   sp,
		loading:   true,
	}
}

// Message types.
type feedMsg struct {
	seq  uint64
	feed *activity.Feed
}

type feedErrMsg struct {
	seq uint64
	err error
}

type insightsMsg struct {
	seq      uint64
	insights []insight.Insight
}

type insightsErrMsg struct {
	seq uint64
	err error
}

type markedMsg struct {
	id  string
	err error
}

type exportedMsg struct {
	path string
	err  error
}

func fetchFeed(g Gateway, projectID string, r week.Range, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		feed, err := g.ActivityFeed(ctx, projectID, r, feedLimit)
		if err != nil {
			return feedErrMsg{seq: seq, err: err}
		}
		return feedMsg{seq: seq, feed: feed}
	}
}

func fetchInsights(g Gateway, projectID string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		insights, err := g.Insights(ctx, projectID)
		if err != nil {
			return insightsErrMsg{seq: seq, err: err}
		}
		return insightsMsg{seq: seq, insights: insights}
	}
}

func markRead(g Gateway, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return markedMsg{id: id, err: g.MarkInsightRead(ctx, id)}
	}
}

func exportItems(items []activity.Item, f export.Format, dir string) tea.Cmd {
	return func() tea.Msg {
		content, err := export.Encode(items, f, time.Local)
		if err != nil {
			return exportedMsg{err: err}
		}
		path, err := export.Save(dir, f, content)
		return exportedMsg{path: path, err: err}
	}
}

// Init kicks off the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchFeed(m.gateway, m.projectID, m.window, m.feedSeq),
		fetchInsights(m.gateway, m.projectID, m.insightSeq),
	)
}

// refetch moves to the window at m.offset and issues a freshly fenced
// fetch, discarding whatever was in flight.
func (m *Model) refetch() tea.Cmd {
	m.window = week.ForOffset(m.now(), m.offset)
	m.feedSeq++
	m.loading = true
	m.loadErr = nil
	m.status = ""
	return tea.Batch(
		m.spinner.Tick,
		fetchFeed(m.gateway, m.projectID, m.window, m.feedSeq),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case feedMsg:
		if msg.seq != m.feedSeq {
			// Stale window; a newer fetch is in flight or already landed.
			return m, nil
		}
		m.feed = msg.feed
		m.loading = false
		m.loadErr = nil
		return m, nil

	case feedErrMsg:
		if msg.seq != m.feedSeq {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		if api.IsAuthError(msg.err) {
			return m.expire(), nil
		}
		return m, nil

	case insightsMsg:
		if msg.seq != m.insightSeq {
			return m, nil
		}
		cards := make([]*insight.Card, len(msg.insights))
		for i, in := range msg.insights {
			cards[i] = insight.NewCard(in)
		}
		m.cards = cards
		if m.cursor >= len(cards) {
			m.cursor = 0
		}
		return m, nil

	case insightsErrMsg:
		if msg.seq != m.insightSeq {
			return m, nil
		}
		if api.IsAuthError(msg.err) {
			return m.expire(), nil
		}
		// The insight panel just stays empty; the feed is the main event.
		m.logger.Warn("failed to load insights", zap.Error(msg.err))
		return m, nil

	case markedMsg:
		card := m.cardByID(msg.id)
		if card == nil {
			return m, nil
		}
		res := card.FinishMark(msg.err, nil)
		if res.Err != nil {
			// Silent per product behavior: the card re-enables, no banner.
			m.logger.Warn("failed to mark insight read",
				zap.String("insight_id", msg.id), zap.Error(res.Err))
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("export failed: " + msg.err.Error())
		} else {
			m.status = dimStyle.Render("exported to ") + valueStyle.Render(msg.path)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.filter.Query = ""
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.filter.Query = m.search.Value()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left", "h":
		m.offset--
		return m, m.refetch()

	case "right", "l":
		if m.offset >= 0 {
			// Already on the current week; the future has no data.
			return m, nil
		}
		m.offset++
		return m, m.refetch()

	case "r":
		m.insightSeq++
		return m, tea.Batch(m.refetch(), fetchInsights(m.gateway, m.projectID, m.insightSeq))

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "f":
		m.filterIdx = (m.filterIdx + 1) % len(activity.FilterTypes)
		m.filter.Type = activity.FilterTypes[m.filterIdx]
		return m, nil

	case "down", "j":
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter":
		if card := m.currentCard(); card != nil {
			card.Toggle()
		}
		return m, nil

	case "m":
		card := m.currentCard()
		if card == nil || !card.StartMark() {
			// In flight or already read; the guard makes this a no-op.
			return m, nil
		}
		return m, markRead(m.gateway, card.Insight.ID)

	case "e":
		return m, exportItems(m.visibleItems(), export.FormatCSV, m.exportDir)

	case "E":
		return m, exportItems(m.visibleItems(), export.FormatJSON, m.exportDir)
	}

	return m, nil
}

// expire drops the stored token and flips the model into the signed-out
// terminal state. Silent on purpose: the next launch starts fresh.
func (m Model) expire() Model {
	m.expired = true
	m.loading = false
	if m.session != nil {
		if err := m.session.Clear(); err != nil {
			m.logger.Warn("failed to clear session", zap.Error(err))
		}
	}
	return m
}

func (m Model) currentCard() *insight.Card {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return nil
	}
	return m.cards[m.cursor]
}

func (m Model) cardByID(id string) *insight.Card {
	for _, c := range m.cards {
		if c.Insight.ID == id {
			return c
		}
	}
	return nil
}

// visibleItems is the feed with the current filter applied — the export
// target, so what you see is what you save.
func (m Model) visibleItems() []activity.Item {
	if m.feed == nil {
		return nil
	}
	return m.filter.Apply(m.feed.Activities)
}
