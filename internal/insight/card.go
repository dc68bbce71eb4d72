package insight

import "context"

// ReadMarker acknowledges an insight id against the backend. Satisfied by
// the API client.
type ReadMarker interface {
	MarkInsightRead(ctx context.Context, id string) error
}

// MarkResult is the explicit outcome of a mark-read attempt. The
// presentation layer is free to ignore Err — the decision to swallow the
// failure stays visible at the call site instead of inside this package.
type MarkResult struct {
	// Read is true once the insight is acknowledged, whether by this
	// attempt or a previous one.
	Read bool
	Err  error
}

// Card is the per-insight presentation state machine: collapsed/expanded
// toggles freely and locally; unread→read is one-way and goes through the
// backend. Not safe for concurrent use — all transitions belong on the UI
// event loop.
type Card struct {
	Insight  Insight
	Expanded bool

	marking bool
}

// NewCard starts collapsed.
func NewCard(in Insight) *Card {
	return &Card{Insight: in}
}

// Toggle flips the expanded state. No network.
func (c *Card) Toggle() {
	c.Expanded = !c.Expanded
}

// Marking reports whether an acknowledgement is in flight; the UI
// disables the action control while it is.
func (c *Card) Marking() bool {
	return c.marking
}

// StartMark begins a mark-read attempt. It returns false — and the
// caller must not issue the network call — while a previous attempt is
// in flight or the insight is already read. This is the
// debounce-by-disable guard: a second trigger during flight is a no-op,
// not a queued retry.
func (c *Card) StartMark() bool {
	if c.marking || c.Insight.IsRead {
		return false
	}
	c.marking = true
	return true
}

// FinishMark records the outcome of the attempt started by StartMark. On
// success the insight becomes read and onRead fires so the owning list
// can refresh or reorder. On failure the card stays unread and re-enables
// the action.
func (c *Card) FinishMark(err error, onRead func()) MarkResult {
	c.marking = false
	if err != nil {
		return MarkResult{Read: false, Err: err}
	}
	c.Insight.IsRead = true
	if onRead != nil {
		onRead()
	}
	return MarkResult{Read: true}
}

// MarkRead runs the full attempt synchronously: guard, acknowledge,
// record. Used by the CLI path; the TUI splits the halves around a
// command so the guard takes effect while the call is in flight.
func (c *Card) MarkRead(ctx context.Context, rm ReadMarker, onRead func()) MarkResult {
	if !c.StartMark() {
		return MarkResult{Read: c.Insight.IsRead}
	}
	return c.FinishMark(rm.MarkInsightRead(ctx, c.Insight.ID), onRead)
}
