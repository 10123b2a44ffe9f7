// Package session owns "what is the user currently looking at": the
// selected note, search mode, the active result set, and the viewer pane
// on single-pane layouts, reconciled against the locator route.
package session

import (
	"net/url"

	"go.uber.org/zap"

	"github.com/mnemonic-notes/mnemo/internal/api"
)

// Route is the base route the locator encodes selection under, as
// "notes?note=<id>".
const Route = "notes"

const noteParam = "note"

// Controller is the single source of truth for selection and search-mode
// state. It has exactly one writer (the active view); only the locator
// crosses goroutines, and it guards itself.
//
// Every path that selects a note, whether a list click, a voice
// auto-select, or an answer citation click, must go through SelectNote.
type Controller struct {
	loc    Locator
	logger *zap.Logger

	selected   string
	viewerOpen bool
	searchMode bool
	queryText  string
	results    []api.RetrievedNote
}

func NewController(loc Locator, logger *zap.Logger) *Controller {
	c := &Controller{loc: loc, logger: logger}
	c.AbsorbLocator()
	return c
}

// SelectNote selects a note, opens the viewer pane, and publishes the
// selection to the locator. Calling it twice with the same id is a no-op
// on the locator side; the route is only written when it differs.
func (c *Controller) SelectNote(id string) {
	c.selected = id
	c.viewerOpen = id != ""
	c.writeLocator(id)
}

// ApplySearchResults replaces the active result set. Search mode is on
// whenever results are non-empty or the query text is non-empty. Empty
// results clear the selection so no stale note lingers outside the visible
// list; non-empty results leave selection alone even when the selected id
// is not among them (the viewer renders an empty state for that).
func (c *Controller) ApplySearchResults(results []api.RetrievedNote, queryText string) {
	c.results = results
	c.queryText = queryText
	c.searchMode = len(results) > 0 || queryText != ""

	if len(results) == 0 {
		c.selected = ""
		c.writeLocator("")
	}
}

// ApplyVoiceResult auto-selects the top result of a voice query. Voice
// search implies intent to see the best answer immediately, unlike text
// search which waits for a manual click.
func (c *Controller) ApplyVoiceResult(firstID string) {
	if firstID == "" {
		return
	}
	c.SelectNote(firstID)
}

// GoBack is single-pane back navigation: it deselects, it does not merely
// hide the viewer.
func (c *Controller) GoBack() {
	c.viewerOpen = false
	c.selected = ""
	c.writeLocator("")
}

// AbsorbLocator pulls an externally driven route change (startup restore,
// history navigation) into state without writing the route back, which
// would loop.
func (c *Controller) AbsorbLocator() {
	id := parseNoteParam(c.loc.Current())
	if id == c.selected {
		return
	}
	c.selected = id
	c.viewerOpen = id != ""
}

func (c *Controller) Selected() string             { return c.selected }
func (c *Controller) ViewerOpen() bool             { return c.viewerOpen }
func (c *Controller) SearchMode() bool             { return c.searchMode }
func (c *Controller) QueryText() string            { return c.queryText }
func (c *Controller) Results() []api.RetrievedNote { return c.results }

// Result looks up a note in the active result set by id.
func (c *Controller) Result(id string) (api.RetrievedNote, bool) {
	for _, n := range c.results {
		if n.ID == id {
			return n, true
		}
	}
	return api.RetrievedNote{}, false
}

// ClearSearch leaves search mode and restores the full note list. This is
// an explicit user action, so the selection survives; only a new search
// producing nothing clears it.
func (c *Controller) ClearSearch() {
	c.results = nil
	c.queryText = ""
	c.searchMode = false
}

// writeLocator publishes selection into the route, preserving any other
// route parameters, and only navigates when the route actually changes so
// repeated selects do not pile up history.
func (c *Controller) writeLocator(id string) {
	next := encodeNoteParam(c.loc.Current(), id)
	if cur := c.loc.Current(); cur != next {
		c.loc.Navigate(next)
	}
}

func parseNoteParam(route string) string {
	u, err := url.Parse(route)
	if err != nil {
		return ""
	}
	return u.Query().Get(noteParam)
}

func encodeNoteParam(route, id string) string {
	u, err := url.Parse(route)
	if err != nil {
		u = &url.URL{Path: Route}
	}
	if u.Path == "" {
		u.Path = Route
	}

	q := u.Query()
	if id != "" {
		q.Set(noteParam, id)
	} else {
		q.Del(noteParam)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
