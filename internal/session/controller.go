// Package session owns the paginated browsing state for one run of the app.
//
// # Lifecycle
//
//	Idle ──BeginInitial──> InitialLoad ──Complete──> Ready
//	                                                   │ ▲
//	                                     BeginLoadMore │ │ Complete
//	                                                   ▼ │
//	                                               LoadingMore
//
// The Controller does no I/O. Begin* hands out a Request describing the page
// to fetch; the caller performs the fetch and passes the outcome to Complete.
// This keeps every state transition on the caller's event loop.
//
// # Generations
//
// Every Request carries a generation number. Complete discards any result
// whose generation is not the latest one issued, so a slow response can never
// overwrite state produced by a later transition.
package session

import (
	"errors"
	"slices"
	"sync"

	"github.com/abelbrown/bestiary/internal/catalog"
	"github.com/abelbrown/bestiary/internal/filter"
	"github.com/abelbrown/bestiary/internal/logging"
)

// ErrNoFirstPage is returned by New when the config has no first page.
var ErrNoFirstPage = errors.New("session: first page reference is required")

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitialLoad
	PhaseReady
	PhaseLoadingMore
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitialLoad:
		return "initial-load"
	case PhaseReady:
		return "ready"
	case PhaseLoadingMore:
		return "loading-more"
	default:
		return "unknown"
	}
}

// Kind tells Complete how to apply a page.
type Kind int

const (
	KindInitial Kind = iota
	KindMore
)

// Request is a page fetch handed out by BeginInitial or BeginLoadMore.
type Request struct {
	Kind       Kind
	Ref        string
	Generation uint64
}

// Config is the explicit per-session configuration.
type Config struct {
	FirstPage string // listing URL of the first page
}

// Snapshot is a consistent view of the controller state.
// Items shares storage with the controller and must not be modified.
type Snapshot struct {
	Phase      Phase
	Items      []catalog.Item
	Cursor     string
	Total      int
	TotalKnown bool
	Version    uint64 // bumped whenever Items changes
	Err        error  // last fetch error; cleared by the next success
}

// Loading reports whether the first page has not resolved yet.
func (s Snapshot) Loading() bool {
	return s.Phase == PhaseIdle || s.Phase == PhaseInitialLoad
}

// LoadingMore reports whether a next-page fetch is in flight.
func (s Snapshot) LoadingMore() bool {
	return s.Phase == PhaseLoadingMore
}

// CanLoadMore reports whether the load-more action is actionable under f.
func (s Snapshot) CanLoadMore(f filter.State) bool {
	if s.Phase != PhaseReady || s.Cursor == "" || f.Active() {
		return false
	}
	return !s.TotalKnown || len(s.Items) < s.Total
}

// Controller sequences page fetches and accumulates their items.
// Goroutine-safe, although a single event loop is expected to drive it.
type Controller struct {
	mu         sync.Mutex
	firstPage  string
	phase      Phase
	items      []catalog.Item
	cursor     string
	total      int
	totalKnown bool
	generation uint64
	version    uint64
	err        error
}

// New creates a Controller in the Idle phase.
func New(cfg Config) (*Controller, error) {
	if cfg.FirstPage == "" {
		return nil, ErrNoFirstPage
	}
	return &Controller{
		firstPage: cfg.FirstPage,
		cursor:    cfg.FirstPage,
	}, nil
}

// BeginInitial moves Idle to InitialLoad. It returns false in any other phase:
// the initial load happens once per session.
func (c *Controller) BeginInitial() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return Request{}, false
	}
	c.phase = PhaseInitialLoad
	c.generation++
	return Request{Kind: KindInitial, Ref: c.firstPage, Generation: c.generation}, true
}

// BeginLoadMore moves Ready to LoadingMore when the load-more action is
// actionable under f. At most one load-more is in flight at a time.
func (c *Controller) BeginLoadMore(f filter.State) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.snapshotLocked().CanLoadMore(f) {
		return Request{}, false
	}
	c.phase = PhaseLoadingMore
	c.generation++
	return Request{Kind: KindMore, Ref: c.cursor, Generation: c.generation}, true
}

// Complete applies the outcome of req and returns the controller to Ready.
// Stale or unexpected requests are ignored and Complete returns false.
//
// A failed initial load leaves an empty list; a failed load-more leaves the
// list and cursor untouched so the action can be retried.
func (c *Controller) Complete(req Request, page catalog.Page, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Generation != c.generation {
		logging.Debug("session: discarding stale page", "generation", req.Generation, "current", c.generation)
		return false
	}

	switch {
	case req.Kind == KindInitial && c.phase == PhaseInitialLoad:
		if err != nil {
			logging.Error("Failed to fetch first page", "ref", req.Ref, "err", err)
			c.err = err
			c.items = nil
		} else {
			c.err = nil
			c.items = slices.Clone(page.Items)
			c.cursor = page.Next
			c.total = page.Total
			c.totalKnown = true
		}
		c.version++

	case req.Kind == KindMore && c.phase == PhaseLoadingMore:
		if err != nil {
			logging.Error("Failed to load more", "ref", req.Ref, "err", err)
			c.err = err
		} else {
			c.err = nil
			c.items = append(c.items, page.Items...)
			c.cursor = page.Next
			c.total = page.Total
			c.totalKnown = true
			c.version++
		}

	default:
		return false
	}

	c.phase = PhaseReady
	return true
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:      c.phase,
		Items:      slices.Clip(c.items),
		Cursor:     c.cursor,
		Total:      c.total,
		TotalKnown: c.totalKnown,
		Version:    c.version,
		Err:        c.err,
	}
}

// Items returns the accumulated items in load order.
func (c *Controller) Items() []catalog.Item { return c.Snapshot().Items }

// Cursor returns the next page reference, or "" when exhausted.
func (c *Controller) Cursor() string { return c.Snapshot().Cursor }

// Total returns the catalog size, and false until the first page arrives.
func (c *Controller) Total() (int, bool) {
	s := c.Snapshot()
	return s.Total, s.TotalKnown
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase { return c.Snapshot().Phase }

// Loading reports whether the first page has not resolved yet.
func (c *Controller) Loading() bool { return c.Snapshot().Loading() }

// LoadingMore reports whether a next-page fetch is in flight.
func (c *Controller) LoadingMore() bool { return c.Snapshot().LoadingMore() }

// CanLoadMore reports whether BeginLoadMore would succeed under f.
func (c *Controller) CanLoadMore(f filter.State) bool { return c.Snapshot().CanLoadMore(f) }

// Err returns the last fetch error, if the last fetch failed.
func (c *Controller) Err() error { return c.Snapshot().Err }
