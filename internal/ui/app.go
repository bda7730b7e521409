package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/abelbrown/bestiary/internal/catalog"
	"github.com/abelbrown/bestiary/internal/filter"
	"github.com/abelbrown/bestiary/internal/otel"
	"github.com/abelbrown/bestiary/internal/session"
)

const (
	// DefaultPlaceholders is the number of skeleton cards shown while the
	// first page loads.
	DefaultPlaceholders = 20

	emptyMessage = "No creatures match the filters."

	// header, filter bar, message line, status bar
	chromeLines = 4
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modePicker
)

// AppConfig holds the dependencies of the App.
type AppConfig struct {
	// Context bounds every fetch the App issues. Defaults to Background.
	Context context.Context
	// FetchPage resolves one page of the catalog.
	FetchPage func(ctx context.Context, ref string) (catalog.Page, error)
	// Session sequences the fetches. Required.
	Session *session.Controller
	// Placeholders is the skeleton count during the first load.
	Placeholders int
	// Memo caches filter results. Optional.
	Memo *filter.Memo
	// Events and Ring feed the event log and debug overlay. Optional.
	Events *otel.Logger
	Ring   *otel.RingBuffer
	// OnItems is called with the item count after every applied page.
	OnItems func(n int)
}

// App is the root Bubble Tea model.
// IMPORTANT: App does no I/O itself. Fetches run as tea.Cmds and come back
// as PageLoaded messages, which are applied through the session controller.
type App struct {
	ctx          context.Context
	fetchPage    func(ctx context.Context, ref string) (catalog.Page, error)
	session      *session.Controller
	memo         *filter.Memo
	events       *otel.Logger
	ring         *otel.RingBuffer
	onItems      func(n int)
	placeholders int

	keys     keyMap
	help     help.Model
	search   textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	shimmer  shimmer
	picker   picker

	filters   filter.State
	mode      mode
	showDebug bool
	width     int
	height    int
	ready     bool
}

// NewApp creates an App. The first page is requested by Init.
func NewApp(cfg AppConfig) App {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	memo := cfg.Memo
	if memo == nil {
		memo = filter.NewMemo(filter.DefaultMemoSize)
	}
	placeholders := cfg.Placeholders
	if placeholders <= 0 {
		placeholders = DefaultPlaceholders
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "search by name"
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return App{
		ctx:          ctx,
		fetchPage:    cfg.FetchPage,
		session:      cfg.Session,
		memo:         memo,
		events:       cfg.Events,
		ring:         cfg.Ring,
		onItems:      cfg.OnItems,
		placeholders: placeholders,
		keys:         defaultKeyMap(),
		help:         help.New(),
		search:       ti,
		viewport:     viewport.New(0, 0),
		spinner:      sp,
		shimmer:      newShimmer(),
	}
}

// Init requests the first page and starts the placeholder shimmer.
func (a App) Init() tea.Cmd {
	req, ok := a.session.BeginInitial()
	if !ok {
		return nil
	}
	a.emitFetchStart(req)
	return tea.Batch(a.fetch(req), a.shimmer.tick(), a.spinner.Tick)
}

// fetch runs req on a goroutine owned by Bubble Tea.
func (a App) fetch(req session.Request) tea.Cmd {
	if a.fetchPage == nil {
		return nil
	}
	ctx, fetchPage := a.ctx, a.fetchPage
	return func() tea.Msg {
		page, err := fetchPage(ctx, req.Ref)
		return PageLoaded{Req: req, Page: page, Err: err}
	}
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-chromeLines, 1)
		a.help.Width = msg.Width
		a.refresh()
		return a, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	case PageLoaded:
		return a.applyPage(msg)

	case skeletonTick:
		s, ok := a.shimmer.advance(msg)
		if !ok {
			return a, nil
		}
		a.shimmer = s
		// The shimmer stops once the first page has resolved.
		if !a.session.Loading() {
			return a, nil
		}
		a.refresh()
		return a, s.tick()

	case spinner.TickMsg:
		if snap := a.session.Snapshot(); !snap.Loading() && !snap.LoadingMore() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.refresh()
		return a, cmd
	}

	return a, nil
}

func (a App) applyPage(msg PageLoaded) (tea.Model, tea.Cmd) {
	if !a.session.Complete(msg.Req, msg.Page, msg.Err) {
		a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindPageStale, Comp: "session", Ref: msg.Req.Ref, Gen: msg.Req.Generation})
		return a, nil
	}

	snap := a.session.Snapshot()
	ev := otel.Event{Level: otel.LevelInfo, Kind: otel.KindPageApplied, Comp: "session", Ref: msg.Req.Ref, Gen: msg.Req.Generation, Count: len(snap.Items), Total: snap.Total}
	if msg.Err != nil {
		ev.Level = otel.LevelWarn
		ev.Err = msg.Err.Error()
	}
	a.events.Emit(ev)

	if a.onItems != nil {
		a.onItems(len(snap.Items))
	}
	a.refresh()
	return a, nil
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindKeyPress, Comp: "ui", Msg: msg.String()})
	}
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modePicker:
		return a.handlePickerKey(msg)
	case modeSearch:
		return a.handleSearchKey(msg)
	}

	if a.showDebug {
		if key.Matches(msg, a.keys.Debug) || msg.String() == "esc" {
			a.showDebug = false
		} else if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		return a, a.search.Focus()

	case key.Matches(msg, a.keys.Category):
		snap := a.session.Snapshot()
		categories := a.memo.Categories(snap.Version, snap.Items)
		a.picker = newPicker(categories, a.filters.Category, a.height)
		a.mode = modePicker
		return a, nil

	case key.Matches(msg, a.keys.Reset):
		a.filters = a.filters.Reset()
		a.search.SetValue("")
		a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFilterReset, Comp: "ui"})
		a.refresh()
		a.viewport.GotoTop()
		return a, nil

	case key.Matches(msg, a.keys.LoadMore):
		return a.loadMore()

	case key.Matches(msg, a.keys.Top):
		a.viewport.GotoTop()
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		a.viewport.GotoBottom()
		return a, nil

	case key.Matches(msg, a.keys.Debug):
		a.showDebug = true
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.search.Blur()
		a.mode = modeBrowse
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if v := a.search.Value(); v != a.filters.Search {
		a.filters.Search = v
		a.emitFilterChange()
		a.refresh()
		a.viewport.GotoTop()
	}
	return a, cmd
}

func (a App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, chosen, done, cmd := a.picker.update(msg)
	a.picker = p
	if done {
		a.mode = modeBrowse
	}
	if chosen != nil && *chosen != a.filters.Category {
		a.filters.Category = *chosen
		a.emitFilterChange()
		a.refresh()
		a.viewport.GotoTop()
	}
	return a, cmd
}

// loadMore requests the next page when the action is actionable.
func (a App) loadMore() (tea.Model, tea.Cmd) {
	if !a.canLoadMore(a.session.Snapshot()) {
		return a, nil
	}
	req, ok := a.session.BeginLoadMore(a.filters)
	if !ok {
		return a, nil
	}
	a.emitFetchStart(req)
	a.refresh()
	return a, tea.Batch(a.fetch(req), a.spinner.Tick)
}

func (a App) emitFetchStart(req session.Request) {
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchStart, Comp: "ui", Ref: req.Ref, Gen: req.Generation})
}

func (a App) emitFilterChange() {
	a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFilterChange, Comp: "ui", Query: a.filters.Search, Category: a.filters.Category})
}

// visible returns the items that pass the current filters.
func (a App) visible(snap session.Snapshot) []catalog.Item {
	return a.memo.Visible(snap.Version, snap.Items, a.filters)
}

// canLoadMore reports whether the load-more row is shown and actionable.
// An empty grid hides it, so a failed first page is not refetched as a
// next page.
func (a App) canLoadMore(snap session.Snapshot) bool {
	return snap.CanLoadMore(a.filters) && len(a.visible(snap)) > 0
}

// refresh re-renders the scrollable body and syncs key availability.
func (a *App) refresh() {
	snap := a.session.Snapshot()
	a.keys.LoadMore.SetEnabled(a.canLoadMore(snap))
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.body(snap))
}

func (a App) body(snap session.Snapshot) string {
	if snap.Loading() {
		return renderSkeletons(a.placeholders, a.width, a.shimmer)
	}

	items := a.visible(snap)
	if len(items) == 0 {
		return EmptyState.Render(emptyMessage)
	}

	out := renderCards(items, a.width)
	if row := a.loadMoreRow(snap); row != "" {
		out += "\n\n" + lipgloss.PlaceHorizontal(a.width, lipgloss.Center, row) + "\n"
	}
	return out
}

// loadMoreRow is shown while another page can be requested or is loading.
func (a App) loadMoreRow(snap session.Snapshot) string {
	switch {
	case snap.LoadingMore():
		return LoadMoreBusy.Render(a.spinner.View() + " Loading...")
	case a.canLoadMore(snap):
		return LoadMoreButton.Render("Load more")
	default:
		return ""
	}
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.showDebug {
		overlay := debugOverlay(a.ring, a.width, a.height-1)
		placed := lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, overlay)
		return placed + "\n" + debugStatusBar(a.width)
	}

	var content string
	if a.mode == modePicker {
		content = a.picker.view(a.width, a.viewport.Height)
	} else {
		content = a.viewport.View()
	}

	return strings.Join([]string{
		a.renderHeader(),
		a.renderFilterBar(),
		content,
		a.renderMessage(),
		a.renderStatusBar(),
	}, "\n")
}

func (a App) renderHeader() string {
	left := Header.Render("BESTIARY")
	right := HeaderSub.Render("creature catalog")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (a App) renderFilterBar() string {
	var search string
	if a.mode == modeSearch || a.filters.Search != "" {
		search = FilterBarPrompt.Render("/ ") + a.search.View()
	} else {
		search = FilterBarLabel.Render("/ search by name")
	}
	category := FilterBarLabel.Render("type: ") + FilterBarValue.Render(categoryLabel(a.filters.Category))
	return FilterBar.Width(a.width).Render(search + "    " + category)
}

func (a App) renderMessage() string {
	if err := a.session.Err(); err != nil {
		return ErrorStyle.Width(a.width).Render("Error: " + err.Error())
	}
	return ""
}

func (a App) renderStatusBar() string {
	snap := a.session.Snapshot()

	var counts string
	switch {
	case snap.Loading():
		counts = a.spinner.View() + " loading"
	case snap.TotalKnown:
		counts = fmt.Sprintf("loaded %s of %s", humanize.Comma(int64(len(snap.Items))), humanize.Comma(int64(snap.Total)))
	default:
		counts = fmt.Sprintf("loaded %s", humanize.Comma(int64(len(snap.Items))))
	}
	if a.filters.Active() && !snap.Loading() {
		counts += fmt.Sprintf(" · showing %s", humanize.Comma(int64(len(a.visible(snap)))))
	}

	hints := a.help.View(a.keys)
	gap := max(a.width-lipgloss.Width(counts)-lipgloss.Width(hints)-2, 1)
	return StatusBar.Width(a.width).Render(counts + strings.Repeat(" ", gap) + hints)
}

// Filters returns the active filter state (for testing).
func (a App) Filters() filter.State {
	return a.filters
}

// Visible returns the items currently on screen (for testing).
func (a App) Visible() []catalog.Item {
	return a.visible(a.session.Snapshot())
}

// Searching reports whether the search input has focus (for testing).
func (a App) Searching() bool {
	return a.mode == modeSearch
}

// PickerOpen reports whether the category picker is open (for testing).
func (a App) PickerOpen() bool {
	return a.mode == modePicker
}

// DebugVisible reports whether the debug overlay is shown (for testing).
func (a App) DebugVisible() bool {
	return a.showDebug
}
