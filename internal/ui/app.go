package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/wayfare/internal/config"
	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/itinerary"
	"github.com/five82/wayfare/internal/lookup"
	"github.com/five82/wayfare/internal/prefs"
	"github.com/five82/wayfare/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewSearch View = iota
	ViewResults
	ViewLogs
)

// Searcher runs a search against the store the UI reads.
type Searcher interface {
	Run(ctx context.Context, req flights.SearchRequest) error
	Cancel()
}

// Suggester answers autocomplete lookups.
type Suggester interface {
	Suggest(ctx context.Context, subType, input string) ([]flights.Location, error)
}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Searcher    Searcher
	Lookup      Suggester
	Store       *state.Store
	Config      *config.Config
	Prefs       prefs.Prefs
	PrefsPath   string
	Log         zerolog.Logger
	RefreshTick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx         context.Context
	searcher    Searcher
	lookup      Suggester
	store       *state.Store
	config      *config.Config
	prefs       prefs.Prefs
	prefsPath   string
	log         zerolog.Logger
	refreshTick time.Duration
	now         func() time.Time

	keys         keyMap
	theme        Theme
	currentView  View
	previousView View
	width        int
	height       int
	ready        bool

	snapshot state.Snapshot
	inflight int
	spinner  spinner.Model
	form     form
	cursor   int // offer index within the page

	showDetail     bool
	detailViewport viewport.Model

	logViewport viewport.Model
	logState    logState

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.RefreshTick
	if tick <= 0 {
		tick = time.Second
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	debounce := lookup.DefaultDebounce
	var logPath string
	if opts.Config != nil {
		if opts.Config.LookupDebounce > 0 {
			debounce = opts.Config.LookupDebounce
		}
		logPath = opts.Config.LogFile
	}
	store := opts.Store
	if store == nil {
		store = state.NewStore(0)
	}

	theme := GetTheme(opts.Prefs.Theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning))

	return Model{
		ctx:         ctx,
		searcher:    opts.Searcher,
		lookup:      opts.Lookup,
		store:       store,
		config:      opts.Config,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		log:         opts.Log,
		refreshTick: tick,
		now:         time.Now,
		keys:        DefaultKeyMap(),
		theme:       theme,
		currentView: ViewSearch,
		spinner:     sp,
		form:        newForm(opts.Prefs, debounce),
		logState:    logState{path: logPath, follow: true},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
		tickCmd(m.refreshTick),
		fetchSnapshotCmd(m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLogViewport()
		if m.showDetail {
			m.updateDetailViewport()
		}
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{fetchSnapshotCmd(m.store), tickCmd(m.refreshTick)}
		if m.currentView == ViewLogs && m.logState.follow {
			cmds = append(cmds, m.refreshLogs())
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case spinner.TickMsg:
		if !m.searching() && !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case suggestTickMsg:
		if !m.form.suggest[msg.field].debouncer.Settled(msg.tag) || m.lookup == nil {
			return m, nil
		}
		return m, lookupCmd(m.ctx, m.lookup, msg)

	case suggestionsMsg:
		if m.form.setSuggestions(msg) && msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("location lookup failed")
		}
		return m, nil

	case searchDoneMsg:
		m.inflight = max(m.inflight-1, 0)
		var fe *flights.FieldError
		if errors.As(msg.err, &fe) {
			m.form.setErrors(msg.err)
			m.currentView = ViewSearch
		}
		return m, fetchSnapshotCmd(m.store)

	case logsMsg:
		m.handleLogs(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	if m.showDetail {
		return m.renderDetail()
	}
	switch m.currentView {
	case ViewResults:
		return m.renderResults()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderTitledBox("Search flights", m.form.view(m.width-2, m.theme, m.theme.FocusBg), m.width, max(m.height-2, 3), true)
	}
}

func (m Model) searching() bool {
	return m.inflight > 0
}

func (m Model) location() *time.Location {
	if m.config != nil && m.config.Location != nil {
		return m.config.Location
	}
	return time.UTC
}

// handleKey processes keyboard input. Printable keys in the search form are
// text, so letter bindings are skipped there.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	typing := m.currentView == ViewSearch && !m.showDetail && msg.Type == tea.KeyRunes
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case !typing && key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case !typing && key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	}

	if m.showDetail {
		return m.handleDetailKey(msg)
	}
	switch m.currentView {
	case ViewResults:
		return m.handleResultsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleSearchKey(msg)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.searcher != nil {
		m.searcher.Cancel()
	}
	return m, tea.Quit
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	m.prefs.Theme = m.theme.Name
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Msg("save prefs")
	}
	m.updateLogViewport()
	if m.showDetail {
		m.updateDetailViewport()
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		if m.snapshot.HasSearched {
			m.form.closeSuggestions()
			m.currentView = ViewResults
		}
		return m, nil
	}
	cmd, action := m.form.update(msg, m.keys)
	if action == formSubmit {
		return m.submit()
	}
	return m, cmd
}

// submit validates the form locally and starts the search. Invalid input
// stays on the form with the errors listed.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.form.request()
	if err == nil {
		err = req.Validate(m.now())
	}
	m.form.setErrors(err)
	if err != nil || m.searcher == nil {
		return m, nil
	}
	m.form.closeSuggestions()
	m.currentView = ViewResults
	m.cursor = 0
	m.inflight++
	m.log.Info().Str("route", req.Origin+"-"+req.Destination).Str("departure", req.DepartureDate).Msg("search submitted")
	return m, tea.Batch(runSearchCmd(m.ctx, m.searcher, req), m.spinner.Tick)
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.PageOffers())
	switch {
	case key.Matches(msg, m.keys.QuitLetter):
		return m.quit()
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.EditSearch):
		m.currentView = ViewSearch
	case key.Matches(msg, m.keys.ViewLogs):
		m.previousView = m.currentView
		m.currentView = ViewLogs
		return m, m.refreshLogs()
	case key.Matches(msg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(count-1, 0)
	case key.Matches(msg, m.keys.NextPage):
		if m.store.SetPage(m.snapshot.Page + 1) {
			m.cursor = 0
			m.refresh()
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.store.SetPage(m.snapshot.Page - 1) {
			m.cursor = 0
			m.refresh()
		}
	case key.Matches(msg, m.keys.SortPrice):
		m.store.ToggleSort(itinerary.SortPrice)
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.SortDuration):
		m.store.ToggleSort(itinerary.SortDuration)
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Open):
		offers := m.snapshot.PageOffers()
		if m.cursor < len(offers) && m.store.SelectOffer(offers[m.cursor].ID) {
			m.refresh()
			m.showDetail = true
			m.updateDetailViewport()
			m.detailViewport.GotoTop()
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.QuitLetter):
		m.showDetail = false
		m.store.ClearSelection()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.QuitLetter):
		m.currentView = m.previousView
		return m, nil
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
			return m, m.refreshLogs()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	if m.logViewport.AtBottom() {
		return m, cmd
	}
	m.logState.follow = false
	return m, cmd
}

// refresh reads the store right after a local mutation so the next frame
// shows it.
func (m *Model) refresh() {
	m.applySnapshot(m.store.Snapshot())
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if count := len(snap.PageOffers()); m.cursor >= count {
		m.cursor = max(count-1, 0)
	}
	if m.showDetail {
		if _, ok := snap.Selected(); !ok {
			m.showDetail = false
			return
		}
		m.updateDetailViewport()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type searchDoneMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func runSearchCmd(ctx context.Context, s Searcher, req flights.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg{err: s.Run(ctx, req)}
	}
}

func lookupCmd(ctx context.Context, l Suggester, tick suggestTickMsg) tea.Cmd {
	return func() tea.Msg {
		items, err := l.Suggest(ctx, flights.SubTypeAirport, tick.input)
		return suggestionsMsg{field: tick.field, tag: tick.tag, items: items, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
