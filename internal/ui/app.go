package ui

import (
	"context"
	"database/sql"
	"fmt"
	"image"
	"strings"
	"time"

	"barblend/internal/config"
	"barblend/internal/db"
	"barblend/internal/discover"
	"barblend/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const dispatchTimeout = 30 * time.Second

// ThumbnailSource fetches drink images.
type ThumbnailSource interface {
	FetchThumbnail(ctx context.Context, url string) (image.Image, error)
}

// Options wires the root model to its collaborators. Thumbnails and History
// may be nil to disable those features.
type Options struct {
	Dispatcher *discover.Dispatcher
	Source     discover.Source
	Thumbnails ThumbnailSource
	History    *sql.DB
	Config     *config.Config
	Logger     *zap.Logger
	PrefsPath  string
}

// Model is the root Bubble Tea model.
type Model struct {
	dispatcher *discover.Dispatcher
	source     discover.Source
	thumbs     ThumbnailSource
	history    *sql.DB
	cfg        *config.Config
	logger     *zap.Logger

	resolver *discover.Resolver
	mode     model.Mode
	gState   GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	loading     bool
	spinner     spinner.Model

	// Screen models
	searchBar *SearchBarModel
	home      *HomeModel
	results   *ResultsModel
	detail    *DrinkDetailModel

	suggestionSeq uint64

	keys      KeyMap
	inputKeys InputKeyMap
	prefs     UIPreferences
	prefsPath string
}

// New creates a new root model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil && opts.Source != nil {
		dispatcher = discover.NewDispatcher(opts.Source, discover.DefaultOptions(), logger)
	}

	prefs := loadUIPreferences(opts.PrefsPath)
	searchMode := model.ParseSearchMode(prefs.SearchMode)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	bar := NewSearchBarModel(searchMode)
	bar.Focus()

	m := Model{
		dispatcher:    dispatcher,
		source:        opts.Source,
		thumbs:        opts.Thumbnails,
		history:       opts.History,
		cfg:           cfg,
		logger:        logger,
		resolver:      discover.NewResolver(searchMode),
		mode:          model.ModeInsert,
		gState:        GStateIdle,
		spinner:       sp,
		searchBar:     bar,
		home:          NewHomeModel(),
		suggestionSeq: 1,
		keys:          DefaultKeyMap(),
		inputKeys:     DefaultInputKeyMap(),
		prefs:         prefs,
		prefsPath:     opts.PrefsPath,
	}
	if opts.Source == nil || cfg.Suggestions < 1 {
		m.home.SetSuggestions(nil)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.loadTermsCmd()}
	if m.home.Loading() {
		cmds = append(cmds, m.loadSuggestionsCmd(), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.detail != nil {
			m.detail.SetSize(m.width, m.contentHeight())
		}
		return m, nil

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}

		// Handle help toggle
		if key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleNavMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case model.OutcomeMsg:
		if !m.resolver.Apply(msg.Token, msg.Outcome) {
			m.logger.Debug("ignoring stale outcome",
				zap.Uint64("token", msg.Token),
				zap.Uint64("generation", m.resolver.Generation()),
				zap.String("outcome", msg.Outcome.Kind.String()))
			return m, nil
		}
		m.loading = false
		m.error = ""
		m.results = nil
		m.detail = nil

		var cmds []tea.Cmd
		s := m.resolver.Session()
		switch s.View() {
		case model.ViewResultsList:
			m.results = NewResultsModel(s.Results, m.cfg.PageSize)
		case model.ViewDetail:
			cmds = append(cmds, m.openDetail())
		}
		cmds = append(cmds, m.recordHistoryCmd(msg))
		return m, tea.Batch(cmds...)

	case model.SuggestionsLoadedMsg:
		if msg.Token != m.suggestionSeq {
			return m, nil
		}
		m.home.SetSuggestions(msg.Drinks)
		return m, nil

	case model.ThumbnailLoadedMsg:
		if m.detail == nil || m.detail.DrinkID() != msg.DrinkID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Debug("thumbnail unavailable", zap.String("drink_id", msg.DrinkID), zap.Error(msg.Err))
			return m, nil
		}
		m.detail.SetArt(msg.Art)
		return m, nil

	case model.TermsLoadedMsg:
		if msg.Mode == m.searchBar.Mode() {
			m.searchBar.SetTerms(msg.Terms)
		}
		return m, nil

	case model.HistoryRecordedMsg:
		return m, m.loadTermsCmd()

	case spinner.TickMsg:
		if !m.loading && !m.home.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input plumbing
	return m, m.searchBar.Update(msg)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	s := m.resolver.Session()
	view := s.View()
	contentHeight := m.contentHeight()

	var content string
	var breadcrumbParts []string

	switch view {
	case model.ViewResultsList:
		breadcrumbParts = []string{"Results", fmt.Sprintf("%q", s.Query)}
		if m.results != nil {
			content = m.results.View(m.width, contentHeight)
		}
	case model.ViewDetail:
		parent := "Drink"
		if s.Listed {
			parent = "Results"
		}
		breadcrumbParts = []string{parent, s.Focused.Name}
		if m.detail != nil {
			content = m.detail.View()
		}
	default:
		breadcrumbParts = []string{"Home"}
		content = m.home.View(m.width, m.spinner.View())
	}

	header := renderHeader(breadcrumbParts, m.width)
	bar := m.searchBar.View(m.width)
	footer := RenderHelp(view, m.mode, s.HasSearched, m.width)

	// Ensure content fills the available height to anchor footer at bottom
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	parts := []string{header, bar}
	if m.loading {
		parts = append(parts, HelpDescStyle.Render("  "+m.spinner.View()+" searching..."))
	}
	if s.Notice != "" {
		parts = append(parts, NoticeStyle.Width(m.width).Render(s.Notice))
	}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// contentHeight is what remains after header, search bar and footer.
func (m Model) contentHeight() int {
	return max(m.height-9, 3)
}

func renderHeader(breadcrumbParts []string, width int) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("barblend")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	// Right side: current date
	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

// handleInsertMode handles input while the search bar has focus.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Submit):
		return m.submitSearch()
	case key.Matches(msg, m.inputKeys.ToggleMode):
		return m.toggleMode()
	case key.Matches(msg, m.inputKeys.Recall):
		m.searchBar.Recall()
		return m, nil
	case key.Matches(msg, m.inputKeys.Leave):
		m.searchBar.Blur()
		m.mode = model.ModeNav
		return m, nil
	}
	return m, m.searchBar.Update(msg)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.info = ""

	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateFirstG {
			m.gState = GStateIdle
			return m.handleJumpToTop()
		}
		m.gState = GStateFirstG
		return m, nil
	}
	m.gState = GStateIdle

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.mode = model.ModeInsert
		return m, m.searchBar.Focus()
	case key.Matches(msg, m.keys.ToggleMode):
		return m.toggleMode()
	case key.Matches(msg, m.keys.Random):
		return m.randomDrink()
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	case key.Matches(msg, m.keys.Thumbnails):
		return m.toggleThumbnails()
	}

	switch m.resolver.View() {
	case model.ViewDetail:
		return m.handleDetailNav(msg)
	case model.ViewResultsList:
		return m.handleResultsNav(msg)
	default:
		return m.handleHomeNav(msg)
	}
}

func (m Model) handleJumpToTop() (tea.Model, tea.Cmd) {
	switch m.resolver.View() {
	case model.ViewResultsList:
		if m.results != nil {
			m.results.JumpToTop()
		}
	case model.ViewIdle:
		m.home.JumpToTop()
	case model.ViewDetail:
		if m.detail != nil {
			m.detail.viewport.GotoTop()
		}
	}
	return m, nil
}

// Navigation handlers for each screen
func (m Model) handleHomeNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.home.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.home.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.home.JumpToBottom()
	case key.Matches(msg, m.keys.Select):
		drink, ok := m.home.Selected()
		if !ok {
			return m, nil
		}
		m.resolver.Show(drink)
		m.loading = false
		cmd := m.openDetail()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResultsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.results == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		m.results.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.results.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.results.JumpToBottom()
	case key.Matches(msg, m.keys.ShowMore):
		if !m.results.ShowMore() {
			m.info = "All results shown"
		}
	case key.Matches(msg, m.keys.Select):
		if m.resolver.Focus(m.results.Cursor()) {
			cmd := m.openDetail()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.resolver.Back()
		m.detail = nil
		return m, nil
	}
	if m.detail == nil {
		return m, nil
	}
	return m, m.detail.Update(msg)
}

func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	query := m.searchBar.Value()
	searchMode := m.searchBar.Mode()
	if m.dispatcher == nil {
		return m, nil
	}

	token := m.resolver.Begin(query, searchMode)
	m.searchBar.Blur()
	m.mode = model.ModeNav
	m.error = ""
	m.logger.Info("search", zap.String("term", query), zap.String("mode", searchMode.String()), zap.Uint64("token", token))
	cmd := m.startLoading(dispatchCmd(m.dispatcher, token, query, searchMode))
	return m, cmd
}

func (m Model) randomDrink() (tea.Model, tea.Cmd) {
	if m.dispatcher == nil {
		return m, nil
	}
	s := m.resolver.Session()
	token := m.resolver.Begin(s.Query, s.Mode)
	m.error = ""
	cmd := m.startLoading(randomCmd(m.dispatcher, token, s.Mode))
	return m, cmd
}

func (m Model) toggleMode() (tea.Model, tea.Cmd) {
	searchMode := m.searchBar.Mode().Toggle()
	m.searchBar.SetMode(searchMode)
	m.resolver.SetMode(searchMode)
	m.prefs.SearchMode = searchMode.String()
	m.persistPrefs()
	return m, m.loadTermsCmd()
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.resolver.Reset()
	m.results = nil
	m.detail = nil
	m.loading = false
	m.error = ""
	m.searchBar.SetValue("")

	m.suggestionSeq++
	m.home = NewHomeModel()
	if m.source == nil || m.cfg.Suggestions < 1 {
		m.home.SetSuggestions(nil)
		return m, nil
	}
	return m, tea.Batch(m.loadSuggestionsCmd(), m.spinner.Tick)
}

func (m Model) toggleThumbnails() (tea.Model, tea.Cmd) {
	if !m.cfg.Thumbnails || m.thumbs == nil {
		m.info = "Thumbnails are disabled in config"
		return m, nil
	}
	m.prefs.HideThumbnails = !m.prefs.HideThumbnails
	m.persistPrefs()
	if m.thumbnailsOn() {
		m.info = "Thumbnails on"
	} else {
		m.info = "Thumbnails off"
	}

	if m.detail == nil {
		return m, nil
	}
	m.detail.SetShowArt(m.thumbnailsOn())
	if m.detail.HasArt() {
		return m, nil
	}
	return m, m.thumbnailCmd(m.detail.drink)
}

func (m *Model) startLoading(cmd tea.Cmd) tea.Cmd {
	m.loading = true
	return tea.Batch(cmd, m.spinner.Tick)
}

// openDetail builds the detail screen for the focused drink.
func (m *Model) openDetail() tea.Cmd {
	s := m.resolver.Session()
	if s.Focused == nil {
		m.detail = nil
		return nil
	}
	m.detail = NewDrinkDetailModel(*s.Focused, m.thumbnailsOn(), m.width, m.contentHeight())
	return m.thumbnailCmd(*s.Focused)
}

func (m *Model) thumbnailsOn() bool {
	return m.cfg.Thumbnails && m.thumbs != nil && !m.prefs.HideThumbnails
}

func (m *Model) thumbnailCmd(drink model.Drink) tea.Cmd {
	if !m.thumbnailsOn() || drink.Thumbnail == "" {
		return nil
	}
	return loadThumbnailCmd(m.thumbs, drink)
}

func (m *Model) persistPrefs() {
	if err := saveUIPreferences(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save ui preferences", zap.Error(err))
	}
}

func (m *Model) loadSuggestionsCmd() tea.Cmd {
	return loadSuggestionsCmd(m.source, m.cfg.Suggestions, m.suggestionSeq, m.logger)
}

func (m *Model) loadTermsCmd() tea.Cmd {
	if m.history == nil {
		return nil
	}
	return loadTermsCmd(m.history, m.searchBar.Mode())
}

func (m *Model) recordHistoryCmd(msg model.OutcomeMsg) tea.Cmd {
	if m.history == nil || strings.TrimSpace(msg.Query) == "" {
		return nil
	}

	count := len(msg.Outcome.Drinks)
	if msg.Outcome.Kind == model.OutcomeDetailView {
		count = 1
	}
	return recordHistoryCmd(m.history, model.NewHistoryEntry{
		Term:        strings.TrimSpace(msg.Query),
		Mode:        msg.Mode,
		Outcome:     msg.Outcome.Kind.String(),
		ResultCount: count,
	})
}

// Commands

func dispatchCmd(d *discover.Dispatcher, token uint64, query string, mode model.SearchMode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		outcome := d.Resolve(ctx, query, mode)
		return model.OutcomeMsg{Token: token, Query: query, Mode: mode, Outcome: outcome}
	}
}

func randomCmd(d *discover.Dispatcher, token uint64, mode model.SearchMode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		return model.OutcomeMsg{Token: token, Mode: mode, Outcome: d.FetchRandom(ctx)}
	}
}

func loadSuggestionsCmd(source discover.Source, n int, token uint64, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		return model.SuggestionsLoadedMsg{Token: token, Drinks: discover.RandomSet(ctx, source, n, logger)}
	}
}

func loadThumbnailCmd(thumbs ThumbnailSource, drink model.Drink) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		img, err := thumbs.FetchThumbnail(ctx, thumbnailURL(drink.Thumbnail))
		if err != nil {
			return model.ThumbnailLoadedMsg{DrinkID: drink.ID, Err: err}
		}
		return model.ThumbnailLoadedMsg{DrinkID: drink.ID, Art: RenderThumbnail(img)}
	}
}

func loadTermsCmd(database *sql.DB, mode model.SearchMode) tea.Cmd {
	return func() tea.Msg {
		terms, err := db.DistinctTerms(database, mode)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load past searches: %w", err)}
		}
		return model.TermsLoadedMsg{Mode: mode, Terms: terms}
	}
}

func recordHistoryCmd(database *sql.DB, entry model.NewHistoryEntry) tea.Cmd {
	return func() tea.Msg {
		if _, err := db.InsertSearch(database, entry); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to record search: %w", err)}
		}
		return model.HistoryRecordedMsg{}
	}
}
