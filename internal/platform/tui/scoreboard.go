package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/persist"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show key list sidebar
	sidebarWidth       = 26  // Width of key list sidebar
	wideTableWidth     = 70  // Width needed for the detail columns
	maxScores          = 100 // Max scores to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Back    key.Binding
	Quit    key.Binding
	NextKey key.Binding
	PrevKey key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextKey, k.PrevKey, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextKey, k.PrevKey},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev mode"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next mode"),
		),
		NextKey: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next mode"),
		),
		PrevKey: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardKeys lists every settings combination in display order.
func LeaderboardKeys() []string {
	keys := make([]string, 0, len(game.Difficulties)*len(game.MapModes)*2)
	for _, d := range game.Difficulties {
		for _, m := range game.MapModes {
			for _, obs := range []bool{false, true} {
				keys = append(keys, persist.LeaderboardKey(persist.UserSettings{
					Difficulty:       d,
					MapMode:          m,
					ObstaclesEnabled: obs,
				}))
			}
		}
	}
	return keys
}

// scoreRow is one line of the table. The run details are zero when the
// score only comes from the save file.
type scoreRow struct {
	score   int
	stage   int
	food    int
	seconds float64
	death   string
	date    string
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	keys        []string // leaderboard keys
	keyCursor   int      // currently selected key
	store       *storage.Store
	data        *persist.PersistentData
	rows        []scoreRow
	table       table.Model
	help        help.Model
	bindings    ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show key list sidebar
	standalone  bool
}

// NewScoreboardModel creates a scoreboard opened on the key of the current
// settings. Runs come from the history store; keys without history fall
// back to the save file bucket.
func NewScoreboardModel(store *storage.Store, data *persist.PersistentData, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	keys := LeaderboardKeys()
	m := ScoreboardModel{
		keys:        keys,
		store:       store,
		data:        data,
		bindings:    DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	if data != nil {
		m.keyCursor = max(0, indexOf(keys, persist.LeaderboardKey(data.Settings)))
	}

	m.table = m.createTable()
	m.loadScores()

	return m
}

// wide reports whether the table has room for run details.
func (m *ScoreboardModel) wide() bool {
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	return tableWidth >= wideTableWidth
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Stage", Width: 6},
		{Title: "Date", Width: 13},
	}
	if m.wide() {
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 7},
			{Title: "Stage", Width: 6},
			{Title: "Food", Width: 5},
			{Title: "Time", Width: 8},
			{Title: "Death", Width: 15},
			{Title: "Date", Width: 13},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores loads the scores recorded under the selected key.
func (m *ScoreboardModel) loadScores() {
	key := m.keys[m.keyCursor]
	m.rows = nil

	if m.store != nil {
		if runs, err := m.store.TopRuns(key, maxScores); err == nil {
			for _, r := range runs {
				m.rows = append(m.rows, scoreRow{
					score:   r.Score,
					stage:   r.Stage,
					food:    r.FoodEaten,
					seconds: r.Duration.Seconds(),
					death:   r.DeathReason,
					date:    r.CreatedAt.Format("Jan 02 15:04"),
				})
			}
		}
	}
	if len(m.rows) == 0 && m.data != nil {
		for _, score := range m.data.Leaderboard[key] {
			m.rows = append(m.rows, scoreRow{score: score})
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	wide := m.wide()
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		stage, food, secs := "-", "-", "-"
		if r.stage > 0 {
			stage = fmt.Sprintf("%d", r.stage)
			food = fmt.Sprintf("%d", r.food)
			secs = fmt.Sprintf("%.1fs", r.seconds)
		}
		rank, score := fmt.Sprintf("#%d", i+1), fmt.Sprintf("%d", r.score)
		if wide {
			rows[i] = table.Row{rank, score, stage, food, secs, r.death, r.date}
		} else {
			rows[i] = table.Row{rank, score, stage, r.date}
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.bindings.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.bindings.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.bindings.NextKey), key.Matches(msg, m.bindings.Right):
			m.keyCursor = (m.keyCursor + 1) % len(m.keys)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.bindings.PrevKey), key.Matches(msg, m.bindings.Left):
			m.keyCursor = (m.keyCursor - 1 + len(m.keys)) % len(m.keys)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.bindings.Up), key.Matches(msg, m.bindings.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// SelectedKey returns the leaderboard key on display.
func (m ScoreboardModel) SelectedKey() string {
	return m.keys[m.keyCursor]
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("HIGH SCORES - %s", m.SelectedKey())
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.bindings)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar listing every key.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, k := range m.keys {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.keyCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + k))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the selected key above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tab := fmt.Sprintf("< %s >", activeTabStyle.Render(m.SelectedKey()))
	b.WriteString(centerText(tab, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, data *persist.PersistentData, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, data, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
