package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/storage"
)

const maxScores = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tableBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap is the scoreboard key bindings.
type ScoreboardKeyMap struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Back, Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev board")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel pages through the recorded rounds of each variant.
type ScoreboardModel struct {
	store   *storage.Store
	cursor  int // index into t2048.Variants
	records []storage.GameRecord
	stats   *storage.GameStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens on the first variant. A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(height)
	m.load()
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Tile", Width: 6},
			{Title: "Moves", Width: 6},
			{Title: "Result", Width: 7},
			{Title: "Date", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

func scoreRow(r storage.GameRecord, i int) table.Row {
	result := "quit"
	if r.Lost {
		result = "lost"
	}
	return table.Row{
		fmt.Sprintf("#%d", i+1),
		strconv.Itoa(r.Score),
		strconv.Itoa(r.MaxTile),
		strconv.Itoa(r.Moves),
		result,
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// load reads the selected variant's rounds and stats into the table.
func (m *ScoreboardModel) load() {
	m.records, m.stats = nil, nil
	if m.store != nil {
		id := m.Variant().ID
		if records, err := m.store.TopScores(id, maxScores); err == nil {
			m.records = records
		}
		if stats, err := m.store.GameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(lo.Map(m.records, scoreRow))
	m.table.GotoTop()
}

// Variant returns the variant being shown.
func (m ScoreboardModel) Variant() t2048.Variant {
	return t2048.Variants[m.cursor]
}

func (m *ScoreboardModel) step(delta int) {
	n := len(t2048.Variants)
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.load()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = newScoreTable(m.height)
		m.table.SetRows(lo.Map(m.records, scoreRow))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tabs := lo.Map(t2048.Variants, func(v t2048.Variant, i int) string {
		if i == m.cursor {
			return activeTabStyle.Render(v.Name)
		}
		return tabStyle.Render(v.Name)
	})
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = activeTabStyle.Render("< " + m.Variant().Name + " >")
	}

	body := emptyStyle.Render("No games recorded yet.\nPlay a round to set a high score!")
	if len(m.records) > 0 {
		body = m.table.View()
	}

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		center(boardTitleStyle.Render("HIGH SCORES - "+m.Variant().Name)),
		"",
		center(tabLine),
		"",
		center(tableBoxStyle.Render(body)),
		center(m.statsLine()),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d games | avg %.0f | best tile %d | %d moves",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.BestTile, m.stats.TotalMoves)
}

func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }
func (m ScoreboardModel) IsQuitting() bool  { return m.quitting }

// RunScoreboard shows the scoreboard and reports whether the player went
// back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.goingBack, nil
}
