package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuItem is one variant row of the menu.
type MenuItem struct {
	GameID string
	Title  string
	Info   string
	Best   int
}

// MenuResult is what the player picked. Exactly one of GameID,
// WantsScoreboard and Quit is set.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// MenuModel is the variant picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	result    *MenuResult
}

// NewMenuModel lists every variant with its best score from store, if any.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(t2048.Variants))
	for _, v := range t2048.Variants {
		item := MenuItem{GameID: v.ID, Title: v.Name, Info: v.Info}
		if store != nil {
			if best, err := store.HighScore(v.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}
	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = (m.cursor - 1 + n) % n
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % n
	case MenuActionSelect:
		return m.finish(MenuResult{GameID: m.items[m.cursor].GameID})
	case MenuActionScoreboard:
		return m.finish(MenuResult{WantsScoreboard: true})
	case MenuActionQuit, MenuActionBack:
		return m.finish(MenuResult{Quit: true})
	}
	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Config = m.config
	m.result = &r
	return m, tea.Quit
}

// Result returns the choice once the menu has closed, or nil while open.
func (m MenuModel) Result() *MenuResult {
	return m.result
}

// Cursor returns the highlighted item.
func (m MenuModel) Cursor() MenuItem {
	return m.items[m.cursor]
}

func (m MenuModel) View() string {
	if m.result != nil && m.result.Quit {
		return ""
	}

	rows := make([]string, 0, len(m.items))
	for i, item := range m.items {
		best := ""
		if item.Best > 0 {
			best = fmt.Sprintf("best %d", item.Best)
		}
		line := fmt.Sprintf("%-8s %-26s %s", item.Title, item.Info, best)
		if i == m.cursor {
			rows = append(rows, menuCursor.Render("> "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		menuTitleStyle.Render("2 0 4 8"),
		"",
		"Select a board",
		"",
		strings.Join(rows, "\n"),
		"",
		menuDimStyle.Render("Up/Down: Navigate | Enter: Play | Tab: Scores | Q: Quit"),
	)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

// RunMenu shows the menu until the player picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	if m, ok := final.(MenuModel); ok && m.result != nil {
		return *m.result, nil
	}
	return MenuResult{Config: cfg, Quit: true}, nil
}
