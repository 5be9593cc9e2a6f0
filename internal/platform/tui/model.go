package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/registry"
	"github.com/vovakirdan/merge2048/internal/storage"
)

// snapshotter is implemented by games that can describe a finished round.
type snapshotter interface {
	Snapshot() t2048.Snapshot
}

// resizer is implemented by games that can follow the window without a reset.
type resizer interface {
	Resize(w, h int)
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	last       t2048.Snapshot
	quitOnBack bool
	quitting   bool
	backToMenu bool
	saved      bool // current round already recorded
}

// NewGameModel creates a model for the given game. A nil store disables
// score recording; a nil logger discards.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finishRound()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.finishRound()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	m.trackRound()

	return m, tickCmd(m.config.TickRate)
}

// trackRound records a round once it is lost, and records an unfinished
// round when the player restarts over it.
func (m *GameModel) trackRound() {
	s, ok := m.game.(snapshotter)
	if !ok {
		return
	}
	cur := s.Snapshot()

	if cur.Moves < m.last.Moves {
		if !m.saved {
			m.record(m.last)
		}
		m.saved = false
	}
	if cur.Lost && !m.saved {
		m.record(cur)
		m.saved = true
	}
	m.last = cur
}

// finishRound records the current round when the player leaves it.
func (m *GameModel) finishRound() {
	if m.saved {
		return
	}
	if s, ok := m.game.(snapshotter); ok {
		m.record(s.Snapshot())
		m.saved = true
	}
}

func (m *GameModel) record(snap t2048.Snapshot) {
	if m.store == nil || snap.Moves == 0 {
		return
	}
	id, err := m.store.SaveGame(RecordFromSnapshot(snap))
	if err != nil {
		m.logger.Warn("could not save game", "variant", snap.Variant, "err", err)
		return
	}
	m.logger.Debug("game saved", "id", id, "variant", snap.Variant, "score", snap.Score)
}

// RecordFromSnapshot converts a game snapshot to a storage record.
func RecordFromSnapshot(snap t2048.Snapshot) storage.GameRecord {
	return storage.GameRecord{
		Variant: snap.Variant,
		Score:   snap.Score,
		MaxTile: snap.MaxTile,
		Moves:   snap.Moves,
		Lost:    snap.Lost,
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "err", err)
		return
	}
	dir := filepath.Join(home, ".merge2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: cannot create directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot: write failed", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal and reports whether the
// player asked to go back rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, logger)
	model.quitOnBack = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.backToMenu, nil
}
