package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/merge2048/internal/core"
)

// gameKeys binds key names to game actions. Arrows, WASD and vim keys all
// slide tiles.
var gameKeys = bind(map[core.Action][]string{
	core.ActionQuit:    {"ctrl+c", "q"},
	core.ActionUp:      {"up", "w", "k"},
	core.ActionDown:    {"down", "s", "j"},
	core.ActionLeft:    {"left", "a", "h"},
	core.ActionRight:   {"right", "d", "l"},
	core.ActionConfirm: {"enter"},
	core.ActionBack:    {"b", "esc"},
	core.ActionPause:   {"p"},
	core.ActionRestart: {"r"},
})

// bind inverts an action-to-keys table.
func bind[A comparable](table map[A][]string) map[string]A {
	out := make(map[string]A)
	for action, keys := range table {
		for _, k := range keys {
			out[k] = action
		}
	}
	return out
}

// MenuAction is what a key does in a list screen.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

var menuKeys = bind(map[MenuAction][]string{
	MenuActionQuit:       {"ctrl+c", "q"},
	MenuActionUp:         {"up", "w", "k"},
	MenuActionDown:       {"down", "s", "j"},
	MenuActionSelect:     {"enter", " "},
	MenuActionBack:       {"b", "esc"},
	MenuActionScoreboard: {"tab"},
})

// KeyMapper turns Bubble Tea key messages into actions.
type KeyMapper struct{}

func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the game action of msg, ActionNone if unbound, and whether
// it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = gameKeys[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToFrame adds the action of msg to frame. Quit is reported instead
// of being added.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuKeys[msg.String()]
}
