// Package tui provides the Bubble Tea front end for merge2048: the game
// loop, the variant menu, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the game by one tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after one interval.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
