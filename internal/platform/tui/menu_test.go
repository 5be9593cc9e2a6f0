package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/storage"
)

func press(t *testing.T, m tea.Model, msgs ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestMenuCursorWraps(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	next, _ := press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := next.(MenuModel).Cursor().GameID; got != "custom" {
		t.Errorf("cursor after up = %q, want custom", got)
	}

	next, _ = press(t, next, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if got := next.(MenuModel).Cursor().GameID; got != "mini" {
		t.Errorf("cursor after wrap = %q, want mini", got)
	}
}

func TestMenuResults(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want MenuResult
	}{
		{"play", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, MenuResult{GameID: "mini"}},
		{"scores", []tea.KeyMsg{{Type: tea.KeyTab}}, MenuResult{WantsScoreboard: true}},
		{"quit", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'q'}}}, MenuResult{Quit: true}},
		{"esc", []tea.KeyMsg{{Type: tea.KeyEsc}}, MenuResult{Quit: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			next, cmd := press(t, NewMenuModel(nil, cfg), tt.keys...)
			if cmd == nil {
				t.Fatal("menu should close")
			}
			got := next.(MenuModel).Result()
			tt.want.Config = cfg
			if got == nil || *got != tt.want {
				t.Errorf("Result() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveGame(storage.GameRecord{Variant: "wide", Score: 4242, Moves: 9}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	view := m.View()
	if !strings.Contains(view, "best 4242") {
		t.Errorf("menu should show the best score:\n%s", view)
	}
	if !strings.Contains(view, t2048.Variants[0].Info) {
		t.Errorf("menu should describe the variants:\n%s", view)
	}
}

func TestScoreboardSteps(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveGame(storage.GameRecord{Variant: "mini", Score: 128, MaxTile: 32, Moves: 40, Lost: true}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 120, 40)
	if m.Variant().ID != "classic" || len(m.records) != 0 {
		t.Fatalf("scoreboard should open on an empty classic table")
	}

	next, _ := press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	sb := next.(ScoreboardModel)
	if sb.Variant().ID != "mini" || len(sb.records) != 1 {
		t.Fatalf("tab should show mini with one record, got %s/%d", sb.Variant().ID, len(sb.records))
	}
	if !strings.Contains(sb.View(), "lost") {
		t.Errorf("view should list the lost round")
	}

	next, _ = press(t, next, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := next.(ScoreboardModel).Variant().ID; got != "custom" {
		t.Errorf("shift+tab should wrap to custom, got %s", got)
	}

	next, cmd := press(t, next, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
