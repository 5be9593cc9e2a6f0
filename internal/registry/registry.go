// Package registry maps board variant ids to game factories. Variants
// register themselves from init, so front ends can list and create them
// by id without importing every game package.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/vovakirdan/merge2048/internal/core"
)

// Game is what every front end drives: a fixed-tick simulation that draws
// itself into a character screen.
type Game interface {
	// ID is the variant id used on the command line and in the scores
	// database, e.g. "classic" or "mini".
	ID() string

	// Title is the display name shown in menus and the HUD.
	Title() string

	// Reset deals a new board sized for cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which is cleared beforehand.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	order     []GameInfo
)

// Register adds a factory under id. Registering an id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}
	factories[id] = f
	order = append(order, GameInfo{ID: id, Title: f().Title()})
}

// List returns the registered variants in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Clone(order)
}

// IDs returns the registered variant ids in registration order.
func IDs() []string {
	return lo.Map(List(), func(g GameInfo, _ int) string { return g.ID })
}

// Create builds a new game for id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
