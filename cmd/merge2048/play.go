package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/registry"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board variant",
	Long: `Start playing the given variant (classic when omitted).

Controls:
  Arrows/WASD/HJKL - Slide tiles
  P                - Pause
  R                - New game
  B/Esc            - Leave the game
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot

Examples:
  merge2048 play
  merge2048 play mini
  merge2048 play custom --config ./game.yaml
  merge2048 play classic --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	id := "classic"
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q (one of: %s)", id, strings.Join(registry.IDs(), ", "))
	}

	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	tuiLog, closeLog := tuiLogger()
	defer closeLog()
	t2048.SetLogger(tuiLog)

	if _, err := tui.Run(game, store, runtimeConfig(), tuiLog); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(opts.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", opts.DBPath, "err", err)
		return nil
	}
	return store
}
