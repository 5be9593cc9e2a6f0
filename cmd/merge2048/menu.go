package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick board variants from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for high scores.
Leaving a game returns to the menu.

Examples:
  merge2048 menu
  merge2048 menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	tuiLog, closeLog := tuiLogger()
	defer closeLog()
	t2048.SetLogger(tuiLog)

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			game, err := registry.Create(result.GameID)
			if err != nil {
				logger.Error("cannot create game", "variant", result.GameID, "err", err)
				continue
			}
			back, err := tui.Run(game, store, cfg, tuiLog)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
		}
	}
}
