// merge2048 is a sliding-tile merge puzzle for the terminal, SSH and the browser.
//
// Usage:
//
//	merge2048 list               - List board variants
//	merge2048 play [variant]     - Play a variant
//	merge2048 menu               - Pick variants from a menu
//	merge2048 serve              - Start SSH server for remote play
//	merge2048 web                - Start websocket server for browser renderers
//	merge2048 scores [variant]   - Show high scores
//
// Global flags (also read from MERGE2048_* environment variables):
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set database path (default: ~/.merge2048/scores.db)
//	--config <path>      - YAML rules for the custom variant
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
)

// options are the resolved global settings.
type options struct {
	FPS        int
	Seed       int64
	DBPath     string
	ConfigPath string
	LogLevel   log.Level
}

var (
	vp     = viper.New()
	opts   options
	logger = log.New(io.Discard)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "merge2048",
	Short: "merge2048 - slide and merge numbered tiles",
	Long: `merge2048 is the sliding-tile merge puzzle for your terminal.

Available commands:
  list     - Show all board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  web      - Start websocket server for browser renderers
  scores   - View high scores

Examples:
  merge2048 list
  merge2048 play classic
  merge2048 play custom --config ./game.yaml
  merge2048 serve --ssh :2222
  merge2048 web --addr :8080
  MERGE2048_SEED=7 merge2048 play mini`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int("fps", 60, "Tick rate (frames per second)")
	pf.Int64("seed", 0, "RNG seed (0 = random)")
	pf.String("db", "~/.merge2048/scores.db", "Path to scores database")
	pf.String("config", "", "Path to game config YAML for the custom variant")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")

	vp.SetEnvPrefix("MERGE2048")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup binds the command's flags to viper and resolves the global options.
func setup(cmd *cobra.Command, _ []string) error {
	if err := vp.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	level, err := log.ParseLevel(vp.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	opts = options{
		FPS:        vp.GetInt("fps"),
		Seed:       vp.GetInt64("seed"),
		DBPath:     vp.GetString("db"),
		ConfigPath: vp.GetString("config"),
		LogLevel:   level,
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", opts.FPS)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "merge2048",
		Level:           level,
	})
	t2048.SetConfigPath(opts.ConfigPath)
	return nil
}

// tuiLogger redirects logging to ~/.merge2048/merge2048.log while a full
// screen program owns the terminal.
func tuiLogger() (*log.Logger, func()) {
	l := log.NewWithOptions(io.Discard, log.Options{ReportTimestamp: true, Prefix: "merge2048", Level: opts.LogLevel})

	home, err := os.UserHomeDir()
	if err != nil {
		return l, func() {}
	}
	dir := filepath.Join(home, ".merge2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return l, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "merge2048.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return l, func() {}
	}
	l.SetOutput(f)
	return l, func() { f.Close() }
}

// runtimeConfig builds the game config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = opts.FPS
	cfg.Seed = opts.Seed
	return cfg
}
