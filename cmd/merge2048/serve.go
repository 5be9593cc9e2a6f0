package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/platform/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a variant menu.
Scores are stored per server, so all users share one leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.merge2048/host_key

Examples:
  merge2048 serve                           # Listen on :23234 with auto-generated key
  merge2048 serve --ssh :2222               # Listen on port 2222
  merge2048 serve --host-key ./my_host_key  # Use specific host key
  merge2048 serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().String("host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().Int("idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	idle := vp.GetInt("idle-timeout")
	if idle <= 0 {
		return fmt.Errorf("invalid --idle-timeout %d: must be positive", idle)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = vp.GetString("ssh")
	cfg.HostKeyPath = vp.GetString("host-key")
	cfg.DBPath = opts.DBPath
	cfg.IdleTimeout = time.Duration(idle) * time.Minute
	cfg.TickRate = opts.FPS
	cfg.Logger = logger.WithPrefix("merge2048-ssh")
	t2048.SetLogger(cfg.Logger)

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	logger.Info("connect with ssh", "command", "ssh localhost -p "+portOf(cfg.Address))
	return server.ListenAndServe()
}

// portOf returns the port part of a listen address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
