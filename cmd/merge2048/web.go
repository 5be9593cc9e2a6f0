package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/platform/web"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the websocket server for browser renderers",
	Long: `Start an HTTP server exposing the game over websockets.

Routes:
  /ws?variant=<id>  - one game session per connection
  /variants         - JSON list of board variants
  /health           - liveness and open session count

Clients send {"t":"move","m":{"dir":"left"}} and receive a frame after
every state change. Finished rounds are saved to the scores database.

Examples:
  merge2048 web
  merge2048 web --addr :9000 --variant mini
  merge2048 web --allow-origin example.com --allow-origin "*.example.org"`,
	RunE: runWeb,
}

func init() {
	def := web.DefaultConfig()
	webCmd.Flags().String("addr", def.Addr, "HTTP listen address (host:port)")
	webCmd.Flags().String("variant", def.Variant, "Variant used when the client does not pick one")
	webCmd.Flags().StringSlice("allow-origin", nil, "Accepted Origin host patterns (any origin when empty)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	srv, err := web.NewServer(web.Config{
		Addr:         vp.GetString("addr"),
		AllowOrigins: vp.GetStringSlice("allow-origin"),
		Variant:      vp.GetString("variant"),
		Seed:         opts.Seed,
		Store:        store,
		Logger:       logger.WithPrefix("merge2048-web"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
