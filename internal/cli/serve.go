package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yildizm/sentimoji/internal/emoji"
	"github.com/yildizm/sentimoji/internal/monitor"
	"github.com/yildizm/sentimoji/internal/sentiment"
	"github.com/yildizm/sentimoji/internal/web"
)

var serveAddr string

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer web page",
		Long: `Start an HTTP server with the analyzer form and a small JSON API:

  GET  /              analyzer page
  POST /analyze       form submit
  GET  /api/legend    rating scale
  GET  /api/state     current form state
  GET  /api/stats     analysis counts since start
  POST /api/analyze   {"text": "..."} -> result
  GET  /health        provider status`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	log := newLogger()
	client, err := newClient(log)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	stats := monitor.NewStats()
	client.WithRecorder(stats)

	session := sentiment.NewSession(client)
	defer session.Close()

	debug := cfg.Server.Debug || isVerbose()
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := web.NewRouter(client, session, web.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SSLRedirect:    cfg.Server.SSLRedirect,
		SSLHost:        cfg.Server.SSLHost,
		Debug:          debug,
		Stats:          stats,
	}, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Serving on %s\n", emoji.GetEmoji("wave"), addr)
	return web.NewServer(addr, router, log).Run(ctx)
}
