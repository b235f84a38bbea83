package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajxudir/skillsearch/pkg/server"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

var serveAddrFlag string

var runServerFunc = func(ctx context.Context, s *server.Server, addr string) error {
	return s.Run(ctx, addr)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve upload and search over HTTP",
	Long: `Start an HTTP server. Each uploaded file gets its own session:

  POST   /api/uploads                 multipart field "file" (optional "session_id")
  GET    /api/sessions/:id            session state
  GET    /api/sessions/:id/skills     Code Mapping Skill vocabulary
  POST   /api/sessions/:id/search     {"id": "...", "skills": ["..."], "mode": "token"}
  POST   /api/sessions/:id/reset      clear criteria and results
  GET    /api/sessions/:id/export     last result as ?format=csv|json|xml|xlsx
  DELETE /api/sessions/:id            drop the session
  GET    /healthz                     liveness

Responses use a {code, message, data} envelope; code 0 is success.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddrFlag, "addr", "a", "", "Listen address (default: server.addr)")
}

// runServe starts the server and blocks until interrupted.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig()
	if err != nil {
		return err
	}

	addr := serveAddrFlag
	if addr == "" {
		addr = cfg.GetAddr()
	}

	log := verbose.NewLogger(os.Stderr)
	srv := server.New(cfg, server.Options{Logger: &log, Debug: verboseFlag})

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving on http://%s (max %d sessions, uploads up to %d bytes)\n", addr, cfg.GetMaxSessions(), cfg.GetMaxUploadSize())
	return runServerFunc(ctx, srv, addr)
}
