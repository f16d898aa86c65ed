// internal/cli/serve.go
package kbqa

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pangyo-qna/kbqa/internal/server"
)

var runServer = func(ctx context.Context, s *server.Server, addr string) error {
	return s.Run(ctx, addr)
}

// serveCmd implements 'serve', which exposes search and chat over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search and chat API",
	Long:  `The 'serve' command starts the HTTP API (GET /health, GET /knowledge, POST /api/search, POST /api/chat) and shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		a, err := buildAssistant(cfg)
		if err != nil {
			return err
		}

		addr := cfg.ListenAddr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		origins, _ := cmd.Flags().GetString("cors")

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := server.New(a, server.Options{
			// Generation has its own client timeout; leave headroom for the local fallback.
			RequestTimeout: 2 * cfg.RequestTimeout(),
			AllowedOrigins: splitList(origins),
		})
		return runServer(ctx, s, addr)
	},
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
	serveCmd.Flags().String("cors", "", "comma separated allowed origins, or * for any")
	rootCmd.AddCommand(serveCmd)
}
