package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/notify"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a trigger server for scrape passes",
	Long:  "Exposes GET /health and POST /run. Overlapping trigger requests are coalesced so at most one pass runs at a time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		spreadsheetID, err := resolveSpreadsheetID(nil)
		if err != nil {
			return err
		}

		n := notify.New(cfg.Notify)

		env, err := initPipeline(ctx, spreadsheetID, n)
		if err != nil {
			return failPass(ctx, n, eris.Wrap(err, "init pipeline"))
		}

		mux := buildMux(ctx, env)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildMux constructs the trigger server routes. Passes triggered while one
// is already in flight share its outcome instead of starting another.
func buildMux(ctx context.Context, env *pipelineEnv) *http.ServeMux {
	var group singleflight.Group
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /run", func(w http.ResponseWriter, r *http.Request) {
		// Run the pass asynchronously
		go func() {
			if env == nil || env.Pipeline == nil {
				return
			}
			_, err, shared := group.Do("pass", func() (any, error) {
				result, err := env.Pipeline.Run(ctx)
				if err != nil {
					zap.L().Error("triggered pass failed", zap.Error(err))
					env.Notifier.Failure(ctx, fmt.Sprintf("Scrape pass failed: %v", err))
					return nil, err
				}
				zap.L().Info("triggered pass complete", zap.String("summary", result.Summary()))
				return result, nil
			})
			if shared && err == nil {
				zap.L().Debug("trigger coalesced into running pass")
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
