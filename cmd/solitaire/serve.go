package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calvinwijaya/solitaire-be/internal/api"
	"github.com/calvinwijaya/solitaire-be/internal/store"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the table server",
	Long: `Serve starts the HTTP and WebSocket server that hosts solitaire tables.

Examples:
  solitaire serve
  solitaire serve --port 9000 --frontend https://cards.example
  solitaire serve --validate --log-level debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := cfg.Logger()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gameStore := store.NewMemoryStore(log)
		log.Info("In-memory game store initialized")

		hub := api.NewHub(log)
		hubCtx, stopHub := context.WithCancel(context.Background())
		defer stopHub()
		go hub.Run(hubCtx)
		log.Info("WebSocket hub started")

		h := api.NewHandlers(gameStore, hub, log, cfg.Validate)
		r := mux.NewRouter()
		h.RegisterRoutes(r)

		access := log.WriterLevel(logrus.InfoLevel)
		defer access.Close()

		c := cors.New(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		})

		srv := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      c.Handler(handlers.CombinedLoggingHandler(access, r)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			log.WithFields(logrus.Fields{
				"port":     cfg.Port,
				"frontend": cfg.FrontendURL,
				"validate": cfg.Validate,
			}).Info("Starting server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
			close(errc)
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		stopHub()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errc
	},
}

func init() {
	serveCmd.Flags().String("port", "", "server port (default 8080)")
	serveCmd.Flags().String("frontend", "", "frontend URL allowed by CORS")
	serveCmd.Flags().Bool("validate", false, "check table invariants after every action")
}
