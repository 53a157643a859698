package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agusnoopy3000/Carta-QR/internal/admin"
	"github.com/agusnoopy3000/Carta-QR/internal/api"
	"github.com/agusnoopy3000/Carta-QR/internal/menu"
	"github.com/agusnoopy3000/Carta-QR/internal/mirror"
	"github.com/agusnoopy3000/Carta-QR/internal/store"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Serve the latest menu snapshot to kiosks on the LAN",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		st, err := store.Open(cfg.StorePath)
		if err != nil {
			log.Fatalf("opening local store: %v", err)
		}
		defer st.Close()

		client := api.New(cfg.BaseURL, cfg.RequestTimeout)
		ctrl := menu.NewController(client, cfg.Language, cfg.RefreshInterval)
		if snapshot, fetchedAt, ok := st.Snapshot(cfg.Language, 0); ok {
			ctrl.Prime(snapshot, fetchedAt)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		go func() {
			if err := ctrl.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("refresh loop stopped: %v", err)
			}
		}()

		// With a stored admin session the mirror also watches the product
		// list and exposes the change history on /v1/changes.
		var changes *admin.ChangeLog
		if session := admin.NewSession(client, st); session.Restore() {
			changes = admin.NewChangeLog(cfg.HistoryLimit)
			watcher := admin.NewWatcher(client, admin.NewProductList(), changes, cfg.RefreshInterval).
				WithRecorder(st)
			go func() {
				if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
					log.Printf("change watcher stopped: %v", err)
				}
			}()
			log.Print("admin session found, serving /v1/changes")
		}

		router := mirror.NewRouter(ctrl, changes)
		server := &http.Server{
			Addr:              cfg.MirrorAddr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			server.Shutdown(shutdownCtx)
		}()

		log.Printf("mirror listening on %s", cfg.MirrorAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("mirror server: %v", err)
		}
	},
}

func init() {
	mirrorCmd.Flags().String("mirror-addr", ":9090", "Listen address of the mirror server")
	viper.BindPFlag("mirror_addr", mirrorCmd.Flags().Lookup("mirror-addr"))
	rootCmd.AddCommand(mirrorCmd)
}
