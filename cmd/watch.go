package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agusnoopy3000/Carta-QR/internal/api"
	"github.com/agusnoopy3000/Carta-QR/internal/archive"
	"github.com/agusnoopy3000/Carta-QR/internal/format"
	"github.com/agusnoopy3000/Carta-QR/internal/menu"
	"github.com/agusnoopy3000/Carta-QR/internal/models"
	"github.com/agusnoopy3000/Carta-QR/internal/settings"
	"github.com/agusnoopy3000/Carta-QR/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the public menu and keep it fresh",
	Long: `watch performs a loud initial load, then refreshes silently every
interval and whenever the process receives SIGHUP (the kiosk's "display woke
up" signal). The latest snapshot is cached locally so a restart renders
immediately even when the upstream is down.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		st, err := store.Open(cfg.StorePath)
		if err != nil {
			log.Fatalf("opening local store: %v", err)
		}
		defer st.Close()

		prefs := settings.NewManager(st)
		language := cfg.Language
		if language == "" {
			language = prefs.Current().Language
		}

		client := api.New(cfg.BaseURL, cfg.RequestTimeout)
		ctrl := menu.NewController(client, language, cfg.RefreshInterval)

		// Stale-but-displayed: show whatever we cached last time while
		// the first fetch is in flight.
		if snapshot, fetchedAt, ok := st.Snapshot(language, 0); ok {
			ctrl.Prime(snapshot, fetchedAt)
			renderMenu(snapshot, fetchedAt, ctrl.ActiveCategory())
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		var archiver *archive.Archiver
		if cfg.ArchiveEnabled {
			factory, err := archive.NewS3WriterFactory(ctx, cfg.ArchiveRegion)
			if err != nil {
				log.Fatalf("initialising snapshot archive: %v", err)
			}
			archiver = archive.NewArchiver(factory, cfg.ArchiveBucket, cfg.ArchivePrefix)
		}

		ctrl.OnUpdate(func(snapshot *models.MenuSnapshot, fetchedAt time.Time) {
			if err := snapshot.Validate(); err != nil {
				log.Printf("snapshot failed validation, rendering anyway: %v", err)
			}
			if err := st.SaveSnapshot(language, snapshot, fetchedAt); err != nil {
				log.Printf("caching snapshot: %v", err)
			}
			renderMenu(snapshot, fetchedAt, ctrl.ActiveCategory())
			if archiver != nil {
				if err := archiver.ArchiveSnapshot(ctx, snapshot, fetchedAt); err != nil {
					log.Printf("archiving snapshot: %v", err)
				}
			}
		})

		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		go func() {
			for range hup {
				ctrl.Wake()
			}
		}()

		if err := ctrl.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("watch loop stopped: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func renderMenu(snapshot *models.MenuSnapshot, fetchedAt time.Time, activeCategory string) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s — %s (updated %s)\n", snapshot.RestaurantName, snapshot.Slogan, fetchedAt.Format("15:04:05"))
	for _, category := range snapshot.Categories {
		marker := "  "
		if category.Code == activeCategory {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s (%d)\n", marker, category.Name, category.ProductCount)
		for _, product := range category.Products {
			fmt.Fprintf(&b, "    %s", product.DisplayName())
			if !product.Available {
				b.WriteString(" [agotado]")
			}
			if price, ok := product.SinglePrice(); ok {
				fmt.Fprintf(&b, " %s", format.Price(price))
			}
			b.WriteByte('\n')
			if product.HasMultipleOptions() {
				for _, option := range product.Options {
					fmt.Fprintf(&b, "      - %s %s", option.DisplayName(), format.Price(option.Price))
					if pct := option.DiscountPercent(); pct > 0 {
						fmt.Fprintf(&b, " (-%d%%)", pct)
					}
					b.WriteByte('\n')
				}
			}
		}
	}
	os.Stdout.WriteString(b.String())
}
