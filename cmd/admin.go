package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agusnoopy3000/Carta-QR/internal/admin"
	"github.com/agusnoopy3000/Carta-QR/internal/api"
	"github.com/agusnoopy3000/Carta-QR/internal/format"
	"github.com/agusnoopy3000/Carta-QR/internal/models"
	"github.com/agusnoopy3000/Carta-QR/internal/sink"
	"github.com/agusnoopy3000/Carta-QR/internal/store"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Operate on the menu through the Basic-Auth admin API",
}

// adminEnv bundles what every admin subcommand needs: an authenticated
// client, the shared product list and the local store.
type adminEnv struct {
	cfg     *models.Config
	client  *api.Client
	store   *store.Store
	session *admin.Session
	list    *admin.ProductList
}

func newAdminEnv(requireAuth bool) (*adminEnv, error) {
	cfg := mustLoadConfig()
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	client := api.New(cfg.BaseURL, cfg.RequestTimeout)
	session := admin.NewSession(client, st)
	if requireAuth {
		if err := session.RequireAuth(); err != nil {
			st.Close()
			return nil, err
		}
	}
	return &adminEnv{
		cfg:     cfg,
		client:  client,
		store:   st,
		session: session,
		list:    admin.NewProductList(),
	}, nil
}

func (e *adminEnv) Close() { e.store.Close() }

// loadProducts fills the shared list with one admin poll.
func (e *adminEnv) loadProducts(ctx context.Context) error {
	products, err := e.client.AdminProducts(ctx)
	if err != nil {
		if e.session.HandleAuthFailure(err) {
			return fmt.Errorf("session expired, log in again: %w", err)
		}
		return err
	}
	e.list.Replace(products)
	return nil
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Validate credentials and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		if username == "" || password == "" {
			return fmt.Errorf("both --username and --password are required")
		}

		env, err := newAdminEnv(false)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		if err := env.session.Login(ctx, username, password); err != nil {
			return err
		}
		fmt.Println("Session stored.")
		return nil
	},
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAdminEnv(false)
		if err != nil {
			return err
		}
		defer env.Close()
		env.session.Logout()
		fmt.Println("Session cleared.")
		return nil
	},
}

var adminProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products with availability and prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAdminEnv(true)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		if err := env.loadProducts(ctx); err != nil {
			return err
		}

		stats := env.list.Stats()
		fmt.Printf("%d products: %d available, %d unavailable\n\n", stats.Total, stats.Available, stats.Unavailable)
		now := time.Now()
		for _, p := range env.list.Products() {
			status := " "
			if !p.Available {
				status = "x"
			}
			recent := ""
			if p.RecentlyModified(now, env.cfg.RecentWindow) {
				recent = " *"
			}
			fmt.Printf("[%s] %4d %s%s\n", status, p.ID, p.NameEs, recent)
			for _, o := range p.Options {
				fmt.Printf("        %4d %s %s\n", o.ID, o.DisplayName(), format.Price(o.Price))
			}
		}
		return nil
	},
}

var adminWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the product list and report external changes",
	Long: `admin watch polls the admin product list on the refresh interval and
diffs consecutive snapshots. Detected availability, price and name changes go
to the bounded history, the configured sinks and the local change log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAdminEnv(true)
		if err != nil {
			return err
		}
		defer env.Close()

		changes := admin.NewChangeLog(env.cfg.HistoryLimit)
		watcher := admin.NewWatcher(env.client, env.list, changes, env.cfg.RefreshInterval).
			WithRecorder(env.store).
			WithSinks(&sink.ConsoleDestination{})

		if env.cfg.OutputFolder != "" {
			fileSink := sink.NewFileDestination(env.cfg.OutputFolder)
			defer fileSink.Close()
			watcher.WithSinks(fileSink)
		}
		if env.cfg.KafkaEnabled {
			kafkaSink, err := sink.NewKafkaDestination(env.cfg.KafkaBrokerList)
			if err != nil {
				return err
			}
			defer kafkaSink.Close()
			watcher.WithSinks(kafkaSink)
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		log.Printf("watching admin products every %s", env.cfg.RefreshInterval)
		if err := watcher.Run(ctx); ctx.Err() == nil {
			return err
		}
		return nil
	},
}

var adminSetPriceCmd = &cobra.Command{
	Use:   "set-price <optionID> <newPrice>",
	Short: "Quick-update one option's price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		optionID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid option id %q", args[0])
		}
		newPrice, err := parsePrice(args[1])
		if err != nil {
			return err
		}

		env, err := newAdminEnv(true)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		if err := env.loadProducts(ctx); err != nil {
			return err
		}

		product, ok := findProductByOption(env.list, optionID)
		if !ok {
			return fmt.Errorf("no product carries option %d", optionID)
		}

		editor := admin.NewEditor(env.client, env.list)
		if err := editor.BeginEdit(admin.EditTarget{ProductID: product.ID, Field: admin.FieldPrice, OptionID: optionID}); err != nil {
			return err
		}
		if err := editor.CommitEdit(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("Price of option %d on %q is now %s\n", optionID, product.NameEs, format.Price(newPrice))
		return nil
	},
}

var adminRenameCmd = &cobra.Command{
	Use:   "rename <productID> <newName>",
	Short: "Rename a product (Spanish name)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		env, err := newAdminEnv(true)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		if err := env.loadProducts(ctx); err != nil {
			return err
		}

		editor := admin.NewEditor(env.client, env.list)
		if err := editor.BeginEdit(admin.EditTarget{ProductID: productID, Field: admin.FieldName}); err != nil {
			return err
		}
		if err := editor.CommitEdit(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("Product %d renamed to %q\n", productID, args[1])
		return nil
	},
}

var adminToggleCmd = &cobra.Command{
	Use:   "toggle <productID>",
	Short: "Flip a product's availability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		env, err := newAdminEnv(true)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		if err := env.loadProducts(ctx); err != nil {
			return err
		}

		toggles := admin.NewToggles(env.client, env.list)
		available, err := toggles.ToggleAvailable(ctx, productID)
		if err != nil {
			return err
		}
		product, _ := env.list.Get(productID)
		if available {
			fmt.Printf("%q is now available\n", product.NameEs)
		} else {
			fmt.Printf("%q is now unavailable\n", product.NameEs)
		}
		return nil
	},
}

var adminBulkPricesCmd = &cobra.Command{
	Use:   "bulk-prices <file>",
	Short: "Apply a JSON file of price updates in one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var updates []api.PriceUpdate
		if err := json.Unmarshal(data, &updates); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		if len(updates) == 0 {
			return fmt.Errorf("no updates in %s", args[0])
		}

		env, err := newAdminEnv(true)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		if err := env.client.BulkUpdatePrices(ctx, updates); err != nil {
			if env.session.HandleAuthFailure(err) {
				return fmt.Errorf("session expired, log in again: %w", err)
			}
			return err
		}
		fmt.Printf("Applied %d price updates\n", len(updates))
		return nil
	},
}

func findProductByOption(list *admin.ProductList, optionID int64) (models.Product, bool) {
	for _, p := range list.Products() {
		for _, o := range p.Options {
			if o.ID == optionID {
				return p, true
			}
		}
	}
	return models.Product{}, false
}

func parsePrice(raw string) (int64, error) {
	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return price, nil
}

func init() {
	adminLoginCmd.Flags().String("username", "", "Admin username")
	adminLoginCmd.Flags().String("password", "", "Admin password")

	adminWatchCmd.Flags().Bool("kafka-enabled", false, "Publish change events to Kafka")
	adminWatchCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	adminWatchCmd.Flags().String("output-folder", "", "Folder for per-topic change event files")
	viper.BindPFlag("kafka_enabled", adminWatchCmd.Flags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", adminWatchCmd.Flags().Lookup("kafka-broker-list"))
	viper.BindPFlag("output_folder", adminWatchCmd.Flags().Lookup("output-folder"))

	adminCmd.AddCommand(adminLoginCmd, adminLogoutCmd, adminProductsCmd, adminWatchCmd,
		adminSetPriceCmd, adminRenameCmd, adminToggleCmd, adminBulkPricesCmd)
	rootCmd.AddCommand(adminCmd)
}
