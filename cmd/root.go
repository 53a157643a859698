package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "carta",
	Short: "Client toolkit for the El Macho digital menu",
	Long: `carta follows the El Macho restaurant menu API: it keeps a fresh menu
snapshot for kiosks, watches the admin product list for changes, performs
quick price and availability edits, and calls the waiter.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./carta.json)")

	rootCmd.PersistentFlags().String("base-url", "http://localhost:8080/api", "Base URL of the menu API")
	rootCmd.PersistentFlags().String("language", "es", "Menu language (es or en)")
	rootCmd.PersistentFlags().Duration("refresh-interval", 0, "Interval between silent refreshes")
	rootCmd.PersistentFlags().Duration("request-timeout", 0, "HTTP request timeout")
	rootCmd.PersistentFlags().String("store-path", "./carta.db", "Path of the local state database")

	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("language"))
	viper.BindPFlag("refresh_interval", rootCmd.PersistentFlags().Lookup("refresh-interval"))
	viper.BindPFlag("request_timeout", rootCmd.PersistentFlags().Lookup("request-timeout"))
	viper.BindPFlag("store_path", rootCmd.PersistentFlags().Lookup("store-path"))
}

func initConfig() {
	viper.AutomaticEnv()
}

func mustLoadConfig() *models.Config {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
