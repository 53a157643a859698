package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agusnoopy3000/Carta-QR/internal/api"
	"github.com/agusnoopy3000/Carta-QR/internal/waiter"
)

var waiterCmd = &cobra.Command{
	Use:   "waiter",
	Short: "Notify staff that a table is ready to order",
}

var waiterCallCmd = &cobra.Command{
	Use:   "call",
	Short: "Call the waiter (rate limited)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		client := api.New(cfg.BaseURL, cfg.RequestTimeout)
		throttle := waiter.NewThrottle(client, cfg.WaiterCooldown)

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		resp, err := throttle.Call(ctx)
		if errors.Is(err, waiter.ErrSuppressed) {
			fmt.Println("Already called; give the waiter a moment.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("error calling waiter, try again: %w", err)
		}
		fmt.Printf("Waiter notified at %s: %s\n", resp.Timestamp, resp.Message)
		return nil
	},
}

var waiterStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the waiter notification service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		client := api.New(cfg.BaseURL, cfg.RequestTimeout)

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		status, err := client.WaiterServiceStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s (%s)\n", status.Service, status.Status, status.Timestamp)
		return nil
	},
}

func init() {
	waiterCmd.AddCommand(waiterCallCmd, waiterStatusCmd)
	rootCmd.AddCommand(waiterCmd)
}
