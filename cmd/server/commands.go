package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mamae10/webhook-relay/internal/domain"
	"github.com/mamae10/webhook-relay/internal/service"
)

var daysCmd = &cobra.Command{
	Use:   "days <provider> [productId]",
	Short: "Print the premium days granted for a provider product",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := domain.ParseProvider(args[0])
		if err != nil {
			return err
		}
		productID := ""
		if len(args) == 2 {
			productID = args[1]
		}
		fmt.Fprintln(cmd.OutOrStdout(), domain.ResolveDays(provider, productID))
		return nil
	},
}

var grantFlags struct {
	email    string
	days     int
	provider string
}

var grantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant premium to an email for an explicit number of days",
	RunE: func(cmd *cobra.Command, args []string) error {
		if grantFlags.days <= 0 {
			return errors.New("--days must be positive")
		}
		provider, err := domain.ParseProvider(grantFlags.provider)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		days := grantFlags.days
		svc := service.NewSubscriptionService(newBackend(cfg))
		result, _ := svc.Dispatch(cmd.Context(), domain.EventPaymentApproved, domain.PaymentPayload{
			Email:        strings.TrimSpace(grantFlags.email),
			Provider:     provider,
			ExplicitDays: &days,
		})

		out, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		if !result.Success {
			return errors.New(result.Message)
		}
		return nil
	},
}

func init() {
	grantCmd.Flags().StringVar(&grantFlags.email, "email", "", "customer email")
	grantCmd.Flags().IntVar(&grantFlags.days, "days", 0, "premium days to grant")
	grantCmd.Flags().StringVar(&grantFlags.provider, "provider", string(domain.ProviderCakto), "provider recorded with the grant")
	_ = grantCmd.MarkFlagRequired("email")
	_ = grantCmd.MarkFlagRequired("days")
}
