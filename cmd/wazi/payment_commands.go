package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wazihub/wazi-go/internal/models"
)

func newPaymentsCommand(app func() *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Subscription payments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.stores.Payments.FetchPayments(cmd.Context()); err != nil {
				return err
			}
			printPayments(cmd, a)
			return nil
		},
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "Show your payment history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.stores.Payments.FetchHistory(cmd.Context()); err != nil {
				return err
			}
			printPayments(cmd, a)
			return nil
		},
	}

	var (
		amount   int64
		phone    string
		provider string
		subType  string
	)
	initiate := &cobra.Command{
		Use:   "init",
		Short: "Initiate a subscription payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			err := a.stores.Payments.InitiatePayment(cmd.Context(), amount, phone,
				models.PaymentProvider(provider), models.SubscriptionType(subType))
			if err != nil {
				return err
			}
			if a.cfg.Notifications.Enabled {
				_ = a.stores.Notifications.Send(cmd.Context(), "Payment complete",
					fmt.Sprintf("Your %s subscription is now active.", subType))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "payment completed, subscription active")
			return nil
		},
	}
	initiate.Flags().Int64Var(&amount, "amount", 0, "amount to charge")
	initiate.Flags().StringVar(&phone, "phone", "", "mobile money phone number")
	initiate.Flags().StringVar(&provider, "provider", "", "payment provider (MTN or AIRTEL)")
	initiate.Flags().StringVar(&subType, "type", "", "subscription type (WEEKLY or MONTHLY)")

	status := &cobra.Command{
		Use:   "status <payment-id> <PENDING|SUCCESS|FAILED>",
		Short: "Update a payment's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Payments.UpdateStatus(cmd.Context(), args[0], models.PaymentStatus(args[1]))
		},
	}

	cmd.AddCommand(list, history, initiate, status)
	return cmd
}

func printPayments(cmd *cobra.Command, a *appContext) {
	for _, p := range a.stores.Payments.Payments() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %d via %s  %s  %s  %s..%s\n",
			p.ID, p.Amount, p.Provider, p.Status, p.SubscriptionType, p.StartDate, p.EndDate)
	}
}

func newRewardsCommand(app func() *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Browse and claim rewards",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.stores.Rewards.FetchRewards(cmd.Context()); err != nil {
				return err
			}
			for _, r := range a.stores.Rewards.Rewards() {
				claimed := ""
				if r.Claimed {
					claimed = " (claimed)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d points%s\n", r.ID, r.Title, r.Points, claimed)
			}
			return nil
		},
	}

	claim := &cobra.Command{
		Use:   "claim <reward-id>",
		Short: "Claim a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Rewards.ClaimReward(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, claim)
	return cmd
}
