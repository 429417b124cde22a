package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	cl "klicks/internal/cli"
	"klicks/internal/config"
	"klicks/internal/game"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLI()

	root := &cobra.Command{
		Use:          "klk",
		Short:        "Klicks CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newStartCmd(cfg),
		newLogoutCmd(),
		newProfileCmd(cfg),
		newClickCmd(cfg),
		newCollectCmd(cfg),
		newShopCmd(cfg),
		newGarageCmd(cfg),
		newBuyCmd(cfg),
		newWagerCmd(cfg),
		newGrantCmd(cfg),
		newPlayCmd(cfg),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newStartCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a new game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := cl.NewClient(cfg.APIBaseURL)
			out, err := client.StartSession(ctx)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.StoredSession{
				Token:   out.Token,
				BaseURL: cfg.APIBaseURL,
			}); err != nil {
				return err
			}
			printSuccess("Session started. Go click some coins.")
			renderProfile(out.Profile)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printInfo("Session cleared.")
			return nil
		},
	}
}

func newProfileCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show balance, tier and owned items",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			profile, err := client.Profile(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderProfile(profile)
			return nil
		},
	}
}

func newClickCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "click",
		Short: "Click once and earn coins",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := client.Click(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderClick(out)
			return nil
		},
	}
}

func newCollectCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Collect passive income from your businesses",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := client.CollectIncome(ctx, sess.Token)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Collected %s coins. Balance: %s", comma(out.Collected), comma(out.Balance)))
			return nil
		},
	}
}

func newShopCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "List businesses for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			listings, err := client.Businesses(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderBusinesses(listings)
			return nil
		},
	}
}

func newGarageCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "garage",
		Short: "List vehicles for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			listings, err := client.Vehicles(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderVehicles(listings)
			return nil
		},
	}
}

func newBuyCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "buy [business|vehicle] [id]",
		Short: "Buy a business or vehicle by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			var out game.PurchaseResult
			switch args[0] {
			case "business":
				out, err = client.BuyBusiness(ctx, sess.Token, id)
			case "vehicle":
				out, err = client.BuyVehicle(ctx, sess.Token, id)
			default:
				return fmt.Errorf("unknown category %q, want business or vehicle", args[0])
			}
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Bought %s %s for %s coins. Balance: %s", out.Emoji, out.Name, comma(out.Price), comma(out.Balance)))
			return nil
		},
	}
}

func newWagerCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "wager [amount]",
		Short: "Gamble coins on a coin flip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := client.Wager(ctx, sess.Token, amount)
			if err != nil {
				return err
			}
			renderWager(out)
			return nil
		},
	}
}

func newGrantCmd(cfg config.CLIConfig) *cobra.Command {
	var (
		amount int64
		tier   string
	)
	cmd := &cobra.Command{
		Use:   "grant [currency|premium_currency|tier]",
		Short: "Admin: grant currency or set a tier on the saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.AdminToken == "" {
				return fmt.Errorf("KLK_ADMIN_TOKEN is not set")
			}
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := client.Grant(ctx, cfg.AdminToken, sess.Token, args[0], amount, tier)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Granted. Balance: %s, premium: %s, tier: %s", comma(out.Balance), comma(out.PremiumBalance), out.Tier))
			return nil
		},
	}
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount for currency grants")
	cmd.Flags().StringVar(&tier, "tier", "", "tier name for tier grants")
	return cmd
}

func activeClient(cfg config.CLIConfig) (*cl.Client, cl.StoredSession, error) {
	sess, err := cl.LoadSession()
	if err != nil {
		return nil, cl.StoredSession{}, err
	}
	base := sess.BaseURL
	if base == "" {
		base = cfg.APIBaseURL
	}
	return cl.NewClient(base), sess, nil
}
