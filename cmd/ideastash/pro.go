package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/ideastash/pkg/entitlement"
)

func newProCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pro",
		Short: "Manage the premium subscription",
	}
	cmd.AddCommand(newProStatusCmd(c), newProOfferingsCmd(c), newProPurchaseCmd(c), newProRestoreCmd(c))
	return cmd
}

func newProStatusCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether premium is unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if asJSON {
				info, err := app.Provider.CustomerInfo(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), info)
			}
			pro := app.Subscription.Snapshot().IsPro
			fmt.Fprintf(cmd.OutOrStdout(), "Premium: %s\n", onOff(pro, "active", "inactive"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output customer info in JSON format")
	return cmd
}

func newProOfferingsCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "offerings",
		Short: "List the available packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			offering, err := app.Subscription.Offerings(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, offering)
			}
			for _, p := range offering.AvailablePackages {
				fmt.Fprintf(out, "%-10s %-9s %-12s %s\n", p.Identifier, p.PackageType,
					p.StoreProduct.LocalizedPriceString, p.StoreProduct.ProductTitle)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func newProPurchaseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "purchase <package>",
		Short: "Buy a package (see pro offerings)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			offering, err := app.Subscription.Offerings(ctx)
			if err != nil {
				return err
			}
			pkg, ok := offering.Package(args[0])
			if !ok {
				return &entitlement.PurchaseError{Package: args[0], Err: entitlement.ErrUnknownPackage}
			}

			purchased, err := app.Subscription.Purchase(ctx, pkg)
			if errors.Is(err, entitlement.ErrAlreadyEntitled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Premium is already active.")
				return nil
			}
			if err != nil {
				return err
			}
			if !purchased {
				fmt.Fprintln(cmd.OutOrStdout(), "Purchase was not completed.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purchased %s. Premium is active.\n", pkg.Identifier)
			return nil
		},
	}
}

func newProRestoreCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore a previous purchase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			restored, err := app.Subscription.Restore(cmd.Context())
			if err != nil {
				return err
			}
			if !restored {
				fmt.Fprintln(cmd.OutOrStdout(), "No previous purchase found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Purchase restored. Premium is active.")
			return nil
		},
	}
}
