package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/stellarpay/api"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [account] [asset-code asset-issuer]",
	Short: "Check an account balance",
	Long: `Check the balance an account holds of XLM or of a credit asset.

Examples:
  stellarpay balance GBRP...                 # XLM balance
  stellarpay balance GBRP... USDC GA5Z...    # USDC balance`,
	Args: assetArgs,
	RunE: runBalance,
}

var trustedCmd = &cobra.Command{
	Use:   "trusted [account] [asset-code asset-issuer]",
	Short: "Check whether an account trusts an asset",
	Long: `Check whether an account has a trust line for a credit asset.
XLM is always trusted.

Examples:
  stellarpay trusted GBRP... USDC GA5Z...`,
	Args: assetArgs,
	RunE: runTrusted,
}

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Show recent network fees",
	Long: `Show the fee percentiles charged in recent ledgers.

Examples:
  stellarpay fees
  stellarpay fees -n main`,
	Args: cobra.NoArgs,
	RunE: runFees,
}

func assetArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 && len(args) != 3 {
		return fmt.Errorf("expected an account, optionally followed by asset code and issuer")
	}
	if !api.IsValidAddress(args[0]) {
		return fmt.Errorf("invalid Stellar account: %s", args[0])
	}
	return nil
}

func assetFromArgs(args []string) api.Asset {
	if len(args) == 3 {
		return api.NewAsset(args[1], args[2])
	}
	return api.NativeAsset()
}

func runBalance(cmd *cobra.Command, args []string) error {
	cfg := currentNetwork()
	client := newClient()
	account, asset := args[0], assetFromArgs(args)

	fmt.Println("💰 Account Balance")
	fmt.Printf("🌐 Network: %s\n", cfg.Identifier)
	fmt.Println()

	balance, err := client.GetBalance(cfg.Name, account, asset.Code, asset.Issuer)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrAccountNotFound):
			return fmt.Errorf("account %s does not exist on %s", account, cfg.Identifier)
		case errors.Is(err, api.ErrAssetNotFound):
			return fmt.Errorf("account %s does not hold %s", account, asset)
		}
		return fmt.Errorf("failed to get balance: %w", err)
	}

	symbol := api.NativeSymbol
	if !asset.IsNative() {
		symbol = asset.Code
	}
	fmt.Printf("   %s %s\n", color.GreenString(balance.String()), symbol)
	fmt.Printf("   %s\n", cfg.WalletLink(account))
	return nil
}

func runTrusted(cmd *cobra.Command, args []string) error {
	cfg := currentNetwork()
	client := newClient()
	account, asset := args[0], assetFromArgs(args)

	trusted, err := client.IsTrusted(cfg.Name, account, asset.Code, asset.Issuer)
	if err != nil {
		return fmt.Errorf("failed to check trust line: %w", err)
	}

	if trusted {
		fmt.Printf("✅ %s trusts %s\n", account, color.GreenString(asset.String()))
	} else {
		fmt.Printf("❌ %s has no trust line for %s\n", account, color.RedString(asset.String()))
	}
	return nil
}

func runFees(cmd *cobra.Command, args []string) error {
	cfg := currentNetwork()
	client := newClient()

	stats, err := client.GetFeeStats(cfg.Name)
	if err != nil {
		return err
	}

	fmt.Printf("⛽ Network Fees (%s, per operation)\n", cfg.Identifier)
	fmt.Println()
	fmt.Printf("   Base:     %s %s\n", stats.BaseFee, stats.FeeCryptoCurrency)
	fmt.Printf("   Low:      %s %s\n", stats.LowFeeCharged, stats.FeeCryptoCurrency)
	fmt.Printf("   Standard: %s %s\n", stats.StandardFeeCharged, stats.FeeCryptoCurrency)
	fmt.Printf("   Fast:     %s %s\n", color.GreenString(stats.FastFeeCharged.String()), stats.FeeCryptoCurrency)
	fmt.Printf("   Max:      %s %s\n", stats.MaxFeeCharged, stats.FeeCryptoCurrency)
	return nil
}
