package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/stellarpay/api"
	"github.com/chinmay1088/stellarpay/wallet"
)

var addressCmd = &cobra.Command{
	Use:   "address [account]",
	Short: "Validate an address or show the address of a secret",
	Long: `With an argument, check that it is a valid Stellar account id.
Without one, read a secret seed from the terminal and show its account id.

Examples:
  stellarpay address GBRP...    # Validate an address
  stellarpay address            # Address of a secret seed`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAddress,
}

var linkCmd = &cobra.Command{
	Use:   "link [tx|account] [id]",
	Short: "Print an explorer link",
	Long: `Print the block explorer link of a transaction or an account.

Examples:
  stellarpay link tx 3389e9f0...
  stellarpay link account GBRP... -n main`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"tx", "account"},
	RunE:      runLink,
}

func runAddress(cmd *cobra.Command, args []string) error {
	cfg := currentNetwork()

	if len(args) == 1 {
		if !api.IsValidAddress(args[0]) {
			fmt.Printf("❌ %s\n", color.RedString("not a valid Stellar account id"))
			return fmt.Errorf("invalid address: %s", args[0])
		}
		fmt.Printf("✅ %s is a valid account id\n", args[0])
		fmt.Printf("   🔗 %s\n", cfg.WalletLink(args[0]))
		return nil
	}

	secret, err := readSecret("Enter secret seed: ")
	if err != nil {
		return err
	}
	kp, err := wallet.ParseSecret(secret)
	if err != nil {
		return err
	}

	fmt.Println("🔑 Your account:")
	fmt.Printf("   %s\n", color.GreenString(kp.Address()))
	fmt.Printf("   🔗 %s\n", cfg.WalletLink(kp.Address()))
	return nil
}

func runLink(cmd *cobra.Command, args []string) error {
	selector := currentNetwork().Name

	switch args[0] {
	case "tx", "transaction":
		fmt.Println(api.GetTransactionLink(args[1], selector))
	case "account", "wallet":
		if !api.IsValidAddress(args[1]) {
			return fmt.Errorf("invalid address: %s", args[1])
		}
		fmt.Println(api.GetWalletLink(args[1], selector))
	default:
		return fmt.Errorf("unknown link kind: %s. Use 'tx' or 'account'", args[0])
	}
	return nil
}
