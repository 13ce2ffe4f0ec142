package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/stellarpay/api"
)

var networkCmd = &cobra.Command{
	Use:   "network [main|testnet]",
	Short: "Show network details",
	Long: `Show the Horizon endpoint, passphrase and explorer of a network.

Any selector other than "main" resolves to testnet.

Examples:
  stellarpay network            # Show the configured network
  stellarpay network main       # Show mainnet details`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	cfg := currentNetwork()
	if len(args) == 1 {
		cfg = api.Resolve(args[0])
	}

	if cfg.Name == api.NetworkMain {
		fmt.Printf("🌐 Network: %s\n", color.GreenString("Mainnet"))
	} else {
		fmt.Printf("🌐 Network: %s\n", color.YellowString("Testnet"))
	}
	fmt.Println()
	fmt.Printf("   Identifier: %s\n", cfg.Identifier)
	fmt.Printf("   Horizon:    %s\n", cfg.HorizonURL)
	fmt.Printf("   Passphrase: %s\n", cfg.Passphrase)
	fmt.Println()

	if cfg.Name == api.NetworkMain {
		fmt.Println("🚨 Payments on this network move real funds")
	} else {
		fmt.Println("💡 Fund testnet accounts with friendbot: https://friendbot.stellar.org/?addr=<address>")
	}
	return nil
}
