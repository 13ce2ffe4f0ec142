package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/stellarpay/api"
	"github.com/chinmay1088/stellarpay/config"
)

var (
	version = "0.1.0"

	networkFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stellarpay",
	Short: "Send and inspect Stellar payments",
	Long: `stellarpay talks to Stellar Horizon to check balances and trust lines,
estimate fees, submit payments and look up transactions.

Secrets are read from the terminal for each command and never stored.

Configuration (environment):
  STELLARPAY_NETWORK             main or testnet (default testnet)
  STELLARPAY_HORIZON_TIMEOUT     horizon request timeout in ms (default 30000)
  STELLARPAY_TX_TIMEOUT          transaction validity window in s (default 180)
  STELLARPAY_FEE_PERCENTILE_CAP  fee cap in stroops, 0 disables (default 0)
  STELLARPAY_DEFAULT_MEMO        memo for payments without one
  STELLARPAY_LOG_LEVEL           logrus level 0-6 (default 4)
  STELLARPAY_SERVE_ADDR          gateway listen address (default 127.0.0.1:9090)

Examples:
  stellarpay balance GBRP...           # XLM balance
  stellarpay trusted GBRP... USDC GA5Z...
  stellarpay fees -n main              # current mainnet fees
  stellarpay pay 10 GBRP...            # send 10 XLM
  stellarpay tx 3389e9f0...            # transaction receipt
  stellarpay keys derive --count 3     # SEP-5 accounts from a mnemonic
  stellarpay serve                     # HTTP gateway`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		log.SetLevel(config.GetLogLevel())
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&networkFlag, "network", "n", "", "network to use (main|testnet), defaults to STELLARPAY_NETWORK")

	// Add subcommands
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(trustedCmd)
	rootCmd.AddCommand(feesCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(networkCmd)
}

// currentNetwork resolves the --network flag, falling back to config.
func currentNetwork() api.NetworkConfig {
	if networkFlag != "" {
		return api.Resolve(networkFlag)
	}
	return api.Resolve(config.GetNetwork())
}

func newClient() *api.Client {
	return api.NewClient(config.ClientConfig())
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stellarpay v%s\n", version)
	},
}
