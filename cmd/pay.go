package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chinmay1088/stellarpay/api"
)

var (
	payAssetCode   string
	payAssetIssuer string
	payFee         string
	payMemo        string
	payYes         bool
)

var payCmd = &cobra.Command{
	Use:   "pay [amount] [destination]",
	Short: "Send a payment",
	Long: `Send XLM or a credit asset to another account.

The secret seed (S...) of the source account is read from the terminal.
The fee defaults to the fast percentile of recent ledgers.

Examples:
  stellarpay pay 10 GBRP...
  stellarpay pay 25.5 GBRP... --asset-code USDC --asset-issuer GA5Z...
  stellarpay pay 1 GBRP... --memo "invoice 42" --fee 0.0001`,
	Args: cobra.ExactArgs(2),
	RunE: runPay,
}

func init() {
	payCmd.Flags().StringVar(&payAssetCode, "asset-code", "", "credit asset code")
	payCmd.Flags().StringVar(&payAssetIssuer, "asset-issuer", "", "credit asset issuer")
	payCmd.Flags().StringVar(&payFee, "fee", "", "fee per operation in XLM (default: estimated)")
	payCmd.Flags().StringVar(&payMemo, "memo", "", "text memo, at most 28 bytes")
	payCmd.Flags().BoolVarP(&payYes, "yes", "y", false, "skip confirmation")
}

func runPay(cmd *cobra.Command, args []string) error {
	cfg := currentNetwork()
	client := newClient()
	amount, destination := args[0], args[1]

	if !api.IsValidAddress(destination) {
		return fmt.Errorf("invalid Stellar address: %s", destination)
	}
	if _, err := api.ToNative(amount, api.NativeDecimals); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	asset := api.NewAsset(payAssetCode, payAssetIssuer)
	if !asset.IsNative() {
		trusted, err := client.IsTrusted(cfg.Name, destination, asset.Code, asset.Issuer)
		if err != nil {
			return fmt.Errorf("failed to check destination trust line: %w", err)
		}
		if !trusted {
			return fmt.Errorf("destination %s has no trust line for %s", destination, asset)
		}
	}

	secret, err := readSecret("Enter source secret seed: ")
	if err != nil {
		return err
	}

	fmt.Printf("📊 Payment Details:\n")
	fmt.Printf("   To:      %s\n", destination)
	fmt.Printf("   Amount:  %s %s\n", amount, assetSymbol(asset))
	if payFee != "" {
		fmt.Printf("   Fee:     %s XLM\n", payFee)
	} else {
		fmt.Printf("   Fee:     ~%s XLM\n", api.StroopsToXLM(client.RecommendedFee(cfg.Name)))
	}
	if payMemo != "" {
		fmt.Printf("   Memo:    %s\n", payMemo)
	}
	fmt.Printf("   Network: %s\n", cfg.Identifier)

	if !payYes && !getTransactionConfirmation(cfg) {
		fmt.Println("❌ Payment cancelled by user")
		return nil
	}

	stop := startSpinner("Submitting payment...")
	receipt, err := client.SendPayment(api.PaymentRequest{
		To:          destination,
		Amount:      amount,
		Network:     cfg.Name,
		PrivateKey:  secret,
		AssetCode:   payAssetCode,
		AssetIssuer: payAssetIssuer,
		Fee:         payFee,
		Memo:        payMemo,
	})
	stop()
	if err != nil {
		if rejected, ok := api.AsRejected(err); ok {
			fmt.Printf("❌ Payment rejected: %s\n", color.RedString(rejected.TransactionCode))
			for _, code := range rejected.OperationCodes {
				fmt.Printf("   operation: %s\n", code)
			}
			return err
		}
		if errors.Is(err, api.ErrInvalidKey) {
			return fmt.Errorf("the secret seed is not valid")
		}
		return fmt.Errorf("failed to send payment: %w", err)
	}

	fmt.Println("✅ Payment confirmed!")
	fmt.Printf("   From:     %s\n", receipt.From)
	fmt.Printf("   Hash:     %s\n", receipt.TransactionHash)
	fmt.Printf("   Fee paid: %s %s\n", receipt.GasCostInCrypto, receipt.GasCostCryptoCurrency)
	fmt.Printf("   🔗 %s\n", receipt.TransactionLink)
	return nil
}

func assetSymbol(asset api.Asset) string {
	if asset.IsNative() {
		return api.NativeSymbol
	}
	return asset.Code
}

func getTransactionConfirmation(cfg api.NetworkConfig) bool {
	fmt.Println()
	if cfg.Name == api.NetworkMain {
		fmt.Printf("🚨 You are on the public network. By confirming this payment real funds will be sent.\n")
	} else {
		fmt.Printf("⚠️ You are on testnet. By confirming this payment no real funds will be sent.\n")
	}

	fmt.Printf("Press y to confirm or n to stop (y/n): ")
	return readConfirmation(stdin)
}

// stdin is shared by every prompt so lines buffered by one read stay
// available to the next.
var stdin = bufio.NewReader(os.Stdin)

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readConfirmation(r *bufio.Reader) bool {
	response, _ := readLine(r)
	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}

// readSecret reads a line without echo when stdin is a terminal.
func readSecret(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := readLine(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return line, nil
	}

	fmt.Print(prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// startSpinner shows an indeterminate spinner until the returned func runs.
func startSpinner(description string) func() {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
		bar.Finish()
	}
}
