package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/stellarpay/api"
)

// maxLookups bounds how many hashes one invocation may query.
const maxLookups = 20

type lookupResult struct {
	Hash    string
	Receipt *api.Receipt
}

var txCmd = &cobra.Command{
	Use:   "tx [hash...]",
	Short: "Show transaction receipts",
	Long: `Look up one or more transactions by hash and show their receipts.
Lookups run concurrently, at most 20 hashes per call.

Examples:
  stellarpay tx 3389e9f0...
  stellarpay tx 3389e9f0... a2f1b4a9... -n main`,
	Args: cobra.RangeArgs(1, maxLookups),
	RunE: runTx,
}

func runTx(cmd *cobra.Command, args []string) error {
	cfg := currentNetwork()
	client := newClient()

	fmt.Println("🔄 Loading transactions...")
	startTime := time.Now()

	results := make([]lookupResult, len(args))
	var wg sync.WaitGroup
	for i, hash := range args {
		wg.Add(1)
		go func(i int, hash string) {
			defer wg.Done()
			results[i] = lookupResult{Hash: hash, Receipt: client.GetTransaction(hash, cfg.Name)}
		}(i, hash)
	}
	wg.Wait()

	missing := 0
	for _, res := range results {
		fmt.Println()
		if res.Receipt == nil {
			missing++
			fmt.Printf("❓ %s: %s\n", res.Hash, color.YellowString("not found on %s", cfg.Identifier))
			continue
		}
		printReceipt(res.Receipt)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\n⏱️ Loaded in %v\n", elapsed.Round(time.Millisecond*10))

	if missing == len(results) {
		return fmt.Errorf("no transaction found")
	}
	return nil
}

func printReceipt(r *api.Receipt) {
	status := color.GreenString("successful")
	if r.Status != nil && r.IsFailed {
		status = color.RedString("failed")
	}

	fmt.Printf("📄 %s (%s)\n", r.TransactionHash, status)
	if r.Date != nil {
		fmt.Printf("   Date:     %s\n", r.Date.Format(time.RFC1123))
	}
	fmt.Printf("   Fee paid: %s %s (max %s)\n", r.GasCostInCrypto, r.GasCostCryptoCurrency, r.GasLimit)
	fmt.Printf("   Network:  %s\n", r.Network)
	fmt.Printf("   🔗 %s\n", r.TransactionLink)
}
