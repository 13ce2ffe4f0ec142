package api

// API Client-
//
// Files:
//   config.go        - network registry (horizon endpoints, passphrases, explorer links)
//   units.go         - stroop <-> decimal conversion
//   types.go         - assets, snapshots, fee stats, receipts and raw horizon schemas
//   errors.go        - error kinds surfaced to callers
//   base.go          - Client struct, NewClient, per-call ledger accessor
//   horizon.go       - Ledger implementation on top of horizonclient
//   fees.go          - fee percentile stats and recommended submission fee
//   account.go       - balances and trust lines
//   transactions.go  - payment submission and transaction lookup
//   metrics.go       - prometheus counters
//
// Usage:
//   client := api.NewClient(api.Config{})
//   balance, err := client.GetBalance("testnet", accountID, "", "")
//   receipt, err := client.SendPayment(api.PaymentRequest{...})
//   receipt := client.GetTransaction(hash, "testnet") // nil when absent
