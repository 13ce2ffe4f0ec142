package api

import (
	"fmt"

	"github.com/stellar/go-stellar-sdk/network"
)

// network selectors
const (
	NetworkMain    = "main"
	NetworkTestnet = "testnet"
)

// Horizon endpoints
const (
	MainnetHorizonURL = "https://horizon.stellar.org"
	TestnetHorizonURL = "https://horizon-testnet.stellar.org"
)

// native asset
const (
	NativeSymbol   = "XLM"
	NativeDecimals = 7
)

// NetworkConfig describes how to reach one Stellar network and how to link
// into its block explorer.
type NetworkConfig struct {
	Name       string
	Identifier string
	Passphrase string
	HorizonURL string

	explorerPath string
}

// TransactionLink returns the explorer URL for a transaction hash.
func (n NetworkConfig) TransactionLink(hash string) string {
	return fmt.Sprintf("https://stellar.expert/explorer/%s/tx/%s", n.explorerPath, hash)
}

// WalletLink returns the explorer URL for an account address.
func (n NetworkConfig) WalletLink(address string) string {
	return fmt.Sprintf("https://stellar.expert/explorer/%s/account/%s", n.explorerPath, address)
}

var networks = map[string]NetworkConfig{
	NetworkMain: {
		Name:         NetworkMain,
		Identifier:   "PUBLIC",
		Passphrase:   network.PublicNetworkPassphrase,
		HorizonURL:   MainnetHorizonURL,
		explorerPath: "public",
	},
	NetworkTestnet: {
		Name:         NetworkTestnet,
		Identifier:   "TESTNET",
		Passphrase:   network.TestNetworkPassphrase,
		HorizonURL:   TestnetHorizonURL,
		explorerPath: "testnet",
	},
}

// Resolve returns the config for the given selector. Only the exact mainnet
// selector reaches the public network, everything else lands on testnet.
func Resolve(selector string) NetworkConfig {
	if selector == NetworkMain {
		return networks[NetworkMain]
	}
	return networks[NetworkTestnet]
}

// GetTransactionLink returns the explorer link for txID on the given network.
func GetTransactionLink(txID, selector string) string {
	return Resolve(selector).TransactionLink(txID)
}

// GetWalletLink returns the explorer link for address on the given network.
func GetWalletLink(address, selector string) string {
	return Resolve(selector).WalletLink(address)
}
