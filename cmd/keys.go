package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/stellarpay/wallet"
)

var (
	keysIndex      uint32
	keysCount      uint32
	keysPassphrase bool
	keysShowSecret bool
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate and derive Stellar keys",
	Long: `Generate mnemonics and derive SEP-5 accounts (m/44'/148'/index').

Keys are printed, never stored.`,
}

var keysNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new recovery phrase",
	Long: `Generate a 24 word recovery phrase and show its first account.

Examples:
  stellarpay keys new`,
	Args: cobra.NoArgs,
	RunE: runKeysNew,
}

var keysDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive accounts from a recovery phrase",
	Long: `Derive accounts from a recovery phrase read from the terminal.

Examples:
  stellarpay keys derive                  # account 0
  stellarpay keys derive --index 2        # account 2
  stellarpay keys derive --count 5        # accounts 0 to 4
  stellarpay keys derive --show-secret    # include secret seeds`,
	Args: cobra.NoArgs,
	RunE: runKeysDerive,
}

func init() {
	keysDeriveCmd.Flags().Uint32Var(&keysIndex, "index", 0, "first account index")
	keysDeriveCmd.Flags().Uint32Var(&keysCount, "count", 1, "number of accounts")
	keysDeriveCmd.Flags().BoolVar(&keysPassphrase, "passphrase", false, "prompt for a BIP-39 passphrase")
	keysDeriveCmd.Flags().BoolVar(&keysShowSecret, "show-secret", false, "print secret seeds")

	keysCmd.AddCommand(keysNewCmd)
	keysCmd.AddCommand(keysDeriveCmd)
}

func runKeysNew(cmd *cobra.Command, args []string) error {
	mnemonic, err := wallet.NewMnemonic()
	if err != nil {
		return err
	}
	kp, err := wallet.DeriveKeypair(mnemonic, "", 0)
	if err != nil {
		return err
	}

	fmt.Println("🔐 Recovery Phrase:")
	fmt.Println()
	fmt.Printf("   %s\n", mnemonic)
	fmt.Println()
	fmt.Printf("🔑 Account 0 (%s): %s\n", wallet.DerivationPath(0), color.GreenString(kp.Address()))
	fmt.Println()
	fmt.Println("⚠️  Security Warning:")
	fmt.Println("   - Anyone with this phrase can access your funds")
	fmt.Println("   - Write it down and store it safely")
	return nil
}

func runKeysDerive(cmd *cobra.Command, args []string) error {
	last, err := accountRange(keysIndex, keysCount)
	if err != nil {
		return err
	}

	mnemonic, err := readSecret("Enter recovery phrase: ")
	if err != nil {
		return err
	}
	var passphrase string
	if keysPassphrase {
		if passphrase, err = readSecret("Enter passphrase: "); err != nil {
			return err
		}
	}

	for i := keysIndex; ; i++ {
		kp, err := wallet.DeriveKeypair(mnemonic, passphrase, i)
		if err != nil {
			return err
		}
		fmt.Printf("🔑 %-16s %s\n", wallet.DerivationPath(i), color.GreenString(kp.Address()))
		if keysShowSecret {
			fmt.Printf("   %-16s %s\n", "secret", kp.Seed())
		}
		if i == last {
			return nil
		}
	}
}

// accountRange returns the last index of count accounts starting at index.
func accountRange(index, count uint32) (uint32, error) {
	if count == 0 || count > 100 {
		return 0, fmt.Errorf("count must be between 1 and 100")
	}
	if index > wallet.MaxAccountIndex || count-1 > wallet.MaxAccountIndex-index {
		return 0, fmt.Errorf("accounts %d to %d exceed the highest index %d",
			index, uint64(index)+uint64(count)-1, wallet.MaxAccountIndex)
	}
	return index + count - 1, nil
}
