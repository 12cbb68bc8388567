package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

// addressCmd represents the address command
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the ledger address for the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.Load(getPrivateKeyPath())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), w.Address())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
