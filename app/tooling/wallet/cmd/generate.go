package cmd

import (
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key for the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getPrivateKeyPath()

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("key file %q already exists", path)
		}

		w, err := wallet.New()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(accountPath, 0700); err != nil {
			return err
		}

		if err := w.Save(path); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), w.Address())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
