package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ardanlabs/ledger/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

var (
	receiver string
	amount   uint64
)

// signCmd represents the sign command
var signCmd = &cobra.Command{
	Use:   "sign [data]",
	Short: "Sign data, or a transaction when --to is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.Load(getPrivateKeyPath())
		if err != nil {
			return err
		}

		if receiver == "" {
			if len(args) == 0 {
				return errors.New("nothing to sign")
			}

			sig, err := w.Sign([]byte(args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), sig)
			return nil
		}

		tx, err := w.NewTx(receiver, amount)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(tx, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [data] [signature]",
	Short: "Verify the data was signed by the account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.Load(getPrivateKeyPath())
		if err != nil {
			return err
		}

		if !signature.Verify([]byte(args[0]), args[1], w.PublicKey()) {
			return signature.ErrInvalidSignature
		}

		fmt.Fprintln(cmd.OutOrStdout(), "signature verified")
		return nil
	},
}

func init() {
	signCmd.Flags().StringVarP(&receiver, "to", "t", "", "Receiver address of the transaction.")
	signCmd.Flags().Uint64VarP(&amount, "amount", "v", 0, "Amount to send in the token's smallest unit.")

	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
}
