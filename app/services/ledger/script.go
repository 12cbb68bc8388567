package main

import (
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/ardanlabs/ledger/foundation/validate"
	"gopkg.in/yaml.v3"
)

// scriptTx is a transaction as written in the script. Parties may be names
// from the accounts folder or raw addresses.
type scriptTx struct {
	Sender   string `yaml:"sender"`
	Receiver string `yaml:"receiver"`
	Amount   uint64 `yaml:"amount"`
}

// scriptBlock is one batch of transactions submitted before a block is added.
type scriptBlock struct {
	Transactions []scriptTx `yaml:"transactions" validate:"required,min=1"`
}

// script is the set of batches the runner replays against the ledger.
type script struct {
	Blocks []scriptBlock `yaml:"blocks" validate:"required,min=1,dive"`
}

// loadScript reads and validates the transactions script.
func loadScript(path string) (script, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return script{}, fmt.Errorf("reading script %q: %w", path, err)
	}

	var s script
	if err := yaml.Unmarshal(content, &s); err != nil {
		return script{}, fmt.Errorf("decoding script %q: %w", path, err)
	}

	if err := validate.Check(s); err != nil {
		return script{}, fmt.Errorf("validating script %q: %w", path, err)
	}

	return s, nil
}

// transactions resolves the names in the batch into ledger transactions.
func (b scriptBlock) transactions(ns *nameservice.NameService) []database.Tx {
	trans := make([]database.Tx, len(b.Transactions))
	for i, tx := range b.Transactions {
		trans[i] = database.NewTx(ns.Resolve(tx.Sender), ns.Resolve(tx.Receiver), tx.Amount)
	}
	return trans
}
