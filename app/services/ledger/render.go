package main

import (
	"fmt"
	"sort"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/pterm/pterm"
)

// short trims a hash for display.
func short(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}

// renderChain prints a table with one row per block.
func renderChain(st *state.State) error {
	pterm.DefaultSection.Println("Chain")

	data := pterm.TableData{
		{"Index", "Timestamp", "Nonce", "Txs", "Prev Hash", "Hash", "Merkle Root"},
	}

	for _, block := range st.RetrieveChain() {
		data = append(data, []string{
			fmt.Sprint(block.Index),
			block.TimeStamp,
			fmt.Sprint(block.Nonce),
			fmt.Sprint(len(block.Trans)),
			short(block.PrevBlockHash),
			short(block.Hash),
			short(block.MerkleRoot()),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// renderBalances prints the committed balance of every account, largest
// first.
func renderBalances(st *state.State, ns *nameservice.NameService) error {
	tkn := st.RetrieveToken()
	pterm.DefaultSection.Printfln("Balances (%s)", tkn.Symbol)

	balances := st.QueryAccounts()

	addrs := make([]string, 0, len(balances))
	for addr := range balances {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		if balances[addrs[i]] != balances[addrs[j]] {
			return balances[addrs[i]] > balances[addrs[j]]
		}
		return addrs[i] < addrs[j]
	})

	data := pterm.TableData{
		{"Name", "Address", "Balance", "Txs"},
	}

	for _, addr := range addrs {
		data = append(data, []string{
			ns.Lookup(addr),
			addr,
			st.FormatBalance(addr),
			fmt.Sprint(len(st.QueryTransactionHistory(addr))),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// renderValidity prints the outcome of re-verifying the chain.
func renderValidity(st *state.State) {
	if st.IsValid() {
		pterm.Success.Printfln("chain of %d blocks is valid", len(st.RetrieveChain()))
		return
	}
	pterm.Error.Println("chain failed validation")
}
