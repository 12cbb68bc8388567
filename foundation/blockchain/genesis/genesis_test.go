package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const valid = `
token:
  name: TestCoin
  symbol: TST
  decimals: 8
  total_supply: 2100000000000000
blockchain:
  genesis_hash: genesis_name
  difficulty: 2
  genesis_pre_mined: 210000000000000
  genesis_miner: Miner
`

func TestParse(t *testing.T) {
	t.Log("Given the need to read the genesis configuration.")
	{
		g, err := genesis.Parse([]byte(valid))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to parse a valid genesis: %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to parse a valid genesis.", success)

		exp := genesis.Genesis{
			Token: genesis.Token{
				Name:        "TestCoin",
				Symbol:      "TST",
				Decimals:    8,
				TotalSupply: 2_100_000_000_000_000,
			},
			Blockchain: genesis.Blockchain{
				GenesisHash:     "genesis_name",
				Difficulty:      2,
				GenesisPreMined: 210_000_000_000_000,
				GenesisMiner:    "Miner",
			},
		}

		if g != exp {
			t.Logf("\t%s\tgot: %+v", failed, g)
			t.Logf("\t%s\texp: %+v", failed, exp)
			t.Fatalf("\t%s\tShould get back every field.", failed)
		}
		t.Logf("\t%s\tShould get back every field.", success)
	}
}

func TestParseInvalid(t *testing.T) {
	type table struct {
		name    string
		content string
		fields  []string
	}

	tt := []table{
		{
			name: "missing",
			content: `
token:
  decimals: 20
  total_supply: 0
blockchain:
  difficulty: 65
`,
			fields: []string{"name", "symbol", "decimals", "total_supply", "genesis_hash", "difficulty", "genesis_miner"},
		},
	}

	t.Log("Given the need to reject invalid genesis configuration.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s fields.", testID, tst.name)
			{
				f := func(t *testing.T) {
					_, err := genesis.Parse([]byte(tst.content))
					if err == nil {
						t.Fatalf("\t%s\tTest %d:\tShould fail validation.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould fail validation.", success, testID)

					fe := validate.GetFieldErrors(err)
					if fe == nil {
						t.Fatalf("\t%s\tTest %d:\tShould get back field errors: %v", failed, testID, err)
					}

					fields := fe.Fields()
					for _, name := range tst.fields {
						if _, exists := fields[name]; !exists {
							t.Fatalf("\t%s\tTest %d:\tShould report field %q: %v", failed, testID, name, err)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould report every invalid field.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}

	if _, err := genesis.Parse([]byte("token: [")); err == nil {
		t.Fatalf("Should fail on malformed YAML.")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yml")
	if err := os.WriteFile(path, []byte(valid), 0600); err != nil {
		t.Fatalf("Should be able to write the genesis file: %s", err)
	}

	g, err := genesis.Load(path)
	if err != nil {
		t.Fatalf("Should be able to load the genesis file: %s", err)
	}

	if g.Blockchain.GenesisMiner != "Miner" {
		t.Fatalf("Should get back the genesis miner, got %q.", g.Blockchain.GenesisMiner)
	}

	if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("Should fail for a missing file.")
	}
}
