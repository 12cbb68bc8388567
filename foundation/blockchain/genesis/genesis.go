// Package genesis maintains access to the genesis configuration.
package genesis

import (
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/foundation/validate"
	"gopkg.in/yaml.v3"
)

// Token represents the currency settings.
type Token struct {
	Name        string `yaml:"name" validate:"required"`
	Symbol      string `yaml:"symbol" validate:"required"`
	Decimals    uint8  `yaml:"decimals" validate:"lte=19"` // Number of decimal places in a whole unit.
	TotalSupply uint64 `yaml:"total_supply" validate:"gt=0"`
}

// Blockchain represents the chain settings.
type Blockchain struct {
	GenesisHash     string `yaml:"genesis_hash" validate:"required"`  // Previous hash placeholder for the genesis block.
	Difficulty      uint   `yaml:"difficulty" validate:"lte=64"`      // How difficult it needs to be to solve the work problem.
	GenesisPreMined uint64 `yaml:"genesis_pre_mined"`                 // Amount credited to the genesis miner.
	GenesisMiner    string `yaml:"genesis_miner" validate:"required"` // Account holding the pre-mined amount.
}

// Genesis represents the genesis file.
type Genesis struct {
	Token      Token      `yaml:"token"`
	Blockchain Blockchain `yaml:"blockchain"`
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis file %q: %w", path, err)
	}

	genesis, err := Parse(content)
	if err != nil {
		return Genesis{}, fmt.Errorf("genesis file %q: %w", path, err)
	}

	return genesis, nil
}

// Parse decodes and validates the YAML representation of the genesis.
func Parse(content []byte) (Genesis, error) {
	var genesis Genesis
	if err := yaml.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding: %w", err)
	}

	if err := validate.Check(genesis); err != nil {
		return Genesis{}, fmt.Errorf("validating: %w", err)
	}

	return genesis, nil
}
