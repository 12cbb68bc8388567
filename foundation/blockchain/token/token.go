// Package token describes the unit of value balances are expressed in and
// how amounts are displayed.
package token

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrDecimalsOverflow is returned when the number of decimals produces a
// smallest unit that can't be represented in 64 bits.
var ErrDecimalsOverflow = errors.New("token decimals overflow the smallest unit")

// Token represents the currency of the ledger. All amounts on the ledger are
// denominated in the smallest unit.
type Token struct {
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Decimals     uint8  `json:"decimals"`
	SmallestUnit uint64 `json:"smallest_unit"` // Always 10^Decimals.
	TotalSupply  uint64 `json:"total_supply"`
}

// New constructs a token, deriving the smallest unit from the decimals.
func New(name string, symbol string, decimals uint8, totalSupply uint64) (Token, error) {
	unit := uint64(1)
	for i := uint8(0); i < decimals; i++ {
		hi, lo := bits.Mul64(unit, 10)
		if hi != 0 {
			return Token{}, fmt.Errorf("%w: decimals[%d]", ErrDecimalsOverflow, decimals)
		}
		unit = lo
	}

	tkn := Token{
		Name:         name,
		Symbol:       symbol,
		Decimals:     decimals,
		SmallestUnit: unit,
		TotalSupply:  totalSupply,
	}

	return tkn, nil
}

// FormatAmount renders an amount of smallest units as whole.fraction with the
// fraction zero padded to the number of decimals. No rounding takes place.
func (t Token) FormatAmount(amount uint64) string {
	whole := amount / t.SmallestUnit
	fractional := amount % t.SmallestUnit

	return fmt.Sprintf("%d.%0*d", whole, int(t.Decimals), fractional)
}

// String implements the fmt.Stringer interface for logging.
func (t Token) String() string {
	return fmt.Sprintf("%s(%s):decimals[%d]:supply[%s]", t.Name, t.Symbol, t.Decimals, t.FormatAmount(t.TotalSupply))
}
