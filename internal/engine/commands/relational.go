// Released under an MIT license. See LICENSE.

package commands

import (
	"math/big"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/type/boolean"
)

func gt(a, b *big.Rat) (cell.I, error) {
	return boolean.Bool(a.Cmp(b) > 0), nil
}

func lt(a, b *big.Rat) (cell.I, error) {
	return boolean.Bool(a.Cmp(b) < 0), nil
}
