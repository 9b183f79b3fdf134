// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/type/boolean"
)

func isInt(c cell.I) (cell.I, error) {
	r, err := Number(c)
	if err != nil {
		return nil, err
	}

	return boolean.Bool(r.IsInt()), nil
}
