// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/type/boolean"
)

func not(c cell.I) (cell.I, error) {
	b, err := Truth(c)
	if err != nil {
		return nil, err
	}

	return boolean.Bool(!b), nil
}
