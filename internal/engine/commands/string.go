// Released under an MIT license. See LICENSE.

package commands

import (
	"strings"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
)

// Concat joins the text of every str in parts.
func Concat(parts []cell.I) (cell.I, error) {
	var b strings.Builder

	for _, p := range parts {
		s, err := Text(p)
		if err != nil {
			return nil, err
		}

		b.WriteString(s)
	}

	return str.New(b.String()), nil
}

// Text returns the text of c if c is a str.
func Text(c cell.I) (string, error) {
	if !str.Is(c) {
		return "", fault.TypeError("str", c.Name())
	}

	return str.To(c).String(), nil
}
