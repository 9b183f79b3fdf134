// Released under an MIT license. See LICENSE.

// Package common defines common interfaces
package common

import (
	"fmt"
)

// Stringer is anything with a text form.
type Stringer = fmt.Stringer
