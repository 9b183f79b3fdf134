// Released under an MIT license. See LICENSE.

// Package cell defines the interface for all kaguya terms.
package cell

// I (cell) is the basic unit of storage in kaguya.
//
// The set of terms is closed. Evaluation, equality, hashing and rendering
// switch over the concrete types in the task package.
type I interface {
	Name() string
}
