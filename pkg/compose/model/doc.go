// Package model provides the data structures shared by the compose package and its observers.
// It defines how a unit is described (kind, name, position in a composition tree), how a single
// run of a unit is reported, and the Observer hooks that logging, tracing and measure plug into.
package model
