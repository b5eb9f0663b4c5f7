// Package cells is a reactive propagation engine: computations are
// expressed as a directed graph of cells, and writing to one cell
// propagates, in deterministic glitch-free order, to every dependent
// cell and watch that reads it.
//
// A cell is a named value holder created with Value (constant),
// NewMutable (writable), or Computed (derived, with automatically
// discovered dependencies). Reading a cell from inside a Computed or
// Watch callback, via Call, both returns its value and registers it
// as a dependency; reading it directly with Value does not.
//
// The engine underneath (package internal) is untyped; this package
// layers a generics-based, type-safe surface over it, the same split
// the reactive core this library is modeled on (AnatoleLucet/sig)
// uses between its internal node graph and its public signal/memo
// API.
package cells
