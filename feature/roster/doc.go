// Package roster loads the shared credentials grid, matches client
// names against it, proposes unused credentials, and records handed-out
// rows back onto the grid.
package roster
