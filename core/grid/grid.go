package grid

import "context"

// Source is the contract with the tabular data source holding the
// credentials roster. The service treats the grid as a plain string
// matrix and performs all typing and header inference itself.
//
// Rows and columns are 1-based, matching how operators talk about
// spreadsheet cells.
type Source interface {
	// Values returns the full grid as rows of cell strings.
	Values(ctx context.Context) ([][]string, error)
	// ColumnValues returns one column top to bottom, including the
	// header cell.
	ColumnValues(ctx context.Context, col int) ([]string, error)
	// UpdateCell writes a single cell.
	UpdateCell(ctx context.Context, row, col int, value string) error
	// ClearRowFormat removes highlight formatting from the cell span
	// [fromCol, toCol] of a row. Backends without formatting support
	// treat this as a no-op.
	ClearRowFormat(ctx context.Context, row, fromCol, toCol int) error
}

// ColumnLetter converts a 1-based column number to its A1-notation
// letter ("A", "B", ..., "AA").
func ColumnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
