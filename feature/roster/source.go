package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subscriber-desk/core/cache"
	"subscriber-desk/core/grid"
	"subscriber-desk/core/textutil"
	"subscriber-desk/feature/roster/models"
)

// headerScanRows is how many leading rows are examined when looking
// for the header row; rosters often start with banner or title rows.
const headerScanRows = 5

// Cache keys: the raw matrix and the derived records are cached as a
// unit and always invalidated together.
const (
	cacheKeyMatrix  = "matrix"
	cacheKeyRecords = "records"
)

// Source loads the roster grid and derives column-tolerant records
// from it, caching both with a single TTL.
type Source struct {
	grid    grid.Source
	matrix  *cache.Cache[[][]string]
	records *cache.Cache[[]models.Record]
}

// NewSource creates a roster source over the given grid backend.
// ttl <= 0 disables caching entirely.
func NewSource(g grid.Source, ttl time.Duration) *Source {
	return &Source{
		grid:    g,
		matrix:  cache.New(ttl, 1, cache.CloneFunc[[][]string](cloneMatrix)),
		records: cache.New(ttl, 1, cache.CloneFunc[[]models.Record](cloneRecords)),
	}
}

func cloneMatrix(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func cloneRecords(records []models.Record) []models.Record {
	out := make([]models.Record, len(records))
	for i, rec := range records {
		copied := make(models.Record, len(rec))
		for k, v := range rec {
			copied[k] = v
		}
		out[i] = copied
	}
	return out
}

// Matrix returns the raw grid, from cache unless forceRefresh.
func (s *Source) Matrix(ctx context.Context, forceRefresh bool) ([][]string, error) {
	if !forceRefresh {
		if rows, ok := s.matrix.Get(cacheKeyMatrix); ok {
			return rows, nil
		}
	}
	rows, err := s.grid.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("roster: loading grid: %w", err)
	}
	s.matrix.Set(cacheKeyMatrix, rows)
	return rows, nil
}

// Records returns the roster as derived records, re-reading the grid
// and re-discovering headers when forced or the cache is cold.
func (s *Source) Records(ctx context.Context, forceRefresh bool) ([]models.Record, error) {
	if !forceRefresh {
		if records, ok := s.records.Get(cacheKeyRecords); ok {
			return records, nil
		}
	}

	rows, err := s.Matrix(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	records := deriveRecords(rows)
	s.records.Set(cacheKeyRecords, records)
	return records, nil
}

// InvalidateCaches drops both cache slots. Called after every
// confirmed write so no stale row data can be served.
func (s *Source) InvalidateCaches() {
	s.matrix.Clear()
	s.records.Clear()
}

// Grid exposes the underlying grid source for write operations.
func (s *Source) Grid() grid.Source { return s.grid }

// headerRowIndex picks the header row among the first rows of the
// grid: the first row containing a cell that case-insensitively equals
// "CIC" wins; otherwise the row with the most non-empty cells, earliest
// on ties.
func headerRowIndex(rows [][]string) int {
	headerIdx := 0
	bestNonEmpty := -1
	for idx, row := range rows {
		if idx >= headerScanRows {
			break
		}
		nonEmpty := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				nonEmpty++
			}
		}
		for _, cell := range row {
			if strings.EqualFold(strings.TrimSpace(cell), "CIC") {
				return idx
			}
		}
		if nonEmpty > bestNonEmpty {
			bestNonEmpty = nonEmpty
			headerIdx = idx
		}
	}
	return headerIdx
}

// headerNames derives the record keys from the header row: blank cells
// become col_{n} (1-based), duplicates get _2, _3, ... in encounter
// order.
func headerNames(headerRow []string) []string {
	names := make([]string, 0, len(headerRow))
	seen := make(map[string]int)
	for j, header := range headerRow {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("col_%d", j+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 1
		}
		names = append(names, name)
	}
	return names
}

// deriveRecords turns the raw grid into records. Every row after the
// header row with at least one non-empty cell becomes a record; short
// rows are padded with empty strings, fully blank rows are skipped.
func deriveRecords(rows [][]string) []models.Record {
	if len(rows) == 0 {
		return nil
	}

	headerIdx := headerRowIndex(rows)
	headers := headerNames(rows[headerIdx])

	var records []models.Record
	for _, row := range rows[headerIdx+1:] {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		rec := make(models.Record, len(headers))
		for j, name := range headers {
			if j < len(row) {
				rec[name] = strings.TrimSpace(row[j])
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// FindColumnKey returns the real key of rec matching one of the
// candidate names: collapse-key exact matches first, in candidate
// priority order, then prefix matches. The second return is false when
// no candidate fits; that is an expected outcome, not an error.
func FindColumnKey(rec models.Record, candidates []string) (string, bool) {
	if len(rec) == 0 {
		return "", false
	}
	collapsed := make(map[string]string, len(rec))
	for key := range rec {
		collapsed[textutil.CollapseKey(key)] = key
	}
	for _, candidate := range candidates {
		if real, ok := collapsed[textutil.CollapseKey(candidate)]; ok {
			return real, true
		}
	}
	for _, candidate := range candidates {
		want := textutil.CollapseKey(candidate)
		for collapsedKey, real := range collapsed {
			if strings.HasPrefix(collapsedKey, want) {
				return real, true
			}
		}
	}
	return "", false
}

// unregisteredValues are the cell spellings meaning "not handed out".
var unregisteredValues = map[string]bool{"no": true, "n": true, "false": true, "0": true}

// FirstAvailable scans the raw grid for the first data row whose
// "Registrado" cell marks it unused and that still carries a username
// or CIC. The raw grid is used, with row 1 fixed as the header row, so
// the returned RowIndex addresses the data source literally. A nil
// result with a nil error means no row is available.
func (s *Source) FirstAvailable(ctx context.Context) (*models.AvailableCredential, error) {
	rows, err := s.Matrix(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	idxCIC := findColumnIndex(headers, "CIC")
	idxUser := findColumnIndex(headers, "Usuario")
	idxReg := findColumnIndex(headers, "Registrado")
	if idxCIC < 0 || idxUser < 0 || idxReg < 0 {
		return nil, nil
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		reg := strings.ToLower(strings.TrimSpace(cellAt(row, idxReg)))
		if !unregisteredValues[reg] {
			continue
		}
		username := strings.TrimSpace(cellAt(row, idxUser))
		cic := strings.TrimSpace(cellAt(row, idxCIC))
		if username == "" && cic == "" {
			continue
		}
		return &models.AvailableCredential{
			Username: username,
			CIC:      cic,
			RowIndex: i + 1,
		}, nil
	}
	return nil, nil
}

// findColumnIndex locates a header by collapse-key, exact match first,
// then prefix. Returns -1 when absent.
func findColumnIndex(headers []string, name string) int {
	want := textutil.CollapseKey(name)
	for i, header := range headers {
		if textutil.CollapseKey(header) == want {
			return i
		}
	}
	for i, header := range headers {
		if strings.HasPrefix(textutil.CollapseKey(header), want) {
			return i
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
