package object

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sync"

	"subscriber-desk/core/grid"
	"subscriber-desk/core/storage"

	"github.com/minio/minio-go/v7"
)

// Source keeps the roster as a single CSV object in object storage.
// Cell updates read the object, patch it in memory, and write it back
// whole; a mutex serializes writers within this process. Formatting
// calls are no-ops because CSV has no formatting.
type Source struct {
	client storage.Client
	bucket string
	object string

	mu sync.Mutex
}

// New creates an object-backed grid source.
func New(client storage.Client, bucket, object string) *Source {
	return &Source{client: client, bucket: bucket, object: object}
}

func (s *Source) read(ctx context.Context) ([][]string, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("grid: getting roster object: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("grid: reading roster object: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // rows may be ragged
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("grid: parsing roster csv: %w", err)
	}
	return rows, nil
}

func (s *Source) write(ctx context.Context, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("grid: encoding roster csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("grid: encoding roster csv: %w", err)
	}

	_, err := s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("grid: writing roster object: %w", err)
	}
	return nil
}

// Values returns the full grid.
func (s *Source) Values(ctx context.Context) ([][]string, error) {
	return s.read(ctx)
}

// ColumnValues returns one column top to bottom. Rows shorter than the
// requested column contribute an empty cell.
func (s *Source) ColumnValues(ctx context.Context, col int) ([]string, error) {
	rows, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	column := make([]string, 0, len(rows))
	for _, row := range rows {
		if col-1 < len(row) {
			column = append(column, row[col-1])
		} else {
			column = append(column, "")
		}
	}
	return column, nil
}

// UpdateCell patches one cell and rewrites the object. The grid is
// extended with empty rows and cells as needed to address the target.
func (s *Source) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("grid: invalid cell position %d,%d", row, col)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.read(ctx)
	if err != nil {
		return err
	}

	for len(rows) < row {
		rows = append(rows, nil)
	}
	for len(rows[row-1]) < col {
		rows[row-1] = append(rows[row-1], "")
	}
	rows[row-1][col-1] = value

	return s.write(ctx, rows)
}

// ClearRowFormat is a no-op: CSV carries no formatting.
func (s *Source) ClearRowFormat(ctx context.Context, row, fromCol, toCol int) error {
	return nil
}

// compile-time interface check
var _ grid.Source = (*Source)(nil)
