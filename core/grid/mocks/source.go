package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Source is a mock implementation of grid.Source
type Source struct {
	mock.Mock
}

func (m *Source) Values(ctx context.Context) ([][]string, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([][]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Source) ColumnValues(ctx context.Context, col int) ([]string, error) {
	args := m.Called(ctx, col)
	if v, ok := args.Get(0).([]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Source) UpdateCell(ctx context.Context, row, col int, value string) error {
	args := m.Called(ctx, row, col, value)
	return args.Error(0)
}

func (m *Source) ClearRowFormat(ctx context.Context, row, fromCol, toCol int) error {
	args := m.Called(ctx, row, fromCol, toCol)
	return args.Error(0)
}
