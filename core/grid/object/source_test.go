package object_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"subscriber-desk/core/grid/object"
	"subscriber-desk/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const rosterCSV = "CIC,Usuario,Registrado\nc1,u1,si\nc2,u2,no\n"

func newMockWithCSV(csv string) *mocks.Client {
	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "bucket", "roster.csv", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(csv))), nil)
	return m
}

func TestValues(t *testing.T) {
	client := newMockWithCSV(rosterCSV)
	src := object.New(client, "bucket", "roster.csv")

	rows, err := src.Values(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, [][]string{
		{"CIC", "Usuario", "Registrado"},
		{"c1", "u1", "si"},
		{"c2", "u2", "no"},
	}, rows)
}

func TestColumnValues(t *testing.T) {
	t.Run("FullColumn", func(t *testing.T) {
		client := newMockWithCSV(rosterCSV)
		src := object.New(client, "bucket", "roster.csv")

		col, err := src.ColumnValues(context.Background(), 2)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Usuario", "u1", "u2"}, col)
	})

	t.Run("ShortRowsPadded", func(t *testing.T) {
		client := newMockWithCSV("A,B,C\nonly\n")
		src := object.New(client, "bucket", "roster.csv")

		col, err := src.ColumnValues(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, []string{"C", ""}, col)
	})
}

func TestUpdateCell(t *testing.T) {
	client := newMockWithCSV(rosterCSV)

	var written []byte
	client.On("PutObject", mock.Anything, "bucket", "roster.csv", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reader := args.Get(3).(io.Reader)
			written, _ = io.ReadAll(reader)
		}).
		Return(minio.UploadInfo{}, nil)

	src := object.New(client, "bucket", "roster.csv")
	err := src.UpdateCell(context.Background(), 3, 3, "si")
	assert.NoError(t, err)

	assert.Contains(t, string(written), "c2,u2,si")
	client.AssertCalled(t, "PutObject", mock.Anything, "bucket", "roster.csv", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCellExtendsGrid(t *testing.T) {
	client := newMockWithCSV("A,B\n")

	var written []byte
	client.On("PutObject", mock.Anything, "bucket", "roster.csv", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reader := args.Get(3).(io.Reader)
			written, _ = io.ReadAll(reader)
		}).
		Return(minio.UploadInfo{}, nil)

	src := object.New(client, "bucket", "roster.csv")
	err := src.UpdateCell(context.Background(), 3, 4, "x")
	assert.NoError(t, err)
	assert.Contains(t, string(written), ",,,x")
}

func TestClearRowFormatIsNoOp(t *testing.T) {
	client := new(mocks.Client) // no expectations: nothing may be called
	src := object.New(client, "bucket", "roster.csv")

	err := src.ClearRowFormat(context.Background(), 2, 1, 10)
	assert.NoError(t, err)
	client.AssertExpectations(t)
}
