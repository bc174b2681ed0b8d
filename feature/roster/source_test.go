package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"subscriber-desk/core/grid/mocks"
	"subscriber-desk/feature/roster/models"
)

func TestDeriveRecordsHeaderDiscovery(t *testing.T) {
	rows := [][]string{
		{"Listado de credenciales", "", ""},
		{"", "", ""},
		{"Nombre", "CIC", "Usuario", "Registrado"},
		{"Ana Pérez", "c1", "u1", "si"},
		{"  ", "", "", ""},
		{"Juan Gómez", "c2", "u2"},
	}

	records := deriveRecords(rows)
	require.Len(t, records, 2)

	assert.Equal(t, "Ana Pérez", records[0]["Nombre"])
	assert.Equal(t, "c1", records[0]["CIC"])
	assert.Equal(t, "si", records[0]["Registrado"])

	// short row padded with empty strings
	assert.Equal(t, "Juan Gómez", records[1]["Nombre"])
	assert.Equal(t, "", records[1]["Registrado"])
}

func TestDeriveRecordsHeaderFallsBackToDensestRow(t *testing.T) {
	rows := [][]string{
		{"Planilla", ""},
		{"Nombre", "Usuario", "Clave"},
		{"Ana", "u1", "p1"},
	}

	records := deriveRecords(rows)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana", records[0]["Nombre"])
	assert.Equal(t, "u1", records[0]["Usuario"])
}

func TestHeaderNamesBlanksAndDuplicates(t *testing.T) {
	names := headerNames([]string{"Nombre", "", "Usuario", "Usuario", "Usuario"})
	assert.Equal(t, []string{"Nombre", "col_2", "Usuario", "Usuario_2", "Usuario_3"}, names)
}

func TestFindColumnKey(t *testing.T) {
	rec := models.Record{"Razon_Social": "ACME", "Nro Abonado": "42", "CIC": "c1"}

	key, ok := FindColumnKey(rec, nameColumns)
	require.True(t, ok)
	assert.Equal(t, "Razon_Social", key)

	key, ok = FindColumnKey(rec, subscriberColumns)
	require.True(t, ok)
	assert.Equal(t, "Nro Abonado", key)

	_, ok = FindColumnKey(rec, usuarioColumns)
	assert.False(t, ok)
}

func TestFindColumnKeyPrefixMatch(t *testing.T) {
	rec := models.Record{"Usuario GP Norte": "u9"}

	key, ok := FindColumnKey(rec, usuarioColumns)
	require.True(t, ok)
	assert.Equal(t, "Usuario GP Norte", key)
}

func TestFirstAvailable(t *testing.T) {
	g := new(mocks.Source)
	g.On("Values", mock.Anything).Return([][]string{
		{"Nombre", "CIC", "Usuario", "Registrado"},
		{"Ana", "c1", "u1", "Si"},
		{"", "c2", "u2", "NO"},
		{"", "c3", "u3", "no"},
	}, nil)

	src := NewSource(g, time.Minute)
	available, err := src.FirstAvailable(context.Background())
	require.NoError(t, err)
	require.NotNil(t, available)

	assert.Equal(t, "u2", available.Username)
	assert.Equal(t, "c2", available.CIC)
	assert.Equal(t, 3, available.RowIndex)
}

func TestFirstAvailableSkipsEmptyCredentials(t *testing.T) {
	g := new(mocks.Source)
	g.On("Values", mock.Anything).Return([][]string{
		{"CIC", "Usuario", "Registrado"},
		{"", "", "no"},
		{"c2", "u2", "0"},
	}, nil)

	src := NewSource(g, time.Minute)
	available, err := src.FirstAvailable(context.Background())
	require.NoError(t, err)
	require.NotNil(t, available)
	assert.Equal(t, "u2", available.Username)
}

func TestFirstAvailableNoneLeft(t *testing.T) {
	g := new(mocks.Source)
	g.On("Values", mock.Anything).Return([][]string{
		{"CIC", "Usuario", "Registrado"},
		{"c1", "u1", "si"},
	}, nil)

	src := NewSource(g, time.Minute)
	available, err := src.FirstAvailable(context.Background())
	require.NoError(t, err)
	assert.Nil(t, available)
}

func TestRecordsCachedUntilInvalidated(t *testing.T) {
	g := new(mocks.Source)
	g.On("Values", mock.Anything).Return([][]string{
		{"Nombre", "Usuario"},
		{"Ana", "u1"},
	}, nil)

	src := NewSource(g, time.Minute)
	ctx := context.Background()

	_, err := src.Records(ctx, false)
	require.NoError(t, err)
	_, err = src.Records(ctx, false)
	require.NoError(t, err)
	g.AssertNumberOfCalls(t, "Values", 1)

	src.InvalidateCaches()
	_, err = src.Records(ctx, false)
	require.NoError(t, err)
	g.AssertNumberOfCalls(t, "Values", 2)
}

func TestRecordsCachedCopiesAreIsolated(t *testing.T) {
	g := new(mocks.Source)
	g.On("Values", mock.Anything).Return([][]string{
		{"Nombre"},
		{"Ana"},
	}, nil)

	src := NewSource(g, time.Minute)
	ctx := context.Background()

	first, err := src.Records(ctx, false)
	require.NoError(t, err)
	first[0]["Nombre"] = "mutated"

	second, err := src.Records(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "Ana", second[0]["Nombre"])
}

func TestMatrixPropagatesGridError(t *testing.T) {
	g := new(mocks.Source)
	g.On("Values", mock.Anything).Return(nil, errors.New("boom"))

	src := NewSource(g, time.Minute)
	_, err := src.Matrix(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading grid")
}
