package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"subscriber-desk/core/grid/mocks"
)

func rosterFixture() [][]string {
	return [][]string{
		{"Nombre", "Abonado", "CIC", "Usuario", "Registrado"},
		{"Pérez Ana", "1001", "c1", "u1", "si"},
		{"Gómez Juan", "1002", "c2", "u2", "no"},
		{"López María", "1003", "c3", "u3", "no"},
	}
}

func newTestService(rows [][]string) (*Service, *mocks.Source) {
	g := new(mocks.Source)
	g.On("Values", mock.Anything).Return(rows, nil)
	source := NewSource(g, time.Minute)
	return NewService(source, zap.NewNop()), g
}

func TestReconcileMatchesByTokenSignature(t *testing.T) {
	svc, _ := newTestService(rosterFixture())

	// order, case, and accents differ from the roster cell
	result, err := svc.Reconcile(context.Background(), "ana PEREZ")
	require.NoError(t, err)

	require.NotNil(t, result.Matched)
	assert.Nil(t, result.Proposed)
	assert.Equal(t, "1001", result.Matched.SubscriberNumber)
	assert.Equal(t, "c1", result.Matched.CIC)
	assert.Equal(t, "u1", result.Matched.Username)
}

func TestReconcileProposesFirstAvailable(t *testing.T) {
	svc, _ := newTestService(rosterFixture())

	result, err := svc.Reconcile(context.Background(), "Nadie Conocido")
	require.NoError(t, err)

	require.Nil(t, result.Matched)
	require.NotNil(t, result.Proposed)
	assert.Equal(t, "u2", result.Proposed.Username)
	assert.Equal(t, "c2", result.Proposed.CIC)
	assert.Equal(t, 3, result.Proposed.RowIndex)
}

func TestReconcileEmptyNameIsNoop(t *testing.T) {
	svc, g := newTestService(rosterFixture())

	result, err := svc.Reconcile(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, result.Matched)
	assert.Nil(t, result.Proposed)
	g.AssertNotCalled(t, "Values", mock.Anything)
}

func TestReconcileIsRepeatable(t *testing.T) {
	svc, _ := newTestService(rosterFixture())
	ctx := context.Background()

	first, err := svc.Reconcile(ctx, "Nadie Conocido")
	require.NoError(t, err)
	second, err := svc.Reconcile(ctx, "Nadie Conocido")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReconcileNothingLeftToPropose(t *testing.T) {
	svc, _ := newTestService([][]string{
		{"Nombre", "CIC", "Usuario", "Registrado"},
		{"Pérez Ana", "c1", "u1", "si"},
	})

	result, err := svc.Reconcile(context.Background(), "Nadie Conocido")
	require.NoError(t, err)
	assert.Nil(t, result.Matched)
	assert.Nil(t, result.Proposed)
}
