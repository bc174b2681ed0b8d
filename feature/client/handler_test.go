package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rostermodels "subscriber-desk/feature/roster/models"
)

// stubReconciler returns a canned reconciliation or error.
type stubReconciler struct {
	result rostermodels.Reconciliation
	err    error
}

func (s *stubReconciler) Reconcile(_ context.Context, _ string) (rostermodels.Reconciliation, error) {
	return s.result, s.err
}

func newLookupApp(t *testing.T, reconciler Reconciler) *fiber.App {
	t.Helper()
	srv, _ := fakeProvider(t, []map[string]any{{
		"IDA":       float64(42),
		"Apellido":  "Pérez",
		"Nombre":    "Ana",
		"Documento": "123",
		"Estado":    "Activo",
	}})

	app := fiber.New()
	handler := NewHandler(newTestService(t, srv), reconciler, "https://signup.example.com")
	handler.RegisterRoutes(app.Group("/api"))
	return app
}

func getClient(t *testing.T, app *fiber.App, ida string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/cliente?ida="+ida, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleGetClientMatched(t *testing.T) {
	reconciler := &stubReconciler{result: rostermodels.Reconciliation{
		Matched: &rostermodels.Match{CIC: "c1", Username: "u1"},
	}}
	app := newLookupApp(t, reconciler)

	status, body := getClient(t, app, "42")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Pérez Ana", body["fullName"])
	assert.Equal(t, true, body["alreadyRegistered"])
	assert.NotNil(t, body["matched"])
	assert.Nil(t, body["proposed"])
	assert.Equal(t, "https://signup.example.com", body["signupUrl"])
}

func TestHandleGetClientProposed(t *testing.T) {
	reconciler := &stubReconciler{result: rostermodels.Reconciliation{
		Proposed: &rostermodels.AvailableCredential{Username: "u9", CIC: "c9", RowIndex: 4},
	}}
	app := newLookupApp(t, reconciler)

	status, body := getClient(t, app, "42")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["alreadyRegistered"])
	assert.Nil(t, body["matched"])

	proposed, ok := body["proposed"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u9", proposed["username"])
	assert.Equal(t, float64(4), proposed["rowIndex"])
}

func TestHandleGetClientReconcilerFailureDegrades(t *testing.T) {
	app := newLookupApp(t, &stubReconciler{err: errors.New("grid down")})

	status, body := getClient(t, app, "42")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Pérez Ana", body["fullName"])
	assert.Equal(t, false, body["alreadyRegistered"])
	assert.Nil(t, body["matched"])
	assert.Nil(t, body["proposed"])
}

func TestHandleGetClientNilReconciler(t *testing.T) {
	app := newLookupApp(t, nil)

	status, body := getClient(t, app, "42")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Pérez Ana", body["fullName"])
}

func TestHandleGetClientInvalidIdentifier(t *testing.T) {
	app := newLookupApp(t, nil)

	status, _ := getClient(t, app, "abc")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
