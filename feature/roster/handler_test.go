package roster

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"subscriber-desk/core/grid/mocks"
)

func newMarkApp(g *mocks.Source) *fiber.App {
	app := fiber.New()
	marker := NewMarker(NewSource(g, time.Minute), nil, zap.NewNop())
	passthrough := func(c *fiber.Ctx) error {
		c.Locals("auth_user", "gestion")
		return c.Next()
	}
	NewHandler(marker, zap.NewNop()).RegisterRoutes(app.Group("/api"), passthrough)
	return app
}

func postMark(t *testing.T, app *fiber.App, body map[string]any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/marcar_registro", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestHandleMarkOK(t *testing.T) {
	g := new(mocks.Source)
	expectRowWrite(g, 3, "123", "Pérez Ana")

	app := newMarkApp(g)
	status := postMark(t, app, map[string]any{
		"username": "u2",
		"ida":      "123",
		"fullName": "Pérez Ana",
		"rowIndex": 3,
	})

	assert.Equal(t, fiber.StatusOK, status)
	g.AssertExpectations(t)
}

func TestHandleMarkMissingUsername(t *testing.T) {
	app := newMarkApp(new(mocks.Source))
	status := postMark(t, app, map[string]any{"ida": "1"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleMarkUnknownUsername(t *testing.T) {
	g := new(mocks.Source)
	g.On("ColumnValues", mock.Anything, colUsername).Return(
		[]string{"Usuario", "other"}, nil)

	app := newMarkApp(g)
	status := postMark(t, app, map[string]any{"username": "missing"})
	assert.Equal(t, fiber.StatusNotFound, status)
}
