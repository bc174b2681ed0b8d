package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"subscriber-desk/feature/client/models"
)

func TestTransformNameAndPassword(t *testing.T) {
	rec := transform(map[string]any{
		"Apellido":  "Pérez",
		"Nombre":    "Ana",
		"Documento": "123",
	})

	assert.Equal(t, "Pérez Ana", rec.FullName)
	assert.Equal(t, "123", rec.NationalID)
	assert.Equal(t, "pa123", rec.GeneratedPassword)
}

func TestTransformBusinessName(t *testing.T) {
	rec := transform(map[string]any{
		"RS":   "  ACME,   S.A. ",
		"CUIT": float64(30123456789),
	})

	assert.Equal(t, "ACME S.A.", rec.FullName)
	assert.Equal(t, "30123456789", rec.NationalID)
	assert.Equal(t, "as30123456789", rec.GeneratedPassword)
}

func TestTransformIDFromNumericField(t *testing.T) {
	rec := transform(map[string]any{"IDA": float64(4521)})
	assert.Equal(t, "4521", rec.ID)

	rec = transform(map[string]any{"ID": "77", "IDA": "4521"})
	assert.Equal(t, "77", rec.ID)
}

func TestTransformExplicitEmailWins(t *testing.T) {
	rec := transform(map[string]any{
		"Email":       "Cliente@Example.COM",
		"Observacion": "otra at example dot com",
	})
	assert.Equal(t, "Cliente@Example.COM", rec.Email)
}

func TestTransformEmailFromObfuscatedField(t *testing.T) {
	rec := transform(map[string]any{
		"Mail": "contacto[at]example[dot]com",
	})
	assert.Equal(t, "contacto@example.com", rec.Email)
}

func TestTransformSpacedObfuscationStaysUnmatched(t *testing.T) {
	// spaced spellings leave whitespace around the @ after substitution,
	// which the address pattern does not absorb
	rec := transform(map[string]any{
		"Mail": "contacto (at) example (dot) com",
	})
	assert.Equal(t, "", rec.Email)
}

func TestTransformEmailFallbackIsDeterministic(t *testing.T) {
	// two free-text fields carry addresses; the alphabetically first
	// field wins, every time
	raw := map[string]any{
		"Comentario": "ver primero@example.com",
		"Nota":       "ver segundo@example.com",
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, "primero@example.com", transform(raw).Email)
	}
}

func TestTransformEmailScansFreeText(t *testing.T) {
	rec := transform(map[string]any{
		"Observaciones": "llamar; mail viejo cliente@example.com baja",
	})
	assert.Equal(t, "cliente@example.com", rec.Email)
}

func TestProductFlags(t *testing.T) {
	tests := []struct {
		products string
		tv       bool
		hbo      bool
		sports   bool
	}{
		{"", false, false, false},
		{"SERVICIO TV HD", true, false, false},
		{"Básico; HBO MAX", true, true, false},
		{"PACK FUTBOL; servicio tv", true, false, true},
		{"Paquete Deportivo", false, false, true},
		{"Internet 100MB", false, false, false},
	}
	for _, tt := range tests {
		tv, hbo, sports := productFlags(tt.products)
		assert.Equal(t, tt.tv, tv, tt.products)
		assert.Equal(t, tt.hbo, hbo, tt.products)
		assert.Equal(t, tt.sports, sports, tt.products)
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, models.StatusActive, statusCode("Activo"))
	assert.Equal(t, models.StatusActive, statusCode("ACTIVO MOROSO"))
	assert.Equal(t, models.StatusSuspended, statusCode("suspendido"))
	assert.Equal(t, models.StatusTerminated, statusCode("Baja definitiva"))
	assert.Equal(t, models.StatusUnknown, statusCode("En proceso"))
	assert.Equal(t, models.StatusUnknown, statusCode(""))
}

func TestTransformStatus(t *testing.T) {
	rec := transform(map[string]any{"Estado": " Activo "})
	assert.Equal(t, "Activo", rec.StatusText)
	assert.Equal(t, models.StatusActive, rec.StatusCode)
}

func TestTransformMultibyteInitials(t *testing.T) {
	rec := transform(map[string]any{
		"Apellido":  "Ángel",
		"Nombre":    "Ñandú",
		"Documento": "9",
	})
	assert.Equal(t, "áñ9", rec.GeneratedPassword)
}
