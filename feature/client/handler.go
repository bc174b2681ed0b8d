package client

import (
	"context"
	"errors"

	"subscriber-desk/core/errs"
	"subscriber-desk/core/logger"
	"subscriber-desk/feature/client/models"
	rostermodels "subscriber-desk/feature/roster/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Reconciler matches a client name against the roster. Implemented by
// the roster feature; an interface here keeps the features decoupled.
type Reconciler interface {
	Reconcile(ctx context.Context, fullName string) (rostermodels.Reconciliation, error)
}

// Handler handles HTTP requests for client lookups.
type Handler struct {
	service    *Service
	reconciler Reconciler
	signupURL  string
}

// NewHandler creates a new HTTP handler. reconciler may be nil when the
// roster integration is unavailable; lookups then return the bare
// record.
func NewHandler(service *Service, reconciler Reconciler, signupURL string) *Handler {
	return &Handler{service: service, reconciler: reconciler, signupURL: signupURL}
}

// RegisterRoutes registers the client routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/cliente", h.HandleGetClient)
}

// lookupResponse is a client record enriched with the roster
// reconciliation outcome.
type lookupResponse struct {
	models.Record
	AlreadyRegistered bool                              `json:"alreadyRegistered"`
	Matched           *rostermodels.Match               `json:"matched"`
	Proposed          *rostermodels.AvailableCredential `json:"proposed"`
	SignupURL         string                            `json:"signupUrl"`
}

// HandleGetClient looks up a client by IDA and reconciles it against
// the credentials roster.
func (h *Handler) HandleGetClient(c *fiber.Ctx) error {
	ida := c.Query("ida")
	l := logger.WithRayID(h.service.logger, c)

	record, err := h.service.FetchRecord(c.Context(), ida)
	if err != nil {
		if errors.Is(err, ErrInvalidIdentifier) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Client lookup failed", zap.String("ida", ida), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	resp := lookupResponse{Record: record, SignupURL: h.signupURL}

	if h.reconciler != nil {
		// Enrichment is best-effort: a roster failure degrades the
		// response to "no match, no proposal" instead of failing the
		// whole lookup.
		recon, err := h.reconciler.Reconcile(c.Context(), record.FullName)
		if err != nil {
			l.Warn("Roster reconciliation failed", zap.String("ida", ida), zap.Error(err))
		} else {
			resp.Matched = recon.Matched
			resp.Proposed = recon.Proposed
			resp.AlreadyRegistered = recon.Matched != nil
		}
	}

	return c.JSON(resp)
}

func statusFor(err error) int {
	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
