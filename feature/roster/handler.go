package roster

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"subscriber-desk/core/errs"
	"subscriber-desk/core/logger"
)

// Handler exposes the roster write endpoint.
type Handler struct {
	marker *Marker
	log    *zap.Logger
}

func NewHandler(marker *Marker, log *zap.Logger) *Handler {
	return &Handler{marker: marker, log: log}
}

// RegisterRoutes mounts the roster routes on the given router. The
// write guard is supplied by the caller so the feature stays decoupled
// from session handling.
func (h *Handler) RegisterRoutes(router fiber.Router, writeGuard fiber.Handler) {
	router.Post("/marcar_registro", writeGuard, h.HandleMark)
}

type markRequest struct {
	Username string `json:"username" form:"username"`
	IDA      string `json:"ida" form:"ida"`
	FullName string `json:"fullName" form:"fullName"`
	RowIndex int    `json:"rowIndex" form:"rowIndex"`
}

// HandleMark marks a roster row as handed out.
func (h *Handler) HandleMark(c *fiber.Ctx) error {
	log := logger.WithRayID(h.log, c)

	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(req.Username) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	actor, _ := c.Locals("auth_user").(string)

	err := h.marker.MarkProcessed(c.Context(), req.Username, req.IDA, req.FullName, req.RowIndex, actor)
	if err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Error("mark failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not update the roster",
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
