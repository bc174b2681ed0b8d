package roster

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"subscriber-desk/core/grid"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service    *Service
	marker     *Marker
	writeGuard fiber.Handler
	logger     *zap.Logger
}

// NewFeature builds the roster feature over the given grid backend.
// db may be nil when no audit trail is configured; writeGuard protects
// the mutating routes.
func NewFeature(g grid.Source, cfg grid.Config, db *gorm.DB, logger *zap.Logger, writeGuard fiber.Handler) *Feature {
	source := NewSource(g, time.Duration(cfg.CacheTTLSeconds*float64(time.Second)))
	return &Feature{
		service:    NewService(source, logger),
		marker:     NewMarker(source, db, logger),
		writeGuard: writeGuard,
		logger:     logger,
	}
}

// Service returns the reconciliation service for other features.
func (f *Feature) Service() *Service { return f.service }

// Marker returns the roster write service.
func (f *Feature) Marker() *Marker { return f.marker }

// Name returns the name of the feature.
func (f *Feature) Name() string { return "roster" }

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool { return true }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.marker, f.logger).RegisterRoutes(app, f.writeGuard)
	return nil
}
