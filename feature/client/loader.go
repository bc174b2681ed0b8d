package client

import (
	"subscriber-desk/core/upstream"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the client lookup feature.
func NewFeature(api *upstream.Client, cfg upstream.Config, logger *zap.Logger, reconciler Reconciler, signupURL string) *Feature {
	svc := NewService(api, cfg, logger)
	h := NewHandler(svc, reconciler, signupURL)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service for composition.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "client"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
