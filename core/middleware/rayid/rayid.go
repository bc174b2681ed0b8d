package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const headerName = "X-Ray-ID"

// New returns a middleware that assigns every request a ray ID, reusing
// the caller's if one was sent. The ID lands in c.Locals("ray_id") for
// the logger and is echoed in the response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(headerName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(headerName, rid)
		return c.Next()
	}
}
