package auth

import (
	"strings"
	"time"

	"subscriber-desk/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys.
const (
	keyUser = "user"
	keyRole = "role"
)

// Middleware implements session-based authentication with two roles:
// read (lookups) and write (marking roster rows).
type Middleware struct {
	cfg   server.Config
	store *session.Store
}

// New creates the auth middleware with an in-memory session store.
func New(cfg server.Config) *Middleware {
	store := session.New(session.Config{
		Expiration:     8 * time.Hour,
		KeyLookup:      "cookie:desk_session",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
	})
	return &Middleware{cfg: cfg, store: store}
}

// RegisterRoutes registers the login/logout endpoints.
func (m *Middleware) RegisterRoutes(app fiber.Router) {
	app.Post("/login", m.HandleLogin)
	app.Post("/logout", m.HandleLogout)
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// HandleLogin authenticates against the configured accounts and starts
// a session carrying the granted role.
func (m *Middleware) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed credentials"})
	}

	user := strings.TrimSpace(req.Username)
	role := m.cfg.Authenticate(user, strings.TrimSpace(req.Password))
	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid username or password"})
	}

	sess, err := m.store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session unavailable"})
	}
	sess.Set(keyUser, user)
	sess.Set(keyRole, role)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session unavailable"})
	}

	return c.JSON(fiber.Map{"user": user, "role": role})
}

// HandleLogout destroys the session.
func (m *Middleware) HandleLogout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"ok": true})
}

// RequireAuth rejects requests without a live session.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, role := m.sessionIdentity(c)
		if user == "" || role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired or missing"})
		}
		c.Locals("auth_user", user)
		c.Locals("auth_role", role)
		return c.Next()
	}
}

// RequireWrite rejects sessions whose role does not allow writes.
// It must run after RequireAuth.
func (m *Middleware) RequireWrite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("auth_role").(string); role != server.RoleWrite {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "write access required"})
		}
		return c.Next()
	}
}

func (m *Middleware) sessionIdentity(c *fiber.Ctx) (user, role string) {
	sess, err := m.store.Get(c)
	if err != nil {
		return "", ""
	}
	user, _ = sess.Get(keyUser).(string)
	role, _ = sess.Get(keyRole).(string)
	return user, role
}
