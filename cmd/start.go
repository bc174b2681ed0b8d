package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subscriber-desk/core/config"
	"subscriber-desk/core/database"
	"subscriber-desk/core/grid"
	"subscriber-desk/core/grid/object"
	"subscriber-desk/core/grid/sheets"
	"subscriber-desk/core/heartbeat"
	"subscriber-desk/core/loader"
	"subscriber-desk/core/logger"
	"subscriber-desk/core/middleware/auth"
	"subscriber-desk/core/middleware/rayid"
	"subscriber-desk/core/storage"
	"subscriber-desk/core/upstream"
	"subscriber-desk/feature/client"
	"subscriber-desk/feature/roster"
	rostermodels "subscriber-desk/feature/roster/models"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the subscriber desk server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the audit database (optional)
		var db *gorm.DB
		if cfg.AuditEnabled {
			if conn, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Audit database connection failed, audit trail disabled", zap.Error(err))
			} else if err := conn.AutoMigrate(&rostermodels.AuditEntry{}); err != nil {
				logg.Warn("Audit table migration failed, audit trail disabled", zap.Error(err))
			} else {
				db = conn
				logg.Info("Audit trail enabled")
			}
		}

		// 4. Initialize the grid backend
		source, err := newGridSource(cfg.Grid, cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create grid source", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Health endpoint, outside of auth so the heartbeat can hit it.
		app.Get("/api/ping", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// Session auth: login/logout public, the API behind it.
		sessions := auth.New(cfg.Server)
		sessions.RegisterRoutes(app.Group("/api/auth"))

		api := app.Group("/api", sessions.RequireAuth())

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		provisioning := upstream.New(cfg.Upstream)
		rosterFeature := roster.NewFeature(source, cfg.Grid, db, logg, sessions.RequireWrite())
		mgr.Register(rosterFeature)
		mgr.Register(client.NewFeature(provisioning, cfg.Upstream, logg, rosterFeature.Service(), cfg.Server.SignupURL))

		loaded, err := mgr.LoadAll(api)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Heartbeat self-ping (keeps free-tier hosting awake)
		hbCtx, stopHeartbeat := context.WithCancel(context.Background())
		defer stopHeartbeat()
		go heartbeat.Run(hbCtx, cfg.Server.HeartbeatURL,
			time.Duration(cfg.Server.HeartbeatIntervalSeconds*float64(time.Second)), logg)

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stopHeartbeat()
		_ = app.Shutdown()
	},
}

// newGridSource builds the configured grid backend. The factory lives
// here so the roster feature never depends on a concrete transport.
func newGridSource(gridCfg grid.Config, storageCfg storage.Config) (grid.Source, error) {
	switch gridCfg.Backend {
	case grid.BackendObject:
		store, err := storage.NewClient(storageCfg)
		if err != nil {
			return nil, err
		}
		return object.New(store, storageCfg.Bucket, gridCfg.Object), nil
	default:
		return sheets.New(gridCfg)
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
