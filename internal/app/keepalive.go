package app

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthStats отдаётся на GET /healthz.
type HealthStats struct {
	PendingReminders int      `json:"pending_reminders"`
	RegisteredUsers  int      `json:"registered_users"`
	Groups           []string `json:"groups"`
}

// KeepAlive это маленький HTTP сервер для пингов аптайма.
type KeepAlive struct {
	app    *fiber.App
	addr   string
	logger *zap.Logger
}

// NewKeepAlive регистрирует маршруты / и /healthz
func NewKeepAlive(addr string, stats func(ctx context.Context) HealthStats, logger *zap.Logger) *KeepAlive {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "classbot",
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		s := stats(c.UserContext())
		return c.JSON(fiber.Map{
			"status":            "ok",
			"pending_reminders": s.PendingReminders,
			"registered_users":  s.RegisteredUsers,
			"groups":            s.Groups,
		})
	})

	return &KeepAlive{app: app, addr: addr, logger: logger.Named("keepalive")}
}

// Start блокируется, обслуживая HTTP до Shutdown.
func (k *KeepAlive) Start() error {
	k.logger.Info("Starting keep-alive server", zap.String("addr", k.addr))
	return k.app.Listen(k.addr)
}

// Shutdown останавливает сервер
func (k *KeepAlive) Shutdown(ctx context.Context) error {
	return k.app.ShutdownWithContext(ctx)
}
