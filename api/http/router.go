package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskverse/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
// Everything except health, register and login sits behind authMW.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	tasks *handlers.TaskHandler,
	analytics *handlers.AnalyticsHandler,
	users *handlers.UsersHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Get("/me", authMW, auth.Me)

	tg := v1.Group("/tasks", authMW)
	tg.Post("/", tasks.Create)
	tg.Get("/", tasks.List)
	tg.Get("/:id", tasks.Get)
	tg.Put("/:id", tasks.Update)
	tg.Delete("/:id", tasks.Delete)

	v1.Get("/analytics", authMW, analytics.Get)

	ug := v1.Group("/users", authMW)
	ug.Get("/", users.List)
	ug.Patch("/:id/status", users.SetStatus)
}
