// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"calendarvault/internal/gateway/adapters/http/calendar"
	"calendarvault/internal/gateway/adapters/http/middleware"
	"calendarvault/internal/gateway/ports/services"
)

// ErrRouteNotFound - ответ для несуществующих маршрутов.
const ErrRouteNotFound = "route not found"

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, calendarService services.CalendarService, tokenService services.TokenService) {
	calendarHandler := calendar.NewHandler(calendarService)
	auth := middleware.NewAuthMiddleware(tokenService)

	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiV1 := app.Group("/api/v1")

	calendars := apiV1.Group("/calendars")
	calendars.Get("/:calendar_id/ics", calendarHandler.Download)
	// В fiber v3 middleware маршрута идут после обработчика и выполняются до него.
	calendars.Post("/", calendarHandler.Create, auth)
	calendars.Put("/:calendar_id", calendarHandler.Publish, auth)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrRouteNotFound,
		})
	})
}
