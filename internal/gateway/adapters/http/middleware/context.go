// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Ключи значений в Locals.
const (
	LocalsUserContext = "userContext"
	LocalsUserID      = "userID"
)

// RequestContext возвращает контекст запроса, подготовленный промежуточным ПО.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalsUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// UserID возвращает идентификатор аутентифицированного пользователя.
func UserID(ctx fiber.Ctx) string {
	userID, _ := ctx.Locals(LocalsUserID).(string)
	return userID
}
