package services

import (
	"context"
	"errors"
)

// Ошибки проверки токенов.
var (
	ErrInvalidJWTToken = errors.New("invalid JWT token")
	ErrExpiredJWTToken = errors.New("JWT token has expired")
)

// TokenService проверяет access токены.
type TokenService interface {
	// ValidateAccessToken возвращает идентификатор пользователя из токена.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
