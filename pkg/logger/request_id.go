package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewRequestIDContext связывает запрос с идентификатором. Пустой id заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, id string) context.Context {
	if id == "" {
		id = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID возвращает идентификатор запроса, если он есть в контексте.
func GetRequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// GenerateRequestID выдает новый uuid v4.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID закрепляет request_id из контекста за дочерним logger.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
