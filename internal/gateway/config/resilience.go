package config

import "time"

// CircuitBreakerConfig содержит пороги circuit breaker для вызовов сервиса календарей.
type CircuitBreakerConfig struct {
	ErrorThreshold   int           `yaml:"error_threshold" env:"GATEWAY_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	SuccessThreshold int           `yaml:"success_threshold" env:"GATEWAY_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
	OpenTimeout      time.Duration `yaml:"open_timeout" env:"GATEWAY_BREAKER_OPEN_TIMEOUT" env-default:"10s"`
}
