package config

import (
	"net"
	"strconv"
	"time"
)

// GRPCClientConfig представляет конфигурацию для gRPC клиентов Gateway.
type GRPCClientConfig struct {
	CalendarService GRPCServiceConfig `yaml:"calendar_service" env-prefix:"GATEWAY_GRPC_CALENDAR_"`
	RequestTimeout  time.Duration     `yaml:"request_timeout" env:"GATEWAY_GRPC_REQUEST_TIMEOUT" env-default:"5s"`
}

// GRPCServiceConfig представляет конфигурацию для подключения к gRPC сервису.
type GRPCServiceConfig struct {
	Host           string        `yaml:"host" env:"HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"PORT" env-default:"50054"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT" env-default:"5s"`
}

// GetAddress возвращает адрес gRPC сервиса в формате host:port.
func (c *GRPCServiceConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
