package config

import (
	"net"
	"strconv"
)

// GRPCConfig конфигурация gRPC сервера.
type GRPCConfig struct {
	Host string `yaml:"host" env:"CALENDAR_GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"CALENDAR_GRPC_PORT" env-required:"true"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return net.JoinHostPort(g.Host, strconv.Itoa(g.Port))
}
