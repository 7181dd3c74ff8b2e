package config

// JWTConfig содержит ключ проверки access токенов.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key" env:"GATEWAY_JWT_SECRET_KEY" env-required:"true"`
	Issuer    string `yaml:"issuer" env:"GATEWAY_JWT_ISSUER" env-default:""`
}
