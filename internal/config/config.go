package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	JWT    JWT    `envPrefix:"JWT_"`
	Payout Payout `envPrefix:"PAYOUT_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type JWT struct {
	Secret string `env:"SECRET"`
}

// Payout points at the wallet gateway that executes outbound transfers
// for balance withdrawals.
type Payout struct {
	BaseAPIURL string `env:"BASE_API_URL"`
	APIKey     string `env:"API_KEY"`
}
