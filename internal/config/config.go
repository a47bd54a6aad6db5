package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BackendURL  string `env:"BACKEND_URL" envDefault:"http://localhost:8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000/"`
	DatabaseURL string `env:"DATABASE_URL"`

	Auth       Auth       `envPrefix:"AUTH_"`
	SSLCommerz SSLCommerz `envPrefix:"SSLCOMMERZ_"`
	Order      Order
}

type SSLCommerz struct {
	StoreID   string `env:"STORE_ID"`
	StorePass string `env:"STORE_PASS"`
	Sandbox   bool   `env:"SANDBOX" envDefault:"true"`
}

type Auth struct {
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-secret-please-change"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`
}

type Order struct {
	// Staff may force-cancel a delivered order. Behind a flag so the
	// policy can be turned off without a code change.
	AllowStaffCancelDelivered bool `env:"ALLOW_STAFF_CANCEL_DELIVERED" envDefault:"true"`
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
