package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`

	// SessionSecret firma el parametro state de OAuth.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// Flags de la cookie de sesion. Desactivarlas es solo para desarrollo
	// local sobre HTTP plano.
	CookieSecure   bool `env:"COOKIE_SECURE" envDefault:"true"`
	CookieHTTPOnly bool `env:"COOKIE_HTTP_ONLY" envDefault:"true"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	OAuthRedirectBase  string `env:"OAUTH_REDIRECT_BASE" envDefault:"http://localhost:8080"`

	// AppBaseURL es el origen del frontend para redirects post-OAuth.
	// Vacio significa mismo origen.
	AppBaseURL string `env:"APP_BASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL   string `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com/v1"`

	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
