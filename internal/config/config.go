package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/quantashield/console/internal/secret"
)

// Config represents the application configuration structure
type Config struct {
	Environment string `split_words:"true" default:"development"`

	ListenAddress string `split_words:"true" default:":8080"`
	BaseAddress   string `split_words:"true" default:"http://localhost:8080"`
	AllowedOrigin string `split_words:"true" default:"*"`

	// AuthGatewayURL is the base address of the external service that fronts the
	// federated identity providers
	AuthGatewayURL string        `split_words:"true" default:"https://auth.quantashield.io"`
	Providers      []string      `default:"google,microsoft,facebook,linkedin,twitter"`
	ProbeTimeout   time.Duration `split_words:"true" default:"5s"`

	// The single demo account served by the static credential backend
	DemoUsername     string        `split_words:"true" default:"admin"`
	DemoPassword     string        `split_words:"true" default:"password"`
	DemoEmail        string        `split_words:"true" default:"admin@quantashield.io"`
	DemoSecondFactor string        `split_words:"true" default:"123456"`
	VerifierLatency  time.Duration `split_words:"true" default:"1s"`

	// SigningSecret signs locally issued bearer tokens; a random one is generated when
	// left empty, which invalidates local sessions across restarts
	SigningSecret   string        `split_words:"true"`
	TokenLifetime   time.Duration `split_words:"true" default:"12h"`
	AttemptLifetime time.Duration `split_words:"true" default:"5m"`

	// HandoffDelay is the fixed delay between establishing a session and notifying the
	// application's login hook
	HandoffDelay time.Duration `split_words:"true" default:"2s"`

	DatabaseFile string `split_words:"true" default:"console.db"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("qs", config); err != nil {
		return nil, err
	}
	if config.SigningSecret == "" {
		config.SigningSecret = secret.MustNew(32)
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return strings.EqualFold(config.Environment, "production")
}

// CallbackURL returns the absolute URL the auth gateway redirects back to
func (config *Config) CallbackURL() string {
	return config.BaseAddress + "/v1/auth/callback"
}
