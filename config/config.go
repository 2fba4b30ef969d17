package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full environment-driven configuration. The completion
// credential lives only here and in the relay; it is never sent to clients.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	OpenRouterBaseURL string `envconfig:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1"`
	OpenRouterAPIKey  string `envconfig:"OPENROUTER_API_KEY"`
	DefaultModel      string `envconfig:"DEFAULT_MODEL" default:"anthropic/claude-3.5-sonnet"`
	TokenBudget       int    `envconfig:"TOKEN_BUDGET" default:"8000"`
	AppReferer        string `envconfig:"APP_REFERER" default:"https://natebarksdale.xyz"`
	AppTitle          string `envconfig:"APP_TITLE" default:"Two Truths & A Lie Travel Guide"`

	// Origins allowed to call the API and the relay, matched by exact prefix
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"https://natebarksdale.xyz,https://natebarksdale.github.io,http://localhost:8000,http://127.0.0.1:8000"`

	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"travel-guide"`

	GeocoderBaseURL string `envconfig:"GEOCODER_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	GeocoderAgent   string `envconfig:"GEOCODER_USER_AGENT" default:"TwoTruthsLieTravelGuide/1.0"`

	CompletionTimeout time.Duration `envconfig:"COMPLETION_TIMEOUT" default:"120s"`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
