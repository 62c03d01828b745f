package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable, e.g. SELLERDASH_APP_ADDR.
const EnvPrefix = "SELLERDASH"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Config is the process configuration for the dashboard server and CLI.
type Config struct {
	App       AppConfig
	API       APIConfig
	Dashboard DashboardConfig
}

type AppConfig struct {
	Env       string `envconfig:"ENV" default:"dev" validate:"oneof=dev prod test"`
	Addr      string `envconfig:"ADDR" default:":8080" validate:"required"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json console"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// APIConfig points at the marketplace analytics API. Mock replaces it with
// built-in demo data.
type APIConfig struct {
	BaseURL string        `envconfig:"BASE_URL" default:"http://localhost:8000" validate:"omitempty,url"`
	APIKey  string        `envconfig:"API_KEY"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s" validate:"gt=0"`
	Mock    bool          `envconfig:"MOCK" default:"false"`
}

type DashboardConfig struct {
	LayoutPath      string        `envconfig:"LAYOUT"`
	DefaultSellerID string        `envconfig:"DEFAULT_SELLER_ID"`
	FetchTimeout    time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s" validate:"gt=0"`
	SettleTimeout   time.Duration `envconfig:"SETTLE_TIMEOUT" default:"1500ms" validate:"gte=0"`
	MaxSessions     int           `envconfig:"MAX_SESSIONS" default:"64" validate:"min=1,max=10000"`
	SessionIdle     time.Duration `envconfig:"SESSION_IDLE" default:"30m" validate:"gt=0"`
	RefreshRate     float64       `envconfig:"REFRESH_RATE" default:"1" validate:"gte=0"`
	RefreshBurst    int           `envconfig:"REFRESH_BURST" default:"3" validate:"min=1"`
	ChartTheme      string        `envconfig:"CHART_THEME" default:"westeros"`
	ChartAssetsHost string        `envconfig:"CHART_ASSETS_HOST"`
	ChartCacheTTL   time.Duration `envconfig:"CHART_CACHE_TTL" default:"5m" validate:"gte=0"`
}

var validate = validator.New()

// Load reads optional dotenv files, then the environment, then validates.
// A missing dotenv file is not an error.
func Load(dotenv ...string) (*Config, error) {
	if err := loadDotEnv(dotenv...); err != nil {
		return nil, err
	}
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if !c.API.Mock && strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("invalid config: API.BaseURL is required unless API.Mock is set")
	}
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}
