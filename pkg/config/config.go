package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied by envconfig to every variable lookup.
const EnvPrefix = "zohra"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"ZOHRA_APP_ENV" default:"dev"`
	Port         string   `envconfig:"ZOHRA_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"ZOHRA_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"ZOHRA_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"ZOHRA_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the catalog backend this service fronts.
type BackendConfig struct {
	BaseURL   string        `envconfig:"ZOHRA_BACKEND_BASE_URL" required:"true"`
	Timeout   time.Duration `envconfig:"ZOHRA_BACKEND_TIMEOUT" default:"15s"`
	UserAgent string        `envconfig:"ZOHRA_BACKEND_USER_AGENT" default:"zohra-admin-core"`
}

// RedisConfig is optional; when neither URL nor address is set the shared
// snapshot cache is disabled and the service runs on local memory only.
type RedisConfig struct {
	URL          string        `envconfig:"ZOHRA_REDIS_URL"`
	Address      string        `envconfig:"ZOHRA_REDIS_ADDR"`
	Password     string        `envconfig:"ZOHRA_REDIS_PASSWORD"`
	DB           int           `envconfig:"ZOHRA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ZOHRA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ZOHRA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ZOHRA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ZOHRA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ZOHRA_REDIS_WRITE_TIMEOUT" default:"5s"`
	SnapshotTTL  time.Duration `envconfig:"ZOHRA_REDIS_SNAPSHOT_TTL" default:"5m"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}
