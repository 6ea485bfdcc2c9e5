package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "steamwatch"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Discord DiscordConfig
	Steam   SteamConfig
	Ops     OpsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"STEAMWATCH_APP_ENV" default:"dev"`
	LogLevel string `envconfig:"STEAMWATCH_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path string `envconfig:"STEAMWATCH_DB_PATH" default:"steam_watchlist.db"`
}

// DiscordConfig carries the transport credentials. The token is the one
// startup-fatal setting: without it the bot cannot connect at all.
type DiscordConfig struct {
	Token string `envconfig:"DISCORD_TOKEN" required:"true"`
}

type SteamConfig struct {
	BaseURL           string        `envconfig:"STEAMWATCH_STEAM_BASE_URL" default:"https://store.steampowered.com"`
	Locale            string        `envconfig:"STEAMWATCH_STEAM_LOCALE" default:"portuguese"`
	Region            string        `envconfig:"STEAMWATCH_STEAM_REGION" default:"BR"`
	Timeout           time.Duration `envconfig:"STEAMWATCH_STEAM_TIMEOUT" default:"15s"`
	RequestsPerSecond float64       `envconfig:"STEAMWATCH_STEAM_RPS" default:"2"`
	Burst             int           `envconfig:"STEAMWATCH_STEAM_BURST" default:"4"`
}

// OpsConfig configures the optional health/metrics listener. An empty port
// disables it.
type OpsConfig struct {
	Port string `envconfig:"STEAMWATCH_OPS_PORT" default:""`
}
