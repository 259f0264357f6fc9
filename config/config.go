package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"port"`
	PublicBaseURL string `mapstructure:"public_base_url"`

	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDB       string `mapstructure:"mongo_db"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`

	JWTSecret          string `mapstructure:"jwt_secret"`
	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute"`

	OpenAIKey         string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL     string        `mapstructure:"openai_base_url"`
	OpenAIModel       string        `mapstructure:"openai_model"`
	OpenAITemperature float32       `mapstructure:"openai_temperature"`
	OpenAIMaxTokens   int           `mapstructure:"openai_max_tokens"`
	LLMTimeout        time.Duration `mapstructure:"llm_timeout"`

	TempItineraryTTL time.Duration `mapstructure:"temp_itinerary_ttl"`
	SweepInterval    time.Duration `mapstructure:"sweep_interval"`
	CatalogCacheTTL  time.Duration `mapstructure:"catalog_cache_ttl"`
	MaxDuration      int           `mapstructure:"max_duration"`
}

var defaults = map[string]any{
	"port":            ":8080",
	"public_base_url": "http://localhost:8080",

	"mongo_uri":      "mongodb://localhost:27017",
	"mongo_db":       "rihla",
	"redis_addr":     "localhost:6379",
	"redis_password": "",

	"jwt_secret":            "",
	"rate_limit_per_minute": 10,

	"openai_api_key":     "",
	"openai_base_url":    "",
	"openai_model":       "gpt-3.5-turbo",
	"openai_temperature": 0.7,
	"openai_max_tokens":  2000,
	"llm_timeout":        "45s",

	"temp_itinerary_ttl": "24h",
	"sweep_interval":     "24h",
	"catalog_cache_ttl":  "10m",
	"max_duration":       30,
}

// Load reads .env (if present), an optional config file and the environment,
// in increasing order of precedence.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if cfg.Port != "" && !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.MaxDuration < 1:
		return fmt.Errorf("max_duration must be positive, got %d", c.MaxDuration)
	case c.LLMTimeout <= 0:
		return fmt.Errorf("llm_timeout must be positive, got %s", c.LLMTimeout)
	case c.TempItineraryTTL <= 0:
		return fmt.Errorf("temp_itinerary_ttl must be positive, got %s", c.TempItineraryTTL)
	case c.SweepInterval <= 0:
		return fmt.Errorf("sweep_interval must be positive, got %s", c.SweepInterval)
	case c.RateLimitPerMinute < 1:
		return fmt.Errorf("rate_limit_per_minute must be positive, got %d", c.RateLimitPerMinute)
	}
	return nil
}

// LLMEnabled reports whether an external generation service is configured.
func (c *Config) LLMEnabled() bool {
	return c.OpenAIKey != ""
}

// RedisEnabled reports whether the catalog cache and sweep lease are on.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
