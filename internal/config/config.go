package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
)

// Config contains runtime settings for the server and the CLI
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // json or console
	Host      string `mapstructure:"host"`       // default 0.0.0.0
	Port      string `mapstructure:"port"`       // default PORT env or 8080

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`

	Search SearchConfig `mapstructure:"search"`

	Adzuna struct {
		AppID   string `mapstructure:"app_id"`
		AppKey  string `mapstructure:"app_key"`
		Country string `mapstructure:"country"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"adzuna"`

	Jooble struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"jooble"`

	SerpAPI struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"serpapi"`

	Sheets struct {
		CredentialsPath string `mapstructure:"credentials_path"`
	} `mapstructure:"sheets"`
}

// SearchConfig bounds every search
type SearchConfig struct {
	PerRequestTimeout time.Duration `mapstructure:"per_request_timeout"`
	OverallTimeout    time.Duration `mapstructure:"overall_timeout"`
	MaxResults        int           `mapstructure:"max_results"`
	MinScore          int           `mapstructure:"min_score"`
	DescriptionLimit  int           `mapstructure:"description_limit"`
	MaxKeywords       int           `mapstructure:"max_keywords"`
	DefaultLocation   string        `mapstructure:"default_location"`
}

// Job converts search settings to the engine config
func (s SearchConfig) Job() job.Config {
	return job.Config{
		PerRequestTimeout: s.PerRequestTimeout,
		OverallTimeout:    s.OverallTimeout,
		MaxResults:        s.MaxResults,
		MinScore:          s.MinScore,
		DescriptionLimit:  s.DescriptionLimit,
		MaxKeywords:       s.MaxKeywords,
		DefaultLocation:   s.DefaultLocation,
	}
}

// Addr returns host:port for the HTTP listener
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// keys with their environment variables, first one wins
var envBindings = map[string][]string{
	"log_level":                  {"LOG_LEVEL"},
	"log_format":                 {"LOG_FORMAT"},
	"host":                       {"MCP_HOST", "HOST"},
	"port":                       {"PORT"},
	"cors.allowed_origins":       {"CORS_ALLOWED_ORIGINS", "FRONTEND_URL"},
	"search.per_request_timeout": {"SEARCH_PER_REQUEST_TIMEOUT"},
	"search.overall_timeout":     {"SEARCH_OVERALL_TIMEOUT"},
	"search.max_results":         {"SEARCH_MAX_RESULTS"},
	"search.min_score":           {"SEARCH_MIN_SCORE"},
	"search.description_limit":   {"SEARCH_DESCRIPTION_LIMIT"},
	"search.max_keywords":        {"SEARCH_MAX_KEYWORDS"},
	"search.default_location":    {"SEARCH_DEFAULT_LOCATION"},
	"adzuna.app_id":              {"ADZUNA_APP_ID"},
	"adzuna.app_key":             {"ADZUNA_APP_KEY"},
	"adzuna.country":             {"ADZUNA_COUNTRY"},
	"adzuna.base_url":            {"ADZUNA_BASE_URL"},
	"jooble.api_key":             {"JOOBLE_API_KEY", "JOOBLE_KEY"},
	"jooble.base_url":            {"JOOBLE_BASE_URL"},
	"serpapi.api_key":            {"SERPAPI_KEY", "SERPAPI_API_KEY"},
	"serpapi.base_url":           {"SERPAPI_BASE_URL"},
	"sheets.credentials_path":    {"GOOGLE_SHEETS_CREDENTIALS_PATH"},
}

func setDefaults(v *viper.Viper) {
	d := job.DefaultConfig()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("search.per_request_timeout", d.PerRequestTimeout)
	v.SetDefault("search.overall_timeout", d.OverallTimeout)
	v.SetDefault("search.max_results", d.MaxResults)
	v.SetDefault("search.min_score", d.MinScore)
	v.SetDefault("search.description_limit", d.DescriptionLimit)
	v.SetDefault("search.max_keywords", d.MaxKeywords)
	v.SetDefault("search.default_location", d.DefaultLocation)
	v.SetDefault("adzuna.country", "in")
	v.SetDefault("jooble.base_url", "https://in.jooble.org")
}

// Load reads defaults, then the optional config file, then .env and the environment
func Load(path string) (Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	// env values for lists arrive as one comma separated string
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks search bounds; missing provider credentials are not errors
func (c Config) Validate() error {
	var errs []error

	if c.Search.PerRequestTimeout <= 0 {
		errs = append(errs, errors.New("search.per_request_timeout must be positive"))
	}
	if c.Search.OverallTimeout <= 0 {
		errs = append(errs, errors.New("search.overall_timeout must be positive"))
	}
	if c.Search.MaxResults <= 0 {
		errs = append(errs, errors.New("search.max_results must be positive"))
	}
	if c.Search.MinScore < 0 || c.Search.MinScore > domain.MaxScore {
		errs = append(errs, fmt.Errorf("search.min_score must be within [0, %d]", domain.MaxScore))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// AdzunaConfigured reports whether both Adzuna credentials are present
func (c Config) AdzunaConfigured() bool {
	return c.Adzuna.AppID != "" && c.Adzuna.AppKey != ""
}

// JoobleConfigured reports whether a Jooble key is present
func (c Config) JoobleConfigured() bool {
	return c.Jooble.APIKey != ""
}

// SerpAPIConfigured reports whether a SerpAPI key is present
func (c Config) SerpAPIConfigured() bool {
	return c.SerpAPI.APIKey != ""
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
