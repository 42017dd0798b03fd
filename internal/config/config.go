package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/calendar"
	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. STUDYPLAN_LLM_API_KEY.
const EnvPrefix = "STUDYPLAN"

// MinJWTSecretLen is the shortest signing secret accepted when serving HTTP.
const MinJWTSecretLen = 16

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Tutor   TutorConfig   `mapstructure:"tutor"`
	Planner PlannerConfig `mapstructure:"planner"`
	Google  GoogleConfig  `mapstructure:"google"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LLMConfig struct {
	Provider   string `mapstructure:"provider"`
	Endpoint   string `mapstructure:"endpoint"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api_key"`
	TimeoutMs  int    `mapstructure:"timeout_ms"`
	MaxRetries int    `mapstructure:"max_retries"`
	LogCalls   bool   `mapstructure:"log_calls"`
}

type TutorConfig struct {
	Language string `mapstructure:"language"`
}

type PlannerConfig struct {
	Timezone          string `mapstructure:"timezone"`
	HorizonDays       int    `mapstructure:"horizon_days"`
	DefaultSessionMin int    `mapstructure:"default_session_min"`
	DefaultBreakMin   int    `mapstructure:"default_break_min"`
}

type GoogleConfig struct {
	ClientID         string `mapstructure:"client_id"`
	ClientSecret     string `mapstructure:"client_secret"`
	RedirectURL      string `mapstructure:"redirect_url"`
	CalendarID       string `mapstructure:"calendar_id"`
	ReminderMinutes  int    `mapstructure:"reminder_minutes"`
	EventTitlePrefix string `mapstructure:"event_title_prefix"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty path searches
// ./config and the working directory for config.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.Path == "" {
		p, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DB.Path = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")

	v.SetDefault("db.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", string(d.Provider))
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.model", d.Model)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout_ms", d.TimeoutMs)
	v.SetDefault("llm.max_retries", d.MaxRetries)
	v.SetDefault("llm.log_calls", false)

	v.SetDefault("tutor.language", "English")

	v.SetDefault("planner.timezone", "Asia/Bangkok")
	v.SetDefault("planner.horizon_days", 5)
	v.SetDefault("planner.default_session_min", 60)
	v.SetDefault("planner.default_break_min", 10)

	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_url", "http://localhost:8080/api/v1/calendar/callback")
	v.SetDefault("google.calendar_id", "primary")
	v.SetDefault("google.reminder_minutes", calendar.DefaultReminderMinutes)
	v.SetDefault("google.event_title_prefix", calendar.DefaultTitlePrefix)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".studyplan", "studyplan.db"), nil
}

// Validate checks everything the CLI needs. The JWT secret is only checked
// by ValidateServer, since local commands never issue tokens.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	switch llm.Provider(c.LLM.Provider) {
	case llm.ProviderGemini, llm.ProviderOllama:
	default:
		return fmt.Errorf("config: unknown llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.TimeoutMs <= 0 {
		return fmt.Errorf("config: llm.timeout_ms must be positive")
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("config: llm.max_retries must be >= 0")
	}
	if _, err := time.LoadLocation(c.Planner.Timezone); err != nil {
		return fmt.Errorf("config: planner.timezone %q: %w", c.Planner.Timezone, err)
	}
	if c.Planner.HorizonDays <= 0 {
		return fmt.Errorf("config: planner.horizon_days must be positive")
	}
	if c.Google.ReminderMinutes < 0 {
		return fmt.Errorf("config: google.reminder_minutes must be >= 0")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// ValidateServer adds the checks required before the HTTP API starts.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Auth.JWTSecret) < MinJWTSecretLen {
		return fmt.Errorf("config: auth.jwt_secret must be at least %d characters", MinJWTSecretLen)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: auth.token_ttl must be positive")
	}
	return nil
}

// Location resolves the planner time zone. Validate has already proven it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Planner.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LLMClientConfig maps the llm section onto the client configuration,
// keeping the per-task defaults.
func (c *Config) LLMClientConfig() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Provider = llm.Provider(c.LLM.Provider)
	out.Endpoint = c.LLM.Endpoint
	out.Model = c.LLM.Model
	out.APIKey = c.LLM.APIKey
	out.TimeoutMs = c.LLM.TimeoutMs
	out.MaxRetries = c.LLM.MaxRetries
	out.LogCalls = c.LLM.LogCalls
	if out.Provider == llm.ProviderOllama && out.Endpoint == "" {
		out.Endpoint = llm.DefaultOllamaEndpoint
	}
	return out
}

func (c *Config) GoogleClientConfig() calendar.GoogleConfig {
	return calendar.GoogleConfig{
		ClientID:     c.Google.ClientID,
		ClientSecret: c.Google.ClientSecret,
		RedirectURL:  c.Google.RedirectURL,
		CalendarID:   c.Google.CalendarID,
	}
}

// GoogleEnabled reports whether OAuth client credentials are configured.
func (c *Config) GoogleEnabled() bool {
	return c.Google.ClientID != "" && c.Google.ClientSecret != ""
}

func (c *Config) EventOptions() calendar.EventOptions {
	return calendar.EventOptions{
		TitlePrefix:     c.Google.EventTitlePrefix,
		ReminderMinutes: c.Google.ReminderMinutes,
	}
}

func (c *Config) ExportOptions() export.Options {
	return export.Options{
		TitlePrefix:     c.Google.EventTitlePrefix,
		ReminderMinutes: c.Google.ReminderMinutes,
	}
}
