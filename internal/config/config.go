// Package config loads settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xavierca1/leadmail/internal/infra/integration/openrouter"
)

const DefaultPath = "config.yaml"

type ServerConfig struct {
	Port               string   `yaml:"port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	// GenerateRateLimit is the number of generation requests allowed per
	// client IP per minute. Zero disables the limit.
	GenerateRateLimit int `yaml:"generate_rate_limit"`
}

type CompletionConfig struct {
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
	SiteURL  string        `yaml:"site_url"`
	SiteName string        `yaml:"site_name"`
}

type GenerationConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Enabled reports whether export-by-mail is configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Completion CompletionConfig `yaml:"completion"`
	Generation GenerationConfig `yaml:"generation"`
	MQ         MQConfig         `yaml:"mq"`
	Mail       MailConfig       `yaml:"mail"`
	Log        LogConfig        `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"*"},
			GenerateRateLimit:  10,
		},
		Completion: CompletionConfig{
			BaseURL:  openrouter.DefaultBaseURL,
			Model:    openrouter.DefaultModel,
			Timeout:  openrouter.DefaultTimeout,
			SiteName: "leadmail",
		},
		Generation: GenerationConfig{Concurrency: 1},
		Mail:       MailConfig{Port: 587},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads path, or LEADMAIL_CONFIG, or DefaultPath, then applies
// environment overrides. Only an explicitly named file must exist.
// The result is not validated; call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("LEADMAIL_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	if err := loadFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := overrideFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func overrideFromEnv(cfg *Config) error {
	var errs []error

	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %q is not an integer", key, v))
				return
			}
			*dst = n
		}
	}

	setString("OPENROUTER_API_KEY", &cfg.Completion.APIKey)
	setString("OPENROUTER_BASE_URL", &cfg.Completion.BaseURL)
	setString("OPENROUTER_MODEL", &cfg.Completion.Model)
	if v := os.Getenv("COMPLETION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("COMPLETION_TIMEOUT: %w", err))
		} else {
			cfg.Completion.Timeout = d
		}
	}
	setInt("GENERATION_CONCURRENCY", &cfg.Generation.Concurrency)

	setString("SERVER_PORT", &cfg.Server.Port)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.CORSAllowedOrigins = splitList(v)
	}
	setInt("GENERATE_RATE_LIMIT", &cfg.Server.GenerateRateLimit)

	setString("MQ_URL", &cfg.MQ.URL)

	setString("MAIL_HOST", &cfg.Mail.Host)
	setInt("MAIL_PORT", &cfg.Mail.Port)
	setString("MAIL_USER", &cfg.Mail.User)
	setString("MAIL_PASS", &cfg.Mail.Password)
	setString("MAIL_FROM", &cfg.Mail.From)

	setString("LOG_LEVEL", &cfg.Log.Level)

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports every missing or invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Completion.APIKey) == "" {
		errs = append(errs, errors.New("OPENROUTER_API_KEY (completion.api_key) is required"))
	}
	if c.Completion.BaseURL == "" {
		errs = append(errs, errors.New("completion.base_url must not be empty"))
	}
	if c.Completion.Model == "" {
		errs = append(errs, errors.New("completion.model must not be empty"))
	}
	if c.Completion.Timeout <= 0 {
		errs = append(errs, errors.New("completion.timeout must be positive"))
	}
	if c.Generation.Concurrency < 1 {
		errs = append(errs, errors.New("generation.concurrency must be at least 1"))
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %q is not a valid port", c.Server.Port))
	}
	if c.Server.GenerateRateLimit < 0 {
		errs = append(errs, errors.New("server.generate_rate_limit must not be negative"))
	}
	if c.Mail.Enabled() {
		if c.Mail.Port < 1 || c.Mail.Port > 65535 {
			errs = append(errs, fmt.Errorf("mail.port %d is not a valid port", c.Mail.Port))
		}
		if _, err := mail.ParseAddress(c.Mail.From); err != nil {
			errs = append(errs, errors.New("mail.from must be a valid address when mail.host is set"))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
