package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application. It is built once at startup
// and not modified afterwards.
type Config struct {
	Environment string
	Port        string

	ContentDir       string
	PresentationsDir string
	PagesDir         string
	StaticDir        string

	Mailchimp MailchimpConfig
	Email     EmailConfig

	// CSRFKey authenticates registration form tokens (32 bytes).
	CSRFKey               []byte
	AllowedOrigins        []string
	RegistrationRateLimit int
	// TrustProxy keys clients by CF-Connecting-IP / X-Forwarded-For. Only set it
	// when the server is reachable solely through a proxy that overwrites them.
	TrustProxy bool

	Site Site
}

// MailchimpConfig configures the mailing list integration.
type MailchimpConfig struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     uint64
	RetryBaseDelay time.Duration
}

// EmailConfig configures registration confirmation emails.
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Site is the presentation-level configuration read from the optional SITE_CONFIG YAML file.
type Site struct {
	Title    string   `yaml:"title"`
	BaseURL  string   `yaml:"base_url"`
	Messages Messages `yaml:"messages"`
}

// Messages are the user-facing texts. AlreadyRegistered may contain {email}.
type Messages struct {
	AlreadyRegistered  string   `yaml:"already_registered"`
	UnexpectedError    string   `yaml:"unexpected_error"`
	RegistrationThanks string   `yaml:"registration_thanks"`
	InvalidForm        string   `yaml:"invalid_form"`
	Months             []string `yaml:"months"`
}

// Production reports whether the app runs with GO_ENV=production.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// DefaultSite returns the site configuration used when no YAML file is given.
func DefaultSite() Site {
	return Site{
		Title:   "Web Standards Days",
		BaseURL: "http://localhost:8080",
		Messages: Messages{
			AlreadyRegistered:  "{email} is already registered",
			UnexpectedError:    "An unexpected error occurred",
			RegistrationThanks: "Thank you, your registration has been received",
			InvalidForm:        "Please check the form",
			Months: []string{"January", "February", "March", "April", "May", "June",
				"July", "August", "September", "October", "November", "December"},
		},
	}
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the environment is authoritative and .env is usually absent.
	if env != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: .env file couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:      env,
		Port:             getenv("PORT", "8080"),
		ContentDir:       getenv("CONTENT_DIR", "data"),
		PresentationsDir: getenv("PRESENTATIONS_DIR", "pres"),
		PagesDir:         getenv("PAGES_DIR", "pages"),
		StaticDir:        getenv("STATIC_DIR", "static"),
		Mailchimp: MailchimpConfig{
			APIKey:  os.Getenv("MAILCHIMP_API_KEY"),
			BaseURL: os.Getenv("MAILCHIMP_BASE_URL"),
		},
		Email: EmailConfig{
			Provider:           getenv("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.Mailchimp.Timeout, err = durationEnv("MAILCHIMP_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Mailchimp.RetryBaseDelay, err = durationEnv("MAILCHIMP_RETRY_BASE_DELAY", 200*time.Millisecond); err != nil {
		return nil, err
	}
	retries, err := intEnv("MAILCHIMP_MAX_RETRIES", 2)
	if err != nil {
		return nil, err
	}
	cfg.Mailchimp.MaxRetries = uint64(retries)
	if cfg.RegistrationRateLimit, err = intEnv("REGISTRATION_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.TrustProxy, err = boolEnv("TRUST_PROXY", false); err != nil {
		return nil, err
	}

	if cfg.CSRFKey, err = csrfKey(os.Getenv("CSRF_KEY"), cfg.Production()); err != nil {
		return nil, err
	}

	cfg.Site = DefaultSite()
	if path := os.Getenv("SITE_CONFIG"); path != "" {
		if err := loadSite(path, &cfg.Site); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		cfg.Site.BaseURL = v
	}

	return cfg, nil
}

// loadSite overlays the YAML file at path onto site. Keys absent from the file keep their defaults.
func loadSite(path string, site *Site) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read site config: %w", err)
	}
	if err := yaml.Unmarshal(raw, site); err != nil {
		return fmt.Errorf("parse site config %s: %w", path, err)
	}
	if n := len(site.Messages.Months); n != 12 {
		return fmt.Errorf("site config %s: messages.months must list 12 names, got %d", path, n)
	}
	return nil
}

func csrfKey(v string, production bool) ([]byte, error) {
	if v != "" {
		if len(v) != 32 {
			return nil, fmt.Errorf("CSRF_KEY must be 32 bytes, got %d", len(v))
		}
		return []byte(v), nil
	}
	if production {
		return nil, fmt.Errorf("CSRF_KEY is required in production")
	}
	// Development only: tokens do not survive a restart.
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate CSRF key: %w", err)
	}
	return key, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
