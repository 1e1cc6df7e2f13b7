package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

var (
	ErrAIProviderUnknown       = errors.New("sitecms config: ai provider is invalid")
	ErrAIImageSizeInvalid      = errors.New("sitecms config: ai image size is invalid")
	ErrAutomationRequiresAI    = errors.New("sitecms config: automation feature requires ai to be enabled")
	ErrCacheTTLInvalid         = errors.New("sitecms config: cache ttl must be positive when cache is enabled")
	ErrStorageDriverUnknown    = errors.New("sitecms config: storage driver is invalid")
	ErrStorageDSNRequired      = errors.New("sitecms config: storage dsn is required")
	ErrHTTPAddrRequired        = errors.New("sitecms config: http address is required")
	ErrLoggingProviderRequired = errors.New("sitecms config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("sitecms config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("sitecms config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("sitecms config: logging format is invalid")
	ErrConfigTooLarge          = errors.New("sitecms config: file exceeds maximum size")
)

// MaxFileSize bounds config files read by Load.
const MaxFileSize = 1 << 20

// Config aggregates feature flags and adapter settings for the site.
type Config struct {
	Enabled       bool                `yaml:"enabled"`
	SiteURL       string              `yaml:"site_url"`
	Storage       StorageConfig       `yaml:"storage"`
	Cache         CacheConfig         `yaml:"cache"`
	Logging       LoggingConfig       `yaml:"logging"`
	Features      Features            `yaml:"features"`
	AI            AIConfig            `yaml:"ai"`
	Automation    AutomationConfig    `yaml:"automation"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Contact       ContactConfig       `yaml:"contact"`
	HTTP          HTTPConfig          `yaml:"http"`
	Markdown      MarkdownConfig      `yaml:"markdown"`
}

// StorageConfig selects the bun dialect and connection string.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// Features toggles module functionality.
type Features struct {
	AI         bool `yaml:"ai"`
	Automation bool `yaml:"automation"`
	Markdown   bool `yaml:"markdown"`
	Logger     bool `yaml:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// AIConfig configures the completion provider.
type AIConfig struct {
	Provider    string        `yaml:"provider"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	ImageModel  string        `yaml:"image_model"`
	ImageSize   string        `yaml:"image_size"`
	VisionModel string        `yaml:"vision_model"`
	Timeout     time.Duration `yaml:"timeout"`
}

// AutomationConfig secures and schedules the generation pipeline.
type AutomationConfig struct {
	CronSecret string `yaml:"cron_secret"`
	// Schedule registers an in-process cron job when set.
	Schedule string `yaml:"schedule"`
}

// NotificationsConfig configures Postmark e-mails.
type NotificationsConfig struct {
	PostmarkToken  string `yaml:"postmark_token"`
	FromEmail      string `yaml:"from_email"`
	FormsFromEmail string `yaml:"forms_from_email"`
	StudioURL      string `yaml:"studio_url"`
}

// ContactConfig points contact form submissions at a Google Sheet. Rows
// are only appended when both service account values are set.
type ContactConfig struct {
	SheetID           string `yaml:"sheet_id"`
	SheetsClientEmail string `yaml:"sheets_client_email"`
	SheetsPrivateKey  string `yaml:"sheets_private_key"`
}

// SheetsReady reports whether sheet forwarding has credentials.
func (c ContactConfig) SheetsReady() bool {
	return strings.TrimSpace(c.SheetsClientEmail) != "" && strings.TrimSpace(c.SheetsPrivateKey) != ""
}

type HTTPConfig struct {
	Addr        string `yaml:"addr"`
	BasePath    string `yaml:"base_path"`
	AllowOrigin string `yaml:"allow_origin"`
}

// MarkdownConfig captures draft discovery and parser behaviour.
type MarkdownConfig struct {
	DraftsDir string               `yaml:"drafts_dir"`
	Pattern   string               `yaml:"pattern"`
	Recursive bool                 `yaml:"recursive"`
	Parser    MarkdownParserConfig `yaml:"parser"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions.
type MarkdownParserConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// DefaultConfig returns defaults for a local sqlite deployment.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		SiteURL: "http://localhost:3000",
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file:sitecms.db?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Markdown: true,
		},
		AI: AIConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			ImageModel:  "dall-e-3",
			ImageSize:   "1792x1024",
			VisionModel: "gpt-4o",
			Timeout:     2 * time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:        ":8080",
			AllowOrigin: "*",
		},
		Markdown: MarkdownConfig{
			Pattern:   "*.md",
			Recursive: true,
		},
	}
}

// Load reads a YAML file over DefaultConfig. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("sitecms config: read %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return cfg, fmt.Errorf("%w: %d bytes", ErrConfigTooLarge, len(data))
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return cfg, fmt.Errorf("sitecms config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays the deployment environment. Blank values are ignored.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("OPENAI_API_KEY"); ok {
		cfg.AI.APIKey = v
	}
	if v, ok := get("CRON_SECRET"); ok {
		cfg.Automation.CronSecret = v
	}
	if v, ok := get("POSTMARK_API_KEY"); ok {
		cfg.Notifications.PostmarkToken = v
	}
	if v, ok := get("POSTMARK_FROM_EMAIL"); ok {
		cfg.Notifications.FromEmail = v
	}
	if v, ok := get("FROM_EMAIL"); ok {
		cfg.Notifications.FormsFromEmail = v
	}
	if v, ok := get("GOOGLE_SHEETS_ID"); ok {
		cfg.Contact.SheetID = v
	}
	if v, ok := get("SHEETS_CLIENT_EMAIL"); ok {
		cfg.Contact.SheetsClientEmail = v
	}
	if v, ok := get("SHEETS_PRIVATE_KEY"); ok {
		cfg.Contact.SheetsPrivateKey = v
	}
	if v, ok := get("SITE_URL"); ok {
		cfg.SiteURL = v
	}
	if v, ok := get("ENABLE_AI_FEATURES"); ok {
		enabled, err := strconv.ParseBool(v)
		cfg.Features.AI = err == nil && enabled
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	if cfg.Features.Automation && !cfg.Features.AI {
		return ErrAutomationRequiresAI
	}
	if cfg.Features.AI {
		if provider := normalize(cfg.AI.Provider); provider != "openai" {
			return fmt.Errorf("%w: %s", ErrAIProviderUnknown, cfg.AI.Provider)
		}
		switch cfg.AI.ImageSize {
		case "", "1024x1024", "1792x1024", "1024x1792":
		default:
			return fmt.Errorf("%w: %s", ErrAIImageSizeInvalid, cfg.AI.ImageSize)
		}
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// AIReady reports whether AI routes can reach the provider.
func (cfg Config) AIReady() bool {
	return cfg.Features.AI && strings.TrimSpace(cfg.AI.APIKey) != ""
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
