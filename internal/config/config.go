package config

import (
	"fmt"
	"strings"
	"time"

	"ainewsdaily/internal/model"
	"ainewsdaily/pkg/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	DatabaseURL string
	RedisURL    string

	LLMProvider     string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	Storage storage.Config

	FeedURLs   []string
	TargetDate string

	RetentionDays int
	RecentDays    int
	ArchiveDays   int

	CallTimeout time.Duration
	RunTimeout  time.Duration

	Port        string
	FrontendURL string
}

// LoadEnvFiles reads .env.local then .env when present. Variables already in
// the environment win.
func LoadEnvFiles() {
	godotenv.Load(".env.local")
	godotenv.Load(".env")
}

// Load reads the configuration from the environment. It does not check for
// credentials; binaries call the Require* method matching what they do.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		DatabaseURL: v.GetString("DATABASE_URL"),
		RedisURL:    v.GetString("REDIS_URL"),

		LLMProvider:     strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
		OpenAIAPIKey:    v.GetString("OPENAI_API_KEY"),
		AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),

		ElevenLabsAPIKey:  v.GetString("ELEVENLABS_API_KEY"),
		ElevenLabsVoiceID: v.GetString("ELEVENLABS_VOICE_ID"),

		Storage: storage.Config{
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
			PublicURL: v.GetString("STORAGE_PUBLIC_URL"),
		},

		FeedURLs:   splitList(v.GetString("FEED_URLS")),
		TargetDate: strings.TrimSpace(v.GetString("TARGET_DATE")),

		RetentionDays: v.GetInt("RETENTION_DAYS"),
		RecentDays:    v.GetInt("RECENT_DAYS"),
		ArchiveDays:   v.GetInt("ARCHIVE_DAYS"),

		CallTimeout: v.GetDuration("CALL_TIMEOUT"),
		RunTimeout:  v.GetDuration("RUN_TIMEOUT"),

		Port:        v.GetString("PORT"),
		FrontendURL: v.GetString("FRONTEND_URL"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("STORAGE_BUCKET", "media")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("RETENTION_DAYS", 7)
	v.SetDefault("RECENT_DAYS", 7)
	v.SetDefault("ARCHIVE_DAYS", 15)
	v.SetDefault("CALL_TIMEOUT", "90s")
	v.SetDefault("RUN_TIMEOUT", "20m")
	v.SetDefault("PORT", "8080")
}

// validate checks values that are wrong regardless of which binary runs.
func validate(cfg *Config) error {
	if cfg.LLMProvider != ProviderOpenAI && cfg.LLMProvider != ProviderAnthropic {
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderAnthropic, cfg.LLMProvider)
	}
	if cfg.RetentionDays <= 0 {
		return fmt.Errorf("RETENTION_DAYS must be positive")
	}
	if cfg.RecentDays <= 0 || cfg.ArchiveDays <= 0 {
		return fmt.Errorf("RECENT_DAYS and ARCHIVE_DAYS must be positive")
	}
	if cfg.CallTimeout <= 0 || cfg.RunTimeout <= 0 {
		return fmt.Errorf("CALL_TIMEOUT and RUN_TIMEOUT must be positive durations")
	}
	if cfg.TargetDate != "" {
		if _, err := time.Parse(model.DateLayout, cfg.TargetDate); err != nil {
			return fmt.Errorf("TARGET_DATE must be YYYY-MM-DD: %w", err)
		}
	}
	return nil
}

func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// RequireGenerator checks every credential the generation run needs.
func (c *Config) RequireGenerator() error {
	if err := c.RequireDatabase(); err != nil {
		return err
	}

	required := []struct {
		name  string
		value string
	}{
		{"OPENAI_API_KEY", c.OpenAIAPIKey},
		{"ELEVENLABS_API_KEY", c.ElevenLabsAPIKey},
		{"STORAGE_ENDPOINT", c.Storage.Endpoint},
		{"STORAGE_ACCESS_KEY", c.Storage.AccessKey},
		{"STORAGE_SECRET_KEY", c.Storage.SecretKey},
		{"STORAGE_PUBLIC_URL", c.Storage.PublicURL},
	}
	if c.LLMProvider == ProviderAnthropic {
		required = append(required, struct {
			name  string
			value string
		}{"ANTHROPIC_API_KEY", c.AnthropicAPIKey})
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Target is the moment a run writes for. TARGET_DATE pins it to midnight UTC
// of that day; otherwise it is now.
func (c *Config) Target(now time.Time) time.Time {
	if c.TargetDate == "" {
		return now.UTC()
	}
	t, err := time.Parse(model.DateLayout, c.TargetDate)
	if err != nil {
		return now.UTC()
	}
	return t.UTC()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' || r == ' ' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
