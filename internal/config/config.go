package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type RunMode string

const (
	RunModeOnce       RunMode = "once"
	RunModeContinuous RunMode = "continuous"
)

type Config struct {
	DB        DBConfig
	GitHub    GitHubConfig
	OpenAI    OpenAIConfig
	Insight   InsightConfig
	Scheduler SchedulerConfig
	Registry  RegistryConfig
	Server    ServerConfig
	Alert     AlertConfig
	Tracing   TracingConfig
	Log       LogConfig
}

type DBConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsDir   string
}

type GitHubConfig struct {
	APIURL     string
	Token      string
	FetchLimit int
	RateRPS    float64
	RateBurst  int
	Timeout    time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	APIBase string
	Model   string
	Timeout time.Duration
}

type InsightConfig struct {
	Languages     []string
	LookbackDays  int
	CooldownHours int
	MaxEvents     int
	Force         bool
}

type SchedulerConfig struct {
	Mode            RunMode
	ProjectFilter   []string
	GitHubInterval  time.Duration
	TwitterInterval time.Duration
	OnchainInterval time.Duration
	CheckInterval   time.Duration
	ProjectDelay    time.Duration
	SkipIngest      bool
	SkipInsights    bool
}

type RegistryConfig struct {
	ProjectsFile       string
	NormalizeBatchSize int
}

type ServerConfig struct {
	HealthPort int
}

type AlertConfig struct {
	WebhookURL  string
	SlackURL    string
	CooldownMin int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
	Insecure bool
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		DB: DBConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute,
			MigrationsDir:   getEnv("MIGRATIONS_DIR", "migrations"),
		},
		GitHub: GitHubConfig{
			APIURL:     getEnv("GITHUB_API_URL", "https://api.github.com"),
			Token:      getEnv("GITHUB_TOKEN", ""),
			FetchLimit: getEnvInt("GITHUB_FETCH_LIMIT", 100),
			RateRPS:    getEnvFloat("GITHUB_RATE_RPS", 1),
			RateBurst:  getEnvInt("GITHUB_RATE_BURST", 2),
			Timeout:    time.Duration(getEnvInt("GITHUB_TIMEOUT_SEC", 30)) * time.Second,
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			APIBase: getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout: time.Duration(getEnvInt("OPENAI_TIMEOUT_SEC", 30)) * time.Second,
		},
		Insight: InsightConfig{
			Languages:     getEnvList("INSIGHT_LANGUAGES", []string{"en"}),
			LookbackDays:  getEnvInt("INSIGHT_LOOKBACK_DAYS", 7),
			CooldownHours: getEnvInt("INSIGHT_COOLDOWN_HOURS", 12),
			MaxEvents:     getEnvInt("INSIGHT_MAX_EVENTS", 200),
			Force:         getEnvBool("FORCE_INSIGHTS", false),
		},
		Scheduler: SchedulerConfig{
			Mode:            RunMode(getEnv("RUN_MODE", string(RunModeOnce))),
			ProjectFilter:   getEnvList("PROJECT_FILTER", nil),
			GitHubInterval:  time.Duration(getEnvInt("GITHUB_UPDATE_INTERVAL_MINUTES", 360)) * time.Minute,
			TwitterInterval: time.Duration(getEnvInt("TWITTER_UPDATE_INTERVAL_MINUTES", 30)) * time.Minute,
			OnchainInterval: time.Duration(getEnvInt("ONCHAIN_UPDATE_INTERVAL_MINUTES", 15)) * time.Minute,
			CheckInterval:   time.Duration(getEnvInt("CHECK_INTERVAL_SECONDS", 60)) * time.Second,
			ProjectDelay:    time.Duration(getEnvInt("PROJECT_DELAY_SECONDS", 2)) * time.Second,
			SkipIngest:      getEnvBool("SKIP_INGEST", false),
			SkipInsights:    getEnvBool("SKIP_INSIGHTS", false),
		},
		Registry: RegistryConfig{
			ProjectsFile:       getEnv("PROJECTS_FILE", "projects.yaml"),
			NormalizeBatchSize: getEnvInt("NORMALIZE_BATCH_SIZE", 100),
		},
		Server: ServerConfig{
			HealthPort: getEnvInt("HEALTH_PORT", 8080),
		},
		Alert: AlertConfig{
			WebhookURL:  getEnv("ALERT_WEBHOOK_URL", ""),
			SlackURL:    getEnv("SLACK_WEBHOOK_URL", ""),
			CooldownMin: getEnvInt("ALERT_COOLDOWN_MIN", 30),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvBool("TRACING_ENABLED", false),
			Endpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
			Insecure: getEnvBool("TRACING_INSECURE", true),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Scheduler.Mode != RunModeOnce && c.Scheduler.Mode != RunModeContinuous {
		return fmt.Errorf("RUN_MODE must be %q or %q, got %q", RunModeOnce, RunModeContinuous, c.Scheduler.Mode)
	}
	if c.Registry.ProjectsFile == "" {
		return fmt.Errorf("PROJECTS_FILE is required")
	}
	if c.Insight.LookbackDays <= 0 {
		return fmt.Errorf("INSIGHT_LOOKBACK_DAYS must be positive")
	}
	if len(c.Insight.Languages) == 0 {
		return fmt.Errorf("INSIGHT_LANGUAGES must name at least one language")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
