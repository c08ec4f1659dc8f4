package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Scraper ScraperConfig `mapstructure:"scraper"`
	Browser BrowserConfig `mapstructure:"browser"`
	Search  SearchConfig  `mapstructure:"search"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type ScraperConfig struct {
	BaseDir           string        `mapstructure:"base_dir"`
	DefaultNumImages  int           `mapstructure:"default_num_images"`
	MinWidth          int           `mapstructure:"min_width"`
	MinHeight         int           `mapstructure:"min_height"`
	SettleDelay       time.Duration `mapstructure:"settle_delay"`
	ScrollPause       time.Duration `mapstructure:"scroll_pause"`
	MaxScrolls        int           `mapstructure:"max_scrolls"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	RetryAttempts     int           `mapstructure:"retry_attempts"`
	RetryWait         time.Duration `mapstructure:"retry_wait"`
	MaxConcurrentJobs int           `mapstructure:"max_concurrent_jobs"`
	JobTTL            time.Duration `mapstructure:"job_ttl"`
}

type BrowserConfig struct {
	Headless   bool          `mapstructure:"headless"`
	DisableGPU bool          `mapstructure:"disable_gpu"`
	NoSandbox  bool          `mapstructure:"no_sandbox"`
	UserAgent  string        `mapstructure:"user_agent"`
	NavTimeout time.Duration `mapstructure:"nav_timeout"`
}

type SearchConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("scraper.base_dir", "./GoogleSearchImages")
	v.SetDefault("scraper.default_num_images", 10)
	v.SetDefault("scraper.min_width", 100)
	v.SetDefault("scraper.min_height", 100)
	v.SetDefault("scraper.settle_delay", "5s")
	v.SetDefault("scraper.scroll_pause", "2s")
	v.SetDefault("scraper.max_scrolls", 5)
	v.SetDefault("scraper.fetch_timeout", "10s")
	v.SetDefault("scraper.retry_attempts", 3)
	v.SetDefault("scraper.retry_wait", "2s")
	v.SetDefault("scraper.max_concurrent_jobs", 4)
	v.SetDefault("scraper.job_ttl", "0")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.disable_gpu", true)
	v.SetDefault("browser.no_sandbox", true)
	v.SetDefault("browser.user_agent", "")
	v.SetDefault("browser.nav_timeout", "30s")
	v.SetDefault("search.endpoint", "https://www.google.com/search")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for deployment overrides
	v.BindEnv("server.port", "PORT")
	v.BindEnv("scraper.base_dir", "SCRAPER_BASE_DIR")
	v.BindEnv("browser.headless", "BROWSER_HEADLESS")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.file", "LOG_FILE")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
