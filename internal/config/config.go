package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level compiled configuration.
type Config struct {
	ClaudeHome   string   `mapstructure:"claude_home"`
	SearchPaths  []string `mapstructure:"search_paths"`
	Year         int      `mapstructure:"year"`
	Timezone     string   `mapstructure:"timezone"`
	Output       string   `mapstructure:"output"`
	Model        string   `mapstructure:"model"`
	APIURL       string   `mapstructure:"api_url"`
	APIKey       string   `mapstructure:"api_key"`
	GeminiAPIKey string   `mapstructure:"gemini_api_key"`
	JudgeSamples int      `mapstructure:"judge_samples"`
	SummaryLimit int      `mapstructure:"summary_limit"`
	Workers      int      `mapstructure:"workers"`
	ImageScript  string   `mapstructure:"image_script"`
	Python       string   `mapstructure:"python"`
	LexiconFile  string   `mapstructure:"lexicon_file"`
	ExportDB     bool     `mapstructure:"export_db"`
	ShareBaseURL string   `mapstructure:"share_base_url"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed with COMPILED_ override file values; ANTHROPIC_API_KEY and
// GEMINI_API_KEY are honored as well.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("claude_home", DefaultClaudeHome)
	v.SetDefault("search_paths", DefaultSearchPaths)
	v.SetDefault("year", DefaultYear)
	v.SetDefault("timezone", "")
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("api_key", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("judge_samples", DefaultJudgeSamples)
	v.SetDefault("summary_limit", DefaultSummaryLimit)
	v.SetDefault("workers", 0)
	v.SetDefault("image_script", DefaultImageScript)
	v.SetDefault("python", DefaultPython)
	v.SetDefault("lexicon_file", "")
	v.SetDefault("export_db", true)
	v.SetDefault("share_base_url", DefaultShareBaseURL)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("gemini_api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ClaudeHome = expandPath(cfg.ClaudeHome)
	for i, p := range cfg.SearchPaths {
		cfg.SearchPaths[i] = expandPath(p)
	}
	cfg.LexiconFile = expandPath(cfg.LexiconFile)
	cfg.ImageScript = expandPath(cfg.ImageScript)

	return &cfg, nil
}

// OutputDir returns the configured output directory for year.
func (c *Config) OutputDir(year int) string {
	return expandPath(strings.ReplaceAll(c.Output, "{year}", strconv.Itoa(year)))
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
