// Package config loads bloglabs configuration from config.yaml, BLOGLABS_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultRepoURL is the source repository opened with the g key.
const DefaultRepoURL = "https://github.com/Coder-Harshit/bloglabs"

// Config is the resolved runtime configuration
type Config struct {
	ContentDir   string         `mapstructure:"content_dir" yaml:"content_dir"`
	PublicDir    string         `mapstructure:"public_dir" yaml:"public_dir"`
	BundlePath   string         `mapstructure:"bundle" yaml:"bundle"`
	CachePath    string         `mapstructure:"cache" yaml:"cache"`
	SettingsPath string         `mapstructure:"settings" yaml:"settings"`
	RepoURL      string         `mapstructure:"repo_url" yaml:"repo_url"`
	SiteURL      string         `mapstructure:"site_url" yaml:"site_url"`
	LogFile      string         `mapstructure:"log_file" yaml:"log_file"`
	Touch        bool           `mapstructure:"touch" yaml:"touch"`
	Watch        bool           `mapstructure:"watch" yaml:"watch"`
	Debounce     time.Duration  `mapstructure:"debounce" yaml:"debounce"`
	Boot         BootConfig     `mapstructure:"boot" yaml:"boot"`
	Art          ArtConfig      `mapstructure:"art" yaml:"art"`
	Markdown     MarkdownConfig `mapstructure:"markdown" yaml:"markdown"`
}

// BootConfig controls the boot animation
type BootConfig struct {
	Skip     bool          `mapstructure:"skip" yaml:"skip"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	Pause    time.Duration `mapstructure:"pause" yaml:"pause"`
}

// ArtConfig controls image to ASCII conversion
type ArtConfig struct {
	Width     int  `mapstructure:"width" yaml:"width"`
	Normalize bool `mapstructure:"normalize" yaml:"normalize"`
}

// MarkdownConfig controls markup rendering at ingestion
type MarkdownConfig struct {
	Width int    `mapstructure:"width" yaml:"width"`
	Style string `mapstructure:"style" yaml:"style"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("content_dir", "content")
	v.SetDefault("public_dir", "public")
	v.SetDefault("bundle", filepath.Join(StateDir, "bundle.json"))
	v.SetDefault("cache", filepath.Join(StateDir, "cache.db"))
	v.SetDefault("settings", "")
	v.SetDefault("repo_url", DefaultRepoURL)
	v.SetDefault("site_url", "")
	v.SetDefault("log_file", "")
	v.SetDefault("touch", false)
	v.SetDefault("watch", false)
	v.SetDefault("debounce", 200*time.Millisecond)
	v.SetDefault("boot.skip", false)
	v.SetDefault("boot.interval", 500*time.Millisecond)
	v.SetDefault("boot.pause", 1000*time.Millisecond)
	v.SetDefault("art.width", 80)
	v.SetDefault("art.normalize", false)
	v.SetDefault("markdown.width", 70)
	v.SetDefault("markdown.style", "dark")
}

// Load reads configuration into a Config. path may name an explicit config
// file; otherwise config.yaml is looked up in the working directory and the
// user config directory. A missing config file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("BLOGLABS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "bloglabs"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if strings.TrimSpace(c.ContentDir) == "" {
		return fmt.Errorf("content_dir cannot be empty")
	}
	if c.Boot.Interval < 0 || c.Boot.Pause < 0 {
		return fmt.Errorf("boot durations cannot be negative")
	}
	if c.Art.Width < 8 || c.Art.Width > 400 {
		return fmt.Errorf("art.width must be between 8 and 400, got %d", c.Art.Width)
	}
	if c.Markdown.Width < 20 {
		return fmt.Errorf("markdown.width must be at least 20, got %d", c.Markdown.Width)
	}
	if c.RepoURL != "" {
		u, err := url.Parse(c.RepoURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("repo_url must be an http(s) URL: %q", c.RepoURL)
		}
	}
	return nil
}

// ResolvedSettingsPath returns the settings file, defaulting to the user
// config directory.
func (c Config) ResolvedSettingsPath() (string, error) {
	if c.SettingsPath != "" {
		return expandHome(c.SettingsPath), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "bloglabs", "settings.json"), nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
