package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dpgen-labs/dpgen/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	templatesFileName = "templates.yaml"
)

// Setting keys.
const (
	KeyDateFormat      = "date_format"
	KeyDataVersion     = "data_version"
	KeyDownloadTimeout = "download_timeout"
	KeyGitHubToken     = "github_token"
	KeyGitHubAPIURL    = "github_api_url"
	KeyTemplatesFile   = "templates_file"
	KeyLineEnding      = "line_ending"
	KeyPackFormat      = "pack_format"
)

// Keys lists every supported setting in display order.
var Keys = []string{
	KeyDateFormat,
	KeyDataVersion,
	KeyDownloadTimeout,
	KeyGitHubToken,
	KeyGitHubAPIURL,
	KeyTemplatesFile,
	KeyLineEnding,
	KeyPackFormat,
}

// Settings is the typed view of the configuration.
type Settings struct {
	DateFormat      string
	DataVersion     string
	DownloadTimeout time.Duration
	GitHubToken     string
	GitHubAPIURL    string
	TemplatesFile   string
	LineEnding      string
	PackFormat      int
}

// Dir returns the path to the config directory (~/.dpgen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.dpgen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyDateFormat, "2006/01/02")
	viper.SetDefault(KeyDataVersion, "latest")
	viper.SetDefault(KeyDownloadTimeout, "30s")
	viper.SetDefault(KeyGitHubAPIURL, "https://api.github.com")
	viper.SetDefault(KeyTemplatesFile, filepath.Join(Dir(), templatesFileName))
	viper.SetDefault(KeyLineEnding, "lf")
	viper.SetDefault(KeyPackFormat, 0)
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	setDefaults()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the loaded settings. The GitHub token falls back to
// GITHUB_TOKEN, and an unparseable timeout falls back to 30s.
func Current() Settings {
	s := Settings{
		DateFormat:    viper.GetString(KeyDateFormat),
		DataVersion:   viper.GetString(KeyDataVersion),
		GitHubToken:   viper.GetString(KeyGitHubToken),
		GitHubAPIURL:  viper.GetString(KeyGitHubAPIURL),
		TemplatesFile: expandHome(viper.GetString(KeyTemplatesFile)),
		LineEnding:    viper.GetString(KeyLineEnding),
		PackFormat:    viper.GetInt(KeyPackFormat),
	}

	timeout, err := time.ParseDuration(viper.GetString(KeyDownloadTimeout))
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}
	s.DownloadTimeout = timeout

	if s.GitHubToken == "" {
		s.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	return s
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := validate(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func validate(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}

	switch key {
	case KeyDownloadTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration such as 30s", key)
		}
	case KeyLineEnding:
		if value != "lf" && value != "crlf" {
			return fmt.Errorf("%s must be lf or crlf", key)
		}
	case KeyPackFormat:
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer", key)
		}
	case KeyDateFormat:
		if value == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
