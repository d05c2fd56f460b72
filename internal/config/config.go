package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
}

type RoutesConfig struct {
	LoginPath        string `yaml:"login_path"`
	UnauthorizedPath string `yaml:"unauthorized_path"`
}

type ConfigFile struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Routes  RoutesConfig  `yaml:"routes"`
}

type Config struct {
	BaseURL          string
	HTTPTimeout      time.Duration
	CredentialsPath  string
	LoginPath        string
	UnauthorizedPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the optional config file, then applies environment overrides.
// A missing file falls back to defaults so tests and fresh checkouts work
// without any setup. An unreadable or malformed file is an error.
func Load() (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	path := env("PMS_CONFIG_FILE", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		configFile = &ConfigFile{}
	}

	timeoutStr := env("PMS_HTTP_TIMEOUT", configFile.API.Timeout)
	if timeoutStr == "" {
		timeoutStr = "30s"
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP timeout: %w", err)
	}

	credPath := env("PMS_CREDENTIALS_PATH", configFile.Session.CredentialsPath)
	if credPath == "" {
		credPath, err = defaultCredentialsPath()
		if err != nil {
			return nil, err
		}
	}

	loginPath := env("PMS_LOGIN_PATH", configFile.Routes.LoginPath)
	if loginPath == "" {
		loginPath = "/login"
	}
	unauthorizedPath := env("PMS_UNAUTHORIZED_PATH", configFile.Routes.UnauthorizedPath)
	if unauthorizedPath == "" {
		unauthorizedPath = "/unauthorized"
	}

	return &Config{
		BaseURL:          env("PMS_BASE_URL", configFile.API.BaseURL),
		HTTPTimeout:      timeout,
		CredentialsPath:  credPath,
		LoginPath:        loginPath,
		UnauthorizedPath: unauthorizedPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func defaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve config dir: %w", err)
	}
	return filepath.Join(dir, "pmsession", "credentials.json"), nil
}
