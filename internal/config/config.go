// Package config provides configuration management for marquee using Viper
// for flexible loading from files, environment variables, and command-line
// flags.
//
// The configuration supports YAML files, environment overrides with the
// MARQUEE_ prefix, and validation. It manages server settings, content store
// credentials, webhook secrets, the optional tag-table override file, and the
// local content directory for dev mode.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Content    ContentConfig    `yaml:"content"`
	Secrets    SecretsConfig    `yaml:"secrets"`
	Revalidate RevalidateConfig `yaml:"revalidate"`
	Dev        DevConfig        `yaml:"dev"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type ContentConfig struct {
	ProjectID  string `yaml:"project_id"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"api_version"`
	Token      string `yaml:"token"`
	BaseURL    string `yaml:"base_url"`
}

type SecretsConfig struct {
	// Revalidate is the shared secret for both invalidation webhooks: the
	// query-param check on the tag webhook and the HMAC key on the path
	// webhook.
	Revalidate string `yaml:"revalidate"`
	// Preview is the shared secret for the draft-mode endpoints.
	Preview string `yaml:"preview"`
}

type RevalidateConfig struct {
	// TableFile optionally overrides entries of the built-in document-type
	// dispatch table.
	TableFile string `yaml:"table_file"`
}

type DevConfig struct {
	// ContentDir holds local YAML content documents for dev mode.
	ContentDir string `yaml:"content_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply defaults only where nothing was explicitly set.
	if !viper.IsSet("server.port") && config.Server.Port == 0 {
		config.Server.Port = 8090
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Content.Dataset == "" {
		config.Content.Dataset = "production"
	}
	if config.Content.APIVersion == "" {
		config.Content.APIVersion = "2024-05-01"
	}
	if config.Dev.ContentDir == "" {
		config.Dev.ContentDir = "./content"
	}
	if config.Log.Level == "" {
		config.Log.Level = viper.GetString("log-level")
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	// Underscore keys do not bind through Unmarshal's field matching; read
	// them explicitly.
	if viper.IsSet("content.project_id") {
		config.Content.ProjectID = viper.GetString("content.project_id")
	}
	if viper.IsSet("content.api_version") {
		config.Content.APIVersion = viper.GetString("content.api_version")
	}
	if viper.IsSet("content.base_url") {
		config.Content.BaseURL = viper.GetString("content.base_url")
	}
	if viper.IsSet("revalidate.table_file") {
		config.Revalidate.TableFile = viper.GetString("revalidate.table_file")
	}
	if viper.IsSet("dev.content_dir") {
		config.Dev.ContentDir = viper.GetString("dev.content_dir")
	}

	// Secrets come from env more often than from file; honor both.
	if viper.IsSet("secrets.revalidate") {
		config.Secrets.Revalidate = viper.GetString("secrets.revalidate")
	}
	if viper.IsSet("secrets.preview") {
		config.Secrets.Preview = viper.GetString("secrets.preview")
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness.
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if config.Revalidate.TableFile != "" {
		if err := validatePath(config.Revalidate.TableFile); err != nil {
			return fmt.Errorf("revalidate config: table_file: %w", err)
		}
	}

	if config.Dev.ContentDir != "" {
		if err := validatePath(config.Dev.ContentDir); err != nil {
			return fmt.Errorf("dev config: content_dir: %w", err)
		}
	}

	return nil
}

// validateServerConfig validates server configuration values.
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing.
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	return nil
}

// validatePath validates a file path for security.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// RequireServeSecrets checks the secrets a running webhook server cannot do
// without. Called by the serve command, not by Load, so offline commands
// like tag inspection work unconfigured.
func RequireServeSecrets(config *Config) error {
	if config.Secrets.Revalidate == "" {
		return fmt.Errorf("secrets.revalidate must be set (MARQUEE_SECRETS_REVALIDATE)")
	}
	if config.Secrets.Preview == "" {
		return fmt.Errorf("secrets.preview must be set (MARQUEE_SECRETS_PREVIEW)")
	}
	return nil
}
