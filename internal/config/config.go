package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. SIGNATE_DEPLOY_GH_COMMAND.
const EnvPrefix = "SIGNATE_DEPLOY"

// DefaultSecretName is the repository secret the generated workflows decode.
const DefaultSecretName = "SIGNATE_TOKEN_B64"

// Settings are the tool's own knobs, as opposed to per-competition config.
type Settings struct {
	SignateCommand string `mapstructure:"signate_command"`
	GHCommand      string `mapstructure:"gh_command"`
	CredentialPath string `mapstructure:"credential_path"`
	SecretName     string `mapstructure:"secret_name"`
	PythonVersion  string `mapstructure:"python_version"`
	RetentionDays  int    `mapstructure:"retention_days"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
}

// LoadSettings reads settings from signate-deploy.{yaml,json,toml} in
// ~/.signate-deploy or workDir, then applies SIGNATE_DEPLOY_* overrides.
// A missing config file is fine.
func LoadSettings(workDir string) (*Settings, error) {
	v := viper.New()
	v.SetConfigName("signate-deploy")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".signate-deploy"))
	}
	v.AddConfigPath(workDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("signate_command", "")
	v.SetDefault("gh_command", "gh")
	v.SetDefault("credential_path", defaultCredentialPath())
	v.SetDefault("secret_name", DefaultSecretName)
	v.SetDefault("python_version", "3.12")
	v.SetDefault("retention_days", 90)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.CredentialPath = expandHome(s.CredentialPath)

	if strings.TrimSpace(s.GHCommand) == "" {
		return nil, fmt.Errorf("gh_command cannot be empty")
	}
	if s.RetentionDays <= 0 {
		return nil, fmt.Errorf("retention_days must be positive, got %d", s.RetentionDays)
	}
	return &s, nil
}

// the signate CLI always writes its token here
func defaultCredentialPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".signate", "signate.json")
	}
	return filepath.Join(home, ".signate", "signate.json")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
