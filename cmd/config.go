package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix      = "INTAKE"
	configEnvVar   = "INTAKE_CONFIG"
	configDirName  = "intake"
	configFileName = "config.toml"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.request_timeout", 2*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.path", "")

	v.SetDefault("repo.path", "")
	v.SetDefault("repo.remote", "origin")
	v.SetDefault("repo.integration_branch", "dev")
	v.SetDefault("repo.target_branch", "main")
	v.SetDefault("repo.output_dir", "intake")
	v.SetDefault("repo.author_name", "platform-intake")
	v.SetDefault("repo.author_email", "platform-intake@users.noreply.github.com")

	v.SetDefault("github.repo", "")
	v.SetDefault("github.fork_owner", "")
	v.SetDefault("github.base_url", "")
	v.SetDefault("github.oauth_url", "")
	v.SetDefault("github.token", "")
	v.SetDefault("github.token_ref", "")
	v.SetDefault("github.timeout", 30*time.Second)
	v.SetDefault("github.client_id", "")

	v.SetDefault("artifacts.format", "yaml")
	v.SetDefault("governance.path", "")
	v.SetDefault("classifier.mode", "keyword")
	v.SetDefault("classifier.genai_api_key", "")
	v.SetDefault("classifier.model", "")
	v.SetDefault("classifier.threshold", 0.0)
	v.SetDefault("secrets.dir", "")
}

// loadConfig reads the TOML config file when present. Every key can be
// overridden with an INTAKE_ prefixed variable, e.g. INTAKE_REPO_PATH.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	explicit := path != ""
	if !explicit {
		path = os.Getenv(configEnvVar)
		explicit = path != ""
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName(strings.TrimSuffix(configFileName, filepath.Ext(configFileName)))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func defaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, configDirName), nil
}

func secretsDir(v *viper.Viper) (string, error) {
	if dir := v.GetString("secrets.dir"); dir != "" {
		return dir, nil
	}
	base, err := defaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "secrets"), nil
}
