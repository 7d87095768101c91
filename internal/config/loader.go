package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Environment variable prefix for laravel-docker configuration.
const envPrefix = "LARAVEL_DOCKER"

// envConfigVar overrides the config file path.
const envConfigVar = envPrefix + "_CONFIG"

// Loader handles loading and merging configuration from multiple sources.
// Precedence: environment > config file > defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader with defaults registered.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaultSettings() {
		v.SetDefault(key, value)
	}

	// No default exists for log.timestamps, so the env var is bound explicitly.
	_ = v.BindEnv("log.timestamps")
	_ = v.BindEnv("templates.dir")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error; defaults and environment still apply.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.normalize()

	return &cfg, nil
}

// UsedFile returns the config file path of the last Load.
func (l *Loader) UsedFile() string {
	return l.v.ConfigFileUsed()
}

// defaultSettings flattens DefaultConfig into dotted viper keys.
func defaultSettings() map[string]any {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		// DefaultConfig only holds plain values.
		panic(err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		panic(err)
	}

	settings := map[string]any{}
	flatten("", tree, settings)
	return settings
}

func flatten(prefix string, node map[string]any, into map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flatten(key, child, into)
			continue
		}
		into[key] = v
	}
}
