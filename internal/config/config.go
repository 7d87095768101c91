// Package config provides configuration loading and management.
package config

import "strings"

// ProjectConfig holds project defaults.
type ProjectConfig struct {
	// Domain is offered as the default project domain.
	Domain string `mapstructure:"domain" json:"domain" yaml:"domain"`
}

// SSLConfig controls the generated TLS material.
type SSLConfig struct {
	KeyName         string `mapstructure:"keyName" json:"keyName" yaml:"keyName"`
	CertificateName string `mapstructure:"certificateName" json:"certificateName" yaml:"certificateName"`

	// KeySize is the RSA key size in bits.
	KeySize int `mapstructure:"keySize" json:"keySize" yaml:"keySize"`

	// ValidityDays is how long the certificate is valid, counted from creation.
	ValidityDays int `mapstructure:"validityDays" json:"validityDays" yaml:"validityDays"`
}

// PgAdminConfig holds the pgAdmin login.
type PgAdminConfig struct {
	Email    string `mapstructure:"email" json:"email" yaml:"email"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
}

// SeleniumConfig holds the Selenium settings.
type SeleniumConfig struct {
	Port int `mapstructure:"port" json:"port" yaml:"port"`
}

// ServicesConfig holds per-service defaults of the compose stack.
type ServicesConfig struct {
	PgAdmin  PgAdminConfig  `mapstructure:"pgadmin" json:"pgadmin" yaml:"pgadmin"`
	Selenium SeleniumConfig `mapstructure:"selenium" json:"selenium" yaml:"selenium"`
}

// ApplicationConfig holds framework settings.
type ApplicationConfig struct {
	// Environment values replace the framework's .env values with the same key.
	Environment map[string]string `mapstructure:"environment" json:"environment" yaml:"environment"`
}

// DatabaseConfig controls the database credentials step.
type DatabaseConfig struct {
	// Enabled asks for database credentials during init.
	// Env: LARAVEL_DOCKER_DATABASE_ENABLED
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`

	Name     string `mapstructure:"name" json:"name" yaml:"name"`
	Username string `mapstructure:"username" json:"username" yaml:"username"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
}

// Container drivers.
const (
	DriverCLI = "cli"
	DriverSDK = "sdk"
)

// ContainerConfig controls how containers are run.
type ContainerConfig struct {
	// Driver is "cli" (shell out to Runtime) or "sdk" (Docker Engine API).
	Driver string `mapstructure:"driver" json:"driver" yaml:"driver"`

	// Runtime is the container CLI binary.
	Runtime string `mapstructure:"runtime" json:"runtime" yaml:"runtime"`

	ComposerImage    string `mapstructure:"composerImage" json:"composerImage" yaml:"composerImage"`
	ComposerImageTag string `mapstructure:"composerImageTag" json:"composerImageTag" yaml:"composerImageTag"`
	NodeImageTag     string `mapstructure:"nodeImageTag" json:"nodeImageTag" yaml:"nodeImageTag"`

	// FrameworkPackage is passed to composer create-project.
	FrameworkPackage string `mapstructure:"frameworkPackage" json:"frameworkPackage" yaml:"frameworkPackage"`

	// ComposeCommand runs exec against the stack, e.g. "docker-compose" or "docker compose".
	ComposeCommand string `mapstructure:"composeCommand" json:"composeCommand" yaml:"composeCommand"`
}

// GitConfig controls repository bootstrapping.
type GitConfig struct {
	Enabled       bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Branch        string `mapstructure:"branch" json:"branch" yaml:"branch"`
	CommitMessage string `mapstructure:"commitMessage" json:"commitMessage" yaml:"commitMessage"`
}

// TemplatesConfig controls where templates are read from.
type TemplatesConfig struct {
	// Dir replaces the built-in templates when set.
	Dir string `mapstructure:"dir" json:"dir,omitempty" yaml:"dir,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the laravel-docker configuration.
// Loaded from ~/.laravel-docker/config.yaml.
type Config struct {
	Project     ProjectConfig     `mapstructure:"project" json:"project" yaml:"project"`
	SSL         SSLConfig         `mapstructure:"ssl" json:"ssl" yaml:"ssl"`
	Services    ServicesConfig    `mapstructure:"services" json:"services" yaml:"services"`
	Application ApplicationConfig `mapstructure:"application" json:"application" yaml:"application"`
	Database    DatabaseConfig    `mapstructure:"database" json:"database" yaml:"database"`
	Container   ContainerConfig   `mapstructure:"container" json:"container" yaml:"container"`
	Git         GitConfig         `mapstructure:"git" json:"git" yaml:"git"`
	Templates   TemplatesConfig   `mapstructure:"templates" json:"templates" yaml:"templates"`
	Log         LogConfig         `mapstructure:"log" json:"log" yaml:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `laravel-docker config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Domain: "application.local",
		},
		SSL: SSLConfig{
			KeyName:         "key.pem",
			CertificateName: "certificate.pem",
			KeySize:         4096,
			ValidityDays:    365,
		},
		Services: ServicesConfig{
			PgAdmin: PgAdminConfig{
				Email:    "hello@harivan.sh",
				Password: "password",
			},
			Selenium: SeleniumConfig{
				Port: 4444,
			},
		},
		Application: ApplicationConfig{
			Environment: map[string]string{
				"DB_CONNECTION":    "pgsql",
				"DB_HOST":          "postgresql",
				"DB_PORT":          "5432",
				"CACHE_DRIVER":     "redis",
				"SESSION_DRIVER":   "redis",
				"QUEUE_CONNECTION": "redis",
				"REDIS_HOST":       "redis",
				"REDIS_PORT":       "6379",
			},
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Name:     "application",
			Username: "username",
			Password: "password",
		},
		Container: ContainerConfig{
			Driver:           DriverCLI,
			Runtime:          "docker",
			ComposerImage:    "composer",
			ComposerImageTag: "latest",
			NodeImageTag:     "lts",
			FrameworkPackage: "laravel/laravel",
			ComposeCommand:   "docker-compose",
		},
		Git: GitConfig{
			Enabled:       true,
			Branch:        "development",
			CommitMessage: "Initial commit",
		},
	}
}

// normalize upper-cases environment keys, which the loader folds to lower
// case.
func (c *Config) normalize() {
	if c.Application.Environment == nil {
		return
	}
	env := make(map[string]string, len(c.Application.Environment))
	for k, v := range c.Application.Environment {
		env[strings.ToUpper(k)] = v
	}
	c.Application.Environment = env
}
