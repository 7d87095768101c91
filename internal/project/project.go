// Package project holds the configuration of the project being scaffolded.
package project

import (
	"os"
	"sort"

	"github.com/merchant-prince/laravel-docker/internal/config"
)

// Project identifies the project.
type Project struct {
	Name   string
	Domain string
}

// SSL names and sizes the TLS material.
type SSL struct {
	KeyName         string
	CertificateName string
	KeySize         int
	ValidityDays    int
}

// Environment is the identity files created inside containers belong to.
type Environment struct {
	UID int
	GID int
}

// PgAdmin is the pgAdmin login.
type PgAdmin struct {
	Email    string
	Password string
}

// Services holds per-service settings of the compose stack.
type Services struct {
	PgAdmin       PgAdmin
	SeleniumPort  int
	ComposerTag   string
	NodeTag       string
	ComposerImage string
}

// Database holds the database credentials.
type Database struct {
	Name     string
	Username string
	Password string
}

// Configuration is the full configuration of a project. It is passed by
// value; the framework environment is only reachable through copies.
type Configuration struct {
	Project     Project
	SSL         SSL
	Environment Environment
	Services    Services
	Database    Database

	appEnv map[string]string
}

// New builds the default configuration from cfg. The effective uid and gid
// of the process are captured here.
func New(cfg config.Config) Configuration {
	return newWithIdentity(cfg, Environment{UID: os.Geteuid(), GID: os.Getegid()})
}

func newWithIdentity(cfg config.Config, identity Environment) Configuration {
	appEnv := make(map[string]string, len(cfg.Application.Environment))
	for k, v := range cfg.Application.Environment {
		appEnv[k] = v
	}

	return Configuration{
		Project: Project{Domain: cfg.Project.Domain},
		SSL: SSL{
			KeyName:         cfg.SSL.KeyName,
			CertificateName: cfg.SSL.CertificateName,
			KeySize:         cfg.SSL.KeySize,
			ValidityDays:    cfg.SSL.ValidityDays,
		},
		Environment: identity,
		Services: Services{
			PgAdmin: PgAdmin{
				Email:    cfg.Services.PgAdmin.Email,
				Password: cfg.Services.PgAdmin.Password,
			},
			SeleniumPort:  cfg.Services.Selenium.Port,
			ComposerImage: cfg.Container.ComposerImage,
			ComposerTag:   cfg.Container.ComposerImageTag,
			NodeTag:       cfg.Container.NodeImageTag,
		},
		Database: Database{
			Name:     cfg.Database.Name,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
		},
		appEnv: appEnv,
	}
}

// AppURL is the address the application is served at.
func (c Configuration) AppURL() string {
	return "https://" + c.Project.Domain
}

// ApplicationEnvironment returns a copy of the values written into the
// framework's .env file.
func (c Configuration) ApplicationEnvironment() map[string]string {
	env := make(map[string]string, len(c.appEnv))
	for k, v := range c.appEnv {
		env[k] = v
	}
	return env
}

// ApplicationEnvironmentKeys returns the framework .env keys in sorted order.
func (c Configuration) ApplicationEnvironmentKeys() []string {
	keys := make([]string, 0, len(c.appEnv))
	for k := range c.appEnv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Replacements returns the framework environment in the form the env-file
// rewriter takes.
func (c Configuration) Replacements() map[string]any {
	replacements := make(map[string]any, len(c.appEnv))
	for k, v := range c.appEnv {
		replacements[k] = v
	}
	return replacements
}

// Finalize derives the values that depend on the collected answers:
// APP_NAME, APP_URL and the DB_* credentials.
func (c Configuration) Finalize() Configuration {
	env := c.ApplicationEnvironment()
	env["APP_NAME"] = c.Project.Name
	env["APP_URL"] = c.AppURL()
	env["DB_DATABASE"] = c.Database.Name
	env["DB_USERNAME"] = c.Database.Username
	env["DB_PASSWORD"] = c.Database.Password
	c.appEnv = env
	return c
}
