package templates

import (
	"fmt"
	"sort"
)

// Names of the templates shipped in the embedded root.
const (
	NginxDefault  = "configuration/nginx/conf.d/default.conf"
	NginxUtils    = "configuration/nginx/conf.d/utils.conf"
	PHPDockerfile = "dockerfiles/php/Dockerfile"
	PHPEntrypoint = "dockerfiles/php/entrypoint.sh"
	Compose       = "docker-compose.yml"
	ProjectEnv    = "project.env"
	Runner        = "run"
	GitIgnore     = "project.gitignore"
	License       = "LICENSE"
	Readme        = "README.md"
)

// Entry describes a known template.
type Entry struct {
	// Name is the template path under the root.
	Name string

	// Description is shown next to the generated file.
	Description string

	// Variables lists the placeholders the template uses.
	Variables []string
}

// registry is the internal registry of known templates.
var registry = map[string]Entry{
	NginxDefault: {
		Name:        NginxDefault,
		Description: "nginx virtual host",
		Variables:   []string{"PROJECT_DOMAIN", "SSL_KEY_NAME", "SSL_CERTIFICATE_NAME"},
	},
	NginxUtils: {
		Name:        NginxUtils,
		Description: "shared nginx settings",
		Variables:   []string{"PROJECT_DOMAIN"},
	},
	PHPDockerfile: {
		Name:        PHPDockerfile,
		Description: "php-fpm image",
	},
	PHPEntrypoint: {
		Name:        PHPEntrypoint,
		Description: "php container entrypoint",
	},
	Compose: {
		Name:        Compose,
		Description: "service definitions",
	},
	ProjectEnv: {
		Name:        ProjectEnv,
		Description: "stack environment",
		Variables: []string{
			"PROJECT_NAME", "PROJECT_DOMAIN", "USER_ID", "GROUP_ID",
			"SSL_KEY_NAME", "SSL_CERTIFICATE_NAME",
			"DB_NAME", "DB_USERNAME", "DB_PASSWORD",
			"PGADMIN_EMAIL", "PGADMIN_PASSWORD", "SELENIUM_PORT",
			"COMPOSER_IMAGE_TAG", "NODE_IMAGE_TAG",
		},
	},
	Runner: {
		Name:        Runner,
		Description: "task runner",
	},
	GitIgnore: {
		Name:        GitIgnore,
		Description: "git ignore rules",
	},
	License: {
		Name:        License,
		Description: "license",
	},
	Readme: {
		Name:        Readme,
		Description: "getting started",
		Variables:   []string{"PROJECT_NAME", "PROJECT_DOMAIN", "APP_URL", "SELENIUM_PORT"},
	},
}

// Get returns a known template by name.
func Get(name string) (Entry, error) {
	e, ok := registry[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q is not a known template", ErrTemplateNotFound, name)
	}
	return e, nil
}

// List returns all known templates sorted by name.
func List() []Entry {
	entries := make([]Entry, 0, len(registry))
	for _, e := range registry {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
