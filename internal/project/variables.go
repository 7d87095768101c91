package project

import "github.com/merchant-prince/laravel-docker/internal/templates"

// Variables returns every template variable a project uses.
func (c Configuration) Variables() templates.Variables {
	return templates.Variables{
		templates.Var("PROJECT_NAME", c.Project.Name),
		templates.Var("PROJECT_DOMAIN", c.Project.Domain),
		templates.Var("APP_URL", c.AppURL()),
		templates.Var("USER_ID", c.Environment.UID),
		templates.Var("GROUP_ID", c.Environment.GID),
		templates.Var("SSL_KEY_NAME", c.SSL.KeyName),
		templates.Var("SSL_CERTIFICATE_NAME", c.SSL.CertificateName),
		templates.Var("DB_NAME", c.Database.Name),
		templates.Var("DB_USERNAME", c.Database.Username),
		templates.Var("DB_PASSWORD", c.Database.Password),
		templates.Var("PGADMIN_EMAIL", c.Services.PgAdmin.Email),
		templates.Var("PGADMIN_PASSWORD", c.Services.PgAdmin.Password),
		templates.Var("SELENIUM_PORT", c.Services.SeleniumPort),
		templates.Var("COMPOSER_IMAGE_TAG", c.Services.ComposerTag),
		templates.Var("NODE_IMAGE_TAG", c.Services.NodeTag),
	}
}
