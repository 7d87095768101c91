package templates

// Select returns the variables named in names, in the order of names.
// Names without a variable are skipped.
func (v Variables) Select(names ...string) Variables {
	byName := make(map[string]Variable, len(v))
	for _, variable := range v {
		byName[variable.Name] = variable
	}

	selected := make(Variables, 0, len(names))
	for _, name := range names {
		if variable, ok := byName[name]; ok {
			selected = append(selected, variable)
		}
	}
	return selected
}

// ProjectPlan returns the files of a new project in creation order. Targets
// are relative to the project directory. Each file receives the variables
// its template declares, taken from vars; .env.example gets them blank.
func ProjectPlan(vars Variables) []FileSpec {
	pick := func(name string) Variables {
		entry, _ := Get(name)
		return vars.Select(entry.Variables...)
	}

	return []FileSpec{
		{Template: NginxDefault, Target: "configuration/nginx/conf.d/default.conf", Vars: pick(NginxDefault)},
		{Template: NginxUtils, Target: "configuration/nginx/conf.d/utils.conf", Vars: pick(NginxUtils)},
		{Template: PHPDockerfile, Target: "dockerfiles/php/Dockerfile"},
		{Template: PHPEntrypoint, Target: "dockerfiles/php/entrypoint.sh", Mode: 0o755},
		{Template: Compose, Target: "docker-compose.yml"},
		{Template: ProjectEnv, Target: ".env", Vars: pick(ProjectEnv)},
		{Template: ProjectEnv, Target: ".env.example", Vars: pick(ProjectEnv).Blank(), Description: "environment template"},
		{Template: Runner, Target: "run", Mode: 0o755},
		{Template: GitIgnore, Target: ".gitignore"},
		{Template: License, Target: "LICENSE"},
		{Template: Readme, Target: "README.md", Vars: pick(Readme)},
	}
}
