package loader

import (
	"os"
	"strings"
)

// EnvLoader collects prefixed environment variables as raw strings keyed by
// dotted setting path.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "CSVSCOPE_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix.
// The prefix should include the trailing underscore (e.g., "CSVSCOPE_").
func NewEnvLoader(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// WithEnviron replaces the environment source, for tests.
func (l *EnvLoader) WithEnviron(environ func() []string) *EnvLoader {
	l.environ = environ
	return l
}

// Load returns raw values keyed by setting path. Explicitly mapped
// variables use their mapping; other prefixed variables are converted with
// PathFor.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() map[string]string {
	values := make(map[string]string)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if path, mapped := l.mapping[name]; mapped {
			values[path] = value
			continue
		}
		values[l.PathFor(name)] = value
	}

	return values
}

// PathFor converts CSVSCOPE_LAYOUT_COLUMN_WIDTH to layout.column_width: the
// first word is the section and the rest is the snake_case setting name.
func (l *EnvLoader) PathFor(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + setting
}
