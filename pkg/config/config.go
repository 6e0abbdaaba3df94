package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/strcase"

	"github.com/carthage-software/fennec/pkg/formatter"
	"github.com/carthage-software/fennec/pkg/linter"
	"github.com/carthage-software/fennec/pkg/reporting"
)

// FileName is the name of the project configuration file.
const FileName = "fennec.toml"

// Config represents a fennec.toml project configuration file.
type Config struct {
	// Root is the directory relative paths are resolved against: the
	// directory holding fennec.toml, or the working directory.
	Root string `toml:"-"`

	Source SourceConfig       `toml:"source"`
	Format formatter.Settings `toml:"format"`
	Linter LinterConfig       `toml:"linter"`
}

// SourceConfig selects the files fennec works on.
type SourceConfig struct {
	// Paths are the project's own sources. Defaults to the root.
	Paths []string `toml:"paths"`
	// Includes are third-party sources. They are linted only when
	// linter.external is set and never formatted.
	Includes []string `toml:"includes"`
	// Excludes are glob patterns matched against paths relative to the
	// root, and against base names. They only apply to Paths.
	Excludes []string `toml:"excludes"`
	// Extensions are the file extensions considered source files.
	Extensions []string `toml:"extensions"`
}

// LinterConfig is the [linter] section.
type LinterConfig struct {
	// Level is the minimum level reported, or "off".
	Level        string       `toml:"level"`
	External     bool         `toml:"external"`
	DefaultRules bool         `toml:"default_rules"`
	Rules        []RuleConfig `toml:"rules"`
}

// RuleConfig is one [[linter.rules]] entry.
type RuleConfig struct {
	Name string `toml:"name"`
	// Level overrides the rule's default level, or disables it with
	// "off". Empty keeps the default.
	Level string `toml:"level"`
}

// Default returns the configuration used without a fennec.toml.
func Default(root string) *Config {
	return &Config{
		Root: root,
		Source: SourceConfig{
			Extensions: []string{"php"},
		},
		Format: formatter.DefaultSettings(),
		Linter: LinterConfig{
			Level:        reporting.Help.String(),
			DefaultRules: true,
		},
	}
}

// Load reads the configuration file at path. Settings it leaves out keep
// their defaults.
func Load(path string) (*Config, error) {
	config := Default(filepath.Dir(path))
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing %s: unknown key %s", path, undecoded[0])
	}
	config.normalize()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Find searches for fennec.toml starting from dir and walking up to
// parent directories, stopping at a .git boundary. Without a file it
// returns the default configuration rooted at dir.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	start := dir
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		// Stop at .git boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", Default(start), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", Default(start), nil
		}
		dir = parent
	}
}

// normalize accepts kebab-case and camel-case spellings of names.
func (c *Config) normalize() {
	f := &c.Format
	f.EndOfLine = formatter.EndOfLine(strcase.ToSnake(string(f.EndOfLine)))
	f.ArrayStyle = formatter.ArrayStyle(strcase.ToSnake(string(f.ArrayStyle)))
	f.ListStyle = formatter.ArrayStyle(strcase.ToSnake(string(f.ListStyle)))
	for _, style := range []*formatter.BraceStyle{
		&f.ClassLikeBraceStyle,
		&f.FunctionBraceStyle,
		&f.MethodBraceStyle,
		&f.ClosureBraceStyle,
		&f.ControlBraceStyle,
	} {
		*style = formatter.BraceStyle(strcase.ToSnake(string(*style)))
	}
	f.KeywordCase = formatter.CasingStyle(strcase.ToSnake(string(f.KeywordCase)))
	f.NullTypeHint = formatter.NullTypeHint(strcase.ToSnake(string(f.NullTypeHint)))
	f.AttrParens = formatter.AttributeParens(strcase.ToSnake(string(f.AttrParens)))

	for i := range c.Linter.Rules {
		c.Linter.Rules[i].Name = strcase.ToKebab(c.Linter.Rules[i].Name)
	}
	for i, ext := range c.Source.Extensions {
		c.Source.Extensions[i] = strings.TrimPrefix(ext, ".")
	}
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if err := c.Format.Validate(); err != nil {
		return fmt.Errorf("[format] %w", err)
	}
	if _, err := c.LinterSettings(); err != nil {
		return fmt.Errorf("[linter] %w", err)
	}
	return nil
}

// LinterSettings converts the [linter] section into linter settings.
func (c *Config) LinterSettings() (linter.Settings, error) {
	settings := linter.Settings{DefaultRules: c.Linter.DefaultRules}
	if strings.EqualFold(c.Linter.Level, "off") {
		settings.Off = true
	} else if c.Linter.Level != "" {
		level, err := reporting.ParseLevel(c.Linter.Level)
		if err != nil {
			return settings, fmt.Errorf("level: %w", err)
		}
		settings.Level = level
	}

	for _, rule := range c.Linter.Rules {
		if rule.Name == "" {
			return settings, fmt.Errorf("rules: missing name")
		}
		rs := linter.RuleSettings{Enabled: true}
		switch {
		case strings.EqualFold(rule.Level, "off"):
			rs.Enabled = false
		case rule.Level != "":
			level, err := reporting.ParseLevel(rule.Level)
			if err != nil {
				return settings, fmt.Errorf("rule %s: %w", rule.Name, err)
			}
			rs.Level = &level
		}
		if settings.Rules == nil {
			settings.Rules = map[string]linter.RuleSettings{}
		}
		settings.Rules[rule.Name] = rs
	}
	return settings, nil
}

// SourcePaths returns the project's own source paths, made absolute.
func (c *Config) SourcePaths() []string {
	if len(c.Source.Paths) == 0 {
		return []string{c.Root}
	}
	return c.resolve(c.Source.Paths)
}

// IncludePaths returns the third-party source paths, made absolute.
func (c *Config) IncludePaths() []string {
	return c.resolve(c.Source.Includes)
}

func (c *Config) resolve(paths []string) []string {
	resolved := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			resolved[i] = p
		} else {
			resolved[i] = filepath.Join(c.Root, p)
		}
	}
	return resolved
}
