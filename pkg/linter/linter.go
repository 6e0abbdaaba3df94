package linter

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/reporting"
)

// Rule inspects nodes and reports issues through a Context.
type Rule interface {
	Name() string
	DefaultLevel() reporting.Level
	Check(ctx *Context, node ast.Node)
}

// RuleSettings overrides how a single rule runs.
type RuleSettings struct {
	Enabled bool
	// Level replaces the rule's default level when set.
	Level *reporting.Level
}

// Settings controls which rules run and which issues are kept.
type Settings struct {
	// Off disables linting entirely.
	Off bool
	// Level is the minimum level an issue needs to be reported.
	Level reporting.Level
	// DefaultRules enables every registered rule that has no entry in
	// Rules.
	DefaultRules bool
	Rules        map[string]RuleSettings
}

// DefaultSettings enables every rule at its default level.
func DefaultSettings() Settings {
	return Settings{
		Level:        reporting.Help,
		DefaultRules: true,
	}
}

type activeRule struct {
	rule  Rule
	level reporting.Level
}

// Linter runs a set of rules over parsed programs. It is safe to share
// between goroutines once all rules are added.
type Linter struct {
	settings Settings
	interner *interner.Interner
	rules    []Rule
}

// New creates a linter with no rules.
func New(settings Settings, in *interner.Interner) *Linter {
	return &Linter{settings: settings, interner: in}
}

// AddRule registers rule. Rule names are unique.
func (l *Linter) AddRule(rule Rule) error {
	if slices.ContainsFunc(l.rules, func(r Rule) bool { return r.Name() == rule.Name() }) {
		return errors.Errorf("rule %q is already registered", rule.Name())
	}
	l.rules = append(l.rules, rule)
	return nil
}

// Rules returns the registered rules in registration order.
func (l *Linter) Rules() []Rule {
	return slices.Clone(l.rules)
}

// Validate checks that every configured rule is registered.
func (l *Linter) Validate() error {
	for name := range l.settings.Rules {
		if !slices.ContainsFunc(l.rules, func(r Rule) bool { return r.Name() == name }) {
			return errors.Errorf("unknown rule %q", name)
		}
	}
	return nil
}

func (l *Linter) active() []activeRule {
	if l.settings.Off {
		return nil
	}
	var active []activeRule
	for _, rule := range l.rules {
		level := rule.DefaultLevel()
		settings, configured := l.settings.Rules[rule.Name()]
		switch {
		case configured && !settings.Enabled:
			continue
		case !configured && !l.settings.DefaultRules:
			continue
		case configured && settings.Level != nil:
			level = *settings.Level
		}
		if level < l.settings.Level {
			continue
		}
		active = append(active, activeRule{rule: rule, level: level})
	}
	return active
}

// Lint runs every active rule over program and returns the issues found.
func (l *Linter) Lint(program *ast.Program, source string) reporting.IssueCollection {
	var issues reporting.IssueCollection
	active := l.active()
	if len(active) == 0 {
		return issues
	}

	contexts := make([]*Context, len(active))
	for i, a := range active {
		contexts[i] = &Context{
			interner: l.interner,
			name:     program.Name,
			source:   source,
			rule:     a.rule,
			level:    a.level,
			issues:   &issues,
		}
	}

	ast.Walk(program, func(n ast.Node) bool {
		for i, a := range active {
			a.rule.Check(contexts[i], n)
		}
		return true
	})
	return issues
}

// DefaultRules returns every rule fennec ships with.
func DefaultRules() []Rule {
	return []Rule{
		NoErrorControlOperator{},
		RequireIdentityComparison{},
		RedundantWriteVisibility{},
	}
}

// NewDefault creates a linter with every default rule registered.
func NewDefault(settings Settings, in *interner.Interner) (*Linter, error) {
	l := New(settings, in)
	for _, rule := range DefaultRules() {
		if err := l.AddRule(rule); err != nil {
			return nil, err
		}
	}
	if err := l.Validate(); err != nil {
		return nil, errors.Wrap(err, "linter settings")
	}
	return l, nil
}
