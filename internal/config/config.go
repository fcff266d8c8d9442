// Package config loads the optional purets.toml project manifest: a
// static table of rule enablement and severity overrides, plus
// project-wide capability grants.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"purets/internal/allow"
	"purets/internal/diag"
	"purets/internal/project"
)

// netDependencies lists package.json dependencies whose mere presence
// implies a package talks to the network throughout, so requiring an
// @allow net tag on every call site would be pure noise.
var netDependencies = []string{"axios", "node-fetch", "isomorphic-fetch", "got", "undici", "express", "fastify", "koa"}

// RuleOverride customizes one rule's behavior for a project.
type RuleOverride struct {
	Enabled  *bool  `toml:"enabled"`
	Severity string `toml:"severity"`
}

// ProjectSettings holds project-wide defaults that apply to every file,
// rather than to one rule.
type ProjectSettings struct {
	// Allow lists capabilities granted in every file of the project,
	// equivalent to an implicit file-scoped @allow tag on every source
	// file. Intended for a workspace package that is net-heavy or
	// DOM-heavy throughout (a frontend package, an HTTP client package).
	Allow []string `toml:"allow"`
}

// Config is the decoded contents of purets.toml.
type Config struct {
	Rules   map[string]RuleOverride `toml:"rules"`
	Project ProjectSettings         `toml:"project"`
}

// Default returns an empty configuration: every catalog rule enabled at
// its own default severity, no overrides, no project-wide grants.
func Default() *Config {
	return &Config{Rules: map[string]RuleOverride{}}
}

// ProjectCapabilities parses Config.Project.Allow into the closed
// Capability set, silently dropping unrecognized names the same way a
// JSDoc @allow tag would.
func (c *Config) ProjectCapabilities() []allow.Capability {
	if c == nil {
		return nil
	}
	seen := make(map[allow.Capability]bool, len(c.Project.Allow))
	caps := make([]allow.Capability, 0, len(c.Project.Allow))
	for _, name := range c.Project.Allow {
		parsed := allow.Capability(strings.ToLower(strings.TrimSpace(name)))
		if allow.IsKnown(parsed) && !seen[parsed] {
			seen[parsed] = true
			caps = append(caps, parsed)
		}
	}
	return caps
}

// InferFromPackageJSON grants net capability project-wide when pkg
// declares a direct or dev dependency on a known HTTP client or server
// framework. This only ever adds to Project.Allow; it never removes an
// explicit entry and never grants a capability the dependency list
// doesn't support evidence for.
func (c *Config) InferFromPackageJSON(pkg project.PackageJSON) {
	if c == nil {
		return
	}
	for _, name := range netDependencies {
		if pkg.HasDependency(name) {
			c.Project.Allow = append(c.Project.Allow, string(allow.CapNet))
			return
		}
	}
}

// Load decodes a purets.toml file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleOverride{}
	}
	return &cfg, nil
}

// Enabled reports whether id is enabled under this config. A rule absent
// from the table, or present with no explicit enabled = false, is
// enabled by default.
func (c *Config) Enabled(id diag.RuleID) bool {
	if c == nil {
		return true
	}
	override, ok := c.Rules[string(id)]
	if !ok || override.Enabled == nil {
		return true
	}
	return *override.Enabled
}

// SeverityOverride returns the configured severity for id, if any.
func (c *Config) SeverityOverride(id diag.RuleID) (diag.Severity, bool) {
	if c == nil {
		return 0, false
	}
	override, ok := c.Rules[string(id)]
	if !ok || override.Severity == "" {
		return 0, false
	}
	sev, ok := parseSeverity(override.Severity)
	return sev, ok
}

func parseSeverity(s string) (diag.Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return diag.SevError, true
	case "warning", "warn":
		return diag.SevWarning, true
	case "info":
		return diag.SevInfo, true
	default:
		return 0, false
	}
}

// Apply filters disabled rules out of bag and rewrites the severity of
// any remaining diagnostic whose rule has a severity override. Synthetic
// rule ids (parse-error, internal-error, read-error,
// unused-expect-error) are never filtered or overridden: they report
// infrastructure failures the config table has no say over.
func (c *Config) Apply(bag *diag.Bag) {
	if c == nil {
		return
	}
	bag.Filter(func(d *diag.Diagnostic) bool {
		if isSynthetic(d.RuleID) {
			return true
		}
		return c.Enabled(d.RuleID)
	})
	bag.Transform(func(d *diag.Diagnostic) *diag.Diagnostic {
		if isSynthetic(d.RuleID) {
			return d
		}
		if sev, ok := c.SeverityOverride(d.RuleID); ok {
			d.Severity = sev
		}
		return d
	})
}

func isSynthetic(id diag.RuleID) bool {
	switch id {
	case diag.RuleParseError, diag.RuleInternalError, diag.RuleReadError, diag.RuleUnusedExpectError:
		return true
	default:
		return false
	}
}
