package config

import (
	"os"
	"path/filepath"
	"testing"

	"purets/internal/diag"
	"purets/internal/project"
	"purets/internal/source"
)

func TestLoadParsesRuleOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "purets.toml")
	content := `
[rules.no-classes]
enabled = false

[rules.no-enums]
severity = "warning"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Enabled(diag.RuleNoClasses) {
		t.Fatalf("expected no-classes to be disabled")
	}
	if !cfg.Enabled(diag.RuleNoEnums) {
		t.Fatalf("expected no-enums to remain enabled")
	}
	sev, ok := cfg.SeverityOverride(diag.RuleNoEnums)
	if !ok || sev != diag.SevWarning {
		t.Fatalf("expected no-enums severity override to be warning, got %v %v", sev, ok)
	}
}

func TestApplyFiltersDisabledRulesAndRewritesSeverity(t *testing.T) {
	cfg := Default()
	cfg.Rules["no-classes"] = RuleOverride{Enabled: boolPtr(false)}
	cfg.Rules["no-enums"] = RuleOverride{Severity: "info"}

	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual("test.ts", []byte("class X {}\nenum Y {}\n"))

	bag := diag.NewBag(10)
	d1 := diag.NewError(diag.RuleNoClasses, source.Span{File: fileID, Start: 0, End: 5}, "no classes")
	d2 := diag.NewError(diag.RuleNoEnums, source.Span{File: fileID, Start: 10, End: 14}, "no enums")
	bag.Add(&d1)
	bag.Add(&d2)

	cfg.Apply(bag)

	if bag.Len() != 1 {
		t.Fatalf("expected the disabled rule's diagnostic to be filtered, got %d", bag.Len())
	}
	if bag.Items()[0].Severity != diag.SevInfo {
		t.Fatalf("expected severity override to info, got %v", bag.Items()[0].Severity)
	}
}

func TestApplyNeverFiltersSyntheticDiagnostics(t *testing.T) {
	cfg := Default()
	cfg.Rules["read-error"] = RuleOverride{Enabled: boolPtr(false)}

	bag := diag.NewBag(10)
	d := diag.NewError(diag.RuleReadError, source.Span{}, "could not read file")
	bag.Add(&d)

	cfg.Apply(bag)

	if bag.Len() != 1 {
		t.Fatalf("expected synthetic diagnostic to survive config filtering, got %d", bag.Len())
	}
}

func TestProjectCapabilitiesParsesAndDropsUnknownNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "purets.toml")
	content := `
[project]
allow = ["net", "DOM", "bogus"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	caps := cfg.ProjectCapabilities()
	if len(caps) != 2 {
		t.Fatalf("expected 2 recognized capabilities, got %v", caps)
	}
}

func TestInferFromPackageJSONGrantsNetForKnownHTTPClients(t *testing.T) {
	cfg := Default()
	pkg, err := project.ParsePackageJSON([]byte(`{"dependencies":{"axios":"^1.0.0"}}`))
	if err != nil {
		t.Fatalf("ParsePackageJSON: %v", err)
	}

	cfg.InferFromPackageJSON(pkg)

	found := false
	for _, cap := range cfg.ProjectCapabilities() {
		if cap == "net" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected net to be inferred from an axios dependency, got %v", cfg.Project.Allow)
	}
}

func TestInferFromPackageJSONLeavesUnrelatedDependenciesAlone(t *testing.T) {
	cfg := Default()
	pkg, err := project.ParsePackageJSON([]byte(`{"dependencies":{"lodash":"^4.0.0"}}`))
	if err != nil {
		t.Fatalf("ParsePackageJSON: %v", err)
	}

	cfg.InferFromPackageJSON(pkg)

	if len(cfg.ProjectCapabilities()) != 0 {
		t.Fatalf("expected no inferred capabilities, got %v", cfg.Project.Allow)
	}
}

func boolPtr(b bool) *bool { return &b }
