package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"purets/internal/diag"
	"purets/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("export function f(x) {\n  return x\n}\n")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(10)
	d := diag.NewError(
		diag.RuleParamMissingType,
		source.Span{File: fileID, Start: 21, End: 22},
		"parameter x is missing a type annotation",
	)
	bag.Add(&d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
	}

	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\noutput: %s", err, buf.String())
	}

	if output.Count != 1 {
		t.Errorf("expected count=1, got %d", output.Count)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	got := output.Diagnostics[0]
	if got.Severity != "ERROR" {
		t.Errorf("expected severity=ERROR, got %s", got.Severity)
	}
	if got.RuleID != "param-missing-type" {
		t.Errorf("expected rule_id=param-missing-type, got %s", got.RuleID)
	}
	if got.Location.File != "test.ts" {
		t.Errorf("expected file=test.ts, got %s", got.Location.File)
	}
	if got.Location.StartByte != 21 {
		t.Errorf("expected start_byte=21, got %d", got.Location.StartByte)
	}
	if got.Location.StartLine != 1 {
		t.Errorf("expected start_line=1, got %d", got.Location.StartLine)
	}
}

func TestJSONWithSuggestion(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = 42")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(10)
	d := diag.NewWarning(
		diag.RuleLetRequiresType,
		source.Span{File: fileID, Start: 4, End: 5},
		"let binding requires a type annotation",
	).WithSuggestion("annotate as: let x: number = 42")
	bag.Add(&d)

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	got := output.Diagnostics[0]
	if got.Suggestion != "annotate as: let x: number = 42" {
		t.Errorf("unexpected suggestion: %s", got.Suggestion)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = 42")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(10)
	d := diag.New(diag.SevInfo, diag.RuleNoEnums, source.Span{File: fileID, Start: 4, End: 5}, "info message")
	bag.Add(&d)

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: false, PathMode: PathModeBasename}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	got := output.Diagnostics[0]
	if got.Location.StartLine != 0 {
		t.Errorf("expected start_line to be omitted (0), got %d", got.Location.StartLine)
	}
	if got.Location.StartByte != 4 {
		t.Errorf("expected start_byte=4, got %d", got.Location.StartByte)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("test content")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(10)
	for i := range 5 {
		d := diag.NewError(diag.RuleNoClasses, source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)}, "error message")
		bag.Add(&d)
	}

	var buf bytes.Buffer
	opts := JSONOpts{PathMode: PathModeBasename, Max: 3}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if output.Count != 3 {
		t.Errorf("expected count=3 (limited), got %d", output.Count)
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")

	content := []byte("test")
	fileID := fs.AddVirtual("/home/user/project/src/main.ts", content)

	bag := diag.NewBag(10)
	d := diag.NewError(diag.RuleNoClasses, source.Span{File: fileID, Start: 0, End: 1}, "error")
	bag.Add(&d)

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.ts"},
		{"Relative", PathModeRelative, "src/main.ts"},
		{"Basename", PathModeBasename, "main.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := JSONOpts{PathMode: tt.pathMode}
			if err := JSON(&buf, bag, fs, opts); err != nil {
				t.Fatalf("JSON() error: %v", err)
			}

			var output DiagnosticsOutput
			if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
				t.Fatalf("invalid JSON output: %v", err)
			}

			if output.Diagnostics[0].Location.File != tt.expected {
				t.Errorf("expected file=%s, got %s", tt.expected, output.Diagnostics[0].Location.File)
			}
		})
	}
}
