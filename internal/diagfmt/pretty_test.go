package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"purets/internal/diag"
	"purets/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const x: unknown = undefined\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.ts", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.NewError(diag.RuleNoTypeAssertion, source.Span{File: fileID, Start: 8, End: 15}, "type assertion is forbidden")
	bag.Add(&d)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.ts"},
		{"Relative path", PathModeRelative, "src/test.ts"},
		{"Basename only", PathModeBasename, "test.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{Color: false, Context: 1, PathMode: tt.mode}
			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR") {
				t.Error("expected ERROR in output")
			}
			if !strings.Contains(output, "no-type-assertion") {
				t.Error("expected rule id in output")
			}
			if !strings.Contains(output, "type assertion is forbidden") {
				t.Error("expected message in output")
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"short path - as is", "test.ts", "test.ts"},
		{"long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.ts", "file.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			content := []byte("let x = 42\n")
			fileID := fs.AddVirtual(tt.path, content)

			bag := diag.NewBag(10)
			d := diag.NewWarning(diag.RuleLetRequiresType, source.Span{File: fileID, Start: 4, End: 5}, "test warning")
			bag.Add(&d)

			var buf bytes.Buffer
			opts := PrettyOpts{Color: false, Context: 0, PathMode: PathModeAuto}
			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettySuggestion(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = 42\n")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(4)
	d := diag.NewWarning(diag.RuleLetRequiresType, source.Span{File: fileID, Start: 4, End: 5}, "let binding requires a type").
		WithSuggestion("let x: number = 42")
	bag.Add(&d)

	var buf bytes.Buffer
	opts := PrettyOpts{Color: false, Context: 0, PathMode: PathModeBasename, ShowSuggestion: true}
	Pretty(&buf, bag, fs, opts)
	output := buf.String()

	if !strings.Contains(output, "suggestion: let x: number = 42") {
		t.Fatalf("expected suggestion line, got:\n%s", output)
	}
}

func TestPrettySuggestionHiddenByDefault(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = 42\n")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(4)
	d := diag.NewWarning(diag.RuleLetRequiresType, source.Span{File: fileID, Start: 4, End: 5}, "let binding requires a type").
		WithSuggestion("let x: number = 42")
	bag.Add(&d)

	var buf bytes.Buffer
	opts := PrettyOpts{Color: false, Context: 0, PathMode: PathModeBasename}
	Pretty(&buf, bag, fs, opts)
	output := buf.String()

	if strings.Contains(output, "suggestion") {
		t.Fatalf("did not expect suggestion line when ShowSuggestion is false, got:\n%s", output)
	}
}
