package diagfmt

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"purets/internal/diag"
	"purets/internal/source"
)

func TestMsgpackRoundTrips(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("class User {}\n")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(10)
	d := diag.NewError(diag.RuleNoClasses, source.Span{File: fileID, Start: 0, End: 5}, "class declarations are forbidden")
	bag.Add(&d)

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename}
	if err := Msgpack(&buf, bag, fs, opts); err != nil {
		t.Fatalf("Msgpack() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid msgpack output: %v", err)
	}

	if output.Count != 1 {
		t.Fatalf("expected count=1, got %d", output.Count)
	}
	if output.Diagnostics[0].RuleID != "no-classes" {
		t.Fatalf("expected rule_id=no-classes, got %s", output.Diagnostics[0].RuleID)
	}
	if output.Diagnostics[0].Location.File != "test.ts" {
		t.Fatalf("expected file=test.ts, got %s", output.Diagnostics[0].Location.File)
	}
}
