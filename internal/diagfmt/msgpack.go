package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"purets/internal/diag"
	"purets/internal/source"
)

// Msgpack formats diagnostics as msgpack-encoded bytes, reusing the same
// JSON-ready structure JSON() builds so every machine-readable exporter
// agrees on shape.
func Msgpack(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(bag, fs, opts)
	return msgpack.NewEncoder(w).Encode(output)
}
