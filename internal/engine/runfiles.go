package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"purets/internal/allow"
	"purets/internal/diag"
	"purets/internal/source"
)

// FileResult pairs a checked file's path with its diagnostics.
type FileResult struct {
	Path string
	Bag  *diag.Bag
}

// RunFiles checks every path concurrently, one tree-sitter parse per
// goroutine, and returns results in the same order as paths. events, if
// non-nil, receives a progress Event per stage transition and is closed
// once every file has finished so a consumer like the progress UI can
// tell the run apart from a stall. projectCaps, if non-empty, is granted
// file-wide across every path, backing purets.toml's [project] allow
// table.
func RunFiles(ctx context.Context, fileSet *source.FileSet, paths []string, projectCaps []allow.Capability, events chan<- Event) []FileResult {
	results := make([]FileResult, len(paths))

	if events != nil {
		defer close(events)
	}

	emitFor := func(path string) func(Stage, Status) {
		if events == nil {
			return func(Stage, Status) {}
		}
		return func(stage Stage, status Status) {
			events <- Event{File: path, Stage: stage, Status: status}
		}
	}

	// Load runs single-threaded: fileSet.Load appends to shared state that
	// is not safe for concurrent writers. Parsing and rule evaluation hold
	// no such state and fan out freely once every file is loaded.
	ids := make([]source.FileID, len(paths))
	failed := make([]bool, len(paths))
	for i, path := range paths {
		emit := emitFor(path)
		emit(StageRead, StatusWorking)
		id, err := fileSet.Load(path)
		if err != nil {
			emit(StageRead, StatusError)
			results[i] = FileResult{Path: path, Bag: readFailureBag(&ReadFailure{Path: path, Err: err})}
			failed[i] = true
			continue
		}
		emit(StageRead, StatusDone)
		ids[i] = id
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		if failed[i] {
			continue
		}
		i, path, id := i, path, ids[i]
		g.Go(func() error {
			results[i] = FileResult{
				Path: path,
				Bag:  checkFileByID(gctx, fileSet, id, projectCaps, emitFor(path)),
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
