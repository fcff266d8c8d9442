package engine

import (
	"context"

	"purets/internal/allow"
	"purets/internal/diag"
	"purets/internal/expect"
	"purets/internal/jsdoc"
	"purets/internal/rules"
	"purets/internal/source"
	"purets/internal/symbols"
	"purets/internal/tsast"
	"purets/internal/visitor"
)

// CheckFile runs the full single-file pipeline and returns its diagnostics.
// It never returns a Go error: a read or parse failure collapses into a
// single synthetic diagnostic instead.
func CheckFile(ctx context.Context, fileSet *source.FileSet, path string) *diag.Bag {
	return checkFile(ctx, fileSet, path, nil, func(Stage, Status) {})
}

// checkFile loads path into fileSet and runs the pipeline. fileSet.Load
// mutates shared state, so checkFile is only safe to call from a single
// goroutine at a time; RunFiles loads every path up front before fanning
// out concurrent work via checkFileByID.
func checkFile(ctx context.Context, fileSet *source.FileSet, path string, projectCaps []allow.Capability, emit func(Stage, Status)) *diag.Bag {
	emit(StageRead, StatusWorking)
	fileID, err := fileSet.Load(path)
	if err != nil {
		emit(StageRead, StatusError)
		return readFailureBag(&ReadFailure{Path: path, Err: err})
	}
	emit(StageRead, StatusDone)

	return checkFileByID(ctx, fileSet, fileID, projectCaps, emit)
}

// checkFileByID runs the parse-through-reconcile pipeline for a file
// already loaded into fileSet. It touches no FileSet-mutating method, so
// it is safe to call concurrently across files sharing one FileSet.
// projectCaps, when non-empty, grants those capabilities file-wide before
// any JSDoc directive is consulted, backing purets.toml's [project] allow
// table.
func checkFileByID(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, projectCaps []allow.Capability, emit func(Stage, Status)) *diag.Bag {
	file := fileSet.Get(fileID)
	path := file.Path

	emit(StageParse, StatusWorking)
	tree, err := tsast.Parse(ctx, path, file.Content, fileID)
	if err != nil {
		emit(StageParse, StatusError)
		return parseFailureBag(fileID, &ParseFailure{Path: path, Err: err})
	}
	defer tree.Close()
	emit(StageParse, StatusDone)

	role := source.ClassifyRole(path)
	docs := jsdoc.Build(tree, file.Content)
	allowIdx := allow.NewIndex(docs)
	if len(projectCaps) > 0 {
		allowIdx = allowIdx.WithProjectGrants(projectCaps)
	}
	symTracker := symbols.Build(tree, fileID)

	vctx := &visitor.Context{
		Path:    path,
		Role:    role,
		Content: file.Content,
		Tree:    tree,
		Docs:    docs,
		Allow:   allowIdx,
		Symbols: symTracker,
	}

	emit(StageVisit, StatusWorking)
	bag := visitor.New(rules.All).Run(vctx)
	if tree.HasError() {
		d := diag.NewError(diag.RuleParseError, tree.Root().Span(), "source contains a syntax error the parser could not recover from")
		bag.Add(&d)
	}
	emit(StageVisit, StatusDone)

	emit(StageReconcile, StatusWorking)
	markers := expect.Scan(tree, fileSet)
	expect.Reconcile(bag, markers, fileSet)
	bag.Sort()
	emit(StageReconcile, StatusDone)

	emit(StageDone, StatusDone)
	return bag
}

func readFailureBag(failure *ReadFailure) *diag.Bag {
	bag := diag.NewBag(1)
	d := diag.NewError(diag.RuleReadError, source.Span{}, failure.Error())
	bag.Add(&d)
	return bag
}

func parseFailureBag(fileID source.FileID, failure *ParseFailure) *diag.Bag {
	bag := diag.NewBag(1)
	d := diag.NewError(diag.RuleParseError, source.Span{File: fileID}, failure.Error())
	bag.Add(&d)
	return bag
}
