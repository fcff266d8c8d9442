package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// discoverFiles expands args (files or directories) into a flat,
// deduplicated list of paths in argument order; a directory contributes
// its .ts/.tsx files (excluding .d.ts) in filepath.Walk's lexical order,
// while a file argument is kept as given. Directory expansion is a plain
// recursive walk, not gitignore-aware and not workspace-aware — just
// enough to drive the engine over a tree of sources.
func discoverFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		walkErr := filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if fi.Name() == "node_modules" {
					return filepath.SkipDir
				}
				return nil
			}
			if isTypeScriptSource(path) {
				add(path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("%s: %w", arg, walkErr)
		}
	}

	return files, nil
}

func isTypeScriptSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".ts" && ext != ".tsx" {
		return false
	}
	return !strings.HasSuffix(path, ".d.ts")
}
