package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/unify/pkg/adapters/file"
	loamAdapter "github.com/aretw0/unify/pkg/adapters/loam"
	"github.com/aretw0/unify/pkg/ports"
)

// Problem sources.
const (
	SourceAuto = "auto"
	SourceFile = "file"
	SourceLoam = "loam"
)

// LoadProblems opens the problems at path.
//
// The file source reads a YAML or JSON problem set, or every such file of a
// directory. The loam source reads a directory of markdown documents with
// frontmatter. Auto picks loam for a directory holding markdown files.
func LoadProblems(path, source string) (ports.ProblemLoader, error) {
	if path == "" {
		path = "."
	}

	switch strings.ToLower(source) {
	case "", SourceAuto:
		if hasMarkdown(path) {
			return openLoam(path)
		}
		return file.LoadProblems(path)
	case SourceFile:
		return file.LoadProblems(path)
	case SourceLoam:
		return openLoam(path)
	}
	return nil, fmt.Errorf("unknown source %q (want auto, file or loam)", source)
}

func openLoam(path string) (*loamAdapter.Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// ReadOnly keeps loam from creating its sandbox in the problem directory.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return loamAdapter.New(loam.NewTypedRepository[loamAdapter.ProblemMetadata](repo)), nil
}

func hasMarkdown(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	matches, _ := filepath.Glob(filepath.Join(path, "*.md"))
	return len(matches) > 0
}

// WatchProblems emits the ID of every problem document that changes under path.
// For a single file only changes to that file are reported.
func WatchProblems(ctx context.Context, path string) (<-chan string, error) {
	dir, only := path, ""
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
		base := filepath.Base(path)
		only = strings.TrimSuffix(base, filepath.Ext(base))
	}

	watcher, err := openLoam(dir)
	if err != nil {
		return nil, err
	}
	events, err := watcher.Watch(ctx)
	if err != nil {
		return nil, err
	}
	if only == "" {
		return events, nil
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for id := range events {
			if id != only {
				continue
			}
			select {
			case out <- id:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
