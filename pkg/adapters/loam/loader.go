package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts a Loam repository to the ProblemLoader interface.
// Every document whose frontmatter has a left or right side is a problem; other
// documents (a README, notes) are ignored.
type Loader struct {
	Repo *loam.TypedRepository[ProblemMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ProblemMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// GetProblem loads a problem by its normalized ID.
func (l *Loader) GetProblem(ctx context.Context, id string) (*domain.Problem, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}

	docID, ok := index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProblemNotFound, id)
	}

	doc, err := l.Repo.Get(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	return decodeProblem(id, doc.Data, doc.Content)
}

// ListProblems returns the normalized IDs of all problem documents, sorted.
func (l *Loader) ListProblems(ctx context.Context) ([]string, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// index maps normalized problem IDs to Loam document IDs.
func (l *Loader) index(ctx context.Context) (map[string]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	index := make(map[string]string, len(docs))
	for _, doc := range docs {
		if !doc.Data.isProblem() {
			continue
		}

		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existing, ok := index[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		index[id] = doc.ID
	}
	return index, nil
}

// decodeProblem normalizes raw frontmatter with weak typing: numeric sides become
// strings and a single language string becomes a one-element list.
func decodeProblem(id string, meta ProblemMetadata, content string) (*domain.Problem, error) {
	raw := map[string]any{
		"id":          id,
		"left":        meta.Left,
		"right":       meta.Right,
		"expect":      meta.Expect,
		"description": meta.Description,
		"language":    meta.Language,
	}

	var p domain.Problem
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("problem %s: invalid frontmatter: %w", id, err)
	}

	if p.Description == "" {
		p.Description = strings.TrimSpace(content)
	}
	if !p.Expect.Valid() {
		return nil, fmt.Errorf("problem %s: unknown expectation %q", id, p.Expect)
	}
	if p.Left == "" || p.Right == "" {
		return nil, fmt.Errorf("problem %s: both left and right are required", id)
	}
	return &p, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch signals the IDs of documents that changed on disk.
// The channel closes when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
