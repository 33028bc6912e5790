package file

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/unify/pkg/adapters/memory"
	"github.com/aretw0/unify/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ProblemSet is the on-disk shape of a problem file.
// Problems without their own language inherit the set's.
//
//	language: [a/0, b/0, c/1, d/3]
//	problems:
//	  - id: scenario
//	    left: d(c(1), 2, 1)
//	    right: d(3, 1, a)
//	    expect: unify
type ProblemSet struct {
	Language []string         `yaml:"language" json:"language,omitempty"`
	Problems []domain.Problem `yaml:"problems" json:"problems"`
}

// DecodeProblemSet parses a YAML (or JSON) problem set and checks it.
func DecodeProblemSet(data []byte) (*ProblemSet, error) {
	var set ProblemSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("decode problem set: %w", err)
	}

	for i := range set.Problems {
		p := &set.Problems[i]
		if p.ID == "" {
			return nil, fmt.Errorf("problem %d: missing id", i)
		}
		if !p.Expect.Valid() {
			return nil, fmt.Errorf("problem %s: unknown expectation %q", p.ID, p.Expect)
		}
		if strings.TrimSpace(p.Left) == "" || strings.TrimSpace(p.Right) == "" {
			return nil, fmt.Errorf("problem %s: both left and right are required", p.ID)
		}
		if len(p.Language) == 0 && len(set.Language) > 0 {
			p.Language = append([]string(nil), set.Language...)
		}
	}

	return &set, nil
}

// LoadProblems reads a problem file, or every *.yaml, *.yml and *.json file of a
// directory, into a loader. IDs must be unique across all files.
func LoadProblems(path string) (*memory.Loader, error) {
	files, err := problemFiles(path)
	if err != nil {
		return nil, err
	}

	var all []domain.Problem
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read problem file: %w", err)
		}
		set, err := DecodeProblemSet(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		all = append(all, set.Problems...)
	}

	loader, err := memory.NewLoader(all...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return loader, nil
}

func problemFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no problem files in %s", path)
	}
	return files, nil
}
