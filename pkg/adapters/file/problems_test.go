package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/unify/pkg/adapters/file"
	"github.com/aretw0/unify/pkg/domain"
	contract "github.com/aretw0/unify/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const problemsYAML = `
language: [a/0, b/0, c/1, d/3]
problems:
  - id: scenario
    description: shared variables across both sides
    left: d(c(1), 2, 1)
    right: d(3, 1, a)
    expect: unify
  - id: clash
    left: d(c(1), 3, 1)
    right: d(3, 1, a)
    expect: fail
  - id: free
    left: f(X)
    right: f(Y)
    language: [f/1]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProblems_Contract(t *testing.T) {
	path := writeFile(t, t.TempDir(), "problems.yaml", problemsYAML)

	loader, err := file.LoadProblems(path)
	require.NoError(t, err)

	contract.ProblemLoaderContractTest(t, loader, map[string]domain.Problem{
		"scenario": {Left: "d(c(1), 2, 1)", Right: "d(3, 1, a)", Expect: domain.ExpectUnify},
		"clash":    {Left: "d(c(1), 3, 1)", Right: "d(3, 1, a)", Expect: domain.ExpectFail},
		"free":     {Left: "f(X)", Right: "f(Y)"},
	})
}

func TestLoadProblems_LanguageInheritance(t *testing.T) {
	path := writeFile(t, t.TempDir(), "problems.yaml", problemsYAML)
	loader, err := file.LoadProblems(path)
	require.NoError(t, err)

	p, err := loader.GetProblem(context.Background(), "scenario")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/0", "b/0", "c/1", "d/3"}, p.Language)
	assert.Equal(t, "shared variables across both sides", p.Description)

	p, err = loader.GetProblem(context.Background(), "free")
	require.NoError(t, err)
	assert.Equal(t, []string{"f/1"}, p.Language)
}

func TestLoadProblems_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "problems:\n  - {id: p1, left: a, right: a}\n")
	writeFile(t, dir, "b.json", `{"problems": [{"id": "p2", "left": "a", "right": "b", "expect": "fail"}]}`)
	writeFile(t, dir, "notes.txt", "ignored")

	loader, err := file.LoadProblems(dir)
	require.NoError(t, err)

	ids, err := loader.ListProblems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
}

func TestDecodeProblemSet_Errors(t *testing.T) {
	tests := map[string]string{
		"missing id":      "problems:\n  - {left: a, right: a}\n",
		"bad expectation": "problems:\n  - {id: p, left: a, right: a, expect: maybe}\n",
		"missing side":    "problems:\n  - {id: p, left: a}\n",
		"unknown field":   "problems:\n  - {id: p, left: a, right: a, lft: b}\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := file.DecodeProblemSet([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadProblems_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "problems:\n  - {id: p1, left: a, right: a}\n")
	writeFile(t, dir, "b.yaml", "problems:\n  - {id: p1, left: b, right: b}\n")

	_, err := file.LoadProblems(dir)
	assert.Error(t, err)
}
