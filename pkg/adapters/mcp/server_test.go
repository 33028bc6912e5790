package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/unify/pkg/adapters/memory"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	loader, err := memory.NewLoader(
		domain.Problem{ID: "scenario", Left: "d(c(X), Y, a)", Right: "d(Z, a, Y)", Expect: domain.ExpectUnify},
		domain.Problem{ID: "clash", Left: "c(a)", Right: "c(b)", Expect: domain.ExpectFail},
	)
	require.NoError(t, err)

	store := memory.NewStore()
	return NewServer(runner.NewRunner(runner.WithStore(store), runner.WithSanitizer()), loader, nil), store
}

func TestHandleUnify(t *testing.T) {
	s, store := newTestServer(t)

	resp, err := s.handleUnify(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"left":     "f(X, b)",
		"right":    "f(a, Y)",
		"language": []interface{}{"a/0", "b/0", "f/2"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Solution)
	assert.True(t, resp.Solution.Unified)
	assert.Equal(t, "f(a, b)", resp.Solution.Unifier)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{resp.Solution.ID}, ids)
}

func TestHandleUnify_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleUnify(ctx, mcp.CallToolRequest{}, map[string]interface{}{"left": "a"})
	assert.Error(t, err)

	_, err = s.handleUnify(ctx, mcp.CallToolRequest{}, map[string]interface{}{"left": "f(", "right": "a"})
	assert.ErrorIs(t, err, domain.ErrSyntax)

	_, err = s.handleUnify(ctx, mcp.CallToolRequest{}, map[string]interface{}{"left": 3, "right": "a"})
	assert.Error(t, err, "non-string sides are rejected by the decoder")

	resp, err := s.handleUnify(ctx, mcp.CallToolRequest{}, map[string]interface{}{"left": "a", "right": "b"})
	require.NoError(t, err, "a pair that does not unify is a result, not an error")
	assert.False(t, resp.Solution.Unified)
	assert.Equal(t, domain.KindAtomComparison, resp.Solution.ErrorKind)
}

func TestHandleSolveProblem(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleSolveProblem(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": "scenario"})
	require.NoError(t, err)
	assert.Equal(t, "d(c(X), a, a)", resp.Solution.Unifier)
	assert.Equal(t, "scenario", resp.Solution.ProblemID)

	_, err = s.handleSolveProblem(ctx, mcp.CallToolRequest{}, map[string]interface{}{"id": "missing"})
	assert.ErrorIs(t, err, domain.ErrProblemNotFound)
}

func TestHandleListProblems(t *testing.T) {
	s, _ := newTestServer(t)

	list, err := s.handleListProblems(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	require.Len(t, list.Problems, 2)
	assert.Equal(t, "clash", list.Problems[0].ID)

	empty := NewServer(runner.NewRunner(), nil, nil)
	list, err = empty.handleListProblems(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Empty(t, list.Problems)
}

func TestReadProblems(t *testing.T) {
	s, _ := newTestServer(t)

	contents, err := s.readProblems(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, problemsURI, text.URI)

	var problems []domain.Problem
	require.NoError(t, json.Unmarshal([]byte(text.Text), &problems))
	assert.Len(t, problems, 2)
}
