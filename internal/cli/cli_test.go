package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	loamAdapter "github.com/aretw0/unify/pkg/adapters/loam"
	"github.com/aretw0/unify/pkg/adapters/memory"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const problemsYAML = `
language: [a/0, b/0, f/1]
problems:
  - id: bind
    left: f(X)
    right: f(a)
    expect: unify
  - id: clash
    left: a
    right: b
    expect: fail
`

var testKey = strings.Repeat("ab", 32)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sampleSolution() *domain.Solution {
	return &domain.Solution{
		ID:        "s1",
		ProblemID: "bind",
		Key:       domain.ProblemKey("f(X)", "f(a)"),
		Left:      "f(X)",
		Right:     "f(a)",
		Unified:   true,
		Unifier:   "f(a)",
		Bindings:  map[string]string{"X": "a"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreateStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		opts Options
	}{
		{"memory", Options{Store: "memory"}},
		{"file", Options{Store: "file", StorePath: t.TempDir()}},
		{"sqlite", Options{Store: "sqlite", StorePath: filepath.Join(t.TempDir(), "db", "solutions.db")}},
		{"redis", Options{Store: "redis", RedisAddr: mr.Addr()}},
		{"cached", Options{Store: "memory", CacheSize: 8}},
		{"encrypted", Options{Store: "file", StorePath: t.TempDir(), EncryptionKey: testKey}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := CreateStore(ctx, tt.opts)
			require.NoError(t, err)
			require.NotNil(t, store)
			defer closeStore()

			want := sampleSolution()
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx, want.ID)
			require.NoError(t, err)
			assert.Equal(t, want.Bindings, got.Bindings)
			assert.Equal(t, want.Unifier, got.Unifier)
		})
	}
}

func TestCreateStore_None(t *testing.T) {
	store, closeStore, err := CreateStore(context.Background(), Options{})
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closeStore())
}

func TestCreateStore_Errors(t *testing.T) {
	ctx := context.Background()

	tests := map[string]Options{
		"unknown store":     {Store: "etcd"},
		"short key":         {Store: "memory", EncryptionKey: "abcd"},
		"not hex":           {Store: "memory", EncryptionKey: strings.Repeat("zz", 32)},
		"bad fallback":      {Store: "memory", EncryptionKey: testKey, FallbackKeys: []string{"00"}},
		"redis unreachable": {Store: "redis", RedisAddr: "127.0.0.1:1"},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := CreateStore(ctx, opts)
			assert.Error(t, err)
		})
	}
}

func TestOptions_ApplyEnv(t *testing.T) {
	t.Setenv(EnvStore, "sqlite")
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(EnvCacheSize, "32")
	t.Setenv(EnvFallbackKeys, "k1, k2")

	opts := Options{StorePath: "explicit"}
	opts.ApplyEnv()

	assert.Equal(t, "sqlite", opts.Store)
	assert.Equal(t, "explicit", opts.StorePath)
	assert.Equal(t, "redis:6379", opts.RedisAddr)
	assert.Equal(t, 32, opts.CacheSize)
	assert.Equal(t, []string{"k1", "k2"}, opts.FallbackKeys)
}

func TestCreateEngine(t *testing.T) {
	logger, err := CreateLogger(Options{})
	require.NoError(t, err)

	assert.True(t, CreateEngine(Options{}, logger).OccursCheck())
	assert.False(t, CreateEngine(Options{NoOccursCheck: true}, logger).OccursCheck())

	_, err = CreateLogger(Options{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestCreateEngine_Hooks(t *testing.T) {
	var mu sync.Mutex
	var outcomes []domain.Outcome
	hooks := domain.LifecycleHooks{
		OnUnifyDone: func(ctx context.Context, e *domain.UnifyEvent) {
			mu.Lock()
			defer mu.Unlock()
			outcomes = append(outcomes, e.Outcome)
		},
	}

	r, closeStore, err := CreateRunner(context.Background(), Options{Debug: true, MaxSteps: 1}, hooks)
	require.NoError(t, err)
	defer closeStore()

	_, err = r.Solve(context.Background(), &domain.Problem{Left: "a", Right: "a"})
	require.NoError(t, err)
	_, err = r.Solve(context.Background(), &domain.Problem{Left: "f(a)", Right: "f(a)"})
	assert.ErrorIs(t, err, domain.ErrStepLimit)

	assert.Equal(t, []domain.Outcome{domain.OutcomeUnified, domain.OutcomeAborted}, outcomes)
}

func TestLoadProblems(t *testing.T) {
	ctx := context.Background()

	t.Run("yaml file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "problems.yaml", problemsYAML)
		loader, err := LoadProblems(path, SourceAuto)
		require.NoError(t, err)
		assert.IsType(t, &memory.Loader{}, loader)

		ids, err := loader.ListProblems(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"bind", "clash"}, ids)
	})

	t.Run("markdown directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "bind.md", "---\nleft: f(X)\nright: f(a)\nexpect: unify\n---\nBinds X.\n")
		loader, err := LoadProblems(dir, SourceAuto)
		require.NoError(t, err)
		assert.IsType(t, &loamAdapter.Loader{}, loader)

		p, err := loader.GetProblem(ctx, "bind")
		require.NoError(t, err)
		assert.Equal(t, "f(X)", p.Left)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := LoadProblems(".", "ftp")
		assert.Error(t, err)
	})
}

func TestRunSolve(t *testing.T) {
	var out bytes.Buffer
	err := RunSolve(context.Background(), SolveOptions{Left: "f(X)", Right: "f(a)", Out: &out})
	require.NoError(t, err)
	assert.Equal(t, "unifier: f(a)\n  X = a\n", out.String())

	out.Reset()
	err = RunSolve(context.Background(), SolveOptions{Left: "a", Right: "b", Out: &out})
	assert.ErrorIs(t, err, ErrNotUnified)
	assert.Contains(t, out.String(), "no unifier")

	err = RunSolve(context.Background(), SolveOptions{Left: "f(", Right: "a", Out: &out})
	assert.ErrorIs(t, err, domain.ErrSyntax)

	err = RunSolve(context.Background(), SolveOptions{Options: Options{Format: "xml"}, Left: "a", Right: "a", Out: &out})
	assert.Error(t, err)
}

func TestRunSolve_Persists(t *testing.T) {
	dir := t.TempDir()
	opts := Options{Store: "file", StorePath: dir, Format: "json"}

	var out bytes.Buffer
	require.NoError(t, RunSolve(context.Background(), SolveOptions{Options: opts, Left: "X", Right: "a", Out: &out}))
	assert.Contains(t, out.String(), `"unified":true`)

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problems.yaml", problemsYAML)

	var out bytes.Buffer
	require.NoError(t, RunCheck(context.Background(), CheckOptions{Path: path, Out: &out}))
	assert.Contains(t, out.String(), "PASS bind: f(X) = f(a) -> unified (expected unify)")
	assert.Contains(t, out.String(), "2 problems, 2 passed, 0 failed")

	broken := strings.Replace(problemsYAML, "expect: fail", "expect: unify", 1)
	path = writeFile(t, dir, "problems.yaml", broken)
	out.Reset()
	err := RunCheck(context.Background(), CheckOptions{Path: path, Out: &out})
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out.String(), "FAIL clash")
}

func TestRunCheck_Watch(t *testing.T) {
	if testing.Short() {
		t.Skip("watch test uses the filesystem watcher")
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "problems.yaml", problemsYAML)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- RunCheck(ctx, CheckOptions{Path: path, Watch: true, Out: out})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Waiting for changes")
	}, 5*time.Second, 20*time.Millisecond)

	writeFile(t, dir, "problems.yaml", strings.Replace(problemsYAML, "expect: fail", "expect: unify", 1))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "FAIL clash")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunSession(t *testing.T) {
	in := strings.NewReader("f(X) = f(a)\n# comment\nf( = a\na = b\n")
	var out bytes.Buffer

	require.NoError(t, RunSession(context.Background(), SessionOptions{In: in, Out: &out}))

	got := out.String()
	assert.Contains(t, got, "X = a")
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "no unifier")
}

func TestRunSession_JSON(t *testing.T) {
	in := strings.NewReader(`{"id":"p1","left":"g(X)","right":"g(b)"}` + "\n")
	var out bytes.Buffer

	require.NoError(t, RunSession(context.Background(), SessionOptions{JSON: true, In: in, Out: &out}))
	assert.Contains(t, out.String(), `"problem_id":"p1"`)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
