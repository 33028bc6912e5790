package runtime_test

import (
	"testing"

	"github.com/aretw0/unify/internal/runtime"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/subst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_UnboundBecomesCanonical(t *testing.T) {
	s, err := runtime.Unify(d(v(1), v(2), v(3)), d(v(2), v(3), v(1)))
	require.NoError(t, err)

	got, err := runtime.Resolve(s, d(v(1), v(2), v(3)))
	require.NoError(t, err)

	canonical := domain.Var{Index: s.Find(0) + 1}
	assert.True(t, domain.Equal(d(canonical, canonical, canonical), got), "got %s", got)
}

func TestResolve_FreshCopy(t *testing.T) {
	in := c(a)
	got, err := runtime.Resolve(subst.New(0), in)
	require.NoError(t, err)

	out, ok := got.(*domain.Value)
	require.True(t, ok)
	assert.NotSame(t, in, out)
	assert.True(t, domain.Equal(in, out))
}

func TestResolve_Recursive(t *testing.T) {
	// ?1 = c(?2), ?2 = c(?3), ?3 = a
	s := subst.New(3)
	s.Bind(0, c(v(2)))
	s.Bind(1, c(v(3)))
	s.Bind(2, a)

	got, err := runtime.Resolve(s, v(1))
	require.NoError(t, err)
	assert.Equal(t, "c(c(a))", got.String())
}

func TestResolve_Cycle(t *testing.T) {
	s := subst.New(2)
	s.Bind(0, c(v(2)))
	s.Bind(1, c(v(1)))

	_, err := runtime.Resolve(s, d(a, v(1), a))
	var occ *domain.OccursError
	require.ErrorAs(t, err, &occ)
	assert.Contains(t, occ.Error(), "cyclic")
}

func TestResolve_SharedClassTwice(t *testing.T) {
	s := subst.New(1)
	s.Bind(0, c(a))

	got, err := runtime.Resolve(s, d(v(1), v(1), v(1)))
	require.NoError(t, err)
	assert.Equal(t, "d(c(a), c(a), c(a))", got.String())
}

func TestBindings(t *testing.T) {
	s, err := runtime.Unify(d(c(v(1)), v(2), v(1)), d(v(3), v(1), a))
	require.NoError(t, err)

	got, err := runtime.Bindings(s, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].String())
	assert.Equal(t, "a", got[1].String())
	assert.Equal(t, "c(a)", got[2].String())

	_, err = runtime.Bindings(s, 4)
	assert.Error(t, err)
}
