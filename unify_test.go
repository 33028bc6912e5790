package unify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/unify"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	eng := unify.New()
	assert.True(t, eng.OccursCheck())

	_, err := eng.Unify(context.Background(), domain.NewVar(1), domain.NewValue("c", domain.NewVar(1)))
	assert.ErrorIs(t, err, domain.ErrOccursCheck)
}

func TestNew_WithoutOccursCheck(t *testing.T) {
	eng := unify.New(unify.WithoutOccursCheck())
	assert.False(t, eng.OccursCheck())

	res, err := eng.Unify(context.Background(), domain.NewVar(1), domain.NewValue("c", domain.NewVar(1)))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Subst.Len())
}

func TestNew_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := unify.New(unify.WithLogger(logger)).Unify(context.Background(), domain.Atom("a"), domain.Atom("a"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "unification finished")
	assert.Contains(t, buf.String(), "outcome=unified")
}

func TestNew_HooksMerge(t *testing.T) {
	var calls int
	hook := domain.LifecycleHooks{
		OnUnifyDone: func(context.Context, *domain.UnifyEvent) { calls++ },
	}

	eng := unify.New(unify.WithLifecycleHooks(hook), unify.WithLifecycleHooks(hook))
	_, err := eng.Unify(context.Background(), domain.Atom("a"), domain.Atom("a"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestNew_WithMaxSteps(t *testing.T) {
	eng := unify.New(unify.WithMaxSteps(1))
	_, err := eng.Unify(context.Background(),
		domain.NewValue("c", domain.Atom("a")), domain.NewValue("c", domain.Atom("a")))
	assert.ErrorIs(t, err, domain.ErrStepLimit)
}

func TestEngine_UnifyNilContext(t *testing.T) {
	var ctx context.Context
	res, err := unify.New().Unify(ctx, domain.Atom("a"), domain.Atom("a"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Steps)
}

func TestUnify_RejectsZeroVar(t *testing.T) {
	s, err := unify.Unify(domain.Var{Index: 0}, domain.Atom("a"))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
