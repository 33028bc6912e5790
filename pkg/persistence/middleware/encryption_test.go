package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/persistence/middleware"
	"github.com/aretw0/unify/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := NewMockStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	original := &domain.Solution{
		ID:       "s1",
		Key:      domain.ProblemKey("f(Secret)", "f(hunter2)"),
		Left:     "f(Secret)",
		Right:    "f(hunter2)",
		Unified:  true,
		Bindings: map[string]string{"Secret": "hunter2"},
	}

	if err := secureStore.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The underlying store only sees the envelope.
	stored, err := underlyingStore.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if val, ok := stored.Bindings["Secret"]; ok {
		t.Fatalf("Expected binding to be hidden, found: %v", val)
	}
	if stored.Left != "" || stored.Unified {
		t.Fatalf("Expected envelope to hide the problem, got %+v", stored)
	}
	if stored.Key != original.Key {
		t.Errorf("Expected key to stay in the clear")
	}
	if _, ok := stored.Bindings["__encrypted__"]; !ok {
		t.Fatal("Expected __encrypted__ entry in bindings")
	}

	loaded, err := secureStore.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Bindings["Secret"] != "hunter2" || loaded.Left != "f(Secret)" {
		t.Errorf("Expected decrypted solution, got %+v", loaded)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := NewMockStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	ctx := context.Background()
	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)
	if err := oldStore.Save(ctx, &domain.Solution{ID: "rot", Unifier: "a"}); err != nil {
		t.Fatal(err)
	}

	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := rotated.Load(ctx, "rot")
	if err != nil {
		t.Fatalf("Load with fallback key failed: %v", err)
	}
	if loaded.Unifier != "a" {
		t.Errorf("Expected unifier 'a', got %q", loaded.Unifier)
	}

	noFallback := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})(underlyingStore)
	if _, err := noFallback.Load(ctx, "rot"); err == nil {
		t.Error("Expected decryption to fail without the old key")
	}
}

func TestEncryptionMiddleware_RejectsPlain(t *testing.T) {
	underlyingStore := NewMockStore()
	_ = underlyingStore.Save(context.Background(), &domain.Solution{ID: "plain"})

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	if _, err := secure.Load(context.Background(), "plain"); err == nil {
		t.Error("Expected error for a solution without envelope")
	}
}

func TestEncryptionMiddleware_PanicsOnShortKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a 16 byte key")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: make([]byte, 16)})
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunSolutionStoreContract(t, middleware.NewEncryptionMiddleware(
		middleware.EncryptionConfig{ActiveKey: generateKey(t)})(NewMockStore()))
}
