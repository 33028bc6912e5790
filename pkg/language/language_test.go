package language

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/unify/pkg/domain"
	"gopkg.in/yaml.v3"
)

func TestParse_Success(t *testing.T) {
	l, err := Parse("a/0", "b/0", "c/1", "d/3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if l.Len() != 4 {
		t.Errorf("Len() = %d, want 4", l.Len())
	}
	if got := l.Arity("d"); got != 3 {
		t.Errorf("Arity(d) = %d, want 3", got)
	}
	if got := l.Arity("e"); got != -1 {
		t.Errorf("Arity(e) = %d, want -1", got)
	}
	if got := l.String(); got != "{a/0, b/0, c/1, d/3}" {
		t.Errorf("String() = %q", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []string
	}{
		{"missing arity", []string{"a"}},
		{"negative arity", []string{"a/-1"}},
		{"non numeric arity", []string{"a/x"}},
		{"uppercase name", []string{"A/0"}},
		{"empty name", []string{"/0"}},
		{"duplicate", []string{"a/0", "a/1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input...); err == nil {
				t.Errorf("Parse(%v) should fail", tt.input)
			}
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on a malformed symbol")
		}
	}()
	MustParse("c/one")
}

func TestValidate_Success(t *testing.T) {
	l := MustParse("a/0", "c/1", "d/3")
	term := domain.NewValue("d", domain.NewValue("c", domain.NewVar(1)), domain.Atom("a"), domain.NewVar(2))

	if err := l.Validate(term); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	l := MustParse("a/0", "c/1", "d/3")
	term := domain.NewValue("d",
		domain.NewValue("c", domain.Atom("a"), domain.Atom("a")),
		domain.Atom("e"),
		domain.Var{Index: 0},
	)

	err := l.Validate(term)
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error should wrap domain.ErrValidation, got %v", err)
	}

	errs := ValidationErrors(err)
	if len(errs) != 3 {
		t.Fatalf("Validate() = %d errors, want 3: %v", len(errs), err)
	}

	want := []struct{ path, symbol string }{
		{"root.0", "c"},
		{"root.1", "e"},
		{"root.2", "?0"},
	}
	for i, w := range want {
		ve, ok := errs[i].(*ValidationError)
		if !ok {
			t.Fatalf("error should be *ValidationError, got %T", errs[i])
		}
		if ve.Path != w.path || ve.Symbol != w.symbol {
			t.Errorf("error %d = %s at %s, want %s at %s", i, ve.Symbol, ve.Path, w.symbol, w.path)
		}
	}
}

func TestValidatePair(t *testing.T) {
	l := MustParse("a/0")
	err := l.ValidatePair(domain.Atom("a"), domain.Atom("b"))

	errs := ValidationErrors(err)
	if len(errs) != 1 {
		t.Fatalf("ValidatePair() = %v, want one error", err)
	}
	if got := errs[0].Error(); got != "b at right: unknown symbol" {
		t.Errorf("Error() = %q", got)
	}
}

func TestSerialization(t *testing.T) {
	l := MustParse("a/0", "c/1")

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `["a/0","c/1"]` {
		t.Errorf("Marshal() = %s", data)
	}

	var fromYAML struct {
		Language *Language `yaml:"language"`
	}
	if err := yaml.Unmarshal([]byte("language: [a/0, d/3]\n"), &fromYAML); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if fromYAML.Language.Arity("d") != 3 {
		t.Errorf("Arity(d) = %d, want 3", fromYAML.Language.Arity("d"))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang.yaml")
	if err := os.WriteFile(path, []byte("symbols:\n  - a/0\n  - c/1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := l.Lookup("c"); !ok {
		t.Error("Lookup(c) should succeed")
	}
}
