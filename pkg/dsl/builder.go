package dsl

import (
	"fmt"

	"github.com/aretw0/unify/pkg/adapters/memory"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/language"
	"github.com/aretw0/unify/pkg/syntax"
)

// Builder manages the problem set construction.
type Builder struct {
	language []string
	order    []string
	problems map[string]*ProblemBuilder
}

// New creates a new problem set builder.
func New() *Builder {
	return &Builder{
		problems: make(map[string]*ProblemBuilder),
	}
}

// Language sets the symbols ("name/arity") every problem without its own language
// is checked against.
func (b *Builder) Language(symbols ...string) *Builder {
	b.language = append([]string(nil), symbols...)
	return b
}

// Add creates a new problem in the set.
// If the problem already exists, it returns the existing builder.
func (b *Builder) Add(id string) *ProblemBuilder {
	if pb, ok := b.problems[id]; ok {
		return pb
	}
	pb := &ProblemBuilder{
		problem: domain.Problem{ID: id},
		builder: b,
	}
	b.problems[id] = pb
	b.order = append(b.order, id)
	return pb
}

// Build checks every problem and compiles the set into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	if len(b.language) > 0 {
		if _, err := language.Parse(b.language...); err != nil {
			return nil, fmt.Errorf("invalid set language: %w", err)
		}
	}

	problems := make([]domain.Problem, 0, len(b.order))
	for _, id := range b.order {
		p := b.problems[id].problem
		if len(p.Language) == 0 && len(b.language) > 0 {
			p.Language = append([]string(nil), b.language...)
		}
		if err := check(p); err != nil {
			return nil, fmt.Errorf("problem %q: %w", id, err)
		}
		problems = append(problems, p)
	}

	loader, err := memory.NewLoader(problems...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

func check(p domain.Problem) error {
	if p.Left == "" || p.Right == "" {
		return fmt.Errorf("%w: both sides are required", domain.ErrValidation)
	}
	left, right, _, err := syntax.ParsePair(p.Left, p.Right)
	if err != nil {
		return err
	}
	if len(p.Language) == 0 {
		return nil
	}
	lang, err := language.Parse(p.Language...)
	if err != nil {
		return err
	}
	return lang.ValidatePair(left, right)
}

// ProblemBuilder provides a fluent API for configuring a problem.
type ProblemBuilder struct {
	problem domain.Problem
	builder *Builder
}

// Left sets the left-hand term.
func (p *ProblemBuilder) Left(term string) *ProblemBuilder {
	p.problem.Left = term
	return p
}

// Right sets the right-hand term.
func (p *ProblemBuilder) Right(term string) *ProblemBuilder {
	p.problem.Right = term
	return p
}

// Description attaches a human readable note.
func (p *ProblemBuilder) Description(text string) *ProblemBuilder {
	p.problem.Description = text
	return p
}

// Language overrides the set language for this problem.
func (p *ProblemBuilder) Language(symbols ...string) *ProblemBuilder {
	p.problem.Language = append([]string(nil), symbols...)
	return p
}

// ExpectUnify marks the problem as one whose sides must unify.
func (p *ProblemBuilder) ExpectUnify() *ProblemBuilder {
	p.problem.Expect = domain.ExpectUnify
	return p
}

// ExpectFail marks the problem as one whose sides must not unify.
func (p *ProblemBuilder) ExpectFail() *ProblemBuilder {
	p.problem.Expect = domain.ExpectFail
	return p
}

// Add starts the next problem, for chaining.
func (p *ProblemBuilder) Add(id string) *ProblemBuilder {
	return p.builder.Add(id)
}

// Build finishes the chain and builds the whole set.
func (p *ProblemBuilder) Build() (*memory.Loader, error) {
	return p.builder.Build()
}
