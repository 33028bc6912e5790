/*
Package unify is a first-order syntactic unification engine.

Given two terms built from constructors and variables, it computes their most general
unifier (MGU): the least constraining substitution that makes both terms equal. The
substitution is a union-find forest with path compression, so chains of variable-to-variable
equalities are resolved in near-constant amortized time.

# Concept

Terms live in package domain: a *domain.Value is a constructor tag with ordered children,
a domain.Var is a one-based variable index. Unification runs a worklist over pairs of
subterms and either returns a *subst.Substitution or fails with domain.ErrAtomComparison
(tag or arity clash) or domain.ErrOccursCheck (the binding would build an infinite term).

The core is pure and synchronous. Everything else (text syntax, problem files, stores,
the CLI and the HTTP/MCP servers) is layered around it in Hexagonal Architecture style.

# Usage

	x := domain.NewVar(1)
	left := domain.NewValue("f", x, domain.Atom("b"))
	right := domain.NewValue("f", domain.Atom("a"), domain.NewVar(2))

	s, err := unify.Unify(left, right)
	if err != nil {
		log.Fatal(err)
	}

	term, _ := unify.Resolve(s, left)
	fmt.Println(term) // f(a, b)

For text input, parse both sides with one scope so named variables are shared:

	l, r, scope, err := syntax.ParsePair("f(X, b)", "f(a, Y)")

# Configuration

New accepts functional options for a logger, lifecycle hooks, a step budget and for
disabling the occurs check:

	eng := unify.New(
		unify.WithLogger(logger),
		unify.WithMaxSteps(100000),
	)
	res, err := eng.Unify(ctx, left, right)
*/
package unify
