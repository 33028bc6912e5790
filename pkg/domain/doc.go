/*
Package domain contains the core domain models of the unification engine.

It defines first-order terms, the errors a unification can end with, and the records
that outer layers exchange (problems and their solutions). This package is kept pure and
free of I/O or persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - Term: either a *Value (constructor tag plus ordered children) or a Var (one-based index).
  - Problem: a pair of terms in textual syntax with an optional expected outcome.
  - Solution: the persisted result of solving a Problem.
  - LifecycleHooks: callbacks fired around every unification.
*/
package domain
