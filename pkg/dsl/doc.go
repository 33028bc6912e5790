/*
Package dsl provides a Go DSL for building problem sets in code.

It is the programmatic counterpart of a problems.yaml file: useful for tests,
generated suites and anything that wants IDE autocompletion over YAML.

Example usage:

	b := dsl.New().Language("a/0", "b/0", "c/1", "d/3")

	b.Add("scenario").
		Left("d(c(X), Y, a)").
		Right("d(Z, a, Y)").
		ExpectUnify()

	b.Add("clash").
		Left("c(a)").
		Right("c(b)").
		ExpectFail()

	// The result is a ports.ProblemLoader.
	loader, err := b.Build()
*/
package dsl
