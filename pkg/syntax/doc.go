// Package syntax reads and writes terms as text.
//
// The grammar is
//
//	term := var | ident [ '(' term { ',' term } ')' ]
//	var  := integer | '?' integer | Upper ident | '_' ident | '_'
//
// Lowercase identifiers are constructors: "a" is an atom and "d(a, X, 3)" has three
// children. Integers and ?N denote variable N directly. Capitalized identifiers are
// named variables, numbered through a Scope after the largest raw index in sight.
// Each '_' is a fresh variable.
//
// Errors are *Error values and wrap domain.ErrSyntax.
package syntax
