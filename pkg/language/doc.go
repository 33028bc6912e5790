// Package language describes the alphabet terms are built from.
//
// A Language is an ordered list of constructor symbols, each with a fixed arity,
// written "name/arity":
//
//	lang, err := language.Parse("a/0", "b/0", "c/1", "d/3")
//	if err != nil {
//	    // duplicate or malformed symbol
//	}
//
//	if err := lang.Validate(term); err != nil {
//	    for _, e := range language.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// Languages are optional. The unifier never consults one; callers that accept terms
// from outside (problem files, the HTTP API) validate them before unifying.
//
// Languages load from YAML:
//
//	symbols: [a/0, b/0, c/1, d/3]
package language
