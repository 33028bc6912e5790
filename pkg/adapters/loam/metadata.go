package loam

// ProblemMetadata is the frontmatter of a problem document.
// Sides are kept raw: under Loam's strict mode a side written as a bare number
// ("left: 1") arrives as json.Number rather than a string.
//
//	---
//	id: scenario
//	left: d(c(1), 2, 1)
//	right: d(3, 1, a)
//	expect: unify
//	language: [a/0, b/0, c/1, d/3]
//	---
//	The body becomes the problem description.
type ProblemMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Left        any    `json:"left" mapstructure:"left"`
	Right       any    `json:"right" mapstructure:"right"`
	Expect      string `json:"expect" mapstructure:"expect"`
	Description string `json:"description" mapstructure:"description"`
	// Language is a list of "name/arity" or a single string.
	Language any `json:"language" mapstructure:"language"`
}

func (m ProblemMetadata) isProblem() bool {
	return m.Left != nil || m.Right != nil
}
