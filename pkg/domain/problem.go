package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Expectation is the outcome a problem author expects.
type Expectation string

const (
	// ExpectNone means the problem is solved without checking the outcome.
	ExpectNone Expectation = ""
	// ExpectUnify means the two terms must unify.
	ExpectUnify Expectation = "unify"
	// ExpectFail means the two terms must not unify.
	ExpectFail Expectation = "fail"
)

// Valid reports whether e is one of the known expectations.
func (e Expectation) Valid() bool {
	switch e {
	case ExpectNone, ExpectUnify, ExpectFail:
		return true
	}
	return false
}

// Problem is a pair of terms in textual syntax, plus optional metadata.
type Problem struct {
	ID          string      `json:"id" yaml:"id" mapstructure:"id"`
	Description string      `json:"description,omitempty" yaml:"description" mapstructure:"description"`
	Left        string      `json:"left" yaml:"left" mapstructure:"left"`
	Right       string      `json:"right" yaml:"right" mapstructure:"right"`
	Expect      Expectation `json:"expect,omitempty" yaml:"expect" mapstructure:"expect"`
	// Language lists "name/arity" symbols both sides must conform to. Empty means unchecked.
	Language []string `json:"language,omitempty" yaml:"language" mapstructure:"language"`
}

// Key returns the ProblemKey of p's two sides.
func (p *Problem) Key() string {
	return ProblemKey(p.Left, p.Right)
}

// ProblemKey returns a stable 16 hex digit key for a pair of term texts.
// Whitespace is ignored so "f(X, a)" and "f(X,a)" share a key.
func ProblemKey(left, right string) string {
	d := xxhash.New()
	_, _ = d.WriteString(compact(left))
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(compact(right))
	return strconv.FormatUint(d.Sum64()|1<<63, 16)
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Solution is the persisted result of solving a problem.
type Solution struct {
	ID        string `json:"id"`
	ProblemID string `json:"problem_id,omitempty"`
	Key       string `json:"key"`
	Left      string `json:"left"`
	Right     string `json:"right"`
	Unified   bool   `json:"unified"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	// Bindings maps each source variable name to its resolved term.
	Bindings map[string]string `json:"bindings,omitempty"`
	// Unifier is the common instance of both sides.
	Unifier   string    `json:"unifier,omitempty"`
	Steps     int       `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a copy of s that shares no maps with it.
func (s *Solution) Clone() *Solution {
	c := *s
	if s.Bindings != nil {
		c.Bindings = make(map[string]string, len(s.Bindings))
		for k, v := range s.Bindings {
			c.Bindings[k] = v
		}
	}
	return &c
}
