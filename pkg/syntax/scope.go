package syntax

import (
	"sort"
)

// Scope numbers named variables. Terms parsed with the same scope share their names,
// so X in the left side of a problem is the same variable as X in the right side.
//
// Named variables are numbered after the largest raw index (1, ?1, ...) the scope has
// seen at the time a name is first used. A raw index that later lands on a named or
// anonymous variable is rejected.
type Scope struct {
	names   map[string]int
	byIndex map[int]string
	// taken holds every index handed to a named or anonymous variable.
	taken map[int]bool
	// raw is the largest raw index seen.
	raw int
	// next is the largest index handed out.
	next int
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{
		names:   make(map[string]int),
		byIndex: make(map[int]string),
		taken:   make(map[int]bool),
	}
}

// Lookup returns the index assigned to name.
func (s *Scope) Lookup(name string) (int, bool) {
	i, ok := s.names[name]
	return i, ok
}

// Name returns the name of variable index i, if it was named.
func (s *Scope) Name(i int) (string, bool) {
	n, ok := s.byIndex[i]
	return n, ok
}

// Names returns the named variables ordered by index.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return s.names[out[i]] < s.names[out[j]] })
	return out
}

// MaxIndex returns the largest variable index the scope knows about.
func (s *Scope) MaxIndex() int {
	return max(s.raw, s.next)
}

func (s *Scope) reserve(raw int) {
	s.raw = max(s.raw, raw)
	s.next = max(s.next, s.raw)
}

func (s *Scope) named(name string) int {
	if i, ok := s.names[name]; ok {
		return i
	}
	s.next++
	s.names[name] = s.next
	s.byIndex[s.next] = name
	s.taken[s.next] = true
	return s.next
}

func (s *Scope) fresh() int {
	s.next++
	s.taken[s.next] = true
	return s.next
}
