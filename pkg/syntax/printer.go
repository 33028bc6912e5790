package syntax

import (
	"strconv"
	"strings"

	"github.com/aretw0/unify/pkg/domain"
)

// Print renders t in a form Parse reads back: variables print as ?N.
func Print(t domain.Term) string {
	return PrintWith(t, nil)
}

// PrintWith renders t, printing variables named in s by their name.
// A nil scope prints every variable as ?N.
func PrintWith(t domain.Term, s *Scope) string {
	var sb strings.Builder
	write(&sb, t, s)
	return sb.String()
}

func write(sb *strings.Builder, t domain.Term, s *Scope) {
	switch t := t.(type) {
	case *domain.Value:
		sb.WriteString(t.Tag)
		if len(t.Children) == 0 {
			return
		}
		sb.WriteByte('(')
		for i, c := range t.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			write(sb, c, s)
		}
		sb.WriteByte(')')
	case domain.Var:
		if s != nil {
			if name, ok := s.Name(t.Index); ok {
				sb.WriteString(name)
				return
			}
		}
		sb.WriteByte('?')
		sb.WriteString(strconv.Itoa(t.Index))
	}
}
