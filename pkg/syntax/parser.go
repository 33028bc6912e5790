package syntax

import (
	"fmt"
	"strconv"

	"github.com/aretw0/unify/pkg/domain"
)

// maxIndex bounds raw variable indices. The substitution allocates one cell per
// index, so "?99999999999" must not turn into a huge allocation.
const maxIndex = 1 << 20

type nodeKind int

const (
	nodeValue nodeKind = iota
	nodeRaw
	nodeNamed
	nodeAnon
)

// node is the parse tree before variables are numbered.
type node struct {
	kind     nodeKind
	text     string
	index    int
	pos      int
	children []*node
}

type parser struct {
	lex *lexer
	cur token
}

// Parse parses a single term with a fresh scope.
func Parse(src string) (domain.Term, error) {
	return NewScope().Parse(src)
}

// MustParse is like Parse but panics on error.
func MustParse(src string) domain.Term {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

// ParsePair parses both sides of a problem with one shared scope.
// Named variables are numbered after the largest raw index of either side.
func ParsePair(left, right string) (domain.Term, domain.Term, *Scope, error) {
	ln, err := parseTree(left)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("left: %w", err)
	}
	rn, err := parseTree(right)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("right: %w", err)
	}

	s := NewScope()
	s.reserve(max(maxRaw(ln), maxRaw(rn)))

	lt, err := s.build(ln)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("left: %w", err)
	}
	rt, err := s.build(rn)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("right: %w", err)
	}
	return lt, rt, s, nil
}

// Parse parses src, numbering named variables in s.
func (s *Scope) Parse(src string) (domain.Term, error) {
	n, err := parseTree(src)
	if err != nil {
		return nil, err
	}
	s.reserve(maxRaw(n))
	return s.build(n)
}

func parseTree(src string) (*node, error) {
	p := &parser{lex: newLexer(src)}
	p.advance()

	n, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.cur.typ != tokEOF {
		return nil, errorf(p.cur.pos, "unexpected %s %q after term", p.cur.typ, p.cur.literal)
	}
	return n, nil
}

func (p *parser) advance() {
	p.cur = p.lex.next()
}

func (p *parser) term() (*node, error) {
	tok := p.cur
	switch tok.typ {
	case tokIdent:
		p.advance()
		n := &node{kind: nodeValue, text: tok.literal, pos: tok.pos}
		if p.cur.typ != tokLParen {
			return n, nil
		}
		p.advance()
		for {
			child, err := p.term()
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)

			switch p.cur.typ {
			case tokComma:
				p.advance()
			case tokRParen:
				p.advance()
				return n, nil
			default:
				return nil, errorf(p.cur.pos, "expected ',' or ')' in arguments of %s, got %s", tok.literal, p.cur.typ)
			}
		}

	case tokInt, tokQVar:
		p.advance()
		i, err := strconv.Atoi(tok.literal)
		if err != nil || i < 1 || i > maxIndex {
			return nil, errorf(tok.pos, "variable index %s out of range [1, %d]", tok.literal, maxIndex)
		}
		return p.noArgs(&node{kind: nodeRaw, index: i, text: tok.literal, pos: tok.pos})

	case tokName:
		p.advance()
		return p.noArgs(&node{kind: nodeNamed, text: tok.literal, pos: tok.pos})

	case tokAnon:
		p.advance()
		return p.noArgs(&node{kind: nodeAnon, text: tok.literal, pos: tok.pos})

	case tokEOF:
		return nil, errorf(tok.pos, "unexpected end of input, expected a term")

	default:
		return nil, errorf(tok.pos, "unexpected %s %q, expected a term", tok.typ, tok.literal)
	}
}

func (p *parser) noArgs(n *node) (*node, error) {
	if p.cur.typ == tokLParen {
		return nil, errorf(p.cur.pos, "variable %s cannot take arguments", n.text)
	}
	return n, nil
}

func maxRaw(n *node) int {
	m := 0
	if n.kind == nodeRaw {
		m = n.index
	}
	for _, c := range n.children {
		m = max(m, maxRaw(c))
	}
	return m
}

// build numbers the variables of n in s, left to right.
func (s *Scope) build(n *node) (domain.Term, error) {
	switch n.kind {
	case nodeRaw:
		if s.taken[n.index] {
			return nil, errorf(n.pos, "variable ?%d is already used by a named variable", n.index)
		}
		return domain.NewVar(n.index), nil
	case nodeNamed:
		return domain.NewVar(s.named(n.text)), nil
	case nodeAnon:
		return domain.NewVar(s.fresh()), nil
	}

	v := &domain.Value{Tag: n.text}
	if len(n.children) > 0 {
		v.Children = make([]domain.Term, len(n.children))
		for i, c := range n.children {
			t, err := s.build(c)
			if err != nil {
				return nil, err
			}
			v.Children[i] = t
		}
	}
	return v, nil
}
