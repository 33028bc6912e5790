package language

import (
	"fmt"
	"strconv"
	"strings"
)

// Symbol is a constructor with a fixed arity.
type Symbol struct {
	Name  string
	Arity int
}

func (s Symbol) String() string {
	return s.Name + "/" + strconv.Itoa(s.Arity)
}

// ParseSymbol parses "name/arity".
func ParseSymbol(text string) (Symbol, error) {
	text = strings.TrimSpace(text)
	i := strings.LastIndexByte(text, '/')
	if i <= 0 {
		return Symbol{}, fmt.Errorf("symbol %q: expected name/arity", text)
	}

	name := text[:i]
	if !isName(name) {
		return Symbol{}, fmt.Errorf("symbol %q: invalid name %q", text, name)
	}

	arity, err := strconv.Atoi(text[i+1:])
	if err != nil || arity < 0 {
		return Symbol{}, fmt.Errorf("symbol %q: arity must be a non-negative integer", text)
	}

	return Symbol{Name: name, Arity: arity}, nil
}

// isName accepts the identifiers that the term syntax reads as constructors.
func isName(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}

// Language is an ordered set of symbols with unique names.
type Language struct {
	symbols []Symbol
	index   map[string]int
}

// New builds a language from symbols. Names must be unique.
func New(symbols ...Symbol) (*Language, error) {
	l := &Language{index: make(map[string]int, len(symbols))}
	for _, s := range symbols {
		if !isName(s.Name) {
			return nil, fmt.Errorf("invalid symbol name %q", s.Name)
		}
		if s.Arity < 0 {
			return nil, fmt.Errorf("symbol %s: negative arity", s.Name)
		}
		if prev, ok := l.index[s.Name]; ok {
			return nil, fmt.Errorf("symbol %s declared twice (already %s)", s.Name, l.symbols[prev])
		}
		l.index[s.Name] = len(l.symbols)
		l.symbols = append(l.symbols, s)
	}
	return l, nil
}

// Parse builds a language from "name/arity" strings.
func Parse(texts ...string) (*Language, error) {
	symbols := make([]Symbol, 0, len(texts))
	for _, text := range texts {
		s, err := ParseSymbol(text)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return New(symbols...)
}

// MustParse is like Parse but panics on error.
func MustParse(texts ...string) *Language {
	l, err := Parse(texts...)
	if err != nil {
		panic(err)
	}
	return l
}

// Lookup returns the symbol named name.
func (l *Language) Lookup(name string) (Symbol, bool) {
	i, ok := l.index[name]
	if !ok {
		return Symbol{}, false
	}
	return l.symbols[i], true
}

// Arity returns the arity of name, or -1 if the language does not declare it.
func (l *Language) Arity(name string) int {
	if s, ok := l.Lookup(name); ok {
		return s.Arity
	}
	return -1
}

// Symbols returns the declared symbols in declaration order.
func (l *Language) Symbols() []Symbol {
	out := make([]Symbol, len(l.symbols))
	copy(out, l.symbols)
	return out
}

// Len returns the number of symbols.
func (l *Language) Len() int {
	return len(l.symbols)
}

// Strings returns the symbols as "name/arity".
func (l *Language) Strings() []string {
	out := make([]string, len(l.symbols))
	for i, s := range l.symbols {
		out[i] = s.String()
	}
	return out
}

func (l *Language) String() string {
	return "{" + strings.Join(l.Strings(), ", ") + "}"
}
