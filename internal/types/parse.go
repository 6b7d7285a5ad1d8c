package types

import (
	"fmt"
	"strings"
	"unicode"
)

// Resolver looks up a class by name while parsing. Fixtures register their
// declared classes with it; the handful of canonical classes (Object,
// Function, Future, FutureOr, Null) are expected to resolve to the same
// ClassDesc pointers the rest of the engine was built with.
type Resolver interface {
	Class(name string) (*ClassDesc, bool)
}

// Parse reads the textual type grammar produced by Type.Repr() back into a
// Type, given a Resolver for interface class names. This lets the example
// scenarios of the spec round-trip through a YAML fixture file as plain
// strings instead of hand-built Go literals.
func Parse(s string, r Resolver) (Type, error) {
	return ParseWithParams(s, r, nil)
}

// ParseWithParams is Parse extended with a set of type parameters already
// in scope -- used by internal/fixture to parse a class's declared parent
// instantiation, which may mention that same class's own type parameters
// (e.g. a class `List<T>` whose parent is `Iterable<T>`).
func ParseWithParams(s string, r Resolver, params []*TypeParameterDecl) (Type, error) {
	sc := scope{}
	for _, decl := range params {
		sc[decl.Name] = decl
	}

	p := &parser{toks: tokenize(s), resolver: r}
	t, err := p.parseType(sc)
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("types.Parse: unexpected trailing input at %q", p.rest())
	}
	return t, nil
}

// -----------------------------------------------------------------------------
// Lexer

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokPunct
	tokArrow
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(s string) []token {
	var toks []token
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '-' && i+1 < len(runes) && runes[i+1] == '>':
			toks = append(toks, token{tokArrow, "->"})
			i += 2
		case strings.ContainsRune("<>(){}[],?*&", c):
			toks = append(toks, token{tokPunct, string(c)})
			i++
		case c == '_' || unicode.IsLetter(c):
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, string(runes[i:j])})
			i = j
		default:
			// Unrecognized characters are folded into an identifier-like
			// token that runs up to the next space or punctuation mark.
			j := i
			for j < len(runes) && !unicode.IsSpace(runes[j]) && !strings.ContainsRune("<>(){}[],?*&", runes[j]) {
				j++
			}
			if j == i {
				j++
			}
			toks = append(toks, token{tokIdent, string(runes[i:j])})
			i = j
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks
}

// -----------------------------------------------------------------------------
// Parser

type parser struct {
	toks     []token
	pos      int
	resolver Resolver
}

func (p *parser) peek() token  { return p.toks[p.pos] }
func (p *parser) atEnd() bool  { return p.peek().kind == tokEOF }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) rest() string {
	var sb strings.Builder
	for _, t := range p.toks[p.pos:] {
		sb.WriteString(t.text)
		sb.WriteByte(' ')
	}
	return sb.String()
}

func (p *parser) expectPunct(s string) error {
	t := p.advance()
	if t.kind != tokPunct || t.text != s {
		return fmt.Errorf("types.Parse: expected %q, got %q", s, t.text)
	}
	return nil
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}

// scope maps type parameter names visible at the current parse point to
// their declarations, so that a bare identifier inside a function type's
// own signature resolves to a TypeParameterType instead of an interface.
type scope map[string]*TypeParameterDecl

func (p *parser) parseType(sc scope) (Type, error) {
	base, err := p.parsePrimary(sc)
	if err != nil {
		return nil, err
	}
	return p.parseSuffix(base)
}

func (p *parser) parseSuffix(base Type) (Type, error) {
	switch {
	case p.isPunct("?"):
		p.advance()
		return WithNullability(base, Nullable), nil
	case p.isPunct("*"):
		p.advance()
		return WithNullability(base, Legacy), nil
	default:
		return base, nil
	}
}

func (p *parser) parsePrimary(sc scope) (Type, error) {
	// "<invalid>" lexes as "<", "invalid", ">"; recognize it before a
	// leading "<" is taken as the start of a generic function type.
	if p.isPunct("<") && p.pos+2 < len(p.toks) &&
		p.toks[p.pos+1].kind == tokIdent && p.toks[p.pos+1].text == "invalid" &&
		p.toks[p.pos+2].kind == tokPunct && p.toks[p.pos+2].text == ">" {
		p.pos += 3
		return Invalid, nil
	}

	if p.isPunct("<") || p.isPunct("(") {
		return p.parseFunctionType(sc)
	}

	t := p.advance()
	if t.kind != tokIdent {
		return nil, fmt.Errorf("types.Parse: expected a type, got %q", t.text)
	}

	switch t.text {
	case "dynamic":
		return Dynamic, nil
	case "void":
		return Void, nil
	case "_":
		return Unknown, nil
	case "Bottom":
		return Bottom, nil
	case "<invalid>":
		return Invalid, nil
	case "Never":
		return NewNever(NonNullable), nil
	}

	if decl, ok := sc[t.text]; ok {
		if p.isPunct("&") {
			p.advance()
			bound, err := p.parseType(sc)
			if err != nil {
				return nil, err
			}
			return NewPromotedTypeParameter(decl, NonNullable, bound), nil
		}
		return NewTypeParameterUse(decl, NonNullable), nil
	}

	class, ok := p.resolver.Class(t.text)
	if !ok {
		return nil, fmt.Errorf("types.Parse: unknown class %q", t.text)
	}

	var args []Type
	if p.isPunct("<") {
		p.advance()
		for {
			arg, err := p.parseType(sc)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(">"); err != nil {
			return nil, err
		}
	}

	return NewInterface(class, NonNullable, args...), nil
}

func (p *parser) parseFunctionType(outer scope) (Type, error) {
	inner := scope{}
	for k, v := range outer {
		inner[k] = v
	}

	var typeParams []*TypeParameterDecl
	if p.isPunct("<") {
		p.advance()
		for {
			nameTok := p.advance()
			if nameTok.kind != tokIdent {
				return nil, fmt.Errorf("types.Parse: expected type parameter name, got %q", nameTok.text)
			}
			extends := p.advance()
			if extends.kind != tokIdent || extends.text != "extends" {
				return nil, fmt.Errorf("types.Parse: expected %q, got %q", "extends", extends.text)
			}
			decl := &TypeParameterDecl{Name: nameTok.text}
			inner[nameTok.text] = decl
			bound, err := p.parseType(inner)
			if err != nil {
				return nil, err
			}
			decl.Bound = bound
			typeParams = append(typeParams, decl)

			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(">"); err != nil {
			return nil, err
		}
	}

	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	var positional []Type
	requiredCount := -1
	var named []Named

	for !p.isPunct(")") {
		if p.isPunct("[") {
			p.advance()
			requiredCount = len(positional)
			t, err := p.parseType(inner)
			if err != nil {
				return nil, err
			}
			positional = append(positional, t)
			for p.isPunct(",") && !p.isPunct("]") {
				p.advance()
				if p.isPunct("]") {
					break
				}
				t, err := p.parseType(inner)
				if err != nil {
					return nil, err
				}
				positional = append(positional, t)
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
		} else if p.isPunct("{") {
			p.advance()
			for !p.isPunct("}") {
				required := false
				if p.peek().kind == tokIdent && p.peek().text == "required" {
					p.advance()
					required = true
				}
				nt, err := p.parseType(inner)
				if err != nil {
					return nil, err
				}
				nameTok := p.advance()
				if nameTok.kind != tokIdent {
					return nil, fmt.Errorf("types.Parse: expected parameter name, got %q", nameTok.text)
				}
				named = append(named, Named{Name: nameTok.text, Type: nt, IsRequired: required})
				if p.isPunct(",") {
					p.advance()
					continue
				}
			}
			if err := p.expectPunct("}"); err != nil {
				return nil, err
			}
		} else {
			t, err := p.parseType(inner)
			if err != nil {
				return nil, err
			}
			positional = append(positional, t)
		}

		if p.isPunct(",") {
			p.advance()
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.expectArrow(); err != nil {
		return nil, err
	}

	ret, err := p.parseType(inner)
	if err != nil {
		return nil, err
	}

	if requiredCount < 0 {
		requiredCount = len(positional)
	}

	return &FunctionType{
		TypeParameters:          typeParams,
		RequiredPositionalCount: requiredCount,
		Positional:              positional,
		Named:                   named,
		ReturnType:              ret,
		Nullability:             NonNullable,
	}, nil
}

func (p *parser) expectArrow() error {
	t := p.advance()
	if t.kind != tokArrow {
		return fmt.Errorf("types.Parse: expected %q, got %q", "->", t.text)
	}
	return nil
}

// ParseNullability parses a bare nullability suffix string ("", "?", "*")
// used by fixture files that store a type's nullability separately from
// its base spelling.
func ParseNullability(s string) (Nullability, error) {
	switch s {
	case "":
		return NonNullable, nil
	case "?":
		return Nullable, nil
	case "*":
		return Legacy, nil
	default:
		return Undetermined, fmt.Errorf("types.ParseNullability: invalid nullability suffix %q", s)
	}
}
