package parser

import (
	"slices"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/lexer"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

// Stream is a cursor over the significant tokens of a source file. Trivia
// is split off while the stream is built.
type Stream struct {
	tokens []token.Token
	pos    int
}

// NewStream lexes source into a stream and its trivia.
func NewStream(source string) (*Stream, []ast.Trivia, error) {
	l := lexer.New(source)
	var tokens []token.Token
	var trivia []ast.Trivia
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, nil, err
		}
		if tok.Kind.IsTrivia() {
			trivia = append(trivia, ast.Trivia{Kind: tok.Kind, Value: tok.Value, Span: tok.Span})
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return &Stream{tokens: tokens}, trivia, nil
		}
	}
}

// Peek returns the current token without consuming it.
func (s *Stream) Peek() token.Token {
	return s.PeekNth(0)
}

// PeekNth returns the token n positions ahead. Past the end it returns
// the EOF token.
func (s *Stream) PeekNth(n int) token.Token {
	if s.pos+n < len(s.tokens) {
		return s.tokens[s.pos+n]
	}
	return s.tokens[len(s.tokens)-1]
}

// Is reports whether the current token is one of kinds.
func (s *Stream) Is(kinds ...token.Kind) bool {
	return slices.Contains(kinds, s.Peek().Kind)
}

// IsNth reports whether the token n positions ahead is one of kinds.
func (s *Stream) IsNth(n int, kinds ...token.Kind) bool {
	return slices.Contains(kinds, s.PeekNth(n).Kind)
}

// ExpectAny consumes the current token unconditionally. EOF is never
// consumed.
func (s *Stream) ExpectAny() token.Token {
	tok := s.Peek()
	if tok.Kind != token.EOF {
		s.pos++
	}
	return tok
}

// Expect consumes the current token if it is one of kinds.
func (s *Stream) Expect(kinds ...token.Kind) (token.Token, error) {
	tok := s.Peek()
	if !slices.Contains(kinds, tok.Kind) {
		return tok, unexpected(tok, kinds...)
	}
	s.pos++
	return tok, nil
}

// Parser builds a Program from a token stream.
type Parser struct {
	stream   *Stream
	interner *interner.Interner
	source   string
}

// New creates a parser over source.
func New(in *interner.Interner, source string) (*Parser, []ast.Trivia, error) {
	stream, trivia, err := NewStream(source)
	if err != nil {
		return nil, nil, err
	}
	return &Parser{stream: stream, interner: in, source: source}, trivia, nil
}

// Parse parses a whole source file. The first lexical or syntax error
// aborts parsing.
func Parse(in *interner.Interner, name, source string) (*ast.Program, error) {
	p, trivia, err := New(in, source)
	if err != nil {
		return nil, err
	}
	program := &ast.Program{Name: name, Trivia: trivia}
	for !p.stream.Is(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

// ParseExpression parses source holding a single expression, without
// PHP tags. It is used by tooling that evaluates snippets.
func ParseExpression(in *interner.Interner, source string) (ast.Expression, error) {
	p, _, err := New(in, "<?php "+source)
	if err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.OpenTag); err != nil {
		return nil, err
	}
	expr, err := p.ParseExpressionWithPrecedence(token.Lowest)
	if err != nil {
		return nil, err
	}
	if p.stream.Is(token.Semicolon) {
		p.stream.ExpectAny()
	}
	if tok := p.stream.Peek(); tok.Kind != token.EOF {
		return nil, unexpected(tok, token.EOF)
	}
	return expr, nil
}

func (p *Parser) intern(tok token.Token) interner.ID {
	return p.interner.Intern(tok.Value)
}

func (p *Parser) expectSpan(kinds ...token.Kind) (span.Span, error) {
	tok, err := p.stream.Expect(kinds...)
	return tok.Span, err
}

// optional consumes the current token if it is kind.
func (p *Parser) optional(kind token.Kind) *span.Span {
	if !p.stream.Is(kind) {
		return nil
	}
	s := p.stream.ExpectAny().Span
	return &s
}

func (p *Parser) identifier(tok token.Token) *ast.Identifier {
	form := ast.LocalIdentifier
	switch tok.Kind {
	case token.QualifiedIdentifier:
		form = ast.QualifiedIdentifier
	case token.FullyQualifiedIdentifier:
		form = ast.FullyQualifiedIdentifier
	}
	return &ast.Identifier{Form: form, Value: p.intern(tok), Loc: tok.Span}
}

// parseLocalIdentifier accepts a plain name. Keywords are accepted when
// allowKeywords is set, as they are for member names.
func (p *Parser) parseLocalIdentifier(allowKeywords bool) (*ast.Identifier, error) {
	tok := p.stream.Peek()
	if tok.Kind == token.Identifier || (allowKeywords && tok.Kind.IsKeyword()) || tok.Kind.IsSoftKeyword() {
		p.stream.ExpectAny()
		return p.identifier(tok), nil
	}
	return nil, unexpected(tok, token.Identifier)
}

// parseName accepts a local, qualified or fully qualified name.
func (p *Parser) parseName() (*ast.Identifier, error) {
	tok := p.stream.Peek()
	if tok.Kind.IsIdentifierLike() || tok.Kind.IsSoftKeyword() {
		p.stream.ExpectAny()
		return p.identifier(tok), nil
	}
	return nil, unexpected(tok, token.Identifier, token.QualifiedIdentifier, token.FullyQualifiedIdentifier)
}

// parseTerminator accepts `;`, `?>`, or `?>` immediately followed by an
// opening tag.
func (p *Parser) parseTerminator() (*ast.Terminator, error) {
	tok, err := p.stream.Expect(token.Semicolon, token.CloseTag)
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.Semicolon {
		return &ast.Terminator{Form: ast.TerminatedBySemicolon, Loc: tok.Span}, nil
	}
	if p.stream.Is(token.OpenTag, token.ShortOpenTag) {
		open := p.stream.ExpectAny()
		return &ast.Terminator{Form: ast.TerminatedByTagPair, Loc: tok.Span.Join(open.Span)}, nil
	}
	return &ast.Terminator{Form: ast.TerminatedByClosingTag, Loc: tok.Span}, nil
}

// separated parses items separated by commas until one of closing is
// reached, allowing a trailing comma. The closing token is not consumed.
func separated[T any](p *Parser, parse func() (T, error), closing ...token.Kind) ([]T, error) {
	var items []T
	for !p.stream.Is(closing...) {
		item, err := parse()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.stream.Is(token.Comma) {
			break
		}
		p.stream.ExpectAny()
	}
	return items, nil
}
