package parser

import (
	"strings"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/token"
)

func (p *Parser) parseAttributeLists() ([]*ast.AttributeList, error) {
	var lists []*ast.AttributeList
	for p.stream.Is(token.HashLeftBracket) {
		list := &ast.AttributeList{HashLeftBracket: p.stream.ExpectAny().Span}
		var err error
		list.Attributes, err = separated(p, func() (*ast.Attribute, error) {
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			attribute := &ast.Attribute{Name: name}
			if p.stream.Is(token.LeftParenthesis) {
				if attribute.Arguments, err = p.parseArgumentList(); err != nil {
					return nil, err
				}
			}
			return attribute, nil
		}, token.RightBracket)
		if err != nil {
			return nil, err
		}
		if list.RightBracket, err = p.expectSpan(token.RightBracket); err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

func (p *Parser) parseParameterList() (*ast.ParameterList, error) {
	list := &ast.ParameterList{}
	var err error
	if list.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if list.Parameters, err = separated(p, p.parseParameter, token.RightParenthesis); err != nil {
		return nil, err
	}
	if list.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	attributes, err := p.parseAttributeLists()
	if err != nil {
		return nil, err
	}
	param := &ast.Parameter{Attributes: attributes, Modifiers: p.parseModifiers()}

	if !p.stream.Is(token.Variable, token.Ampersand, token.DotDotDot) {
		if param.Hint, err = p.parseHint(); err != nil {
			return nil, err
		}
	}
	param.Ampersand = p.optional(token.Ampersand)
	param.Ellipsis = p.optional(token.DotDotDot)

	tok, err := p.stream.Expect(token.Variable)
	if err != nil {
		return nil, err
	}
	param.Variable = &ast.DirectVariable{Name: p.intern(tok), Loc: tok.Span}

	if p.stream.Is(token.Equal) {
		param.Equal = p.stream.ExpectAny().Span
		if param.Default, err = p.ParseExpression(); err != nil {
			return nil, err
		}
	}
	if p.stream.Is(token.LeftBrace) {
		if param.Hooks, err = p.parsePropertyHookList(); err != nil {
			return nil, err
		}
	}
	return param, nil
}

func (p *Parser) parseOptionalReturnType() (*ast.FunctionLikeReturnTypeHint, error) {
	if !p.stream.Is(token.Colon) {
		return nil, nil
	}
	ret := &ast.FunctionLikeReturnTypeHint{Colon: p.stream.ExpectAny().Span}
	var err error
	if ret.Hint, err = p.parseHint(); err != nil {
		return nil, err
	}
	return ret, nil
}

// builtinHints are the names that form a keyword hint rather than a
// class reference.
var builtinHints = map[string]bool{
	"int": true, "float": true, "string": true, "bool": true, "mixed": true,
	"void": true, "never": true, "iterable": true, "object": true,
}

// parseHint parses a type declaration. Union and intersection members
// nest to the right.
func (p *Parser) parseHint() (ast.Hint, error) {
	var hint ast.Hint
	tok := p.stream.Peek()

	switch {
	case tok.Kind == token.Question:
		p.stream.ExpectAny()
		inner, err := p.parseHint()
		if err != nil {
			return nil, err
		}
		return &ast.NullableHint{Question: tok.Span, Hint: inner}, nil

	case tok.Kind == token.LeftParenthesis:
		p.stream.ExpectAny()
		inner, err := p.parseHint()
		if err != nil {
			return nil, err
		}
		right, err := p.expectSpan(token.RightParenthesis)
		if err != nil {
			return nil, err
		}
		hint = &ast.ParenthesizedHint{LeftParenthesis: tok.Span, Hint: inner, RightParenthesis: right}

	case tok.Kind == token.Identifier && builtinHints[strings.ToLower(tok.Value)],
		tok.Kind == token.Array, tok.Kind == token.Callable, tok.Kind == token.Static,
		tok.Kind == token.Self, tok.Kind == token.Parent, tok.Kind == token.Null,
		tok.Kind == token.False, tok.Kind == token.True:
		p.stream.ExpectAny()
		hint = &ast.KeywordHint{Value: p.intern(tok), Loc: tok.Span}

	default:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		hint = name
	}

	switch {
	case p.stream.Is(token.Pipe):
		pipe := p.stream.ExpectAny().Span
		right, err := p.parseHint()
		if err != nil {
			return nil, err
		}
		return &ast.UnionHint{Left: hint, Pipe: pipe, Right: right}, nil

	case p.stream.Is(token.Ampersand) && !p.stream.IsNth(1, token.Variable, token.DotDotDot, token.Ampersand):
		ampersand := p.stream.ExpectAny().Span
		right, err := p.parseHint()
		if err != nil {
			return nil, err
		}
		return &ast.IntersectionHint{Left: hint, Ampersand: ampersand, Right: right}, nil
	}
	return hint, nil
}
