package parser

import (
	"strings"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/token"
)

// parseCompositeString parses a double-quoted string with
// interpolation, a heredoc or nowdoc, or a shell command.
func (p *Parser) parseCompositeString() (ast.Expression, error) {
	start := p.stream.ExpectAny()
	str := &ast.CompositeString{Start: start.Span}

	closing := start.Kind
	switch start.Kind {
	case token.Backtick:
		str.Type = ast.ShellExecuteString
	case token.DocumentStart:
		str.Type = ast.DocumentString
		closing = token.DocumentEnd
		label := strings.TrimRight(strings.TrimLeft(start.Value[3:], " \t"), "\r\n")
		if strings.HasPrefix(label, "'") {
			str.Nowdoc = true
		}
		str.Label = p.interner.Intern(strings.Trim(label, `'"`))
	default:
		str.Type = ast.InterpolatedString
	}

	for !p.stream.Is(closing) {
		part, err := p.parseStringPart()
		if err != nil {
			return nil, err
		}
		str.Parts = append(str.Parts, part)
	}

	end := p.stream.ExpectAny()
	str.End = end.Span
	if closing == token.DocumentEnd {
		str.Indentation = len(end.Value) - len(strings.TrimLeft(end.Value, " \t"))
	}
	return str, nil
}

func (p *Parser) parseStringPart() (ast.StringPart, error) {
	tok := p.stream.Peek()
	switch tok.Kind {
	case token.StringPart:
		p.stream.ExpectAny()
		return &ast.LiteralStringPart{Value: p.intern(tok), Loc: tok.Span}, nil

	case token.LeftBrace:
		left := p.stream.ExpectAny().Span
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		right, err := p.expectSpan(token.RightBrace)
		if err != nil {
			return nil, err
		}
		return &ast.BracedExpressionStringPart{LeftBrace: left, Expression: inner, RightBrace: right}, nil

	case token.DollarLeftBrace:
		v, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStringPart{Expression: v}, nil

	case token.Variable:
		expr, err := p.parseSimpleInterpolation()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStringPart{Expression: expr}, nil
	}
	return nil, unexpected(tok, token.StringPart, token.Variable, token.LeftBrace, token.DollarLeftBrace)
}

// parseSimpleInterpolation parses `$name`, `$name[offset]` and
// `$name->prop` inside a string.
func (p *Parser) parseSimpleInterpolation() (ast.Expression, error) {
	tok := p.stream.ExpectAny()
	var expr ast.Expression = &ast.DirectVariable{Name: p.intern(tok), Loc: tok.Span}

	switch p.stream.Peek().Kind {
	case token.LeftBracket:
		left := p.stream.ExpectAny().Span
		index, err := p.parseStringOffset()
		if err != nil {
			return nil, err
		}
		right, err := p.expectSpan(token.RightBracket)
		if err != nil {
			return nil, err
		}
		expr = &ast.ArrayAccess{Array: expr, LeftBracket: left, Index: index, RightBracket: right}

	case token.MinusGreaterThan, token.QuestionMinusGreaterThan:
		if !p.stream.IsNth(1, token.Identifier) {
			break
		}
		arrow := p.stream.ExpectAny()
		property := p.identifier(p.stream.ExpectAny())
		if arrow.Kind == token.QuestionMinusGreaterThan {
			expr = &ast.NullSafePropertyAccess{Object: expr, QuestionArrow: arrow.Span, Property: property}
		} else {
			expr = &ast.PropertyAccess{Object: expr, Arrow: arrow.Span, Property: property}
		}
	}
	return expr, nil
}

// parseStringOffset parses the offset of `$name[...]` inside a string,
// where a bare name is a string key.
func (p *Parser) parseStringOffset() (ast.Expression, error) {
	tok := p.stream.Peek()
	switch tok.Kind {
	case token.Identifier:
		p.stream.ExpectAny()
		return &ast.Literal{Type: ast.StringLiteral, Raw: p.intern(tok), Loc: tok.Span}, nil
	case token.LiteralInteger:
		return p.parseLiteral(), nil
	case token.Minus:
		p.stream.ExpectAny()
		num, err := p.stream.Expect(token.LiteralInteger)
		if err != nil {
			return nil, err
		}
		return &ast.ArithmeticPrefixOperation{
			Operator: ast.Operator{Kind: token.Minus, Loc: tok.Span},
			Value:    &ast.Literal{Type: ast.IntegerLiteral, Raw: p.intern(num), Loc: num.Span},
		}, nil
	case token.Variable:
		p.stream.ExpectAny()
		return &ast.DirectVariable{Name: p.intern(tok), Loc: tok.Span}, nil
	}
	return nil, unexpected(tok, token.Identifier, token.LiteralInteger, token.Variable)
}
