package parser

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

// ParseExpression parses an expression at the lowest precedence.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.ParseExpressionWithPrecedence(token.Lowest)
}

// ParseExpressionWithPrecedence parses an expression whose operators all
// bind at least as tightly as min.
func (p *Parser) ParseExpressionWithPrecedence(min token.Precedence) (ast.Expression, error) {
	lhs, err := p.parseLHS()
	if err != nil {
		return nil, err
	}
	return p.climb(lhs, min)
}

// climb extends lhs with postfix and infix operations until the next
// token binds looser than min.
func (p *Parser) climb(lhs ast.Expression, min token.Precedence) (ast.Expression, error) {
	var err error
	for {
		tok := p.stream.Peek()
		if tok.Kind == token.Semicolon || tok.Kind == token.CloseTag {
			return lhs, nil
		}

		if precedence, ok := token.PostfixPrecedence(tok.Kind); ok {
			if precedence < min {
				return lhs, nil
			}
			if lhs, err = p.parsePostfix(lhs, min); err != nil {
				return nil, err
			}
			continue
		}

		if precedence, ok := token.InfixPrecedence(tok.Kind); ok {
			if precedence < min || (precedence == min && precedence.Associativity() == token.Left) {
				return lhs, nil
			}
			if lhs, err = p.parseInfix(lhs, precedence); err != nil {
				return nil, err
			}
			continue
		}

		return lhs, nil
	}
}

func (p *Parser) parseLHS() (ast.Expression, error) {
	tok := p.stream.Peek()
	next := p.stream.PeekNth(1)

	switch {
	case tok.Kind.IsLiteral():
		return p.parseLiteral(), nil
	case tok.Kind.IsUnaryPrefix():
		return p.parseUnaryPrefix()
	case tok.Kind == token.HashLeftBracket:
		attributes, err := p.parseAttributeLists()
		if err != nil {
			return nil, err
		}
		return p.parseFunctionLikeExpression(attributes)
	case tok.Kind == token.Function, tok.Kind == token.Fn:
		return p.parseFunctionLikeExpression(nil)
	case tok.Kind == token.Static && (next.Kind == token.Function || next.Kind == token.Fn):
		return p.parseFunctionLikeExpression(nil)
	case tok.Kind == token.Static:
		return &ast.Static{Loc: p.stream.ExpectAny().Span}, nil
	case tok.Kind == token.Self:
		return &ast.Self{Loc: p.stream.ExpectAny().Span}, nil
	case tok.Kind == token.Parent:
		return &ast.Parent{Loc: p.stream.ExpectAny().Span}, nil
	case tok.Kind.IsConstruct():
		return p.parseConstruct()
	case tok.Kind == token.List && next.Kind == token.LeftParenthesis:
		return p.parseList()
	case tok.Kind == token.New:
		return p.parseNew()
	case tok.Kind == token.Throw:
		throw := p.stream.ExpectAny().Span
		exception, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Throw{Throw: throw, Exception: exception}, nil
	case tok.Kind == token.Yield:
		return p.parseYield()
	case tok.Kind == token.Clone:
		clone := p.stream.ExpectAny().Span
		object, err := p.ParseExpressionWithPrecedence(token.ClonePrecedence)
		if err != nil {
			return nil, err
		}
		return &ast.Clone{Clone: clone, Object: object}, nil
	case tok.Kind == token.DoubleQuote, tok.Kind == token.DocumentStart, tok.Kind == token.Backtick:
		return p.parseCompositeString()
	case tok.Kind.IsIdentifierLike(), tok.Kind.IsSoftKeyword():
		return p.identifier(p.stream.ExpectAny()), nil
	case tok.Kind == token.LeftParenthesis:
		left := p.stream.ExpectAny().Span
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		right, err := p.expectSpan(token.RightParenthesis)
		if err != nil {
			return nil, err
		}
		return &ast.Parenthesized{LeftParenthesis: left, Expression: inner, RightParenthesis: right}, nil
	case tok.Kind == token.Match && next.Kind == token.LeftParenthesis:
		return p.parseMatch()
	case tok.Kind == token.Array && next.Kind == token.LeftParenthesis:
		return p.parseLegacyArray()
	case tok.Kind == token.LeftBracket:
		return p.parseArray()
	case tok.Kind.IsMagicConstant():
		p.stream.ExpectAny()
		return &ast.MagicConstant{Token: tok.Kind, Value: p.intern(tok), Loc: tok.Span}, nil
	case tok.Kind == token.Variable, tok.Kind == token.Dollar, tok.Kind == token.DollarLeftBrace:
		return p.parseVariable()
	}

	return nil, unexpected(tok)
}

func (p *Parser) parseLiteral() *ast.Literal {
	tok := p.stream.ExpectAny()
	var typ ast.LiteralType
	switch tok.Kind {
	case token.LiteralInteger:
		typ = ast.IntegerLiteral
	case token.LiteralFloat:
		typ = ast.FloatLiteral
	case token.True:
		typ = ast.TrueLiteral
	case token.False:
		typ = ast.FalseLiteral
	case token.Null:
		typ = ast.NullLiteral
	default:
		typ = ast.StringLiteral
	}
	return &ast.Literal{Type: typ, Raw: p.intern(tok), Loc: tok.Span}
}

func (p *Parser) parseUnaryPrefix() (ast.Expression, error) {
	tok := p.stream.ExpectAny()
	operand, err := p.ParseExpressionWithPrecedence(token.PrefixPrecedence(tok.Kind))
	if err != nil {
		return nil, err
	}
	op := ast.Operator{Kind: tok.Kind, Loc: tok.Span}

	switch {
	case tok.Kind == token.Bang:
		return &ast.LogicalPrefixOperation{Operator: op, Value: operand}, nil
	case tok.Kind == token.Tilde:
		return &ast.BitwisePrefixOperation{Operator: op, Value: operand}, nil
	case tok.Kind.IsCast():
		return &ast.CastOperation{Operator: op, Value: operand}, nil
	case tok.Kind == token.At, tok.Kind == token.Ampersand:
		return &ast.UnaryPrefixOperation{Operator: op, Value: operand}, nil
	}
	return &ast.ArithmeticPrefixOperation{Operator: op, Value: operand}, nil
}

func (p *Parser) parseVariable() (ast.Variable, error) {
	tok := p.stream.Peek()
	switch tok.Kind {
	case token.Variable:
		p.stream.ExpectAny()
		return &ast.DirectVariable{Name: p.intern(tok), Loc: tok.Span}, nil
	case token.DollarLeftBrace:
		p.stream.ExpectAny()
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		right, err := p.expectSpan(token.RightBrace)
		if err != nil {
			return nil, err
		}
		return &ast.IndirectVariable{DollarLeftBrace: tok.Span, Expression: inner, RightBrace: right}, nil
	case token.Dollar:
		p.stream.ExpectAny()
		inner, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		return &ast.NestedVariable{Dollar: tok.Span, Variable: inner}, nil
	}
	return nil, unexpected(tok, token.Variable, token.DollarLeftBrace, token.Dollar)
}

func (p *Parser) parseConstruct() (ast.Expression, error) {
	tok := p.stream.ExpectAny()
	construct := &ast.Construct{
		Keyword: ast.Keyword{Kind: tok.Kind, Value: p.intern(tok), Loc: tok.Span},
	}

	var err error
	switch tok.Kind {
	case token.Isset, token.Empty, token.Eval:
		construct.Arguments, err = p.parseArgumentList()
	case token.Exit, token.Die:
		if p.stream.Is(token.LeftParenthesis) {
			construct.Arguments, err = p.parseArgumentList()
		}
	case token.Print:
		construct.Value, err = p.ParseExpressionWithPrecedence(token.PrintPrecedence)
	default:
		construct.Value, err = p.ParseExpression()
	}
	if err != nil {
		return nil, err
	}
	return construct, nil
}

func (p *Parser) parseNew() (ast.Expression, error) {
	newSpan := p.stream.ExpectAny().Span

	switch tok := p.stream.Peek(); {
	case tok.Kind == token.Class, tok.Kind == token.HashLeftBracket, tok.Kind.IsModifier() && tok.Kind != token.Static:
		return p.parseAnonymousClass(newSpan)
	}

	var class ast.Expression
	var err error
	if p.stream.Is(token.Static) {
		class = &ast.Static{Loc: p.stream.ExpectAny().Span}
	} else if class, err = p.ParseExpressionWithPrecedence(token.NewPrecedence); err != nil {
		return nil, err
	}

	instantiation := &ast.Instantiation{New: newSpan, Class: class}
	if p.stream.Is(token.LeftParenthesis) {
		if instantiation.Arguments, err = p.parseArgumentList(); err != nil {
			return nil, err
		}
	}
	return instantiation, nil
}

func (p *Parser) parseAnonymousClass(newSpan span.Span) (ast.Expression, error) {
	attributes, err := p.parseAttributeLists()
	if err != nil {
		return nil, err
	}
	class := &ast.AnonymousClass{New: newSpan, Attributes: attributes, Modifiers: p.parseModifiers()}
	if class.Class, err = p.expectSpan(token.Class); err != nil {
		return nil, err
	}
	if p.stream.Is(token.LeftParenthesis) {
		if class.Arguments, err = p.parseArgumentList(); err != nil {
			return nil, err
		}
	}
	if class.Extends, err = p.parseExtends(); err != nil {
		return nil, err
	}
	if class.Implements, err = p.parseImplements(); err != nil {
		return nil, err
	}
	if class.Body, err = p.parseClassLikeBody(); err != nil {
		return nil, err
	}
	return class, nil
}

// yieldEnds lists the tokens after which `yield` has no value.
var yieldEnds = []token.Kind{
	token.Semicolon, token.CloseTag, token.RightParenthesis, token.RightBracket,
	token.Comma, token.EOF,
}

func (p *Parser) parseYield() (ast.Expression, error) {
	y := &ast.Yield{Yield: p.stream.ExpectAny().Span}
	var err error

	if p.stream.Is(token.From) {
		y.Type = ast.YieldFrom
		y.From = p.stream.ExpectAny().Span
		if y.Value, err = p.ParseExpressionWithPrecedence(token.YieldFromPrecedence); err != nil {
			return nil, err
		}
		return y, nil
	}

	if p.stream.Is(yieldEnds...) {
		return y, nil
	}

	if y.Value, err = p.ParseExpressionWithPrecedence(token.YieldPrecedence); err != nil {
		return nil, err
	}
	if p.stream.Is(token.EqualGreaterThan) {
		y.Type = ast.YieldPair
		y.Key = y.Value
		y.DoubleArrow = p.stream.ExpectAny().Span
		if y.Value, err = p.ParseExpressionWithPrecedence(token.YieldPrecedence); err != nil {
			return nil, err
		}
	}
	return y, nil
}

// parseFunctionLikeExpression parses a closure or an arrow function,
// optionally `static`, after any attributes.
func (p *Parser) parseFunctionLikeExpression(attributes []*ast.AttributeList) (ast.Expression, error) {
	static := p.optional(token.Static)

	switch p.stream.Peek().Kind {
	case token.Function:
		closure := &ast.Closure{Attributes: attributes, Static: static, Function: p.stream.ExpectAny().Span}
		closure.Ampersand = p.optional(token.Ampersand)
		var err error
		if closure.Parameters, err = p.parseParameterList(); err != nil {
			return nil, err
		}
		if p.stream.Is(token.Use) {
			if closure.Use, err = p.parseClosureUseClause(); err != nil {
				return nil, err
			}
		}
		if closure.ReturnType, err = p.parseOptionalReturnType(); err != nil {
			return nil, err
		}
		if closure.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}
		return closure, nil

	case token.Fn:
		arrow := &ast.ArrowFunction{Attributes: attributes, Static: static, Fn: p.stream.ExpectAny().Span}
		arrow.Ampersand = p.optional(token.Ampersand)
		var err error
		if arrow.Parameters, err = p.parseParameterList(); err != nil {
			return nil, err
		}
		if arrow.ReturnType, err = p.parseOptionalReturnType(); err != nil {
			return nil, err
		}
		if arrow.DoubleArrow, err = p.expectSpan(token.EqualGreaterThan); err != nil {
			return nil, err
		}
		if arrow.Expression, err = p.ParseExpression(); err != nil {
			return nil, err
		}
		return arrow, nil
	}

	return nil, unexpected(p.stream.Peek(), token.Function, token.Fn)
}

func (p *Parser) parseClosureUseClause() (*ast.ClosureUseClause, error) {
	clause := &ast.ClosureUseClause{Use: p.stream.ExpectAny().Span}
	var err error
	if clause.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	clause.Variables, err = separated(p, func() (*ast.ClosureUseVariable, error) {
		v := &ast.ClosureUseVariable{Ampersand: p.optional(token.Ampersand)}
		tok, err := p.stream.Expect(token.Variable)
		if err != nil {
			return nil, err
		}
		v.Variable = &ast.DirectVariable{Name: p.intern(tok), Loc: tok.Span}
		return v, nil
	}, token.RightParenthesis)
	if err != nil {
		return nil, err
	}
	if clause.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	return clause, nil
}

func (p *Parser) parseMatch() (ast.Expression, error) {
	m := &ast.Match{Match: p.stream.ExpectAny().Span}
	var err error
	if m.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if m.Subject, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	if m.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	if m.LeftBrace, err = p.expectSpan(token.LeftBrace); err != nil {
		return nil, err
	}
	if m.Arms, err = separated(p, p.parseMatchArm, token.RightBrace); err != nil {
		return nil, err
	}
	if m.RightBrace, err = p.expectSpan(token.RightBrace); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) parseMatchArm() (ast.MatchArm, error) {
	if p.stream.Is(token.Default) {
		arm := &ast.MatchDefaultArm{Default: p.stream.ExpectAny().Span}
		var err error
		if arm.DoubleArrow, err = p.expectSpan(token.EqualGreaterThan); err != nil {
			return nil, err
		}
		if arm.Expression, err = p.ParseExpression(); err != nil {
			return nil, err
		}
		return arm, nil
	}

	conditions, err := separated(p, p.ParseExpression, token.EqualGreaterThan)
	if err != nil {
		return nil, err
	}
	if len(conditions) == 0 {
		return nil, unexpected(p.stream.Peek())
	}
	arm := &ast.MatchExpressionArm{Conditions: conditions}
	if arm.DoubleArrow, err = p.expectSpan(token.EqualGreaterThan); err != nil {
		return nil, err
	}
	if arm.Expression, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	return arm, nil
}

func (p *Parser) parseArray() (ast.Expression, error) {
	array := &ast.Array{LeftBracket: p.stream.ExpectAny().Span}
	var err error
	if array.Elements, err = p.parseArrayElements(token.RightBracket); err != nil {
		return nil, err
	}
	if array.RightBracket, err = p.expectSpan(token.RightBracket); err != nil {
		return nil, err
	}
	return array, nil
}

func (p *Parser) parseLegacyArray() (ast.Expression, error) {
	array := &ast.LegacyArray{Array: p.stream.ExpectAny().Span}
	var err error
	if array.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if array.Elements, err = p.parseArrayElements(token.RightParenthesis); err != nil {
		return nil, err
	}
	if array.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	return array, nil
}

func (p *Parser) parseList() (ast.Expression, error) {
	list := &ast.List{List: p.stream.ExpectAny().Span}
	var err error
	if list.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if list.Elements, err = p.parseArrayElements(token.RightParenthesis); err != nil {
		return nil, err
	}
	if list.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	return list, nil
}

// parseArrayElements parses elements up to closing. A comma with no
// element before it is a missing element.
func (p *Parser) parseArrayElements(closing token.Kind) ([]ast.ArrayElement, error) {
	var elements []ast.ArrayElement
	for !p.stream.Is(closing) {
		if p.stream.Is(token.Comma) {
			comma := p.stream.ExpectAny()
			elements = append(elements, &ast.MissingArrayElement{Loc: span.At(comma.Span.Start)})
			continue
		}

		element, err := p.parseArrayElement()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)

		if !p.stream.Is(token.Comma) {
			break
		}
		p.stream.ExpectAny()
	}
	return elements, nil
}

func (p *Parser) parseArrayElement() (ast.ArrayElement, error) {
	if p.stream.Is(token.DotDotDot) {
		ellipsis := p.stream.ExpectAny().Span
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.VariadicArrayElement{Ellipsis: ellipsis, Value: value}, nil
	}

	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.stream.Is(token.EqualGreaterThan) {
		return &ast.ValueArrayElement{Value: value}, nil
	}
	arrow := p.stream.ExpectAny().Span
	target, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.KeyValueArrayElement{Key: value, DoubleArrow: arrow, Value: target}, nil
}

func (p *Parser) parseArgumentList() (*ast.ArgumentList, error) {
	list := &ast.ArgumentList{}
	var err error
	if list.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if list.Arguments, err = separated(p, p.parseArgument, token.RightParenthesis); err != nil {
		return nil, err
	}
	if list.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseArgument() (*ast.Argument, error) {
	arg := &ast.Argument{}
	tok := p.stream.Peek()
	if (tok.Kind == token.Identifier || tok.Kind.IsKeyword()) && p.stream.IsNth(1, token.Colon) {
		p.stream.ExpectAny()
		arg.Name = p.identifier(tok)
		arg.Colon = p.stream.ExpectAny().Span
	}
	arg.Ellipsis = p.optional(token.DotDotDot)

	var err error
	if arg.Value, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	return arg, nil
}

func (p *Parser) parsePostfix(lhs ast.Expression, min token.Precedence) (ast.Expression, error) {
	tok := p.stream.Peek()

	switch tok.Kind {
	case token.LeftParenthesis:
		if p.stream.IsNth(1, token.DotDotDot) && p.stream.IsNth(2, token.RightParenthesis) {
			return &ast.FunctionClosureCreation{
				Function:         lhs,
				LeftParenthesis:  p.stream.ExpectAny().Span,
				Ellipsis:         p.stream.ExpectAny().Span,
				RightParenthesis: p.stream.ExpectAny().Span,
			}, nil
		}
		args, err := p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Function: lhs, Arguments: args}, nil

	case token.LeftBracket:
		left := p.stream.ExpectAny().Span
		if p.stream.Is(token.RightBracket) {
			return &ast.ArrayAppend{Array: lhs, LeftBracket: left, RightBracket: p.stream.ExpectAny().Span}, nil
		}
		index, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		right, err := p.expectSpan(token.RightBracket)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayAccess{Array: lhs, LeftBracket: left, Index: index, RightBracket: right}, nil

	case token.DoubleColon:
		doubleColon := p.stream.ExpectAny().Span
		selector, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		if token.CallDim > min && p.stream.Is(token.LeftParenthesis) {
			if p.isClosureCreation() {
				return &ast.StaticMethodClosureCreation{
					Class:            lhs,
					DoubleColon:      doubleColon,
					Method:           selector,
					LeftParenthesis:  p.stream.ExpectAny().Span,
					Ellipsis:         p.stream.ExpectAny().Span,
					RightParenthesis: p.stream.ExpectAny().Span,
				}, nil
			}
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			return &ast.StaticMethodCall{Class: lhs, DoubleColon: doubleColon, Method: selector, Arguments: args}, nil
		}
		if variable, ok := selector.(ast.Variable); ok {
			return &ast.StaticPropertyAccess{Class: lhs, DoubleColon: doubleColon, Property: variable}, nil
		}
		return &ast.ClassConstantAccess{Class: lhs, DoubleColon: doubleColon, Constant: selector}, nil

	case token.MinusGreaterThan:
		arrow := p.stream.ExpectAny().Span
		selector, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		if token.CallDim > min && p.stream.Is(token.LeftParenthesis) {
			if p.isClosureCreation() {
				return &ast.MethodClosureCreation{
					Object:           lhs,
					Arrow:            arrow,
					Method:           selector,
					LeftParenthesis:  p.stream.ExpectAny().Span,
					Ellipsis:         p.stream.ExpectAny().Span,
					RightParenthesis: p.stream.ExpectAny().Span,
				}, nil
			}
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			return &ast.MethodCall{Object: lhs, Arrow: arrow, Method: selector, Arguments: args}, nil
		}
		return &ast.PropertyAccess{Object: lhs, Arrow: arrow, Property: selector}, nil

	case token.QuestionMinusGreaterThan:
		arrow := p.stream.ExpectAny().Span
		selector, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		if token.CallDim > min && p.stream.Is(token.LeftParenthesis) {
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			return &ast.NullSafeMethodCall{Object: lhs, QuestionArrow: arrow, Method: selector, Arguments: args}, nil
		}
		return &ast.NullSafePropertyAccess{Object: lhs, QuestionArrow: arrow, Property: selector}, nil

	case token.PlusPlus, token.MinusMinus:
		p.stream.ExpectAny()
		return &ast.ArithmeticPostfixOperation{Value: lhs, Operator: ast.Operator{Kind: tok.Kind, Loc: tok.Span}}, nil
	}

	return nil, unexpected(tok)
}

// isClosureCreation reports whether the stream is at `(...)`.
func (p *Parser) isClosureCreation() bool {
	return p.stream.Is(token.LeftParenthesis) &&
		p.stream.IsNth(1, token.DotDotDot) &&
		p.stream.IsNth(2, token.RightParenthesis)
}

// parseSelector parses a member name after `->`, `?->` or `::`.
func (p *Parser) parseSelector() (ast.Selector, error) {
	tok := p.stream.Peek()
	switch {
	case tok.Kind == token.Identifier, tok.Kind.IsKeyword():
		p.stream.ExpectAny()
		return p.identifier(tok), nil
	case tok.Kind == token.Variable, tok.Kind == token.Dollar, tok.Kind == token.DollarLeftBrace:
		v, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		return v.(ast.Selector), nil
	case tok.Kind == token.LeftBrace:
		left := p.stream.ExpectAny().Span
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		right, err := p.expectSpan(token.RightBrace)
		if err != nil {
			return nil, err
		}
		return &ast.BracedSelector{LeftBrace: left, Expression: inner, RightBrace: right}, nil
	}
	return nil, unexpected(tok, token.Identifier, token.Variable, token.LeftBrace)
}

func (p *Parser) parseInfix(lhs ast.Expression, precedence token.Precedence) (ast.Expression, error) {
	tok := p.stream.ExpectAny()
	op := ast.Operator{Kind: tok.Kind, Loc: tok.Span}

	if tok.Kind == token.Question {
		return p.parseTernary(lhs, tok.Span)
	}

	rhs, err := p.ParseExpressionWithPrecedence(precedence)
	if err != nil {
		return nil, err
	}

	if tok.Kind.IsAssignment() {
		return assignment(lhs, op, rhs), nil
	}

	switch tok.Kind {
	case token.Plus, token.Minus, token.Asterisk, token.Slash, token.Percent, token.AsteriskAsterisk:
		return &ast.ArithmeticInfixOperation{LHS: lhs, Operator: op, RHS: rhs}, nil
	case token.Ampersand, token.Pipe, token.Caret, token.LeftShift, token.RightShift:
		return &ast.BitwiseInfixOperation{LHS: lhs, Operator: op, RHS: rhs}, nil
	case token.AmpersandAmpersand, token.PipePipe, token.And, token.Or, token.Xor:
		return &ast.LogicalInfixOperation{LHS: lhs, Operator: op, RHS: rhs}, nil
	case token.Dot:
		return &ast.ConcatOperation{LHS: lhs, Operator: op, RHS: rhs}, nil
	case token.QuestionQuestion:
		return &ast.CoalesceOperation{LHS: lhs, Operator: op, RHS: rhs}, nil
	case token.Instanceof:
		return &ast.InstanceofOperation{LHS: lhs, Operator: op, RHS: rhs}, nil
	}
	return &ast.ComparisonOperation{LHS: lhs, Operator: op, RHS: rhs}, nil
}

func (p *Parser) parseTernary(condition ast.Expression, question span.Span) (ast.Expression, error) {
	ternary := &ast.TernaryOperation{Condition: condition, Question: question}
	var err error
	if !p.stream.Is(token.Colon) {
		if ternary.Then, err = p.ParseExpression(); err != nil {
			return nil, err
		}
	}
	if ternary.Colon, err = p.expectSpan(token.Colon); err != nil {
		return nil, err
	}
	if ternary.Else, err = p.ParseExpressionWithPrecedence(token.ElvisOrConditional); err != nil {
		return nil, err
	}
	return ternary, nil
}

// assignment builds `lhs op rhs`. Only a variable-like expression can be
// assigned to, so when lhs is an operation the assignment is re-rooted
// onto its rightmost operand: `$a == $b = $c` is `$a == ($b = $c)` and
// `!$a = f()` is `!($a = f())`. Child spans are kept.
func assignment(lhs ast.Expression, op ast.Operator, rhs ast.Expression) ast.Expression {
	switch l := lhs.(type) {
	case *ast.ArithmeticInfixOperation:
		return &ast.ArithmeticInfixOperation{LHS: l.LHS, Operator: l.Operator, RHS: assignment(l.RHS, op, rhs)}
	case *ast.BitwiseInfixOperation:
		return &ast.BitwiseInfixOperation{LHS: l.LHS, Operator: l.Operator, RHS: assignment(l.RHS, op, rhs)}
	case *ast.ComparisonOperation:
		return &ast.ComparisonOperation{LHS: l.LHS, Operator: l.Operator, RHS: assignment(l.RHS, op, rhs)}
	case *ast.LogicalInfixOperation:
		return &ast.LogicalInfixOperation{LHS: l.LHS, Operator: l.Operator, RHS: assignment(l.RHS, op, rhs)}
	case *ast.ConcatOperation:
		return &ast.ConcatOperation{LHS: l.LHS, Operator: l.Operator, RHS: assignment(l.RHS, op, rhs)}
	case *ast.CoalesceOperation:
		return &ast.CoalesceOperation{LHS: l.LHS, Operator: l.Operator, RHS: assignment(l.RHS, op, rhs)}
	case *ast.LogicalPrefixOperation:
		return &ast.LogicalPrefixOperation{Operator: l.Operator, Value: assignment(l.Value, op, rhs)}
	case *ast.BitwisePrefixOperation:
		return &ast.BitwisePrefixOperation{Operator: l.Operator, Value: assignment(l.Value, op, rhs)}
	case *ast.CastOperation:
		return &ast.CastOperation{Operator: l.Operator, Value: assignment(l.Value, op, rhs)}
	case *ast.ArithmeticPrefixOperation:
		if l.Operator.Kind == token.Plus || l.Operator.Kind == token.Minus {
			return &ast.ArithmeticPrefixOperation{Operator: l.Operator, Value: assignment(l.Value, op, rhs)}
		}
	case *ast.UnaryPrefixOperation:
		if l.Operator.Kind == token.At {
			return &ast.UnaryPrefixOperation{Operator: l.Operator, Value: assignment(l.Value, op, rhs)}
		}
	}
	return &ast.AssignmentOperation{LHS: lhs, Operator: op, RHS: rhs}
}
