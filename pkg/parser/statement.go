package parser

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.stream.Peek()
	next := p.stream.PeekNth(1)

	switch tok.Kind {
	case token.InlineText, token.InlineShebang:
		p.stream.ExpectAny()
		return &ast.Inline{Shebang: tok.Kind == token.InlineShebang, Value: p.intern(tok), Loc: tok.Span}, nil
	case token.OpenTag, token.ShortOpenTag:
		p.stream.ExpectAny()
		return &ast.OpeningTag{Tag: tok.Kind, Loc: tok.Span}, nil
	case token.EchoTag:
		return p.parseEchoTag()
	case token.CloseTag:
		p.stream.ExpectAny()
		return &ast.ClosingTag{Loc: tok.Span}, nil
	case token.Namespace:
		return p.parseNamespace()
	case token.Use:
		return p.parseUse()
	case token.Const:
		return p.parseConstant(nil)
	case token.Function:
		if p.isFunctionDeclaration() {
			return p.parseFunction(nil)
		}
	case token.Abstract, token.Final, token.Readonly, token.Class:
		return p.parseClass(nil)
	case token.Interface:
		return p.parseInterface(nil)
	case token.Trait:
		return p.parseTrait(nil)
	case token.Enum:
		if next.Kind == token.Identifier || next.Kind.IsSoftKeyword() {
			return p.parseEnum(nil)
		}
	case token.Declare:
		return p.parseDeclare()
	case token.Goto:
		return p.parseGoto()
	case token.Identifier:
		if next.Kind == token.Colon {
			name := p.identifier(p.stream.ExpectAny())
			return &ast.Label{Name: name, Colon: p.stream.ExpectAny().Span}, nil
		}
	case token.LeftBrace:
		return p.parseBlock()
	case token.Try:
		return p.parseTry()
	case token.Foreach:
		return p.parseForeach()
	case token.For:
		return p.parseFor()
	case token.While:
		return p.parseWhile()
	case token.Do:
		return p.parseDoWhile()
	case token.Continue:
		cont := &ast.Continue{Continue: p.stream.ExpectAny().Span}
		var err error
		if cont.Level, cont.Terminator, err = p.parseOptionalValue(); err != nil {
			return nil, err
		}
		return cont, nil
	case token.Break:
		brk := &ast.Break{Break: p.stream.ExpectAny().Span}
		var err error
		if brk.Level, brk.Terminator, err = p.parseOptionalValue(); err != nil {
			return nil, err
		}
		return brk, nil
	case token.Switch:
		return p.parseSwitch()
	case token.If:
		return p.parseIf()
	case token.Return:
		ret := &ast.Return{Return: p.stream.ExpectAny().Span}
		var err error
		if ret.Value, ret.Terminator, err = p.parseOptionalValue(); err != nil {
			return nil, err
		}
		return ret, nil
	case token.Echo:
		return p.parseEcho()
	case token.Global:
		return p.parseGlobal()
	case token.Static:
		if next.Kind == token.Variable {
			return p.parseStaticVariables()
		}
	case token.HaltCompiler:
		return p.parseHaltCompiler()
	case token.Unset:
		return p.parseUnset()
	case token.Semicolon:
		p.stream.ExpectAny()
		return &ast.Noop{Loc: tok.Span}, nil
	case token.HashLeftBracket:
		return p.parseAttributedStatement()
	}

	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	terminator, err := p.parseTerminator()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr, Terminator: terminator}, nil
}

// isFunctionDeclaration tells `function name()` apart from a closure.
func (p *Parser) isFunctionDeclaration() bool {
	name := 1
	if p.stream.IsNth(1, token.Ampersand) {
		name = 2
	}
	kind := p.stream.PeekNth(name).Kind
	return kind == token.Identifier || kind.IsSoftKeyword()
}

func (p *Parser) parseAttributedStatement() (ast.Statement, error) {
	attributes, err := p.parseAttributeLists()
	if err != nil {
		return nil, err
	}

	switch tok := p.stream.Peek(); tok.Kind {
	case token.Function:
		if p.isFunctionDeclaration() {
			return p.parseFunction(attributes)
		}
	case token.Abstract, token.Final, token.Readonly, token.Class:
		return p.parseClass(attributes)
	case token.Interface:
		return p.parseInterface(attributes)
	case token.Trait:
		return p.parseTrait(attributes)
	case token.Enum:
		return p.parseEnum(attributes)
	case token.Const:
		return p.parseConstant(attributes)
	}

	lhs, err := p.parseFunctionLikeExpression(attributes)
	if err != nil {
		return nil, err
	}
	expr, err := p.climb(lhs, token.Lowest)
	if err != nil {
		return nil, err
	}
	terminator, err := p.parseTerminator()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr, Terminator: terminator}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	block := &ast.Block{}
	var err error
	if block.LeftBrace, err = p.expectSpan(token.LeftBrace); err != nil {
		return nil, err
	}
	for !p.stream.Is(token.RightBrace, token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if block.RightBrace, err = p.expectSpan(token.RightBrace); err != nil {
		return nil, err
	}
	return block, nil
}

// parseOptionalValue parses the optional operand of return, break and
// continue, then the terminator.
func (p *Parser) parseOptionalValue() (ast.Expression, *ast.Terminator, error) {
	var value ast.Expression
	if !p.stream.Is(token.Semicolon, token.CloseTag) {
		var err error
		if value, err = p.ParseExpression(); err != nil {
			return nil, nil, err
		}
	}
	terminator, err := p.parseTerminator()
	if err != nil {
		return nil, nil, err
	}
	return value, terminator, nil
}

// parseExpressionList parses one or more comma separated expressions.
func (p *Parser) parseExpressionList() ([]ast.Expression, error) {
	var values []ast.Expression
	for {
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if !p.stream.Is(token.Comma) {
			return values, nil
		}
		p.stream.ExpectAny()
	}
}

func (p *Parser) parseEchoTag() (ast.Statement, error) {
	tag := &ast.EchoTag{Tag: p.stream.ExpectAny().Span}
	var err error
	if tag.Values, err = p.parseExpressionList(); err != nil {
		return nil, err
	}
	if tag.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return tag, nil
}

func (p *Parser) parseEcho() (ast.Statement, error) {
	echo := &ast.Echo{Echo: p.stream.ExpectAny().Span}
	var err error
	if echo.Values, err = p.parseExpressionList(); err != nil {
		return nil, err
	}
	if echo.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return echo, nil
}

func (p *Parser) parseNamespace() (ast.Statement, error) {
	ns := &ast.Namespace{Namespace: p.stream.ExpectAny().Span}
	var err error
	if !p.stream.Is(token.LeftBrace) {
		if ns.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if p.stream.Is(token.LeftBrace) || ns.Name == nil {
		if ns.Block, err = p.parseBlock(); err != nil {
			return nil, err
		}
		return ns, nil
	}

	if ns.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	for !p.stream.Is(token.EOF, token.Namespace) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		ns.Statements = append(ns.Statements, stmt)
	}
	return ns, nil
}

func (p *Parser) parseUseType() *ast.UseType {
	if tok := p.stream.Peek(); tok.Kind == token.Function || tok.Kind == token.Const {
		p.stream.ExpectAny()
		return &ast.UseType{Kind: tok.Kind, Loc: tok.Span}
	}
	return nil
}

func (p *Parser) parseUse() (ast.Statement, error) {
	use := &ast.Use{Use: p.stream.ExpectAny().Span, Type: p.parseUseType()}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if p.stream.Is(token.NamespaceSeparator) {
		use.Prefix = name
		use.NamespaceSeparator = p.stream.ExpectAny().Span
		if use.LeftBrace, err = p.expectSpan(token.LeftBrace); err != nil {
			return nil, err
		}
		use.Items, err = separated(p, func() (*ast.UseItem, error) {
			var typ *ast.UseType
			if use.Type == nil {
				typ = p.parseUseType()
			}
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			return p.parseUseItem(typ, name)
		}, token.RightBrace)
		if err != nil {
			return nil, err
		}
		if use.RightBrace, err = p.expectSpan(token.RightBrace); err != nil {
			return nil, err
		}
	} else {
		for {
			item, err := p.parseUseItem(nil, name)
			if err != nil {
				return nil, err
			}
			use.Items = append(use.Items, item)
			if !p.stream.Is(token.Comma) {
				break
			}
			p.stream.ExpectAny()
			if name, err = p.parseName(); err != nil {
				return nil, err
			}
		}
	}

	if use.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return use, nil
}

func (p *Parser) parseUseItem(typ *ast.UseType, name *ast.Identifier) (*ast.UseItem, error) {
	item := &ast.UseItem{Type: typ, Name: name}
	if p.stream.Is(token.As) {
		item.As = p.stream.ExpectAny().Span
		var err error
		if item.Alias, err = p.parseLocalIdentifier(false); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (p *Parser) parseConstantItem() (*ast.ConstantItem, error) {
	item := &ast.ConstantItem{}
	var err error
	if item.Name, err = p.parseLocalIdentifier(true); err != nil {
		return nil, err
	}
	if item.Equal, err = p.expectSpan(token.Equal); err != nil {
		return nil, err
	}
	if item.Value, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	return item, nil
}

func (p *Parser) parseConstantItems() ([]*ast.ConstantItem, error) {
	var items []*ast.ConstantItem
	for {
		item, err := p.parseConstantItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.stream.Is(token.Comma) {
			return items, nil
		}
		p.stream.ExpectAny()
	}
}

func (p *Parser) parseConstant(attributes []*ast.AttributeList) (ast.Statement, error) {
	c := &ast.Constant{Attributes: attributes}
	var err error
	if c.Const, err = p.expectSpan(token.Const); err != nil {
		return nil, err
	}
	if c.Items, err = p.parseConstantItems(); err != nil {
		return nil, err
	}
	if c.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseFunction(attributes []*ast.AttributeList) (ast.Statement, error) {
	fn := &ast.Function{Attributes: attributes, Function: p.stream.ExpectAny().Span}
	fn.Ampersand = p.optional(token.Ampersand)
	var err error
	if fn.Name, err = p.parseLocalIdentifier(false); err != nil {
		return nil, err
	}
	if fn.Parameters, err = p.parseParameterList(); err != nil {
		return nil, err
	}
	if fn.ReturnType, err = p.parseOptionalReturnType(); err != nil {
		return nil, err
	}
	if fn.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) parseDeclare() (ast.Statement, error) {
	d := &ast.Declare{Declare: p.stream.ExpectAny().Span}
	var err error
	if d.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	d.Items, err = separated(p, func() (*ast.DeclareItem, error) {
		item := &ast.DeclareItem{}
		var err error
		if item.Name, err = p.parseLocalIdentifier(false); err != nil {
			return nil, err
		}
		if item.Equal, err = p.expectSpan(token.Equal); err != nil {
			return nil, err
		}
		if item.Value, err = p.ParseExpression(); err != nil {
			return nil, err
		}
		return item, nil
	}, token.RightParenthesis)
	if err != nil {
		return nil, err
	}
	if d.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}

	if p.stream.Is(token.Semicolon, token.CloseTag) {
		if d.Terminator, err = p.parseTerminator(); err != nil {
			return nil, err
		}
		return d, nil
	}
	if p.stream.Is(token.Colon) {
		d.Body, err = p.parseColonBody(token.EndDeclare)
	} else {
		d.Body, err = p.parseStatement()
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parseGoto() (ast.Statement, error) {
	g := &ast.Goto{Goto: p.stream.ExpectAny().Span}
	var err error
	if g.Label, err = p.parseLocalIdentifier(false); err != nil {
		return nil, err
	}
	if g.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Parser) parseTry() (ast.Statement, error) {
	try := &ast.Try{Try: p.stream.ExpectAny().Span}
	var err error
	if try.Block, err = p.parseBlock(); err != nil {
		return nil, err
	}

	for p.stream.Is(token.Catch) {
		clause := &ast.TryCatchClause{Catch: p.stream.ExpectAny().Span}
		if clause.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
			return nil, err
		}
		if clause.Hint, err = p.parseHint(); err != nil {
			return nil, err
		}
		if tok := p.stream.Peek(); tok.Kind == token.Variable {
			p.stream.ExpectAny()
			clause.Variable = &ast.DirectVariable{Name: p.intern(tok), Loc: tok.Span}
		}
		if clause.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
			return nil, err
		}
		if clause.Block, err = p.parseBlock(); err != nil {
			return nil, err
		}
		try.Catches = append(try.Catches, clause)
	}

	if p.stream.Is(token.Finally) {
		finally := &ast.TryFinallyClause{Finally: p.stream.ExpectAny().Span}
		if finally.Block, err = p.parseBlock(); err != nil {
			return nil, err
		}
		try.Finally = finally
	}

	if len(try.Catches) == 0 && try.Finally == nil {
		return nil, syntaxError(try.Try.Join(try.Block.Span()), "cannot use try without catch or finally")
	}
	return try, nil
}

func (p *Parser) parseForeach() (ast.Statement, error) {
	f := &ast.Foreach{Foreach: p.stream.ExpectAny().Span}
	var err error
	if f.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if f.Expression, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	if f.As, err = p.expectSpan(token.As); err != nil {
		return nil, err
	}
	if f.Value, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	if p.stream.Is(token.EqualGreaterThan) {
		f.Key = f.Value
		f.DoubleArrow = p.stream.ExpectAny().Span
		if f.Value, err = p.ParseExpression(); err != nil {
			return nil, err
		}
	}
	if f.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	if f.Body, err = p.parseLoopBody(token.EndForeach); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	f := &ast.For{For: p.stream.ExpectAny().Span}
	var err error
	if f.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if f.Initializations, err = separated(p, p.ParseExpression, token.Semicolon); err != nil {
		return nil, err
	}
	if _, err = p.expectSpan(token.Semicolon); err != nil {
		return nil, err
	}
	if f.Conditions, err = separated(p, p.ParseExpression, token.Semicolon); err != nil {
		return nil, err
	}
	if _, err = p.expectSpan(token.Semicolon); err != nil {
		return nil, err
	}
	if f.Increments, err = separated(p, p.ParseExpression, token.RightParenthesis); err != nil {
		return nil, err
	}
	if f.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	if f.Body, err = p.parseLoopBody(token.EndFor); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	w := &ast.While{While: p.stream.ExpectAny().Span}
	var err error
	if w.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if w.Condition, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	if w.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	if w.Body, err = p.parseLoopBody(token.EndWhile); err != nil {
		return nil, err
	}
	return w, nil
}

// parseLoopBody parses a statement body, or the `:` form closed by end.
func (p *Parser) parseLoopBody(end token.Kind) (ast.Statement, error) {
	if p.stream.Is(token.Colon) {
		return p.parseColonBody(end)
	}
	return p.parseStatement()
}

// parseColonBody parses `: statements`. The body stops before any of
// clauses, or consumes end and the terminator after it.
func (p *Parser) parseColonBody(end token.Kind, clauses ...token.Kind) (*ast.ColonBody, error) {
	body := &ast.ColonBody{}
	var err error
	if body.Colon, err = p.expectSpan(token.Colon); err != nil {
		return nil, err
	}
	for !p.stream.Is(end, token.EOF) && !p.stream.Is(clauses...) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body.Statements = append(body.Statements, stmt)
	}
	if p.stream.Is(clauses...) {
		return body, nil
	}
	if body.End, err = p.expectSpan(end); err != nil {
		return nil, err
	}
	if body.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseDoWhile() (ast.Statement, error) {
	d := &ast.DoWhile{Do: p.stream.ExpectAny().Span}
	var err error
	if d.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}
	if d.While, err = p.expectSpan(token.While); err != nil {
		return nil, err
	}
	if d.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if d.Condition, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	if d.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	if d.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parseSwitch() (ast.Statement, error) {
	s := &ast.Switch{Switch: p.stream.ExpectAny().Span}
	var err error
	if s.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if s.Expression, err = p.ParseExpression(); err != nil {
		return nil, err
	}
	if s.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	closing := token.RightBrace
	if p.stream.Is(token.Colon) {
		closing = token.EndSwitch
	}
	if s.LeftBrace, err = p.expectSpan(token.LeftBrace, token.Colon); err != nil {
		return nil, err
	}

	for !p.stream.Is(closing, token.EOF) {
		kw, err := p.stream.Expect(token.Case, token.Default)
		if err != nil {
			return nil, err
		}
		c := &ast.SwitchCase{Keyword: kw.Span}
		if kw.Kind == token.Case {
			if c.Expression, err = p.ParseExpression(); err != nil {
				return nil, err
			}
		}
		if c.Separator, err = p.expectSpan(token.Colon, token.Semicolon); err != nil {
			return nil, err
		}
		for !p.stream.Is(token.Case, token.Default, closing, token.EOF) {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			c.Statements = append(c.Statements, stmt)
		}
		s.Cases = append(s.Cases, c)
	}

	if s.RightBrace, err = p.expectSpan(closing); err != nil {
		return nil, err
	}
	if closing == token.EndSwitch {
		if s.Terminator, err = p.parseTerminator(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	stmt := &ast.If{If: p.stream.ExpectAny().Span}
	var err error
	if stmt.LeftParenthesis, stmt.Condition, stmt.RightParenthesis, err = p.parseCondition(); err != nil {
		return nil, err
	}
	if p.stream.Is(token.Colon) {
		return p.parseAlternativeIf(stmt)
	}
	if stmt.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}

	for p.stream.Is(token.ElseIf) {
		clause := &ast.IfElseIf{ElseIf: p.stream.ExpectAny().Span}
		if clause.LeftParenthesis, clause.Condition, clause.RightParenthesis, err = p.parseCondition(); err != nil {
			return nil, err
		}
		if clause.Body, err = p.parseStatement(); err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
	}

	if p.stream.Is(token.Else) {
		clause := &ast.IfElse{Else: p.stream.ExpectAny().Span}
		if clause.Body, err = p.parseStatement(); err != nil {
			return nil, err
		}
		stmt.Else = clause
	}
	return stmt, nil
}

// parseAlternativeIf parses the clauses of `if (cond): ... endif;` after
// the condition. Every clause uses the `:` form.
func (p *Parser) parseAlternativeIf(stmt *ast.If) (ast.Statement, error) {
	body, err := p.parseColonBody(token.EndIf, token.ElseIf, token.Else)
	if err != nil {
		return nil, err
	}
	stmt.Body = body

	for !body.Closes() && p.stream.Is(token.ElseIf) {
		clause := &ast.IfElseIf{ElseIf: p.stream.ExpectAny().Span}
		if clause.LeftParenthesis, clause.Condition, clause.RightParenthesis, err = p.parseCondition(); err != nil {
			return nil, err
		}
		if body, err = p.parseColonBody(token.EndIf, token.ElseIf, token.Else); err != nil {
			return nil, err
		}
		clause.Body = body
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
	}

	if !body.Closes() {
		clause := &ast.IfElse{}
		if clause.Else, err = p.expectSpan(token.Else); err != nil {
			return nil, err
		}
		if clause.Body, err = p.parseColonBody(token.EndIf); err != nil {
			return nil, err
		}
		stmt.Else = clause
	}
	return stmt, nil
}

// parseCondition parses a parenthesized condition.
func (p *Parser) parseCondition() (span.Span, ast.Expression, span.Span, error) {
	left, err := p.expectSpan(token.LeftParenthesis)
	if err != nil {
		return span.Span{}, nil, span.Span{}, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return span.Span{}, nil, span.Span{}, err
	}
	right, err := p.expectSpan(token.RightParenthesis)
	if err != nil {
		return span.Span{}, nil, span.Span{}, err
	}
	return left, cond, right, nil
}

func (p *Parser) parseGlobal() (ast.Statement, error) {
	g := &ast.Global{Global: p.stream.ExpectAny().Span}
	for {
		v, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		g.Variables = append(g.Variables, v)
		if !p.stream.Is(token.Comma) {
			break
		}
		p.stream.ExpectAny()
	}
	var err error
	if g.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Parser) parseStaticVariables() (ast.Statement, error) {
	s := &ast.StaticVariables{Static: p.stream.ExpectAny().Span}
	for {
		tok, err := p.stream.Expect(token.Variable)
		if err != nil {
			return nil, err
		}
		item := &ast.StaticItem{Variable: &ast.DirectVariable{Name: p.intern(tok), Loc: tok.Span}}
		if p.stream.Is(token.Equal) {
			item.Equal = p.stream.ExpectAny().Span
			if item.Value, err = p.ParseExpression(); err != nil {
				return nil, err
			}
		}
		s.Items = append(s.Items, item)
		if !p.stream.Is(token.Comma) {
			break
		}
		p.stream.ExpectAny()
	}
	var err error
	if s.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseHaltCompiler() (ast.Statement, error) {
	h := &ast.HaltCompiler{HaltCompiler: p.stream.ExpectAny().Span}
	var err error
	if h.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if h.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	if h.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return h, nil
}

func (p *Parser) parseUnset() (ast.Statement, error) {
	u := &ast.Unset{Unset: p.stream.ExpectAny().Span}
	var err error
	if u.LeftParenthesis, err = p.expectSpan(token.LeftParenthesis); err != nil {
		return nil, err
	}
	if u.Values, err = separated(p, p.ParseExpression, token.RightParenthesis); err != nil {
		return nil, err
	}
	if u.RightParenthesis, err = p.expectSpan(token.RightParenthesis); err != nil {
		return nil, err
	}
	if u.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return u, nil
}
