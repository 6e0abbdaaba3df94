package parser

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/token"
)

func (p *Parser) parseModifiers() []ast.Modifier {
	var modifiers []ast.Modifier
	for {
		tok := p.stream.Peek()
		if !tok.Kind.IsModifier() {
			return modifiers
		}
		p.stream.ExpectAny()
		modifiers = append(modifiers, ast.Modifier{Kind: tok.Kind, Loc: tok.Span})
	}
}

func (p *Parser) parseNameList() ([]*ast.Identifier, error) {
	var names []*ast.Identifier
	for {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.stream.Is(token.Comma) {
			return names, nil
		}
		p.stream.ExpectAny()
	}
}

func (p *Parser) parseExtends() (*ast.Extends, error) {
	if !p.stream.Is(token.Extends) {
		return nil, nil
	}
	extends := &ast.Extends{Extends: p.stream.ExpectAny().Span}
	var err error
	if extends.Types, err = p.parseNameList(); err != nil {
		return nil, err
	}
	return extends, nil
}

func (p *Parser) parseImplements() (*ast.Implements, error) {
	if !p.stream.Is(token.Implements) {
		return nil, nil
	}
	implements := &ast.Implements{Implements: p.stream.ExpectAny().Span}
	var err error
	if implements.Types, err = p.parseNameList(); err != nil {
		return nil, err
	}
	return implements, nil
}

func (p *Parser) parseClass(attributes []*ast.AttributeList) (ast.Statement, error) {
	class := &ast.Class{Attributes: attributes, Modifiers: p.parseModifiers()}
	var err error
	if class.Class, err = p.expectSpan(token.Class); err != nil {
		return nil, err
	}
	if class.Name, err = p.parseLocalIdentifier(false); err != nil {
		return nil, err
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

func (p *Parser) parseInterface(attributes []*ast.AttributeList) (ast.Statement, error) {
	iface := &ast.Interface{Attributes: attributes, Interface: p.stream.ExpectAny().Span}
	var err error
	if iface.Name, err = p.parseLocalIdentifier(false); err != nil {
		return nil, err
	}
	if iface.Extends, err = p.parseExtends(); err != nil {
		return nil, err
	}
	if iface.Body, err = p.parseClassLikeBody(); err != nil {
		return nil, err
	}
	return iface, nil
}

func (p *Parser) parseTrait(attributes []*ast.AttributeList) (ast.Statement, error) {
	trait := &ast.Trait{Attributes: attributes, Trait: p.stream.ExpectAny().Span}
	var err error
	if trait.Name, err = p.parseLocalIdentifier(false); err != nil {
		return nil, err
	}
	if trait.Body, err = p.parseClassLikeBody(); err != nil {
		return nil, err
	}
	return trait, nil
}

func (p *Parser) parseEnum(attributes []*ast.AttributeList) (ast.Statement, error) {
	enum := &ast.Enum{Attributes: attributes, Enum: p.stream.ExpectAny().Span}
	var err error
	if enum.Name, err = p.parseLocalIdentifier(false); err != nil {
		return nil, err
	}
	if p.stream.Is(token.Colon) {
		backing := &ast.EnumBackingType{Colon: p.stream.ExpectAny().Span}
		if backing.Hint, err = p.parseHint(); err != nil {
			return nil, err
		}
		enum.BackingType = backing
	}
	if enum.Implements, err = p.parseImplements(); err != nil {
		return nil, err
	}
	if enum.Body, err = p.parseClassLikeBody(); err != nil {
		return nil, err
	}
	return enum, nil
}

func (p *Parser) parseClassLikeBody() (*ast.ClassLikeBody, error) {
	body := &ast.ClassLikeBody{}
	var err error
	if body.LeftBrace, err = p.expectSpan(token.LeftBrace); err != nil {
		return nil, err
	}
	for !p.stream.Is(token.RightBrace, token.EOF) {
		member, err := p.parseClassLikeMember()
		if err != nil {
			return nil, err
		}
		body.Members = append(body.Members, member)
	}
	if body.RightBrace, err = p.expectSpan(token.RightBrace); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseClassLikeMember() (ast.ClassLikeMember, error) {
	if p.stream.Is(token.Use) {
		return p.parseTraitUse()
	}

	attributes, err := p.parseAttributeLists()
	if err != nil {
		return nil, err
	}
	modifiers := p.parseModifiers()

	switch p.stream.Peek().Kind {
	case token.Const:
		return p.parseClassLikeConstant(attributes, modifiers)
	case token.Function:
		return p.parseMethod(attributes, modifiers)
	case token.Case:
		return p.parseEnumCase(attributes)
	}
	return p.parseProperty(attributes, modifiers)
}

func (p *Parser) parseClassLikeConstant(attributes []*ast.AttributeList, modifiers []ast.Modifier) (ast.ClassLikeMember, error) {
	c := &ast.ClassLikeConstant{Attributes: attributes, Modifiers: modifiers, Const: p.stream.ExpectAny().Span}
	var err error
	// A typed constant has a hint before its name: `const int FOO = 1`.
	if !p.stream.IsNth(1, token.Equal) {
		if c.Hint, err = p.parseHint(); err != nil {
			return nil, err
		}
	}
	if c.Items, err = p.parseConstantItems(); err != nil {
		return nil, err
	}
	if c.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseMethod(attributes []*ast.AttributeList, modifiers []ast.Modifier) (ast.ClassLikeMember, error) {
	m := &ast.Method{Attributes: attributes, Modifiers: modifiers, Function: p.stream.ExpectAny().Span}
	m.Ampersand = p.optional(token.Ampersand)
	var err error
	if m.Name, err = p.parseLocalIdentifier(true); err != nil {
		return nil, err
	}
	if m.Parameters, err = p.parseParameterList(); err != nil {
		return nil, err
	}
	if m.ReturnType, err = p.parseOptionalReturnType(); err != nil {
		return nil, err
	}
	if p.stream.Is(token.Semicolon) {
		m.Semicolon = p.stream.ExpectAny().Span
		return m, nil
	}
	if m.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) parseEnumCase(attributes []*ast.AttributeList) (ast.ClassLikeMember, error) {
	c := &ast.EnumCase{Attributes: attributes, Case: p.stream.ExpectAny().Span}
	var err error
	if c.Name, err = p.parseLocalIdentifier(true); err != nil {
		return nil, err
	}
	if p.stream.Is(token.Equal) {
		c.Equal = p.stream.ExpectAny().Span
		if c.Value, err = p.ParseExpression(); err != nil {
			return nil, err
		}
	}
	if c.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseProperty(attributes []*ast.AttributeList, modifiers []ast.Modifier) (ast.ClassLikeMember, error) {
	prop := &ast.Property{Attributes: attributes, Modifiers: modifiers, Var: p.optional(token.Var)}
	var err error
	if !p.stream.Is(token.Variable) {
		if prop.Hint, err = p.parseHint(); err != nil {
			return nil, err
		}
	}

	for {
		tok, err := p.stream.Expect(token.Variable)
		if err != nil {
			return nil, err
		}
		item := &ast.PropertyItem{Variable: &ast.DirectVariable{Name: p.intern(tok), Loc: tok.Span}}
		if p.stream.Is(token.Equal) {
			item.Equal = p.stream.ExpectAny().Span
			if item.Value, err = p.ParseExpression(); err != nil {
				return nil, err
			}
		}
		prop.Items = append(prop.Items, item)
		if !p.stream.Is(token.Comma) {
			break
		}
		p.stream.ExpectAny()
	}

	if p.stream.Is(token.LeftBrace) {
		if prop.Hooks, err = p.parsePropertyHookList(); err != nil {
			return nil, err
		}
		return prop, nil
	}
	if prop.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return prop, nil
}

func (p *Parser) parsePropertyHookList() (*ast.PropertyHookList, error) {
	list := &ast.PropertyHookList{LeftBrace: p.stream.ExpectAny().Span}
	for !p.stream.Is(token.RightBrace, token.EOF) {
		hook, err := p.parsePropertyHook()
		if err != nil {
			return nil, err
		}
		list.Hooks = append(list.Hooks, hook)
	}
	var err error
	if list.RightBrace, err = p.expectSpan(token.RightBrace); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parsePropertyHook() (*ast.PropertyHook, error) {
	attributes, err := p.parseAttributeLists()
	if err != nil {
		return nil, err
	}
	hook := &ast.PropertyHook{Attributes: attributes, Modifiers: p.parseModifiers()}
	hook.Ampersand = p.optional(token.Ampersand)
	if hook.Name, err = p.parseLocalIdentifier(false); err != nil {
		return nil, err
	}
	if p.stream.Is(token.LeftParenthesis) {
		if hook.Parameters, err = p.parseParameterList(); err != nil {
			return nil, err
		}
	}

	switch p.stream.Peek().Kind {
	case token.Semicolon:
		hook.Semicolon = p.optional(token.Semicolon)
	case token.LeftBrace:
		if hook.Block, err = p.parseBlock(); err != nil {
			return nil, err
		}
	default:
		if hook.DoubleArrow, err = p.expectSpan(token.EqualGreaterThan); err != nil {
			return nil, err
		}
		if hook.Expression, err = p.ParseExpression(); err != nil {
			return nil, err
		}
		if hook.Terminator, err = p.parseTerminator(); err != nil {
			return nil, err
		}
	}
	return hook, nil
}

func (p *Parser) parseTraitUse() (ast.ClassLikeMember, error) {
	use := &ast.TraitUse{Use: p.stream.ExpectAny().Span}
	var err error
	if use.Traits, err = p.parseNameList(); err != nil {
		return nil, err
	}
	if !p.stream.Is(token.LeftBrace) {
		if use.Terminator, err = p.parseTerminator(); err != nil {
			return nil, err
		}
		return use, nil
	}

	use.LeftBrace = p.stream.ExpectAny().Span
	for !p.stream.Is(token.RightBrace, token.EOF) {
		adaptation, err := p.parseTraitUseAdaptation()
		if err != nil {
			return nil, err
		}
		use.Adaptations = append(use.Adaptations, adaptation)
	}
	if use.RightBrace, err = p.expectSpan(token.RightBrace); err != nil {
		return nil, err
	}
	return use, nil
}

func (p *Parser) parseTraitUseAdaptation() (*ast.TraitUseAdaptation, error) {
	a := &ast.TraitUseAdaptation{}
	var err error
	if p.stream.IsNth(1, token.DoubleColon) {
		if a.Trait, err = p.parseName(); err != nil {
			return nil, err
		}
		a.DoubleColon = p.stream.ExpectAny().Span
	}
	if a.Method, err = p.parseLocalIdentifier(true); err != nil {
		return nil, err
	}

	switch tok := p.stream.Peek(); tok.Kind {
	case token.Insteadof:
		a.Insteadof = p.stream.ExpectAny().Span
		if a.Excluded, err = p.parseNameList(); err != nil {
			return nil, err
		}
	case token.As:
		a.As = p.stream.ExpectAny().Span
		if next := p.stream.Peek(); next.Kind.IsVisibility() || next.Kind == token.Final {
			p.stream.ExpectAny()
			a.Visibility = &ast.Modifier{Kind: next.Kind, Loc: next.Span}
		}
		if !p.stream.Is(token.Semicolon, token.CloseTag) {
			if a.Alias, err = p.parseLocalIdentifier(true); err != nil {
				return nil, err
			}
		}
	default:
		return nil, unexpected(tok, token.Insteadof, token.As)
	}

	if a.Terminator, err = p.parseTerminator(); err != nil {
		return nil, err
	}
	return a, nil
}
