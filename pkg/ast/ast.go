package ast

import (
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

// Node is implemented by every syntax tree node. The set of nodes is
// closed: only this package can add implementations.
type Node interface {
	// Span covers the node's own tokens and every child.
	Span() span.Span
	Kind() NodeKind
	node()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expression()
}

// Statement is a top-level or block-level statement.
type Statement interface {
	Node
	statement()
}

// Hint is a type declaration on a parameter, property, constant or
// return position.
type Hint interface {
	Node
	hint()
}

// Variable is a direct, indirect or nested variable. Every variable may
// also name a member.
type Variable interface {
	Expression
	Selector
	variable()
}

// Selector names a member after `->`, `?->` or `::`.
type Selector interface {
	Node
	selector()
}

// ClassLikeMember is a member of a class, interface, trait or enum body.
type ClassLikeMember interface {
	Node
	member()
}

// ArrayElement is an element of an array, legacy array or list.
type ArrayElement interface {
	Node
	arrayElement()
}

// StringPart is a piece of an interpolated string.
type StringPart interface {
	Node
	stringPart()
}

// MatchArm is an arm of a match expression.
type MatchArm interface {
	Node
	matchArm()
}

// Program is the root of a parsed source file.
type Program struct {
	Name       string
	Statements []Statement
	Trivia     []Trivia
}

func (p *Program) Span() span.Span {
	if len(p.Statements) == 0 {
		return span.Span{}
	}
	return p.Statements[0].Span().Join(p.Statements[len(p.Statements)-1].Span())
}

func (p *Program) Kind() NodeKind { return KindProgram }
func (p *Program) node()          {}

// Comments returns the comment trivia in source order.
func (p *Program) Comments() []Trivia {
	var comments []Trivia
	for _, t := range p.Trivia {
		if t.Kind.IsComment() {
			comments = append(comments, t)
		}
	}
	return comments
}

// Trivia is whitespace or a comment, kept outside the tree.
type Trivia struct {
	Kind  token.Kind
	Value string
	Span  span.Span
}

// IsBlock reports whether the trivia is a `/* */` or `/** */` comment.
func (t Trivia) IsBlock() bool {
	return t.Kind == token.MultiLineComment || t.Kind == token.DocBlockComment
}

// Operator is an operator token inside an operation node.
type Operator struct {
	Kind token.Kind
	Loc  span.Span
}

// Modifier is a class or member modifier keyword.
type Modifier struct {
	Kind token.Kind
	Loc  span.Span
}

// Keyword is a keyword token whose spelling the formatter normalises.
type Keyword struct {
	Kind  token.Kind
	Value interner.ID
	Loc   span.Span
}

// Identifier is a local, qualified or fully qualified name. It doubles
// as an expression (a constant reference), a member selector and a
// class name hint.
type Identifier struct {
	Form  IdentifierForm
	Value interner.ID
	Loc   span.Span
}

// IdentifierForm distinguishes `Foo`, `Foo\Bar` and `\Foo\Bar`.
type IdentifierForm uint8

const (
	LocalIdentifier IdentifierForm = iota
	QualifiedIdentifier
	FullyQualifiedIdentifier
)

func (i *Identifier) Span() span.Span { return i.Loc }
func (i *Identifier) Kind() NodeKind  { return KindIdentifier }
func (i *Identifier) node()           {}
func (i *Identifier) expression()     {}
func (i *Identifier) selector()       {}
func (i *Identifier) hint()           {}

// Terminator ends a statement.
type Terminator struct {
	Form TerminatorForm
	// Loc covers `;`, `?>`, or `?>...<?php` for a tag pair.
	Loc span.Span
}

// TerminatorForm distinguishes the ways a statement can end.
type TerminatorForm uint8

const (
	TerminatedBySemicolon TerminatorForm = iota
	TerminatedByClosingTag
	TerminatedByTagPair
)

func (t *Terminator) Span() span.Span { return t.Loc }
func (t *Terminator) Kind() NodeKind  { return KindTerminator }
func (t *Terminator) node()           {}

// Attribute is a single `Name(args)` inside an attribute list.
type Attribute struct {
	Name      *Identifier
	Arguments *ArgumentList
}

func (a *Attribute) Span() span.Span {
	if a.Arguments != nil {
		return a.Name.Span().Join(a.Arguments.Span())
	}
	return a.Name.Span()
}

func (a *Attribute) Kind() NodeKind { return KindAttribute }
func (a *Attribute) node()          {}

// AttributeList is a `#[...]` group.
type AttributeList struct {
	HashLeftBracket span.Span
	Attributes      []*Attribute
	RightBracket    span.Span
}

func (a *AttributeList) Span() span.Span { return a.HashLeftBracket.Join(a.RightBracket) }
func (a *AttributeList) Kind() NodeKind  { return KindAttributeList }
func (a *AttributeList) node()           {}

// startOf returns the earliest of the attribute lists, the modifiers and
// fallback.
func startOf(attributes []*AttributeList, modifiers []Modifier, fallback span.Span) span.Span {
	if len(attributes) > 0 {
		return attributes[0].Span()
	}
	if len(modifiers) > 0 {
		return modifiers[0].Loc
	}
	return fallback
}
