package token

import (
	"fmt"
	"strings"

	"github.com/carthage-software/fennec/pkg/span"
)

// Kind classifies a token.
type Kind uint16

const (
	EOF Kind = iota

	// Inline HTML and tags.
	InlineText
	InlineShebang
	OpenTag
	EchoTag
	ShortOpenTag
	CloseTag

	// Trivia.
	Whitespace
	SingleLineComment
	HashComment
	MultiLineComment
	DocBlockComment

	// Names and variables.
	Variable
	Identifier
	QualifiedIdentifier
	FullyQualifiedIdentifier
	NamespaceSeparator

	// Literals.
	LiteralInteger
	LiteralFloat
	LiteralString
	StringPart
	PartialLiteralString

	// String delimiters.
	DoubleQuote
	Backtick
	DocumentStart
	DocumentEnd

	// Casts.
	ArrayCast
	BoolCast
	BooleanCast
	DoubleCast
	RealCast
	FloatCast
	IntCast
	IntegerCast
	ObjectCast
	UnsetCast
	StringCast
	BinaryCast

	// Magic constants.
	ClassConstant
	DirConstant
	FileConstant
	FunctionConstant
	LineConstant
	MethodConstant
	NamespaceConstant
	TraitConstant
	PropertyConstant
	HaltCompiler

	// Keywords.
	Abstract
	And
	Array
	As
	Break
	Callable
	Case
	Catch
	Class
	Clone
	Const
	Continue
	Declare
	Default
	Die
	Do
	Echo
	Else
	ElseIf
	Empty
	EndDeclare
	EndFor
	EndForeach
	EndIf
	EndSwitch
	EndWhile
	Enum
	Eval
	Exit
	Extends
	False
	Final
	Finally
	Fn
	For
	Foreach
	From
	Function
	Global
	Goto
	If
	Implements
	Include
	IncludeOnce
	Instanceof
	Insteadof
	Interface
	Isset
	List
	Match
	Namespace
	New
	Null
	Or
	Parent
	Print
	Private
	PrivateSet
	Protected
	ProtectedSet
	Public
	PublicSet
	Readonly
	Require
	RequireOnce
	Return
	Self
	Static
	Switch
	Throw
	Trait
	True
	Try
	Unset
	Use
	Var
	While
	Xor
	Yield

	// Punctuation.
	Semicolon
	Comma
	LeftParenthesis
	RightParenthesis
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
	HashLeftBracket
	Colon
	DoubleColon
	Question
	QuestionMinusGreaterThan
	MinusGreaterThan
	EqualGreaterThan
	DotDotDot
	Dollar
	DollarLeftBrace
	At

	// Assignment operators.
	Equal
	PlusEqual
	MinusEqual
	AsteriskEqual
	SlashEqual
	PercentEqual
	AsteriskAsteriskEqual
	DotEqual
	AmpersandEqual
	PipeEqual
	CaretEqual
	LeftShiftEqual
	RightShiftEqual
	QuestionQuestionEqual

	// Operators.
	Plus
	Minus
	Asterisk
	Slash
	Percent
	AsteriskAsterisk
	Dot
	Ampersand
	Pipe
	Caret
	Tilde
	LeftShift
	RightShift
	Bang
	AmpersandAmpersand
	PipePipe
	QuestionQuestion
	EqualEqual
	BangEqual
	LessThanGreaterThan
	EqualEqualEqual
	BangEqualEqual
	LessThan
	GreaterThan
	LessThanEqual
	GreaterThanEqual
	LessThanEqualGreaterThan
	PlusPlus
	MinusMinus

	kindCount
)

var kindNames = [kindCount]string{
	EOF:                      "end of file",
	InlineText:               "inline text",
	InlineShebang:            "shebang",
	OpenTag:                  "`<?php`",
	EchoTag:                  "`<?=`",
	ShortOpenTag:             "`<?`",
	CloseTag:                 "`?>`",
	Whitespace:               "whitespace",
	SingleLineComment:        "comment",
	HashComment:              "comment",
	MultiLineComment:         "comment",
	DocBlockComment:          "docblock",
	Variable:                 "variable",
	Identifier:               "identifier",
	QualifiedIdentifier:      "qualified identifier",
	FullyQualifiedIdentifier: "fully qualified identifier",
	NamespaceSeparator:       "`\\`",
	LiteralInteger:           "integer literal",
	LiteralFloat:             "float literal",
	LiteralString:            "string literal",
	StringPart:               "string part",
	PartialLiteralString:     "unterminated string literal",
	DoubleQuote:              "`\"`",
	Backtick:                 "`` ` ``",
	DocumentStart:            "`<<<`",
	DocumentEnd:              "document end label",
	Semicolon:                "`;`",
	Comma:                    "`,`",
	LeftParenthesis:          "`(`",
	RightParenthesis:         "`)`",
	LeftBracket:              "`[`",
	RightBracket:             "`]`",
	LeftBrace:                "`{`",
	RightBrace:               "`}`",
	HashLeftBracket:          "`#[`",
	Colon:                    "`:`",
	DoubleColon:              "`::`",
	Question:                 "`?`",
	QuestionMinusGreaterThan: "`?->`",
	MinusGreaterThan:         "`->`",
	EqualGreaterThan:         "`=>`",
	DotDotDot:                "`...`",
	Dollar:                   "`$`",
	DollarLeftBrace:          "`${`",
	At:                       "`@`",
}

// kindTexts holds the canonical spelling of operators and keywords.
var kindTexts [kindCount]string

func init() {
	for text, kind := range operators {
		kindNames[kind] = "`" + text + "`"
		kindTexts[kind] = text
	}
	for text, kind := range keywords {
		kindNames[kind] = "`" + text + "`"
		kindTexts[kind] = text
	}
	for text, kind := range setVisibility {
		kindNames[kind] = "`" + text + "`"
		kindTexts[kind] = text
	}
	for text, kind := range casts {
		if kindNames[kind] == "" {
			kindNames[kind] = "`(" + text + ")`"
		}
	}
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// Text returns the canonical lowercase spelling of an operator or
// keyword, or "" for kinds without a fixed spelling.
func (k Kind) Text() string {
	if k < kindCount {
		return kindTexts[k]
	}
	return ""
}

// Token is a single lexeme with its source span. Value holds the exact
// source text.
type Token struct {
	Kind  Kind
	Value string
	Span  span.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @ %s", t.Kind, t.Value, t.Span)
}

// operators maps punctuation and operator text to kinds.
var operators = map[string]Kind{
	";": Semicolon, ",": Comma, "(": LeftParenthesis, ")": RightParenthesis,
	"[": LeftBracket, "]": RightBracket, "{": LeftBrace, "}": RightBrace,
	"#[": HashLeftBracket, ":": Colon, "::": DoubleColon, "?": Question,
	"?->": QuestionMinusGreaterThan, "->": MinusGreaterThan, "=>": EqualGreaterThan,
	"...": DotDotDot, "$": Dollar, "${": DollarLeftBrace, "@": At,
	"=": Equal, "+=": PlusEqual, "-=": MinusEqual, "*=": AsteriskEqual,
	"/=": SlashEqual, "%=": PercentEqual, "**=": AsteriskAsteriskEqual,
	".=": DotEqual, "&=": AmpersandEqual, "|=": PipeEqual, "^=": CaretEqual,
	"<<=": LeftShiftEqual, ">>=": RightShiftEqual, "??=": QuestionQuestionEqual,
	"+": Plus, "-": Minus, "*": Asterisk, "/": Slash, "%": Percent,
	"**": AsteriskAsterisk, ".": Dot, "&": Ampersand, "|": Pipe, "^": Caret,
	"~": Tilde, "<<": LeftShift, ">>": RightShift, "!": Bang,
	"&&": AmpersandAmpersand, "||": PipePipe, "??": QuestionQuestion,
	"==": EqualEqual, "!=": BangEqual, "<>": LessThanGreaterThan,
	"===": EqualEqualEqual, "!==": BangEqualEqual, "<": LessThan, ">": GreaterThan,
	"<=": LessThanEqual, ">=": GreaterThanEqual, "<=>": LessThanEqualGreaterThan,
	"++": PlusPlus, "--": MinusMinus,
}

// Operator looks up punctuation or an operator by its exact text.
func Operator(text string) (Kind, bool) {
	k, ok := operators[text]
	return k, ok
}

// keywords maps lowercase keyword text to kinds.
var keywords = map[string]Kind{
	"abstract": Abstract, "and": And, "array": Array, "as": As, "break": Break,
	"callable": Callable, "case": Case, "catch": Catch, "class": Class,
	"clone": Clone, "const": Const, "continue": Continue, "declare": Declare,
	"default": Default, "die": Die, "do": Do, "echo": Echo, "else": Else,
	"elseif": ElseIf, "empty": Empty, "enddeclare": EndDeclare, "endfor": EndFor,
	"endforeach": EndForeach, "endif": EndIf, "endswitch": EndSwitch,
	"endwhile": EndWhile, "enum": Enum, "eval": Eval, "exit": Exit,
	"extends": Extends, "false": False, "final": Final, "finally": Finally,
	"fn": Fn, "for": For, "foreach": Foreach, "from": From, "function": Function,
	"global": Global, "goto": Goto, "if": If, "implements": Implements,
	"include": Include, "include_once": IncludeOnce, "instanceof": Instanceof,
	"insteadof": Insteadof, "interface": Interface, "isset": Isset, "list": List,
	"match": Match, "namespace": Namespace, "new": New, "null": Null, "or": Or,
	"parent": Parent, "print": Print, "private": Private, "protected": Protected,
	"public": Public, "readonly": Readonly, "require": Require,
	"require_once": RequireOnce, "return": Return, "self": Self, "static": Static,
	"switch": Switch, "throw": Throw, "trait": Trait, "true": True, "try": Try,
	"unset": Unset, "use": Use, "var": Var, "while": While, "xor": Xor,
	"yield": Yield,
	"__class__": ClassConstant, "__dir__": DirConstant, "__file__": FileConstant,
	"__function__": FunctionConstant, "__line__": LineConstant,
	"__method__": MethodConstant, "__namespace__": NamespaceConstant,
	"__trait__": TraitConstant, "__property__": PropertyConstant,
	"__halt_compiler": HaltCompiler,
}

// asymmetric visibility modifiers, matched as a whole including `(set)`.
var setVisibility = map[string]Kind{
	"private(set)":   PrivateSet,
	"protected(set)": ProtectedSet,
	"public(set)":    PublicSet,
}

// Keyword looks up a keyword case-insensitively.
func Keyword(text string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(text)]
	return k, ok
}

// SetVisibility looks up an asymmetric visibility modifier such as
// `private(set)`, case-insensitively.
func SetVisibility(text string) (Kind, bool) {
	k, ok := setVisibility[strings.ToLower(text)]
	return k, ok
}

// casts maps the lowercase type name inside a cast to its kind.
var casts = map[string]Kind{
	"array": ArrayCast, "bool": BoolCast, "boolean": BooleanCast,
	"double": DoubleCast, "real": RealCast, "float": FloatCast, "int": IntCast,
	"integer": IntegerCast, "object": ObjectCast, "unset": UnsetCast,
	"string": StringCast, "binary": BinaryCast,
}

// Cast looks up the cast kind for a type name, case-insensitively.
func Cast(name string) (Kind, bool) {
	k, ok := casts[strings.ToLower(name)]
	return k, ok
}
