package token

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, SingleLineComment, HashComment, MultiLineComment, DocBlockComment:
		return true
	}
	return false
}

// IsComment reports whether k is a comment.
func (k Kind) IsComment() bool {
	return k.IsTrivia() && k != Whitespace
}

// IsKeyword reports whether k is a reserved or semi-reserved word. Keywords
// may be used as member names.
func (k Kind) IsKeyword() bool {
	return (k >= Abstract && k <= Yield) || k.IsMagicConstant() || k == HaltCompiler
}

// IsLiteral reports whether k starts a literal expression.
func (k Kind) IsLiteral() bool {
	switch k {
	case LiteralInteger, LiteralFloat, LiteralString, PartialLiteralString, True, False, Null:
		return true
	}
	return false
}

// IsMagicConstant reports whether k is a `__FOO__` constant.
func (k Kind) IsMagicConstant() bool {
	return k >= ClassConstant && k <= PropertyConstant
}

// IsCast reports whether k is a `(type)` cast.
func (k Kind) IsCast() bool {
	return k >= ArrayCast && k <= BinaryCast
}

// IsConstruct reports whether k begins a language construct expression.
func (k Kind) IsConstruct() bool {
	switch k {
	case Isset, Empty, Eval, Include, IncludeOnce, Require, RequireOnce, Print, Exit, Die:
		return true
	}
	return false
}

// IsModifier reports whether k is a member or class modifier.
func (k Kind) IsModifier() bool {
	switch k {
	case Public, Protected, Private, PublicSet, ProtectedSet, PrivateSet,
		Static, Final, Abstract, Readonly:
		return true
	}
	return false
}

// IsVisibility reports whether k is a read or write visibility modifier.
func (k Kind) IsVisibility() bool {
	switch k {
	case Public, Protected, Private, PublicSet, ProtectedSet, PrivateSet:
		return true
	}
	return false
}

// IsUnaryPrefix reports whether k may start a prefix operation.
func (k Kind) IsUnaryPrefix() bool {
	switch k {
	case Bang, Tilde, Minus, Plus, PlusPlus, MinusMinus, At, Ampersand:
		return true
	}
	return k.IsCast()
}

// IsPostfix reports whether k continues an expression as a postfix
// operation.
func (k Kind) IsPostfix() bool {
	_, ok := postfix[k]
	return ok
}

// IsInfix reports whether k is a binary operator.
func (k Kind) IsInfix() bool {
	_, ok := infix[k]
	return ok
}

// IsAssignment reports whether k is an assignment operator.
func (k Kind) IsAssignment() bool {
	return k >= Equal && k <= QuestionQuestionEqual
}

// IsIdentifierLike reports whether k is a plain, qualified or fully
// qualified name.
func (k Kind) IsIdentifierLike() bool {
	switch k {
	case Identifier, QualifiedIdentifier, FullyQualifiedIdentifier:
		return true
	}
	return false
}

// IsSoftKeyword reports whether k is a keyword that still reads as a
// name in expression position.
func (k Kind) IsSoftKeyword() bool {
	switch k {
	case Enum, From:
		return true
	}
	return false
}
