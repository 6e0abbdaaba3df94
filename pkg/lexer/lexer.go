package lexer

import (
	"fmt"
	"strings"

	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

// Error is a lexical error with the offending span.
type Error struct {
	Message string
	Span    span.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Span)
}

type modeKind uint8

const (
	modeInline modeKind = iota
	modeScript
	modeDoubleQuoted
	modeShellExecute
	modeHeredoc
	modeNowdoc
	modeLookingForProperty
	modeVarOffset
	modeHalted
)

type frame struct {
	kind modeKind
	// braces counts unclosed `{` in a script frame.
	braces int
	// interpolating marks a script frame opened by `{$` or `${` inside a
	// string; its closing `}` returns to the string.
	interpolating bool
	// label is the heredoc or nowdoc closing label.
	label string
}

// Lexer splits PHP source into tokens, trivia included.
type Lexer struct {
	source string
	pos    int
	stack  []frame

	// halting tracks `__halt_compiler();`: 1 once the keyword is seen.
	halting bool
}

// New creates a lexer positioned at the start of source, in inline mode.
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		stack:  []frame{{kind: modeInline}},
	}
}

// Tokenize lexes the whole source.
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		if tok.Kind == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or an EOF token once the input is
// exhausted.
func (l *Lexer) Next() (token.Token, error) {
	if l.pos >= len(l.source) {
		switch l.top().kind {
		case modeDoubleQuoted, modeShellExecute, modeHeredoc, modeNowdoc:
			return token.Token{}, l.errorf(l.pos, l.pos, "unterminated string")
		}
		return token.Token{Kind: token.EOF, Span: span.At(span.Position(l.pos))}, nil
	}

	switch l.top().kind {
	case modeInline:
		return l.lexInline()
	case modeScript:
		tok, err := l.lexScript()
		if err == nil && l.halting && (tok.Kind == token.Semicolon || tok.Kind == token.CloseTag) {
			l.halting = false
			l.stack = []frame{{kind: modeHalted}}
		}
		return tok, err
	case modeDoubleQuoted:
		return l.lexInterpolated('"')
	case modeShellExecute:
		return l.lexInterpolated('`')
	case modeHeredoc:
		return l.lexHeredoc()
	case modeNowdoc:
		return l.lexNowdoc()
	case modeLookingForProperty:
		return l.lexLookingForProperty()
	case modeVarOffset:
		return l.lexVarOffset()
	case modeHalted:
		return l.emit(token.InlineText, len(l.source)), nil
	}
	panic("lexer: unknown mode")
}

func (l *Lexer) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *Lexer) push(f frame) {
	l.stack = append(l.stack, f)
}

func (l *Lexer) pop() {
	if len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

// emit produces a token from the current position to end and advances.
func (l *Lexer) emit(kind token.Kind, end int) token.Token {
	tok := token.Token{
		Kind:  kind,
		Value: l.source[l.pos:end],
		Span:  span.New(span.Position(l.pos), span.Position(end)),
	}
	l.pos = end
	return tok
}

func (l *Lexer) errorf(start, end int, format string, args ...any) error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Span:    span.New(span.Position(start), span.Position(end)),
	}
}

func (l *Lexer) at(i int) byte {
	if i < len(l.source) {
		return l.source[i]
	}
	return 0
}

func (l *Lexer) hasPrefix(i int, prefix string) bool {
	return strings.HasPrefix(l.source[i:], prefix)
}

func (l *Lexer) hasPrefixFold(i int, prefix string) bool {
	return len(l.source)-i >= len(prefix) && strings.EqualFold(l.source[i:i+len(prefix)], prefix)
}

func (l *Lexer) lexInline() (token.Token, error) {
	start := l.pos
	if start == 0 && l.hasPrefix(0, "#!") {
		end := strings.IndexByte(l.source, '\n')
		if end < 0 {
			end = len(l.source)
		} else {
			end++
		}
		return l.emit(token.InlineShebang, end), nil
	}

	for i := start; i+1 < len(l.source); i++ {
		if l.source[i] != '<' || l.source[i+1] != '?' {
			continue
		}
		kind, length := l.openTagAt(i)
		if length == 0 {
			continue
		}
		if i > start {
			return l.emit(token.InlineText, i), nil
		}
		l.top().kind = modeScript
		return l.emit(kind, i+length), nil
	}
	return l.emit(token.InlineText, len(l.source)), nil
}

// openTagAt recognises `<?php`, `<?=` and a bare `<?` followed by
// whitespace.
func (l *Lexer) openTagAt(i int) (token.Kind, int) {
	if l.hasPrefixFold(i, "<?php") {
		next := l.at(i + 5)
		if next == 0 || isWhitespace(next) {
			return token.OpenTag, 5
		}
	}
	if l.hasPrefix(i, "<?=") {
		return token.EchoTag, 3
	}
	next := l.at(i + 2)
	if next != 0 && isWhitespace(next) {
		return token.ShortOpenTag, 2
	}
	return 0, 0
}

func (l *Lexer) lexScript() (token.Token, error) {
	start := l.pos
	c := l.source[start]
	next := l.at(start + 1)

	switch {
	case isWhitespace(c):
		end := start
		for end < len(l.source) && isWhitespace(l.source[end]) {
			end++
		}
		return l.emit(token.Whitespace, end), nil

	case c == '?' && next == '>':
		end := start + 2
		if l.hasPrefix(end, "\r\n") {
			end += 2
		} else if l.at(end) == '\n' {
			end++
		}
		l.top().kind = modeInline
		return l.emit(token.CloseTag, end), nil

	case c == '#' && next == '[':
		return l.emit(token.HashLeftBracket, start+2), nil

	case c == '#':
		return l.emit(token.HashComment, l.lineCommentEnd(start)), nil

	case c == '/' && next == '/':
		return l.emit(token.SingleLineComment, l.lineCommentEnd(start)), nil

	case c == '/' && next == '*':
		end := strings.Index(l.source[start+2:], "*/")
		if end < 0 {
			return token.Token{}, l.errorf(start, len(l.source), "unterminated comment")
		}
		end += start + 4
		kind := token.MultiLineComment
		if l.hasPrefix(start, "/**") && end-start > 4 && isWhitespace(l.at(start+3)) {
			kind = token.DocBlockComment
		}
		return l.emit(kind, end), nil

	case c == '$' && next == '{':
		l.top().braces++
		return l.emit(token.DollarLeftBrace, start+2), nil

	case c == '$' && isNameStart(next):
		return l.emit(token.Variable, l.nameEnd(start+1)), nil

	case c == '$':
		return l.emit(token.Dollar, start+1), nil

	case isNameStart(c) || c == '\\':
		return l.lexName()

	case isDigit(c) || (c == '.' && isDigit(next)):
		return l.lexNumber(), nil

	case c == '\'':
		end, ok := l.singleQuotedEnd(start)
		if !ok {
			return token.Token{}, l.errorf(start, len(l.source), "unterminated string")
		}
		return l.emit(token.LiteralString, end), nil

	case c == '"':
		return l.lexDoubleQuoteStart()

	case c == '`':
		l.push(frame{kind: modeShellExecute})
		return l.emit(token.Backtick, start+1), nil

	case c == '<' && l.hasPrefix(start, "<<<"):
		if tok, ok := l.lexDocumentStart(); ok {
			return tok, nil
		}

	case c == '(':
		if end, kind, ok := l.castAt(start); ok {
			return l.emit(kind, end), nil
		}
		return l.emit(token.LeftParenthesis, start+1), nil

	case c == '{':
		l.top().braces++
		return l.emit(token.LeftBrace, start+1), nil

	case c == '}':
		top := l.top()
		if top.braces == 0 && top.interpolating {
			tok := l.emit(token.RightBrace, start+1)
			l.pop()
			return tok, nil
		}
		if top.braces > 0 {
			top.braces--
		}
		return l.emit(token.RightBrace, start+1), nil
	}

	for length := 3; length >= 1; length-- {
		if start+length > len(l.source) {
			continue
		}
		if kind, ok := token.Operator(l.source[start : start+length]); ok {
			return l.emit(kind, start+length), nil
		}
	}

	return token.Token{}, l.errorf(start, start+1, "unexpected character %q", c)
}

// lineCommentEnd finds the end of a `//` or `#` comment: the newline
// (exclusive) or a closing tag.
func (l *Lexer) lineCommentEnd(start int) int {
	for i := start; i < len(l.source); i++ {
		switch l.source[i] {
		case '\n':
			if i > start && l.source[i-1] == '\r' {
				return i - 1
			}
			return i
		case '?':
			if l.at(i+1) == '>' {
				return i
			}
		}
	}
	return len(l.source)
}

func (l *Lexer) lexName() (token.Token, error) {
	start := l.pos
	i := start
	fully := false
	qualified := false

	if l.source[i] == '\\' {
		if !isNameStart(l.at(i + 1)) {
			return l.emit(token.NamespaceSeparator, i+1), nil
		}
		fully = true
		i++
	}

	i = l.nameEnd(i)
	for l.at(i) == '\\' && isNameStart(l.at(i+1)) {
		qualified = true
		i = l.nameEnd(i + 1)
	}

	text := l.source[start:i]
	switch {
	case fully:
		return l.emit(token.FullyQualifiedIdentifier, i), nil
	case qualified:
		return l.emit(token.QualifiedIdentifier, i), nil
	}

	if kind, ok := token.SetVisibility(text + l.source[i:min(i+5, len(l.source))]); ok {
		return l.emit(kind, i+5), nil
	}

	if kind, ok := token.Keyword(text); ok {
		if kind == token.HaltCompiler {
			l.halting = true
		}
		return l.emit(kind, i), nil
	}

	return l.emit(token.Identifier, i), nil
}

// nameEnd returns the end of the identifier starting at i.
func (l *Lexer) nameEnd(i int) int {
	for i < len(l.source) && isNameChar(l.source[i]) {
		i++
	}
	return i
}

func (l *Lexer) lexNumber() token.Token {
	start := l.pos
	i := start
	src := l.source

	if src[i] == '0' && i+1 < len(src) {
		var digit func(byte) bool
		switch src[i+1] {
		case 'x', 'X':
			digit = isHexDigit
		case 'b', 'B':
			digit = func(c byte) bool { return c == '0' || c == '1' }
		case 'o', 'O':
			digit = func(c byte) bool { return c >= '0' && c <= '7' }
		}
		if digit != nil && digit(l.at(i+2)) {
			i += 2
			for i < len(src) && (digit(src[i]) || src[i] == '_') {
				i++
			}
			return l.emit(token.LiteralInteger, i)
		}
	}

	kind := token.LiteralInteger
	for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
		i++
	}
	if l.at(i) == '.' && l.at(i+1) != '.' {
		kind = token.LiteralFloat
		i++
		for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
			i++
		}
	}
	if c := l.at(i); c == 'e' || c == 'E' {
		j := i + 1
		if l.at(j) == '+' || l.at(j) == '-' {
			j++
		}
		if isDigit(l.at(j)) {
			kind = token.LiteralFloat
			i = j
			for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
				i++
			}
		}
	}
	return l.emit(kind, i)
}

func (l *Lexer) singleQuotedEnd(start int) (int, bool) {
	for i := start + 1; i < len(l.source); i++ {
		switch l.source[i] {
		case '\\':
			i++
		case '\'':
			return i + 1, true
		}
	}
	return 0, false
}

// lexDoubleQuoteStart emits a plain string literal when the string has
// no interpolation, or an opening `"` that switches to string mode.
func (l *Lexer) lexDoubleQuoteStart() (token.Token, error) {
	start := l.pos
	for i := start + 1; i < len(l.source); i++ {
		switch l.source[i] {
		case '\\':
			i++
		case '"':
			return l.emit(token.LiteralString, i+1), nil
		case '$':
			if isNameStart(l.at(i+1)) || l.at(i+1) == '{' {
				l.push(frame{kind: modeDoubleQuoted})
				return l.emit(token.DoubleQuote, start+1), nil
			}
		case '{':
			if l.at(i+1) == '$' {
				l.push(frame{kind: modeDoubleQuoted})
				return l.emit(token.DoubleQuote, start+1), nil
			}
		}
	}
	return token.Token{}, l.errorf(start, len(l.source), "unterminated string")
}

// castAt recognises `(type)` with optional inner blanks.
func (l *Lexer) castAt(start int) (int, token.Kind, bool) {
	i := start + 1
	for isBlank(l.at(i)) {
		i++
	}
	nameStart := i
	for isLetter(l.at(i)) {
		i++
	}
	if i == nameStart {
		return 0, 0, false
	}
	kind, ok := token.Cast(l.source[nameStart:i])
	if !ok {
		return 0, 0, false
	}
	for isBlank(l.at(i)) {
		i++
	}
	if l.at(i) != ')' {
		return 0, 0, false
	}
	return i + 1, kind, true
}

// lexDocumentStart recognises `<<<LABEL`, `<<<"LABEL"` and `<<<'LABEL'`
// followed by a newline.
func (l *Lexer) lexDocumentStart() (token.Token, bool) {
	i := l.pos + 3
	for isBlank(l.at(i)) {
		i++
	}
	quote := l.at(i)
	if quote == '"' || quote == '\'' {
		i++
	} else {
		quote = 0
	}
	if !isNameStart(l.at(i)) {
		return token.Token{}, false
	}
	labelStart := i
	i = l.nameEnd(i)
	label := l.source[labelStart:i]
	if quote != 0 {
		if l.at(i) != quote {
			return token.Token{}, false
		}
		i++
	}
	switch {
	case l.hasPrefix(i, "\r\n"):
		i += 2
	case l.at(i) == '\n':
		i++
	default:
		return token.Token{}, false
	}

	kind := modeHeredoc
	if quote == '\'' {
		kind = modeNowdoc
	}
	l.push(frame{kind: kind, label: label})
	return l.emit(token.DocumentStart, i), true
}

// closingLabelAt reports whether a line starting at i closes the current
// document, returning the end of the label.
func (l *Lexer) closingLabelAt(i int) (int, bool) {
	label := l.top().label
	for isBlank(l.at(i)) {
		i++
	}
	if !l.hasPrefix(i, label) {
		return 0, false
	}
	end := i + len(label)
	if end < len(l.source) && isNameChar(l.source[end]) {
		return 0, false
	}
	return end, true
}

func (l *Lexer) atLineStart(i int) bool {
	return i == 0 || l.source[i-1] == '\n'
}

func (l *Lexer) lexNowdoc() (token.Token, error) {
	start := l.pos
	if l.atLineStart(start) {
		if end, ok := l.closingLabelAt(start); ok {
			l.pop()
			return l.emit(token.DocumentEnd, end), nil
		}
	}
	for i := start; i < len(l.source); i++ {
		if l.source[i] != '\n' {
			continue
		}
		if _, ok := l.closingLabelAt(i + 1); ok {
			return l.emit(token.StringPart, i+1), nil
		}
	}
	return token.Token{}, l.errorf(start, len(l.source), "unterminated nowdoc")
}

func (l *Lexer) lexHeredoc() (token.Token, error) {
	start := l.pos
	if l.atLineStart(start) {
		if end, ok := l.closingLabelAt(start); ok {
			l.pop()
			return l.emit(token.DocumentEnd, end), nil
		}
	}
	if tok, ok := l.lexInterpolationStart(); ok {
		return tok, nil
	}
	for i := start; i < len(l.source); i++ {
		switch l.source[i] {
		case '\\':
			i++
		case '\n':
			if _, ok := l.closingLabelAt(i + 1); ok {
				return l.emit(token.StringPart, i+1), nil
			}
		case '$', '{':
			if l.interpolationAt(i) {
				return l.emit(token.StringPart, i), nil
			}
		}
	}
	return token.Token{}, l.errorf(start, len(l.source), "unterminated heredoc")
}

func (l *Lexer) lexInterpolated(terminator byte) (token.Token, error) {
	start := l.pos
	if l.source[start] == terminator {
		kind := token.DoubleQuote
		if terminator == '`' {
			kind = token.Backtick
		}
		l.pop()
		return l.emit(kind, start+1), nil
	}
	if tok, ok := l.lexInterpolationStart(); ok {
		return tok, nil
	}
	for i := start; i < len(l.source); i++ {
		switch l.source[i] {
		case '\\':
			i++
		case terminator:
			return l.emit(token.StringPart, i), nil
		case '$', '{':
			if l.interpolationAt(i) {
				return l.emit(token.StringPart, i), nil
			}
		}
	}
	return token.Token{}, l.errorf(start, len(l.source), "unterminated string")
}

func (l *Lexer) interpolationAt(i int) bool {
	switch l.source[i] {
	case '$':
		next := l.at(i + 1)
		return isNameStart(next) || next == '{'
	case '{':
		return l.at(i+1) == '$'
	}
	return false
}

// lexInterpolationStart emits the token that opens an embedded
// expression inside a string, if one starts at the current position.
func (l *Lexer) lexInterpolationStart() (token.Token, bool) {
	start := l.pos
	switch {
	case l.hasPrefix(start, "${"):
		l.push(frame{kind: modeScript, interpolating: true})
		return l.emit(token.DollarLeftBrace, start+2), true

	case l.hasPrefix(start, "{$"):
		l.push(frame{kind: modeScript, interpolating: true})
		return l.emit(token.LeftBrace, start+1), true

	case l.at(start) == '$' && isNameStart(l.at(start+1)):
		end := l.nameEnd(start + 1)
		switch {
		case l.at(end) == '[':
			l.push(frame{kind: modeVarOffset})
		case l.hasPrefix(end, "->") && isNameStart(l.at(end+2)):
			l.push(frame{kind: modeLookingForProperty})
		case l.hasPrefix(end, "?->") && isNameStart(l.at(end+3)):
			l.push(frame{kind: modeLookingForProperty})
		}
		return l.emit(token.Variable, end), true
	}
	return token.Token{}, false
}

func (l *Lexer) lexLookingForProperty() (token.Token, error) {
	start := l.pos
	switch {
	case l.hasPrefix(start, "->"):
		return l.emit(token.MinusGreaterThan, start+2), nil
	case l.hasPrefix(start, "?->"):
		return l.emit(token.QuestionMinusGreaterThan, start+3), nil
	case isNameStart(l.source[start]):
		l.pop()
		return l.emit(token.Identifier, l.nameEnd(start)), nil
	}
	return token.Token{}, l.errorf(start, start+1, "unexpected character %q in property name", l.source[start])
}

func (l *Lexer) lexVarOffset() (token.Token, error) {
	start := l.pos
	c := l.source[start]
	switch {
	case c == '[':
		return l.emit(token.LeftBracket, start+1), nil
	case c == ']':
		l.pop()
		return l.emit(token.RightBracket, start+1), nil
	case c == '-':
		return l.emit(token.Minus, start+1), nil
	case c == '$' && isNameStart(l.at(start+1)):
		return l.emit(token.Variable, l.nameEnd(start+1)), nil
	case isDigit(c):
		end := start
		for end < len(l.source) && isNameChar(l.source[end]) {
			end++
		}
		return l.emit(token.LiteralInteger, end), nil
	case isNameStart(c):
		return l.emit(token.Identifier, l.nameEnd(start)), nil
	}
	return token.Token{}, l.errorf(start, start+1, "unexpected character %q in string offset", c)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameStart(c byte) bool {
	return isLetter(c) || c == '_' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}
