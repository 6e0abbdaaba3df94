package formatter

import (
	"fmt"
)

// BraceStyle places an opening brace on the declaration line or the
// next one.
type BraceStyle string

const (
	SameLine BraceStyle = "same_line"
	NextLine BraceStyle = "next_line"
)

// CasingStyle is the spelling of keywords.
type CasingStyle string

const (
	Lowercase CasingStyle = "lowercase"
	Uppercase CasingStyle = "uppercase"
)

// NullTypeHint is the spelling of a nullable hint.
type NullTypeHint string

const (
	// NullQuestion prints `?T`.
	NullQuestion NullTypeHint = "question"
	// NullPipe prints `null|T`.
	NullPipe NullTypeHint = "null_pipe"
)

// ArrayStyle selects `[...]` or `array(...)` (`list(...)` for
// destructuring).
type ArrayStyle string

const (
	ShortArray ArrayStyle = "short"
	LongArray  ArrayStyle = "long"
)

// AttributeParens controls `#[A()]` versus `#[A]` for attributes
// without arguments.
type AttributeParens string

const (
	WithParens    AttributeParens = "with_parens"
	WithoutParens AttributeParens = "without_parens"
)

// EndOfLine is the newline sequence of the output.
type EndOfLine string

const (
	LF   EndOfLine = "lf"
	CRLF EndOfLine = "crlf"
	CR   EndOfLine = "cr"
	// Auto keeps the first newline sequence found in the input.
	Auto EndOfLine = "auto"
)

// Settings controls the output of Format. A Settings value is read-only
// while formatting and may be shared between goroutines.
type Settings struct {
	PrintWidth int       `toml:"print_width"`
	TabWidth   int       `toml:"tab_width"`
	UseTabs    bool      `toml:"use_tabs"`
	EndOfLine  EndOfLine `toml:"end_of_line"`

	SingleQuote   bool       `toml:"single_quote"`
	TrailingComma bool       `toml:"trailing_comma"`
	ArrayStyle    ArrayStyle `toml:"array_style"`
	ListStyle     ArrayStyle `toml:"list_style"`

	ClassLikeBraceStyle BraceStyle `toml:"classlike_brace_style"`
	FunctionBraceStyle  BraceStyle `toml:"function_brace_style"`
	MethodBraceStyle    BraceStyle `toml:"method_brace_style"`
	ClosureBraceStyle   BraceStyle `toml:"closure_brace_style"`
	ControlBraceStyle   BraceStyle `toml:"control_brace_style"`

	KeywordCase  CasingStyle  `toml:"keyword_case"`
	NullTypeHint NullTypeHint `toml:"null_type_hint"`

	MethodChainBreakThreshold    int  `toml:"method_chain_break_threshold"`
	InlineSingleBreakingArgument bool `toml:"inline_single_breaking_argument"`

	SpaceBeforeClosureParams       bool `toml:"space_before_closure_params"`
	SpaceBeforeArrowFunctionParams bool `toml:"space_before_arrow_function_params"`
	SpaceAfterClosureUse           bool `toml:"space_after_closure_use"`

	BoolCast       string `toml:"bool_cast"`
	FloatCast      string `toml:"float_cast"`
	IntCast        string `toml:"int_cast"`
	StringCast     string `toml:"string_cast"`
	LeaveCastsAsIs bool   `toml:"leave_casts_as_is"`

	IncludeClosingTag        bool            `toml:"include_closing_tag"`
	SplitMultiDeclare        bool            `toml:"split_multi_declare"`
	SpaceAroundDeclareEquals bool            `toml:"space_around_declare_equals"`
	StrictTypesSemicolon     bool            `toml:"strict_types_semicolon"`
	TypeSpacing              int             `toml:"type_spacing"`
	AttrParens               AttributeParens `toml:"attr_parens"`

	BreakPromotedPropertiesList bool `toml:"break_promoted_properties_list"`
	PreserveMultilineParameters bool `toml:"preserve_multiline_parameters"`
	PreserveBrokenArrays        bool `toml:"preserve_broken_arrays"`
	PreserveBrokenArgumentLists bool `toml:"preserve_broken_argument_lists"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		PrintWidth: 120,
		TabWidth:   4,
		EndOfLine:  LF,

		SingleQuote:   true,
		TrailingComma: true,
		ArrayStyle:    ShortArray,
		ListStyle:     ShortArray,

		ClassLikeBraceStyle: NextLine,
		FunctionBraceStyle:  NextLine,
		MethodBraceStyle:    NextLine,
		ClosureBraceStyle:   SameLine,
		ControlBraceStyle:   SameLine,

		KeywordCase:  Lowercase,
		NullTypeHint: NullQuestion,

		MethodChainBreakThreshold:    4,
		InlineSingleBreakingArgument: true,

		SpaceBeforeClosureParams: true,
		SpaceAfterClosureUse:     true,

		BoolCast:   "bool",
		FloatCast:  "float",
		IntCast:    "int",
		StringCast: "string",

		SplitMultiDeclare:    true,
		StrictTypesSemicolon: true,
		AttrParens:           WithoutParens,

		BreakPromotedPropertiesList: true,
		PreserveBrokenArrays:        true,
	}
}

var castSpellings = map[string][]string{
	"bool_cast":   {"bool", "boolean"},
	"float_cast":  {"float", "double", "real"},
	"int_cast":    {"int", "integer"},
	"string_cast": {"string", "binary"},
}

// Validate reports the first setting with an unusable value.
func (s Settings) Validate() error {
	if s.PrintWidth <= 0 {
		return fmt.Errorf("print_width must be positive, got %d", s.PrintWidth)
	}
	if s.TabWidth <= 0 {
		return fmt.Errorf("tab_width must be positive, got %d", s.TabWidth)
	}
	if s.TypeSpacing < 0 {
		return fmt.Errorf("type_spacing must not be negative, got %d", s.TypeSpacing)
	}
	if s.MethodChainBreakThreshold < 0 {
		return fmt.Errorf("method_chain_break_threshold must not be negative, got %d", s.MethodChainBreakThreshold)
	}

	switch s.EndOfLine {
	case LF, CRLF, CR, Auto:
	default:
		return fmt.Errorf("end_of_line: unknown value %q", s.EndOfLine)
	}
	for name, style := range map[string]ArrayStyle{"array_style": s.ArrayStyle, "list_style": s.ListStyle} {
		if style != ShortArray && style != LongArray {
			return fmt.Errorf("%s: unknown value %q", name, style)
		}
	}
	for name, style := range map[string]BraceStyle{
		"classlike_brace_style": s.ClassLikeBraceStyle,
		"function_brace_style":  s.FunctionBraceStyle,
		"method_brace_style":    s.MethodBraceStyle,
		"closure_brace_style":   s.ClosureBraceStyle,
		"control_brace_style":   s.ControlBraceStyle,
	} {
		if style != SameLine && style != NextLine {
			return fmt.Errorf("%s: unknown value %q", name, style)
		}
	}
	if s.KeywordCase != Lowercase && s.KeywordCase != Uppercase {
		return fmt.Errorf("keyword_case: unknown value %q", s.KeywordCase)
	}
	if s.NullTypeHint != NullQuestion && s.NullTypeHint != NullPipe {
		return fmt.Errorf("null_type_hint: unknown value %q", s.NullTypeHint)
	}
	if s.AttrParens != WithParens && s.AttrParens != WithoutParens {
		return fmt.Errorf("attr_parens: unknown value %q", s.AttrParens)
	}
	for name, value := range map[string]string{
		"bool_cast":   s.BoolCast,
		"float_cast":  s.FloatCast,
		"int_cast":    s.IntCast,
		"string_cast": s.StringCast,
	} {
		ok := false
		for _, spelling := range castSpellings[name] {
			ok = ok || spelling == value
		}
		if !ok {
			return fmt.Errorf("%s: unknown value %q, expected one of %v", name, value, castSpellings[name])
		}
	}
	return nil
}

// newline resolves EndOfLine against the source being formatted.
func (s Settings) newline(source string) string {
	switch s.EndOfLine {
	case CRLF:
		return "\r\n"
	case CR:
		return "\r"
	case Auto:
		for i := 0; i < len(source); i++ {
			switch source[i] {
			case '\n':
				return "\n"
			case '\r':
				if i+1 < len(source) && source[i+1] == '\n' {
					return "\r\n"
				}
				return "\r"
			}
		}
	}
	return "\n"
}
