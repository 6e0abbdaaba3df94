package ast

import (
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/span"
)

// KeywordHint is a builtin type name such as `int`, `void`, `mixed`,
// `self` or `null`. Value is the source spelling.
type KeywordHint struct {
	Value interner.ID
	Loc   span.Span
}

func (h *KeywordHint) Span() span.Span { return h.Loc }
func (h *KeywordHint) Kind() NodeKind  { return KindKeywordHint }
func (h *KeywordHint) node()           {}
func (h *KeywordHint) hint()           {}

// NullableHint is `?T`.
type NullableHint struct {
	Question span.Span
	Hint     Hint
}

func (h *NullableHint) Span() span.Span { return h.Question.Join(h.Hint.Span()) }
func (h *NullableHint) Kind() NodeKind  { return KindNullableHint }
func (h *NullableHint) node()           {}
func (h *NullableHint) hint()           {}

// UnionHint is `A|B`.
type UnionHint struct {
	Left  Hint
	Pipe  span.Span
	Right Hint
}

func (h *UnionHint) Span() span.Span { return h.Left.Span().Join(h.Right.Span()) }
func (h *UnionHint) Kind() NodeKind  { return KindUnionHint }
func (h *UnionHint) node()           {}
func (h *UnionHint) hint()           {}

// IntersectionHint is `A&B`.
type IntersectionHint struct {
	Left      Hint
	Ampersand span.Span
	Right     Hint
}

func (h *IntersectionHint) Span() span.Span { return h.Left.Span().Join(h.Right.Span()) }
func (h *IntersectionHint) Kind() NodeKind  { return KindIntersectionHint }
func (h *IntersectionHint) node()           {}
func (h *IntersectionHint) hint()           {}

// ParenthesizedHint is `(A&B)` inside a union.
type ParenthesizedHint struct {
	LeftParenthesis  span.Span
	Hint             Hint
	RightParenthesis span.Span
}

func (h *ParenthesizedHint) Span() span.Span { return h.LeftParenthesis.Join(h.RightParenthesis) }
func (h *ParenthesizedHint) Kind() NodeKind  { return KindParenthesizedHint }
func (h *ParenthesizedHint) node()           {}
func (h *ParenthesizedHint) hint()           {}

// UnionMembers flattens a union into its members. A nullable hint counts
// as a union whose first member is a null placeholder (nil).
func UnionMembers(h Hint) []Hint {
	switch h := h.(type) {
	case *UnionHint:
		return append(UnionMembers(h.Left), UnionMembers(h.Right)...)
	case *NullableHint:
		return append([]Hint{nil}, UnionMembers(h.Hint)...)
	}
	return []Hint{h}
}

// IntersectionMembers flattens an intersection into its members.
func IntersectionMembers(h Hint) []Hint {
	if h, ok := h.(*IntersectionHint); ok {
		return append(IntersectionMembers(h.Left), IntersectionMembers(h.Right)...)
	}
	return []Hint{h}
}
