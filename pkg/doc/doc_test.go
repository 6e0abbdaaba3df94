package doc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func print80(d Doc) string {
	return Print(d, NewArena(), Options{Width: 80, TabWidth: 4})
}

func bracketed(items ...Doc) *Group {
	return NewGroup(
		Text("["),
		Indented(SoftLine, Join(Concat(Text(","), Line), items)),
		SoftLine,
		Text("]"),
	)
}

func TestGroupFitsWidth(t *testing.T) {
	d := bracketed(Text("a"), Text("b"))

	require.Equal(t, "[a, b]", Print(d, nil, Options{Width: 6, TabWidth: 4}))
	require.Equal(t, "[\n    a,\n    b\n]", Print(d, nil, Options{Width: 5, TabWidth: 4}))
}

func TestGroupMeasuresRestOfLine(t *testing.T) {
	d := Concat(
		NewGroup(Text("foo("), Indented(SoftLine, Text("x")), SoftLine, Text(")")),
		Text(";"),
	)

	require.Equal(t, "foo(x);", Print(d, nil, Options{Width: 7, TabWidth: 4}))
	require.Equal(t, "foo(\n    x\n);", Print(d, nil, Options{Width: 6, TabWidth: 4}))
}

func TestHardLinePropagates(t *testing.T) {
	inner := NewGroup(Text("y"), Line, Text("z"), HardLine, Text("w"))
	d := NewGroup(Text("x"), Line, inner)

	require.Equal(t, "x\ny\nz\nw", print80(d))
	require.True(t, WillBreak(d))
	require.False(t, WillBreak(bracketed(Text("a"))))
}

func TestShouldBreak(t *testing.T) {
	d := &Group{Contents: Concat(Text("a"), Line, Text("b")), ShouldBreak: true}

	require.Equal(t, "a\nb", print80(d))
}

func TestIfBreakByGroupID(t *testing.T) {
	arena := NewArena()
	id := arena.NewGroupID("args")
	d := Concat(
		GroupWithID(id, Text("("), Indented(SoftLine, Text("aaaa")), SoftLine, Text(")")),
		IfBreak{Break: Text(" broken"), Flat: Text(" flat"), GroupID: id},
	)

	require.Equal(t, "(aaaa) flat", Print(d, arena, Options{Width: 80, TabWidth: 4}))
	require.Equal(t, "(\n    aaaa\n) broken", Print(d, arena, Options{Width: 5, TabWidth: 4}))
}

func TestIfBreakEnclosingGroup(t *testing.T) {
	d := bracketed(Text("a"), Concat(Text("b"), IfBreak{Break: Text(",")}))

	require.Equal(t, "[a, b]", print80(d))
	require.Equal(t, "[\n    a,\n    b,\n]", Print(d, nil, Options{Width: 4, TabWidth: 4}))
}

func TestIndentIfBreak(t *testing.T) {
	arena := NewArena()
	id := arena.NewGroupID("head")
	head := &Group{Contents: Concat(Text("x"), Line, Text("y")), ShouldBreak: true, ID: id}

	d := Concat(head, IndentIfBreak{Contents: Concat(HardLine, Text("z")), GroupID: id})
	require.Equal(t, "x\ny\n    z", Print(d, arena, Options{Width: 80, TabWidth: 4}))

	d = Concat(head, IndentIfBreak{Contents: Concat(HardLine, Text("z")), GroupID: id, Negate: true})
	require.Equal(t, "x\ny\nz", Print(d, arena, Options{Width: 80, TabWidth: 4}))
}

func TestUnknownGroupIDPanics(t *testing.T) {
	require.Panics(t, func() {
		Print(IfBreak{Break: Text("a"), GroupID: 3}, NewArena(), Options{Width: 80})
	})
}

func TestArenaIDsAreMonotonic(t *testing.T) {
	arena := NewArena()
	a := arena.NewGroupID("a")
	b := arena.NewGroupID("b")

	require.Equal(t, GroupID(1), a)
	require.Equal(t, GroupID(2), b)
	require.Equal(t, "b", arena.Name(b))
	require.Equal(t, 2, arena.Len())
}

func TestLineSuffix(t *testing.T) {
	d := Concat(Text("$a;"), LineSuffix{Contents: Text(" // c")}, HardLine, Text("$b;"))
	require.Equal(t, "$a; // c\n$b;", print80(d))

	d = Concat(Text("a"), LineSuffix{Contents: Text(" // end")})
	require.Equal(t, "a // end", print80(d))
}

func TestLineSuffixBoundary(t *testing.T) {
	d := Concat(Text("a"), LineSuffix{Contents: Text(" // c")}, LineSuffixBoundary{}, Text("b"))

	require.Equal(t, "a // c\nb", print80(d))
}

func TestTrailingWhitespaceTrimmed(t *testing.T) {
	require.Equal(t, "a\nb", print80(Concat(Text("a "), HardLine, Text("b"))))
	require.Equal(t, "a\n\n    b", print80(Indented(Text("a"), HardLine, HardLine, Text("b"))))
}

func TestLiteralLineKeepsColumnZero(t *testing.T) {
	d := Indented(Text("<<<EOT"), LiteralLine, Text("  body"), LiteralLine, Text("EOT"))

	require.Equal(t, "<<<EOT\n  body\nEOT", print80(d))
}

func TestFill(t *testing.T) {
	d := Fill{Parts: []Doc{Text("aaa"), Line, Text("bbb"), Line, Text("ccc")}}

	require.Equal(t, "aaa bbb\nccc", Print(d, nil, Options{Width: 7, TabWidth: 4}))
	require.Equal(t, "aaa bbb ccc", Print(d, nil, Options{Width: 11, TabWidth: 4}))
}

func TestTabs(t *testing.T) {
	d := Concat(Text("{"), Indented(HardLine, Text("x")), HardLine, Text("}"))

	require.Equal(t, "{\n\tx\n}", Print(d, nil, Options{Width: 80, TabWidth: 4, UseTabs: true}))
	require.Equal(t, "{\n  x\n}", Print(d, nil, Options{Width: 80, TabWidth: 2}))
}

func TestNewline(t *testing.T) {
	d := Concat(Text("a"), HardLine, Text("b"))

	require.Equal(t, "a\r\nb", Print(d, nil, Options{Width: 80, Newline: "\r\n"}))
}

func TestWideRunes(t *testing.T) {
	d := NewGroup(Text("日本"), Line, Text("語"))

	require.Equal(t, "日本 語", Print(d, nil, Options{Width: 7}))
	require.Equal(t, "日本\n語", Print(d, nil, Options{Width: 6}))
}

func TestHelpers(t *testing.T) {
	require.True(t, IsEmpty(Concat(Empty, Text(""))))
	require.False(t, IsEmpty(Space))
	require.True(t, CanBreak(bracketed(Text("a"))))
	require.False(t, CanBreak(Concat(Text("a"), Text("b"))))
}
