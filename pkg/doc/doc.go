// Package doc is the document IR the formatter renders into and the
// printer that lays it out within a line width.
package doc

// Doc is a node of the document IR.
type Doc interface {
	isDoc()
}

// Text is literal text. It must not contain newlines.
type Text string

// Array is a sequence of documents printed one after another.
type Array []Doc

// LineMode selects how a LineBreak prints.
type LineMode uint8

const (
	// LineDefault prints a space when flat and a newline when broken.
	LineDefault LineMode = iota
	// LineSoft prints nothing when flat.
	LineSoft
	// LineHard always prints a newline.
	LineHard
	// LineLiteral always prints a newline without indentation.
	LineLiteral
)

// LineBreak is a possible line break.
type LineBreak struct {
	Mode LineMode
}

// Group is printed flat when it fits in the remaining width and broken
// otherwise. A group containing a hard line always breaks.
type Group struct {
	Contents    Doc
	ShouldBreak bool
	// ID lets IfBreak and IndentIfBreak refer to this group's mode.
	ID GroupID
}

// Indent increases the indentation of its contents by one level.
type Indent struct {
	Contents Doc
}

// IndentIfBreak indents its contents when the referenced group breaks.
// Negate inverts the condition.
type IndentIfBreak struct {
	Contents Doc
	GroupID  GroupID
	Negate   bool
}

// IfBreak prints Break when the enclosing group, or the referenced
// group, is broken, and Flat otherwise.
type IfBreak struct {
	Break   Doc
	Flat    Doc
	GroupID GroupID
}

// BreakParent forces every enclosing group to break.
type BreakParent struct{}

// Fill packs alternating content and separator parts onto as few lines
// as possible.
type Fill struct {
	Parts []Doc
}

// LineSuffix is deferred until the next newline. Trailing comments use
// it.
type LineSuffix struct {
	Contents Doc
}

// LineSuffixBoundary flushes pending line suffixes with a newline.
type LineSuffixBoundary struct{}

func (Text) isDoc()               {}
func (Array) isDoc()              {}
func (LineBreak) isDoc()          {}
func (*Group) isDoc()             {}
func (Indent) isDoc()             {}
func (IndentIfBreak) isDoc()      {}
func (IfBreak) isDoc()            {}
func (BreakParent) isDoc()        {}
func (Fill) isDoc()               {}
func (LineSuffix) isDoc()         {}
func (LineSuffixBoundary) isDoc() {}

var (
	Empty       Doc = Text("")
	Space       Doc = Text(" ")
	Line        Doc = LineBreak{Mode: LineDefault}
	SoftLine    Doc = LineBreak{Mode: LineSoft}
	HardLine    Doc = Array{LineBreak{Mode: LineHard}, BreakParent{}}
	LiteralLine Doc = Array{LineBreak{Mode: LineLiteral}, BreakParent{}}
)

// Concat joins documents into an Array, dropping nils.
func Concat(docs ...Doc) Doc {
	out := make(Array, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// Join places sep between each of docs.
func Join(sep Doc, docs []Doc) Doc {
	out := make(Array, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}

// NewGroup groups docs.
func NewGroup(docs ...Doc) *Group {
	return &Group{Contents: Concat(docs...)}
}

// BrokenGroup groups docs and forces the group to break.
func BrokenGroup(docs ...Doc) *Group {
	return &Group{Contents: Concat(docs...), ShouldBreak: true}
}

// GroupWithID groups docs under id.
func GroupWithID(id GroupID, docs ...Doc) *Group {
	return &Group{Contents: Concat(docs...), ID: id}
}

// Indented indents docs.
func Indented(docs ...Doc) Doc {
	return Indent{Contents: Concat(docs...)}
}

// WillBreak reports whether d contains a forced break.
func WillBreak(d Doc) bool {
	return find(d, func(d Doc) bool {
		switch d := d.(type) {
		case *Group:
			return d.ShouldBreak
		case LineBreak:
			return d.Mode == LineHard || d.Mode == LineLiteral
		case BreakParent:
			return true
		}
		return false
	})
}

// CanBreak reports whether d contains any line break.
func CanBreak(d Doc) bool {
	return find(d, func(d Doc) bool {
		_, ok := d.(LineBreak)
		return ok
	})
}

// IsEmpty reports whether d prints nothing.
func IsEmpty(d Doc) bool {
	switch d := d.(type) {
	case nil:
		return true
	case Text:
		return d == ""
	case Array:
		for _, part := range d {
			if !IsEmpty(part) {
				return false
			}
		}
		return true
	}
	return false
}

func find(d Doc, match func(Doc) bool) bool {
	if d == nil {
		return false
	}
	if match(d) {
		return true
	}
	switch d := d.(type) {
	case Array:
		for _, part := range d {
			if find(part, match) {
				return true
			}
		}
	case Fill:
		for _, part := range d.Parts {
			if find(part, match) {
				return true
			}
		}
	case *Group:
		return find(d.Contents, match)
	case Indent:
		return find(d.Contents, match)
	case IndentIfBreak:
		return find(d.Contents, match)
	case IfBreak:
		return find(d.Break, match) || find(d.Flat, match)
	case LineSuffix:
		return find(d.Contents, match)
	}
	return false
}
