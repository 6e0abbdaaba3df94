package span

import (
	"fmt"
	"sort"
)

// Position is a byte offset into a source file.
type Position int

// Span is a half-open byte range [Start, End) in a source file.
type Span struct {
	Start Position
	End   Position
}

// New creates a span from two offsets.
func New(start, end Position) Span {
	return Span{Start: start, End: end}
}

// At returns a zero-length span at p.
func At(p Position) Span {
	return Span{Start: p, End: p}
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// Between returns the span from the end of s to the start of other.
func (s Span) Between(other Span) Span {
	return Span{Start: s.End, End: other.Start}
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// IsBefore reports whether s ends at or before other starts.
func (s Span) IsBefore(other Span) bool {
	return s.End <= other.Start
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return int(s.End - s.Start)
}

// Slice returns the text covered by s.
func (s Span) Slice(source string) string {
	return source[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Location is a 1-indexed line/column pair.
type Location struct {
	Line   int
	Column int
}

// Lines maps byte offsets to line/column locations.
type Lines struct {
	starts []Position
}

// NewLines indexes the line starts of source.
func NewLines(source string) *Lines {
	starts := []Position{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, Position(i+1))
		}
	}
	return &Lines{starts: starts}
}

// Locate returns the 1-indexed line and column of p.
func (l *Lines) Locate(p Position) Location {
	i := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > p
	}) - 1
	if i < 0 {
		i = 0
	}
	return Location{Line: i + 1, Column: int(p-l.starts[i]) + 1}
}

// LineStart returns the offset of the first byte of the 1-indexed line.
func (l *Lines) LineStart(line int) Position {
	if line < 1 {
		return 0
	}
	if line > len(l.starts) {
		return l.starts[len(l.starts)-1]
	}
	return l.starts[line-1]
}

// Count returns the number of lines.
func (l *Lines) Count() int {
	return len(l.starts)
}
