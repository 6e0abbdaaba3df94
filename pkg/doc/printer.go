package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Options controls the layout of a printed document.
type Options struct {
	// Width is the preferred maximum line width.
	Width int
	// TabWidth is the width of one indentation level.
	TabWidth int
	// UseTabs indents with tabs instead of TabWidth spaces.
	UseTabs bool
	// Newline terminates every printed line. Defaults to "\n".
	Newline string
}

type mode uint8

const (
	modeFlat mode = iota
	modeBreak
)

type indentation struct {
	value string
	width int
}

type command struct {
	ind  indentation
	mode mode
	doc  Doc
}

type printer struct {
	opts   Options
	arena  *Arena
	broken map[*Group]bool
	// groupModes is indexed by GroupID. The zero value is modeFlat.
	groupModes []mode
}

// Print lays out d within opts.Width. Group ids referenced by d must have
// come from arena.
func Print(d Doc, arena *Arena, opts Options) string {
	if arena == nil {
		arena = NewArena()
	}
	if opts.Newline == "" {
		opts.Newline = "\n"
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	p := &printer{
		opts:       opts,
		arena:      arena,
		broken:     map[*Group]bool{},
		groupModes: make([]mode, arena.Len()+1),
	}
	p.propagateBreaks(d)
	return p.print(d)
}

// propagateBreaks marks every group that contains a forced break, and
// every group that contains a broken group, as broken.
func (p *printer) propagateBreaks(d Doc) bool {
	switch d := d.(type) {
	case Array:
		breaks := false
		for _, part := range d {
			if p.propagateBreaks(part) {
				breaks = true
			}
		}
		return breaks
	case Fill:
		breaks := false
		for _, part := range d.Parts {
			if p.propagateBreaks(part) {
				breaks = true
			}
		}
		return breaks
	case *Group:
		if p.propagateBreaks(d.Contents) || d.ShouldBreak {
			p.broken[d] = true
			return true
		}
		return false
	case Indent:
		return p.propagateBreaks(d.Contents)
	case IndentIfBreak:
		return p.propagateBreaks(d.Contents)
	case IfBreak:
		b := p.propagateBreaks(d.Break)
		f := p.propagateBreaks(d.Flat)
		return b || f
	case LineSuffix:
		return p.propagateBreaks(d.Contents)
	case BreakParent:
		return true
	}
	return false
}

func (p *printer) groupMode(id GroupID, fallback mode) mode {
	if id == 0 {
		return fallback
	}
	p.arena.check(id)
	return p.groupModes[id]
}

func (p *printer) indent(ind indentation) indentation {
	if p.opts.UseTabs {
		return indentation{value: ind.value + "\t", width: ind.width + p.opts.TabWidth}
	}
	return indentation{
		value: ind.value + strings.Repeat(" ", p.opts.TabWidth),
		width: ind.width + p.opts.TabWidth,
	}
}

func (p *printer) print(d Doc) string {
	var out []byte
	pos := 0
	shouldRemeasure := false
	var lineSuffixes []command
	cmds := []command{{mode: modeBreak, doc: d}}

	for len(cmds) > 0 {
		c := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := c.doc.(type) {
		case nil:
		case Text:
			out = append(out, d...)
			pos += runewidth.StringWidth(string(d))
		case Array:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{c.ind, c.mode, d[i]})
			}
		case BreakParent:
		case Indent:
			cmds = append(cmds, command{p.indent(c.ind), c.mode, d.Contents})
		case *Group:
			next := command{c.ind, modeFlat, d.Contents}
			switch {
			case c.mode == modeFlat && !shouldRemeasure:
				if p.broken[d] {
					next.mode = modeBreak
				}
			default:
				shouldRemeasure = false
				if p.broken[d] || !p.fits(next, cmds, p.opts.Width-pos, len(lineSuffixes) > 0, false) {
					next.mode = modeBreak
				}
			}
			cmds = append(cmds, next)
			if d.ID != 0 {
				p.arena.check(d.ID)
				p.groupModes[d.ID] = next.mode
			}
		case Fill:
			cmds = p.fill(c, d, cmds, p.opts.Width-pos, len(lineSuffixes) > 0)
		case IfBreak:
			contents := d.Flat
			if p.groupMode(d.GroupID, c.mode) == modeBreak {
				contents = d.Break
			}
			if contents != nil {
				cmds = append(cmds, command{c.ind, c.mode, contents})
			}
		case IndentIfBreak:
			broken := p.groupMode(d.GroupID, c.mode) == modeBreak
			if broken != d.Negate {
				cmds = append(cmds, command{p.indent(c.ind), c.mode, d.Contents})
			} else {
				cmds = append(cmds, command{c.ind, c.mode, d.Contents})
			}
		case LineSuffix:
			lineSuffixes = append(lineSuffixes, command{c.ind, c.mode, d.Contents})
		case LineSuffixBoundary:
			if len(lineSuffixes) > 0 {
				cmds = append(cmds, command{c.ind, c.mode, LineBreak{Mode: LineHard}})
			}
		case LineBreak:
			if c.mode == modeFlat && d.Mode != LineHard && d.Mode != LineLiteral {
				if d.Mode == LineDefault {
					out = append(out, ' ')
					pos++
				}
				break
			}
			if c.mode == modeFlat {
				shouldRemeasure = true
			}
			if len(lineSuffixes) > 0 {
				cmds = append(cmds, c)
				for i := len(lineSuffixes) - 1; i >= 0; i-- {
					cmds = append(cmds, lineSuffixes[i])
				}
				lineSuffixes = nil
				break
			}
			if d.Mode == LineLiteral {
				out = append(out, p.opts.Newline...)
				pos = 0
				break
			}
			out = trimTrailingWhitespace(out)
			out = append(out, p.opts.Newline...)
			out = append(out, c.ind.value...)
			pos = c.ind.width
		}

		if len(cmds) == 0 && len(lineSuffixes) > 0 {
			for i := len(lineSuffixes) - 1; i >= 0; i-- {
				cmds = append(cmds, lineSuffixes[i])
			}
			lineSuffixes = nil
		}
	}

	return string(out)
}

// fill prints content and separator pairs, breaking a separator only
// when the content after it does not fit.
func (p *printer) fill(c command, d Fill, cmds []command, width int, hasLineSuffix bool) []command {
	parts := d.Parts
	if len(parts) == 0 {
		return cmds
	}
	contentFlat := command{c.ind, modeFlat, parts[0]}
	contentBreak := command{c.ind, modeBreak, parts[0]}
	contentFits := p.fits(contentFlat, nil, width, hasLineSuffix, true)
	if len(parts) == 1 {
		if contentFits {
			return append(cmds, contentFlat)
		}
		return append(cmds, contentBreak)
	}

	whitespaceFlat := command{c.ind, modeFlat, parts[1]}
	whitespaceBreak := command{c.ind, modeBreak, parts[1]}
	if len(parts) == 2 {
		if contentFits {
			return append(cmds, whitespaceFlat, contentFlat)
		}
		return append(cmds, whitespaceBreak, contentBreak)
	}

	remaining := command{c.ind, c.mode, Fill{Parts: parts[2:]}}
	pair := command{c.ind, modeFlat, Array{parts[0], parts[1], parts[2]}}
	switch {
	case p.fits(pair, nil, width, hasLineSuffix, true):
		return append(cmds, remaining, whitespaceFlat, contentFlat)
	case contentFits:
		return append(cmds, remaining, whitespaceBreak, contentFlat)
	default:
		return append(cmds, remaining, whitespaceBreak, contentBreak)
	}
}

// fits reports whether next, followed by the rest of the commands up to
// the first line break, fits in width columns.
func (p *printer) fits(next command, rest []command, width int, hasLineSuffix, mustBeFlat bool) bool {
	restIdx := len(rest)
	cmds := []command{next}
	for width >= 0 {
		if len(cmds) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			cmds = append(cmds, rest[restIdx])
			continue
		}
		c := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := c.doc.(type) {
		case Text:
			width -= runewidth.StringWidth(string(d))
		case Array:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{c.ind, c.mode, d[i]})
			}
		case Fill:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				cmds = append(cmds, command{c.ind, c.mode, d.Parts[i]})
			}
		case Indent:
			cmds = append(cmds, command{c.ind, c.mode, d.Contents})
		case IndentIfBreak:
			cmds = append(cmds, command{c.ind, c.mode, d.Contents})
		case *Group:
			if mustBeFlat && p.broken[d] {
				return false
			}
			m := c.mode
			if p.broken[d] {
				m = modeBreak
			}
			cmds = append(cmds, command{c.ind, m, d.Contents})
		case IfBreak:
			contents := d.Flat
			if p.groupMode(d.GroupID, c.mode) == modeBreak {
				contents = d.Break
			}
			if contents != nil {
				cmds = append(cmds, command{c.ind, c.mode, contents})
			}
		case LineBreak:
			if c.mode == modeBreak || d.Mode == LineHard || d.Mode == LineLiteral {
				return true
			}
			if d.Mode == LineDefault {
				width--
			}
		case LineSuffix:
			hasLineSuffix = true
		case LineSuffixBoundary:
			if hasLineSuffix {
				return true
			}
		}
	}
	return false
}

func trimTrailingWhitespace(out []byte) []byte {
	for len(out) > 0 && (out[len(out)-1] == ' ' || out[len(out)-1] == '\t') {
		out = out[:len(out)-1]
	}
	return out
}
