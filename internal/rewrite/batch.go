// Package rewrite records edits against an immutable syntax tree and
// applies them to its source text in one step.
package rewrite

import (
	"bytes"
	"sort"
	"strings"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// Batch is an ordered set of edits against one unit. Edits only refer to
// original nodes; the tree itself is never modified.
type Batch struct {
	unit  *jast.Unit
	edits []*Edit
}

func New(u *jast.Unit) *Batch {
	return &Batch{unit: u}
}

func (b *Batch) Unit() *jast.Unit { return b.unit }

// Len returns the number of recorded edits.
func (b *Batch) Len() int { return len(b.edits) }

// Edits returns the recorded edits in the order they were added.
func (b *Batch) Edits() []*Edit { return b.edits }

func (b *Batch) add(kind EditKind, target, node jast.Node, desc string) {
	b.edits = append(b.edits, &Edit{Kind: kind, Target: target, Node: node, Desc: desc})
}

// Replace substitutes replacement for target.
func (b *Batch) Replace(target, replacement jast.Node, desc string) {
	b.add(Replace, target, replacement, desc)
}

// Remove deletes target together with its leading comments, and with its
// whole line when nothing else is on it.
func (b *Batch) Remove(target jast.Node, desc string) {
	b.add(Remove, target, nil, desc)
}

// InsertBefore inserts node before anchor, on a line of its own when anchor
// starts its line.
func (b *Batch) InsertBefore(anchor, node jast.Node, desc string) {
	b.add(InsertBefore, anchor, node, desc)
}

// InsertAfter inserts node after anchor, on a line of its own when anchor
// ends its line.
func (b *Batch) InsertAfter(anchor, node jast.Node, desc string) {
	b.add(InsertAfter, anchor, node, desc)
}

// InsertLast appends node to the statements of block.
func (b *Batch) InsertLast(block *jast.Block, node jast.Node, desc string) {
	b.add(InsertLast, block, node, desc)
}

// Move returns a placeholder for the source text of nodes, consecutive
// siblings, with their leading comments. Used inside a replacement or an
// inserted node, it relocates that text; when the original location is not
// itself replaced or removed, the text is deleted there.
func (b *Batch) Move(nodes ...jast.Node) *jast.Moved {
	m := &jast.Moved{Nodes: nodes}
	if len(nodes) == 0 {
		return m
	}
	m.From = b.unit.LeadingStart(nodes[0])
	m.To = nodes[len(nodes)-1].End()
	return m
}

// Touches reports whether an edit replaces, removes or moves text
// overlapping n.
func (b *Batch) Touches(n jast.Node) bool {
	from, to := b.unit.Offset(n.Pos()), b.unit.Offset(n.End())
	overlaps := func(s, e int) bool { return s < to && from < e }
	for _, e := range b.edits {
		if e.destructive() && overlaps(b.unit.Offset(e.Target.Pos()), b.unit.Offset(e.Target.End())) {
			return true
		}
		for _, m := range moves(e) {
			if overlaps(b.unit.Offset(m.From), b.unit.Offset(m.To)) {
				return true
			}
		}
	}
	return false
}

// Merge adds the edits of other, which must target the same unit. When the
// combined edits conflict, b is left unchanged and the error is a
// *ConflictingEditError.
func (b *Batch) Merge(other *Batch) error {
	if other == nil || len(other.edits) == 0 {
		return nil
	}
	combined := &Batch{unit: b.unit, edits: make([]*Edit, 0, len(b.edits)+len(other.edits))}
	combined.edits = append(combined.edits, b.edits...)
	combined.edits = append(combined.edits, other.edits...)
	if _, err := combined.plan(); err != nil {
		return err
	}
	b.edits = combined.edits
	return nil
}

// Materialize applies all edits to the source text of the unit. On a
// conflict nothing is applied and the error is a *ConflictingEditError.
func (b *Batch) Materialize() ([]byte, error) {
	splices, err := b.plan()
	if err != nil {
		return nil, err
	}
	src := b.unit.Src
	var out bytes.Buffer
	out.Grow(len(src))
	last := 0
	for _, s := range splices {
		out.Write(src[last:s.start])
		out.WriteString(s.text)
		last = s.end
	}
	out.Write(src[last:])
	return out.Bytes(), nil
}

// splice replaces src[start:end] with text. Insertions have start == end.
type splice struct {
	start, end int
	text       string
	desc       string
	seq        int
}

func (s *splice) insertion() bool { return s.start == s.end }

// plan turns the edits into non-overlapping splices sorted by position.
func (b *Batch) plan() ([]*splice, error) {
	var destructive, inserts []*splice
	type move struct {
		m    *jast.Moved
		desc string
	}
	var moved []move

	for i, e := range b.edits {
		s := b.splice(e)
		s.seq = i
		if e.destructive() {
			destructive = append(destructive, s)
		} else {
			inserts = append(inserts, s)
		}
		for _, m := range moves(e) {
			moved = append(moved, move{m, e.Desc})
		}
	}

	sort.SliceStable(moved, func(i, j int) bool { return moved[i].m.From < moved[j].m.From })
	for i := 1; i < len(moved); i++ {
		if moved[i].m.From < moved[i-1].m.To {
			return nil, b.conflict(moved[i-1].desc, moved[i].desc, moved[i].m.From)
		}
	}

	// A move whose source no destructive edit covers is deleted at its
	// origin. Partial overlaps cannot be honoured.
	var origins []*splice
	for _, mv := range moved {
		from, to := b.unit.Offset(mv.m.From), b.unit.Offset(mv.m.To)
		covered := false
		for _, d := range destructive {
			switch {
			case d.start <= from && to <= d.end:
				covered = true
			case from < d.end && d.start < to:
				return nil, b.conflict(d.desc, mv.desc, mv.m.From)
			}
		}
		if !covered {
			start, end := b.removal(mv.m.From, mv.m.To)
			origins = append(origins, &splice{start: start, end: end, desc: mv.desc, seq: len(b.edits)})
		}
	}
	destructive = append(destructive, origins...)

	sort.SliceStable(destructive, func(i, j int) bool { return destructive[i].start < destructive[j].start })
	for i := 1; i < len(destructive); i++ {
		prev, cur := destructive[i-1], destructive[i]
		if cur.start < prev.end {
			return nil, b.conflict(prev.desc, cur.desc, b.unit.PosAt(cur.start))
		}
	}
	for _, ins := range inserts {
		for _, d := range destructive {
			if d.start < ins.start && ins.start < d.end {
				return nil, b.conflict(d.desc, ins.desc, b.unit.PosAt(ins.start))
			}
		}
	}

	all := append(destructive, inserts...)
	sort.SliceStable(all, func(i, j int) bool {
		a, c := all[i], all[j]
		if a.start != c.start {
			return a.start < c.start
		}
		if a.insertion() != c.insertion() {
			return a.insertion()
		}
		return a.seq < c.seq
	})
	return all, nil
}

func (b *Batch) conflict(first, second string, at jast.Pos) error {
	return &ConflictingEditError{First: first, Second: second, Position: b.unit.Position(at)}
}

// moves lists the placeholders used by the node of e.
func moves(e *Edit) []*jast.Moved {
	if e.Node == nil {
		return nil
	}
	var out []*jast.Moved
	jast.Inspect(e.Node, func(n jast.Node) bool {
		if m, ok := n.(*jast.Moved); ok && len(m.Nodes) > 0 {
			out = append(out, m)
		}
		return true
	})
	return out
}

// Text returns the source text e puts in place of, or next to, its target.
// It is empty for a removal.
func (b *Batch) Text(e *Edit) string {
	if e.Node == nil {
		return ""
	}
	indent := b.unit.LineIndent(e.Target.Pos())
	if e.Kind == InsertLast {
		indent += b.unit.IndentUnit()
	}
	return b.print(e, indent)
}

func (b *Batch) print(e *Edit, indent string) string {
	if !e.printed {
		e.text = jast.Print(b.unit, e.Node, indent)
		e.printed = true
	}
	return e.text
}

func (b *Batch) splice(e *Edit) *splice {
	u := b.unit
	s := &splice{desc: e.Desc}
	switch e.Kind {
	case Replace:
		s.start, s.end = u.Offset(e.Target.Pos()), u.Offset(e.Target.End())
		s.text = b.print(e, u.LineIndent(e.Target.Pos()))
	case Remove:
		s.start, s.end = b.removal(u.LeadingStart(e.Target), e.Target.End())
	case InsertBefore:
		indent := u.LineIndent(e.Target.Pos())
		start := u.Offset(u.LeadingStart(e.Target))
		if b.blankBefore(start) {
			s.start = u.LineStart(start)
			s.text = indent + b.print(e, indent) + "\n"
		} else {
			s.start = u.Offset(e.Target.Pos())
			s.text = b.print(e, indent) + " "
		}
		s.end = s.start
	case InsertAfter:
		indent := u.LineIndent(e.Target.Pos())
		end := b.trailingComment(u.Offset(e.Target.End()))
		if lineEnd, ok := b.blankAfter(end); ok {
			s.start = lineEnd
			if lineEnd < len(u.Src) {
				s.start++
				s.text = indent + b.print(e, indent) + "\n"
			} else {
				s.text = "\n" + indent + b.print(e, indent)
			}
		} else {
			s.start = u.Offset(e.Target.End())
			s.text = " " + b.print(e, indent)
		}
		s.end = s.start
	case InsertLast:
		blockIndent := u.LineIndent(e.Target.Pos())
		inner := blockIndent + u.IndentUnit()
		closing := u.Offset(e.Target.End()) - 1
		if b.blankBefore(closing) {
			s.start = u.LineStart(closing)
			s.text = inner + b.print(e, inner) + "\n"
		} else {
			s.start = closing
			s.text = "\n" + inner + b.print(e, inner) + "\n" + blockIndent
		}
		s.end = s.start
	}
	return s
}

// removal returns the byte range deleted when removing the text from..to:
// whole lines when nothing else shares them, otherwise the text, a trailing
// comment and the blanks that follow.
func (b *Batch) removal(from, to jast.Pos) (int, int) {
	start := b.unit.Offset(from)
	end := b.trailingComment(b.unit.Offset(to))
	if b.blankBefore(start) {
		if lineEnd, ok := b.blankAfter(end); ok {
			start = b.unit.LineStart(start)
			if lineEnd < len(b.unit.Src) {
				lineEnd++
			}
			return start, lineEnd
		}
	}
	for end < len(b.unit.Src) && (b.unit.Src[end] == ' ' || b.unit.Src[end] == '\t') {
		end++
	}
	return start, end
}

// trailingComment extends end over a comment that starts on the same line
// after nothing but blanks.
func (b *Batch) trailingComment(end int) int {
	src := b.unit.Src
	i := end
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i >= len(src) || src[i] != '/' {
		return end
	}
	at := b.unit.PosAt(i)
	for _, c := range b.unit.Comments {
		if c.From == at {
			if strings.Contains(b.unit.TextRange(c.From, c.To), "\n") {
				return end
			}
			return b.unit.Offset(c.To)
		}
	}
	return end
}

func (b *Batch) blankBefore(offset int) bool {
	line := b.unit.LineStart(offset)
	return strings.TrimSpace(string(b.unit.Src[line:offset])) == ""
}

// blankAfter reports whether only blanks follow offset on its line, and the
// offset of the line end.
func (b *Batch) blankAfter(offset int) (int, bool) {
	lineEnd := b.unit.LineEnd(offset)
	return lineEnd, strings.TrimSpace(string(b.unit.Src[offset:lineEnd])) == ""
}
