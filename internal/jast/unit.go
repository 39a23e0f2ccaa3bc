package jast

import (
	"sort"
	"strings"
)

// Comment is a line or block comment. Comments are kept beside the tree, not
// inside it.
type Comment struct {
	Range
	Text string
}

// Unit is one parsed and resolved compilation unit together with its
// source text.
type Unit struct {
	Name     string
	Src      []byte
	File     *File
	Comments []*Comment

	parents    map[Node]Node
	lines      []int // offsets of line starts
	commentEnd map[Pos]*Comment
	indentUnit string
}

// NewUnit indexes f, whose positions refer to src.
func NewUnit(name string, src []byte, f *File, comments []*Comment) *Unit {
	u := &Unit{
		Name:       name,
		Src:        src,
		File:       f,
		Comments:   comments,
		parents:    make(map[Node]Node),
		commentEnd: make(map[Pos]*Comment, len(comments)),
	}
	sort.Slice(u.Comments, func(i, j int) bool { return u.Comments[i].From < u.Comments[j].From })
	for _, c := range u.Comments {
		u.commentEnd[c.To] = c
	}
	u.lines = append(u.lines, 0)
	for i, b := range src {
		if b == '\n' {
			u.lines = append(u.lines, i+1)
		}
	}
	var link func(parent Node)
	link = func(parent Node) {
		for _, c := range Children(parent) {
			u.parents[c] = parent
			link(c)
		}
	}
	if f != nil {
		link(f)
	}
	u.indentUnit = detectIndent(src)
	return u
}

// Parent returns the parent of n, or nil for the root and for nodes that
// are not part of the unit.
func (u *Unit) Parent(n Node) Node {
	return u.parents[n]
}

// Contains reports whether n belongs to the unit's tree.
func (u *Unit) Contains(n Node) bool {
	if n == Node(u.File) {
		return true
	}
	_, ok := u.parents[n]
	return ok
}

// Enclosing returns the nearest proper ancestor of n for which match holds.
func (u *Unit) Enclosing(n Node, match func(Node) bool) Node {
	for p := u.Parent(n); p != nil; p = u.Parent(p) {
		if match(p) {
			return p
		}
	}
	return nil
}

// EnclosingMethod returns the method declaration containing n.
func (u *Unit) EnclosingMethod(n Node) *MethodDecl {
	m, _ := u.Enclosing(n, func(p Node) bool {
		_, ok := p.(*MethodDecl)
		return ok
	}).(*MethodDecl)
	return m
}

// Siblings returns the statement list holding s and its index there. ok is
// false when s is not directly inside a block, case group or statement list.
func (u *Unit) Siblings(s Stmt) (list []Stmt, index int, ok bool) {
	switch p := u.Parent(s).(type) {
	case *Block:
		list = p.Stmts
	case *CaseClause:
		list = p.Body
	case *StmtList:
		list = p.Stmts
	default:
		return nil, -1, false
	}
	for i, c := range list {
		if c == s {
			return list, i, true
		}
	}
	return nil, -1, false
}

// Offset converts p to a 0-based byte offset.
func (u *Unit) Offset(p Pos) int { return int(p) - 1 }

// PosAt converts a 0-based byte offset to a Pos.
func (u *Unit) PosAt(offset int) Pos { return Pos(offset + 1) }

// Text returns the source text of n.
func (u *Unit) Text(n Node) string {
	return u.TextRange(n.Pos(), n.End())
}

func (u *Unit) TextRange(from, to Pos) string {
	if !from.IsValid() || !to.IsValid() || to < from {
		return ""
	}
	return string(u.Src[u.Offset(from):u.Offset(to)])
}

// Position converts p into a line and column.
func (u *Unit) Position(p Pos) Position {
	if !p.IsValid() {
		return Position{Filename: u.Name}
	}
	off := u.Offset(p)
	line := sort.Search(len(u.lines), func(i int) bool { return u.lines[i] > off }) - 1
	return Position{
		Filename: u.Name,
		Offset:   off,
		Line:     line + 1,
		Column:   off - u.lines[line] + 1,
	}
}

// LineStart returns the offset of the first byte of the line holding offset.
func (u *Unit) LineStart(offset int) int {
	i := sort.Search(len(u.lines), func(i int) bool { return u.lines[i] > offset }) - 1
	if i < 0 {
		return 0
	}
	return u.lines[i]
}

// LineEnd returns the offset of the newline ending the line holding offset,
// or len(Src) on the last line.
func (u *Unit) LineEnd(offset int) int {
	for i := offset; i < len(u.Src); i++ {
		if u.Src[i] == '\n' {
			return i
		}
	}
	return len(u.Src)
}

// LineIndent returns the leading white space of the line holding p.
func (u *Unit) LineIndent(p Pos) string {
	if !p.IsValid() {
		return ""
	}
	start := u.LineStart(u.Offset(p))
	end := start
	for end < len(u.Src) && (u.Src[end] == ' ' || u.Src[end] == '\t') {
		end++
	}
	return string(u.Src[start:end])
}

// IndentUnit returns one level of indentation as used by the source.
func (u *Unit) IndentUnit() string { return u.indentUnit }

// LeadingStart returns the start of n extended over the comments that sit
// on their own lines directly above it.
func (u *Unit) LeadingStart(n Node) Pos {
	start := n.Pos()
	if !start.IsValid() {
		return start
	}
	for {
		off := u.Offset(start)
		i := off
		for i > 0 && isSpace(u.Src[i-1]) {
			i--
		}
		c, ok := u.commentEnd[u.PosAt(i)]
		if !ok || !u.onOwnLine(c) {
			return start
		}
		start = c.From
	}
}

// onOwnLine reports whether only white space precedes c on its line.
func (u *Unit) onOwnLine(c *Comment) bool {
	off := u.Offset(c.From)
	return strings.TrimSpace(string(u.Src[u.LineStart(off):off])) == ""
}

// CommentsIn returns the comments lying inside [from, to).
func (u *Unit) CommentsIn(from, to Pos) []*Comment {
	var out []*Comment
	for _, c := range u.Comments {
		if c.From >= from && c.To <= to {
			out = append(out, c)
		}
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// detectIndent guesses the indentation unit from the first indented line.
func detectIndent(src []byte) string {
	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "*") {
			continue
		}
		switch line[0] {
		case '\t':
			return "\t"
		case ' ':
			n := len(line) - len(strings.TrimLeft(line, " "))
			if n > 8 {
				n = 4
			}
			return strings.Repeat(" ", n)
		}
	}
	return "    "
}
