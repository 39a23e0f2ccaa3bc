package jast

import "fmt"

// Pos is a 1-based byte offset into a unit's source. The zero value, NoPos,
// marks a node that was synthesized and has no source text of its own.
type Pos int

const NoPos Pos = 0

func (p Pos) IsValid() bool { return p != NoPos }

// Range is the source extent [From, To) of a node.
type Range struct {
	From, To Pos
}

func (r *Range) Pos() Pos { return r.From }
func (r *Range) End() Pos { return r.To }

func (r *Range) span() *Range { return r }

// Position is a human readable location.
type Position struct {
	Filename string
	Offset   int // 0-based byte offset
	Line     int // 1-based
	Column   int // 1-based, in bytes
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}
