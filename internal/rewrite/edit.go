package rewrite

import (
	"fmt"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// EditKind identifies what an edit does to the source.
type EditKind int

const (
	Replace EditKind = iota
	Remove
	InsertBefore
	InsertAfter
	InsertLast
)

func (k EditKind) String() string {
	switch k {
	case Replace:
		return "replace"
	case Remove:
		return "remove"
	case InsertBefore:
		return "insert-before"
	case InsertAfter:
		return "insert-after"
	case InsertLast:
		return "insert-last"
	default:
		return "invalid"
	}
}

// Edit is one proposed change against the original tree. Target is the
// node replaced or removed, or the anchor of an insertion.
type Edit struct {
	Kind   EditKind
	Target jast.Node
	Node   jast.Node // replacement or inserted node; nil for Remove
	Desc   string

	text    string
	printed bool
}

func (e *Edit) destructive() bool {
	return e.Kind == Replace || e.Kind == Remove
}

func (e *Edit) String() string {
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Target.Kind(), e.Desc)
}

// ConflictingEditError reports two edits of a batch that cannot both be
// applied. Nothing of a conflicting batch is applied.
type ConflictingEditError struct {
	First, Second string
	Position      jast.Position
}

func (e *ConflictingEditError) Error() string {
	return fmt.Sprintf("%s: conflicting edits %q and %q", e.Position, e.First, e.Second)
}
