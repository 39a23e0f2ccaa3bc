package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
	"github.com/autorefactor/autorefactor/internal/purity"
	"github.com/autorefactor/autorefactor/internal/reach"
)

// NewDoWhileRatherThanWhile turns a while loop into a do/while loop when
// its condition always holds on entry.
func NewDoWhileRatherThanWhile() Rule {
	return &rule{
		name:     "do-while-rather-than-while",
		doc:      "Replaces a while loop that always runs at least once by a do/while loop.",
		handlers: Handlers{jast.KindWhile: doWhileRatherThanWhile},
	}
}

func doWhileRatherThanWhile(ctx *Context, n jast.Node) Outcome {
	s := n.(*jast.WhileStmt)
	if _, literal := match.BoolConstant(s.Cond); literal || !purity.IsPassive(s.Cond) {
		return Continue
	}
	if reach.AlwaysEvaluatesTo(ctx.Unit, s, s.Cond) != reach.True {
		return Continue
	}
	b := ctx.Batch
	b.Replace(s, &jast.DoStmt{Body: b.Move(s.Body), Cond: b.Move(s.Cond)}, "use do/while")
	return Skip
}
