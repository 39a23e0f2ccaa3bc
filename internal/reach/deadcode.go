package reach

import (
	"github.com/autorefactor/autorefactor/internal/branch"
	"github.com/autorefactor/autorefactor/internal/jast"
)

// TrailingDeadCode returns the statements that cannot be reached once s,
// a statement that never completes normally, has executed: its following
// siblings, then the siblings following each enclosing construct that s
// makes exit as well. Whenever it is unclear whether an enclosing construct
// still completes normally, the walk stops there.
func TrailingDeadCode(u *jast.Unit, s jast.Stmt) []jast.Stmt {
	var dead []jast.Stmt
	for s != nil {
		list, idx, ok := u.Siblings(s)
		if !ok {
			break
		}
		dead = append(dead, list[idx+1:]...)

		owner, ok := u.Parent(s).(*jast.Block)
		if !ok {
			break
		}
		s = exitedConstruct(u, owner)
	}
	return dead
}

// exitedConstruct returns the statement that certainly exits because
// block, whose execution never completes normally, does. It returns nil
// when no such statement is known.
func exitedConstruct(u *jast.Unit, block *jast.Block) jast.Stmt {
	switch p := u.Parent(block).(type) {
	case *jast.Block:
		return block
	case *jast.IfStmt:
		if p.Else == nil {
			return nil
		}
		other := p.Else
		if jast.Stmt(block) == p.Else {
			other = p.Then
		}
		if !branch.AlwaysExits(other) {
			return nil
		}
		return p
	case *jast.TryStmt:
		if block != p.Body || p.Finally != nil || len(p.Catches) == 0 {
			return nil
		}
		for _, c := range p.Catches {
			if !branch.AlwaysExits(c.Body) {
				return nil
			}
		}
		return p
	case *jast.CatchClause:
		try, ok := u.Parent(p).(*jast.TryStmt)
		if !ok || try.Finally != nil || !branch.AlwaysExits(try.Body) {
			return nil
		}
		for _, c := range try.Catches {
			if c != p && !branch.AlwaysExits(c.Body) {
				return nil
			}
		}
		return try
	}
	return nil
}
