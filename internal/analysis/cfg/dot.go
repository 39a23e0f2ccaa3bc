package cfg

import (
	"fmt"
	"io"
	"strings"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// WriteDot writes g in Graphviz DOT format. Blocks that may throw according
// to throwers are drawn in red and exceptional edges are dashed. throwers
// may be nil.
func (g *Graph) WriteDot(w io.Writer, u *jast.Unit, throwers *Throwers) error {
	var sb strings.Builder
	sb.WriteString("digraph mgraph {\n\tmode=\"heir\";\n\tsplines=\"ortho\";\n\n")

	if throwers != nil {
		for _, b := range throwers.BlocksThrowing(nil) {
			fmt.Fprintf(&sb, "\t%q [color=red];\n", label(u, g, b))
		}
	}
	for _, e := range g.Edges {
		from, to := label(u, g, e.From), label(u, g, e.To)
		switch e.Kind {
		case Exception:
			fmt.Fprintf(&sb, "\t%q -> %q [style=dashed];\n", from, to)
		case True, False:
			fmt.Fprintf(&sb, "\t%q -> %q [label=%q];\n", from, to, e.Kind.String())
		default:
			fmt.Fprintf(&sb, "\t%q -> %q\n", from, to)
		}
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func label(u *jast.Unit, g *Graph, b *Block) string {
	switch b {
	case g.Entry:
		if len(b.Nodes) == 0 {
			return "ENTRY"
		}
	case g.Exit:
		return "EXIT"
	}
	if len(b.Nodes) == 0 {
		return fmt.Sprintf("%d: %s", b.Index, b.Comment)
	}
	n := b.Nodes[0]
	desc := describe(n)
	if u != nil && n.Pos().IsValid() {
		return fmt.Sprintf("%d: %s - line %d", b.Index, desc, u.Position(n.Pos()).Line)
	}
	return fmt.Sprintf("%d: %s", b.Index, desc)
}

func describe(n jast.Node) string {
	switch n := n.(type) {
	case *jast.ExprStmt:
		switch x := n.X.(type) {
		case *jast.AssignExpr:
			return "assignment"
		case *jast.CallExpr:
			return "call " + x.Name
		case *jast.UnaryExpr, *jast.PostfixExpr:
			return "increment statement"
		}
		return "expression statement"
	case *jast.LocalVarDecl:
		return "declaration"
	case *jast.VarDeclarator:
		return "loop variable " + n.Name
	case *jast.ReturnStmt:
		return "return statement"
	case *jast.ThrowStmt:
		return "throw statement"
	case *jast.BranchStmt:
		if n.Continue {
			return "continue statement"
		}
		return "break statement"
	case *jast.CatchClause:
		return "catch " + strings.Join(n.TypeNames, " | ")
	case jast.Expr:
		return "condition"
	}
	return strings.ToLower(n.Kind().String())
}
