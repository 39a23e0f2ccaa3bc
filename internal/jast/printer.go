package jast

import (
	"strings"
)

// Print renders n as it should appear at a position whose line is indented
// with indent. Nodes that come from u's source, and Moved placeholders, are
// copied from the source text and re-indented; synthesized nodes are
// formatted.
func Print(u *Unit, n Node, indent string) string {
	p := &printer{unit: u, indent: indent, unitIndent: "    "}
	if u != nil {
		p.unitIndent = u.IndentUnit()
	}
	p.node(n)
	return p.buf.String()
}

type printer struct {
	buf        strings.Builder
	unit       *Unit
	indent     string
	unitIndent string
	inForInit  bool

	// layout mode
	layout   bool
	leading  map[Node][]string
	comments []*Comment
}

func (p *printer) print(ss ...string) {
	for _, s := range ss {
		p.buf.WriteString(s)
	}
}

func (p *printer) pos() Pos { return Pos(p.buf.Len() + 1) }

func (p *printer) newline() {
	p.buf.WriteByte('\n')
	p.buf.WriteString(p.indent)
}

func (p *printer) indented(f func()) {
	saved := p.indent
	p.indent += p.unitIndent
	f()
	p.indent = saved
}

// original reports whether n must be copied from the source text.
func (p *printer) original(n Node) bool {
	return !p.layout && p.unit != nil && n.Pos().IsValid()
}

func (p *printer) node(n Node) {
	if n == nil || isNilNode(n) {
		return
	}
	if m, ok := n.(*Moved); ok && !p.layout {
		p.verbatim(m.From, m.To)
		return
	}
	if p.original(n) {
		p.verbatim(n.Pos(), n.End())
		return
	}
	start := p.pos()
	switch n := n.(type) {
	case Expr:
		p.expr(n)
	case Stmt:
		p.stmt(n)
	default:
		p.decl(n)
	}
	if p.layout {
		r := n.span()
		r.From, r.To = start, p.pos()
	}
}

// verbatim copies source text, moving continuation lines from the source
// indentation to the current one.
func (p *printer) verbatim(from, to Pos) {
	text := p.unit.TextRange(from, to)
	srcIndent := p.unit.LineIndent(from)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			p.buf.WriteByte('\n')
			switch {
			case strings.TrimSpace(line) == "":
				line = ""
			case strings.HasPrefix(line, srcIndent):
				line = p.indent + line[len(srcIndent):]
			}
		}
		p.buf.WriteString(line)
	}
}

func (p *printer) leadingComments(n Node) {
	if !p.layout {
		return
	}
	for _, text := range p.leading[n] {
		start := p.pos()
		p.print(text)
		p.comments = append(p.comments, &Comment{Range: Range{From: start, To: p.pos()}, Text: text})
		p.newline()
	}
}

// Expressions.

const (
	precAssign = 1 + iota
	precCond
	precLOr
	precLAnd
	precOr
	precXor
	precAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precPrimary
)

// Precedence returns the binding strength of op.
func (op BinaryOp) Precedence() int {
	switch op {
	case LOr:
		return precLOr
	case LAnd:
		return precLAnd
	case Or:
		return precOr
	case Xor:
		return precXor
	case And:
		return precAnd
	case Eql, Neq:
		return precEquality
	case Lss, Leq, Gtr, Geq:
		return precRelational
	case Shl, Shr, UShr:
		return precShift
	case Add, Sub:
		return precAdditive
	case Mul, Quo, Rem:
		return precMultiplicative
	}
	return precPrimary
}

func precedence(e Expr) int {
	switch e := e.(type) {
	case *AssignExpr:
		return precAssign
	case *CondExpr:
		return precCond
	case *BinaryExpr:
		return e.Op.Precedence()
	case *InstanceOfExpr:
		return precRelational
	case *UnaryExpr, *CastExpr:
		return precUnary
	case *PostfixExpr:
		return precPostfix
	case *Moved:
		if len(e.Nodes) == 1 {
			if x, ok := e.Nodes[0].(Expr); ok {
				return precedence(x)
			}
		}
	}
	return precPrimary
}

// operand prints e, parenthesized when it binds looser than prec.
func (p *printer) operand(e Expr, prec int) {
	if precedence(e) < prec {
		p.print("(")
		p.node(e)
		p.print(")")
		return
	}
	p.node(e)
}

func (p *printer) exprList(xs []Expr) {
	for i, x := range xs {
		if i > 0 {
			p.print(", ")
		}
		p.operand(x, precAssign)
	}
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case *Ident:
		p.print(e.Name)
	case *TypeRef:
		p.print(e.Name)
	case *Literal:
		p.print(e.Raw)
	case *ThisExpr:
		p.print("this")
	case *ParenExpr:
		p.print("(")
		p.node(e.X)
		p.print(")")
	case *UnaryExpr:
		p.print(string(e.Op))
		if u, ok := Unparen(e.X).(*UnaryExpr); ok && (e.Op == Neg || e.Op == Plus) && u.Op[0] == e.Op[0] {
			p.print("(")
			p.node(e.X)
			p.print(")")
			return
		}
		p.operand(e.X, precUnary)
	case *PostfixExpr:
		p.operand(e.X, precPostfix)
		p.print(string(e.Op))
	case *BinaryExpr:
		prec := e.Op.Precedence()
		p.operand(e.X, prec)
		p.print(" ", string(e.Op), " ")
		p.operand(e.Y, prec+1)
	case *AssignExpr:
		p.operand(e.LHS, precPrimary)
		p.print(" ", string(e.Op), " ")
		p.operand(e.RHS, precAssign)
	case *CallExpr:
		switch {
		case e.Super:
			p.print("super.")
		case e.Recv != nil:
			p.operand(e.Recv, precPrimary)
			p.print(".")
		}
		p.print(e.Name, "(")
		p.exprList(e.Args)
		p.print(")")
	case *NewExpr:
		p.print("new ", e.TypeName, "(")
		p.exprList(e.Args)
		p.print(")")
	case *FieldAccess:
		p.operand(e.X, precPrimary)
		p.print(".", e.Name)
	case *CastExpr:
		p.print("(", e.TypeName, ") ")
		p.operand(e.X, precUnary)
	case *CondExpr:
		p.operand(e.Cond, precLOr)
		p.print(" ? ")
		p.operand(e.Then, precAssign)
		p.print(" : ")
		p.operand(e.Else, precCond)
	case *IndexExpr:
		p.operand(e.X, precPrimary)
		p.print("[")
		p.node(e.Index)
		p.print("]")
	case *InstanceOfExpr:
		p.operand(e.X, precRelational)
		p.print(" instanceof ", e.TypeName)
	case *OpaqueExpr:
		if p.unit != nil && e.Pos().IsValid() {
			p.verbatim(e.Pos(), e.End())
		}
	}
}

// Statements.

func blockLike(s Stmt) bool {
	switch s := s.(type) {
	case *Block:
		return true
	case *Moved:
		if len(s.Nodes) == 1 {
			_, ok := s.Nodes[0].(*Block)
			return ok
		}
	}
	return false
}

// body prints the body of a compound statement after its header.
func (p *printer) body(s Stmt) {
	if blockLike(s) {
		p.print(" ")
		p.node(s)
		return
	}
	p.indented(func() {
		p.newline()
		p.node(s)
	})
}

func (p *printer) stmtList(stmts []Stmt) {
	for i, s := range stmts {
		if i > 0 {
			p.newline()
		}
		p.leadingComments(s)
		p.node(s)
	}
}

func (p *printer) varDecl(mods []string, typ string, vars []*VarDeclarator) {
	for _, m := range mods {
		p.print(m, " ")
	}
	p.print(typ, " ")
	for i, v := range vars {
		if i > 0 {
			p.print(", ")
		}
		p.node(v)
	}
}

func (p *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case *Block:
		p.print("{")
		p.indented(func() {
			for _, c := range s.Stmts {
				p.newline()
				p.leadingComments(c)
				p.node(c)
			}
		})
		p.newline()
		p.print("}")
	case *StmtList:
		p.stmtList(s.Stmts)
	case *ExprStmt:
		p.node(s.X)
		if !p.inForInit {
			p.print(";")
		}
	case *LocalVarDecl:
		p.varDecl(s.Modifiers, s.TypeName, s.Vars)
		if !p.inForInit {
			p.print(";")
		}
	case *IfStmt:
		p.print("if (")
		p.node(s.Cond)
		p.print(")")
		p.body(s.Then)
		if s.Else == nil {
			return
		}
		if blockLike(s.Then) {
			p.print(" else")
		} else {
			p.newline()
			p.print("else")
		}
		if _, ok := s.Else.(*IfStmt); ok {
			p.print(" ")
			p.node(s.Else)
			return
		}
		p.body(s.Else)
	case *WhileStmt:
		p.print("while (")
		p.node(s.Cond)
		p.print(")")
		p.body(s.Body)
	case *DoStmt:
		p.print("do")
		p.body(s.Body)
		if blockLike(s.Body) {
			p.print(" ")
		} else {
			p.newline()
		}
		p.print("while (")
		p.node(s.Cond)
		p.print(");")
	case *ForStmt:
		p.print("for (")
		p.inForInit = true
		for i, init := range s.Init {
			if i > 0 {
				p.print(", ")
			}
			p.node(init)
		}
		p.inForInit = false
		p.print(";")
		if s.Cond != nil {
			p.print(" ")
			p.node(s.Cond)
		}
		p.print(";")
		if len(s.Update) > 0 {
			p.print(" ")
			p.exprList(s.Update)
		}
		p.print(")")
		p.body(s.Body)
	case *ForEachStmt:
		p.print("for (", s.TypeName, " ")
		p.node(s.Var)
		p.print(" : ")
		p.node(s.X)
		p.print(")")
		p.body(s.Body)
	case *ReturnStmt:
		p.print("return")
		if s.Result != nil {
			p.print(" ")
			p.node(s.Result)
		}
		p.print(";")
	case *ThrowStmt:
		p.print("throw ")
		p.node(s.X)
		p.print(";")
	case *BranchStmt:
		if s.Continue {
			p.print("continue")
		} else {
			p.print("break")
		}
		if s.Label != "" {
			p.print(" ", s.Label)
		}
		p.print(";")
	case *EmptyStmt:
		p.print(";")
	case *TryStmt:
		p.print("try ")
		if len(s.Resources) > 0 {
			p.print("(")
			p.inForInit = true
			for i, r := range s.Resources {
				if i > 0 {
					p.print("; ")
				}
				p.node(r)
			}
			p.inForInit = false
			p.print(") ")
		}
		p.node(s.Body)
		for _, c := range s.Catches {
			p.print(" ")
			p.node(c)
		}
		if s.Finally != nil {
			p.print(" finally ")
			p.node(s.Finally)
		}
	case *SwitchStmt:
		p.print("switch (")
		p.node(s.Tag)
		p.print(") {")
		for _, c := range s.Cases {
			p.newline()
			p.node(c)
		}
		p.newline()
		p.print("}")
	case *LabeledStmt:
		p.print(s.Label, ": ")
		p.node(s.Stmt)
	case *OpaqueStmt:
		if p.unit != nil && s.Pos().IsValid() {
			p.verbatim(s.Pos(), s.End())
		}
	}
}

// Declarations and clauses.

func (p *printer) decl(n Node) {
	switch n := n.(type) {
	case *VarDeclarator:
		p.print(n.Name)
		if n.Init != nil {
			p.print(" = ")
			p.operand(n.Init, precAssign)
		}
	case *CatchClause:
		p.print("catch (", strings.Join(n.TypeNames, " | "), " ", n.Name, ") ")
		p.node(n.Body)
	case *CaseClause:
		if n.Exprs == nil {
			p.print("default:")
		} else {
			p.print("case ")
			p.exprList(n.Exprs)
			p.print(":")
		}
		p.indented(func() {
			for _, s := range n.Body {
				p.newline()
				p.leadingComments(s)
				p.node(s)
			}
		})
	case *Param:
		p.print(n.TypeName, " ", n.Name)
	case *FieldDecl:
		p.varDecl(n.Modifiers, n.TypeName, n.Vars)
		p.print(";")
	case *MethodDecl:
		p.method(n)
	case *ClassDecl:
		p.modifiers(n.Modifiers)
		p.print("class ", n.Name)
		if n.Extends != "" {
			p.print(" extends ", n.Extends)
		}
		p.print(" {")
		p.indented(func() {
			for i, m := range n.Members {
				if i > 0 {
					p.buf.WriteByte('\n')
				}
				p.newline()
				p.leadingComments(m)
				p.node(m)
			}
		})
		p.newline()
		p.print("}")
	case *File:
		if n.Package != "" {
			p.print("package ", n.Package, ";\n\n")
		}
		for _, imp := range n.Imports {
			p.print("import ", imp, ";\n")
		}
		if len(n.Imports) > 0 {
			p.print("\n")
		}
		for i, t := range n.Types {
			if i > 0 {
				p.print("\n")
			}
			p.leadingComments(t)
			p.node(t)
			p.print("\n")
		}
	}
}

func (p *printer) modifiers(mods []string) {
	for _, m := range mods {
		if strings.HasPrefix(m, "@") {
			p.print(m)
			p.newline()
			continue
		}
		p.print(m, " ")
	}
}

func (p *printer) method(m *MethodDecl) {
	p.modifiers(m.Modifiers)
	if m.ReturnType != "" {
		p.print(m.ReturnType, " ")
	}
	p.print(m.Name, "(")
	for i, prm := range m.Params {
		if i > 0 {
			p.print(", ")
		}
		p.node(prm)
	}
	p.print(")")
	if len(m.Throws) > 0 {
		p.print(" throws ", strings.Join(m.Throws, ", "))
	}
	if m.Body == nil {
		p.print(";")
		return
	}
	p.print(" ")
	p.node(m.Body)
}
