package jast

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil && !isNilNode(c) {
			out = append(out, c)
		}
	}
	addExprs := func(xs []Expr) {
		for _, x := range xs {
			add(x)
		}
	}
	addStmts := func(xs []Stmt) {
		for _, x := range xs {
			add(x)
		}
	}

	switch n := n.(type) {
	case *ParenExpr:
		add(n.X)
	case *UnaryExpr:
		add(n.X)
	case *PostfixExpr:
		add(n.X)
	case *BinaryExpr:
		add(n.X)
		add(n.Y)
	case *AssignExpr:
		add(n.LHS)
		add(n.RHS)
	case *CallExpr:
		add(n.Recv)
		addExprs(n.Args)
	case *NewExpr:
		addExprs(n.Args)
	case *FieldAccess:
		add(n.X)
	case *CastExpr:
		add(n.X)
	case *CondExpr:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *IndexExpr:
		add(n.X)
		add(n.Index)
	case *InstanceOfExpr:
		add(n.X)

	case *Block:
		addStmts(n.Stmts)
	case *ExprStmt:
		add(n.X)
	case *LocalVarDecl:
		for _, v := range n.Vars {
			add(v)
		}
	case *VarDeclarator:
		add(n.Init)
	case *IfStmt:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *WhileStmt:
		add(n.Cond)
		add(n.Body)
	case *DoStmt:
		add(n.Body)
		add(n.Cond)
	case *ForStmt:
		addStmts(n.Init)
		add(n.Cond)
		addExprs(n.Update)
		add(n.Body)
	case *ForEachStmt:
		add(n.Var)
		add(n.X)
		add(n.Body)
	case *ReturnStmt:
		add(n.Result)
	case *ThrowStmt:
		add(n.X)
	case *TryStmt:
		for _, r := range n.Resources {
			add(r)
		}
		add(n.Body)
		for _, c := range n.Catches {
			add(c)
		}
		add(n.Finally)
	case *CatchClause:
		add(n.Body)
	case *SwitchStmt:
		add(n.Tag)
		for _, c := range n.Cases {
			add(c)
		}
	case *CaseClause:
		addExprs(n.Exprs)
		addStmts(n.Body)
	case *LabeledStmt:
		add(n.Stmt)
	case *StmtList:
		addStmts(n.Stmts)

	case *File:
		for _, t := range n.Types {
			add(t)
		}
	case *ClassDecl:
		for _, m := range n.Members {
			add(m)
		}
	case *FieldDecl:
		for _, v := range n.Vars {
			add(v)
		}
	case *MethodDecl:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	}
	return out
}

// isNilNode catches typed nil pointers stored in interface fields.
func isNilNode(n Node) bool {
	switch n := n.(type) {
	case *Block:
		return n == nil
	case *VarDeclarator:
		return n == nil
	case *LocalVarDecl:
		return n == nil
	case *CatchClause:
		return n == nil
	case *CaseClause:
		return n == nil
	case *ClassDecl:
		return n == nil
	case *MethodDecl:
		return n == nil
	case *Param:
		return n == nil
	case *IfStmt:
		return n == nil
	}
	return false
}

// Inspect traverses the tree rooted at n in depth-first order. If f returns
// false for a node, its children are not visited.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Any reports whether f holds for some node of the tree rooted at n. The
// traversal stops at the first match.
func Any(n Node, f func(Node) bool) bool {
	if n == nil {
		return false
	}
	if f(n) {
		return true
	}
	for _, c := range Children(n) {
		if Any(c, f) {
			return true
		}
	}
	return false
}

// StmtsOf returns the statements of s when it is a block, or s itself.
func StmtsOf(s Stmt) []Stmt {
	switch s := s.(type) {
	case nil:
		return nil
	case *Block:
		if s == nil {
			return nil
		}
		return s.Stmts
	case *StmtList:
		return s.Stmts
	}
	return []Stmt{s}
}

// IsEmptyStmt reports whether s is absent, an empty statement, or a block
// holding only empty statements.
func IsEmptyStmt(s Stmt) bool {
	switch s := s.(type) {
	case nil:
		return true
	case *EmptyStmt:
		return true
	case *Block:
		if s == nil {
			return true
		}
		for _, c := range s.Stmts {
			if !IsEmptyStmt(c) {
				return false
			}
		}
		return true
	}
	return false
}

// NodesOf converts a statement list to a node list.
func NodesOf(stmts []Stmt) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}
