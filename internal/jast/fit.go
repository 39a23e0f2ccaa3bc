package jast

// Fit returns repl, parenthesized when it binds too loosely to take the
// place of old in old's parent.
func Fit(u *Unit, old, repl Expr) Expr {
	if precedence(repl) < slotPrecedence(u.Parent(old), old) {
		return Paren(repl)
	}
	return repl
}

// slotPrecedence is the weakest precedence an expression may have to stand
// as the child of parent without parentheses.
func slotPrecedence(parent Node, child Expr) int {
	switch p := parent.(type) {
	case *UnaryExpr, *CastExpr:
		return precUnary
	case *PostfixExpr:
		return precPostfix
	case *BinaryExpr:
		if p.Y == child {
			return p.Op.Precedence() + 1
		}
		return p.Op.Precedence()
	case *AssignExpr:
		if p.LHS == child {
			return precPrimary
		}
		return precAssign
	case *CallExpr:
		if p.Recv == child {
			return precPrimary
		}
		return precAssign
	case *NewExpr:
		return precAssign
	case *FieldAccess:
		return precPrimary
	case *IndexExpr:
		if p.X == child {
			return precPrimary
		}
	case *CondExpr:
		switch child {
		case p.Cond:
			return precLOr
		case p.Then:
			return precAssign
		}
		return precCond
	case *InstanceOfExpr:
		return precRelational
	}
	return 0
}
