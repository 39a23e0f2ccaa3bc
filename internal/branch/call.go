package branch

import "github.com/autorefactor/autorefactor/internal/jast"

type Call struct {
	Type string // declaring type
	Name string // method name
}

// DeviatingFuncs lists known control flow deviating method calls.
var DeviatingFuncs = map[Call]BranchKind{
	{"java.lang.System", "exit"}:  Exit,
	{"java.lang.Runtime", "exit"}: Exit,
	{"java.lang.Runtime", "halt"}: Exit,
}

// ExprCall gets the resolved call of an ExprStmt.
func ExprCall(stmt *jast.ExprStmt) (Call, bool) {
	call, ok := jast.Unparen(stmt.X).(*jast.CallExpr)
	if !ok || call.Method == nil || call.Method.DeclaringType == nil {
		return Call{}, false
	}
	return Call{Type: call.Method.DeclaringType.QualifiedName, Name: call.Name}, true
}
