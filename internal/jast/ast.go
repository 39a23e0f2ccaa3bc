// Package jast is a resolved syntax tree for Java compilation units.
//
// Nodes are owned by their parent and are never mutated once a Unit has been
// built from them. Expressions carry the static type computed by the front
// end; names, calls and declarations carry their bindings.
package jast

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() Pos
	End() Pos
	Kind() Kind
	span() *Range
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

type (
	UnaryOp   string
	PostfixOp string
	BinaryOp  string
	AssignOp  string
	LitKind   int
)

const (
	Not    UnaryOp = "!"
	Neg    UnaryOp = "-"
	Plus   UnaryOp = "+"
	BitNot UnaryOp = "~"
	PreInc UnaryOp = "++"
	PreDec UnaryOp = "--"
)

const (
	PostInc PostfixOp = "++"
	PostDec PostfixOp = "--"
)

const (
	Add  BinaryOp = "+"
	Sub  BinaryOp = "-"
	Mul  BinaryOp = "*"
	Quo  BinaryOp = "/"
	Rem  BinaryOp = "%"
	Shl  BinaryOp = "<<"
	Shr  BinaryOp = ">>"
	UShr BinaryOp = ">>>"
	Lss  BinaryOp = "<"
	Leq  BinaryOp = "<="
	Gtr  BinaryOp = ">"
	Geq  BinaryOp = ">="
	Eql  BinaryOp = "=="
	Neq  BinaryOp = "!="
	And  BinaryOp = "&"
	Or   BinaryOp = "|"
	Xor  BinaryOp = "^"
	LAnd BinaryOp = "&&"
	LOr  BinaryOp = "||"
)

const (
	Assign     AssignOp = "="
	AddAssign  AssignOp = "+="
	SubAssign  AssignOp = "-="
	MulAssign  AssignOp = "*="
	QuoAssign  AssignOp = "/="
	RemAssign  AssignOp = "%="
	AndAssign  AssignOp = "&="
	OrAssign   AssignOp = "|="
	XorAssign  AssignOp = "^="
	ShlAssign  AssignOp = "<<="
	ShrAssign  AssignOp = ">>="
	UShrAssign AssignOp = ">>>="
)

const (
	IntLit LitKind = iota
	LongLit
	FloatLit
	DoubleLit
	CharLit
	StringLit
	BoolLit
	NullLit
)

// IsComparison reports whether op yields a boolean from two operands of
// the same kind.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case Lss, Leq, Gtr, Geq, Eql, Neq:
		return true
	}
	return false
}

// Expressions.
type (
	Ident struct {
		Range
		Name string
		Var  *VariableBinding
		Type *TypeBinding
	}

	// TypeRef is a type name used as the receiver of a static member access.
	TypeRef struct {
		Range
		Name string
		Type *TypeBinding
	}

	Literal struct {
		Range
		LitKind LitKind
		Raw     string // source spelling, quotes and suffixes included
		Type    *TypeBinding
	}

	ParenExpr struct {
		Range
		X Expr
	}

	UnaryExpr struct {
		Range
		Op   UnaryOp
		X    Expr
		Type *TypeBinding
	}

	PostfixExpr struct {
		Range
		Op   PostfixOp
		X    Expr
		Type *TypeBinding
	}

	BinaryExpr struct {
		Range
		Op   BinaryOp
		X, Y Expr
		Type *TypeBinding
	}

	AssignExpr struct {
		Range
		Op       AssignOp
		LHS, RHS Expr
		Type     *TypeBinding
	}

	// CallExpr is a method invocation. Recv is nil for unqualified calls.
	CallExpr struct {
		Range
		Recv   Expr
		Super  bool
		Name   string
		Args   []Expr
		Method *MethodBinding
		Type   *TypeBinding
	}

	NewExpr struct {
		Range
		TypeName string
		Args     []Expr
		Ctor     *MethodBinding
		Type     *TypeBinding
	}

	FieldAccess struct {
		Range
		X    Expr
		Name string
		Var  *VariableBinding
		Type *TypeBinding
	}

	CastExpr struct {
		Range
		TypeName string
		X        Expr
		Type     *TypeBinding
	}

	ThisExpr struct {
		Range
		Type *TypeBinding
	}

	CondExpr struct {
		Range
		Cond, Then, Else Expr
		Type             *TypeBinding
	}

	IndexExpr struct {
		Range
		X, Index Expr
		Type     *TypeBinding
	}

	InstanceOfExpr struct {
		Range
		X        Expr
		TypeName string
	}

	// OpaqueExpr stands for an expression form the tree does not model
	// (lambdas, method references, array creations, ...). It is printed
	// from source and analyzers treat it as unknown.
	OpaqueExpr struct {
		Range
		Type *TypeBinding
	}
)

// Statements.
type (
	Block struct {
		Range
		Stmts []Stmt
	}

	ExprStmt struct {
		Range
		X Expr
	}

	LocalVarDecl struct {
		Range
		Modifiers []string
		TypeName  string
		Type      *TypeBinding
		Vars      []*VarDeclarator
	}

	VarDeclarator struct {
		Range
		Name string
		Var  *VariableBinding
		Init Expr
	}

	IfStmt struct {
		Range
		Cond Expr
		Then Stmt
		Else Stmt
	}

	WhileStmt struct {
		Range
		Cond Expr
		Body Stmt
	}

	DoStmt struct {
		Range
		Body Stmt
		Cond Expr
	}

	// ForStmt is a basic for loop. Init holds either a single *LocalVarDecl
	// or a list of *ExprStmt.
	ForStmt struct {
		Range
		Init   []Stmt
		Cond   Expr
		Update []Expr
		Body   Stmt
	}

	ForEachStmt struct {
		Range
		TypeName string
		Var      *VarDeclarator
		X        Expr
		Body     Stmt
	}

	ReturnStmt struct {
		Range
		Result Expr
	}

	ThrowStmt struct {
		Range
		X Expr
	}

	// BranchStmt is a break or continue statement.
	BranchStmt struct {
		Range
		Continue bool
		Label    string
	}

	EmptyStmt struct {
		Range
	}

	TryStmt struct {
		Range
		Resources []*LocalVarDecl
		Body      *Block
		Catches   []*CatchClause
		Finally   *Block
	}

	CatchClause struct {
		Range
		TypeNames []string
		Types     []*TypeBinding
		Name      string
		Var       *VariableBinding
		Body      *Block
	}

	SwitchStmt struct {
		Range
		Tag   Expr
		Cases []*CaseClause
	}

	// CaseClause is one labelled group of a switch. Exprs is nil for
	// the default group.
	CaseClause struct {
		Range
		Exprs []Expr
		Body  []Stmt
	}

	LabeledStmt struct {
		Range
		Label string
		Stmt  Stmt
	}

	// StmtList is a sequence of statements spliced into the enclosing
	// statement list. It only appears in replacement trees.
	StmtList struct {
		Range
		Stmts []Stmt
	}

	OpaqueStmt struct {
		Range
	}
)

// Declarations.
type (
	File struct {
		Range
		Package string
		Imports []string
		Types   []*ClassDecl
	}

	ClassDecl struct {
		Range
		Modifiers []string
		Name      string
		Extends   string
		Type      *TypeBinding
		Members   []Node
	}

	FieldDecl struct {
		Range
		Modifiers []string
		TypeName  string
		Type      *TypeBinding
		Vars      []*VarDeclarator
	}

	MethodDecl struct {
		Range
		Modifiers  []string
		ReturnType string // empty for constructors
		Name       string
		Params     []*Param
		Throws     []string
		Body       *Block
		Method     *MethodBinding
	}

	Param struct {
		Range
		TypeName string
		Name     string
		Var      *VariableBinding
	}
)

// Moved is a placeholder for original source text that an edit relocates.
// Nodes are the original nodes covered, in source order; From and To span
// their text including leading comments.
type Moved struct {
	Range
	Nodes []Node
}

func (*Ident) Kind() Kind          { return KindIdent }
func (*TypeRef) Kind() Kind        { return KindTypeRef }
func (*Literal) Kind() Kind        { return KindLiteral }
func (*ParenExpr) Kind() Kind      { return KindParen }
func (*UnaryExpr) Kind() Kind      { return KindUnary }
func (*PostfixExpr) Kind() Kind    { return KindPostfix }
func (*BinaryExpr) Kind() Kind     { return KindBinary }
func (*AssignExpr) Kind() Kind     { return KindAssign }
func (*CallExpr) Kind() Kind       { return KindCall }
func (*NewExpr) Kind() Kind        { return KindNew }
func (*FieldAccess) Kind() Kind    { return KindFieldAccess }
func (*CastExpr) Kind() Kind       { return KindCast }
func (*ThisExpr) Kind() Kind       { return KindThis }
func (*CondExpr) Kind() Kind       { return KindConditional }
func (*IndexExpr) Kind() Kind      { return KindIndex }
func (*InstanceOfExpr) Kind() Kind { return KindInstanceOf }
func (*OpaqueExpr) Kind() Kind     { return KindOpaqueExpr }
func (*Block) Kind() Kind          { return KindBlock }
func (*ExprStmt) Kind() Kind       { return KindExprStmt }
func (*LocalVarDecl) Kind() Kind   { return KindLocalVar }
func (*VarDeclarator) Kind() Kind  { return KindVarDeclarator }
func (*IfStmt) Kind() Kind         { return KindIf }
func (*WhileStmt) Kind() Kind      { return KindWhile }
func (*DoStmt) Kind() Kind         { return KindDo }
func (*ForStmt) Kind() Kind        { return KindFor }
func (*ForEachStmt) Kind() Kind    { return KindForEach }
func (*ReturnStmt) Kind() Kind     { return KindReturn }
func (*ThrowStmt) Kind() Kind      { return KindThrow }
func (*EmptyStmt) Kind() Kind      { return KindEmpty }
func (*TryStmt) Kind() Kind        { return KindTry }
func (*CatchClause) Kind() Kind    { return KindCatch }
func (*SwitchStmt) Kind() Kind     { return KindSwitch }
func (*CaseClause) Kind() Kind     { return KindCase }
func (*LabeledStmt) Kind() Kind    { return KindLabeled }
func (*StmtList) Kind() Kind       { return KindStmtList }
func (*OpaqueStmt) Kind() Kind     { return KindOpaqueStmt }
func (*File) Kind() Kind           { return KindFile }
func (*ClassDecl) Kind() Kind      { return KindClass }
func (*FieldDecl) Kind() Kind      { return KindField }
func (*MethodDecl) Kind() Kind     { return KindMethod }
func (*Param) Kind() Kind          { return KindParam }
func (*Moved) Kind() Kind          { return KindMoved }

func (s *BranchStmt) Kind() Kind {
	if s.Continue {
		return KindContinue
	}
	return KindBreak
}

func (*Ident) exprNode()          {}
func (*TypeRef) exprNode()        {}
func (*Literal) exprNode()        {}
func (*ParenExpr) exprNode()      {}
func (*UnaryExpr) exprNode()      {}
func (*PostfixExpr) exprNode()    {}
func (*BinaryExpr) exprNode()     {}
func (*AssignExpr) exprNode()     {}
func (*CallExpr) exprNode()       {}
func (*NewExpr) exprNode()        {}
func (*FieldAccess) exprNode()    {}
func (*CastExpr) exprNode()       {}
func (*ThisExpr) exprNode()       {}
func (*CondExpr) exprNode()       {}
func (*IndexExpr) exprNode()      {}
func (*InstanceOfExpr) exprNode() {}
func (*OpaqueExpr) exprNode()     {}
func (*Moved) exprNode()          {}

func (*Block) stmtNode()        {}
func (*ExprStmt) stmtNode()     {}
func (*LocalVarDecl) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*DoStmt) stmtNode()       {}
func (*ForStmt) stmtNode()      {}
func (*ForEachStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode()   {}
func (*ThrowStmt) stmtNode()    {}
func (*BranchStmt) stmtNode()   {}
func (*EmptyStmt) stmtNode()    {}
func (*TryStmt) stmtNode()      {}
func (*SwitchStmt) stmtNode()   {}
func (*LabeledStmt) stmtNode()  {}
func (*StmtList) stmtNode()     {}
func (*OpaqueStmt) stmtNode()   {}
func (*Moved) stmtNode()        {}

// TypeOf returns the static type of e, or nil when it is unresolved.
func TypeOf(e Expr) *TypeBinding {
	switch e := e.(type) {
	case *Ident:
		if e.Type == nil && e.Var != nil {
			return e.Var.Type
		}
		return e.Type
	case *TypeRef:
		return e.Type
	case *Literal:
		return e.Type
	case *ParenExpr:
		return TypeOf(e.X)
	case *UnaryExpr:
		return e.Type
	case *PostfixExpr:
		return e.Type
	case *BinaryExpr:
		return e.Type
	case *AssignExpr:
		return e.Type
	case *CallExpr:
		if e.Type == nil && e.Method != nil {
			return e.Method.Return
		}
		return e.Type
	case *NewExpr:
		return e.Type
	case *FieldAccess:
		if e.Type == nil && e.Var != nil {
			return e.Var.Type
		}
		return e.Type
	case *CastExpr:
		return e.Type
	case *ThisExpr:
		return e.Type
	case *CondExpr:
		return e.Type
	case *IndexExpr:
		return e.Type
	case *InstanceOfExpr:
		return Boolean
	case *OpaqueExpr:
		return e.Type
	case *Moved:
		if len(e.Nodes) == 1 {
			if x, ok := e.Nodes[0].(Expr); ok {
				return TypeOf(x)
			}
		}
	}
	return nil
}

// Unparen strips any number of enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
