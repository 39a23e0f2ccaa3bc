package jast

// Kind tags every node type so rules can dispatch without type switches.
type Kind int

const (
	KindInvalid Kind = iota

	// expressions
	KindIdent
	KindTypeRef
	KindLiteral
	KindParen
	KindUnary
	KindPostfix
	KindBinary
	KindAssign
	KindCall
	KindNew
	KindFieldAccess
	KindCast
	KindThis
	KindConditional
	KindIndex
	KindInstanceOf
	KindOpaqueExpr

	// statements
	KindBlock
	KindExprStmt
	KindLocalVar
	KindVarDeclarator
	KindIf
	KindWhile
	KindDo
	KindFor
	KindForEach
	KindReturn
	KindThrow
	KindBreak
	KindContinue
	KindEmpty
	KindTry
	KindCatch
	KindSwitch
	KindCase
	KindLabeled
	KindStmtList
	KindOpaqueStmt

	// declarations
	KindFile
	KindClass
	KindField
	KindMethod
	KindParam

	// placeholder for original source text relocated by an edit
	KindMoved
)

var kindNames = [...]string{
	KindInvalid:       "Invalid",
	KindIdent:         "Ident",
	KindTypeRef:       "TypeRef",
	KindLiteral:       "Literal",
	KindParen:         "Paren",
	KindUnary:         "Unary",
	KindPostfix:       "Postfix",
	KindBinary:        "Binary",
	KindAssign:        "Assign",
	KindCall:          "Call",
	KindNew:           "New",
	KindFieldAccess:   "FieldAccess",
	KindCast:          "Cast",
	KindThis:          "This",
	KindConditional:   "Conditional",
	KindIndex:         "Index",
	KindInstanceOf:    "InstanceOf",
	KindOpaqueExpr:    "OpaqueExpr",
	KindBlock:         "Block",
	KindExprStmt:      "ExprStmt",
	KindLocalVar:      "LocalVar",
	KindVarDeclarator: "VarDeclarator",
	KindIf:            "If",
	KindWhile:         "While",
	KindDo:            "Do",
	KindFor:           "For",
	KindForEach:       "ForEach",
	KindReturn:        "Return",
	KindThrow:         "Throw",
	KindBreak:         "Break",
	KindContinue:      "Continue",
	KindEmpty:         "Empty",
	KindTry:           "Try",
	KindCatch:         "Catch",
	KindSwitch:        "Switch",
	KindCase:          "Case",
	KindLabeled:       "Labeled",
	KindStmtList:      "StmtList",
	KindOpaqueStmt:    "OpaqueStmt",
	KindFile:          "File",
	KindClass:         "Class",
	KindField:         "Field",
	KindMethod:        "Method",
	KindParam:         "Param",
	KindMoved:         "Moved",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
