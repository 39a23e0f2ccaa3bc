package cfg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// TypeSet is a set of exception types keyed by qualified name.
type TypeSet map[string]*jast.TypeBinding

func NewTypeSet(types ...*jast.TypeBinding) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		if t != nil {
			s[t.QualifiedName] = t
		}
	}
	return s
}

func (s TypeSet) Has(t *jast.TypeBinding) bool {
	if t == nil {
		return false
	}
	_, ok := s[t.QualifiedName]
	return ok
}

// Names returns the qualified names in the set, sorted.
func (s TypeSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Throwers indexes the blocks and exceptional edges that may throw, with the
// exception types they may throw. Blocks and edges that cannot throw have no
// entry.
type Throwers struct {
	blocks map[*Block]TypeSet
	edges  map[*Edge]TypeSet
}

func NewThrowers() *Throwers {
	return &Throwers{
		blocks: make(map[*Block]TypeSet),
		edges:  make(map[*Edge]TypeSet),
	}
}

// RecordBlockThrow adds types to what b may throw. Recording nothing is a
// no-op.
func (t *Throwers) RecordBlockThrow(b *Block, types ...*jast.TypeBinding) {
	set := NewTypeSet(types...)
	if len(set) == 0 {
		return
	}
	t.merge(t.blocks, b, set)
}

// RecordEdgeThrow adds types to what flows along the exceptional edge e.
// An empty or nil set is a no-op.
func (t *Throwers) RecordEdgeThrow(e *Edge, types TypeSet) {
	if len(types) == 0 {
		return
	}
	cp := make(TypeSet, len(types))
	for k, v := range types {
		cp[k] = v
	}
	if existing, ok := t.edges[e]; ok {
		for k, v := range cp {
			existing[k] = v
		}
		return
	}
	t.edges[e] = cp
}

func (t *Throwers) merge(m map[*Block]TypeSet, b *Block, set TypeSet) {
	existing, ok := m[b]
	if !ok {
		m[b] = set
		return
	}
	for k, v := range set {
		existing[k] = v
	}
}

// ThrownBy returns what b may throw, or nil.
func (t *Throwers) ThrownBy(b *Block) TypeSet {
	return t.blocks[b]
}

// BlocksThrowing returns the blocks that may throw typ, ordered by index.
// A nil typ selects every block that may throw anything.
func (t *Throwers) BlocksThrowing(typ *jast.TypeBinding) []*Block {
	var out []*Block
	for b, set := range t.blocks {
		if typ == nil || set.Has(typ) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// BlocksThrowingOtherThan maps each block to the types it may throw that
// are not in excluded. Blocks left with nothing are omitted.
func (t *Throwers) BlocksThrowingOtherThan(excluded TypeSet) map[*Block]TypeSet {
	out := make(map[*Block]TypeSet)
	for b, set := range t.blocks {
		rest := make(TypeSet)
		for name, typ := range set {
			if _, ok := excluded[name]; !ok {
				rest[name] = typ
			}
		}
		if len(rest) > 0 {
			out[b] = rest
		}
	}
	return out
}

// EdgesThrowing returns the exceptional edges along which typ may flow. A
// nil typ selects every recorded edge.
func (t *Throwers) EdgesThrowing(typ *jast.TypeBinding) []*Edge {
	var out []*Edge
	for e, set := range t.edges {
		if typ == nil || set.Has(typ) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From.Index != out[j].From.Index {
			return out[i].From.Index < out[j].From.Index
		}
		return out[i].To.Index < out[j].To.Index
	})
	return out
}

func (t *Throwers) String() string {
	var sb strings.Builder
	sb.WriteString("blocks={")
	for i, b := range t.BlocksThrowing(nil) {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d: [%s]", b.Index, strings.Join(t.blocks[b].Names(), " "))
	}
	sb.WriteString("} edges={")
	for i, e := range t.EdgesThrowing(nil) {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d->%d: [%s]", e.From.Index, e.To.Index, strings.Join(t.edges[e].Names(), " "))
	}
	sb.WriteString("}")
	return sb.String()
}

var (
	throwableType = &jast.TypeBinding{QualifiedName: "java.lang.Throwable", Supers: []*jast.TypeBinding{jast.ObjectType}}
	exceptionType = &jast.TypeBinding{QualifiedName: "java.lang.Exception", Supers: []*jast.TypeBinding{throwableType}, Checked: true}

	// RuntimeException marks the unchecked exceptions any call may raise.
	RuntimeException = &jast.TypeBinding{QualifiedName: "java.lang.RuntimeException", Supers: []*jast.TypeBinding{exceptionType}}

	arithmeticException  = unchecked("java.lang.ArithmeticException")
	nullPointerException = unchecked("java.lang.NullPointerException")
	indexException       = unchecked("java.lang.ArrayIndexOutOfBoundsException")
	classCastException   = unchecked("java.lang.ClassCastException")
)

func unchecked(name string) *jast.TypeBinding {
	return &jast.TypeBinding{QualifiedName: name, Supers: []*jast.TypeBinding{RuntimeException}}
}

// IndexThrows records, for each block of g, the exceptions its nodes may
// throw, and for each exceptional edge the part of them its catch clause
// may handle.
func IndexThrows(g *Graph) *Throwers {
	t := NewThrowers()
	for _, b := range g.Blocks {
		for _, n := range b.Nodes {
			t.RecordBlockThrow(b, thrownBy(n)...)
		}
	}
	for _, e := range g.Edges {
		if e.Kind != Exception || e.Catch == nil {
			continue
		}
		caught := make(TypeSet)
		for name, thrown := range t.blocks[e.From] {
			if mayCatch(e.Catch, thrown) {
				caught[name] = thrown
			}
		}
		t.RecordEdgeThrow(e, caught)
	}
	return t
}

func mayCatch(c *jast.CatchClause, thrown *jast.TypeBinding) bool {
	for i := range c.TypeNames {
		var caught *jast.TypeBinding
		if i < len(c.Types) {
			caught = c.Types[i]
		}
		if caught == nil {
			// unresolved handler: assume it may catch anything
			return true
		}
		if thrown.IsSubtypeOf(caught.QualifiedName) || caught.IsSubtypeOf(thrown.QualifiedName) {
			return true
		}
	}
	return false
}

// thrownBy lists what evaluating n may throw, without descending into
// nested statements: those live in blocks of their own.
func thrownBy(n jast.Node) []*jast.TypeBinding {
	var out []*jast.TypeBinding
	if x, ok := n.(jast.Expr); ok && topLevelMayThrow(x) {
		out = append(out, nullPointerException)
	}
	jast.Inspect(n, func(c jast.Node) bool {
		if c != n {
			if _, ok := c.(jast.Stmt); ok {
				if _, moved := c.(*jast.Moved); !moved {
					return false
				}
			}
			if _, ok := c.(*jast.Block); ok {
				return false
			}
		}
		switch c := c.(type) {
		case *jast.ThrowStmt:
			if t := jast.TypeOf(c.X); t != nil {
				out = append(out, t)
			} else {
				out = append(out, throwableType)
			}
		case *jast.CallExpr:
			out = append(out, invocation(c.Method)...)
			if c.Recv != nil && mayBeNull(c.Recv) {
				out = append(out, nullPointerException)
			}
			if c.Method != nil && unboxesArgs(c.Method.Params, c.Args) {
				out = append(out, nullPointerException)
			}
		case *jast.NewExpr:
			out = append(out, invocation(c.Ctor)...)
			if c.Ctor != nil && unboxesArgs(c.Ctor.Params, c.Args) {
				out = append(out, nullPointerException)
			}
		case *jast.BinaryExpr:
			if (c.Op == jast.Quo || c.Op == jast.Rem) && jast.IsIntegralType(c.Type) {
				if v, ok := constantDivisor(c.Y); !ok || v == 0 {
					out = append(out, arithmeticException)
				}
			}
			out = append(out, binaryConversions(c)...)
		case *jast.AssignExpr:
			out = append(out, assignConversions(c)...)
		case *jast.VarDeclarator:
			if c.Var != nil && c.Init != nil && c.Var.Type != nil && c.Var.Type.Primitive && mayUnbox(c.Init) {
				out = append(out, nullPointerException)
			}
		case *jast.UnaryExpr:
			if mayUnbox(c.X) {
				out = append(out, nullPointerException)
			}
		case *jast.PostfixExpr:
			if mayUnbox(c.X) {
				out = append(out, nullPointerException)
			}
		case *jast.CondExpr:
			if mayUnbox(c.Cond) {
				out = append(out, nullPointerException)
			}
		case *jast.FieldAccess:
			if mayBeNull(c.X) {
				out = append(out, nullPointerException)
			}
		case *jast.IndexExpr:
			out = append(out, indexException, nullPointerException)
		case *jast.CastExpr:
			if t := c.Type; t == nil || !t.Primitive {
				out = append(out, classCastException)
			} else if mayUnbox(c.X) {
				out = append(out, nullPointerException)
			}
		case *jast.OpaqueExpr, *jast.OpaqueStmt:
			out = append(out, throwableType)
		}
		return true
	})
	return out
}

// topLevelMayThrow reports whether using x as a condition, a switch
// selector or an iterated collection may dereference null. Statement
// expressions standing alone discard their value.
func topLevelMayThrow(x jast.Expr) bool {
	switch x := jast.Unparen(x).(type) {
	case *jast.AssignExpr, *jast.CallExpr, *jast.NewExpr, *jast.PostfixExpr:
		return false
	case *jast.UnaryExpr:
		if x.Op == jast.PreInc || x.Op == jast.PreDec {
			return false
		}
	}
	t := jast.TypeOf(x)
	if t != nil && t.Primitive {
		return false
	}
	return mayBeNull(x)
}

// mayUnbox reports whether converting x to a primitive may unbox null.
// Unresolved types are assumed boxed.
func mayUnbox(x jast.Expr) bool {
	t := jast.TypeOf(x)
	if t != nil && !jast.IsBoxedType(t) {
		return false
	}
	return mayBeNull(x)
}

// mayFailToString reports whether string conversion of x may run a
// toString that throws.
func mayFailToString(x jast.Expr) bool {
	t := jast.TypeOf(x)
	if t == nil {
		return true
	}
	return !t.Primitive && !jast.IsBoxedType(t) && !jast.IsStringType(t)
}

func unboxesArgs(params []*jast.TypeBinding, args []jast.Expr) bool {
	if len(params) != len(args) {
		return false
	}
	for i, p := range params {
		if p != nil && p.Primitive && mayUnbox(args[i]) {
			return true
		}
	}
	return false
}

func binaryConversions(c *jast.BinaryExpr) []*jast.TypeBinding {
	if c.Op == jast.Add && jast.IsStringType(c.Type) {
		for _, x := range []jast.Expr{c.X, c.Y} {
			if mayFailToString(x) {
				return []*jast.TypeBinding{RuntimeException}
			}
		}
		return nil
	}
	if c.Op == jast.Eql || c.Op == jast.Neq {
		// two references compare by identity
		xt, yt := jast.TypeOf(c.X), jast.TypeOf(c.Y)
		xp, yp := xt != nil && xt.Primitive, yt != nil && yt.Primitive
		if !xp && !yp {
			return nil
		}
	}
	if mayUnbox(c.X) || mayUnbox(c.Y) {
		return []*jast.TypeBinding{nullPointerException}
	}
	return nil
}

func assignConversions(c *jast.AssignExpr) []*jast.TypeBinding {
	lt := jast.TypeOf(c.LHS)
	if c.Op == jast.Assign {
		if lt != nil && lt.Primitive && mayUnbox(c.RHS) {
			return []*jast.TypeBinding{nullPointerException}
		}
		return nil
	}
	if c.Op == jast.AddAssign && jast.IsStringType(lt) {
		if mayFailToString(c.RHS) {
			return []*jast.TypeBinding{RuntimeException}
		}
		return nil
	}
	if mayUnbox(c.LHS) || mayUnbox(c.RHS) {
		return []*jast.TypeBinding{nullPointerException}
	}
	return nil
}

func invocation(m *jast.MethodBinding) []*jast.TypeBinding {
	if m == nil {
		return []*jast.TypeBinding{throwableType}
	}
	return append(append([]*jast.TypeBinding(nil), m.Exceptions...), RuntimeException)
}

func mayBeNull(x jast.Expr) bool {
	switch jast.Unparen(x).(type) {
	case *jast.ThisExpr, *jast.TypeRef, *jast.Literal, *jast.NewExpr:
		return false
	}
	return true
}

func constantDivisor(x jast.Expr) (int64, bool) {
	l, ok := jast.Unparen(x).(*jast.Literal)
	if !ok || (l.LitKind != jast.IntLit && l.LitKind != jast.LongLit) {
		return 0, false
	}
	raw := strings.TrimRight(strings.ReplaceAll(l.Raw, "_", ""), "lL")
	var v int64
	if _, err := fmt.Sscan(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}
