package cfg

import (
	"github.com/autorefactor/autorefactor/internal/jast"
)

// Block is a basic block: a maximal run of statements and conditions that
// execute in sequence.
type Block struct {
	Index   int
	Comment string
	Nodes   []jast.Node
	Succs   []*Edge
	Preds   []*Edge

	try *tryScope
}

type EdgeKind int

const (
	Normal EdgeKind = iota
	True
	False
	Exception
)

func (k EdgeKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case True:
		return "true"
	case False:
		return "false"
	case Exception:
		return "exception"
	default:
		return "invalid"
	}
}

type Edge struct {
	From, To *Block
	Kind     EdgeKind
	Catch    *jast.CatchClause // handler reached by an Exception edge
}

// Graph is the control flow graph of one method body.
type Graph struct {
	Entry, Exit *Block
	Blocks      []*Block
	Edges       []*Edge

	blockOf map[jast.Node]*Block
}

// BlockOf returns the block holding n, a statement or branch condition.
func (g *Graph) BlockOf(n jast.Node) *Block {
	return g.blockOf[n]
}

// BlocksIn returns the blocks holding at least one node inside the source
// range of n.
func (g *Graph) BlocksIn(n jast.Node) []*Block {
	var out []*Block
	for _, b := range g.Blocks {
		for _, x := range b.Nodes {
			if x.Pos() >= n.Pos() && x.End() <= n.End() {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

func (g *Graph) Preds(b *Block) []*Block {
	out := make([]*Block, 0, len(b.Preds))
	for _, e := range b.Preds {
		out = append(out, e.From)
	}
	return out
}

func (g *Graph) Succs(b *Block) []*Block {
	out := make([]*Block, 0, len(b.Succs))
	for _, e := range b.Succs {
		out = append(out, e.To)
	}
	return out
}

type targets struct {
	tail  *targets
	label string
	brk   *Block
	cont  *Block // nil for labeled blocks and switches

	labelOnly bool // only a labeled break reaches it
}

type tryScope struct {
	outer   *tryScope
	catches []*jast.CatchClause
	entries []*Block
}

type builder struct {
	g       *Graph
	cur     *Block
	targets *targets
	try     *tryScope
	label   string // label of the statement being built, if any
}

// Build constructs the control flow graph of a method body. A method
// without a body yields a graph whose entry leads straight to the exit.
func Build(m *jast.MethodDecl) *Graph {
	g := &Graph{blockOf: make(map[jast.Node]*Block)}
	b := &builder{g: g}
	g.Entry = b.newBlock("entry")
	g.Exit = &Block{Comment: "exit"}
	b.cur = g.Entry
	if m.Body != nil {
		b.stmt(m.Body)
	}
	b.jump(g.Exit)
	g.Blocks = append(g.Blocks, g.Exit)
	b.exceptionEdges()
	g.prune()
	return g
}

func (b *builder) newBlock(comment string) *Block {
	blk := &Block{Comment: comment, try: b.try}
	b.g.Blocks = append(b.g.Blocks, blk)
	return blk
}

func (b *builder) add(n jast.Node) {
	if n == nil {
		return
	}
	b.cur.Nodes = append(b.cur.Nodes, n)
	b.g.blockOf[n] = b.cur
}

func (b *builder) edge(from, to *Block, kind EdgeKind) *Edge {
	e := &Edge{From: from, To: to, Kind: kind}
	from.Succs = append(from.Succs, e)
	to.Preds = append(to.Preds, e)
	b.g.Edges = append(b.g.Edges, e)
	return e
}

func (b *builder) jump(to *Block) {
	b.edge(b.cur, to, Normal)
}

// branchTo leaves the current block and continues in a fresh one that has
// no predecessor.
func (b *builder) branchTo(to *Block) {
	b.jump(to)
	b.cur = b.newBlock("unreachable")
}

func (b *builder) cond(c jast.Expr, then, els *Block) {
	b.add(c)
	b.edge(b.cur, then, True)
	b.edge(b.cur, els, False)
}

func (b *builder) takeLabel() string {
	l := b.label
	b.label = ""
	return l
}

func (b *builder) loop(brk, cont *Block, body func()) {
	b.targets = &targets{tail: b.targets, label: b.takeLabel(), brk: brk, cont: cont}
	body()
	b.targets = b.targets.tail
}

func (b *builder) stmt(s jast.Stmt) {
	switch s := s.(type) {
	case *jast.Block:
		for _, c := range s.Stmts {
			b.stmt(c)
		}
	case *jast.StmtList:
		for _, c := range s.Stmts {
			b.stmt(c)
		}
	case *jast.ReturnStmt, *jast.ThrowStmt:
		b.add(s)
		b.branchTo(b.g.Exit)
	case *jast.BranchStmt:
		b.add(s)
		b.branchTo(b.branchTarget(s))
	case *jast.IfStmt:
		then := b.newBlock("if.then")
		done := b.newBlock("if.done")
		els := done
		if s.Else != nil {
			els = b.newBlock("if.else")
		}
		b.cond(s.Cond, then, els)
		b.cur = then
		b.stmt(s.Then)
		b.jump(done)
		if s.Else != nil {
			b.cur = els
			b.stmt(s.Else)
			b.jump(done)
		}
		b.cur = done
	case *jast.WhileStmt:
		head := b.newBlock("while.cond")
		body := b.newBlock("while.body")
		done := b.newBlock("while.done")
		b.jump(head)
		b.cur = head
		b.cond(s.Cond, body, done)
		b.loop(done, head, func() {
			b.cur = body
			b.stmt(s.Body)
			b.jump(head)
		})
		b.cur = done
	case *jast.DoStmt:
		body := b.newBlock("do.body")
		cond := b.newBlock("do.cond")
		done := b.newBlock("do.done")
		b.jump(body)
		b.loop(done, cond, func() {
			b.cur = body
			b.stmt(s.Body)
			b.jump(cond)
		})
		b.cur = cond
		b.cond(s.Cond, body, done)
		b.cur = done
	case *jast.ForStmt:
		for _, init := range s.Init {
			b.add(init)
		}
		head := b.newBlock("for.cond")
		body := b.newBlock("for.body")
		post := b.newBlock("for.post")
		done := b.newBlock("for.done")
		b.jump(head)
		b.cur = head
		if s.Cond != nil {
			b.cond(s.Cond, body, done)
		} else {
			b.jump(body)
		}
		b.loop(done, post, func() {
			b.cur = body
			b.stmt(s.Body)
			b.jump(post)
		})
		b.cur = post
		for _, u := range s.Update {
			b.add(u)
		}
		b.jump(head)
		b.cur = done
	case *jast.ForEachStmt:
		b.add(s.X)
		head := b.newBlock("foreach.head")
		body := b.newBlock("foreach.body")
		done := b.newBlock("foreach.done")
		b.jump(head)
		b.cur = head
		b.add(s.Var)
		b.edge(head, body, True)
		b.edge(head, done, False)
		b.loop(done, head, func() {
			b.cur = body
			b.stmt(s.Body)
			b.jump(head)
		})
		b.cur = done
	case *jast.TryStmt:
		b.tryStmt(s)
	case *jast.SwitchStmt:
		b.switchStmt(s)
	case *jast.LabeledStmt:
		switch s.Stmt.(type) {
		case *jast.WhileStmt, *jast.DoStmt, *jast.ForStmt, *jast.ForEachStmt:
			b.label = s.Label
			b.stmt(s.Stmt)
			return
		}
		done := b.newBlock("label.done")
		b.targets = &targets{tail: b.targets, label: s.Label, brk: done, labelOnly: true}
		b.stmt(s.Stmt)
		b.targets = b.targets.tail
		b.jump(done)
		b.cur = done
	default:
		b.add(s)
	}
}

func (b *builder) branchTarget(s *jast.BranchStmt) *Block {
	for t := b.targets; t != nil; t = t.tail {
		if s.Label != "" && t.label != s.Label {
			continue
		}
		if s.Label == "" && t.labelOnly {
			continue
		}
		if s.Continue {
			if t.cont != nil {
				return t.cont
			}
			continue
		}
		return t.brk
	}
	return b.g.Exit
}

func (b *builder) tryStmt(s *jast.TryStmt) {
	for _, r := range s.Resources {
		b.add(r)
	}
	done := b.newBlock("try.done")
	after := done
	var fin *Block
	if s.Finally != nil {
		fin = b.newBlock("finally")
		after = fin
	}

	scope := &tryScope{outer: b.try, catches: s.Catches}
	for range s.Catches {
		scope.entries = append(scope.entries, b.newBlock("catch"))
	}

	b.try = scope
	body := b.newBlock("try.body")
	b.jump(body)
	b.cur = body
	b.stmt(s.Body)
	b.try = scope.outer
	b.jump(after)

	for i, c := range s.Catches {
		b.cur = scope.entries[i]
		b.add(c)
		b.stmt(c.Body)
		b.jump(after)
	}

	if fin != nil {
		b.cur = fin
		b.stmt(s.Finally)
		b.jump(done)
	}
	b.cur = done
}

func (b *builder) switchStmt(s *jast.SwitchStmt) {
	b.add(s.Tag)
	head := b.cur
	done := b.newBlock("switch.done")
	entries := make([]*Block, len(s.Cases))
	for i := range s.Cases {
		entries[i] = b.newBlock("switch.case")
	}
	hasDefault := false
	for i, c := range s.Cases {
		b.edge(head, entries[i], Normal)
		if c.Exprs == nil {
			hasDefault = true
		}
	}
	if !hasDefault {
		b.edge(head, done, Normal)
	}
	b.targets = &targets{tail: b.targets, label: b.takeLabel(), brk: done}
	for i, c := range s.Cases {
		b.cur = entries[i]
		for _, st := range c.Body {
			b.stmt(st)
		}
		if i+1 < len(entries) {
			b.jump(entries[i+1])
		} else {
			b.jump(done)
		}
	}
	b.targets = b.targets.tail
	b.cur = done
}

// exceptionEdges links every block built inside a try body to the catch
// clauses of all enclosing try statements.
func (b *builder) exceptionEdges() {
	for _, blk := range b.g.Blocks {
		if len(blk.Nodes) == 0 {
			continue
		}
		for scope := blk.try; scope != nil; scope = scope.outer {
			for i, entry := range scope.entries {
				e := b.edge(blk, entry, Exception)
				e.Catch = scope.catches[i]
			}
		}
	}
}

// prune drops the empty blocks that no edge reaches, with their edges, and
// numbers the remaining blocks.
func (g *Graph) prune() {
	for changed := true; changed; {
		changed = false
		kept := g.Blocks[:0]
		for _, blk := range g.Blocks {
			if blk != g.Entry && blk != g.Exit && len(blk.Preds) == 0 && len(blk.Nodes) == 0 {
				for _, e := range blk.Succs {
					e.To.Preds = removeEdge(e.To.Preds, e)
				}
				changed = true
				continue
			}
			kept = append(kept, blk)
		}
		g.Blocks = kept
	}
	alive := make(map[*Block]bool, len(g.Blocks))
	for i, blk := range g.Blocks {
		blk.Index = i
		alive[blk] = true
	}
	edges := g.Edges[:0]
	for _, e := range g.Edges {
		if alive[e.From] && alive[e.To] {
			edges = append(edges, e)
		}
	}
	g.Edges = edges
}

func removeEdge(edges []*Edge, e *Edge) []*Edge {
	out := edges[:0]
	for _, x := range edges {
		if x != e {
			out = append(out, x)
		}
	}
	return out
}
