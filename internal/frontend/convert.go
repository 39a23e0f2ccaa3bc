package frontend

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
)

// converter builds the jast tree of one unit from its tree-sitter tree.
type converter struct {
	name     string
	src      []byte
	res      *resolver
	comments []*jast.Comment
	err      error

	// declarations found by the earlier passes, by start byte
	classes map[uint]*class
	methods map[uint]*jast.MethodBinding
	fields  map[uint]*jast.FieldDecl

	class *class
	scope *scope
}

func newConverter(name string, src []byte, lib *Library) *converter {
	return &converter{
		name:    name,
		src:     src,
		res:     newResolver(lib),
		classes: make(map[uint]*class),
		methods: make(map[uint]*jast.MethodBinding),
		fields:  make(map[uint]*jast.FieldDecl),
	}
}

func (c *converter) fail(err error) {
	if c.err == nil {
		c.err = fmt.Errorf("%s: %w", c.name, err)
	}
}

func (c *converter) pos(offset uint) jast.Pos {
	off, err := safecast.Conv[int](offset)
	if err != nil {
		c.fail(err)
		return jast.NoPos
	}
	return jast.Pos(off + 1)
}

func (c *converter) rng(n *sitter.Node) jast.Range {
	return jast.Range{From: c.pos(n.StartByte()), To: c.pos(n.EndByte())}
}

func (c *converter) position(n *sitter.Node) jast.Position {
	p := jast.Position{Filename: c.name}
	var err error
	if p.Offset, err = safecast.Conv[int](n.StartByte()); err != nil {
		c.fail(err)
	}
	start := n.StartPosition()
	if p.Line, err = safecast.Conv[int](start.Row); err != nil {
		c.fail(err)
	}
	if p.Column, err = safecast.Conv[int](start.Column); err != nil {
		c.fail(err)
	}
	p.Line++
	p.Column++
	return p
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(c.src)
}

// named returns the named children of n that are not comments.
func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if ch := n.NamedChild(i); ch != nil && !ch.IsExtra() {
			out = append(out, ch)
		}
	}
	return out
}

// childOfKind returns the first child of n of one of kinds.
func childOfKind(n *sitter.Node, kinds ...string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil {
			continue
		}
		for _, k := range kinds {
			if ch.Kind() == k {
				return ch
			}
		}
	}
	return nil
}

func (c *converter) collectComments(n *sitter.Node) {
	switch n.Kind() {
	case "line_comment", "block_comment":
		c.comments = append(c.comments, &jast.Comment{Range: c.rng(n), Text: c.text(n)})
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if ch := n.Child(i); ch != nil {
			c.collectComments(ch)
		}
	}
}

func (c *converter) push() {
	c.scope = &scope{parent: c.scope, vars: make(map[string]*jast.VariableBinding)}
}

func (c *converter) pop() {
	c.scope = c.scope.parent
}

// Declarations.

func isTypeDecl(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		return true
	}
	return false
}

func (c *converter) file(root *sitter.Node) *jast.File {
	c.collectComments(root)
	f := &jast.File{Range: c.rng(root)}
	var types []*sitter.Node
	for _, n := range named(root) {
		switch {
		case n.Kind() == "package_declaration":
			if parts := named(n); len(parts) > 0 {
				f.Package = c.text(parts[len(parts)-1])
				c.res.pkg = f.Package
			}
		case n.Kind() == "import_declaration":
			imp := strings.TrimSpace(c.text(n))
			imp = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(imp, "import"), ";"))
			f.Imports = append(f.Imports, imp)
			c.res.addImport(imp)
		case isTypeDecl(n.Kind()):
			types = append(types, n)
		}
	}
	for _, n := range types {
		c.declareClass(n, nil)
	}
	for _, n := range types {
		c.resolveSupers(n)
	}
	for _, n := range types {
		c.declareMembers(n)
	}
	for _, n := range types {
		c.convertFields(n)
	}
	for _, n := range types {
		f.Types = append(f.Types, c.classDecl(n))
	}
	return f
}

// classMembers returns the member declarations of a type declaration.
func classMembers(n *sitter.Node) []*sitter.Node {
	body := n.ChildByFieldName("body")
	var out []*sitter.Node
	for _, m := range named(body) {
		if m.Kind() == "enum_body_declarations" {
			out = append(out, named(m)...)
			continue
		}
		out = append(out, m)
	}
	return out
}

func (c *converter) declareClass(n *sitter.Node, outer *class) {
	name := c.text(n.ChildByFieldName("name"))
	qualified := name
	switch {
	case outer != nil:
		qualified = outer.typ.QualifiedName + "." + name
	case c.res.pkg != "":
		qualified = c.res.pkg + "." + name
	}
	cl := &class{
		typ:    &jast.TypeBinding{QualifiedName: qualified},
		outer:  outer,
		fields: make(map[string]*jast.VariableBinding),
	}
	c.res.declareClass(cl, name)
	c.classes[n.StartByte()] = cl
	for _, m := range classMembers(n) {
		if isTypeDecl(m.Kind()) {
			c.declareClass(m, cl)
		}
	}
}

func (c *converter) resolveSupers(n *sitter.Node) {
	cl := c.classes[n.StartByte()]
	var names []*sitter.Node
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		names = append(names, named(sc)...)
	}
	for _, kind := range []string{"super_interfaces", "extends_interfaces"} {
		if list := childOfKind(n, kind); list != nil {
			for _, tl := range named(list) {
				names = append(names, named(tl)...)
			}
		}
	}
	for _, tn := range names {
		if t := c.res.typeNamed(c.text(tn)); t != nil {
			cl.typ.Supers = append(cl.typ.Supers, t)
		}
	}
	if len(cl.typ.Supers) == 0 {
		if obj, ok := c.res.lib.Type("java.lang.Object"); ok {
			cl.typ.Supers = append(cl.typ.Supers, obj)
		}
	}
	for _, m := range classMembers(n) {
		if isTypeDecl(m.Kind()) {
			c.resolveSupers(m)
		}
	}
	t := cl.typ
	t.Checked = t.IsSubtypeOf("java.lang.Throwable") &&
		!t.IsSubtypeOf("java.lang.RuntimeException") && !t.IsSubtypeOf("java.lang.Error")
}

func hasModifier(mods []string, m string) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}

func (c *converter) modifiers(n *sitter.Node) []string {
	mods := childOfKind(n, "modifiers")
	if mods == nil {
		return nil
	}
	var out []string
	for i := uint(0); i < mods.ChildCount(); i++ {
		if ch := mods.Child(i); ch != nil && !ch.IsExtra() {
			out = append(out, c.text(ch))
		}
	}
	return out
}

// declareMembers creates the bindings of fields, methods and constructors.
func (c *converter) declareMembers(n *sitter.Node) {
	cl := c.classes[n.StartByte()]
	if n.Kind() == "enum_declaration" {
		for _, m := range named(n.ChildByFieldName("body")) {
			if m.Kind() == "enum_constant" {
				name := c.text(m.ChildByFieldName("name"))
				cl.fields[name] = &jast.VariableBinding{Name: name, Type: cl.typ, Field: true, Final: true}
			}
		}
	}
	for _, m := range classMembers(n) {
		switch m.Kind() {
		case "field_declaration", "constant_declaration":
			mods := c.modifiers(m)
			typ := c.res.typeNamed(c.text(m.ChildByFieldName("type")))
			final := hasModifier(mods, "final") || m.Kind() == "constant_declaration"
			for _, d := range declarators(m) {
				name := c.text(d.ChildByFieldName("name"))
				cl.fields[name] = &jast.VariableBinding{
					Name:  name,
					Type:  withDimensions(typ, d),
					Field: true,
					Final: final,
				}
			}
		case "method_declaration", "constructor_declaration", "compact_constructor_declaration":
			mb := c.methodBinding(cl, m)
			c.methods[m.StartByte()] = mb
			if mb.Constructor {
				cl.ctors = append(cl.ctors, mb)
			} else {
				cl.methods = append(cl.methods, mb)
			}
		default:
			if isTypeDecl(m.Kind()) {
				c.declareMembers(m)
			}
		}
	}
}

func declarators(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, ch := range named(n) {
		if ch.Kind() == "variable_declarator" {
			out = append(out, ch)
		}
	}
	return out
}

// withDimensions applies the brackets written after a declared name.
func withDimensions(t *jast.TypeBinding, declarator *sitter.Node) *jast.TypeBinding {
	dims := declarator.ChildByFieldName("dimensions")
	if t == nil || dims == nil {
		return t
	}
	for i := uint(0); i < dims.ChildCount(); i++ {
		if ch := dims.Child(i); ch != nil && ch.Kind() == "[" {
			t = jast.ArrayOf(t)
		}
	}
	return t
}

func (c *converter) methodBinding(cl *class, n *sitter.Node) *jast.MethodBinding {
	mods := c.modifiers(n)
	mb := &jast.MethodBinding{
		DeclaringType: cl.typ,
		Name:          c.text(n.ChildByFieldName("name")),
		Static:        hasModifier(mods, "static"),
	}
	if n.Kind() == "method_declaration" {
		ret := c.text(n.ChildByFieldName("type"))
		mb.Return = c.res.typeNamed(ret)
	} else {
		mb.Constructor = true
		mb.Return = cl.typ
	}
	for _, p := range c.params(n) {
		mb.Params = append(mb.Params, p.Var.Type)
	}
	if throws := childOfKind(n, "throws"); throws != nil {
		for _, tn := range named(throws) {
			t := c.res.typeNamed(c.text(tn))
			if t == nil {
				// an unknown exception is at least a checked Exception
				t, _ = c.res.lib.Type("java.lang.Exception")
			}
			mb.Exceptions = append(mb.Exceptions, t)
		}
	}
	return mb
}

// params converts the formal parameters of a method or constructor.
func (c *converter) params(n *sitter.Node) []*jast.Param {
	var out []*jast.Param
	for _, p := range named(n.ChildByFieldName("parameters")) {
		var typeName, name string
		var nameNode *sitter.Node
		switch p.Kind() {
		case "formal_parameter":
			typeName = c.text(p.ChildByFieldName("type"))
			nameNode = p
		case "spread_parameter":
			for _, ch := range named(p) {
				switch ch.Kind() {
				case "variable_declarator":
					nameNode = ch
				case "modifiers":
				default:
					if typeName == "" {
						typeName = c.text(ch) + "..."
					}
				}
			}
		default:
			continue
		}
		if nameNode == nil {
			continue
		}
		name = c.text(nameNode.ChildByFieldName("name"))
		v := &jast.VariableBinding{
			Name:  name,
			Type:  withDimensions(c.res.typeNamed(typeName), nameNode),
			Local: true,
			Param: true,
			Final: hasModifier(c.modifiers(p), "final"),
		}
		out = append(out, &jast.Param{Range: c.rng(p), TypeName: typeName, Name: name, Var: v})
	}
	return out
}

// convertFields converts field declarations and records the value of
// constant fields.
func (c *converter) convertFields(n *sitter.Node) {
	cl := c.classes[n.StartByte()]
	saved := c.class
	c.class = cl
	defer func() { c.class = saved }()
	for _, m := range classMembers(n) {
		switch m.Kind() {
		case "field_declaration", "constant_declaration":
			fd := &jast.FieldDecl{
				Range:     c.rng(m),
				Modifiers: c.modifiers(m),
				TypeName:  c.text(m.ChildByFieldName("type")),
			}
			fd.Type = c.res.typeNamed(fd.TypeName)
			for _, d := range declarators(m) {
				name := c.text(d.ChildByFieldName("name"))
				vd := &jast.VarDeclarator{Range: c.rng(d), Name: name, Var: cl.fields[name]}
				if init := d.ChildByFieldName("value"); init != nil {
					vd.Init = c.expr(init)
					setConstant(vd.Var, vd.Init)
				}
				fd.Vars = append(fd.Vars, vd)
			}
			c.fields[m.StartByte()] = fd
		default:
			if isTypeDecl(m.Kind()) {
				c.convertFields(m)
			}
		}
	}
}

// setConstant marks v as a constant variable when it is final and init is
// a constant expression of a primitive or String type.
func setConstant(v *jast.VariableBinding, init jast.Expr) {
	if v == nil || !v.Final || v.Type == nil {
		return
	}
	if !v.Type.Primitive && !jast.IsStringType(v.Type) {
		return
	}
	if val, ok := match.Constant(init); ok {
		v.Constant = val
	}
}

func (c *converter) classDecl(n *sitter.Node) *jast.ClassDecl {
	cl := c.classes[n.StartByte()]
	saved := c.class
	c.class = cl
	defer func() { c.class = saved }()

	d := &jast.ClassDecl{
		Range:     c.rng(n),
		Modifiers: c.modifiers(n),
		Name:      c.text(n.ChildByFieldName("name")),
		Type:      cl.typ,
	}
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		if parts := named(sc); len(parts) > 0 {
			d.Extends = c.text(parts[0])
		}
	}
	for _, m := range classMembers(n) {
		switch {
		case m.Kind() == "field_declaration" || m.Kind() == "constant_declaration":
			d.Members = append(d.Members, c.fields[m.StartByte()])
		case c.methods[m.StartByte()] != nil:
			d.Members = append(d.Members, c.methodDecl(m))
		case isTypeDecl(m.Kind()):
			d.Members = append(d.Members, c.classDecl(m))
		}
	}
	return d
}

func (c *converter) methodDecl(n *sitter.Node) *jast.MethodDecl {
	m := &jast.MethodDecl{
		Range:     c.rng(n),
		Modifiers: c.modifiers(n),
		Name:      c.text(n.ChildByFieldName("name")),
		Params:    c.params(n),
		Method:    c.methods[n.StartByte()],
	}
	if n.Kind() == "method_declaration" {
		m.ReturnType = c.text(n.ChildByFieldName("type"))
	}
	if throws := childOfKind(n, "throws"); throws != nil {
		for _, tn := range named(throws) {
			m.Throws = append(m.Throws, c.text(tn))
		}
	}
	c.push()
	defer c.pop()
	for _, p := range m.Params {
		c.scope.declare(p.Var)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		m.Body = c.block(body)
	}
	return m
}

// Statements.

func (c *converter) block(n *sitter.Node) *jast.Block {
	c.push()
	defer c.pop()
	return &jast.Block{Range: c.rng(n), Stmts: c.stmtList(n)}
}

// stmtList converts the statements among the children of n.
func (c *converter) stmtList(n *sitter.Node) []jast.Stmt {
	var out []jast.Stmt
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil || ch.IsExtra() {
			continue
		}
		if !ch.IsNamed() && ch.Kind() != ";" {
			continue
		}
		out = append(out, c.stmt(ch))
	}
	return out
}

func (c *converter) opaqueStmt(n *sitter.Node) jast.Stmt {
	return &jast.OpaqueStmt{Range: c.rng(n)}
}

func (c *converter) stmt(n *sitter.Node) jast.Stmt {
	r := c.rng(n)
	switch n.Kind() {
	case ";":
		return &jast.EmptyStmt{Range: r}
	case "block", "constructor_body":
		return c.block(n)
	case "expression_statement":
		parts := named(n)
		if len(parts) != 1 {
			return c.opaqueStmt(n)
		}
		return &jast.ExprStmt{Range: r, X: c.expr(parts[0])}
	case "local_variable_declaration":
		return c.localVarDecl(n)
	case "if_statement":
		s := &jast.IfStmt{Range: r, Cond: c.condition(n.ChildByFieldName("condition"))}
		s.Then = c.stmt(n.ChildByFieldName("consequence"))
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			s.Else = c.stmt(alt)
		}
		return s
	case "while_statement":
		return &jast.WhileStmt{
			Range: r,
			Cond:  c.condition(n.ChildByFieldName("condition")),
			Body:  c.stmt(n.ChildByFieldName("body")),
		}
	case "do_statement":
		return &jast.DoStmt{
			Range: r,
			Body:  c.stmt(n.ChildByFieldName("body")),
			Cond:  c.condition(n.ChildByFieldName("condition")),
		}
	case "for_statement":
		return c.forStmt(n)
	case "enhanced_for_statement":
		return c.forEachStmt(n)
	case "return_statement":
		s := &jast.ReturnStmt{Range: r}
		if parts := named(n); len(parts) > 0 {
			s.Result = c.expr(parts[0])
		}
		return s
	case "throw_statement":
		parts := named(n)
		if len(parts) != 1 {
			return c.opaqueStmt(n)
		}
		return &jast.ThrowStmt{Range: r, X: c.expr(parts[0])}
	case "break_statement", "continue_statement":
		s := &jast.BranchStmt{Range: r, Continue: n.Kind() == "continue_statement"}
		if label := childOfKind(n, "identifier"); label != nil {
			s.Label = c.text(label)
		}
		return s
	case "labeled_statement":
		parts := named(n)
		if len(parts) != 2 {
			return c.opaqueStmt(n)
		}
		return &jast.LabeledStmt{Range: r, Label: c.text(parts[0]), Stmt: c.stmt(parts[1])}
	case "try_statement":
		return c.tryStmt(n, nil)
	case "try_with_resources_statement":
		c.push()
		defer c.pop()
		var resources []*jast.LocalVarDecl
		for _, res := range named(n.ChildByFieldName("resources")) {
			decl := c.resource(res)
			if decl == nil {
				return c.opaqueStmt(n)
			}
			resources = append(resources, decl)
		}
		return c.tryStmt(n, resources)
	case "switch_expression", "switch_statement":
		return c.switchStmt(n)
	}
	return c.opaqueStmt(n)
}

// condition converts the parenthesized condition of a statement.
func (c *converter) condition(n *sitter.Node) jast.Expr {
	if n == nil {
		return nil
	}
	if n.Kind() == "parenthesized_expression" {
		if parts := named(n); len(parts) == 1 {
			return c.expr(parts[0])
		}
	}
	return c.expr(n)
}

func (c *converter) localVarDecl(n *sitter.Node) *jast.LocalVarDecl {
	d := &jast.LocalVarDecl{
		Range:     c.rng(n),
		Modifiers: c.modifiers(n),
		TypeName:  c.text(n.ChildByFieldName("type")),
	}
	d.Type = c.res.typeNamed(d.TypeName)
	final := hasModifier(d.Modifiers, "final")
	for _, dn := range declarators(n) {
		name := c.text(dn.ChildByFieldName("name"))
		vd := &jast.VarDeclarator{Range: c.rng(dn), Name: name}
		if init := dn.ChildByFieldName("value"); init != nil {
			vd.Init = c.expr(init)
		}
		typ := withDimensions(d.Type, dn)
		if d.TypeName == "var" && vd.Init != nil {
			typ = jast.TypeOf(vd.Init)
		}
		vd.Var = &jast.VariableBinding{Name: name, Type: typ, Local: true, Final: final}
		setConstant(vd.Var, vd.Init)
		c.scope.declare(vd.Var)
		d.Vars = append(d.Vars, vd)
	}
	return d
}

func (c *converter) forStmt(n *sitter.Node) jast.Stmt {
	c.push()
	defer c.pop()
	s := &jast.ForStmt{Range: c.rng(n)}
	// the header is split by its parentheses and semicolons
	const (
		inHeader = iota
		inInit
		inCond
		inUpdate
		inBody
	)
	state := inHeader
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil || ch.IsExtra() {
			continue
		}
		switch kind := ch.Kind(); {
		case state == inBody:
			if ch.IsNamed() || kind == ";" {
				s.Body = c.stmt(ch)
			}
		case kind == "(" && state == inHeader:
			state = inInit
		case kind == ";":
			state++
		case kind == ")" && state == inUpdate:
			state = inBody
		case !ch.IsNamed():
		case state == inInit && kind == "local_variable_declaration":
			s.Init = append(s.Init, c.localVarDecl(ch))
			state = inCond
		case state == inInit:
			s.Init = append(s.Init, &jast.ExprStmt{Range: c.rng(ch), X: c.expr(ch)})
		case state == inCond:
			s.Cond = c.expr(ch)
		case state == inUpdate:
			s.Update = append(s.Update, c.expr(ch))
		}
	}
	return s
}

func (c *converter) forEachStmt(n *sitter.Node) jast.Stmt {
	c.push()
	defer c.pop()
	s := &jast.ForEachStmt{
		Range:    c.rng(n),
		TypeName: c.text(n.ChildByFieldName("type")),
		X:        c.expr(n.ChildByFieldName("value")),
	}
	nameNode := n.ChildByFieldName("name")
	typ := c.res.typeNamed(s.TypeName)
	if s.TypeName == "var" {
		typ = nil
		if t := jast.TypeOf(s.X); t.IsArray() {
			typ = t.Elem
		}
	}
	name := c.text(nameNode)
	v := &jast.VariableBinding{
		Name:  name,
		Type:  typ,
		Local: true,
		Final: hasModifier(c.modifiers(n), "final"),
	}
	s.Var = &jast.VarDeclarator{Range: c.rng(nameNode), Name: name, Var: v}
	c.scope.declare(v)
	s.Body = c.stmt(n.ChildByFieldName("body"))
	return s
}

// resource converts a try resource declaration; other resources are not
// modelled.
func (c *converter) resource(n *sitter.Node) *jast.LocalVarDecl {
	typeNode, nameNode, value := n.ChildByFieldName("type"), n.ChildByFieldName("name"), n.ChildByFieldName("value")
	if typeNode == nil || nameNode == nil || value == nil {
		return nil
	}
	d := &jast.LocalVarDecl{Range: c.rng(n), Modifiers: c.modifiers(n), TypeName: c.text(typeNode)}
	d.Type = c.res.typeNamed(d.TypeName)
	name := c.text(nameNode)
	v := &jast.VariableBinding{Name: name, Type: d.Type, Local: true, Final: true}
	vd := &jast.VarDeclarator{
		Range: jast.Range{From: c.pos(nameNode.StartByte()), To: c.pos(value.EndByte())},
		Name:  name,
		Var:   v,
		Init:  c.expr(value),
	}
	c.scope.declare(v)
	d.Vars = []*jast.VarDeclarator{vd}
	return d
}

func (c *converter) tryStmt(n *sitter.Node, resources []*jast.LocalVarDecl) jast.Stmt {
	s := &jast.TryStmt{Range: c.rng(n), Resources: resources}
	s.Body = c.block(n.ChildByFieldName("body"))
	for _, ch := range named(n) {
		switch ch.Kind() {
		case "catch_clause":
			s.Catches = append(s.Catches, c.catchClause(ch))
		case "finally_clause":
			if b := childOfKind(ch, "block"); b != nil {
				s.Finally = c.block(b)
			}
		}
	}
	return s
}

func (c *converter) catchClause(n *sitter.Node) *jast.CatchClause {
	cc := &jast.CatchClause{Range: c.rng(n)}
	param := childOfKind(n, "catch_formal_parameter")
	var typ *jast.TypeBinding
	if param != nil {
		if ct := childOfKind(param, "catch_type"); ct != nil {
			for _, tn := range named(ct) {
				t := c.res.typeNamed(c.text(tn))
				cc.TypeNames = append(cc.TypeNames, c.text(tn))
				cc.Types = append(cc.Types, t)
				typ = t
			}
		}
		cc.Name = c.text(param.ChildByFieldName("name"))
	}
	if len(cc.Types) > 1 {
		// a multi-catch parameter has the least upper bound type
		typ, _ = c.res.lib.Type("java.lang.Throwable")
	}
	c.push()
	defer c.pop()
	cc.Var = &jast.VariableBinding{Name: cc.Name, Type: typ, Local: true}
	c.scope.declare(cc.Var)
	cc.Body = c.block(n.ChildByFieldName("body"))
	return cc
}

func (c *converter) switchStmt(n *sitter.Node) jast.Stmt {
	s := &jast.SwitchStmt{Range: c.rng(n), Tag: c.condition(n.ChildByFieldName("condition"))}
	body := n.ChildByFieldName("body")
	if body == nil {
		return c.opaqueStmt(n)
	}
	c.push()
	defer c.pop()
	for _, group := range named(body) {
		if group.Kind() != "switch_block_statement_group" {
			// arrow form switch rules
			return c.opaqueStmt(n)
		}
		cc := &jast.CaseClause{Range: c.rng(group), Exprs: []jast.Expr{}}
		isDefault := false
		for i := uint(0); i < group.ChildCount(); i++ {
			ch := group.Child(i)
			if ch == nil || ch.IsExtra() || (!ch.IsNamed() && ch.Kind() != ";") {
				continue
			}
			if ch.Kind() == "switch_label" {
				labels := named(ch)
				if len(labels) == 0 {
					isDefault = true
				}
				for _, l := range labels {
					cc.Exprs = append(cc.Exprs, c.expr(l))
				}
				continue
			}
			cc.Body = append(cc.Body, c.stmt(ch))
		}
		if isDefault {
			cc.Exprs = nil
		}
		s.Cases = append(s.Cases, cc)
	}
	return s
}
