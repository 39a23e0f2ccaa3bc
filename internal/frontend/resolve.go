package frontend

import (
	"strings"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// class is a type declared in the unit being converted.
type class struct {
	typ     *jast.TypeBinding
	outer   *class
	fields  map[string]*jast.VariableBinding
	methods []*jast.MethodBinding
	ctors   []*jast.MethodBinding
}

// scope maps local names to their bindings.
type scope struct {
	parent *scope
	vars   map[string]*jast.VariableBinding
}

func (s *scope) lookup(name string) *jast.VariableBinding {
	for ; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v
		}
	}
	return nil
}

func (s *scope) declare(v *jast.VariableBinding) {
	s.vars[v.Name] = v
}

// resolver answers binding questions for one unit.
type resolver struct {
	lib     *Library
	pkg     string
	imports map[string]string // simple name to qualified name
	starred []string          // packages imported on demand
	classes map[string]*class // by simple and qualified name
	byType  map[*jast.TypeBinding]*class

	// statically imported member names to their classes, and classes whose
	// static members are imported on demand
	staticImports map[string][]string
	staticStarred []string
}

func newResolver(lib *Library) *resolver {
	return &resolver{
		lib:           lib,
		imports:       make(map[string]string),
		starred:       []string{"java.lang"},
		classes:       make(map[string]*class),
		byType:        make(map[*jast.TypeBinding]*class),
		staticImports: make(map[string][]string),
	}
}

func (r *resolver) addImport(decl string) {
	decl = strings.TrimSpace(decl)
	if member, ok := strings.CutPrefix(decl, "static "); ok {
		member = strings.TrimSpace(member)
		if cls, ok := strings.CutSuffix(member, ".*"); ok {
			r.staticStarred = append(r.staticStarred, cls)
			return
		}
		if i := strings.LastIndexByte(member, '.'); i >= 0 {
			name := member[i+1:]
			r.staticImports[name] = append(r.staticImports[name], member[:i])
		}
		return
	}
	if pkg, ok := strings.CutSuffix(decl, ".*"); ok {
		r.starred = append(r.starred, pkg)
		return
	}
	if i := strings.LastIndexByte(decl, '.'); i >= 0 {
		r.imports[decl[i+1:]] = decl
	}
}

func (r *resolver) declareClass(c *class, simpleName string) {
	r.classes[simpleName] = c
	r.classes[c.typ.QualifiedName] = c
	r.byType[c.typ] = c
}

// typeNamed resolves a type as spelled in source, or returns nil.
func (r *resolver) typeNamed(spelling string) *jast.TypeBinding {
	name := stripTypeArguments(strings.TrimSpace(spelling))
	for _, a := range []string{"...", "[]"} {
		if elem, ok := strings.CutSuffix(name, a); ok {
			t := r.typeNamed(elem)
			if t == nil {
				return nil
			}
			return jast.ArrayOf(t)
		}
	}
	if t, ok := jast.PrimitiveType(name); ok {
		return t
	}
	if c, ok := r.classes[name]; ok {
		return c.typ
	}
	if q, ok := r.imports[name]; ok {
		t, _ := r.lib.Type(q)
		return t
	}
	if t, ok := r.lib.Type(name); ok {
		return t
	}
	for _, pkg := range r.starred {
		if t, ok := r.lib.Type(pkg + "." + name); ok {
			return t
		}
	}
	return nil
}

func stripTypeArguments(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0 && r != ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// field returns the field called name of t or its supertypes.
func (r *resolver) field(t *jast.TypeBinding, name string) *jast.VariableBinding {
	var found *jast.VariableBinding
	walkSupers(t, func(s *jast.TypeBinding) {
		if found != nil {
			return
		}
		if c, ok := r.byType[s]; ok {
			found = c.fields[name]
		}
	})
	if found == nil {
		found = r.lib.Field(t, name)
	}
	return found
}

// method selects the method called name of t applicable to args.
func (r *resolver) method(t *jast.TypeBinding, name string, args []jast.Expr) *jast.MethodBinding {
	var candidates []*jast.MethodBinding
	walkSupers(t, func(s *jast.TypeBinding) {
		if c, ok := r.byType[s]; ok {
			for _, m := range c.methods {
				if m.Name == name {
					candidates = append(candidates, m)
				}
			}
		}
	})
	candidates = append(candidates, r.lib.Methods(t, name)...)
	return selectOverload(candidates, args)
}

// staticMethod selects a statically imported method called name applicable
// to args.
func (r *resolver) staticMethod(name string, args []jast.Expr) *jast.MethodBinding {
	var candidates []*jast.MethodBinding
	for _, owner := range append(append([]string(nil), r.staticImports[name]...), r.staticStarred...) {
		t, ok := r.lib.Type(owner)
		if !ok {
			continue
		}
		for _, m := range r.lib.Methods(t, name) {
			if m.Static {
				candidates = append(candidates, m)
			}
		}
	}
	return selectOverload(candidates, args)
}

// constructor selects the constructor of t applicable to args. Library
// classes have implicit constructors taking the argument types.
func (r *resolver) constructor(t *jast.TypeBinding, args []jast.Expr) *jast.MethodBinding {
	if t == nil {
		return nil
	}
	if c, ok := r.byType[t]; ok {
		if len(c.ctors) == 0 && len(args) == 0 {
			return &jast.MethodBinding{DeclaringType: t, Name: t.SimpleName(), Constructor: true, Return: t}
		}
		return selectOverload(c.ctors, args)
	}
	if _, ok := r.lib.Type(t.QualifiedName); !ok {
		return nil
	}
	m := &jast.MethodBinding{DeclaringType: t, Name: t.SimpleName(), Constructor: true, Return: t}
	for _, a := range args {
		at := jast.TypeOf(a)
		if at == nil {
			return nil
		}
		m.Params = append(m.Params, at)
	}
	return m
}

// selectOverload picks the candidate whose parameters fit args best. An
// unresolved argument fits any parameter, but then several equally good
// candidates are ambiguous and nothing is selected.
func selectOverload(candidates []*jast.MethodBinding, args []jast.Expr) *jast.MethodBinding {
	var best *jast.MethodBinding
	bestScore, tie, unknown := -1, false, false
	for _, m := range candidates {
		if len(m.Params) != len(args) {
			continue
		}
		score := 0
		for i, p := range m.Params {
			at := jast.TypeOf(args[i])
			if at == nil {
				unknown = true
				continue
			}
			fit := assignable(at, p)
			if fit == 0 {
				score = -1
				break
			}
			score += fit
		}
		switch {
		case score < 0:
		case score > bestScore:
			best, bestScore, tie = m, score, false
		case score == bestScore:
			tie = true
		}
	}
	if tie && unknown {
		return nil
	}
	return best
}

var widening = map[string][]string{
	"byte":  {"short", "int", "long", "float", "double"},
	"short": {"int", "long", "float", "double"},
	"char":  {"int", "long", "float", "double"},
	"int":   {"long", "float", "double"},
	"long":  {"float", "double"},
	"float": {"double"},
}

// assignable scores passing a value of type from as a parameter of type to:
// 0 does not fit, 1 fits by conversion, 2 is exact.
func assignable(from, to *jast.TypeBinding) int {
	switch {
	case to == nil:
		return 1
	case from.QualifiedName == to.QualifiedName:
		return 2
	case from.Primitive && to.Primitive:
		for _, w := range widening[from.QualifiedName] {
			if w == to.QualifiedName {
				return 1
			}
		}
		return 0
	case from.Primitive:
		if boxed, ok := jast.BoxedName(from); ok && (boxed == to.QualifiedName || to.Is("java.lang.Object")) {
			return 1
		}
		return 0
	case to.Primitive:
		if p, ok := jast.UnboxedType(from); ok {
			return assignable(p, to)
		}
		return 0
	case from.Is("null"):
		return 1
	case from.IsSubtypeOf(to.QualifiedName):
		return 1
	}
	return 0
}
