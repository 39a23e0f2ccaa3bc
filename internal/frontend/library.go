package frontend

import (
	_ "embed"
	"fmt"
	"go/constant"
	"go/token"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/autorefactor/autorefactor/internal/jast"
)

//go:embed jdk.yaml
var jdkYAML []byte

//go:embed assertj.yaml
var assertjYAML []byte

// Library holds the bindings of classes known without parsing them.
type Library struct {
	types   map[string]*jast.TypeBinding
	methods map[string][]*jast.MethodBinding
	fields  map[string]map[string]*jast.VariableBinding
}

type libraryFile struct {
	Types []struct {
		Name    string   `yaml:"name"`
		Supers  []string `yaml:"supers"`
		Checked bool     `yaml:"checked"`
		Methods []struct {
			Name    string   `yaml:"name"`
			Params  []string `yaml:"params"`
			Returns string   `yaml:"returns"`
			Static  bool     `yaml:"static"`
			Throws  []string `yaml:"throws"`
		} `yaml:"methods"`
		Fields []struct {
			Name   string `yaml:"name"`
			Type   string `yaml:"type"`
			Static bool   `yaml:"static"`
			Final  bool   `yaml:"final"`
			Value  string `yaml:"value"`
		} `yaml:"fields"`
	} `yaml:"types"`
}

// JDK returns the library of well-known JDK classes, along with the AssertJ
// assertion entry points. It is loaded once and shared; bindings must not
// be modified.
var JDK = sync.OnceValue(func() *Library {
	l, err := LoadLibrary(jdkYAML, assertjYAML)
	if err != nil {
		panic(fmt.Sprintf("frontend: embedded library: %v", err))
	}
	return l
})

// LoadLibrary reads library descriptions. Later documents may refer to the
// types of earlier ones.
func LoadLibrary(docs ...[]byte) (*Library, error) {
	var f libraryFile
	for i, data := range docs {
		var doc libraryFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing library document %d: %w", i, err)
		}
		f.Types = append(f.Types, doc.Types...)
	}
	l := &Library{
		types:   make(map[string]*jast.TypeBinding),
		methods: make(map[string][]*jast.MethodBinding),
		fields:  make(map[string]map[string]*jast.VariableBinding),
	}
	for _, t := range f.Types {
		l.types[t.Name] = &jast.TypeBinding{QualifiedName: t.Name, Checked: t.Checked}
	}
	for _, t := range f.Types {
		typ := l.types[t.Name]
		for _, s := range t.Supers {
			super, err := l.parseType(s)
			if err != nil {
				return nil, fmt.Errorf("type %s: %w", t.Name, err)
			}
			typ.Supers = append(typ.Supers, super)
		}
		for _, m := range t.Methods {
			mb := &jast.MethodBinding{DeclaringType: typ, Name: m.Name, Static: m.Static}
			var err error
			if mb.Return, err = l.parseType(m.Returns); err != nil {
				return nil, fmt.Errorf("method %s.%s: %w", t.Name, m.Name, err)
			}
			for _, p := range m.Params {
				pt, err := l.parseType(p)
				if err != nil {
					return nil, fmt.Errorf("method %s.%s: %w", t.Name, m.Name, err)
				}
				mb.Params = append(mb.Params, pt)
			}
			for _, e := range m.Throws {
				et, err := l.parseType(e)
				if err != nil {
					return nil, fmt.Errorf("method %s.%s: %w", t.Name, m.Name, err)
				}
				mb.Exceptions = append(mb.Exceptions, et)
			}
			l.methods[t.Name] = append(l.methods[t.Name], mb)
		}
		for _, fd := range t.Fields {
			ft, err := l.parseType(fd.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", t.Name, fd.Name, err)
			}
			v := &jast.VariableBinding{Name: fd.Name, Type: ft, Field: true, Final: fd.Final || fd.Value != ""}
			if fd.Value != "" {
				if v.Constant, err = parseConstant(fd.Value); err != nil {
					return nil, fmt.Errorf("field %s.%s: %w", t.Name, fd.Name, err)
				}
			}
			if l.fields[t.Name] == nil {
				l.fields[t.Name] = make(map[string]*jast.VariableBinding)
			}
			l.fields[t.Name][fd.Name] = v
		}
	}
	return l, nil
}

func (l *Library) parseType(name string) (*jast.TypeBinding, error) {
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		t, err := l.parseType(elem)
		if err != nil {
			return nil, err
		}
		return jast.ArrayOf(t), nil
	}
	if t, ok := jast.PrimitiveType(name); ok {
		return t, nil
	}
	if t, ok := l.types[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

func parseConstant(lit string) (constant.Value, error) {
	digits, negative := strings.CutPrefix(lit, "-")
	v := constant.MakeFromLiteral(digits, token.INT, 0)
	if v.Kind() == constant.Unknown {
		return nil, fmt.Errorf("bad constant %q", lit)
	}
	if negative {
		v = constant.UnaryOp(token.SUB, v, 0)
	}
	return v, nil
}

// Type returns the class called qualifiedName.
func (l *Library) Type(qualifiedName string) (*jast.TypeBinding, bool) {
	t, ok := l.types[qualifiedName]
	return t, ok
}

// Methods returns the methods called name of t and its supertypes, the
// most derived first. Overridden signatures appear once.
func (l *Library) Methods(t *jast.TypeBinding, name string) []*jast.MethodBinding {
	var out []*jast.MethodBinding
	seen := make(map[string]bool)
	walkSupers(t, func(s *jast.TypeBinding) {
		for _, m := range l.methods[s.QualifiedName] {
			if m.Name != name {
				continue
			}
			if sig := signature(m); !seen[sig] {
				seen[sig] = true
				out = append(out, m)
			}
		}
	})
	return out
}

// Field returns the field called name of t or of a supertype.
func (l *Library) Field(t *jast.TypeBinding, name string) *jast.VariableBinding {
	var found *jast.VariableBinding
	walkSupers(t, func(s *jast.TypeBinding) {
		if found == nil {
			found = l.fields[s.QualifiedName][name]
		}
	})
	return found
}

// walkSupers calls f on t and its transitive supertypes, breadth first.
func walkSupers(t *jast.TypeBinding, f func(*jast.TypeBinding)) {
	if t == nil {
		return
	}
	seen := make(map[string]bool)
	queue := []*jast.TypeBinding{t}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s == nil || seen[s.QualifiedName] {
			continue
		}
		seen[s.QualifiedName] = true
		f(s)
		queue = append(queue, s.Supers...)
	}
}

func signature(m *jast.MethodBinding) string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}
