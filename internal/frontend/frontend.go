// Package frontend turns Java source into resolved jast units.
//
// Parsing is done by tree-sitter. Bindings come from the declarations of the
// unit itself and from a small library of well-known JDK classes; anything
// else is left unresolved, which rules treat as "no match".
package frontend

import (
	"fmt"
	"os"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// SyntaxError reports source tree-sitter could not parse cleanly.
type SyntaxError struct {
	Pos jast.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error", e.Pos)
}

// Frontend parses and resolves Java compilation units. It is safe for
// concurrent use.
type Frontend struct {
	lib  *Library
	lang *sitter.Language
	pool sync.Pool
}

// New returns a front end resolving against lib, or the JDK library when
// lib is nil.
func New(lib *Library) *Frontend {
	if lib == nil {
		lib = JDK()
	}
	f := &Frontend{
		lib:  lib,
		lang: sitter.NewLanguage(tree_sitter_java.Language()),
	}
	f.pool.New = func() any {
		p := sitter.NewParser()
		if err := p.SetLanguage(f.lang); err != nil {
			panic(fmt.Sprintf("frontend: java grammar: %v", err))
		}
		return p
	}
	return f
}

// ParseFile reads and parses the file at path.
func (f *Frontend) ParseFile(path string) (*jast.Unit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return f.Parse(path, src)
}

// Parse parses src, naming the unit name.
func (f *Frontend) Parse(name string, src []byte) (*jast.Unit, error) {
	p := f.pool.Get().(*sitter.Parser)
	defer func() {
		p.Reset()
		f.pool.Put(p)
	}()

	tree := p.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("%s: parser returned no tree", name)
	}
	defer tree.Close()

	root := tree.RootNode()
	c := newConverter(name, src, f.lib)
	if root.HasError() {
		return nil, &SyntaxError{Pos: c.position(firstError(root))}
	}
	file := c.file(root)
	if c.err != nil {
		return nil, c.err
	}
	return jast.NewUnit(name, src, file, c.comments), nil
}

// firstError returns the first node of n that is an error or missing.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && c.HasError() {
			return firstError(c)
		}
	}
	return n
}
