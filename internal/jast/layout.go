package jast

// LayoutOption configures Layout.
type LayoutOption func(*printer)

// WithLeadingComment places a comment on its own line above n. n must be a
// statement inside a block or case group, a class member or a top level type.
func WithLeadingComment(n Node, text string) LayoutOption {
	return func(p *printer) {
		p.leading[n] = append(p.leading[n], text)
	}
}

// WithIndent sets the indentation unit of the generated source.
func WithIndent(unit string) LayoutOption {
	return func(p *printer) {
		p.unitIndent = unit
	}
}

// Layout formats a synthesized file, assigns source ranges to all of its
// nodes and returns the resulting unit.
func Layout(name string, f *File, opts ...LayoutOption) *Unit {
	p := &printer{
		layout:     true,
		unitIndent: "    ",
		leading:    make(map[Node][]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.node(f)
	return NewUnit(name, []byte(p.buf.String()), f, p.comments)
}
