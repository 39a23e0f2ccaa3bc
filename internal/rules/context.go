package rules

import (
	"go.uber.org/zap"

	"github.com/autorefactor/autorefactor/internal/analysis/cfg"
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/rewrite"
	tt "github.com/autorefactor/autorefactor/internal/types"
)

// Flow is the control flow information of one method.
type Flow struct {
	Graph    *cfg.Graph
	Throwers *cfg.Throwers
}

// Context is what a rule sees while visiting a unit.
type Context struct {
	Unit    *jast.Unit
	Options *tt.Options
	Logger  *zap.Logger

	// Batch receives the edits of the current visit.
	Batch *rewrite.Batch
	// Done holds the edits already accepted for the unit in this pass.
	Done *rewrite.Batch

	flows map[*jast.MethodDecl]*Flow
}

// NewContext returns a context for u with an empty unit batch.
func NewContext(u *jast.Unit, opts *tt.Options, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts == nil {
		opts = &tt.Options{}
	}
	return &Context{
		Unit:    u,
		Options: opts,
		Logger:  logger,
		Batch:   rewrite.New(u),
		Done:    rewrite.New(u),
		flows:   make(map[*jast.MethodDecl]*Flow),
	}
}

// Flow returns the control flow graph and exception index of m, building
// them on first use.
func (c *Context) Flow(m *jast.MethodDecl) *Flow {
	if f, ok := c.flows[m]; ok {
		return f
	}
	g := cfg.Build(m)
	f := &Flow{Graph: g, Throwers: cfg.IndexThrows(g)}
	c.flows[m] = f
	return f
}

// Refactored reports whether an edit of this pass already covers n.
func (c *Context) Refactored(n jast.Node) bool {
	return c.Done.Touches(n) || c.Batch.Touches(n)
}
