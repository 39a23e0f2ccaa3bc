package internal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/autorefactor/autorefactor/internal/frontend"
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/nolint"
	"github.com/autorefactor/autorefactor/internal/rewrite"
	"github.com/autorefactor/autorefactor/internal/rules"
	tt "github.com/autorefactor/autorefactor/internal/types"
)

// Result is the outcome of refactoring one file.
type Result struct {
	Filename string
	Source   []byte // text before any pass
	Output   []byte // text after the last pass
	Changes  []tt.Change
	Passes   int // passes that produced edits
}

// Changed reports whether the output differs from the source.
func (r *Result) Changed() bool {
	return r != nil && len(r.Changes) > 0
}

// Engine runs the enabled rules over compilation units until nothing
// changes or the pass limit is reached.
type Engine struct {
	opts     *tt.Options
	rules    []rules.Rule
	catalog  *rules.Catalog
	frontend *frontend.Frontend
	logger   *zap.Logger
	cache    *Cache
}

// NewEngine creates an engine for opts. A nil logger discards logs.
func NewEngine(opts *tt.Options, logger *zap.Logger) *Engine {
	if opts == nil {
		opts = &tt.Options{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		opts:     opts,
		catalog:  rules.NewCatalog(opts.Messages),
		frontend: frontend.New(nil),
		logger:   logger,
	}
	probe := rules.NewContext(nil, opts, logger)
	for _, r := range rules.All() {
		if rules.Enabled(r, probe) {
			e.rules = append(e.rules, r)
		}
	}
	return e
}

// SetCache makes the engine reuse results of unchanged files.
func (e *Engine) SetCache(c *Cache) { e.cache = c }

// Rules returns the enabled rules in the order they run.
func (e *Engine) Rules() []rules.Rule { return e.rules }

// Options returns the configuration the engine runs with.
func (e *Engine) Options() *tt.Options { return e.opts }

// Run refactors the file at filename without writing it.
func (e *Engine) Run(ctx context.Context, filename string) (*Result, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	if e.cache != nil {
		if res, ok := e.cache.Get(filename, src); ok {
			e.logger.Debug("cache hit", zap.String("file", filename))
			return res, nil
		}
	}
	res, err := e.RunSource(ctx, filename, src)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		if err := e.cache.Set(res); err != nil {
			e.logger.Warn("cannot update cache", zap.String("file", filename), zap.Error(err))
		}
	}
	return res, nil
}

// RunSource refactors src, named filename.
func (e *Engine) RunSource(ctx context.Context, filename string, src []byte) (*Result, error) {
	res := &Result{Filename: filename, Source: src, Output: src}
	u, err := e.frontend.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	for pass := 0; pass < e.opts.Passes(); pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, changes := e.Pass(u)
		if batch.Len() == 0 {
			break
		}
		out, err := batch.Materialize()
		if err != nil {
			// merged batches never conflict
			return nil, fmt.Errorf("error applying edits to %s: %w", filename, err)
		}
		next, err := e.frontend.Parse(filename, out)
		if err != nil {
			e.logger.Error("refactored source does not parse, keeping previous pass",
				zap.String("file", filename), zap.Int("pass", pass+1), zap.Error(err))
			break
		}
		res.Output = out
		res.Changes = append(res.Changes, changes...)
		res.Passes++
		u = next
	}
	return res, nil
}

// Pass runs every enabled rule once over u and returns the accepted edits
// with a change report for each.
func (e *Engine) Pass(u *jast.Unit) (*rewrite.Batch, []tt.Change) {
	rctx := rules.NewContext(u, e.opts, e.logger)
	ignored := nolint.ParseComments(u)
	var changes []tt.Change

	for _, r := range e.rules {
		msg := e.catalog.Message(r, e.opts.Locale)
		jast.Inspect(u.File, func(n jast.Node) bool {
			rctx.Batch = rewrite.New(u)
			out, unresolved := rules.Visit(r, rctx, n)
			batch := rctx.Batch
			rctx.Batch = rewrite.New(u)

			switch {
			case unresolved:
				e.logger.Debug("missing binding", zap.String("rule", r.Name()), zap.Stringer("pos", u.Position(n.Pos())))
				return true
			case batch.Len() == 0:
			case suppressed(u, ignored, r.Name(), batch):
			default:
				if err := rctx.Done.Merge(batch); err != nil {
					var conflict *rewrite.ConflictingEditError
					if !errors.As(err, &conflict) {
						panic(err)
					}
					e.logger.Warn("dropping conflicting edits",
						zap.String("rule", r.Name()), zap.String("file", u.Name), zap.Error(err))
					break
				}
				changes = append(changes, describe(u, batch, r.Name(), msg)...)
			}
			return out != rules.Skip
		})
	}
	return rctx.Done, changes
}

// suppressed reports whether an ignore comment covers any edit of batch.
func suppressed(u *jast.Unit, m *nolint.Manager, rule string, batch *rewrite.Batch) bool {
	for _, ed := range batch.Edits() {
		from, to := u.Position(ed.Target.Pos()).Line, u.Position(ed.Target.End()).Line
		for line := from; line <= to; line++ {
			if m.IsIgnored(line, rule) {
				return true
			}
		}
	}
	return false
}

func describe(u *jast.Unit, batch *rewrite.Batch, rule, msg string) []tt.Change {
	out := make([]tt.Change, 0, batch.Len())
	for _, ed := range batch.Edits() {
		c := tt.Change{
			Rule:     rule,
			Filename: u.Name,
			Message:  msg,
			Start:    u.Position(ed.Target.Pos()),
			End:      u.Position(ed.Target.End()),
			After:    batch.Text(ed),
		}
		switch ed.Kind {
		case rewrite.Replace, rewrite.Remove:
			c.Before = u.Text(ed.Target)
		case rewrite.InsertBefore:
			c.End = c.Start
		default:
			c.Start = c.End
		}
		out = append(out, c)
	}
	return out
}
