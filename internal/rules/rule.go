// Package rules holds the refactoring rules and the contract they follow.
//
// A rule is visited on every node of a unit, in source order. It checks its
// own preconditions and records edits in the batch of its context; it never
// modifies the tree. Missing binding information always means "no match".
package rules

import (
	"errors"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// Outcome tells the walker whether to visit the children of a node.
type Outcome int

const (
	Continue Outcome = iota
	Skip
)

// Rule is one refactoring.
type Rule interface {
	Name() string
	Doc() string
	Visit(ctx *Context, n jast.Node) Outcome
}

// Gated is implemented by rules whose output needs a library capability
// that only exists from some language level on.
type Gated interface {
	MinLanguageLevel() int
	Capability() string
}

// Handler visits one kind of node.
type Handler func(ctx *Context, n jast.Node) Outcome

// Handlers dispatches visits by node kind. Kinds without a handler continue.
type Handlers map[jast.Kind]Handler

func (h Handlers) Visit(ctx *Context, n jast.Node) Outcome {
	if f, ok := h[n.Kind()]; ok {
		return f(ctx, n)
	}
	return Continue
}

// rule is a Rule made of a name, a description and handlers.
type rule struct {
	name     string
	doc      string
	handlers Handlers
}

func (r *rule) Name() string { return r.name }
func (r *rule) Doc() string  { return r.doc }

func (r *rule) Visit(ctx *Context, n jast.Node) Outcome {
	return r.handlers.Visit(ctx, n)
}

// gatedRule is a rule limited to a capability.
type gatedRule struct {
	rule
	minLevel   int
	capability string
}

func (r *gatedRule) MinLanguageLevel() int { return r.minLevel }
func (r *gatedRule) Capability() string    { return r.capability }

// Visit calls r on n. A missing binding met by the rule counts as no match:
// the edits it recorded so far are the caller's to drop.
func Visit(r Rule, ctx *Context, n jast.Node) (out Outcome, unresolved bool) {
	defer func() {
		if p := recover(); p != nil {
			err, ok := p.(error)
			var ube *jast.UnresolvedBindingError
			if !ok || !errors.As(err, &ube) {
				panic(p)
			}
			out, unresolved = Continue, true
		}
	}()
	return r.Visit(ctx, n), false
}

// Enabled reports whether r may run under the options of ctx.
func Enabled(r Rule, ctx *Context) bool {
	if !ctx.Options.RuleEnabled(r.Name()) {
		return false
	}
	if g, ok := r.(Gated); ok {
		return ctx.Options.Supports(g.Capability(), g.MinLanguageLevel())
	}
	return true
}

// All returns a new instance of every rule, in the order they run.
func All() []Rule {
	return []Rule{
		NewPeremptoryCondition(),
		NewRemoveUselessTry(),
		NewRemoveEmptyStatement(),
		NewBreakRatherThanPassiveIterations(),
		NewDoWhileRatherThanWhile(),
		NewOppositeCondition(),
		NewDoubleNegation(),
		NewInvertEquals(),
		NewStringRule(),
		NewIsEmptyRatherThanLength(),
		NewStringBuilder(),
		NewAssertJ(),
	}
}

// ByName returns the rule called name, or nil.
func ByName(name string) Rule {
	for _, r := range All() {
		if r.Name() == name {
			return r
		}
	}
	return nil
}
