package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/jast/jasttest"
)

func TestTrailingDeadCode(t *testing.T) {
	t.Parallel()
	rte := jasttest.Exception("java.lang.RuntimeException")

	t.Run("AfterThrowingIf", func(t *testing.T) {
		t.Parallel()
		j := jasttest.Int("j")
		s := jast.If(jast.BoolLiteral(true), jast.BlockOf(jasttest.Throw(rte)), nil)
		assign := jasttest.Assign(j, jast.Binary(jast.Add, jast.Name(j), jast.IntLiteral(10)))
		ret := jast.Return(jast.Name(j))
		u, _ := jasttest.Method(s, assign, ret)

		assert.Equal(t, []jast.Stmt{assign, ret}, TrailingDeadCode(u, s))
	})

	t.Run("OutOfNestedBlock", func(t *testing.T) {
		t.Parallel()
		j := jasttest.Int("j")
		throw := jasttest.Throw(rte)
		inner1 := jasttest.Inc(j)
		outer1 := jasttest.Inc(j)
		u, _ := jasttest.Method(jast.BlockOf(throw, inner1), outer1)

		assert.Equal(t, []jast.Stmt{inner1, outer1}, TrailingDeadCode(u, throw))
	})

	t.Run("IfWhoseOtherBranchExits", func(t *testing.T) {
		t.Parallel()
		j := jasttest.Int("j")
		c := jasttest.Bool("c")
		throw := jasttest.Throw(rte)
		after := jasttest.Inc(j)
		s := jast.If(jast.Name(c), jast.BlockOf(throw), jast.BlockOf(jast.Return(nil)))
		u, _ := jasttest.Method(s, after)

		assert.Equal(t, []jast.Stmt{after}, TrailingDeadCode(u, throw))
	})

	t.Run("IfWhoseOtherBranchCompletes", func(t *testing.T) {
		t.Parallel()
		j := jasttest.Int("j")
		c := jasttest.Bool("c")
		throw := jasttest.Throw(rte)
		s := jast.If(jast.Name(c), jast.BlockOf(throw), jast.BlockOf(jasttest.Inc(j)))
		u, _ := jasttest.Method(s, jasttest.Inc(j))

		assert.Empty(t, TrailingDeadCode(u, throw))
	})

	t.Run("TryWithFinally", func(t *testing.T) {
		t.Parallel()
		j := jasttest.Int("j")
		ret := jast.Return(nil)
		dead := jasttest.Inc(j)
		try := &jast.TryStmt{
			Body:    jast.BlockOf(ret, dead),
			Finally: jast.BlockOf(jasttest.Inc(j)),
		}
		u, _ := jasttest.Method(try, jasttest.Inc(j))

		assert.Equal(t, []jast.Stmt{dead}, TrailingDeadCode(u, ret))
	})

	t.Run("TryWithCompletingCatch", func(t *testing.T) {
		t.Parallel()
		j := jasttest.Int("j")
		ret := jast.Return(nil)
		try := &jast.TryStmt{
			Body: jast.BlockOf(ret),
			Catches: []*jast.CatchClause{{
				TypeNames: []string{"RuntimeException"},
				Types:     []*jast.TypeBinding{rte},
				Name:      "e",
				Body:      jast.BlockOf(jasttest.Inc(j)),
			}},
		}
		u, _ := jasttest.Method(try, jasttest.Inc(j))

		assert.Empty(t, TrailingDeadCode(u, ret))
	})

	t.Run("CatchOfExitingTry", func(t *testing.T) {
		t.Parallel()
		j := jasttest.Int("j")
		throw := jasttest.Throw(rte)
		after := jasttest.Inc(j)
		try := &jast.TryStmt{
			Body: jast.BlockOf(jast.Return(nil)),
			Catches: []*jast.CatchClause{{
				TypeNames: []string{"RuntimeException"},
				Types:     []*jast.TypeBinding{rte},
				Name:      "e",
				Body:      jast.BlockOf(throw),
			}},
		}
		u, _ := jasttest.Method(try, after)

		assert.Equal(t, []jast.Stmt{after}, TrailingDeadCode(u, throw))
	})

	t.Run("InsideLoop", func(t *testing.T) {
		t.Parallel()
		j := jasttest.Int("j")
		c := jasttest.Bool("c")
		ret := jast.Return(nil)
		loop := &jast.WhileStmt{Cond: jast.Name(c), Body: jast.BlockOf(ret)}
		u, _ := jasttest.Method(loop, jasttest.Inc(j))

		assert.Empty(t, TrailingDeadCode(u, ret))
	})
}
