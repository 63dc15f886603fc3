// Copyright 2026 The Vela Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package proof_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/prelude"
	"velalang.org/go/internal/core/proof"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/typecheck"
	"velalang.org/go/internal/script"
)

// parse elaborates a term in the prefix notation against ctx.
func parse(t *testing.T, ctx *defs.Context, src string) (term.Term, term.Term) {
	t.Helper()
	tokens, err := script.Tokenize(src)
	qt.Assert(t, qt.IsNil(err))
	raw, err := script.ParseTerm(tokens)
	qt.Assert(t, qt.IsNil(err))
	tm, ty, err := typecheck.Check(ctx, nil, raw)
	qt.Assert(t, qt.IsNil(err))
	return tm, ty
}

func parseType(t *testing.T, ctx *defs.Context, src string) term.Term {
	t.Helper()
	tm, _ := parse(t, ctx, src)
	return tm
}

func raw(t *testing.T, src string) term.Raw {
	t.Helper()
	tokens, err := script.Tokenize(src)
	qt.Assert(t, qt.IsNil(err))
	r, err := script.ParseTerm(tokens)
	qt.Assert(t, qt.IsNil(err))
	return r
}

// apply runs a sequence of tactics, failing the test on any error.
func apply(t *testing.T, ps *proof.ProofState, ts ...proof.Tactic) *proof.ProofState {
	t.Helper()
	for _, tac := range ts {
		next, _, err := proof.ProcessTactic(tac, ps)
		qt.Assert(t, qt.IsNil(err), qt.Commentf("tactic %T", tac))
		ps = next
	}
	return ps
}

// axiom adds an undefined constant to ctx.
func axiom(t *testing.T, ctx *defs.Context, name, ty string) {
	t.Helper()
	err := ctx.AddDef(&defs.Def{
		Name: term.UN(name),
		Kind: defs.TyDecl,
		Ty:   parseType(t, ctx, ty),
	})
	qt.Assert(t, qt.IsNil(err))
}

func TestIdentityProof(t *testing.T) {
	ctx := prelude.Context()
	goal := parseType(t, ctx, "(pi A type (pi x A A))")
	ps := proof.NewProof(term.UN("id"), ctx, goal)

	ps = apply(t, ps,
		proof.Intro{},
		proof.Intro{},
		proof.Fill{Tm: raw(t, "x")},
		proof.Solve{},
		proof.QED{},
	)

	qt.Assert(t, qt.IsTrue(ps.Done()))
	want, _ := parse(t, ctx, "(lam A type (lam x A x))")
	qt.Assert(t, qt.IsTrue(term.AlphaEq(ps.Term(), want)))
}

func TestClaimAndFocusOrdering(t *testing.T) {
	ctx := prelude.Context()
	goal := parseType(t, ctx, "Nat")
	ps := proof.NewProof(term.UN("two"), ctx, goal)

	// The claimed hole n stays open while the main hole is filled with
	// a term mentioning it; solving n substitutes into the guess.
	ps = apply(t, ps,
		proof.Claim{Name: term.UN("n"), Ty: raw(t, "Nat")},
		proof.Exact{Tm: raw(t, "(S n)")},
		proof.Focus{Name: term.UN("n")},
		proof.Exact{Tm: raw(t, "Z")},
		proof.Solve{},
		proof.Solve{},
		proof.QED{},
	)

	qt.Assert(t, qt.IsTrue(ps.Done()))
	want, _ := parse(t, ctx, "(S Z)")
	qt.Assert(t, qt.IsTrue(term.AlphaEq(ps.Term(), want)))
}

func TestInduction(t *testing.T) {
	ctx := prelude.Context()
	goal := parseType(t, ctx, "(pi n Nat (= Nat Nat n n))")
	ps := proof.NewProof(term.UN("reflAll"), ctx, goal)

	ps = apply(t, ps, proof.Intro{}, proof.Induction{Name: term.UN("n")})

	// Exactly the two method holes remain; the original hole is gone.
	qt.Assert(t, qt.HasLen(ps.Holes(), 2))

	b, err := proof.GoalAtFocus(ps)
	qt.Assert(t, qt.IsNil(err))
	wantZ := parseType(t, ctx, "(= Nat Nat Z Z)")
	qt.Assert(t, qt.IsNil(typecheck.Converts(ctx, nil, b.Ty, wantZ)))

	ps = apply(t, ps,
		proof.Fill{Tm: raw(t, "(refl Nat Z)")},
		proof.Solve{},
		proof.Fill{Tm: raw(t, "(lam k Nat (lam ih (= Nat Nat k k) (refl Nat (S k))))")},
		proof.Solve{},
		proof.QED{},
	)
	qt.Assert(t, qt.IsTrue(ps.Done()))
}

func TestRewrite(t *testing.T) {
	ctx := prelude.Context()
	axiom(t, ctx, "P", "(pi v Nat type)")
	axiom(t, ctx, "a", "Nat")
	axiom(t, ctx, "b", "Nat")
	axiom(t, ctx, "e", "(= Nat Nat b a)")
	axiom(t, ctx, "pb", "(P b)")

	goal := parseType(t, ctx, "(P a)")
	ps := proof.NewProof(term.UN("rewr"), ctx, goal)

	ps = apply(t, ps, proof.Rewrite{Tm: raw(t, "e")})

	// With e : b = a the goal's occurrences of a become b.
	b, err := proof.GoalAtFocus(ps)
	qt.Assert(t, qt.IsNil(err))
	wantB := parseType(t, ctx, "(P b)")
	qt.Assert(t, qt.IsNil(typecheck.Converts(ctx, nil, b.Ty, wantB)))

	ps = apply(t, ps,
		proof.Exact{Tm: raw(t, "pb")},
		proof.Solve{},
		proof.QED{},
	)
	qt.Assert(t, qt.IsTrue(ps.Done()))
}

func TestRewriteNotEquality(t *testing.T) {
	ctx := prelude.Context()
	goal := parseType(t, ctx, "Nat")
	ps := proof.NewProof(term.UN("bad"), ctx, goal)

	_, _, err := proof.ProcessTactic(proof.Rewrite{Tm: raw(t, "Z")}, ps)
	var ne *proof.NotEquality
	qt.Assert(t, qt.IsTrue(errors.As(err, &ne)))
}

func TestQEDWithOpenHoles(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("open"), ctx, parseType(t, ctx, "Nat"))

	_, _, err := proof.ProcessTactic(proof.QED{}, ps)
	qt.Assert(t, qt.ErrorMatches(err, "Still holes to fill\\."))
}

func TestUndoAfterQED(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("one"), ctx, parseType(t, ctx, "Nat"))
	ps = apply(t, ps, proof.Exact{Tm: raw(t, "Z")}, proof.Solve{}, proof.QED{})
	qt.Assert(t, qt.IsTrue(ps.Done()))

	_, _, err := proof.ProcessTactic(proof.Undo{}, ps)
	qt.Assert(t, qt.ErrorMatches(err, "Nothing to undo\\."))
}

func TestUndoInvertsOneStep(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("id"), ctx, parseType(t, ctx, "(pi A type A)"))

	next, _, err := proof.ProcessTactic(proof.Intro{}, ps)
	qt.Assert(t, qt.IsNil(err))
	back, _, err := proof.ProcessTactic(proof.Undo{}, next)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(back, ps))
}

func TestAttackRegretRoundTrip(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("rt"), ctx, parseType(t, ctx, "Nat"))
	before := ps.Term()
	beforeHoles := ps.Holes()

	ps = apply(t, ps, proof.Attack{}, proof.Regret{})

	qt.Assert(t, qt.IsTrue(term.AlphaEq(ps.Term(), before)))
	qt.Assert(t, qt.DeepEquals(ps.Holes(), beforeHoles))
}

func TestAttackSolveNesting(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("nest"), ctx, parseType(t, ctx, "Nat"))

	// Attack opens an inner hole; the inner fill must be solved before
	// the outer guess can be.
	ps = apply(t, ps,
		proof.Attack{},
		proof.Fill{Tm: raw(t, "Z")},
		proof.Solve{},
		proof.Solve{},
		proof.QED{},
	)
	qt.Assert(t, qt.IsTrue(ps.Done()))
	want, _ := parse(t, ctx, "Z")
	qt.Assert(t, qt.IsTrue(term.AlphaEq(ps.Term(), want)))
}

func TestSolveRejectsImpureGuess(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("imp"), ctx, parseType(t, ctx, "Nat"))
	ps = apply(t, ps, proof.Attack{})

	// The outer guess still carries the unsolved inner hole.
	ps = apply(t, ps, proof.Focus{Name: ps.Holes()[1]})
	_, _, err := proof.ProcessTactic(proof.Solve{}, ps)
	qt.Assert(t, qt.ErrorMatches(err, "I see a hole in your solution\\."))
}

func TestDeferredProblemsAndInjectivity(t *testing.T) {
	ctx := prelude.Context()
	axiom(t, ctx, "f", "(pi k Nat Nat)")
	axiom(t, ctx, "P", "(pi v Nat type)")
	axiom(t, ctx, "g", "(pi k Nat (P (f k)))")

	goal := parseType(t, ctx, "(P (f Z))")
	ps := proof.NewProof(term.UN("defer"), ctx, goal)

	ps = apply(t, ps,
		proof.Claim{Name: term.UN("k"), Ty: raw(t, "Nat")},
		proof.Fill{Tm: raw(t, "(g k)")},
	)
	// P is opaque, so the equation P (f k) = P (f Z) is deferred.
	qt.Assert(t, qt.Equals(ps.ProblemCount(), 1))

	ps = apply(t, ps, proof.SetInjective{Name: term.UN("P")}, proof.UnifyProblems{})
	// Decomposing under P re-blocks on f.
	qt.Assert(t, qt.Equals(ps.ProblemCount(), 1))

	ps = apply(t, ps, proof.SetInjective{Name: term.UN("f")}, proof.UnifyProblems{})
	qt.Assert(t, qt.Equals(ps.ProblemCount(), 0))

	// The unify fixed point: running again changes nothing.
	again := apply(t, ps, proof.UnifyProblems{})
	qt.Assert(t, qt.Equals(again.ProblemCount(), 0))
	qt.Assert(t, qt.IsTrue(term.AlphaEq(again.Term(), ps.Term())))

	ps = apply(t, ps, proof.Solve{}, proof.QED{})
	qt.Assert(t, qt.IsTrue(ps.Done()))
	want, _ := parse(t, ctx, "(g Z)")
	qt.Assert(t, qt.IsTrue(term.AlphaEq(ps.Term(), want)))
}

func TestMatchFillDeferred(t *testing.T) {
	ctx := prelude.Context()
	axiom(t, ctx, "f", "(pi k Nat Nat)")
	axiom(t, ctx, "P", "(pi v Nat type)")
	axiom(t, ctx, "g", "(pi k Nat (P (f k)))")

	goal := parseType(t, ctx, "(P (f Z))")
	ps := proof.NewProof(term.UN("match"), ctx, goal)

	ps = apply(t, ps,
		proof.Claim{Name: term.UN("k"), Ty: raw(t, "Nat")},
		proof.MatchFill{Tm: raw(t, "(g k)")},
	)
	// The blocked equation was queued in match mode.
	qt.Assert(t, qt.Equals(ps.ProblemCount(), 1))

	ps = apply(t, ps,
		proof.SetInjective{Name: term.UN("P")},
		proof.SetInjective{Name: term.UN("f")},
		proof.MatchProblems{},
	)
	qt.Assert(t, qt.Equals(ps.ProblemCount(), 0))

	ps = apply(t, ps, proof.Solve{}, proof.QED{})
	qt.Assert(t, qt.IsTrue(ps.Done()))
}

func TestDefer(t *testing.T) {
	ctx := prelude.Context()
	goal := parseType(t, ctx, "(pi n Nat Nat)")
	ps := proof.NewProof(term.UN("later"), ctx, goal)

	ps = apply(t, ps, proof.Intro{}, proof.Defer{Name: term.UN("lemma")})

	qt.Assert(t, qt.HasLen(ps.Holes(), 0))
	qt.Assert(t, qt.DeepEquals(ps.Deferred(), []term.Name{term.UN("lemma")}))

	ps = apply(t, ps, proof.QED{})
	qt.Assert(t, qt.IsTrue(ps.Done()))
}

func TestInstance(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("inst"), ctx, parseType(t, ctx, "Nat"))
	ps = apply(t, ps, proof.Claim{Name: term.UN("c"), Ty: raw(t, "Nat")})
	ps = apply(t, ps, proof.Instance{Name: term.UN("c")})

	qt.Assert(t, qt.DeepEquals(ps.Instances(), []term.Name{term.UN("c")}))
	holes := ps.Holes()
	qt.Assert(t, qt.Equals(holes[len(holes)-1], term.UN("c")))
}

func TestComputeNormalisesGoal(t *testing.T) {
	ctx := prelude.Context()
	goal := parseType(t, ctx, "((lam A type A) Nat)")
	ps := proof.NewProof(term.UN("comp"), ctx, goal)

	ps = apply(t, ps, proof.Compute{})
	b, err := proof.GoalAtFocus(ps)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(term.AlphaEq(b.Ty, term.Var(term.UN("Nat")))))

	ps = apply(t, ps, proof.Exact{Tm: raw(t, "Z")}, proof.Solve{}, proof.QED{})
	qt.Assert(t, qt.IsTrue(ps.Done()))
}

func TestLetBindExpandLet(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("lets"), ctx, parseType(t, ctx, "Nat"))

	ps = apply(t, ps,
		proof.LetBind{Name: term.UN("m"), Ty: raw(t, "Nat"), Val: raw(t, "(S Z)")},
		proof.Exact{Tm: raw(t, "m")},
		proof.Solve{},
		proof.ComputeLet{Name: term.UN("m")},
		proof.ExpandLet{Name: term.UN("m")},
		proof.QED{},
	)
	qt.Assert(t, qt.IsTrue(ps.Done()))
	want, _ := parse(t, ctx, "(S Z)")
	qt.Assert(t, qt.IsTrue(term.AlphaEq(ps.Term(), want)))
}

func TestForall(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("arrow"), ctx, &term.Sort{})

	ps = apply(t, ps,
		proof.Forall{Name: term.UN("n"), Ty: raw(t, "Nat")},
		proof.Exact{Tm: raw(t, "Nat")},
		proof.Solve{},
		proof.QED{},
	)
	qt.Assert(t, qt.IsTrue(ps.Done()))
	want := parseType(t, ctx, "(pi n Nat Nat)")
	qt.Assert(t, qt.IsTrue(term.AlphaEq(ps.Term(), want)))
}

func TestIntroTy(t *testing.T) {
	ctx := prelude.Context()
	goal := parseType(t, ctx, "(pi x Nat Nat)")
	ps := proof.NewProof(term.UN("sTy"), ctx, goal)

	ps = apply(t, ps,
		proof.IntroTy{Ty: raw(t, "Nat"), Name: term.UN("y")},
		proof.Fill{Tm: raw(t, "(S y)")},
		proof.Solve{},
		proof.QED{},
	)
	qt.Assert(t, qt.IsTrue(ps.Done()))
}

func TestIntroNonPiFails(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("noPi"), ctx, parseType(t, ctx, "Nat"))

	_, _, err := proof.ProcessTactic(proof.Intro{}, ps)
	var ci *proof.CantIntroduce
	qt.Assert(t, qt.IsTrue(errors.As(err, &ci)))
}

func TestPatBind(t *testing.T) {
	ctx := prelude.Context()
	goal := parseType(t, ctx, "(patty n Nat Nat)")
	ps := proof.NewProof(term.UN("pat"), ctx, goal)

	ps = apply(t, ps,
		proof.PatBind{Name: term.UN("m")},
		proof.Exact{Tm: raw(t, "m")},
		proof.Solve{},
		proof.QED{},
	)
	qt.Assert(t, qt.IsTrue(ps.Done()))
}

func TestPatVar(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("pv"), ctx, parseType(t, ctx, "Nat"))

	ps = apply(t, ps, proof.PatVar{Name: term.UN("m")})
	qt.Assert(t, qt.HasLen(ps.Holes(), 0))
	// The hole's recorded equation is pending.
	qt.Assert(t, qt.IsTrue(strings.Contains(ps.Render(), "pending solutions: 1")))
}

func TestFocusUnknownIsNoop(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("noop"), ctx, parseType(t, ctx, "Nat"))
	before := ps.Holes()

	ps = apply(t, ps, proof.Focus{Name: term.UN("ghost")}, proof.MoveLast{Name: term.UN("ghost")})
	qt.Assert(t, qt.DeepEquals(ps.Holes(), before))
}

func TestNoMoreGoals(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("gone"), ctx, parseType(t, ctx, "Nat"))
	// Once the only hole is solved, a focused tactic has nothing to work on.
	ps = apply(t, ps, proof.Exact{Tm: raw(t, "Z")}, proof.Solve{})

	_, _, err := proof.ProcessTactic(proof.Exact{Tm: raw(t, "Z")}, ps)
	qt.Assert(t, qt.ErrorMatches(err, "no more goals"))
}

func TestEvalInLogs(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("log"), ctx, parseType(t, ctx, "Nat"))

	_, log, err := proof.ProcessTactic(proof.EvalIn{Tm: raw(t, "((lam x Nat x) Z)")}, ps)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(log, "Z")))
}

func TestRenderState(t *testing.T) {
	ctx := prelude.Context()
	ps := proof.NewProof(term.UN("shown"), ctx, parseType(t, ctx, "Nat"))
	_, log, err := proof.ProcessTactic(proof.RenderState{}, ps)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(log, "shown")))
	qt.Assert(t, qt.IsTrue(strings.Contains(log, "Nat")))
}
