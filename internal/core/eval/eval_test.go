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

package eval_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/eval"
	"velalang.org/go/internal/core/term"
)

func lam(n string, ty, sc term.Term) term.Term {
	return &term.Bind{Name: term.UN(n), B: &term.Binder{Kind: term.Lam, Ty: ty}, Scope: sc}
}

func let(n string, ty, val, sc term.Term) term.Term {
	return &term.Bind{Name: term.UN(n), B: &term.Binder{Kind: term.Let, Ty: ty, Val: val}, Scope: sc}
}

func v(n string) term.Term { return term.Var(term.UN(n)) }

func typ() term.Term { return &term.Sort{} }

func TestNormaliseBeta(t *testing.T) {
	ctx := defs.NewContext()
	// (\x. f x) a  ~>  f a
	tm := term.MkApp(lam("x", typ(), term.MkApp(v("f"), v("x"))), v("a"))
	got := eval.Normalise(ctx, nil, tm)
	qt.Assert(t, qt.IsTrue(term.Equal(got, term.MkApp(v("f"), v("a")))))
}

func TestNormaliseLet(t *testing.T) {
	ctx := defs.NewContext()
	// let x = a in f x  ~>  f a
	tm := let("x", typ(), v("a"), term.MkApp(v("f"), v("x")))
	got := eval.Normalise(ctx, nil, tm)
	qt.Assert(t, qt.IsTrue(term.Equal(got, term.MkApp(v("f"), v("a")))))
}

func TestNormaliseDelta(t *testing.T) {
	ctx := defs.NewContext()
	ctx.AddDef(&defs.Def{
		Name: term.UN("id"),
		Kind: defs.Function,
		Ty:   &term.Bind{Name: term.UN("x"), B: &term.Binder{Kind: term.Pi, Ty: typ()}, Scope: typ()},
		Body: lam("x", typ(), v("x")),
	})
	got := eval.Normalise(ctx, nil, term.MkApp(v("id"), v("a")))
	qt.Assert(t, qt.IsTrue(term.Equal(got, v("a"))))
}

func TestNormaliseUnderBinder(t *testing.T) {
	ctx := defs.NewContext()
	// \y. (\x. x) y  ~>  \y. y
	tm := lam("y", typ(), term.MkApp(lam("x", typ(), v("x")), v("y")))
	got := eval.Normalise(ctx, nil, tm)
	qt.Assert(t, qt.IsTrue(term.AlphaEq(got, lam("y", typ(), v("y")))))
}

func TestHNFStopsAtHead(t *testing.T) {
	ctx := defs.NewContext()
	// (\x. x) (   (\y. y) a   )  reduces the head only.
	inner := term.MkApp(lam("y", typ(), v("y")), v("a"))
	tm := term.MkApp(lam("x", typ(), v("x")), inner)
	got := eval.HNF(ctx, nil, tm)
	// Head normal: the outer redex is gone, the argument untouched...
	// except it became the whole term, whose head is again a redex, so
	// HNF carries on to a.
	qt.Assert(t, qt.IsTrue(term.Equal(got, v("a"))))

	// An application of a variable head is left alone.
	stuck := term.MkApp(v("f"), inner)
	got = eval.HNF(ctx, nil, stuck)
	qt.Assert(t, qt.IsTrue(term.Equal(got, stuck)))
}

func TestSpecialiseNoDelta(t *testing.T) {
	ctx := defs.NewContext()
	ctx.AddDef(&defs.Def{
		Name: term.UN("id"),
		Kind: defs.Function,
		Ty:   &term.Bind{Name: term.UN("x"), B: &term.Binder{Kind: term.Pi, Ty: typ()}, Scope: typ()},
		Body: lam("x", typ(), v("x")),
	})
	// Lets are inlined but globals stay folded.
	tm := let("x", typ(), v("a"), term.MkApp(v("id"), v("x")))
	got := eval.Specialise(ctx, nil, tm)
	qt.Assert(t, qt.IsTrue(term.Equal(got, term.MkApp(v("id"), v("a")))))
}

func TestDivergentDefinitionTerminates(t *testing.T) {
	ctx := defs.NewContext()
	// loop = loop; the step budget must stop the evaluator.
	ctx.AddDef(&defs.Def{
		Name: term.UN("loop"),
		Kind: defs.Function,
		Ty:   typ(),
		Body: v("loop"),
	})
	got := eval.Normalise(ctx, nil, v("loop"))
	qt.Assert(t, qt.IsTrue(term.Equal(got, v("loop"))))
}
