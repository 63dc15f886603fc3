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

// Package prelude builds the bootstrap definition context: the natural
// numbers with their eliminator, and the equality family with refl and
// replace. Drivers extend it with their own declarations.
package prelude

import (
	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/term"
)

var (
	natName  = term.UN("Nat")
	zName    = term.UN("Z")
	sName    = term.UN("S")
	elimName = term.UN("elimNat")

	eqName      = term.UN("=")
	reflName    = term.UN("refl")
	replaceName = term.UN("replace")
)

func pi(n string, ty, sc term.Term) term.Term {
	return &term.Bind{
		Name:  term.UN(n),
		B:     &term.Binder{Kind: term.Pi, Ty: ty},
		Scope: sc,
	}
}

func v(n string) term.Term { return term.Var(term.UN(n)) }

func app(f term.Term, args ...term.Term) term.Term { return term.MkApp(f, args...) }

func typ() term.Term { return &term.Sort{} }

// Context returns a fresh context holding the bootstrap declarations.
func Context() *defs.Context {
	c := defs.NewContext()

	nat := term.Term(&term.Ref{Class: term.TypeCon, Name: natName})
	c.AddDef(&defs.Def{Name: natName, Kind: defs.TypeCon, Ty: typ(), Meta: defs.DataMI{}})
	c.AddDef(&defs.Def{Name: zName, Kind: defs.DataCon, Ty: nat})
	c.AddDef(&defs.Def{Name: sName, Kind: defs.DataCon, Ty: pi("k", nat, nat)})

	// elimNat : (P : (n : Nat) -> Type) -> P Z ->
	//           ((k : Nat) -> P k -> P (S k)) -> (n : Nat) -> P n
	p := v("P")
	elimTy := pi("P", pi("n", nat, typ()),
		pi("mz", app(p, term.Var(zName)),
			pi("ms", pi("k", nat, pi("ih", app(p, v("k")), app(p, app(term.Var(sName), v("k"))))),
				pi("n", nat, app(p, v("n"))))))
	c.AddEliminator(natName, &defs.Def{Name: elimName, Ty: elimTy})

	// (=) : (a : Type) -> (b : Type) -> (x : a) -> (y : b) -> Type
	eqTy := pi("a", typ(), pi("b", typ(), pi("x", v("a"), pi("y", v("b"), typ()))))
	c.AddDef(&defs.Def{Name: eqName, Kind: defs.TypeCon, Ty: eqTy, Meta: defs.DataMI{ParamPos: []int{0, 1}}})

	// refl : (a : Type) -> (x : a) -> x = x
	eq := term.Term(&term.Ref{Class: term.TypeCon, Name: eqName})
	reflTy := pi("a", typ(), pi("x", v("a"), app(eq, v("a"), v("a"), v("x"), v("x"))))
	c.AddDef(&defs.Def{Name: reflName, Kind: defs.DataCon, Ty: reflTy})

	// replace : (a : Type) -> (x : a) -> (y : a) ->
	//           (P : (v : a) -> Type) -> P x -> x = y -> P y
	replaceTy := pi("a", typ(), pi("x", v("a"), pi("y", v("a"),
		pi("P", pi("v", v("a"), typ()),
			pi("px", app(v("P"), v("x")),
				pi("pf", app(eq, v("a"), v("a"), v("x"), v("y")),
					app(v("P"), v("y"))))))))
	c.AddDef(&defs.Def{Name: replaceName, Kind: defs.TyDecl, Ty: replaceTy})

	return c
}
