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

package proof

import (
	"testing"

	"github.com/go-quicktest/qt"

	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/unify"
)

func v(n string) term.Term { return term.Var(term.UN(n)) }

func holeBind(n string, ty term.Term, sc term.Term) *term.Bind {
	return &term.Bind{
		Name:  term.UN(n),
		B:     &term.Binder{Kind: term.Hole, Ty: ty},
		Scope: sc,
	}
}

func TestUpdateSolvedEliminatesBinder(t *testing.T) {
	// ?h : Nat. f h   with   h := Z   becomes   f Z
	tm := holeBind("h", v("Nat"), term.MkApp(v("f"), v("h")))
	ns := []unify.Assign{{Name: term.UN("h"), Value: v("Z")}}
	got := updateSolved(ns, tm)
	qt.Assert(t, qt.IsTrue(term.Equal(got, term.MkApp(v("f"), v("Z")))))
}

func TestUpdateSolvedMachineRefs(t *testing.T) {
	h := term.MN(4, "hole")
	tm := term.MkApp(v("f"), term.Var(h))
	ns := []unify.Assign{{Name: h, Value: v("Z")}}
	got := updateSolved(ns, tm)
	qt.Assert(t, qt.IsTrue(term.Equal(got, term.MkApp(v("f"), v("Z")))))

	// User-named references outside their binder are left alone.
	tm = term.MkApp(v("f"), v("h"))
	got = updateSolved([]unify.Assign{{Name: term.UN("h"), Value: v("Z")}}, tm)
	qt.Assert(t, qt.IsTrue(term.Equal(got, tm)))
}

func TestUpdateSolvedIdempotent(t *testing.T) {
	tm := holeBind("h", v("Nat"),
		term.MkApp(v("f"), v("h"), term.Var(term.MN(7, "m"))))
	ns := []unify.Assign{
		{Name: term.UN("h"), Value: v("Z")},
		{Name: term.MN(7, "m"), Value: term.MkApp(v("S"), v("Z"))},
	}
	once := updateSolved(ns, tm)
	twice := updateSolved(ns, once)
	qt.Assert(t, qt.IsTrue(term.Equal(once, twice)))
}

func TestDropKeepGiven(t *testing.T) {
	du := []term.Name{term.UN("n")}
	holes := []term.Name{term.UN("n"), term.UN("h")}

	// A solution binding a given name to another hole is flipped.
	ns := []unify.Assign{{Name: term.UN("n"), Value: term.Var(term.UN("h"))}}
	drop := DropGiven(du, ns, holes)
	qt.Assert(t, qt.HasLen(drop, 1))
	qt.Assert(t, qt.Equals(drop[0].Name, term.UN("h")))
	qt.Assert(t, qt.IsTrue(term.Equal(drop[0].Value, term.Var(term.UN("n")))))
	qt.Assert(t, qt.HasLen(KeepGiven(du, ns, holes), 0))

	// A structural solution for a given name is kept aside instead.
	ns = []unify.Assign{{Name: term.UN("n"), Value: term.MkApp(v("S"), v("Z"))}}
	qt.Assert(t, qt.HasLen(DropGiven(du, ns, holes), 0))
	keep := KeepGiven(du, ns, holes)
	qt.Assert(t, qt.HasLen(keep, 1))
	qt.Assert(t, qt.Equals(keep[0].Name, term.UN("n")))

	// Solutions for machine holes pass through untouched.
	ns = []unify.Assign{{Name: term.UN("h"), Value: v("Z")}}
	qt.Assert(t, qt.HasLen(DropGiven(du, ns, holes), 1))
	qt.Assert(t, qt.HasLen(KeepGiven(du, ns, holes), 0))
}

func TestReorderBinders(t *testing.T) {
	nat := v("Nat")
	// b's type mentions a, so a must precede b wherever it starts.
	a := holeBind("a", nat, nil)
	b := holeBind("b", term.MkApp(v("Vec"), v("a")), nil)
	c := holeBind("c", nat, nil)

	perms := [][]*term.Bind{
		{a, b, c}, {a, c, b}, {b, a, c},
		{b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, p := range perms {
		got := reorderBinders(p)
		qt.Assert(t, qt.HasLen(got, 3))
		posOf := func(n string) int {
			for i, x := range got {
				if x.Name == term.UN(n) {
					return i
				}
			}
			return -1
		}
		qt.Assert(t, qt.IsTrue(posOf("a") < posOf("b")), qt.Commentf("perm %v", p))
	}

	// Independent binders keep their relative order.
	got := reorderBinders([]*term.Bind{c, a})
	qt.Assert(t, qt.Equals(got[0].Name, term.UN("c")))
	qt.Assert(t, qt.Equals(got[1].Name, term.UN("a")))
}

func TestRemoveHolePreservesOrder(t *testing.T) {
	ns := []term.Name{term.UN("a"), term.UN("b"), term.UN("c")}
	got := removeHole(append([]term.Name(nil), ns...), term.UN("b"))
	qt.Assert(t, qt.DeepEquals(got, []term.Name{term.UN("a"), term.UN("c")}))
}
