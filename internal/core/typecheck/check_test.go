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

package typecheck_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"velalang.org/go/internal/core/prelude"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/typecheck"
	"velalang.org/go/vela/errors"
)

func rv(n string) term.Raw { return term.RV(term.UN(n)) }

func rlam(n string, ty, sc term.Raw) term.Raw {
	return &term.RBind{Name: term.UN(n), B: &term.RBinder{Kind: term.Lam, Ty: ty}, Scope: sc}
}

func rpi(n string, ty, sc term.Raw) term.Raw {
	return &term.RBind{Name: term.UN(n), B: &term.RBinder{Kind: term.Pi, Ty: ty}, Scope: sc}
}

func rsort() term.Raw { return &term.RSort{} }

func TestCheckIdentity(t *testing.T) {
	ctx := prelude.Context()
	// \A:Type. \x:A. x  :  (A : Type) -> (x : A) -> A
	raw := rlam("A", rsort(), rlam("x", rv("A"), rv("x")))
	tm, ty, err := typecheck.Check(ctx, nil, raw)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNotNil(tm))

	want, err := typecheck.CheckType(ctx, nil, rpi("A", rsort(), rpi("x", rv("A"), rv("A"))))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(typecheck.Converts(ctx, nil, ty, want)))
}

func TestCheckApplication(t *testing.T) {
	ctx := prelude.Context()
	tm, ty, err := typecheck.Check(ctx, nil, &term.RApp{Fn: rv("S"), Arg: rv("Z")})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(term.AlphaEq(ty, term.Var(term.UN("Nat")))))
	hd, args := term.UnApply(tm)
	qt.Assert(t, qt.Equals(hd.(*term.Ref).Name, term.UN("S")))
	qt.Assert(t, qt.HasLen(args, 1))
}

func TestCheckApplicationMismatch(t *testing.T) {
	ctx := prelude.Context()
	// S Nat is ill-typed: Nat is not a Nat.
	_, _, err := typecheck.Check(ctx, nil, &term.RApp{Fn: rv("S"), Arg: rv("Nat")})
	qt.Assert(t, qt.IsNotNil(err))
	var cc *typecheck.CantConvert
	qt.Assert(t, qt.IsTrue(errors.As(err, &cc)))
}

func TestCheckUnknownVariable(t *testing.T) {
	ctx := prelude.Context()
	_, _, err := typecheck.Check(ctx, nil, rv("mystery"))
	var nsv *typecheck.NoSuchVariable
	qt.Assert(t, qt.IsTrue(errors.As(err, &nsv)))
	qt.Assert(t, qt.Equals(nsv.Name, term.UN("mystery")))
}

func TestCheckTypeRejectsValues(t *testing.T) {
	ctx := prelude.Context()
	_, err := typecheck.CheckType(ctx, nil, rv("Z"))
	var nat *typecheck.NotAType
	qt.Assert(t, qt.IsTrue(errors.As(err, &nat)))
}

func TestConverts(t *testing.T) {
	ctx := prelude.Context()
	a, _, err := typecheck.Check(ctx, nil,
		&term.RApp{Fn: rlam("x", rv("Nat"), rv("x")), Arg: rv("Z")})
	qt.Assert(t, qt.IsNil(err))
	b, _, err := typecheck.Check(ctx, nil, rv("Z"))
	qt.Assert(t, qt.IsNil(err))
	// (\x. x) Z converts to Z.
	qt.Assert(t, qt.IsNil(typecheck.Converts(ctx, nil, a, b)))
	qt.Assert(t, qt.IsNotNil(typecheck.Converts(ctx, nil, b, term.Var(term.UN("Nat")))))
}

func TestTypeOf(t *testing.T) {
	ctx := prelude.Context()
	tm, ty0, err := typecheck.Check(ctx, nil, &term.RApp{Fn: rv("S"), Arg: rv("Z")})
	qt.Assert(t, qt.IsNil(err))
	ty, err := typecheck.TypeOf(ctx, nil, tm)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(typecheck.Converts(ctx, nil, ty, ty0)))
}

func TestTypeOfHoleTransparent(t *testing.T) {
	ctx := prelude.Context()
	nat := term.Var(term.UN("Nat"))
	h := term.UN("h")
	tm := &term.Bind{
		Name:  h,
		B:     &term.Binder{Kind: term.Hole, Ty: nat},
		Scope: &term.Ref{Class: term.Bound, Name: h, Ty: nat},
	}
	ty, err := typecheck.TypeOf(ctx, nil, tm)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(term.Equal(ty, nat)))
}

func TestRecheckRoundTrip(t *testing.T) {
	ctx := prelude.Context()
	raw := rlam("x", rv("Nat"), &term.RApp{Fn: rv("S"), Arg: rv("x")})
	tm, _, err := typecheck.Check(ctx, nil, raw)
	qt.Assert(t, qt.IsNil(err))
	tm2, _, err := typecheck.Recheck(ctx, nil, term.Forget(tm), tm)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(term.AlphaEq(tm, tm2)))
}
