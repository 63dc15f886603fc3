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

// Package typecheck elaborates raw terms into checked terms and
// decides definitional equality.
package typecheck

import (
	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/eval"
	"velalang.org/go/internal/core/term"
)

// Check elaborates r in the given environment, returning the checked
// term and its type.
func Check(ctx *defs.Context, env term.Env, r term.Raw) (term.Term, term.Term, error) {
	c := &checker{ctx: ctx}
	return c.check(env, r)
}

// CheckType elaborates r and requires the result to inhabit a
// universe.
func CheckType(ctx *defs.Context, env term.Env, r term.Raw) (term.Term, error) {
	tm, ty, err := Check(ctx, env, r)
	if err != nil {
		return nil, err
	}
	if err := IsType(ctx, env, ty); err != nil {
		return nil, &NotAType{Term: tm}
	}
	return tm, nil
}

// IsType reports whether ty reduces to a universe.
func IsType(ctx *defs.Context, env term.Env, ty term.Term) error {
	if _, ok := eval.HNF(ctx, env, ty).(*term.Sort); !ok {
		return &NotAType{Term: ty}
	}
	return nil
}

// Converts decides definitional equality of a and b, raising
// CantConvert on failure. Universes are cumulative on the left.
func Converts(ctx *defs.Context, env term.Env, a, b term.Term) error {
	if convEq(a, b, nil) {
		return nil
	}
	na := eval.Normalise(ctx, env, a)
	nb := eval.Normalise(ctx, env, b)
	if convEq(na, nb, nil) {
		return nil
	}
	return &CantConvert{From: a, To: b}
}

// convEq is alpha-equality with universe cumulativity.
func convEq(a, b term.Term, pairs []convPair) bool {
	if sa, ok := a.(*term.Sort); ok {
		if sb, ok := b.(*term.Sort); ok {
			return sa.Level <= sb.Level
		}
		return false
	}
	switch x := a.(type) {
	case *term.Ref:
		y, ok := b.(*term.Ref)
		if !ok {
			return false
		}
		for i := len(pairs) - 1; i >= 0; i-- {
			p := pairs[i]
			if p.left == x.Name || p.right == y.Name {
				return p.left == x.Name && p.right == y.Name
			}
		}
		return x.Name == y.Name
	case *term.App:
		y, ok := b.(*term.App)
		return ok && convEq(x.Fn, y.Fn, pairs) && convEq(x.Arg, y.Arg, pairs)
	case *term.Bind:
		y, ok := b.(*term.Bind)
		if !ok || x.B.Kind != y.B.Kind {
			return false
		}
		if !convEq(x.B.Ty, y.B.Ty, pairs) {
			return false
		}
		if (x.B.Val == nil) != (y.B.Val == nil) {
			return false
		}
		if x.B.Val != nil && !convEq(x.B.Val, y.B.Val, pairs) {
			return false
		}
		return convEq(x.Scope, y.Scope, append(pairs, convPair{x.Name, y.Name}))
	case *term.Erased:
		return true
	case nil:
		return b == nil
	}
	if _, ok := b.(*term.Erased); ok {
		return true
	}
	return false
}

type convPair struct {
	left, right term.Name
}

// Recheck re-elaborates raw against the environment and returns the
// checked term and its type. The previously checked form is accepted
// for interface symmetry with drivers that track both.
func Recheck(ctx *defs.Context, env term.Env, raw term.Raw, orig term.Term) (term.Term, term.Term, error) {
	return Check(ctx, env, raw)
}

type checker struct {
	ctx *defs.Context
}

func (c *checker) check(env term.Env, r term.Raw) (term.Term, term.Term, error) {
	switch x := r.(type) {
	case *term.RVar:
		if b := env.Lookup(x.Name); b != nil {
			return &term.Ref{Class: term.Bound, Name: x.Name, Ty: b.Ty}, b.Ty, nil
		}
		if d := c.ctx.LookupDef(x.Name); d != nil {
			return &term.Ref{Class: d.Kind.RefClass(), Name: x.Name, Ty: d.Ty}, d.Ty, nil
		}
		return nil, nil, &NoSuchVariable{Name: x.Name}

	case *term.RApp:
		f, fty, err := c.check(env, x.Fn)
		if err != nil {
			return nil, nil, err
		}
		pi, ok := eval.HNF(c.ctx, env, fty).(*term.Bind)
		if !ok || pi.B.Kind != term.Pi {
			return nil, nil, &CantInferType{What: "application of a non-function " + term.String(f)}
		}
		a, aty, err := c.check(env, x.Arg)
		if err != nil {
			return nil, nil, err
		}
		if err := Converts(c.ctx, env, aty, pi.B.Ty); err != nil {
			return nil, nil, err
		}
		return &term.App{Fn: f, Arg: a}, term.Subst(pi.Name, a, pi.Scope), nil

	case *term.RBind:
		return c.checkBind(env, x)

	case *term.RSort:
		return &term.Sort{Level: x.Level}, &term.Sort{Level: x.Level + 1}, nil

	case *term.RErased:
		return &term.Erased{}, &term.Erased{}, nil
	}
	return nil, nil, &CantInferType{What: "unrecognised raw term"}
}

func (c *checker) checkBind(env term.Env, x *term.RBind) (term.Term, term.Term, error) {
	ty, err := CheckType(c.ctx, env, x.B.Ty)
	if err != nil {
		return nil, nil, err
	}
	b := &term.Binder{Kind: x.B.Kind, Ty: ty}

	switch x.B.Kind {
	case term.Lam:
		sc, scty, err := c.check(env.Push(x.Name, b), x.Scope)
		if err != nil {
			return nil, nil, err
		}
		pi := &term.Bind{Name: x.Name, B: &term.Binder{Kind: term.Pi, Ty: ty}, Scope: scty}
		return &term.Bind{Name: x.Name, B: b, Scope: sc}, pi, nil

	case term.Pi:
		sc, scty, err := c.check(env.Push(x.Name, b), x.Scope)
		if err != nil {
			return nil, nil, err
		}
		srt, ok := eval.HNF(c.ctx, env, scty).(*term.Sort)
		if !ok {
			return nil, nil, &NotAType{Term: sc}
		}
		return &term.Bind{Name: x.Name, B: b, Scope: sc}, &term.Sort{Level: srt.Level}, nil

	case term.Let:
		v, vty, err := c.check(env, x.B.Val)
		if err != nil {
			return nil, nil, err
		}
		if err := Converts(c.ctx, env, vty, ty); err != nil {
			return nil, nil, err
		}
		b.Val = v
		sc, scty, err := c.check(env.Push(x.Name, b), x.Scope)
		if err != nil {
			return nil, nil, err
		}
		return &term.Bind{Name: x.Name, B: b, Scope: sc},
			term.Subst(x.Name, v, scty), nil

	case term.Guess:
		v, vty, err := c.check(env, x.B.Val)
		if err != nil {
			return nil, nil, err
		}
		if err := Converts(c.ctx, env, vty, ty); err != nil {
			return nil, nil, err
		}
		b.Val = v
		fallthrough

	case term.Hole, term.GHole, term.PVTy:
		// Holes are transparent: the scope's type is the type of the
		// whole.
		sc, scty, err := c.check(env.Push(x.Name, b), x.Scope)
		if err != nil {
			return nil, nil, err
		}
		return &term.Bind{Name: x.Name, B: b, Scope: sc}, scty, nil

	case term.PVar:
		// A pattern binding types as its PVTy counterpart.
		sc, scty, err := c.check(env.Push(x.Name, b), x.Scope)
		if err != nil {
			return nil, nil, err
		}
		return &term.Bind{Name: x.Name, B: b, Scope: sc},
			&term.Bind{Name: x.Name, B: &term.Binder{Kind: term.PVTy, Ty: ty}, Scope: scty}, nil
	}
	return nil, nil, &CantInferType{What: "unrecognised binder"}
}
