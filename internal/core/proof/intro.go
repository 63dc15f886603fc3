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
	"velalang.org/go/internal/core/eval"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/typecheck"
	"velalang.org/go/internal/core/unify"
	"velalang.org/go/vela/errors"
)

// intro introduces a lambda for a Pi goal: the hole's goal
// Pi(y:s).t becomes a Lam binding, re-exposing the hole at t[n/y].
func (s *tacState) intro(mn term.Name) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		return s.introCommon(env, t, mn, nil)
	}
}

// introTy is intro with the binder type unified against a
// caller-supplied type.
func (s *tacState) introTy(ty term.Raw, mn term.Name) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		tyv, err := typecheck.CheckType(s.ps.ctx, env, ty)
		if err != nil {
			return nil, err
		}
		return s.introCommon(env, t, mn, tyv)
	}
}

func (s *tacState) introCommon(env term.Env, t *term.Bind, mn term.Name, given term.Term) (term.Term, error) {
	if t.B.Kind != term.Hole || !selfScoped(t) {
		return nil, errors.Newf("Can't introduce here.")
	}
	goal := t.B.Ty
	if b, ok := goal.(*term.Bind); !ok || b.B.Kind != term.Pi {
		goal = eval.HNF(s.ps.ctx, env, goal)
	}
	pi, ok := goal.(*term.Bind)
	if !ok || pi.B.Kind != term.Pi {
		return nil, &CantIntroduce{Goal: goal}
	}
	if given != nil {
		if err := s.unifyOracle(env, given, pi.B.Ty); err != nil {
			return nil, err
		}
	}
	n := mn
	if n.IsNil() {
		n = s.uniqueHole(pi.Name)
	} else {
		s.noteUsed(n)
	}
	v := &term.Ref{Class: term.Bound, Name: n, Ty: pi.B.Ty}
	scTy := term.Subst(pi.Name, v, pi.Scope)
	return &term.Bind{
		Name: n,
		B:    &term.Binder{Kind: term.Lam, Ty: pi.B.Ty},
		Scope: &term.Bind{
			Name:  t.Name,
			B:     &term.Binder{Kind: term.Hole, Ty: scTy},
			Scope: &term.Ref{Class: term.Bound, Name: t.Name, Ty: scTy},
		},
	}, nil
}

// forall binds n : ty with Pi. The goal must be a universe, and ty must
// be a type: its own type must be a universe.
func (s *tacState) forall(n term.Name, ty term.Raw) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole || !selfScoped(t) {
			return nil, errors.Newf("Can't pi bind here.")
		}
		tyv, tyt, err := typecheck.Check(s.ps.ctx, env, ty)
		if err != nil {
			return nil, err
		}
		if _, ok := eval.HNF(s.ps.ctx, env, tyt).(*term.Sort); !ok {
			return nil, errors.Newf("Can't pi bind here: %s is not a type", term.String(tyv))
		}
		if _, ok := eval.HNF(s.ps.ctx, env, t.B.Ty).(*term.Sort); !ok {
			return nil, errors.Newf("Can't pi bind here: the goal is not a universe")
		}
		s.noteUsed(n)
		return &term.Bind{
			Name: n,
			B:    &term.Binder{Kind: term.Pi, Ty: tyv},
			Scope: &term.Bind{
				Name:  t.Name,
				B:     &term.Binder{Kind: term.Hole, Ty: t.B.Ty},
				Scope: &term.Ref{Class: term.Bound, Name: t.Name, Ty: t.B.Ty},
			},
		}, nil
	}
}

// letBind inserts a checked let binding around the focused hole.
func (s *tacState) letBind(n term.Name, ty, val term.Raw) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole || !selfScoped(t) {
			return nil, errors.Newf("Can't let bind here.")
		}
		tyv, err := typecheck.CheckType(s.ps.ctx, env, ty)
		if err != nil {
			return nil, err
		}
		vv, vt, err := typecheck.Check(s.ps.ctx, env, val)
		if err != nil {
			return nil, err
		}
		if err := typecheck.Converts(s.ps.ctx, env, vt, tyv); err != nil {
			return nil, err
		}
		s.noteUsed(n)
		return &term.Bind{
			Name: n,
			B:    &term.Binder{Kind: term.Let, Ty: tyv, Val: vv},
			Scope: &term.Bind{
				Name:  t.Name,
				B:     &term.Binder{Kind: term.Hole, Ty: t.B.Ty},
				Scope: &term.Ref{Class: term.Bound, Name: t.Name, Ty: t.B.Ty},
			},
		}, nil
	}
}

// expandLet inlines the named let binding throughout the proof term,
// removing the binder. A nil value inlines the binding's own value.
func (s *tacState) expandLet(n term.Name, val term.Raw) error {
	found := false
	var ferr error
	var walk func(env term.Env, t term.Term) term.Term
	walk = func(env term.Env, t term.Term) term.Term {
		switch x := t.(type) {
		case *term.Bind:
			if x.Name == n && x.B.Kind == term.Let && !found {
				found = true
				v := x.B.Val
				if val != nil {
					vv, vt, err := typecheck.Check(s.ps.ctx, env, val)
					if err != nil {
						ferr = err
						return t
					}
					if err := typecheck.Converts(s.ps.ctx, env, vt, x.B.Ty); err != nil {
						ferr = err
						return t
					}
					v = vv
				}
				return term.Subst(n, v, x.Scope)
			}
			b := x.B.Map(func(u term.Term) term.Term { return walk(env, u) })
			inner := env.Push(x.Name, b)
			return &term.Bind{Name: x.Name, B: b, Scope: walk(inner, x.Scope)}
		case *term.App:
			return &term.App{Fn: walk(env, x.Fn), Arg: walk(env, x.Arg)}
		default:
			return t
		}
	}
	tm := walk(nil, s.ps.pterm)
	if ferr != nil {
		return ferr
	}
	if !found {
		return errors.Newf("Can't find let binding %v", n)
	}
	s.ps.pterm = tm
	return nil
}

// equiv coerces the goal to a definitionally equal type.
func (s *tacState) equiv(ty term.Raw) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole {
			return nil, errors.Newf("Can't equiv here.")
		}
		tyv, err := typecheck.CheckType(s.ps.ctx, env, ty)
		if err != nil {
			return nil, err
		}
		if err := typecheck.Converts(s.ps.ctx, env, tyv, t.B.Ty); err != nil {
			return nil, err
		}
		return &term.Bind{
			Name:  t.Name,
			B:     &term.Binder{Kind: term.Hole, Ty: tyv},
			Scope: t.Scope,
		}, nil
	}
}

// patVar converts the focused hole into a pattern variable. The hole's
// recorded equation moves to the pending list, and injectivity carries
// over to the new name.
func (s *tacState) patVar(n term.Name) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole {
			return nil, errors.Newf("Can't pattern var here.")
		}
		ps := s.ps
		s.noteUsed(n)
		ps.holes = removeHole(ps.holes, t.Name)
		v := &term.Ref{Class: term.Bound, Name: n, Ty: t.B.Ty}
		ps.notunified = append(ps.notunified, unify.Assign{Name: t.Name, Value: v})
		if ps.injective.Has(t.Name) {
			ps.injective.Add(n)
		}
		return &term.Bind{
			Name:  n,
			B:     &term.Binder{Kind: term.PVar, Ty: t.B.Ty},
			Scope: term.Subst(t.Name, v, t.Scope),
		}, nil
	}
}

// patBind binds a pattern variable out of a PVTy goal, the pattern
// analogue of intro.
func (s *tacState) patBind(n term.Name) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole || !selfScoped(t) {
			return nil, errors.Newf("Can't pattern bind here.")
		}
		goal := t.B.Ty
		if b, ok := goal.(*term.Bind); !ok || b.B.Kind != term.PVTy {
			goal = eval.HNF(s.ps.ctx, env, goal)
		}
		pv, ok := goal.(*term.Bind)
		if !ok || pv.B.Kind != term.PVTy {
			return nil, errors.Newf("Can't pattern bind here.")
		}
		s.noteUsed(n)
		v := &term.Ref{Class: term.Bound, Name: n, Ty: pv.B.Ty}
		scTy := term.Subst(pv.Name, v, pv.Scope)
		return &term.Bind{
			Name: n,
			B:    &term.Binder{Kind: term.PVar, Ty: pv.B.Ty},
			Scope: &term.Bind{
				Name:  t.Name,
				B:     &term.Binder{Kind: term.Hole, Ty: scTy},
				Scope: &term.Ref{Class: term.Bound, Name: t.Name, Ty: scTy},
			},
		}, nil
	}
}
