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
	"velalang.org/go/internal/core/debug"
	"velalang.org/go/internal/core/eval"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/typecheck"
	"velalang.org/go/internal/core/unify"
	"velalang.org/go/vela/errors"
)

// getName draws a fresh machine name from the state's supply.
func (s *tacState) getName(base string) term.Name {
	n := term.MN(s.ps.nextname, base)
	s.ps.nextname++
	s.ps.usedns.Add(n)
	return n
}

// noteUsed records a driver-supplied name so later fresh names avoid
// it.
func (s *tacState) noteUsed(n term.Name) {
	s.ps.usedns.Add(n)
}

// uniqueHole derives an unused variant of base.
func (s *tacState) uniqueHole(base term.Name) term.Name {
	n := s.ps.ctx.UniqueName(base, s.ps.usedns)
	s.ps.usedns.Add(n)
	return n
}

// selfScoped reports whether the hole's scope is just a reference to
// itself, the shape produced by Attack under which binder-introducing
// tactics are valid.
func selfScoped(t *term.Bind) bool {
	r, ok := t.Scope.(*term.Ref)
	return ok && r.Name == t.Name
}

// pure reports whether t contains no hole or guess binders.
func pure(t term.Term) bool {
	switch x := t.(type) {
	case *term.App:
		return pure(x.Fn) && pure(x.Arg)
	case *term.Bind:
		if x.B.IsHole() {
			return false
		}
		if !pure(x.B.Ty) {
			return false
		}
		if x.B.Val != nil && !pure(x.B.Val) {
			return false
		}
		return pure(x.Scope)
	default:
		return true
	}
}

// attack turns the focused hole into a guess carrying a fresh inner
// hole, beginning a nested elaboration.
func (s *tacState) attack(env term.Env, t *term.Bind) (term.Term, error) {
	if t.B.Kind != term.Hole {
		return nil, errors.Newf("Not an attackable hole")
	}
	h := s.getName("hole")
	s.ps.holes = append([]term.Name{h}, s.ps.holes...)
	inner := &term.Bind{
		Name:  h,
		B:     &term.Binder{Kind: term.Hole, Ty: t.B.Ty},
		Scope: &term.Ref{Class: term.Bound, Name: h, Ty: t.B.Ty},
	}
	return &term.Bind{
		Name:  t.Name,
		B:     &term.Binder{Kind: term.Guess, Ty: t.B.Ty, Val: inner},
		Scope: t.Scope,
	}, nil
}

// claim inserts a new hole n : ty immediately after the focus.
func (s *tacState) claim(n term.Name, ty term.Raw) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		tyv, err := typecheck.CheckType(s.ps.ctx, env, ty)
		if err != nil {
			return nil, err
		}
		s.noteUsed(n)
		hs := s.ps.holes
		if len(hs) == 0 {
			s.ps.holes = []term.Name{n}
		} else {
			rest := append([]term.Name{n}, hs[1:]...)
			s.ps.holes = append([]term.Name{hs[0]}, rest...)
		}
		return &term.Bind{
			Name:  n,
			B:     &term.Binder{Kind: term.Hole, Ty: tyv},
			Scope: t,
		}, nil
	}
}

// reorder stably reorders the run of hole binders at the focus so that
// a binder precedes any binder whose type mentions it.
func (s *tacState) reorder(env term.Env, t *term.Bind) (term.Term, error) {
	var bs []*term.Bind
	cur := term.Term(t)
	for {
		b, ok := cur.(*term.Bind)
		if !ok || b.B.Kind != term.Hole {
			break
		}
		bs = append(bs, b)
		cur = b.Scope
	}
	sorted := reorderBinders(bs)
	for i := len(sorted) - 1; i >= 0; i-- {
		cur = &term.Bind{Name: sorted[i].Name, B: sorted[i].B, Scope: cur}
	}
	return cur, nil
}

func reorderBinders(bs []*term.Bind) []*term.Bind {
	var out []*term.Bind
	for _, b := range bs {
		at := len(out)
		for i, o := range out {
			if term.Occurs(b.Name, o.B.Ty) {
				at = i
				break
			}
		}
		out = append(out, nil)
		copy(out[at+1:], out[at:])
		out[at] = b
	}
	return out
}

// exact fills the hole with a term whose type converts to the goal.
// No unification side effects.
func (s *tacState) exact(r term.Raw) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole {
			return nil, errors.Newf("Can't fill here.")
		}
		tm, ty, err := typecheck.Check(s.ps.ctx, env, r)
		if err != nil {
			return nil, err
		}
		if err := typecheck.Converts(s.ps.ctx, env, ty, t.B.Ty); err != nil {
			return nil, err
		}
		return &term.Bind{
			Name:  t.Name,
			B:     &term.Binder{Kind: term.Guess, Ty: t.B.Ty, Val: tm},
			Scope: t.Scope,
		}, nil
	}
}

// fill is exact with unification between the term's type and the goal.
func (s *tacState) fill(r term.Raw) runFn {
	return s.fillWith(r, false)
}

// matchFill is fill with one-sided matching.
func (s *tacState) matchFill(r term.Raw) runFn {
	return s.fillWith(r, true)
}

func (s *tacState) fillWith(r term.Raw, match bool) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole {
			return nil, errors.Newf("Can't fill here.")
		}
		tm, ty, err := typecheck.Check(s.ps.ctx, env, r)
		if err != nil {
			return nil, err
		}
		if match {
			err = s.matchOracle(env, ty, t.B.Ty)
		} else {
			err = s.unifyOracle(env, ty, t.B.Ty)
		}
		if err != nil {
			return nil, err
		}
		return &term.Bind{
			Name:  t.Name,
			B:     &term.Binder{Kind: term.Guess, Ty: t.B.Ty, Val: tm},
			Scope: t.Scope,
		}, nil
	}
}

// prepFill guesses an application of f to the named arguments without
// typechecking; CompleteFill validates it once the arguments are
// solved.
func (s *tacState) prepFill(f term.Name, args []term.Name) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole {
			return nil, errors.Newf("Can't fill here.")
		}
		v := term.Term(&term.Ref{Class: term.Global, Name: f, Ty: &term.Erased{}})
		for _, a := range args {
			v = &term.App{Fn: v, Arg: &term.Ref{Class: term.Global, Name: a, Ty: &term.Erased{}}}
		}
		return &term.Bind{
			Name:  t.Name,
			B:     &term.Binder{Kind: term.Guess, Ty: t.B.Ty, Val: v},
			Scope: t.Scope,
		}, nil
	}
}

// completeFill rechecks the focused guess and unifies its type with
// the goal. The guess stays in place awaiting Solve.
func (s *tacState) completeFill(env term.Env, t *term.Bind) (term.Term, error) {
	if t.B.Kind != term.Guess {
		return nil, errors.Newf("Can't complete fill here.")
	}
	_, ty, err := typecheck.Check(s.ps.ctx, env, term.Forget(t.B.Val))
	if err != nil {
		return nil, err
	}
	if err := s.unifyOracle(env, ty, t.B.Ty); err != nil {
		return nil, err
	}
	return t, nil
}

// regretRun removes the focused hole. An untouched attack — a guess
// whose candidate is still just the inner hole — is reverted to the
// plain hole it came from; otherwise the hole binder is removed,
// provided the hole is unused in its scope.
func (s *tacState) regretRun() error {
	if len(s.ps.holes) == 0 {
		return errors.Newf("no more goals")
	}
	h := s.ps.holes[0]
	if tm, ok := revertAttack(s.ps.pterm, h); ok {
		s.ps.pterm = tm
		s.ps.holes = removeHole(s.ps.holes, h)
		return nil
	}
	return s.at(h, s.regret)
}

// revertAttack finds a guess whose candidate is exactly the untouched
// inner hole h and turns it back into a hole.
func revertAttack(t term.Term, h term.Name) (term.Term, bool) {
	switch x := t.(type) {
	case *term.Bind:
		if x.B.Kind == term.Guess {
			if v, ok := x.B.Val.(*term.Bind); ok &&
				v.Name == h && v.B.Kind == term.Hole && selfScoped(v) {
				return &term.Bind{
					Name:  x.Name,
					B:     &term.Binder{Kind: term.Hole, Ty: x.B.Ty},
					Scope: x.Scope,
				}, true
			}
			if nv, ok := revertAttack(x.B.Val, h); ok {
				b := *x.B
				b.Val = nv
				return &term.Bind{Name: x.Name, B: &b, Scope: x.Scope}, true
			}
		}
		if nsc, ok := revertAttack(x.Scope, h); ok {
			return &term.Bind{Name: x.Name, B: x.B, Scope: nsc}, true
		}
		return nil, false
	case *term.App:
		if nf, ok := revertAttack(x.Fn, h); ok {
			return &term.App{Fn: nf, Arg: x.Arg}, true
		}
		if na, ok := revertAttack(x.Arg, h); ok {
			return &term.App{Fn: x.Fn, Arg: na}, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// regret removes a hole that is not used in its scope.
func (s *tacState) regret(env term.Env, t *term.Bind) (term.Term, error) {
	if t.B.Kind != term.Hole {
		return nil, errors.Newf("Can't regret here.")
	}
	if term.Occurs(t.Name, t.Scope) {
		return nil, errors.Newf("Can't delete hole %v; it is still used.", t.Name)
	}
	s.ps.holes = removeHole(s.ps.holes, t.Name)
	return t.Scope, nil
}

// solve promotes the focused guess: the candidate replaces the hole
// throughout the scope, and any pending equation recorded for this
// hole is matched against the candidate.
func (s *tacState) solve(env term.Env, t *term.Bind) (term.Term, error) {
	if t.B.Kind != term.Guess {
		return nil, errors.Newf("Can't solve here: %v is not a guess.", t.Name)
	}
	if !pure(t.B.Val) {
		return nil, errors.Newf("I see a hole in your solution.")
	}
	ps := s.ps
	for _, nu := range ps.notunified {
		if nu.Name == t.Name {
			if err := s.matchOracle(env, nu.Value, t.B.Val); err != nil {
				return nil, err
			}
			break
		}
	}
	ps.holes = removeHole(ps.holes, t.Name)
	ps.instances = removeHole(ps.instances, t.Name)
	sol := unify.Assign{Name: t.Name, Value: t.B.Val}
	ps.solved = &sol
	var nu []unify.Assign
	for _, a := range ps.notunified {
		if a.Name != t.Name {
			nu = append(nu, a)
		}
	}
	ps.notunified = updateNotunified([]unify.Assign{sol}, nu)
	return term.Subst(t.Name, t.B.Val, t.Scope), nil
}

// focusOn rotates n to the head of the hole list if it is open.
func (s *tacState) focusOn(n term.Name) {
	if !containsName(s.ps.holes, n) {
		return
	}
	s.ps.holes = append([]term.Name{n}, removeHole(s.ps.holes, n)...)
}

// moveLast moves n to the tail of the hole list if it is open.
func (s *tacState) moveLast(n term.Name) {
	if !containsName(s.ps.holes, n) {
		return
	}
	s.ps.holes = append(removeHole(s.ps.holes, n), n)
}

// instance tags n for instance search and moves it last, so the main
// script runs before instance resolution is attempted.
func (s *tacState) instance(n term.Name) {
	s.ps.instances = append(s.ps.instances, n)
	s.moveLast(n)
}

type computeKind uint8

const (
	computeNF computeKind = iota
	computeHNF
	computeSpecialise
)

// computeWith rewrites the goal of the focused hole with the chosen
// reduction. Non-hole focuses are left unchanged.
func (s *tacState) computeWith(k computeKind) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole {
			return t, nil
		}
		var ty term.Term
		switch k {
		case computeHNF:
			ty = eval.HNF(s.ps.ctx, env, t.B.Ty)
		case computeSpecialise:
			ty = eval.Specialise(s.ps.ctx, env, t.B.Ty)
		default:
			ty = eval.Normalise(s.ps.ctx, env, t.B.Ty)
		}
		return &term.Bind{
			Name:  t.Name,
			B:     &term.Binder{Kind: term.Hole, Ty: ty},
			Scope: t.Scope,
		}, nil
	}
}

// computeLet normalises the value of the named let binding in the
// proof term.
func (s *tacState) computeLet(n term.Name) error {
	found := false
	var walk func(env term.Env, t term.Term) term.Term
	walk = func(env term.Env, t term.Term) term.Term {
		switch x := t.(type) {
		case *term.Bind:
			if x.Name == n && x.B.Kind == term.Let && !found {
				found = true
				b := *x.B
				b.Val = eval.Normalise(s.ps.ctx, env, x.B.Val)
				return &term.Bind{Name: x.Name, B: &b, Scope: x.Scope}
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
	if !found {
		return errors.Newf("Can't find let binding %v", n)
	}
	s.ps.pterm = tm
	return nil
}

// evalIn logs the normal form and type of a term in the focused
// environment.
func (s *tacState) evalIn(r term.Raw) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		tm, ty, err := typecheck.Check(s.ps.ctx, env, r)
		if err != nil {
			return nil, err
		}
		nf := eval.Normalise(s.ps.ctx, env, tm)
		s.logf("%s : %s", debug.TermString(nf), debug.TermString(ty))
		return t, nil
	}
}

// checkIn logs the type of a term in the focused environment.
func (s *tacState) checkIn(r term.Raw) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		tm, ty, err := typecheck.Check(s.ps.ctx, env, r)
		if err != nil {
			return nil, err
		}
		s.logf("%s : %s", debug.TermString(tm), debug.TermString(ty))
		return t, nil
	}
}
