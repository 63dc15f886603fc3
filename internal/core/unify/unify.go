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

// Package unify implements first-order unification over checked terms
// with hole variables, plus one-sided matching. Equations blocked on an
// applied hole are returned as deferred problems rather than failures;
// the proof engine retries them as solutions arrive.
package unify

import (
	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/eval"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/vela/errors"
)

// Mode records how a deferred problem should be retried.
type Mode uint8

const (
	// ModeUnify retries with full unification.
	ModeUnify Mode = iota
	// ModeMatch retries with one-sided matching.
	ModeMatch
)

func (m Mode) String() string {
	if m == ModeMatch {
		return "match"
	}
	return "unify"
}

// An Assign maps a hole to its discovered solution.
type Assign struct {
	Name  term.Name
	Value term.Term
}

// A Problem is a deferred equation.
type Problem struct {
	X, Y term.Term
	Env  term.Env
	Err  error
	Mode Mode
}

// CantUnify reports a failed equation. Recoverable failures may succeed
// later once more holes are solved.
type CantUnify struct {
	Left, Right term.Term
	Reason      string
	Recoverable bool
}

func (e *CantUnify) Error() string {
	format, args := e.Msg()
	return errors.NewMessagef(format, args...).Error()
}

func (e *CantUnify) Msg() (string, []interface{}) {
	if e.Reason != "" {
		return "can't unify %s with %s (%s)",
			[]interface{}{term.String(e.Left), term.String(e.Right), e.Reason}
	}
	return "can't unify %s with %s",
		[]interface{}{term.String(e.Left), term.String(e.Right)}
}

func (e *CantUnify) Path() []string { return nil }

var _ errors.Error = &CantUnify{}

// Recoverable reports whether err may be resolved by solving further
// holes, in which case the equation belongs on the problem queue.
func Recoverable(err error) bool {
	var cu *CantUnify
	if errors.As(err, &cu) {
		return cu.Recoverable
	}
	return false
}

// Unify solves a ≟ b. It returns the substitution for the holes it
// solved and the equations it had to defer. Definitive clashes return
// an unrecoverable CantUnify.
func Unify(ctx *defs.Context, env term.Env, a, b term.Term, inj term.NameSet, holes []term.Name) ([]Assign, []Problem, error) {
	u := newUnifier(ctx, env, inj, holes, false)
	if err := u.un(env, a, b); err != nil {
		return nil, nil, err
	}
	return u.assigns, u.deferred, nil
}

// MatchUnify matches the pattern a against b: only holes occurring in
// a are solved. Any blocked equation is a failure; the caller decides
// whether to queue it.
func MatchUnify(ctx *defs.Context, env term.Env, a, b term.Term, inj term.NameSet, holes []term.Name) ([]Assign, error) {
	u := newUnifier(ctx, env, inj, holes, true)
	if err := u.un(env, a, b); err != nil {
		return nil, err
	}
	return u.assigns, nil
}

type unifier struct {
	ctx   *defs.Context
	inj   term.NameSet
	holes term.NameSet
	match bool

	assigns  []Assign
	deferred []Problem
	fresh    int
}

func newUnifier(ctx *defs.Context, env term.Env, inj term.NameSet, holes []term.Name, match bool) *unifier {
	hs := term.NameSet{}
	for _, h := range holes {
		hs.Add(h)
	}
	return &unifier{ctx: ctx, inj: inj, holes: hs, match: match}
}

func (u *unifier) un(env term.Env, a, b term.Term) error {
	a = eval.HNF(u.ctx, env, a)
	b = eval.HNF(u.ctx, env, b)

	if term.AlphaEq(a, b) {
		return nil
	}

	// Hole at the head with no arguments binds directly.
	if r, ok := a.(*term.Ref); ok && u.holes.Has(r.Name) {
		return u.assign(env, r.Name, b)
	}
	if r, ok := b.(*term.Ref); ok && !u.match && u.holes.Has(r.Name) {
		return u.assign(env, r.Name, a)
	}

	switch x := a.(type) {
	case *term.App:
		return u.unApp(env, a, b)

	case *term.Bind:
		y, ok := b.(*term.Bind)
		if !ok || x.B.Kind != y.B.Kind {
			return u.clash(env, a, b, "")
		}
		if err := u.un(env, x.B.Ty, y.B.Ty); err != nil {
			return err
		}
		if x.B.Val != nil && y.B.Val != nil {
			if err := u.un(env, x.B.Val, y.B.Val); err != nil {
				return err
			}
		}
		// Rename both scopes to a shared fresh variable so plain
		// traversal continues to work underneath.
		v := term.MN(u.fresh, "uv")
		u.fresh++
		xs := term.Subst(x.Name, term.Var(v), x.Scope)
		ys := term.Subst(y.Name, term.Var(v), y.Scope)
		inner := env.Push(v, x.B)
		return u.un(inner, xs, ys)

	case *term.Sort:
		if y, ok := b.(*term.Sort); ok && x.Level == y.Level {
			return nil
		}
		return u.clash(env, a, b, "universe mismatch")

	case *term.Erased:
		return nil
	}

	if _, ok := b.(*term.Erased); ok {
		return nil
	}
	if _, ok := b.(*term.App); ok {
		return u.unApp(env, a, b)
	}
	return u.clash(env, a, b, "")
}

func (u *unifier) unApp(env term.Env, a, b term.Term) error {
	fa, as := term.UnApply(a)
	fb, bs := term.UnApply(b)

	ra, aIsRef := fa.(*term.Ref)
	rb, bIsRef := fb.(*term.Ref)

	// An applied hole cannot be solved structurally; defer.
	if (aIsRef && u.holes.Has(ra.Name) && len(as) > 0) ||
		(bIsRef && u.holes.Has(rb.Name) && len(bs) > 0 && !u.match) {
		return u.postpone(env, a, b)
	}
	if bIsRef && u.holes.Has(rb.Name) && len(bs) > 0 && u.match {
		return u.clash(env, a, b, "blocked on an applied hole")
	}

	if aIsRef && bIsRef && ra.Name == rb.Name {
		if len(as) != len(bs) {
			return u.clash(env, a, b, "arity mismatch")
		}
		if u.decomposable(ra) {
			for i := range as {
				if err := u.un(env, as[i], bs[i]); err != nil {
					return err
				}
			}
			return nil
		}
		return u.postpone(env, a, b)
	}

	if aIsRef && bIsRef && u.rigid(ra) && u.rigid(rb) {
		return u.clash(env, a, b, "distinct heads")
	}
	return u.postpone(env, a, b)
}

// decomposable reports whether an application of r can be unified
// argument by argument: constructors always, bound variables always,
// and anything registered injective.
func (u *unifier) decomposable(r *term.Ref) bool {
	if u.inj.Has(r.Name) {
		return true
	}
	if d := u.ctx.LookupDef(r.Name); d != nil {
		return d.Kind == defs.DataCon || d.Kind == defs.TypeCon
	}
	switch r.Class {
	case term.DataCon, term.TypeCon, term.Bound:
		return true
	}
	return false
}

// rigid reports whether r can never change under further solutions.
func (u *unifier) rigid(r *term.Ref) bool {
	if u.holes.Has(r.Name) {
		return false
	}
	if d := u.ctx.LookupDef(r.Name); d != nil {
		switch d.Kind {
		case defs.DataCon, defs.TypeCon:
			return true
		}
		return d.Body == nil
	}
	switch r.Class {
	case term.DataCon, term.TypeCon, term.Bound:
		return true
	}
	return false
}

func (u *unifier) assign(env term.Env, n term.Name, v term.Term) error {
	if r, ok := v.(*term.Ref); ok && r.Name == n {
		return nil
	}
	for _, a := range u.assigns {
		if a.Name == n {
			return u.un(env, a.Value, v)
		}
	}
	if term.Occurs(n, v) {
		return &CantUnify{
			Left:   term.Var(n),
			Right:  v,
			Reason: "occurs check failed",
		}
	}
	u.assigns = append(u.assigns, Assign{Name: n, Value: v})
	return nil
}

func (u *unifier) postpone(env term.Env, a, b term.Term) error {
	if u.match {
		return &CantUnify{Left: a, Right: b, Recoverable: true, Reason: "blocked"}
	}
	u.deferred = append(u.deferred, Problem{
		X:    a,
		Y:    b,
		Env:  env,
		Err:  &CantUnify{Left: a, Right: b, Recoverable: true, Reason: "blocked"},
		Mode: ModeUnify,
	})
	return nil
}

func (u *unifier) clash(env term.Env, a, b term.Term, reason string) error {
	rec := holey(a) || refersToHole(u, a) || holey(b) || refersToHole(u, b)
	return &CantUnify{Left: a, Right: b, Reason: reason, Recoverable: rec}
}

// holey reports whether t contains a hole binder.
func holey(t term.Term) bool {
	switch x := t.(type) {
	case *term.App:
		return holey(x.Fn) || holey(x.Arg)
	case *term.Bind:
		if x.B.IsHole() {
			return true
		}
		if holey(x.B.Ty) || (x.B.Val != nil && holey(x.B.Val)) {
			return true
		}
		return holey(x.Scope)
	}
	return false
}

// refersToHole reports whether t references one of the unifier's holes.
func refersToHole(u *unifier, t term.Term) bool {
	for n := range u.holes {
		if term.Occurs(n, t) {
			return true
		}
	}
	return false
}
