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

// Package eval implements reduction of checked terms: full
// normalisation, weak-head normalisation, and specialisation.
// Reduction is pure over (Context, Env, Term); a step budget caps work
// on divergent user definitions, in which case the partially reduced
// term is returned as-is.
package eval

import (
	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/term"
)

// maxSteps bounds the number of unfolding and beta steps per call.
const maxSteps = 100000

// Normalise fully reduces t: beta, let, and unfolding of function
// definitions, including under binders.
func Normalise(ctx *defs.Context, env term.Env, t term.Term) term.Term {
	e := &evaluator{ctx: ctx, delta: true, budget: maxSteps}
	return e.deep(env, t)
}

// HNF reduces t to head-normal form: the head is no longer a redex,
// but arguments and binder scopes are left untouched.
func HNF(ctx *defs.Context, env term.Env, t term.Term) term.Term {
	e := &evaluator{ctx: ctx, delta: true, budget: maxSteps}
	return e.whnf(env, t)
}

// Specialise reduces t without unfolding global definitions: lets are
// inlined and beta-redexes contracted. It is the reduction used to
// tidy a goal without exposing the bodies of functions mentioned in
// it.
func Specialise(ctx *defs.Context, env term.Env, t term.Term) term.Term {
	e := &evaluator{ctx: ctx, delta: false, budget: maxSteps}
	return e.deep(env, t)
}

type evaluator struct {
	ctx    *defs.Context
	delta  bool
	budget int
}

func (e *evaluator) spend() bool {
	if e.budget <= 0 {
		return false
	}
	e.budget--
	return true
}

// whnf reduces the head of t.
func (e *evaluator) whnf(env term.Env, t term.Term) term.Term {
	f, args := term.UnApply(t)
	for {
		switch x := f.(type) {
		case *term.Ref:
			var body term.Term
			if b := env.Lookup(x.Name); b != nil {
				if b.Kind == term.Let {
					body = b.Val
				}
			} else if e.delta {
				if d := e.ctx.LookupDef(x.Name); d != nil && d.Kind == defs.Function && d.Body != nil {
					body = d.Body
				}
			}
			if body == nil || !e.spend() {
				return term.MkApp(f, args...)
			}
			f = body
			continue
		case *term.Bind:
			switch x.B.Kind {
			case term.Lam:
				if len(args) == 0 || !e.spend() {
					return term.MkApp(f, args...)
				}
				f = term.Subst(x.Name, args[0], x.Scope)
				args = args[1:]
				continue
			case term.Let:
				if !e.spend() {
					return term.MkApp(f, args...)
				}
				f = term.Subst(x.Name, x.B.Val, x.Scope)
				continue
			}
			return term.MkApp(f, args...)
		case *term.App:
			// A reduction step produced an applied head; carry on with
			// its own spine.
			g, more := term.UnApply(x)
			f = g
			args = append(more, args...)
			continue
		default:
			return term.MkApp(f, args...)
		}
	}
}

// deep reduces t everywhere.
func (e *evaluator) deep(env term.Env, t term.Term) term.Term {
	t = e.whnf(env, t)
	switch x := t.(type) {
	case *term.App:
		f, args := term.UnApply(x)
		for i, a := range args {
			args[i] = e.deep(env, a)
		}
		return term.MkApp(f, args...)
	case *term.Bind:
		b := &term.Binder{Kind: x.B.Kind, NArgs: x.B.NArgs}
		b.Ty = e.deep(env, x.B.Ty)
		if x.B.Val != nil {
			b.Val = e.deep(env, x.B.Val)
		}
		sc := e.deep(env.Push(x.Name, b), x.Scope)
		return &term.Bind{Name: x.Name, B: b, Scope: sc}
	default:
		return t
	}
}
