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

package typecheck

import (
	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/eval"
	"velalang.org/go/internal/core/term"
)

// TypeOf derives the type of an already checked term. Holes, guesses,
// deferred holes and pattern type binders are transparent: the type of
// the scope is the type of the whole. A pattern variable binder types
// as its pattern type counterpart. Unlike Check, no conversion checks are repeated;
// the term is trusted.
func TypeOf(ctx *defs.Context, env term.Env, t term.Term) (term.Term, error) {
	switch x := t.(type) {
	case *term.Ref:
		if x.Ty != nil {
			return x.Ty, nil
		}
		if b := env.Lookup(x.Name); b != nil {
			return b.Ty, nil
		}
		if ty, ok := ctx.LookupTy(x.Name); ok {
			return ty, nil
		}
		return nil, &NoSuchVariable{Name: x.Name}

	case *term.App:
		fty, err := TypeOf(ctx, env, x.Fn)
		if err != nil {
			return nil, err
		}
		pi, ok := eval.HNF(ctx, env, fty).(*term.Bind)
		if !ok || pi.B.Kind != term.Pi {
			return nil, &CantInferType{What: "application of a non-function " + term.String(x.Fn)}
		}
		return term.Subst(pi.Name, x.Arg, pi.Scope), nil

	case *term.Bind:
		inner := env.Push(x.Name, x.B)
		switch x.B.Kind {
		case term.Lam:
			scty, err := TypeOf(ctx, inner, x.Scope)
			if err != nil {
				return nil, err
			}
			return &term.Bind{
				Name:  x.Name,
				B:     &term.Binder{Kind: term.Pi, Ty: x.B.Ty},
				Scope: scty,
			}, nil
		case term.Pi:
			scty, err := TypeOf(ctx, inner, x.Scope)
			if err != nil {
				return nil, err
			}
			if srt, ok := eval.HNF(ctx, inner, scty).(*term.Sort); ok {
				return srt, nil
			}
			return nil, &NotAType{Term: x.Scope}
		case term.Let:
			scty, err := TypeOf(ctx, inner, x.Scope)
			if err != nil {
				return nil, err
			}
			return term.Subst(x.Name, x.B.Val, scty), nil
		case term.PVar:
			scty, err := TypeOf(ctx, inner, x.Scope)
			if err != nil {
				return nil, err
			}
			return &term.Bind{
				Name:  x.Name,
				B:     &term.Binder{Kind: term.PVTy, Ty: x.B.Ty},
				Scope: scty,
			}, nil
		default:
			return TypeOf(ctx, inner, x.Scope)
		}

	case *term.Sort:
		return &term.Sort{Level: x.Level + 1}, nil

	case *term.Erased:
		return &term.Erased{}, nil
	}
	return nil, &CantInferType{What: "unrecognised term"}
}
