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
	"velalang.org/go/internal/core/term"
	"velalang.org/go/vela/errors"
)

// A runFn transforms the focused hole binder. It receives the
// environment of binders enclosing the match, innermost first, and the
// matched Bind itself; it returns the replacement subtree.
type runFn func(env term.Env, t *term.Bind) (term.Term, error)

// at locates the hole h in the proof term, applies f there, and
// installs the rebuilt term. The first match wins; at most one hole is
// visited per invocation.
func (s *tacState) at(h term.Name, f runFn) error {
	tm, found, err := atH(f, nil, s.ps.pterm, h)
	if err != nil {
		return err
	}
	if !found {
		return errors.Newf("Can't find hole %v", h)
	}
	s.ps.pterm = tm
	return nil
}

// atFocus applies f at the current focus.
func (s *tacState) atFocus(f runFn) error {
	if len(s.ps.holes) == 0 {
		return errors.Newf("no more goals")
	}
	return s.at(s.ps.holes[0], f)
}

// atH descends to the first binder named h whose binder form is a hole
// or guess. Inside a Guess the candidate value is searched before the
// annotation and the scope: a guess's hole is most often inside the
// candidate. For any other binder the scope is searched before the
// annotation.
func atH(f runFn, env term.Env, t term.Term, h term.Name) (term.Term, bool, error) {
	switch x := t.(type) {
	case *term.Bind:
		if x.B.IsHole() && x.Name == h {
			nt, err := f(env, x)
			if err != nil {
				return t, true, err
			}
			return nt, true, nil
		}
		inner := env.Push(x.Name, x.B)
		if x.B.Kind == term.Guess {
			if x.B.Val != nil {
				nv, found, err := atH(f, env, x.B.Val, h)
				if err != nil || found {
					b := *x.B
					b.Val = nv
					return &term.Bind{Name: x.Name, B: &b, Scope: x.Scope}, found, err
				}
			}
			nty, found, err := atH(f, env, x.B.Ty, h)
			if err != nil || found {
				b := *x.B
				b.Ty = nty
				return &term.Bind{Name: x.Name, B: &b, Scope: x.Scope}, found, err
			}
			nsc, found, err := atH(f, inner, x.Scope, h)
			return &term.Bind{Name: x.Name, B: x.B, Scope: nsc}, found, err
		}
		nsc, found, err := atH(f, inner, x.Scope, h)
		if err != nil || found {
			return &term.Bind{Name: x.Name, B: x.B, Scope: nsc}, found, err
		}
		nty, found, err := atH(f, env, x.B.Ty, h)
		if err != nil || found {
			b := *x.B
			b.Ty = nty
			return &term.Bind{Name: x.Name, B: &b, Scope: x.Scope}, found, err
		}
		if x.B.Val != nil {
			nv, found, err := atH(f, env, x.B.Val, h)
			if err != nil || found {
				b := *x.B
				b.Val = nv
				return &term.Bind{Name: x.Name, B: &b, Scope: x.Scope}, found, err
			}
		}
		return t, false, nil

	case *term.App:
		nf, found, err := atH(f, env, x.Fn, h)
		if err != nil || found {
			return &term.App{Fn: nf, Arg: x.Arg}, found, err
		}
		na, found, err := atH(f, env, x.Arg, h)
		if err != nil || found {
			return &term.App{Fn: x.Fn, Arg: na}, found, err
		}
		return t, false, nil

	default:
		return t, false, nil
	}
}

// goalSearch mirrors atH's traversal order but only reads: it returns
// the environment and binder of the hole h.
func goalSearch(h term.Name, env term.Env, t term.Term) (term.Env, *term.Binder, bool) {
	switch x := t.(type) {
	case *term.Bind:
		if x.B.IsHole() && x.Name == h {
			return env, x.B, true
		}
		inner := env.Push(x.Name, x.B)
		if x.B.Kind == term.Guess {
			if x.B.Val != nil {
				if e, b, ok := goalSearch(h, env, x.B.Val); ok {
					return e, b, true
				}
			}
			if e, b, ok := goalSearch(h, env, x.B.Ty); ok {
				return e, b, true
			}
			return goalSearch(h, inner, x.Scope)
		}
		if e, b, ok := goalSearch(h, inner, x.Scope); ok {
			return e, b, true
		}
		if e, b, ok := goalSearch(h, env, x.B.Ty); ok {
			return e, b, true
		}
		if x.B.Val != nil {
			if e, b, ok := goalSearch(h, env, x.B.Val); ok {
				return e, b, true
			}
		}
		return nil, nil, false

	case *term.App:
		if e, b, ok := goalSearch(h, env, x.Fn); ok {
			return e, b, true
		}
		return goalSearch(h, env, x.Arg)

	default:
		return nil, nil, false
	}
}
