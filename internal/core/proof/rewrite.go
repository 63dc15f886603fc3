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
	"velalang.org/go/vela/errors"
)

// The equality family and its eliminator are recognised by canonical
// name. The equality type former has arity 4 (lt rt l r); replace has
// the signature {a}{x}{y}(P : a -> Type) -> P x -> x = y -> P y.
var (
	eqName      = term.UN("=")
	replaceName = term.UN("replace")
)

// rewrite rewrites the goal with an equality proof e : l = r.
// Occurrences of r in the goal are replaced by l; the new hole proves
// the rewritten goal, and the built term
//
//	replace lt l r (\x. goal[r:=x]) ?h e
//
// inhabits the original goal. The whole construction is rechecked
// before it is installed.
func (s *tacState) rewrite(r term.Raw) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole || !selfScoped(t) {
			return nil, errors.Newf("Can't rewrite here.")
		}
		tmv, tmt, err := typecheck.Check(s.ps.ctx, env, r)
		if err != nil {
			return nil, err
		}
		tmt = eval.Normalise(s.ps.ctx, env, tmt)
		hd, args := term.UnApply(tmt)
		eq, ok := hd.(*term.Ref)
		if !ok || eq.Name != eqName || len(args) != 4 {
			return nil, &NotEquality{Tm: tmv, Ty: tmt}
		}
		lt, l, rr := args[0], args[2], args[3]

		rname := s.getName("rewrite_rule")
		motive := &term.Bind{
			Name:  rname,
			B:     &term.Binder{Kind: term.Lam, Ty: lt},
			Scope: term.Replace(rr, term.Var(rname), t.B.Ty),
		}
		newTy := term.Replace(rr, l, t.B.Ty)
		app := term.MkApp(
			&term.Ref{Class: term.Global, Name: replaceName},
			lt, l, rr, motive,
			&term.Ref{Class: term.Bound, Name: t.Name, Ty: newTy},
			tmv,
		)
		sc := &term.Bind{
			Name:  t.Name,
			B:     &term.Binder{Kind: term.Hole, Ty: newTy},
			Scope: app,
		}
		checked, _, err := typecheck.Check(s.ps.ctx, env, term.Forget(sc))
		if err != nil {
			return nil, err
		}
		return checked, nil
	}
}
