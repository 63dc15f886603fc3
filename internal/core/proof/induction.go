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
	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/eval"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/typecheck"
	"velalang.org/go/vela/errors"
)

// induction eliminates the scrutinee nm with its family's eliminator.
//
// The scrutinee's type T a1..an is split into parameters and indices
// using the family's metainformation. The goal is abstracted over the
// indices and the scrutinee to form the motive, the eliminator's
// telescope is instantiated, and one new hole is opened per method.
// The original hole is removed: the eliminator application solves it
// directly.
func (s *tacState) induction(nm term.Name) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole || !selfScoped(t) {
			return nil, errors.Newf("Can't do induction here.")
		}
		ps := s.ps
		scr, scrTy, err := typecheck.Check(ps.ctx, env, term.RV(nm))
		if err != nil {
			return nil, err
		}
		scrTy = eval.Normalise(ps.ctx, env, scrTy)
		tyHd, tyArgs := term.UnApply(scrTy)
		tcon, ok := tyHd.(*term.Ref)
		if !ok {
			return nil, errors.Newf("Can't do induction on %v: not an inductive family", nm)
		}
		tdef := ps.ctx.LookupDef(tcon.Name)
		if tdef == nil || tdef.Kind != defs.TypeCon {
			return nil, errors.Newf("Can't do induction on %v: not an inductive family", nm)
		}

		elims := ps.ctx.Eliminators(tcon.Name)
		switch {
		case len(elims) == 0:
			return nil, errors.Newf("no eliminator found for %v", tcon.Name)
		case len(elims) > 1:
			return nil, errors.Newf("multiple eliminators found for %v", tcon.Name)
		}
		elimDef := ps.ctx.LookupDef(elims[0])

		params, indices := splitArgs(ps.ctx.LookupMeta(tcon.Name), tyArgs)

		tele, _ := telescope(elimDef.Ty)
		nmeth := len(tele) - len(params) - len(indices) - 2
		if nmeth < 0 {
			return nil, errors.Newf("badly formed eliminator %v", elims[0])
		}

		motive, err := s.buildMotive(env, t.B.Ty, scr, scrTy, indices)
		if err != nil {
			return nil, err
		}

		// Instantiate the telescope: parameters, then the motive.
		inst := func(ty term.Term, upto int, motiveTm term.Term) term.Term {
			for i := 0; i < len(params) && i < upto; i++ {
				ty = term.Subst(tele[i].name, params[i], ty)
			}
			if upto > len(params) {
				ty = term.Subst(tele[len(params)].name, motiveTm, ty)
			}
			return ty
		}

		var methNames []term.Name
		var methTys []term.Term
		for j := 0; j < nmeth; j++ {
			entry := tele[len(params)+1+j]
			mty := inst(entry.ty, len(params)+1, motive)
			mty = eval.Specialise(ps.ctx, env, mty)
			hn := s.getName("meth")
			methNames = append(methNames, hn)
			methTys = append(methTys, mty)
		}

		elimRef := &term.Ref{Class: term.Global, Name: elims[0], Ty: elimDef.Ty}
		appArgs := append([]term.Term(nil), params...)
		appArgs = append(appArgs, motive)
		for j, hn := range methNames {
			appArgs = append(appArgs, &term.Ref{Class: term.Bound, Name: hn, Ty: methTys[j]})
		}
		appArgs = append(appArgs, indices...)
		appArgs = append(appArgs, scr)
		res := term.MkApp(elimRef, appArgs...)

		for j := len(methNames) - 1; j >= 0; j-- {
			res = &term.Bind{
				Name:  methNames[j],
				B:     &term.Binder{Kind: term.Hole, Ty: methTys[j]},
				Scope: res,
			}
		}

		// The eliminator application solves the original hole; the
		// methods become the new goals.
		ps.holes = append(append([]term.Name(nil), methNames...), removeHole(ps.holes, t.Name)...)
		return res, nil
	}
}

// buildMotive abstracts the goal over the indices and the scrutinee.
func (s *tacState) buildMotive(env term.Env, goal term.Term, scr, scrTy term.Term, indices []term.Term) (term.Term, error) {
	body := goal
	ixVars := make([]term.Name, len(indices))
	ixTys := make([]term.Term, len(indices))
	for i, ix := range indices {
		ixTy, err := typecheck.TypeOf(s.ps.ctx, env, ix)
		if err != nil {
			return nil, err
		}
		v := s.getName("ix")
		ixVars[i] = v
		ixTys[i] = ixTy
		body = term.Replace(ix, &term.Ref{Class: term.Bound, Name: v, Ty: ixTy}, body)
	}
	scrTyM := scrTy
	for i, ix := range indices {
		scrTyM = term.Replace(ix, &term.Ref{Class: term.Bound, Name: ixVars[i], Ty: ixTys[i]}, scrTyM)
	}
	scv := s.getName("scr")
	body = term.Replace(scr, &term.Ref{Class: term.Bound, Name: scv, Ty: scrTyM}, body)

	motive := term.Term(&term.Bind{
		Name:  scv,
		B:     &term.Binder{Kind: term.Lam, Ty: scrTyM},
		Scope: body,
	})
	for i := len(indices) - 1; i >= 0; i-- {
		motive = &term.Bind{
			Name:  ixVars[i],
			B:     &term.Binder{Kind: term.Lam, Ty: ixTys[i]},
			Scope: motive,
		}
	}
	return motive, nil
}

// splitArgs partitions a type constructor's arguments into parameters
// and indices according to the family's metainformation. Without
// metainformation every argument is an index.
func splitArgs(mi defs.MetaInfo, args []term.Term) (params, indices []term.Term) {
	dmi, ok := mi.(defs.DataMI)
	if !ok {
		return nil, args
	}
	pos := map[int]bool{}
	for _, p := range dmi.ParamPos {
		pos[p] = true
	}
	for i, a := range args {
		if pos[i] {
			params = append(params, a)
		} else {
			indices = append(indices, a)
		}
	}
	return params, indices
}

type teleEntry struct {
	name term.Name
	ty   term.Term
}

// telescope splits a Pi chain into its binders and final return type.
func telescope(ty term.Term) ([]teleEntry, term.Term) {
	var tele []teleEntry
	for {
		b, ok := ty.(*term.Bind)
		if !ok || b.B.Kind != term.Pi {
			return tele, ty
		}
		tele = append(tele, teleEntry{name: b.Name, ty: b.B.Ty})
		ty = b.Scope
	}
}
