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

package term

// Subst substitutes v for free occurrences of n in t. Binders that
// would capture a free variable of v are renamed.
func Subst(n Name, v, t Term) Term {
	s := &subster{n: n, v: v, fv: FreeVars(v)}
	return s.tm(t)
}

// PSubst instantiates the body of an eliminated binder into its scope.
// The binder must currently bind a hole, so capture cannot arise from
// the scope's own uses of the name.
func PSubst(n Name, v, t Term) Term {
	return Subst(n, v, t)
}

type subster struct {
	n  Name
	v  Term
	fv NameSet
}

func (s *subster) tm(t Term) Term {
	switch x := t.(type) {
	case *Ref:
		if x.Name == s.n {
			return s.v
		}
		if x.Ty == nil {
			return x
		}
		ty := s.tm(x.Ty)
		if ty == x.Ty {
			return x
		}
		return &Ref{Class: x.Class, Name: x.Name, Ty: ty}
	case *App:
		return &App{Fn: s.tm(x.Fn), Arg: s.tm(x.Arg)}
	case *Bind:
		b := x.B.Map(s.tm)
		if x.Name == s.n {
			// Shadowed; the scope keeps its own n.
			return &Bind{Name: x.Name, B: b, Scope: x.Scope}
		}
		nm, sc := x.Name, x.Scope
		if s.fv.Has(nm) {
			avoid := s.fv.Clone()
			for _, f := range []NameSet{FreeVars(sc), {s.n: true}} {
				for k := range f {
					avoid.Add(k)
				}
			}
			nm2 := freshen(nm, avoid)
			sc = Subst(nm, Var(nm2), sc)
			nm = nm2
		}
		return &Bind{Name: nm, B: b, Scope: s.tm(sc)}
	default:
		return t
	}
}

// freshen derives a variant of n not in avoid.
func freshen(n Name, avoid NameSet) Name {
	for avoid.Has(n) {
		if n.Machine {
			n.Num++
		} else {
			n.Str += "'"
		}
	}
	return n
}

// Replace substitutes new for every syntactic occurrence of old in t.
// Matching is structural and ignores reference type annotations; no
// capture avoidance is performed, mirroring how rewrite motives are
// built over goals whose binders are already uniquely named.
func Replace(old, new, t Term) Term {
	if Equal(t, old) {
		return new
	}
	switch x := t.(type) {
	case *App:
		return &App{Fn: Replace(old, new, x.Fn), Arg: Replace(old, new, x.Arg)}
	case *Bind:
		b := x.B.Map(func(u Term) Term { return Replace(old, new, u) })
		return &Bind{Name: x.Name, B: b, Scope: Replace(old, new, x.Scope)}
	case *Ref:
		if x.Ty == nil {
			return x
		}
		ty := Replace(old, new, x.Ty)
		if ty == x.Ty {
			return x
		}
		return &Ref{Class: x.Class, Name: x.Name, Ty: ty}
	default:
		return t
	}
}

// Occurs reports whether n occurs free in t.
func Occurs(n Name, t Term) bool {
	switch x := t.(type) {
	case *Ref:
		if x.Name == n {
			return true
		}
		return x.Ty != nil && Occurs(n, x.Ty)
	case *App:
		return Occurs(n, x.Fn) || Occurs(n, x.Arg)
	case *Bind:
		if Occurs(n, x.B.Ty) {
			return true
		}
		if x.B.Val != nil && Occurs(n, x.B.Val) {
			return true
		}
		if x.Name == n {
			return false
		}
		return Occurs(n, x.Scope)
	default:
		return false
	}
}

// NoOccurrence reports whether n does not occur free in t.
func NoOccurrence(n Name, t Term) bool { return !Occurs(n, t) }

// FreeVars returns the set of names occurring free in t.
func FreeVars(t Term) NameSet {
	fv := NameSet{}
	freeVars(t, NameSet{}, fv)
	return fv
}

func freeVars(t Term, bound, fv NameSet) {
	switch x := t.(type) {
	case *Ref:
		if !bound.Has(x.Name) {
			fv.Add(x.Name)
		}
		if x.Ty != nil {
			freeVars(x.Ty, bound, fv)
		}
	case *App:
		freeVars(x.Fn, bound, fv)
		freeVars(x.Arg, bound, fv)
	case *Bind:
		freeVars(x.B.Ty, bound, fv)
		if x.B.Val != nil {
			freeVars(x.B.Val, bound, fv)
		}
		if bound.Has(x.Name) {
			freeVars(x.Scope, bound, fv)
			return
		}
		bound.Add(x.Name)
		freeVars(x.Scope, bound, fv)
		delete(bound, x.Name)
	}
}

// Equal reports exact structural equality. References compare by name
// and class only; annotations are not compared, as the same variable
// may carry differently reduced types.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Ref:
		y, ok := b.(*Ref)
		return ok && x.Name == y.Name && x.Class == y.Class
	case *App:
		y, ok := b.(*App)
		return ok && Equal(x.Fn, y.Fn) && Equal(x.Arg, y.Arg)
	case *Bind:
		y, ok := b.(*Bind)
		if !ok || x.Name != y.Name || x.B.Kind != y.B.Kind {
			return false
		}
		if !Equal(x.B.Ty, y.B.Ty) {
			return false
		}
		if (x.B.Val == nil) != (y.B.Val == nil) {
			return false
		}
		if x.B.Val != nil && !Equal(x.B.Val, y.B.Val) {
			return false
		}
		return Equal(x.Scope, y.Scope)
	case *Sort:
		y, ok := b.(*Sort)
		return ok && x.Level == y.Level
	case *Erased:
		_, ok := b.(*Erased)
		return ok
	case nil:
		return b == nil
	}
	return false
}

// AlphaEq reports equality of a and b up to renaming of bound
// variables.
func AlphaEq(a, b Term) bool {
	return alphaEq(a, b, nil)
}

type namePair struct {
	left, right Name
}

func alphaEq(a, b Term, pairs []namePair) bool {
	switch x := a.(type) {
	case *Ref:
		y, ok := b.(*Ref)
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
	case *App:
		y, ok := b.(*App)
		return ok && alphaEq(x.Fn, y.Fn, pairs) && alphaEq(x.Arg, y.Arg, pairs)
	case *Bind:
		y, ok := b.(*Bind)
		if !ok || x.B.Kind != y.B.Kind {
			return false
		}
		if !alphaEq(x.B.Ty, y.B.Ty, pairs) {
			return false
		}
		if (x.B.Val == nil) != (y.B.Val == nil) {
			return false
		}
		if x.B.Val != nil && !alphaEq(x.B.Val, y.B.Val, pairs) {
			return false
		}
		return alphaEq(x.Scope, y.Scope, append(pairs, namePair{x.Name, y.Name}))
	case *Sort:
		y, ok := b.(*Sort)
		return ok && x.Level == y.Level
	case *Erased:
		_, ok := b.(*Erased)
		return ok
	case nil:
		return b == nil
	}
	return false
}
