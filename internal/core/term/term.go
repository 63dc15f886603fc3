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

// Package term defines the checked term language of the Vela kernel: a
// tree of references, applications, binders, and universes, together
// with the substitution and traversal operations the rest of the engine
// is built on.
package term

import (
	"fmt"
	"strings"
)

// A Name identifies a variable or definition. Machine names carry a
// sequence number so the engine's fresh-name supply never collides with
// user input.
type Name struct {
	Str     string
	Num     int
	Machine bool
}

// UN returns a user-supplied name.
func UN(s string) Name { return Name{Str: s} }

// MN returns a machine-generated name.
func MN(i int, s string) Name { return Name{Str: s, Num: i, Machine: true} }

// IsNil reports whether n is the zero name, used to mean "no name given".
func (n Name) IsNil() bool { return n == Name{} }

func (n Name) String() string {
	if n.Machine {
		return fmt.Sprintf("{%s%d}", n.Str, n.Num)
	}
	return n.Str
}

// A NameSet is a set of names.
type NameSet map[Name]bool

func (s NameSet) Has(n Name) bool { return s[n] }

func (s NameSet) Add(n Name) { s[n] = true }

func (s NameSet) Clone() NameSet {
	c := make(NameSet, len(s))
	for n := range s {
		c[n] = true
	}
	return c
}

// A Term is a node in the checked term language.
type Term interface {
	term()
}

// RefClass distinguishes the kinds of reference a Ref may make.
type RefClass uint8

const (
	// Bound references a name bound by an enclosing binder.
	Bound RefClass = iota
	// Global references a top-level definition.
	Global
	// DataCon references a data constructor.
	DataCon
	// TypeCon references a type constructor.
	TypeCon
)

func (c RefClass) String() string {
	switch c {
	case Bound:
		return "bound"
	case Global:
		return "global"
	case DataCon:
		return "data"
	case TypeCon:
		return "type"
	}
	return "unknown"
}

// A Ref is a reference to a bound variable or global definition,
// carrying its type when known. Ty may be nil for references whose type
// is recovered from the environment or context.
type Ref struct {
	Class RefClass
	Name  Name
	Ty    Term
}

// An App applies Fn to Arg.
type App struct {
	Fn  Term
	Arg Term
}

// A Bind introduces Name with binder B over Scope.
type Bind struct {
	Name  Name
	B     *Binder
	Scope Term
}

// A Sort is a type universe.
type Sort struct {
	Level int
}

// Erased marks a computationally irrelevant position.
type Erased struct{}

func (*Ref) term()    {}
func (*App) term()    {}
func (*Bind) term()   {}
func (*Sort) term()   {}
func (*Erased) term() {}

// Var returns a bound reference to n with no type annotation.
func Var(n Name) *Ref { return &Ref{Class: Bound, Name: n} }

// BinderKind tags the variants of Binder.
type BinderKind uint8

const (
	// Lam is a lambda abstraction.
	Lam BinderKind = iota
	// Pi is a dependent function type.
	Pi
	// Let is a local definition with a value.
	Let
	// Hole is an unsolved obligation of the annotated type.
	Hole
	// Guess is a hole with a tentative inhabitant awaiting Solve.
	Guess
	// GHole is a deferred top-level obligation.
	GHole
	// PVar is a pattern variable.
	PVar
	// PVTy is the type binder of a pattern variable.
	PVTy
)

func (k BinderKind) String() string {
	switch k {
	case Lam:
		return "lam"
	case Pi:
		return "pi"
	case Let:
		return "let"
	case Hole:
		return "hole"
	case Guess:
		return "guess"
	case GHole:
		return "ghole"
	case PVar:
		return "pvar"
	case PVTy:
		return "pvty"
	}
	return "unknown"
}

// A Binder is the annotation of a Bind node. Ty is always present; Val
// is the value of a Let or the candidate of a Guess; NArgs is the
// environment arity of a GHole.
type Binder struct {
	Kind  BinderKind
	Ty    Term
	Val   Term
	NArgs int
}

// IsHole reports whether the binder is a Hole or a Guess, the two
// binder forms a tactic may be focused on.
func (b *Binder) IsHole() bool {
	return b.Kind == Hole || b.Kind == Guess
}

// WithTy returns a copy of b with its annotation type replaced.
func (b *Binder) WithTy(ty Term) *Binder {
	c := *b
	c.Ty = ty
	return &c
}

// Map returns a copy of b with f applied to its type and, if present,
// its value.
func (b *Binder) Map(f func(Term) Term) *Binder {
	c := *b
	c.Ty = f(b.Ty)
	if b.Val != nil {
		c.Val = f(b.Val)
	}
	return &c
}

// An EnvEntry is one binder of an environment.
type EnvEntry struct {
	Name Name
	B    *Binder
}

// An Env is the list of binders enclosing a term, innermost first.
type Env []EnvEntry

// Lookup returns the binder for n, or nil if n is not in the
// environment.
func (e Env) Lookup(n Name) *Binder {
	for _, ee := range e {
		if ee.Name == n {
			return ee.B
		}
	}
	return nil
}

// Push returns e extended with a new innermost binder.
func (e Env) Push(n Name, b *Binder) Env {
	e2 := make(Env, 0, len(e)+1)
	e2 = append(e2, EnvEntry{Name: n, B: b})
	return append(e2, e...)
}

// Names returns the environment names, innermost first.
func (e Env) Names() []Name {
	ns := make([]Name, len(e))
	for i, ee := range e {
		ns[i] = ee.Name
	}
	return ns
}

// BindEnv wraps t in the environment's binders, preserving their kinds.
// The innermost binder of e becomes the innermost Bind.
func BindEnv(e Env, t Term) Term {
	for _, ee := range e {
		t = &Bind{Name: ee.Name, B: ee.B, Scope: t}
	}
	return t
}

// PiEnv wraps t in Pi binders over the environment, the form used to
// give a deferred obligation a top-level type. Let binders keep their
// value.
func PiEnv(e Env, t Term) Term {
	for _, ee := range e {
		b := ee.B
		if b.Kind != Let {
			b = &Binder{Kind: Pi, Ty: b.Ty}
		}
		t = &Bind{Name: ee.Name, B: b, Scope: t}
	}
	return t
}

// MkApp applies f to args in order.
func MkApp(f Term, args ...Term) Term {
	for _, a := range args {
		f = &App{Fn: f, Arg: a}
	}
	return f
}

// UnApply deconstructs an application spine, returning the head and the
// arguments in application order.
func UnApply(t Term) (Term, []Term) {
	var rev []Term
	for {
		a, ok := t.(*App)
		if !ok {
			break
		}
		rev = append(rev, a.Arg)
		t = a.Fn
	}
	args := make([]Term, len(rev))
	for i, a := range rev {
		args[len(rev)-1-i] = a
	}
	return t, args
}

// String renders a compact form of the term for diagnostics. The debug
// package provides the full printer.
func String(t Term) string {
	var sb strings.Builder
	writeCompact(&sb, t)
	return sb.String()
}

func writeCompact(sb *strings.Builder, t Term) {
	switch x := t.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Ref:
		sb.WriteString(x.Name.String())
	case *App:
		sb.WriteByte('(')
		writeCompact(sb, x.Fn)
		sb.WriteByte(' ')
		writeCompact(sb, x.Arg)
		sb.WriteByte(')')
	case *Bind:
		fmt.Fprintf(sb, "(%s %s : ", x.B.Kind, x.Name)
		writeCompact(sb, x.B.Ty)
		if x.B.Val != nil {
			sb.WriteString(" = ")
			writeCompact(sb, x.B.Val)
		}
		sb.WriteString(". ")
		writeCompact(sb, x.Scope)
		sb.WriteByte(')')
	case *Sort:
		if x.Level == 0 {
			sb.WriteString("Type")
		} else {
			fmt.Fprintf(sb, "Type%d", x.Level)
		}
	case *Erased:
		sb.WriteString("_")
	}
}
