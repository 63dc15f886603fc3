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

import (
	"fmt"
	"strings"
)

// A Raw is an unchecked term as supplied by a driver. The type checker
// elaborates a Raw into a Term together with its type.
type Raw interface {
	raw()
}

// An RVar is a reference by name.
type RVar struct {
	Name Name
}

// An RApp applies Fn to Arg.
type RApp struct {
	Fn  Raw
	Arg Raw
}

// An RBind introduces Name with binder B over Scope.
type RBind struct {
	Name  Name
	B     *RBinder
	Scope Raw
}

// An RBinder is the unchecked counterpart of Binder.
type RBinder struct {
	Kind BinderKind
	Ty   Raw
	Val  Raw
}

// An RSort is a type universe.
type RSort struct {
	Level int
}

// RErased marks an erased position.
type RErased struct{}

func (*RVar) raw()    {}
func (*RApp) raw()    {}
func (*RBind) raw()   {}
func (*RSort) raw()   {}
func (*RErased) raw() {}

// RV returns a raw reference to n.
func RV(n Name) *RVar { return &RVar{Name: n} }

// RMkApp applies f to args in order.
func RMkApp(f Raw, args ...Raw) Raw {
	for _, a := range args {
		f = &RApp{Fn: f, Arg: a}
	}
	return f
}

// Forget projects a checked term back to its raw form, dropping the
// type annotations of references so the term can be rechecked from
// scratch.
func Forget(t Term) Raw {
	switch x := t.(type) {
	case *Ref:
		return &RVar{Name: x.Name}
	case *App:
		return &RApp{Fn: Forget(x.Fn), Arg: Forget(x.Arg)}
	case *Bind:
		b := &RBinder{Kind: x.B.Kind, Ty: Forget(x.B.Ty)}
		if x.B.Val != nil {
			b.Val = Forget(x.B.Val)
		}
		return &RBind{Name: x.Name, B: b, Scope: Forget(x.Scope)}
	case *Sort:
		return &RSort{Level: x.Level}
	case *Erased:
		return &RErased{}
	}
	return nil
}

// RawString renders a compact form of a raw term for diagnostics.
func RawString(r Raw) string {
	var sb strings.Builder
	writeRaw(&sb, r)
	return sb.String()
}

func writeRaw(sb *strings.Builder, r Raw) {
	switch x := r.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *RVar:
		sb.WriteString(x.Name.String())
	case *RApp:
		sb.WriteByte('(')
		writeRaw(sb, x.Fn)
		sb.WriteByte(' ')
		writeRaw(sb, x.Arg)
		sb.WriteByte(')')
	case *RBind:
		fmt.Fprintf(sb, "(%s %s : ", x.B.Kind, x.Name)
		writeRaw(sb, x.B.Ty)
		if x.B.Val != nil {
			sb.WriteString(" = ")
			writeRaw(sb, x.B.Val)
		}
		sb.WriteString(". ")
		writeRaw(sb, x.Scope)
		sb.WriteByte(')')
	case *RSort:
		if x.Level == 0 {
			sb.WriteString("Type")
		} else {
			fmt.Fprintf(sb, "Type%d", x.Level)
		}
	case *RErased:
		sb.WriteString("_")
	}
}
