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

// Package defs holds the global definition context: top-level
// declarations, inductive family metainformation, and the eliminator
// registry. The proof engine reads the context; new declarations are
// the driver's business.
package defs

import (
	"sort"

	"velalang.org/go/internal/core/term"
	"velalang.org/go/vela/errors"
)

// DefKind classifies a top-level definition.
type DefKind uint8

const (
	// Function is a definition with a body.
	Function DefKind = iota
	// TyDecl is a declaration without a body (an axiom or a
	// not-yet-defined deferred obligation).
	TyDecl
	// DataCon is a data constructor.
	DataCon
	// TypeCon is a type constructor.
	TypeCon
	// ElimOp is a primitive eliminator for an inductive family.
	ElimOp
)

func (k DefKind) String() string {
	switch k {
	case Function:
		return "function"
	case TyDecl:
		return "declaration"
	case DataCon:
		return "constructor"
	case TypeCon:
		return "type constructor"
	case ElimOp:
		return "eliminator"
	}
	return "unknown"
}

// RefClass returns the reference class a use of a definition of this
// kind carries.
func (k DefKind) RefClass() term.RefClass {
	switch k {
	case DataCon:
		return term.DataCon
	case TypeCon:
		return term.TypeCon
	default:
		return term.Global
	}
}

// MetaInfo is metainformation attached to a definition.
type MetaInfo interface {
	metaInfo()
}

// DataMI is the metainformation of an inductive family: the positions
// of its parameters within an application of the type constructor. The
// remaining argument positions are indices.
type DataMI struct {
	ParamPos []int
}

func (DataMI) metaInfo() {}

// A Def is one top-level definition.
type Def struct {
	Name term.Name
	Kind DefKind
	Ty   term.Term
	Body term.Term // Function only
	Meta MetaInfo
}

// A Context is the global definition environment.
type Context struct {
	defs  map[term.Name]*Def
	elims map[term.Name][]term.Name
	order []term.Name
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{
		defs:  map[term.Name]*Def{},
		elims: map[term.Name][]term.Name{},
	}
}

// Copy returns a context sharing no mutable structure with c.
func (c *Context) Copy() *Context {
	c2 := NewContext()
	for n, d := range c.defs {
		c2.defs[n] = d
	}
	for n, es := range c.elims {
		c2.elims[n] = append([]term.Name(nil), es...)
	}
	c2.order = append([]term.Name(nil), c.order...)
	return c2
}

// AddDef records a definition. Redefinition is an error.
func (c *Context) AddDef(d *Def) error {
	if _, ok := c.defs[d.Name]; ok {
		return errors.Newf("%v is already defined", d.Name)
	}
	c.defs[d.Name] = d
	c.order = append(c.order, d.Name)
	return nil
}

// AddEliminator records d as the eliminator for the type constructor
// of. The definition itself is added as an ElimOp.
func (c *Context) AddEliminator(of term.Name, d *Def) error {
	d.Kind = ElimOp
	if err := c.AddDef(d); err != nil {
		return err
	}
	c.elims[of] = append(c.elims[of], d.Name)
	return nil
}

// LookupDef returns the definition of n, or nil.
func (c *Context) LookupDef(n term.Name) *Def {
	return c.defs[n]
}

// LookupTy returns the type of n.
func (c *Context) LookupTy(n term.Name) (term.Term, bool) {
	d := c.defs[n]
	if d == nil {
		return nil, false
	}
	return d.Ty, true
}

// LookupMeta returns the metainformation of n, or nil.
func (c *Context) LookupMeta(n term.Name) MetaInfo {
	d := c.defs[n]
	if d == nil {
		return nil
	}
	return d.Meta
}

// Eliminators returns the registered eliminators of the type
// constructor n, in registration order.
func (c *Context) Eliminators(n term.Name) []term.Name {
	return c.elims[n]
}

// Names returns all defined names in declaration order.
func (c *Context) Names() []term.Name {
	return append([]term.Name(nil), c.order...)
}

// SortedNames returns all defined names sorted by their display form.
func (c *Context) SortedNames() []term.Name {
	ns := c.Names()
	sort.Slice(ns, func(i, j int) bool { return ns[i].String() < ns[j].String() })
	return ns
}

// UniqueName derives a name based on base that is neither defined in
// the context nor in used.
func (c *Context) UniqueName(base term.Name, used term.NameSet) term.Name {
	n := base
	for {
		_, defined := c.defs[n]
		if !defined && !used.Has(n) {
			return n
		}
		if n.Machine {
			n.Num++
		} else {
			n = term.MN(0, n.Str)
		}
	}
}
