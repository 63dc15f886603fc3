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

package script

import (
	"gopkg.in/yaml.v3"

	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/typecheck"
	"velalang.org/go/vela/errors"
)

// A DeclFile is a YAML declarations manifest a script can bring its
// own context from.
type DeclFile struct {
	Declarations []Decl `yaml:"declarations"`
}

// A Decl declares one name.
type Decl struct {
	Name string `yaml:"name"`
	// Kind is one of type, constructor, function, axiom, eliminator.
	Kind string `yaml:"kind"`
	// Of names the type constructor an eliminator belongs to.
	Of string `yaml:"of,omitempty"`
	// Params lists the parameter positions of a type constructor.
	Params []int  `yaml:"params,omitempty"`
	Type   string `yaml:"type"`
	Body   string `yaml:"body,omitempty"`
}

// LoadDecls parses a YAML declarations manifest and adds its
// declarations to ctx, in order.
func LoadDecls(data []byte, ctx *defs.Context) error {
	var f DeclFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return errors.Wrapf(err, "can't parse declarations")
	}
	for _, d := range f.Declarations {
		if err := addDecl(ctx, d); err != nil {
			return errors.Wrapf(err, "declaration %q", d.Name)
		}
	}
	return nil
}

func addDecl(ctx *defs.Context, d Decl) error {
	ty, err := checkDeclType(ctx, d.Type)
	if err != nil {
		return err
	}
	name := term.UN(d.Name)

	switch d.Kind {
	case "type":
		return ctx.AddDef(&defs.Def{
			Name: name,
			Kind: defs.TypeCon,
			Ty:   ty,
			Meta: defs.DataMI{ParamPos: d.Params},
		})
	case "constructor":
		return ctx.AddDef(&defs.Def{Name: name, Kind: defs.DataCon, Ty: ty})
	case "axiom", "":
		return ctx.AddDef(&defs.Def{Name: name, Kind: defs.TyDecl, Ty: ty})
	case "eliminator":
		if d.Of == "" {
			return errors.Newf("eliminator needs an \"of\" type")
		}
		return ctx.AddEliminator(term.UN(d.Of), &defs.Def{Name: name, Ty: ty})
	case "function":
		if d.Body == "" {
			return errors.Newf("function needs a body")
		}
		tokens, err := Tokenize(d.Body)
		if err != nil {
			return err
		}
		bodyRaw, err := ParseTerm(tokens)
		if err != nil {
			return err
		}
		body, bty, err := typecheck.Check(ctx, nil, bodyRaw)
		if err != nil {
			return err
		}
		if err := typecheck.Converts(ctx, nil, bty, ty); err != nil {
			return err
		}
		return ctx.AddDef(&defs.Def{Name: name, Kind: defs.Function, Ty: ty, Body: body})
	}
	return errors.Newf("unrecognised declaration kind %q", d.Kind)
}

func checkDeclType(ctx *defs.Context, src string) (term.Term, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	raw, err := ParseTerm(tokens)
	if err != nil {
		return nil, err
	}
	return typecheck.CheckType(ctx, nil, raw)
}
