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

// Package prooftxtar runs tactic-script golden tests stored in txtar
// archives. Each archive holds a "script" file, an optional
// "decls.yaml" declarations manifest, and the expected output under
// "out/<name>". Setting VELA_UPDATE rewrites the goldens in place.
package prooftxtar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"

	"velalang.org/go/internal/core/debug"
	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/script"
)

// A Test is a txtar-driven test run over all archives below Root.
type Test struct {
	// Root is the directory holding the .txtar files.
	Root string

	// Name selects the golden file out/<Name> within each archive.
	Name string

	// Context builds a fresh definition context per archive.
	Context func() *defs.Context
}

// Run executes all archives below the root as subtests.
func (x *Test) Run(t *testing.T) {
	t.Helper()
	update := os.Getenv("VELA_UPDATE") != ""

	err := filepath.Walk(x.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".txtar") {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			x.runArchive(t, path, update)
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (x *Test) runArchive(t *testing.T, path string, update bool) {
	t.Helper()
	a, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var scriptSrc, decls []byte
	goldenIdx := -1
	goldenName := "out/" + x.Name
	for i, f := range a.Files {
		switch f.Name {
		case "script":
			scriptSrc = f.Data
		case "decls.yaml":
			decls = f.Data
		case goldenName:
			goldenIdx = i
		}
	}
	if scriptSrc == nil {
		t.Fatalf("%s has no script file", path)
	}

	ctx := x.Context()
	if decls != nil {
		if err := script.LoadDecls(decls, ctx); err != nil {
			t.Fatal(err)
		}
	}

	got := render(script.RunScript(ctx, string(scriptSrc)))

	if update {
		if goldenIdx < 0 {
			a.Files = append(a.Files, txtar.File{Name: goldenName})
			goldenIdx = len(a.Files) - 1
		}
		a.Files[goldenIdx].Data = []byte(got)
		if err := os.WriteFile(path, txtar.Format(a), 0o666); err != nil {
			t.Fatal(err)
		}
		return
	}

	var want string
	if goldenIdx >= 0 {
		want = string(a.Files[goldenIdx].Data)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func render(res *script.Result, err error) string {
	var sb strings.Builder
	if err != nil {
		sb.WriteString("error: " + err.Error() + "\n")
		return sb.String()
	}
	for _, l := range res.Log {
		sb.WriteString(l + "\n")
	}
	ps := res.Final
	sb.WriteString("term: " + debug.TermString(ps.Term()) + "\n")
	if ps.Done() {
		sb.WriteString("done: true\n")
	} else {
		holes := ps.Holes()
		names := make([]string, len(holes))
		for i, h := range holes {
			names[i] = h.String()
		}
		sb.WriteString("holes: " + strings.Join(names, ", ") + "\n")
	}
	return sb.String()
}
