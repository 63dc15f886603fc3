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
	"fmt"
	"sort"
	"strings"

	"github.com/mpvl/unique"

	"velalang.org/go/internal/core/debug"
)

// Render returns a human-readable view of the state: the goal in its
// environment, the remaining holes, and the proof term so far.
func (ps *ProofState) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v : %s\n", ps.name, debug.TermString(ps.ptype))

	if len(ps.holes) == 0 {
		sb.WriteString("\nno more goals\n")
	} else {
		h := ps.holes[0]
		env, b, ok := goalSearch(h, nil, ps.pterm)
		if ok {
			sb.WriteString("\n")
			for i := len(env) - 1; i >= 0; i-- {
				fmt.Fprintf(&sb, "  %v : %s\n", env[i].Name, debug.TermString(env[i].B.Ty))
			}
			sb.WriteString("----------------------------------------\n")
			fmt.Fprintf(&sb, "  ?%v : %s\n", h, debug.TermString(b.Ty))
		}
		if len(ps.holes) > 1 {
			pending := make([]string, 0, len(ps.holes)-1)
			for _, n := range ps.holes[1:] {
				pending = append(pending, n.String())
			}
			sort.Strings(pending)
			unique.Strings(&pending)
			fmt.Fprintf(&sb, "\nother goals: %s\n", strings.Join(pending, ", "))
		}
	}

	if n := len(ps.problems); n > 0 {
		fmt.Fprintf(&sb, "\ndeferred problems: %d\n", n)
	}
	if n := len(ps.notunified); n > 0 {
		fmt.Fprintf(&sb, "pending solutions: %d\n", n)
	}
	if len(ps.deferred) > 0 {
		names := make([]string, len(ps.deferred))
		for i, n := range ps.deferred {
			names[i] = n.String()
		}
		fmt.Fprintf(&sb, "deferred definitions: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&sb, "\nterm: %s\n", debug.TermString(ps.pterm))
	if ps.done {
		sb.WriteString("proof complete\n")
	}
	return sb.String()
}
