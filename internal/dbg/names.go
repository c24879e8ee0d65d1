// Package dbg turns arbitrary pointer-keyed values into stable, readable
// names for the lifetime of a process, for use in diagnostic rendering and
// panic messages where a raw pointer or struct index means nothing to a
// reader.
package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// This leaks memory by design: names are generated lazily and kept forever,
// which only matters if you're actually exercising diagnostics for the
// lifetime of a long-running process.

var memo = make(map[interface{}]string)

func init() {
	// Names are assigned in order of demand, not of creation, so make them
	// nondeterministic to remind the reader that the same name doesn't refer
	// to the same trapezoid between runs.
	petname.NonDeterministicMode()
}

// Name returns a stable, human-readable name for obj, generating one the
// first time obj is seen.
func Name(obj interface{}) string {
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}
