// SPDX-License-Identifier: MPL-2.0

// Package operationtest derives valid parameter sets for registered operations.
// It is separate from testutil so that testutil stays free of domain imports.
//
// Usage:
//
//	for _, def := range operation.Builtin().All() {
//		p := operationtest.SampleParams(t, def, false)
//		tokens := operationtest.Tokens(def, p)
//	}
package operationtest
