// SPDX-License-Identifier: MPL-2.0

// Package alias holds the immutable dispatch table mapping caller-facing names to
// operations.
//
// Every operation name resolves to itself. Aliases bind a short name to an operation
// and optional fixed parameters ("dpsa" is docker-containers with all=true). Workflow
// entries chain operations: each step maps the workflow's canonical parameters to the
// step's object input, and the caller runs steps in order, stopping at the first
// failure without rolling back earlier steps.
package alias
