// SPDX-License-Identifier: MPL-2.0

// Package dispatch wires the pipeline shared by the CLI and the tool server:
// resolve the name in the alias table, normalize the input, build the command,
// execute it and format the envelope.
//
// Workflow entries run their steps sequentially and stop at the first failure; steps
// that already succeeded are left as they are. The Outcome carries the exit code for
// CLI callers: 0 on success, 1 for validation errors, 124 for timeouts and the
// engine's exit code for other execution failures.
package dispatch
