// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the dockwright CLI.
//
// Every alias table entry (operations, short aliases, workflows) is a subcommand
// whose tokens are handed to the normalizer untouched. Global options use the --dw-
// prefix so they never collide with engine flags. When the binary is invoked through
// a symlink named after an alias (see `dockwright link`), it runs that alias directly.
package cmd
