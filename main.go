// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/dockwright/dockwright/cmd/dockwright"

func main() {
	cmd.Execute()
}
