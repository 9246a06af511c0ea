// SPDX-License-Identifier: MPL-2.0

package main

import cmd "blendpack-cli/cmd/blendpack"

func main() {
	cmd.Execute()
}
