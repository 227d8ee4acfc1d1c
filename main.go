// SPDX-License-Identifier: MPL-2.0

// modreader loads, inspects and validates module descriptors.
package main

import cmd "github.com/invowk/modreader/cmd/modreader"

func main() {
	cmd.Execute()
}
