// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/buzzedword/puppet/cmd/puppet"

func main() {
	cmd.Execute()
}
