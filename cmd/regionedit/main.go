// SPDX-License-Identifier: EPL-2.0

// Command regionedit selects a region of an audio file, plays it and trims
// the file to it.
package main

import (
	"os"

	"github.com/ik5/regionedit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
