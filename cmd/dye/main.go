// Command dye renders themes and patterns into shell code.
package main

import (
	"os"

	"github.com/dyeshell/dye/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
