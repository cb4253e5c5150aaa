// Command decodebin tokenizes, parses and interprets a decode-bin source
// file (spec §6).
package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/Earthcomputer/decode-bin/internal/maincmd"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
