package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/Earthcomputer/decode-bin/lang/interp"
	"github.com/Earthcomputer/decode-bin/lang/parser"
	"github.com/Earthcomputer/decode-bin/lang/scanner"
	"github.com/Earthcomputer/decode-bin/lang/source"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFile(stdio, args[0], c.DumpStruct)
}

// RunFile tokenizes, parses and interprets the source file named path,
// writing a diagnostic to stdio.Stderr if any phase fails and, if
// dumpStruct is set, a rendering of the resulting root struct to
// stdio.Stdout on success.
//
// It returns a non-nil error only for the one case spec §6 reserves exit
// code 1 for: the source file could not be opened, or tokenization failed
// outright. A parser-reported syntax error or an interpreter diagnostic is
// printed but does not make RunFile itself return an error — the front end
// ran to completion (tokenized the whole file) and told the caller why it
// could go no further, which §6 treats as success from the CLI's point of
// view.
func RunFile(stdio mainer.Stdio, path string, dumpStruct bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	buf := source.NewBuffer(path, string(data))

	toks, err := scanner.Tokenize(buf)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	program, err := parser.Parse(path, toks)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return nil
	}

	root, diag := interp.Run(program, interp.DefaultCollaborator{})
	if diag != nil {
		fmt.Fprint(stdio.Stderr, diag.Render(buf))
		return nil
	}

	if dumpStruct {
		fmt.Fprintln(stdio.Stdout, root.String())
	}
	return nil
}
