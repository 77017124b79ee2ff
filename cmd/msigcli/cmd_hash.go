package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
)

func cmdHash(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the hash of every action of a transaction, one per line, as stored by
the wallet. Use -target, -value and -data flags once per action.
		`)
		fl.PrintDefaults()
	}
	idFl := fl.Uint64("id", 0, "Transaction ID.")
	actions := flActions(fl)
	fl.Parse(args)

	list, err := actions.Actions()
	if err != nil {
		return err
	}
	for i, a := range list {
		if err := a.Target.Validate(); err != nil {
			return errors.Wrapf(err, "action %d", i)
		}
	}
	for _, h := range multisig.ActionHashes(list, *idFl) {
		if _, err := fmt.Fprintf(output, "%x\n", h); err != nil {
			return err
		}
	}
	return nil
}
