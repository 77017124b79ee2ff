package main

import (
	"flag"
	"fmt"
	"io"
)

func cmdCall(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Execute a single call and commit its result. Use it to transfer value or to
call any deployed contract with call data created by another command.
		`)
		fl.PrintDefaults()
	}
	home, logLevel := nodeFlags(fl)
	var (
		fromFl  = flAddress(fl, "from", "", "Address of the caller.")
		toFl    = flAddress(fl, "to", "", "Address being called.")
		valueFl = fl.Uint64("value", 0, "Value transferred with the call.")
		dataFl  = flHex(fl, "data", "", "Hex encoded call data.")
	)
	fl.Parse(args)

	if len(*fromFl) == 0 {
		flagDie("-from is required")
	}
	if len(*toFl) == 0 {
		flagDie("-to is required")
	}

	n, err := openNode(*home, *logLevel)
	if err != nil {
		return err
	}
	defer n.close()

	receipt, err := n.invoke(*fromFl, *toFl, *valueFl, *dataFl)
	if err != nil {
		return err
	}
	return writeReceipt(output, receipt)
}
