package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/x/multisig"
)

// Governance messages are accepted only when sent by the wallet itself.
// Commands below only build the call data that must be used as an action of
// a wallet transaction targeting the wallet.

func cmdAddOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create hex encoded call data that adds an owner to a wallet.
		`)
		fl.PrintDefaults()
	}
	ownerFl := flAddress(fl, "owner", "", "Address of the new owner.")
	fl.Parse(args)
	return writeCall(output, &multisig.AddOwnerMsg{Owner: *ownerFl})
}

func cmdRemoveOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create hex encoded call data that removes an owner from a wallet. If the
required confirmation count is greater than the number of remaining owners,
it is lowered.
		`)
		fl.PrintDefaults()
	}
	ownerFl := flAddress(fl, "owner", "", "Address of the owner to remove.")
	fl.Parse(args)
	return writeCall(output, &multisig.RemoveOwnerMsg{Owner: *ownerFl})
}

func cmdReplaceOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create hex encoded call data that replaces an owner of a wallet with a new
one, keeping the position in the owner list.
		`)
		fl.PrintDefaults()
	}
	var (
		ownerFl    = flAddress(fl, "owner", "", "Address of the owner to replace.")
		newOwnerFl = flAddress(fl, "new", "", "Address of the new owner.")
	)
	fl.Parse(args)
	return writeCall(output, &multisig.ReplaceOwnerMsg{Owner: *ownerFl, NewOwner: *newOwnerFl})
}

func cmdChangeRequirement(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create hex encoded call data that changes the number of confirmations
required to execute a wallet transaction.
		`)
		fl.PrintDefaults()
	}
	requiredFl := fl.Uint("required", 0, "Number of required confirmations.")
	fl.Parse(args)
	return writeCall(output, &multisig.ChangeRequirementMsg{Required: uint32(*requiredFl)})
}

func writeCall(w io.Writer, msg quorum.Msg) error {
	data, err := app.EncodeCall(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%x\n", data)
	return err
}
