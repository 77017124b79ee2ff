package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum/app"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create the state in the home directory and load the genesis file into it.
Address of every created wallet is printed.
		`)
		fl.PrintDefaults()
	}
	home, logLevel := nodeFlags(fl)
	genesisFl := fl.String("genesis", "genesis.json", "Path to the genesis file.")
	fl.Parse(args)

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	n, err := openNode(*home, *logLevel)
	if err != nil {
		return err
	}
	defer n.close()

	if err := n.commit.InitChain(gen, n.initializer()); err != nil {
		return err
	}
	id, err := n.commit.Commit()
	if err != nil {
		return err
	}

	wallets, err := n.wallets.Wallets(n.store())
	if err != nil {
		return err
	}
	for _, w := range wallets {
		if err := writeAddress(output, "wallet", w); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(output, "chain %s initialized, version %d\n", gen.ChainID, id.Version)
	return err
}
