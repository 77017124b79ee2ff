package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/x/multisig"
)

// walletFlags registers flags common to all commands sending a message to a
// wallet as one of its owners.
func walletFlags(fl *flag.FlagSet) (wallet *string, from *quorum.Address) {
	wallet = fl.String("wallet", "", "Name of the wallet, as used in the genesis file.")
	from = flAddress(fl, "from", "", "Address of the owner sending the message.")
	return wallet, from
}

func requireWallet(wallet *string, from *quorum.Address) {
	if *wallet == "" {
		flagDie("-wallet is required")
	}
	if len(*from) == 0 {
		flagDie("-from is required")
	}
}

// sendToWallet opens the state and delivers given message to the wallet.
func sendToWallet(home, logLevel, wallet string, from quorum.Address, msg quorum.Msg, output io.Writer) ([]byte, error) {
	data, err := app.EncodeCall(msg)
	if err != nil {
		return nil, err
	}
	n, err := openNode(home, logLevel)
	if err != nil {
		return nil, err
	}
	defer n.close()

	receipt, err := n.invoke(from, multisig.WalletAddress(wallet), 0, data)
	if err != nil {
		return nil, err
	}
	return receipt.ReturnData, writeEvents(output, receipt.Events)
}

func cmdSubmit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Submit a new wallet transaction. The sender confirms it at the same time.
A transaction is a list of actions, each described by a target, a value and
call data. Use -target, -value and -data flags once per action.

The transaction is executed immediately if a single confirmation is
required.
		`)
		fl.PrintDefaults()
	}
	home, logLevel := nodeFlags(fl)
	walletFl, fromFl := walletFlags(fl)
	actions := flActions(fl)
	fl.Parse(args)
	requireWallet(walletFl, fromFl)

	msg := &multisig.SubmitMsg{ActionList: *actions}
	ret, err := sendToWallet(*home, *logLevel, *walletFl, *fromFl, msg, output)
	if err != nil {
		return err
	}
	id, err := fromSequence(ret)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "transaction %d\n", id)
	return err
}

func cmdConfirm(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Confirm a wallet transaction. When actions are provided, they are checked
against the transaction and the transaction is executed if this confirmation
reaches the required count.
		`)
		fl.PrintDefaults()
	}
	home, logLevel := nodeFlags(fl)
	walletFl, fromFl := walletFlags(fl)
	idFl := fl.Uint64("id", 0, "Transaction ID.")
	actions := flActions(fl)
	fl.Parse(args)
	requireWallet(walletFl, fromFl)

	var msg quorum.Msg = &multisig.ConfirmMsg{TransactionID: *idFl}
	if !actions.IsEmpty() {
		msg = &multisig.ConfirmWithDataMsg{TransactionID: *idFl, ActionList: *actions}
	}
	ret, err := sendToWallet(*home, *logLevel, *walletFl, *fromFl, msg, output)
	if err != nil {
		return err
	}
	return writeResults(output, ret)
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Execute a confirmed wallet transaction. All actions of the transaction must
be provided, in the order they were submitted.
		`)
		fl.PrintDefaults()
	}
	home, logLevel := nodeFlags(fl)
	walletFl, fromFl := walletFlags(fl)
	idFl := fl.Uint64("id", 0, "Transaction ID.")
	actions := flActions(fl)
	fl.Parse(args)
	requireWallet(walletFl, fromFl)

	msg := &multisig.ExecuteMsg{TransactionID: *idFl, ActionList: *actions}
	ret, err := sendToWallet(*home, *logLevel, *walletFl, *fromFl, msg, output)
	if err != nil {
		return err
	}
	return writeResults(output, ret)
}

func cmdRevoke(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Revoke a confirmation of a transaction that was not executed yet.
		`)
		fl.PrintDefaults()
	}
	home, logLevel := nodeFlags(fl)
	walletFl, fromFl := walletFlags(fl)
	idFl := fl.Uint64("id", 0, "Transaction ID.")
	fl.Parse(args)
	requireWallet(walletFl, fromFl)

	_, err := sendToWallet(*home, *logLevel, *walletFl, *fromFl, &multisig.RevokeMsg{TransactionID: *idFl}, output)
	return err
}

func cmdWalletAddress(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the address of the wallet with given name in hex format.
		`)
		fl.PrintDefaults()
	}
	walletFl := fl.String("wallet", "", "Name of the wallet, as used in the genesis file.")
	fl.Parse(args)
	if *walletFl == "" {
		flagDie("-wallet is required")
	}
	_, err := fmt.Fprintln(output, multisig.WalletAddress(*walletFl))
	return err
}
