package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x/multisig"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the state of a wallet as JSON. If a transaction ID is provided, the
state of that transaction is printed instead.
		`)
		fl.PrintDefaults()
	}
	home, logLevel := nodeFlags(fl)
	var (
		walletFl = fl.String("wallet", "", "Name of the wallet, as used in the genesis file.")
		idFl     = fl.Int64("id", -1, "Transaction ID. Ignored if negative.")
	)
	fl.Parse(args)
	if *walletFl == "" {
		flagDie("-wallet is required")
	}

	n, err := openNode(*home, *logLevel)
	if err != nil {
		return err
	}
	defer n.close()

	var res interface{}
	if *idFl < 0 {
		res, err = queryWallet(n, multisig.WalletAddress(*walletFl))
	} else {
		res, err = queryTransaction(n, multisig.WalletAddress(*walletFl), uint64(*idFl))
	}
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(res, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(append(pretty, '\n'))
	return err
}

type walletView struct {
	Address  quorum.Address   `json:"address"`
	Owners   []quorum.Address `json:"owners"`
	Required uint32           `json:"required"`
	multisig.Counts
}

func queryWallet(n *node, wallet quorum.Address) (*walletView, error) {
	w, err := n.wallets.Wallet(n.store(), wallet)
	if err != nil {
		return nil, err
	}
	counts, err := n.wallets.Counts(n.store(), wallet)
	if err != nil {
		return nil, err
	}
	return &walletView{
		Address:  wallet,
		Owners:   w.Owners,
		Required: w.Required,
		Counts:   counts,
	}, nil
}

type transactionView struct {
	ID            uint64           `json:"id"`
	Executed      bool             `json:"executed"`
	ActionHashes  []string         `json:"action_hashes"`
	Confirmations []quorum.Address `json:"confirmations"`
}

func queryTransaction(n *node, wallet quorum.Address, id uint64) (*transactionView, error) {
	tx, err := n.wallets.Transaction(n.store(), wallet, id)
	if err != nil {
		return nil, err
	}
	confirmed, err := n.wallets.Confirmations(n.store(), wallet, id)
	if err != nil {
		return nil, err
	}
	hashes := make([]string, len(tx.ActionHashes))
	for i, h := range tx.ActionHashes {
		hashes[i] = hex.EncodeToString(h)
	}
	return &transactionView{
		ID:            id,
		Executed:      tx.Executed,
		ActionHashes:  hashes,
		Confirmations: confirmed,
	}, nil
}
