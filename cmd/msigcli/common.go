package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/ledger"
	amino "github.com/tendermint/go-amino"
)

// fromSequence transforms given binary representation of a sequence value into
// a decimal form.
func fromSequence(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, errors.Wrap(errors.ErrInput, "sequence must be 8 bytes")
	}
	return binary.BigEndian.Uint64(b), nil
}

// writeAddress writes a line with both hex and bech32 representation of
// given address.
func writeAddress(w io.Writer, label string, addr quorum.Address) error {
	b32, err := addr.Bech32()
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "bech32: %s", err)
	}
	_, err = fmt.Fprintf(w, "%s %s %s\n", label, addr, b32)
	return err
}

// writeReceipt writes the return data and all events of an invocation, one
// per line.
func writeReceipt(w io.Writer, r *ledger.Receipt) error {
	if len(r.ReturnData) > 0 {
		if _, err := fmt.Fprintf(w, "return %X\n", r.ReturnData); err != nil {
			return err
		}
	}
	return writeEvents(w, r.Events)
}

func writeEvents(w io.Writer, events []quorum.Event) error {
	for _, e := range events {
		tags := make([]string, 0, len(e.Tags()))
		for _, t := range e.Tags() {
			tags = append(tags, fmt.Sprintf("%s=%s", t.Key, t.Value))
		}
		if _, err := fmt.Fprintf(w, "event %s %s\n", e.Kind(), strings.Join(tags, " ")); err != nil {
			return err
		}
	}
	return nil
}

// writeResults writes return data of every action of an executed
// transaction. Nothing is written when the transaction was not executed.
func writeResults(w io.Writer, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	var results [][]byte
	if err := amino.UnmarshalBinaryLengthPrefixed(raw, &results); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode results: %s", err)
	}
	for i, r := range results {
		if _, err := fmt.Fprintf(w, "result %d %X\n", i, r); err != nil {
			return err
		}
	}
	return nil
}
