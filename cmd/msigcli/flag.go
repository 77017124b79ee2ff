package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x/multisig"
)

// flagDie terminates the program when a flag value cannot be used. It is a
// variable so that tests can observe it.
var flagDie = func(description string, args ...interface{}) {
	s := fmt.Sprintf(description, args...)
	fmt.Fprintln(os.Stderr, s)
	os.Exit(2)
}

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *quorum.Address {
	var a flagaddr
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			flagDie("Cannot parse %q address flag value. %s", name, err)
		}
	}
	fl.Var(&a, name, usage)
	return (*quorum.Address)(&a)
}

type flagaddr quorum.Address

func (a flagaddr) String() string {
	if len(a) == 0 {
		return ""
	}
	return quorum.Address(a).String()
}

func (a *flagaddr) Set(raw string) error {
	addr, err := quorum.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = flagaddr(addr)
	return nil
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b flagbyte
	if defaultVal != "" {
		if err := b.Set(defaultVal); err != nil {
			flagDie("Cannot parse %q hex encoded flag value. %s", name, err)
		}
	}
	fl.Var(&b, name, usage)
	return (*[]byte)(&b)
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return err
	}
	*b = val
	return nil
}

// flActions registers the repeatable -target, -value and -data flags. Each
// occurrence appends to its own list, in the order given. Lists are not
// required to be of the same length.
func flActions(fl *flag.FlagSet) *multisig.ActionList {
	var list multisig.ActionList
	fl.Var((*flagaddrs)(&list.Targets), "target", "Action target address. Can be used many times.")
	fl.Var((*flaguints)(&list.Values), "value", "Action value. Can be used many times.")
	fl.Var((*flaghexes)(&list.CallDatas), "data", "Hex encoded action call data, use an empty string for no data. Can be used many times.")
	return &list
}

type flagaddrs []quorum.Address

func (a flagaddrs) String() string {
	s := make([]string, len(a))
	for i, addr := range a {
		s[i] = addr.String()
	}
	return strings.Join(s, ",")
}

func (a *flagaddrs) Set(raw string) error {
	addr, err := quorum.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = append(*a, addr)
	return nil
}

type flaguints []uint64

func (u flaguints) String() string {
	s := make([]string, len(u))
	for i, v := range u {
		s[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(s, ",")
}

func (u *flaguints) Set(raw string) error {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return err
	}
	*u = append(*u, v)
	return nil
}

type flaghexes [][]byte

func (h flaghexes) String() string {
	s := make([]string, len(h))
	for i, b := range h {
		s[i] = hex.EncodeToString(b)
	}
	return strings.Join(s, ",")
}

func (h *flaghexes) Set(raw string) error {
	b, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return err
	}
	// An empty string is a valid call data and must not be lost.
	if b == nil {
		b = []byte{}
	}
	*h = append(*h, b)
	return nil
}
