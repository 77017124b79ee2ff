package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// When a cmd function is called it is given stdin, stdout and command line
// arguments except the program name and this command name. It is the
// responsibility of the command function to parse the arguments.
//
// Commands that change the state open the store found in the home
// directory, execute a single invocation and commit the result. Commands
// that only build call data write it to the output as hex, so that it can be
// passed to another command:
//
//	$ msigcli submit -wallet treasury -from $OWNER \
//	    -target $(msigcli wallet-address -wallet treasury) -value 0 \
//	    -data $(msigcli add-owner -owner $NEW_OWNER)
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"add-owner":          cmdAddOwner,
	"call":               cmdCall,
	"change-requirement": cmdChangeRequirement,
	"confirm":            cmdConfirm,
	"execute":            cmdExecute,
	"hash":               cmdHash,
	"init":               cmdInit,
	"query":              cmdQuery,
	"remove-owner":       cmdRemoveOwner,
	"replace-owner":      cmdReplaceOwner,
	"revoke":             cmdRevoke,
	"submit":             cmdSubmit,
	"version":            cmdVersion,
	"wallet-address":     cmdWalletAddress,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for multi owner wallets.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		code, _ := errors.ABCIInfo(err, false)
		if env("MSIGCLI_DEBUG", "") != "" {
			fmt.Fprintf(os.Stderr, "error %d: %+v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "error %d: %s\n", code, err)
		}
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, quorum.Version())
	return nil
}

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}
