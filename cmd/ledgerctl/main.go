// ledgerctl is the command-line client of the splitledger server.
//
// It keeps an ed25519 key and the current session token under the user's
// config directory. Amounts are entered and printed in major units with
// --decimals fractional digits; the server only sees integers.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/pflag"
)

type options struct {
	server    string
	keyPath   string
	tokenPath string
	json      bool
	decimals  int32

	group    int
	groupID  string
	personID string
	debtID   string
	limit    int
	force    bool
}

type command struct {
	usage   string
	summary string
	minArgs int
	maxArgs int
	run     func(ctx context.Context, opts *options, args []string) error
}

var commands = map[string]command{
	"keygen":        {"keygen [--force]", "create a signing key", 0, 0, runKeygen},
	"login":         {"login", "exchange a signed challenge for a session token", 0, 0, runLogin},
	"create-group":  {"create-group NAME", "create a group you administer", 1, 1, runCreateGroup},
	"add-person":    {"add-person NAME [ADDRESS]", "add a member (defaults to yourself)", 1, 2, runAddPerson},
	"add-case":      {"add-case NAME AMOUNT", "record an expense you paid and split it", 2, 2, runAddCase},
	"pay":           {"pay DEBT_INDEX PAYMENT", "pay one of your debts", 2, 2, runPay},
	"collect":       {"collect", "withdraw your escrow balance", 0, 0, runCollect},
	"finish":        {"finish", "mark the group finished", 0, 0, runFinish},
	"remove-person": {"remove-person PERSON_INDEX", "remove a member and their debts", 1, 1, runRemovePerson},
	"rename":        {"rename NAME", "rename the group", 1, 1, runRename},
	"transfer":      {"transfer ADDRESS", "hand admin rights to another address", 1, 1, runTransfer},
	"groups":        {"groups", "list groups", 0, 0, runGroups},
	"group":         {"group", "show a group", 0, 0, runGroup},
	"balances":      {"balances", "show member balances", 0, 0, runBalances},
	"events":        {"events [--limit N]", "show the group's event journal", 0, 0, runEvents},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	if len(argv) == 0 || argv[0] == "-h" || argv[0] == "--help" || argv[0] == "help" {
		printUsage()
		return nil
	}

	name := argv[0]
	cmd, ok := commands[name]
	if !ok {
		printUsage()
		return fmt.Errorf("unknown command %q", name)
	}

	var opts options
	flagSet := newFlagSet(name, &opts)
	if err := flagSet.Parse(argv[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Usage: ledgerctl %s\n\n%s\n", cmd.usage, flagSet.FlagUsages())
			return nil
		}
		return err
	}

	args := flagSet.Args()
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return fmt.Errorf("usage: ledgerctl %s", cmd.usage)
	}

	return cmd.run(context.Background(), &opts, args)
}

func newFlagSet(name string, opts *options) *pflag.FlagSet {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	base := filepath.Join(configDir, "splitledger")

	server := os.Getenv("SPLITLEDGER_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}

	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVar(&opts.server, "server", server, "server base URL")
	flagSet.StringVar(&opts.keyPath, "key", filepath.Join(base, "key"), "path of the signing key")
	flagSet.StringVar(&opts.tokenPath, "token-file", filepath.Join(base, "token"), "path of the session token")
	flagSet.BoolVar(&opts.json, "json", false, "speak JSON instead of CBOR")
	flagSet.Int32Var(&opts.decimals, "decimals", 2, "fractional digits of the currency")
	flagSet.IntVarP(&opts.group, "group", "g", 0, "group index")
	flagSet.StringVar(&opts.groupID, "group-id", "", "group ID (overrides --group)")
	flagSet.StringVar(&opts.personID, "person-id", "", "person ID (overrides PERSON_INDEX)")
	flagSet.StringVar(&opts.debtID, "debt-id", "", "debt ID (overrides DEBT_INDEX)")
	flagSet.IntVar(&opts.limit, "limit", 0, "maximum number of events (0 for all)")
	flagSet.BoolVar(&opts.force, "force", false, "overwrite an existing key")
	return flagSet
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: ledgerctl <command> [flags] [args]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-28s %s\n", commands[name].usage, commands[name].summary)
	}
	fmt.Fprintf(os.Stderr, "\nRun 'ledgerctl <command> --help' for flags.\n")
}
