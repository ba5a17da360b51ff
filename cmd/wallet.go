package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

type addWalletCmd struct{}

func (*addWalletCmd) Name() string     { return "add-wallet" }
func (*addWalletCmd) Synopsis() string { return "register a wallet or an exchange" }
func (*addWalletCmd) Usage() string {
	return `add-wallet <name>

  Registers a new wallet or exchange. Names are unique and case sensitive.
`
}

func (*addWalletCmd) SetFlags(f *flag.FlagSet) {}

func (*addWalletCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	name := strings.Join(f.Args(), " ")

	id, err := s.Store.AddWallet(name)
	if err != nil {
		fmt.Fprintf(s.Err, "Error adding wallet: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(s.Out, "Added wallet %q (id %v)\n", strings.TrimSpace(name), id)
	s.changed()
	return subcommands.ExitSuccess
}

type rmWalletCmd struct{}

func (*rmWalletCmd) Name() string     { return "rm-wallet" }
func (*rmWalletCmd) Synopsis() string { return "remove a wallet and all its assets" }
func (*rmWalletCmd) Usage() string {
	return `rm-wallet <name|id>

  Removes a wallet, designated by its name or its id, and all its assets.
  Removing an unknown wallet does nothing.
`
}

func (*rmWalletCmd) SetFlags(f *flag.FlagSet) {}

func (*rmWalletCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	if f.NArg() == 0 {
		fmt.Fprintln(s.Err, "Error: a wallet name or id is required.")
		return subcommands.ExitUsageError
	}
	ref := strings.Join(f.Args(), " ")

	w, ok := lookupWallet(s.Store, ref)
	if !ok || !s.Store.RemoveWallet(w.ID) {
		fmt.Fprintf(s.Out, "No wallet %q, nothing removed\n", ref)
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(s.Out, "Removed wallet %q and its %d asset(s)\n", w.Name, len(w.Assets))
	s.changed()
	return subcommands.ExitSuccess
}

type walletsCmd struct{}

func (*walletsCmd) Name() string     { return "wallets" }
func (*walletsCmd) Synopsis() string { return "list wallets and their assets" }
func (*walletsCmd) Usage() string {
	return `wallets

  Lists every wallet with each of its assets, and their ids.
`
}

func (*walletsCmd) SetFlags(f *flag.FlagSet) {}

func (*walletsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	s.printMarkdown(renderer.WalletsMarkdown(s.Store.Wallets()))
	return subcommands.ExitSuccess
}

// lookupWallet finds a wallet by name first, then by id.
func lookupWallet(store *cryptofolio.Store, ref string) (cryptofolio.Wallet, bool) {
	if w, ok := store.WalletByName(ref); ok {
		return w, true
	}
	id, err := cryptofolio.ParseID(ref)
	if err != nil {
		return cryptofolio.Wallet{}, false
	}
	return store.Wallet(id)
}
