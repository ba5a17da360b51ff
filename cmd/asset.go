package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/cryptofolio"
	"github.com/google/subcommands"
)

type addAssetCmd struct {
	wallet string
}

func (*addAssetCmd) Name() string     { return "add-asset" }
func (*addAssetCmd) Synopsis() string { return "add an asset to a wallet" }
func (*addAssetCmd) Usage() string {
	return `add-asset -w <wallet> <asset> <amount>

  Adds an amount of an asset to a wallet. The amount must be a positive number
  (e.g. 0.5 or 1e-8). Adding the same asset twice creates two entries.
`
}

func (c *addAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Name or id of the wallet (required)")
}

func (c *addAssetCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	if c.wallet == "" || f.NArg() < 2 {
		fmt.Fprintln(s.Err, "Error: -w <wallet>, an asset name and an amount are required.")
		return subcommands.ExitUsageError
	}
	name := strings.Join(f.Args()[:f.NArg()-1], " ")
	amount, err := cryptofolio.ParseQuantity(f.Arg(f.NArg() - 1))
	if err != nil {
		fmt.Fprintf(s.Err, "Error: please enter a valid amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	w, ok := lookupWallet(s.Store, c.wallet)
	if !ok {
		fmt.Fprintf(s.Err, "Error adding asset: %v: no wallet %q\n", cryptofolio.ErrNotFound, c.wallet)
		return subcommands.ExitFailure
	}
	id, err := s.Store.AddAsset(w.ID, name, amount)
	if err != nil {
		fmt.Fprintf(s.Err, "Error adding asset: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(s.Out, "Added %v %s to %q (id %v)\n", amount, strings.TrimSpace(name), w.Name, id)
	s.changed()
	return subcommands.ExitSuccess
}

type rmAssetCmd struct {
	wallet string
}

func (*rmAssetCmd) Name() string     { return "rm-asset" }
func (*rmAssetCmd) Synopsis() string { return "remove an asset from a wallet" }
func (*rmAssetCmd) Usage() string {
	return `rm-asset -w <wallet> <asset-id>

  Removes one asset entry, designated by its id (see 'wallets').
  Removing an unknown asset does nothing.
`
}

func (c *rmAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wallet, "w", "", "Name or id of the wallet (required)")
}

func (c *rmAssetCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	if c.wallet == "" || f.NArg() != 1 {
		fmt.Fprintln(s.Err, "Error: -w <wallet> and an asset id are required.")
		return subcommands.ExitUsageError
	}
	assetID, err := cryptofolio.ParseID(f.Arg(0))
	if err != nil {
		fmt.Fprintf(s.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	w, ok := lookupWallet(s.Store, c.wallet)
	if !ok || !s.Store.RemoveAsset(w.ID, assetID) {
		fmt.Fprintf(s.Out, "No asset %v in wallet %q, nothing removed\n", assetID, c.wallet)
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(s.Out, "Removed asset %v from %q\n", assetID, w.Name)
	s.changed()
	return subcommands.ExitSuccess
}
