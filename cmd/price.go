package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptofolio/coingecko"
	"github.com/google/subcommands"
)

type priceCmd struct {
	cfg *Config
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "print the live USD price of assets" }
func (*priceCmd) Usage() string {
	return `cpt price <asset>...

  Prints the live USD price of each asset, by name (e.g. Bitcoin, "Shiba Inu").
`
}

func (*priceCmd) SetFlags(f *flag.FlagSet) {}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one asset name is required.")
		return subcommands.ExitUsageError
	}
	client := coingecko.New(c.cfg.PriceURL, c.cfg.PriceTimeout)
	client.APIKey = c.cfg.PriceAPIKey

	status := subcommands.ExitSuccess
	for _, name := range f.Args() {
		price, err := client.Price(ctx, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not fetch price for %s: %v\n", name, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s: %s\n", name, price)
	}
	return status
}
