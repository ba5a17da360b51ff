package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/google/subcommands"
)

type fetchCmd struct {
	all bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch live USD prices" }
func (*fetchCmd) Usage() string {
	return `fetch [-all] [<asset>]

  Fetches the live USD price of an asset, by its name as shown in the summary.
  Without an asset name, or with -all, every asset of the summary is fetched.

  A failed lookup keeps the previously fetched price, if any.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Fetch the price of every asset")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	if s.Prices == nil {
		fmt.Fprintln(s.Err, "Error: no price source configured.")
		return subcommands.ExitFailure
	}

	if c.all || f.NArg() == 0 {
		failures := s.Aggregator.RefreshAll(ctx, s.Prices, s.Config.FetchWorkers)
		names := make([]string, 0, len(failures))
		for name := range failures {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(s.Err, "Could not fetch price for %s. Please check the asset name and try again: %v\n", name, failures[name])
		}
		s.printMarkdown(summaryMarkdown(s))
		if len(failures) > 0 {
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	name := strings.Join(f.Args(), " ")
	price, err := s.Aggregator.Refresh(ctx, s.Prices, name)
	if err != nil {
		fmt.Fprintf(s.Err, "Could not fetch price for %s. Please check the asset name and try again: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(s.Out, "%s: %s\n", name, price)
	s.changed()
	return subcommands.ExitSuccess
}
