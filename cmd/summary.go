package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	json bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the consolidated portfolio" }
func (*summaryCmd) Usage() string {
	return `summary [-json]

  Displays one row per asset name, with the total amount across all wallets,
  and the live price and value when a price has been fetched.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the summary as JSON")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	if c.json {
		enc := json.NewEncoder(s.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s.Aggregator.Summary()); err != nil {
			fmt.Fprintf(s.Err, "Error encoding summary: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	s.printMarkdown(summaryMarkdown(s))
	return subcommands.ExitSuccess
}

func summaryMarkdown(s *Session) string {
	return renderer.SummaryMarkdown(s.Aggregator.Summary())
}
