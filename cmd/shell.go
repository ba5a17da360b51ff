package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/cryptofolio/coingecko"
	"github.com/google/subcommands"
)

type shellCmd struct {
	cfg    *Config
	script string
	watch  bool
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "start an interactive portfolio session" }
func (*shellCmd) Usage() string {
	return `cpt shell [-f <script>] [-watch]

  Starts an interactive session over an empty portfolio. Wallets and assets
  only live as long as the session. Type 'help' for the list of commands,
  'bye' to exit.

  With -f, the commands of the script are executed first. With -f - the
  commands are read from the standard input, without prompt.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.script, "f", "", "Script to execute before the interactive session, '-' for the standard input only")
	f.BoolVar(&c.watch, "watch", false, "Print the summary after every change")
}

func (c *shellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prices := coingecko.New(c.cfg.PriceURL, c.cfg.PriceTimeout)
	prices.APIKey = c.cfg.PriceAPIKey

	s, err := NewSession(c.cfg, prices, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		return subcommands.ExitUsageError
	}
	s.Watch = c.watch

	var input io.Reader = os.Stdin
	interactive := true
	switch c.script {
	case "":
	case "-":
		interactive = false
	default:
		script, err := os.ReadFile(c.script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
			return subcommands.ExitFailure
		}
		input = io.MultiReader(strings.NewReader(string(script)+"\n"), os.Stdin)
	}

	if err := s.Run(ctx, input, interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
