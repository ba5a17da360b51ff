package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/cryptofolio/agent"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant about the portfolio" }
func (*assistCmd) Usage() string {
	return `assist <question>

  Sends the question, along with the current wallets and summary, to Gemini
  and prints the answer. Requires the GEMINI_API_KEY environment variable.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	if f.NArg() == 0 {
		fmt.Fprintln(s.Err, "Error: a question is required.")
		return subcommands.ExitUsageError
	}

	if s.Assistant == nil {
		advisor, err := agent.NewAdvisor(ctx, s.Config.GeminiAPIKey, s.Config.GeminiModel)
		if err != nil {
			fmt.Fprintf(s.Err, "Error starting the assistant: %v\n", err)
			return subcommands.ExitFailure
		}
		s.Assistant = advisor
	}

	answer, err := s.Assistant.Ask(ctx, portfolioMarkdown(s), strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintf(s.Err, "Error asking the assistant: %v\n", err)
		return subcommands.ExitFailure
	}
	s.printMarkdown(answer)
	return subcommands.ExitSuccess
}

// portfolioMarkdown describes the whole session: wallets then summary.
func portfolioMarkdown(s *Session) string {
	return renderer.WalletsMarkdown(s.Store.Wallets()) + "\n" + summaryMarkdown(s)
}
