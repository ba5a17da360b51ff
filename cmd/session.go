package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cryptofolio"
	"github.com/google/shlex"
	"github.com/google/subcommands"
)

// Assistant answers questions about a portfolio.
type Assistant interface {
	Ask(ctx context.Context, portfolio, question string) (string, error)
}

// Session is one interactive portfolio: wallets exist only as long as the
// session does.
type Session struct {
	Store      *cryptofolio.Store
	Aggregator *cryptofolio.Aggregator
	Prices     cryptofolio.PriceSource
	Assistant  Assistant // created on first use when nil
	Config     *Config

	// Watch prints the summary after every change to the wallets.
	Watch bool

	Out io.Writer
	Err io.Writer
}

// NewSession creates an empty session.
func NewSession(cfg *Config, prices cryptofolio.PriceSource, out, errOut io.Writer) (*Session, error) {
	policy, err := cryptofolio.ParsePricePolicy(cfg.PricePolicy)
	if err != nil {
		return nil, err
	}
	store := cryptofolio.NewStore()
	return &Session{
		Store:      store,
		Aggregator: cryptofolio.NewAggregator(store, policy),
		Prices:     prices,
		Config:     cfg,
		Out:        out,
		Err:        errOut,
	}, nil
}

const prompt = "cpt> "

// Run reads commands from r, one per line, until EOF or "bye". Failing
// commands print a notice and the session goes on.
func (s *Session) Run(ctx context.Context, r io.Reader, interactive bool) error {
	if interactive {
		fmt.Fprintln(s.Out, "Welcome to cpt. Type 'help' for the list of commands, 'bye' to exit.")
		fmt.Fprintf(s.Out, "Fetched prices policy: %v (see 'cpt topic prices').\n", s.Aggregator.Policy())
	}
	br := bufio.NewReader(r)
	for {
		if interactive {
			fmt.Fprint(s.Out, prompt)
		}
		line, err := br.ReadString('\n')
		line = strings.TrimSpace(line)
		switch {
		case line == "bye" || line == "exit" || line == "quit":
			return nil
		case line == "" || strings.HasPrefix(line, "#"):
		default:
			s.Exec(ctx, line)
		}

		if err != nil {
			if err == io.EOF {
				return nil // Clean exit on Ctrl+D
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Exec executes a single command line.
func (s *Session) Exec(ctx context.Context, line string) subcommands.ExitStatus {
	args, err := shlex.Split(line)
	if err != nil && !strings.Contains(line, `"`) {
		// an unpaired apostrophe, as in Binance's, belongs to the name
		args, err = strings.Fields(line), nil
	}
	if err != nil {
		fmt.Fprintf(s.Err, "Error parsing %q: %v\n", line, err)
		return subcommands.ExitUsageError
	}
	log.Printf("exec %q", args)

	f := flag.NewFlagSet("cpt", flag.ContinueOnError)
	f.SetOutput(s.Err)
	if err := f.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	status := s.commander(f).Execute(ctx, s)
	if status != subcommands.ExitSuccess {
		log.Printf("%q exited with status %d", line, status)
	}
	return status
}

// commander returns the commands available in a session.
func (s *Session) commander(f *flag.FlagSet) *subcommands.Commander {
	c := subcommands.NewCommander(f, "cpt")
	c.Output = s.Out
	c.Error = s.Err
	c.Register(c.HelpCommand(), "")
	for _, sc := range sessionCommands() {
		c.Register(sc.cmd, sc.group)
	}
	return c
}

type groupedCommand struct {
	cmd   subcommands.Command
	group string
}

// sessionCommands lists the shell commands, one per user action.
func sessionCommands() []groupedCommand {
	return []groupedCommand{
		{&addWalletCmd{}, "wallets"},
		{&rmWalletCmd{}, "wallets"},
		{&addAssetCmd{}, "wallets"},
		{&rmAssetCmd{}, "wallets"},
		{&walletsCmd{}, "wallets"},
		{&summaryCmd{}, "portfolio"},
		{&fetchCmd{}, "portfolio"},
		{&exportCmd{}, "portfolio"},
		{&assistCmd{}, "portfolio"},
	}
}

// changed is called after every successful change to the wallets.
func (s *Session) changed() {
	if s.Watch {
		s.printMarkdown(summaryMarkdown(s))
	}
}

// printMarkdown renders markdown for the terminal, unless plain output is
// requested.
func (s *Session) printMarkdown(md string) {
	printMarkdown(s.Out, md, s.Config.Plain)
}

func printMarkdown(w io.Writer, md string, plain bool) {
	if !plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			var out string
			if out, err = r.Render(md); err == nil {
				fmt.Fprint(w, out)
				return
			}
		}
		log.Printf("markdown rendering failed (ignored): %v", err)
	}
	fmt.Fprint(w, md)
}

// session extracts the Session passed to every shell command.
func session(args []interface{}) *Session {
	for _, a := range args {
		if s, ok := a.(*Session); ok {
			return s
		}
	}
	panic("shell command executed outside of a session")
}
