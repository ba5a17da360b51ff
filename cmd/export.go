package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/cryptofolio/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	file string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the portfolio to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `export [-o <file.xlsx>]

  Writes an xlsx workbook with a "Portfolio Summary" sheet and one sheet per
  wallet holding at least one asset. Assets without a live price are exported
  as "Not fetched".
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "o", "", "Output file. Defaults to the -export-file setting")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	s := session(args)
	file := c.file
	if file == "" {
		file = s.Config.ExportFile
	}
	if file == "" {
		file = export.DefaultFile
	}

	summary, wallets := s.Aggregator.Snapshot()
	if err := export.Save(file, summary, wallets); err != nil {
		fmt.Fprintf(s.Err, "Error exporting portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(s.Out, "Portfolio exported to %s\n", file)
	return subcommands.ExitSuccess
}
