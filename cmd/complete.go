package cmd

import (
	"flag"

	"github.com/etnz/cryptofolio/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes the values of flags, by flag name.
var flagPredictors = map[string]complete.Predictor{
	"price-policy": predict.Set{"keep", "reset"},
	"export-file":  predict.Files("*.xlsx"),
	"o":            predict.Files("*.xlsx"),
	"f":            predict.Files("*"),
}

// argPredictors completes the positional arguments, by subcommand name.
var argPredictors = map[string]complete.Predictor{
	"topic": predict.Set(docs.List()),
}

// Completion describes the command line of the commander for shell completion.
func Completion(c *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsOf(top),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		f := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(f)
		root.Sub[sc.Name()] = &complete.Command{
			Flags: flagsOf(f),
			Args:  argPredictors[sc.Name()],
		}
	})
	return root
}

func flagsOf(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := flagPredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
