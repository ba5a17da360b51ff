package cmd

import (
	"flag"
	"slices"
	"testing"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2/predict"
)

func TestCompletion(t *testing.T) {
	cfg := testConfig()
	top := flag.NewFlagSet("cpt", flag.ContinueOnError)
	cfg.RegisterFlags(top)
	c := subcommands.NewCommander(top, "cpt")
	Register(c, cfg)

	root := Completion(c, top)
	for _, name := range []string{"shell", "price", "topic"} {
		if _, ok := root.Sub[name]; !ok {
			t.Errorf("no completion for subcommand %q", name)
		}
	}
	if _, ok := root.Flags["price-policy"].(predict.Set); !ok {
		t.Errorf("-price-policy predictor = %T, want a set of policies", root.Flags["price-policy"])
	}
	if _, ok := root.Sub["shell"].Flags["f"]; !ok {
		t.Error("no completion for 'shell -f'")
	}
	topics, ok := root.Sub["topic"].Args.(predict.Set)
	if !ok || !slices.Contains(topics, "wallets") {
		t.Errorf("topic arguments = %v, want the topic names", root.Sub["topic"].Args)
	}
}
