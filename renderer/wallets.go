package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cryptofolio"
	md "github.com/nao1215/markdown"
)

// WalletsMarkdown renders every wallet with its assets listed individually.
func WalletsMarkdown(wallets []cryptofolio.Wallet) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Wallets")
	if len(wallets) == 0 {
		doc.PlainText("No wallets yet. Add one with `add-wallet <name>`.")
		return doc.String()
	}

	for _, w := range wallets {
		doc.H3(fmt.Sprintf("%s (id %v)", w.Name, w.ID))
		if len(w.Assets) == 0 {
			doc.PlainText(NoAssets + ".")
			continue
		}
		table := md.TableSet{
			Header: []string{"ID", "Asset", "Amount"},
			Rows:   make([][]string, 0, len(w.Assets)),
		}
		for _, a := range w.Assets {
			table.Rows = append(table.Rows, []string{a.ID.String(), a.Name, a.Amount.String()})
		}
		doc.Table(table)
	}
	return doc.String()
}
