package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cryptofolio"
	md "github.com/nao1215/markdown"
)

// Placeholders for assets without a live price.
const (
	NotFetched   = "Not fetched"
	NotAvailable = "N/A"
	NoAssets     = "No assets added yet"
)

// SummaryMarkdown renders the consolidated view of all wallets.
func SummaryMarkdown(rows []cryptofolio.AssetSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Portfolio Summary")

	table := md.TableSet{
		Header: []string{"Asset", "Total Amount", "Live Price (USD)", "Live Value (USD)"},
		Rows:   make([][]string, 0, len(rows)),
	}
	var total cryptofolio.Money
	priced := 0
	for _, r := range rows {
		price, value := NotFetched, NotAvailable
		if r.Priced {
			price, value = r.LivePrice.String(), r.LiveValue.String()
			total = total.Add(r.LiveValue)
			priced++
		}
		table.Rows = append(table.Rows, []string{r.Name, r.TotalAmount.String(), price, value})
	}
	if len(rows) == 0 {
		table.Rows = append(table.Rows, []string{NoAssets, "", "", ""})
	}
	doc.Table(table)

	if priced > 0 {
		doc.PlainText(fmt.Sprintf("Total live value: %s (%d of %d assets priced)", total, priced, len(rows)))
	}
	return doc.String()
}
