// Package export writes a portfolio to a spreadsheet workbook.
//
// A workbook has a "Portfolio Summary" sheet with one row per asset name, and
// one sheet per wallet holding at least one asset, named after the wallet.
package export

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/etnz/cryptofolio"
	"github.com/xuri/excelize/v2"
)

const (
	// DefaultFile is the file name used when none is given.
	DefaultFile = "crypto_portfolio.xlsx"
	// SummarySheet is the name of the first sheet.
	SummarySheet = "Portfolio Summary"

	// NotFetched and NotAvailable replace the price and value of an asset
	// without a live price.
	NotFetched   = "Not fetched"
	NotAvailable = "N/A"

	maxSheetName = 31 // Excel limit, in characters
)

var (
	summaryHeader = []any{"Asset", "Total Amount", "Live Price (USD)", "Live Value (USD)"}
	walletHeader  = []any{"Asset", "Amount"}
)

// NewWorkbook builds the workbook. The caller must Close it.
func NewWorkbook(summary []cryptofolio.AssetSummary, wallets []cryptofolio.Wallet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := build(f, summary, wallets); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func build(f *excelize.File, summary []cryptofolio.AssetSummary, wallets []cryptofolio.Wallet) error {
	// A new file comes with a default sheet, rename it rather than delete it.
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("cannot create sheet %q: %w", SummarySheet, err)
	}

	rows := make([][]any, 0, len(summary)+1)
	rows = append(rows, summaryHeader)
	for _, s := range summary {
		var price, value any = NotFetched, NotAvailable
		if s.Priced {
			price, value = s.LivePrice.Float64(), s.LiveValue.Float64()
		}
		rows = append(rows, []any{s.Name, s.TotalAmount.Float64(), price, value})
	}
	if err := writeRows(f, SummarySheet, rows); err != nil {
		return err
	}

	names := newSheetNames(SummarySheet)
	for _, w := range wallets {
		if len(w.Assets) == 0 {
			continue
		}
		sheet := names.assign(w.Name)
		if sheet != w.Name {
			log.Printf("wallet %q exported as sheet %q: the name is not a valid sheet name", w.Name, sheet)
		}
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("cannot create sheet for wallet %q: %w", w.Name, err)
		}

		rows := make([][]any, 0, len(w.Assets)+1)
		rows = append(rows, walletHeader)
		for _, a := range w.Assets {
			rows = append(rows, []any{a.Name, a.Amount.Float64()})
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for _, v := range row {
			if n, ok := v.(float64); ok && math.IsInf(n, 0) {
				return fmt.Errorf("cannot write row %d of sheet %q: %q is too large for a cell", i+1, sheet, row[0])
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d of sheet %q: %w", i+1, sheet, err)
		}
	}
	return nil
}

// Write writes the workbook to w in xlsx format.
func Write(w io.Writer, summary []cryptofolio.AssetSummary, wallets []cryptofolio.Wallet) error {
	f, err := NewWorkbook(summary, wallets)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

// Save writes the workbook to the file 'path'.
func Save(path string, summary []cryptofolio.AssetSummary, wallets []cryptofolio.Wallet) error {
	f, err := NewWorkbook(summary, wallets)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook %q: %w", path, err)
	}
	return nil
}

// sheetNames hands out sheet names that Excel accepts and that do not clash,
// ignoring case, with the names already handed out.
type sheetNames struct {
	used map[string]bool // lower cased
}

func newSheetNames(reserved ...string) *sheetNames {
	n := &sheetNames{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

// assign returns 'name' verbatim whenever possible.
func (n *sheetNames) assign(name string) string {
	base := sanitize(name)
	candidate := base
	for i := 2; n.used[strings.ToLower(candidate)]; i++ {
		suffix := " (" + strconv.Itoa(i) + ")"
		candidate = strings.TrimRight(truncate(base, maxSheetName-utf8.RuneCountInString(suffix)), "'") + suffix
	}
	n.used[strings.ToLower(candidate)] = true
	return candidate
}

// sanitize replaces the characters Excel forbids in sheet names, and shortens
// the name to the maximum length.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	// a sheet name cannot start or end with an apostrophe, even once shortened
	name = strings.Trim(truncate(name, maxSheetName), "'")
	if name == "" {
		name = "Wallet"
	}
	return name
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
