package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/etnz/cryptofolio"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// readBack writes the workbook in memory and returns every sheet's rows.
func readBack(t *testing.T, summary []cryptofolio.AssetSummary, wallets []cryptofolio.Wallet) ([]string, map[string][][]string) {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, summary, wallets); err != nil {
		t.Fatalf("Write() unexpected error = %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() unexpected error = %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	content := make(map[string][][]string)
	for _, s := range sheets {
		rows, err := f.GetRows(s)
		if err != nil {
			t.Fatalf("GetRows(%q) unexpected error = %v", s, err)
		}
		content[s] = rows
	}
	return sheets, content
}

func TestWrite(t *testing.T) {
	s := cryptofolio.NewStore()
	agg := cryptofolio.NewAggregator(s, cryptofolio.KeepPrices)
	coinbase, _ := s.AddWallet("Coinbase")
	s.AddAsset(coinbase, "Bitcoin", cryptofolio.Q(0.5))
	s.AddAsset(coinbase, "Ether", cryptofolio.Q(3))
	s.AddWallet("Empty")
	ledger, _ := s.AddWallet("Ledger")
	s.AddAsset(ledger, "Bitcoin", cryptofolio.Q(1.5))
	s.AddAsset(ledger, "Bitcoin", cryptofolio.Q(1))
	if err := agg.SetPrice("Bitcoin", cryptofolio.Dollars(50000)); err != nil {
		t.Fatal(err)
	}

	sheets, content := readBack(t, agg.Summary(), s.Wallets())

	wantSheets := []string{"Portfolio Summary", "Coinbase", "Ledger"}
	if diff := cmp.Diff(wantSheets, sheets); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	want := map[string][][]string{
		"Portfolio Summary": {
			{"Asset", "Total Amount", "Live Price (USD)", "Live Value (USD)"},
			{"Bitcoin", "3", "50000", "150000"},
			{"Ether", "3", "Not fetched", "N/A"},
		},
		"Coinbase": {
			{"Asset", "Amount"},
			{"Bitcoin", "0.5"},
			{"Ether", "3"},
		},
		"Ledger": {
			{"Asset", "Amount"},
			{"Bitcoin", "1.5"},
			{"Bitcoin", "1"},
		},
	}
	if diff := cmp.Diff(want, content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Empty(t *testing.T) {
	sheets, content := readBack(t, nil, nil)
	if diff := cmp.Diff([]string{"Portfolio Summary"}, sheets); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
	want := [][]string{{"Asset", "Total Amount", "Live Price (USD)", "Live Value (USD)"}}
	if diff := cmp.Diff(want, content["Portfolio Summary"]); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := Save(path, nil, nil); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() unexpected error = %v", err)
	}
	defer f.Close()
	if got := f.GetSheetName(0); got != SummarySheet {
		t.Errorf("first sheet = %q, want %q", got, SummarySheet)
	}
}

func TestSheetNames(t *testing.T) {
	long := strings.Repeat("x", 40)
	tests := []struct {
		names []string
		want  []string
	}{
		{[]string{"Coinbase", "Ledger Nano"}, []string{"Coinbase", "Ledger Nano"}},
		{[]string{"Portfolio Summary"}, []string{"Portfolio Summary (2)"}},
		{[]string{"Kraken", "kraken"}, []string{"Kraken", "kraken (2)"}},
		{[]string{"a/b", "a:b"}, []string{"a_b", "a_b (2)"}},
		{[]string{"[cold]"}, []string{"_cold_"}},
		{[]string{"'quoted'"}, []string{"quoted"}},
		{[]string{long}, []string{long[:31]}},
		{[]string{long, long}, []string{long[:31], long[:27] + " (2)"}},
		{[]string{strings.Repeat("x", 30) + "'s wallet"}, []string{strings.Repeat("x", 30)}},
		{[]string{strings.Repeat("x", 30) + "'s wallet", strings.Repeat("x", 30) + "'s other wallet"}, []string{strings.Repeat("x", 30), strings.Repeat("x", 27) + " (2)"}},
		{[]string{strings.Repeat("x", 26) + "'abcd", strings.Repeat("x", 26) + "'abcd"}, []string{strings.Repeat("x", 26) + "'abcd", strings.Repeat("x", 26) + " (2)"}},
		{[]string{"'''"}, []string{"Wallet"}},
	}
	for _, tt := range tests {
		n := newSheetNames(SummarySheet)
		var got []string
		for _, name := range tt.names {
			sheet := n.assign(name)
			if utf8.RuneCountInString(sheet) > maxSheetName {
				t.Errorf("assign(%q) = %q is longer than %d", name, sheet, maxSheetName)
			}
			got = append(got, sheet)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("assign(%q) mismatch (-want +got):\n%s", tt.names, diff)
		}
	}
}

func TestWrite_InvalidWalletName(t *testing.T) {
	wallets := []cryptofolio.Wallet{
		{ID: 1, Name: "Cold/Storage", Assets: []cryptofolio.Asset{{ID: 2, WalletID: 1, Name: "Bitcoin", Amount: cryptofolio.Q(1)}}},
		{ID: 3, Name: "portfolio summary", Assets: []cryptofolio.Asset{{ID: 4, WalletID: 3, Name: "Ether", Amount: cryptofolio.Q(1)}}},
	}
	sheets, _ := readBack(t, nil, wallets)
	want := []string{"Portfolio Summary", "Cold_Storage", "portfolio summary (2)"}
	if diff := cmp.Diff(want, sheets); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_ApostropheAtSheetNameLimit(t *testing.T) {
	name := strings.Repeat("x", 30) + "'s wallet"
	wallets := []cryptofolio.Wallet{
		{ID: 1, Name: name, Assets: []cryptofolio.Asset{{ID: 2, WalletID: 1, Name: "Bitcoin", Amount: cryptofolio.Q(1)}}},
	}
	sheets, content := readBack(t, nil, wallets)
	want := []string{"Portfolio Summary", strings.Repeat("x", 30)}
	if diff := cmp.Diff(want, sheets); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"Asset", "Amount"}, {"Bitcoin", "1"}}, content[want[1]]); diff != "" {
		t.Errorf("wallet sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_AmountTooLarge(t *testing.T) {
	huge := cryptofolio.Q(decimal.RequireFromString("1e400"))
	wallets := []cryptofolio.Wallet{
		{ID: 1, Name: "W", Assets: []cryptofolio.Asset{{ID: 2, WalletID: 1, Name: "Bitcoin", Amount: huge}}},
	}
	summary := []cryptofolio.AssetSummary{{Name: "Bitcoin", TotalAmount: huge}}
	if err := Write(&bytes.Buffer{}, summary, wallets); err == nil {
		t.Error("Write() with an amount beyond the float range, want an error")
	}
	if err := Write(&bytes.Buffer{}, nil, wallets); err == nil {
		t.Error("Write() of a wallet with an amount beyond the float range, want an error")
	}
}
