package cryptofolio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// AssetSummary is the consolidated holding of one asset name across all wallets.
type AssetSummary struct {
	Name        string
	TotalAmount Quantity
	// LivePrice and LiveValue are only meaningful when Priced is true.
	LivePrice Money
	LiveValue Money
	Priced    bool
}

// MarshalJSON omits the price fields of rows without a price.
func (s AssetSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", s.Name)
	w.Append("totalAmount", s.TotalAmount)
	if s.Priced {
		w.Append("livePrice", s.LivePrice)
		w.Append("liveValue", s.LiveValue)
	}
	return w.MarshalJSON()
}

// PriceSource resolves the current USD unit price of an asset from its display
// name. Failures must wrap ErrPriceUnavailable.
type PriceSource interface {
	Price(ctx context.Context, name string) (Money, error)
}

// PriceSourceFunc adapts a function to the PriceSource interface.
type PriceSourceFunc func(ctx context.Context, name string) (Money, error)

func (f PriceSourceFunc) Price(ctx context.Context, name string) (Money, error) { return f(ctx, name) }

// quote is a fetched price and the store version it was applied at.
type quote struct {
	price   Money
	version uint64
}

// Aggregator derives asset summaries from a Store and merges in live prices.
//
// Summaries are recomputed from scratch on every call, prices are the only
// state the Aggregator owns.
type Aggregator struct {
	store  *Store
	policy PricePolicy

	mu     sync.Mutex
	quotes map[string]quote // index fetched prices by asset name
}

// NewAggregator creates an Aggregator over 'store' with no known price.
func NewAggregator(store *Store, policy PricePolicy) *Aggregator {
	return &Aggregator{
		store:  store,
		policy: policy,
		quotes: make(map[string]quote),
	}
}

// Policy returns the price policy in use.
func (a *Aggregator) Policy() PricePolicy { return a.policy }

// Summary returns one row per distinct asset name, in the order names are first
// seen walking wallets then assets in insertion order.
func (a *Aggregator) Summary() []AssetSummary {
	wallets, version := a.store.snapshot()
	return a.summarize(wallets, version)
}

// Snapshot returns the summary together with the wallets it was computed from.
func (a *Aggregator) Snapshot() ([]AssetSummary, []Wallet) {
	wallets, version := a.store.snapshot()
	return a.summarize(wallets, version), wallets
}

func (a *Aggregator) summarize(wallets []Wallet, version uint64) []AssetSummary {
	rows := make([]AssetSummary, 0)
	index := make(map[string]int)
	for _, w := range wallets {
		for _, asset := range w.Assets {
			i, exists := index[asset.Name]
			if !exists {
				index[asset.Name] = len(rows)
				rows = append(rows, AssetSummary{Name: asset.Name, TotalAmount: asset.Amount})
				continue
			}
			rows[i].TotalAmount = rows[i].TotalAmount.Add(asset.Amount)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range rows {
		price, ok := a.price(rows[i].Name, version)
		if !ok {
			continue
		}
		rows[i].Priced = true
		rows[i].LivePrice = price
		rows[i].LiveValue = price.Mul(rows[i].TotalAmount)
	}
	return rows
}

// Price returns the live price currently applicable to an asset name.
func (a *Aggregator) Price(name string) (Money, bool) {
	version := a.store.Version()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.price(name, version)
}

// price must be called with a.mu held.
func (a *Aggregator) price(name string, version uint64) (Money, bool) {
	q, ok := a.quotes[name]
	if !ok {
		return Money{}, false
	}
	if a.policy == ResetPrices && q.version != version {
		return Money{}, false
	}
	return q.price, true
}

// SetPrice records the live price of an asset name. The name must be held in
// at least one wallet, and the price must be positive.
func (a *Aggregator) SetPrice(name string, price Money) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price %s of %q must be positive", ErrInvalidInput, price.Exact(), name)
	}
	wallets, version := a.store.snapshot()
	if !holds(wallets, name) {
		return fmt.Errorf("%w: no asset named %q", ErrNotFound, name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.quotes[name] = quote{price: price, version: version}
	return nil
}

// Refresh looks up the live price of an asset name and records it.
//
// On failure the previously known price is left untouched and the returned
// error wraps ErrPriceUnavailable (or ErrNotFound if the name is not held).
func (a *Aggregator) Refresh(ctx context.Context, src PriceSource, name string) (Money, error) {
	if wallets, _ := a.store.snapshot(); !holds(wallets, name) {
		return Money{}, fmt.Errorf("%w: no asset named %q", ErrNotFound, name)
	}
	price, err := src.Price(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrPriceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrPriceUnavailable, err)
		}
		return Money{}, err
	}
	if !price.IsPositive() {
		return Money{}, fmt.Errorf("%w: %q has no positive price", ErrPriceUnavailable, name)
	}
	if err := a.SetPrice(name, price); err != nil {
		return Money{}, err
	}
	return price, nil
}

// RefreshAll refreshes every asset name of the summary, running at most
// 'workers' lookups at a time. It returns the failures indexed by asset name;
// a failure for one name never prevents the others from being updated.
func (a *Aggregator) RefreshAll(ctx context.Context, src PriceSource, workers int) map[string]error {
	if workers < 1 {
		workers = 1
	}
	var (
		mu       sync.Mutex
		failures = make(map[string]error)
		g        errgroup.Group
	)
	g.SetLimit(workers)
	for _, row := range a.Summary() {
		name := row.Name
		g.Go(func() error {
			if _, err := a.Refresh(ctx, src, name); err != nil {
				mu.Lock()
				failures[name] = err
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()
	return failures
}

// holds reports whether any wallet has an asset with this exact name.
func holds(wallets []Wallet, name string) bool {
	for _, w := range wallets {
		for _, asset := range w.Assets {
			if asset.Name == name {
				return true
			}
		}
	}
	return false
}
