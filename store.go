package cryptofolio

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Asset is a quantity of a named crypto asset held in a wallet.
type Asset struct {
	ID       ID       `json:"id"`
	WalletID ID       `json:"wallet"`
	Name     string   `json:"name"`
	Amount   Quantity `json:"amount"`
}

// Wallet is a wallet or an exchange account holding assets.
type Wallet struct {
	ID     ID      `json:"id"`
	Name   string  `json:"name"`
	Assets []Asset `json:"assets"`
}

// Store holds wallets and their assets. It is the only source of truth of a
// portfolio: summaries are always derived from it.
//
// Wallets and assets keep their insertion order. Accessors return copies, so a
// Wallet obtained from the store never changes under the caller's feet.
type Store struct {
	mu      sync.RWMutex
	wallets []*Wallet
	ids     idGenerator
	version uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{wallets: make([]*Wallet, 0)}
}

// Version is incremented on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// AddWallet creates an empty wallet and returns its id.
//
// Surrounding whitespace is not part of the name. The name must not be empty
// and must not be used by another wallet (exact, case-sensitive match).
func (s *Store) AddWallet(name string) (ID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: wallet name is empty", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexByName(name) >= 0 {
		return 0, fmt.Errorf("%w: a wallet named %q already exists", ErrDuplicateName, name)
	}
	w := &Wallet{ID: s.ids.next(), Name: name, Assets: make([]Asset, 0)}
	s.wallets = append(s.wallets, w)
	s.version++
	return w.ID, nil
}

// RemoveWallet deletes a wallet with all its assets. It reports whether the
// wallet existed; removing an unknown wallet is not an error.
func (s *Store) RemoveWallet(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(id)
	if i < 0 {
		return false
	}
	s.wallets = slices.Delete(s.wallets, i, i+1)
	s.version++
	return true
}

// AddAsset appends an asset to a wallet and returns the asset id.
//
// Assets are never merged: adding "Bitcoin" twice to the same wallet creates
// two entries.
func (s *Store) AddAsset(walletID ID, name string, amount Quantity) (ID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: asset name is empty", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return 0, fmt.Errorf("%w: amount %v of %q must be positive", ErrInvalidInput, amount, name)
	}
	if amount.overflows() {
		return 0, fmt.Errorf("%w: amount %v of %q is too large", ErrInvalidInput, amount, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(walletID)
	if i < 0 {
		return 0, fmt.Errorf("%w: wallet %v", ErrNotFound, walletID)
	}
	w := s.wallets[i]
	a := Asset{ID: s.ids.next(), WalletID: w.ID, Name: name, Amount: amount}
	w.Assets = append(w.Assets, a)
	s.version++
	return a.ID, nil
}

// RemoveAsset deletes exactly one asset. It reports whether the asset existed;
// an unknown wallet or asset is not an error.
func (s *Store) RemoveAsset(walletID, assetID ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(walletID)
	if i < 0 {
		return false
	}
	w := s.wallets[i]
	j := slices.IndexFunc(w.Assets, func(a Asset) bool { return a.ID == assetID })
	if j < 0 {
		return false
	}
	w.Assets = slices.Delete(w.Assets, j, j+1)
	s.version++
	return true
}

// Wallets returns a copy of all wallets in insertion order.
func (s *Store) Wallets() []Wallet {
	wallets, _ := s.snapshot()
	return wallets
}

// Wallet returns a copy of the wallet with this id.
func (s *Store) Wallet(id ID) (Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexByID(id)
	if i < 0 {
		return Wallet{}, false
	}
	return s.wallets[i].clone(), true
}

// WalletByName returns a copy of the wallet with exactly this name.
func (s *Store) WalletByName(name string) (Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexByName(strings.TrimSpace(name))
	if i < 0 {
		return Wallet{}, false
	}
	return s.wallets[i].clone(), true
}

// snapshot returns the wallets together with the version they were read at.
func (s *Store) snapshot() ([]Wallet, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wallets := make([]Wallet, 0, len(s.wallets))
	for _, w := range s.wallets {
		wallets = append(wallets, w.clone())
	}
	return wallets, s.version
}

func (s *Store) indexByID(id ID) int {
	return slices.IndexFunc(s.wallets, func(w *Wallet) bool { return w.ID == id })
}

func (s *Store) indexByName(name string) int {
	return slices.IndexFunc(s.wallets, func(w *Wallet) bool { return w.Name == name })
}

func (w *Wallet) clone() Wallet {
	c := *w
	c.Assets = slices.Clone(w.Assets)
	if c.Assets == nil {
		c.Assets = make([]Asset, 0)
	}
	return c
}
