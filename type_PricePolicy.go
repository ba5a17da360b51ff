package cryptofolio

import "fmt"

// PricePolicy defines what happens to fetched live prices when the store changes.
type PricePolicy int

const (
	// KeepPrices keeps a fetched price for an asset name until a new fetch
	// overwrites it, whatever happens to the wallets in between.
	KeepPrices PricePolicy = iota
	// ResetPrices forgets every fetched price as soon as a wallet or an asset is
	// added or removed.
	ResetPrices
)

func (p PricePolicy) String() string {
	switch p {
	case KeepPrices:
		return "keep"
	case ResetPrices:
		return "reset"
	default:
		return "unknown"
	}
}

// ParsePricePolicy parses a string into a PricePolicy.
func ParsePricePolicy(s string) (PricePolicy, error) {
	switch s {
	case "keep":
		return KeepPrices, nil
	case "reset":
		return ResetPrices, nil
	default:
		return 0, fmt.Errorf("unknown price policy: %q", s)
	}
}
