package cryptofolio

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// ID identifies a wallet or an asset. IDs are never reused within a Store.
type ID uint64

func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseID parses the decimal form produced by ID.String.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: %q is not an id", ErrInvalidInput, s)
	}
	return ID(v), nil
}

// idGenerator issues monotonic ids starting at 1. Its zero value is ready to use.
type idGenerator struct {
	last atomic.Uint64
}

func (g *idGenerator) next() ID { return ID(g.last.Add(1)) }
