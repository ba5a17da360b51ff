package cryptofolio

import "errors"

// Error kinds shared by every component. Operations wrap them with context, test
// them with errors.Is.
var (
	// ErrInvalidInput reports an empty name, or an amount or price that is not a
	// positive finite number.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateName reports a wallet name already in use.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrNotFound reports a reference to a wallet, asset or summary row that does
	// not exist.
	ErrNotFound = errors.New("not found")
	// ErrPriceUnavailable reports a price lookup that failed or returned no
	// usable price.
	ErrPriceUnavailable = errors.New("price unavailable")
)
