// Package cryptofolio tracks a crypto portfolio spread over several wallets and
// exchanges.
//
// The core functionalities include:
//   - Store: the wallets and the assets they hold, with their naming and
//     identity rules. It is the only source of truth.
//   - Aggregator: a stateless view of the Store that sums every asset name
//     across all wallets, and merges in the live USD prices fetched for them.
//   - PriceSource: the boundary to a live price provider (see the coingecko
//     package).
//
// Everything lives in memory. This package serves as the foundational logic
// for the `cpt` command-line tool.
package cryptofolio
