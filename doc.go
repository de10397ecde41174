// Package optfolio analyzes options trading ledgers exported from a
// brokerage.
//
// A ledger is a sequence of TransactionRecord rows, read from a CSV export
// (ReadLedger) or fetched from the companion service (Client). Aggregate
// folds the rows into per-contract Positions keyed by instrument, expiry,
// option type, and strike, realizing P/L from open, close, and expiration
// legs. Recompute derives the full Analytics view on top: headline totals,
// per-instrument and per-type breakdowns, top winners and losers, holding
// periods, and the cumulative cash-flow series.
//
// All money math runs on decimals; record fields stay textual so one
// malformed cell degrades a single figure instead of dropping the row.
package optfolio
