package optfolio

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"optfolio/date"
)

// RejectReason classifies why a record was excluded from aggregation.
type RejectReason string

const (
	RejectMissingField    RejectReason = "missing required field"
	RejectZeroAmount      RejectReason = "zero amount"
	RejectMissingQuantity RejectReason = "missing quantity"
	RejectBadDescription  RejectReason = "undecodable description"
)

// Rejection records one excluded ledger row together with its reason, so
// callers (and tests) can assert on exclusions instead of reading logs.
type Rejection struct {
	Index  int
	Reason RejectReason
	Record TransactionRecord
}

// Position accumulates every leg of one option contract, identified by the
// key instrument_expiry_type_strike. It is a derived, disposable view: one is
// created lazily on the first record matching its key, mutated by every later
// record sharing the key, and never deleted within a pass.
type Position struct {
	Instrument string
	Expiry     string
	OptionType string
	Strike     string

	BuyQuantity  decimal.Decimal
	SellQuantity decimal.Decimal
	BuyAmount    decimal.Decimal
	SellAmount   decimal.Decimal
	PL           decimal.Decimal // realized profit/loss
	Revenue      decimal.Decimal // closing proceeds, zeroed on expiration

	OpenDate   date.Date // earliest open-leg activity date
	CloseDate  date.Date // latest close-leg activity date
	ExpiryDate date.Date // set only when an expiration event is observed

	// corrupt marks an accumulator fed by an unparseable amount; P/L is
	// pinned to zero from then on rather than propagating garbage.
	corrupt bool
}

// Key returns the contract identity under which legs aggregate.
func (p *Position) Key() string {
	return ContractKey(p.Instrument, DecodedDescription{
		Expiry: p.Expiry, OptionType: p.OptionType, Strike: p.Strike,
	})
}

// ContractKey computes the aggregation key from the instrument column and the
// decoded description. It depends on nothing else, so two records agreeing on
// all four components land in the same Position regardless of ordering.
func ContractKey(instrument string, d DecodedDescription) string {
	return instrument + "_" + d.Expiry + "_" + d.OptionType + "_" + d.Strike
}

// Book is the result of one aggregation pass: contract key to Position, plus
// every rejection. A fresh Book is built per pass; there is no hidden state
// carried between runs.
type Book struct {
	positions  map[string]*Position
	order      []string // keys in first-seen order
	Rejections []Rejection
}

// Position returns the position for a contract key, nil if absent.
func (b *Book) Position(key string) *Position { return b.positions[key] }

// Positions returns all positions in first-seen order.
func (b *Book) Positions() []*Position {
	out := make([]*Position, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.positions[key])
	}
	return out
}

// Len returns the number of aggregated positions.
func (b *Book) Len() int { return len(b.order) }

// Aggregate folds an ordered record sequence into a Book. The fold is pure:
// running it twice over the same slice yields identical results. Records that
// cannot contribute are skipped and logged, never an error; one bad row must
// not poison the rest of the mapping.
func Aggregate(records []TransactionRecord) *Book {
	b := &Book{positions: make(map[string]*Position)}
	for i, rec := range records {
		if reason := b.apply(rec); reason != "" {
			b.Rejections = append(b.Rejections, Rejection{Index: i, Reason: reason, Record: rec})
			log.Printf("skipping record %d (%s %s): %s", i, rec.ActivityDate, rec.Instrument, reason)
		}
	}
	return b
}

// apply runs the per-record algorithm, returning a non-empty reason when the
// record is rejected.
func (b *Book) apply(rec TransactionRecord) RejectReason {
	if rec.Instrument == "" || rec.Description == "" || rec.TransCode == "" {
		return RejectMissingField
	}
	amount, amountErr := parseNumeric(rec.Amount)
	if strings.TrimSpace(rec.Amount) == "" || (amountErr == nil && amount.IsZero()) {
		// Zero-premium closes are discarded too; known limitation.
		return RejectZeroAmount
	}
	if strings.TrimSpace(rec.Quantity) == "" {
		return RejectMissingQuantity
	}

	decoded := DecodeDescription(rec.Description)
	if !decoded.Complete() {
		return RejectBadDescription
	}

	key := ContractKey(rec.Instrument, decoded)
	pos := b.positions[key]
	if pos == nil {
		pos = &Position{
			Instrument: rec.Instrument,
			Expiry:     decoded.Expiry,
			OptionType: decoded.OptionType,
			Strike:     decoded.Strike,
		}
		b.positions[key] = pos
		b.order = append(b.order, key)
	}

	quantity := parseQuantity(rec.Quantity)
	activity, activityErr := date.Parse(rec.ActivityDate)

	// A bad amount corrupts the position only when it actually flows into an
	// accumulator. Codes that never touch one leave P/L intact.
	switch rec.TransCode {
	case CodeBuyToOpen:
		if amountErr != nil {
			pos.corrupt = true
		}
		pos.BuyQuantity = pos.BuyQuantity.Add(quantity)
		pos.BuyAmount = pos.BuyAmount.Add(amount)
		if activityErr == nil && (pos.OpenDate.IsZero() || activity.Before(pos.OpenDate)) {
			pos.OpenDate = activity
		}
	case CodeSellToClose:
		if amountErr != nil {
			pos.corrupt = true
		}
		pos.SellQuantity = pos.SellQuantity.Add(quantity)
		pos.SellAmount = pos.SellAmount.Add(amount)
		pos.Revenue = pos.SellAmount
		if activityErr == nil && (pos.CloseDate.IsZero() || activity.After(pos.CloseDate)) {
			pos.CloseDate = activity
		}
	}

	// Expiration triggers on the OEXP code or on "exp" appearing anywhere in
	// the description. The substring match can false-positive on tickers
	// containing "exp"; that behavior is preserved deliberately.
	expired := rec.TransCode == CodeExpired ||
		strings.Contains(strings.ToLower(rec.Description), "exp")
	if expired {
		pos.SellAmount = decimal.Zero
		pos.SellQuantity = pos.BuyQuantity
		pos.PL = pos.BuyAmount.Neg()
		pos.Revenue = decimal.Zero
		if processed, err := date.Parse(rec.ProcessDate); err == nil {
			pos.ExpiryDate = processed
		}
	}

	// Recompute realized P/L last. Expiration already set it this pass, and a
	// corrupt accumulator pins it to zero.
	switch {
	case pos.corrupt:
		pos.PL = decimal.Zero
	case !expired:
		pos.PL = pos.SellAmount.Sub(pos.BuyAmount)
	}

	// When the position shows a profit, surface the type of the leg that
	// drove it. Under clean data the type is constant per key anyway; this
	// guards ledgers that duplicate a key across two recorded types.
	if pos.PL.IsPositive() {
		pos.OptionType = decoded.OptionType
	}
	return ""
}
