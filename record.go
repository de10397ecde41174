package optfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger column names as they appear in brokerage exports. Both the CSV and
// the remote JSON path produce records under these headers.
const (
	HeaderActivityDate = "Activity Date"
	HeaderProcessDate  = "Process Date"
	HeaderSettleDate   = "Settle Date"
	HeaderInstrument   = "Instrument"
	HeaderDescription  = "Description"
	HeaderTransCode    = "Trans Code"
	HeaderQuantity     = "Quantity"
	HeaderPrice        = "Price"
	HeaderAmount       = "Amount"
)

// Transaction codes with aggregation semantics. Any other code is carried
// through untouched.
const (
	CodeBuyToOpen   = "BTO"
	CodeSellToClose = "STC"
	CodeExpired     = "OEXP"
)

// TransactionRecord is one row of the brokerage ledger. Every field keeps the
// textual shape produced by the normalizer; interpretation (dates, quantities,
// amounts) happens at the point of use so that a malformed field degrades a
// single derived figure instead of dropping the row.
//
// A record is immutable once parsed and is the only source of truth for
// aggregation.
type TransactionRecord struct {
	ActivityDate string
	ProcessDate  string
	SettleDate   string
	Instrument   string
	Description  string
	TransCode    string
	Quantity     string
	Price        string
	Amount       string
}

// recordFromFields builds a record from a header lookup function. A header
// with no corresponding value must yield "", never a missing key.
func recordFromFields(get func(string) string) TransactionRecord {
	return TransactionRecord{
		ActivityDate: get(HeaderActivityDate),
		ProcessDate:  get(HeaderProcessDate),
		SettleDate:   get(HeaderSettleDate),
		Instrument:   get(HeaderInstrument),
		Description:  get(HeaderDescription),
		TransCode:    get(HeaderTransCode),
		Quantity:     get(HeaderQuantity),
		Price:        get(HeaderPrice),
		Amount:       get(HeaderAmount),
	}
}

// parseNumeric strips every character except digits, '.' and '-' and parses
// the remainder. Accounting parentheses are dropped, not negated: a BTO cost
// of "($500.00)" reads as 500, the magnitude the aggregator accumulates into
// BuyAmount so that pl = sellAmount - buyAmount comes out right.
func parseNumeric(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	var b strings.Builder
	for _, r := range trimmed {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q is not numeric: %w", s, err)
	}
	return d, nil
}

// ParseAmount applies the cash-flow currency rule: non-numeric characters are
// stripped and a parenthesized value (accounting negative notation) negates
// the result. This is the signed reading used by the cumulative series; the
// position aggregator accumulates magnitudes via parseNumeric instead.
//
//	"($1,234.56)" -> -1234.56
//	"$500.00"     -> 500
//	"250.5"       -> 250.5
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := parseNumeric(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if strings.HasPrefix(strings.TrimSpace(s), "(") {
		d = d.Neg()
	}
	return d, nil
}

// parseQuantity reads a quantity leniently, zero when unparseable. Absence is
// checked by the aggregator before this point.
func parseQuantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
