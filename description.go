package optfolio

import (
	"math"
	"strconv"
	"strings"
)

// DecodedDescription is the instrument identity extracted from a free-text
// trade description such as "AAPL 01/19/2024 Call $150". It is stateless,
// recomputed from the record on demand, and never persisted.
type DecodedDescription struct {
	Instrument string
	Expiry     string // raw token, contains '/' or '-'; not validated as a date
	OptionType string // "Call" or "Put", original casing preserved
	Strike     string // numeric token, leading '$' stripped
}

// Complete reports whether all components needed to form a contract key were
// identified. Incomplete descriptions exclude the record from aggregation.
func (d DecodedDescription) Complete() bool {
	return d.Expiry != "" && d.OptionType != "" && d.Strike != ""
}

// DecodeDescription tokenizes a description on whitespace and classifies each
// token positionally and by shape:
//
//   - token 0 is always the instrument.
//   - a token containing '/' or '-' is the expiry; the first match wins.
//   - a token equal to "call" or "put" (any case) is the option type.
//   - any other token that parses as a finite number is the strike; the last
//     match wins, since descriptions place the strike near the end.
//
// Tokens matching none of these are discarded.
func DecodeDescription(description string) DecodedDescription {
	var d DecodedDescription
	for i, token := range strings.Fields(description) {
		switch {
		case i == 0:
			d.Instrument = token
		case strings.ContainsAny(token, "/-"):
			if d.Expiry == "" {
				d.Expiry = token
			}
		case strings.EqualFold(token, "call") || strings.EqualFold(token, "put"):
			d.OptionType = token
		default:
			if numeric := strings.TrimPrefix(token, "$"); isFiniteNumber(numeric) {
				d.Strike = numeric
			}
		}
	}
	return d
}

// isFiniteNumber reports whether the whole token reads as a finite number.
func isFiniteNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}
