package optfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"optfolio/date"
)

// PricePoint is one daily close for a ticker.
type PricePoint struct {
	Date  date.Date
	Close float64
}

// StockWindow holds the price context around a trade: daily closes over the
// window plus the ledger legs for the ticker that fall inside it.
type StockWindow struct {
	Ticker string
	Window date.Range
	Prices []PricePoint
	Legs   []TransactionRecord
}

// StockData retrieves daily closes and option legs for a ticker over the
// window. The service returns one JSON object with a stockData series and an
// optionData ledger slice; both are extracted by path because the envelope
// carries more than we consume.
func (c *Client) StockData(ticker string, window date.Range) (*StockWindow, error) {
	body, err := json.Marshal(map[string]string{
		"ticker":    ticker,
		"startDate": window.From.String(),
		"endDate":   window.To.String(),
	})
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Post(c.BaseURL+"/api/stock-data", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fetching stock data for %q: %w", ticker, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch stock data for %q: %s", ticker, resp.Status)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("decoding stock data for %q: %w", ticker, err)
	}

	sw := &StockWindow{Ticker: ticker, Window: window}
	sw.Prices, err = extractPrices(jobj)
	if err != nil {
		return nil, fmt.Errorf("extracting prices for %q: %w", ticker, err)
	}
	sw.Legs, err = extractLegs(jobj)
	if err != nil {
		return nil, fmt.Errorf("extracting option legs for %q: %w", ticker, err)
	}
	return sw, nil
}

func extractPrices(jobj any) ([]PricePoint, error) {
	jval, err := jsonpath.Get("$.stockData[*]", jobj)
	if err != nil {
		return nil, err
	}
	jlist, ok := jval.([]any)
	if !ok {
		// jsonpath is never clear about whether it returns a list or a single
		// answer; a lone row still counts.
		jlist = []any{jval}
	}
	var prices []PricePoint
	for _, item := range jlist {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		day, err := priceDate(row["Datetime"])
		if err != nil {
			continue
		}
		close, err := priceClose(row["Close"])
		if err != nil {
			continue
		}
		prices = append(prices, PricePoint{Date: day, Close: close})
	}
	return prices, nil
}

// priceDate reads the Datetime column, which carries a full timestamp; only
// the date part matters here.
func priceDate(jval any) (date.Date, error) {
	s, ok := jval.(string)
	if !ok {
		return date.Date{}, fmt.Errorf("Datetime is not a string: %v", jval)
	}
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	return date.Parse(s)
}

// priceClose reads the Close column, a float that sometimes arrives as a
// string.
func priceClose(jval any) (float64, error) {
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("Close is neither a float nor a string: %v", jval)
	}
}

// extractLegs re-encodes the optionData slice of the envelope and runs it
// through the ledger decoder, so the same quirks handling applies.
func extractLegs(jobj any) ([]TransactionRecord, error) {
	jval, err := jsonpath.Get("$.optionData", jobj)
	if err != nil {
		return nil, nil // envelope without option legs, not an error
	}
	raw, err := json.Marshal(jval)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(bytes.NewReader(raw))
}
