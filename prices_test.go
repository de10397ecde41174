package optfolio

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"optfolio/date"
)

func TestClientStockData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stock-data" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{
		  "stockData": [
		    {"Datetime": "2024-03-14T00:00:00", "Close": 172.5, "Volume": 100},
		    {"Datetime": "2024-03-15", "Close": "173.25"}
		  ],
		  "optionData": [
		    {"Activity Date": "3/15/2024", "Instrument": "AAPL",
		     "Description": "AAPL 04/19/2024 Call $180", "Trans Code": "BTO",
		     "Quantity": 1, "Amount": "($250.00)"}
		  ]
		}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	sw, err := c.StockData("AAPL", date.Range{
		From: date.MustParse("2024-03-05"),
		To:   date.MustParse("2024-03-25"),
	})
	if err != nil {
		t.Fatalf("StockData: %v", err)
	}
	if len(sw.Prices) != 2 {
		t.Fatalf("Prices = %d, want 2", len(sw.Prices))
	}
	if sw.Prices[0].Date != date.MustParse("2024-03-14") || sw.Prices[0].Close != 172.5 {
		t.Errorf("Prices[0] = %+v", sw.Prices[0])
	}
	if sw.Prices[1].Close != 173.25 {
		t.Errorf("string Close should parse, got %+v", sw.Prices[1])
	}
	if len(sw.Legs) != 1 || sw.Legs[0].Instrument != "AAPL" {
		t.Errorf("Legs = %+v", sw.Legs)
	}
}

// An envelope without option legs is fine; only prices come back.
func TestClientStockData_NoLegs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"stockData": [{"Datetime": "2024-03-14", "Close": 10}]}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	sw, err := c.StockData("AAPL", date.Range{})
	if err != nil {
		t.Fatalf("StockData: %v", err)
	}
	if len(sw.Prices) != 1 || len(sw.Legs) != 0 {
		t.Errorf("prices=%d legs=%d", len(sw.Prices), len(sw.Legs))
	}
}
