package optfolio

import (
	"strings"
	"testing"
)

func TestReadLedger(t *testing.T) {
	in := `Activity Date,Process Date,Settle Date,Instrument,Description,Trans Code,Quantity,Price,Amount
1/2/2024,1/2/2024,1/4/2024,AAPL,AAPL 01/19/2024 Call $150,BTO,1,$5.00,"($500.00)"
1/10/2024,1/10/2024,1/12/2024,AAPL,AAPL 01/19/2024 Call $150,STC,1,$6.50,"$650.00"
`
	records, err := ReadLedger(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLedger: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	want := TransactionRecord{
		ActivityDate: "1/2/2024",
		ProcessDate:  "1/2/2024",
		SettleDate:   "1/4/2024",
		Instrument:   "AAPL",
		Description:  "AAPL 01/19/2024 Call $150",
		TransCode:    "BTO",
		Quantity:     "1",
		Price:        "$5.00",
		Amount:       "($500.00)",
	}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}
}

// Columns are mapped by header name, not position.
func TestReadLedger_ReorderedColumns(t *testing.T) {
	in := `Amount,Instrument,Activity Date,Trans Code,Description,Quantity
"($500.00)",AAPL,1/2/2024,BTO,AAPL 01/19/2024 Call $150,1
`
	records, err := ReadLedger(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLedger: %v", err)
	}
	r := records[0]
	if r.Amount != "($500.00)" || r.Instrument != "AAPL" || r.TransCode != "BTO" {
		t.Errorf("record = %+v", r)
	}
	if r.ProcessDate != "" || r.SettleDate != "" {
		t.Errorf("absent columns should read as empty, got %+v", r)
	}
}

// Rows shorter than the header yield "" for trailing columns.
func TestReadLedger_ShortRow(t *testing.T) {
	in := `Activity Date,Instrument,Description,Trans Code,Quantity,Amount
1/2/2024,AAPL,AAPL 01/19/2024 Call $150
`
	records, err := ReadLedger(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLedger: %v", err)
	}
	r := records[0]
	if r.Description != "AAPL 01/19/2024 Call $150" {
		t.Errorf("Description = %q", r.Description)
	}
	if r.TransCode != "" || r.Quantity != "" || r.Amount != "" {
		t.Errorf("missing cells should read as empty, got %+v", r)
	}
}

func TestReadLedger_Empty(t *testing.T) {
	if _, err := ReadLedger(strings.NewReader("")); err == nil {
		t.Error("expected an error on an empty ledger")
	}
}
