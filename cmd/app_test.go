package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"optfolio"
	"optfolio/date"
)

func TestSliceRecords(t *testing.T) {
	records := []optfolio.TransactionRecord{
		{ActivityDate: "1/2/2024", Instrument: "AAPL"},
		{ActivityDate: "2/2/2024", Instrument: "MSFT"},
		{ActivityDate: "3/2/2024", Instrument: "TSLA"},
		{ActivityDate: "", Instrument: "UNDATED"},
	}

	all := sliceRecords(records, date.Date{}, date.Date{})
	if len(all) != 4 {
		t.Errorf("open bounds should keep everything, got %d", len(all))
	}

	got := sliceRecords(records, date.MustParse("2024-02-01"), date.MustParse("2024-02-28"))
	if len(got) != 1 || got[0].Instrument != "MSFT" {
		t.Errorf("sliceRecords = %+v", got)
	}

	from := sliceRecords(records, date.MustParse("2024-02-01"), date.Date{})
	if len(from) != 2 {
		t.Errorf("open upper bound should keep 2, got %d", len(from))
	}
}

// loadLedger dispatches on extension: .json uses the service payload decoder,
// anything else the CSV reader.
func TestLoadLedger(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "ledger.csv")
	csvContent := "Activity Date,Instrument,Description,Trans Code,Quantity,Amount\n" +
		"1/2/2024,AAPL,AAPL 01/19/2024 Call $150,BTO,1,\"($500.00)\"\n"
	if err := os.WriteFile(csvPath, []byte(csvContent), 0644); err != nil {
		t.Fatal(err)
	}

	jsonPath := filepath.Join(dir, "ledger.json")
	jsonContent := `[{"Activity Date": "1/2/2024", "Instrument": "AAPL", "Amount": "($500.00)"}]`
	if err := os.WriteFile(jsonPath, []byte(jsonContent), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{csvPath, jsonPath} {
		records, err := loadLedger(path)
		if err != nil {
			t.Fatalf("loadLedger(%s): %v", path, err)
		}
		if len(records) != 1 || records[0].Instrument != "AAPL" {
			t.Errorf("loadLedger(%s) = %+v", path, records)
		}
	}

	if _, err := loadLedger(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected an error for a missing ledger")
	}
}
