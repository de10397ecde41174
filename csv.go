package optfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadLedger parses a delimited brokerage export into records. The first row
// is the header; every later row is mapped by header name, so column order in
// the export does not matter. Rows shorter than the header yield "" for the
// missing columns. Unknown columns are ignored.
func ReadLedger(r io.Reader) ([]TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exports pad trailing columns inconsistently
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty ledger")
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var records []TransactionRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger row %d: %w", len(records)+2, err)
		}
		rec := recordFromFields(func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		})
		records = append(records, rec)
	}
	return records, nil
}
