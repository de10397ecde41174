package optfolio

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"optfolio/date"
)

// contains the remote ledger service client and its JSON record codec

// naN matches bare NaN tokens that some upstream serializers leak into JSON
// payloads. They are rewritten to null before decoding; the affected field
// degrades to "" instead of failing the whole payload.
var naN = regexp.MustCompile(`\bNaN\b`)

// flexString decodes a JSON value that may arrive as a string, a number, or
// null, always landing as text. The remote service is not consistent about
// numeric columns.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// jsonRecord mirrors TransactionRecord on the wire, keyed by the export's
// column names.
type jsonRecord struct {
	ActivityDate flexString `json:"Activity Date"`
	ProcessDate  flexString `json:"Process Date"`
	SettleDate   flexString `json:"Settle Date"`
	Instrument   flexString `json:"Instrument"`
	Description  flexString `json:"Description"`
	TransCode    flexString `json:"Trans Code"`
	Quantity     flexString `json:"Quantity"`
	Price        flexString `json:"Price"`
	Amount       flexString `json:"Amount"`
}

func (j jsonRecord) record() TransactionRecord {
	return TransactionRecord{
		ActivityDate: string(j.ActivityDate),
		ProcessDate:  string(j.ProcessDate),
		SettleDate:   string(j.SettleDate),
		Instrument:   string(j.Instrument),
		Description:  string(j.Description),
		TransCode:    string(j.TransCode),
		Quantity:     string(j.Quantity),
		Price:        string(j.Price),
		Amount:       string(j.Amount),
	}
}

// DecodeRecords reads a JSON array of ledger records. It tolerates the
// service's quirks: bare NaN tokens, numeric fields serialized as numbers,
// and payloads double-encoded as a JSON string containing the array.
func DecodeRecords(r io.Reader) ([]TransactionRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = naN.ReplaceAll(raw, []byte("null"))

	// some endpoints wrap the array in a string; unwrap once
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err == nil {
			raw = []byte(inner)
		}
	}

	var rows []jsonRecord
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decoding ledger payload: %w", err)
	}
	records := make([]TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return records, nil
}

// EncodeRecords writes records as a JSON array under the export's column
// names, the same shape DecodeRecords reads.
func EncodeRecords(w io.Writer, records []TransactionRecord) error {
	rows := make([]jsonRecord, 0, len(records))
	for _, rec := range records {
		rows = append(rows, jsonRecord{
			ActivityDate: flexString(rec.ActivityDate),
			ProcessDate:  flexString(rec.ProcessDate),
			SettleDate:   flexString(rec.SettleDate),
			Instrument:   flexString(rec.Instrument),
			Description:  flexString(rec.Description),
			TransCode:    flexString(rec.TransCode),
			Quantity:     flexString(rec.Quantity),
			Price:        flexString(rec.Price),
			Amount:       flexString(rec.Amount),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Client talks to the remote ledger service.
type Client struct {
	BaseURL  string
	Username string
	Password string
	HTTP     *http.Client
}

// NewClient returns a client with a disk cache expiring daily, so repeated
// analysis runs in one day do not hammer the service.
func NewClient(baseURL, username, password string) *Client {
	httpClient := new(http.Client)
	httpClient.Transport = &diskCache{http.DefaultTransport}
	return &Client{BaseURL: baseURL, Username: username, Password: password, HTTP: httpClient}
}

// FetchRecords retrieves the ledger rows for the given date range.
func (c *Client) FetchRecords(rng date.Range) ([]TransactionRecord, error) {
	body, err := json.Marshal(map[string]string{
		"username":  c.Username,
		"password":  c.Password,
		"startDate": rng.From.String(),
		"endDate":   rng.To.String(),
	})
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Post(c.BaseURL+"/api/fetch-data", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fetching ledger %s: %w", rng, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch ledger %s: %s", rng, resp.Status)
	}
	return DecodeRecords(resp.Body)
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the key includes today's date, so the local tmp expires every day.
	// POST bodies are part of the key; two different queries must not collide.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		key += " " + strconv.Itoa(len(body)) + fmt.Sprintf(" %x", sha1.Sum(body))
	}
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}
