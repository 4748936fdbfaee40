package sheets

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/crmsheet/internal/config"
)

// fakeSheets is an in-memory stand-in for the Sheets values API. Row 0 of
// each sheet is sheet row 1.
type fakeSheets struct {
	t  *testing.T
	mu sync.Mutex

	sheets map[string][][]string
	calls  map[string]int // by method and verb, e.g. "GET", "POST:append"

	// failNext answers the next n requests with failStatus.
	failNext   int
	failStatus int
	failBody   string
}

func newFakeSheets(t *testing.T) (*fakeSheets, *Client) {
	t.Helper()
	f := &fakeSheets{t: t, sheets: map[string][][]string{}, calls: map[string]int{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		BaseURL:       srv.URL,
		SpreadsheetID: "sheet-1",
		AccessToken:   "token-1",
		MaxRetries:    3,
		RetryWaitMin:  time.Millisecond,
		RetryWaitMax:  5 * time.Millisecond,
		Timeout:       5 * time.Second,
	})
	return f, client
}

func testNames() config.SheetNames {
	return config.DefaultSheetNames()
}

func (f *fakeSheets) seed(sheet string, rows ...[]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sheets[sheet] = append(f.sheets[sheet], rows...)
}

func (f *fakeSheets) rows(sheet string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.sheets[sheet]))
	copy(out, f.sheets[sheet])
	return out
}

func (f *fakeSheets) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeSheets) failWith(n, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext, f.failStatus, f.failBody = n, status, body
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer token-1" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]any{"code": 401, "message": "bad token", "status": "UNAUTHENTICATED"}})
		return
	}

	const prefix = "/v4/spreadsheets/sheet-1/values/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	rng := strings.TrimPrefix(r.URL.Path, prefix)
	verb := ""
	for _, v := range []string{":append", ":clear"} {
		if strings.HasSuffix(rng, v) {
			rng, verb = strings.TrimSuffix(rng, v), v[1:]
		}
	}
	key := r.Method
	if verb != "" {
		key += ":" + verb
	}
	f.calls[key]++

	if f.failNext > 0 {
		f.failNext--
		w.WriteHeader(f.failStatus)
		_, _ = w.Write([]byte(f.failBody))
		return
	}

	sheet, start, end := parseA1(rng)

	switch {
	case r.Method == http.MethodGet:
		f.serveGet(w, rng, sheet, start, end)
	case r.Method == http.MethodPost && verb == "append":
		body := f.decodeValues(r)
		last := 0
		for i, row := range f.sheets[sheet] {
			if !emptyRow(row) {
				last = i + 1
			}
		}
		data := f.sheets[sheet]
		for len(data) < last {
			data = append(data, []string{})
		}
		f.sheets[sheet] = append(data[:last], body...)
		writeJSON(w, http.StatusOK, map[string]any{"spreadsheetId": "sheet-1"})
	case r.Method == http.MethodPut:
		body := f.decodeValues(r)
		for i, row := range body {
			f.setRow(sheet, start+i, row)
		}
		writeJSON(w, http.StatusOK, map[string]any{"updatedRows": len(body)})
	case r.Method == http.MethodPost && verb == "clear":
		if end == 0 {
			end = len(f.sheets[sheet])
		}
		for n := start; n <= end && n <= len(f.sheets[sheet]); n++ {
			f.sheets[sheet][n-1] = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"clearedRange": rng})
	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func (f *fakeSheets) serveGet(w http.ResponseWriter, rng, sheet string, start, end int) {
	data := f.sheets[sheet]
	if end == 0 || end > len(data) {
		end = len(data)
	}
	var values [][]string
	for n := start; n <= end; n++ {
		values = append(values, trimRow(data[n-1]))
	}
	for len(values) > 0 && len(values[len(values)-1]) == 0 {
		values = values[:len(values)-1]
	}
	resp := map[string]any{"range": rng, "majorDimension": "ROWS"}
	if len(values) > 0 {
		resp["values"] = values
	}
	writeJSON(w, http.StatusOK, resp)
}

func (f *fakeSheets) decodeValues(r *http.Request) [][]string {
	var body struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		f.t.Errorf("decoding request body: %v", err)
	}
	if r.URL.Query().Get("valueInputOption") != "USER_ENTERED" {
		f.t.Errorf("missing valueInputOption on %s", r.URL)
	}
	return body.Values
}

func (f *fakeSheets) setRow(sheet string, n int, row []string) {
	for len(f.sheets[sheet]) < n {
		f.sheets[sheet] = append(f.sheets[sheet], []string{})
	}
	f.sheets[sheet][n-1] = append([]string(nil), row...)
}

// parseA1 splits "Sheet!A2:I" into the sheet name and 1-based row bounds;
// end is 0 when the range is open.
func parseA1(rng string) (sheet string, start, end int) {
	sheet, cells, _ := strings.Cut(rng, "!")
	if strings.HasPrefix(sheet, "'") {
		sheet = strings.ReplaceAll(strings.Trim(sheet, "'"), "''", "'")
	}
	from, to, _ := strings.Cut(cells, ":")
	start = rowOf(from)
	if start == 0 {
		start = 1
	}
	return sheet, start, rowOf(to)
}

func rowOf(cell string) int {
	digits := strings.TrimLeft(cell, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	n, _ := strconv.Atoi(digits)
	return n
}

func trimRow(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

func emptyRow(row []string) bool {
	return len(trimRow(row)) == 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
