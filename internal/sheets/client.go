// Package sheets stores CRM records in a spreadsheet through the Google
// Sheets v4 "values" REST API. Each collection lives on its own sheet with
// a header row; records are addressed by their row position.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

// ValuesAPI is the subset of the values resource the record store needs.
type ValuesAPI interface {
	Get(ctx context.Context, rng string) ([][]string, error)
	Append(ctx context.Context, rng string, rows [][]string) error
	Update(ctx context.Context, rng string, rows [][]string) error
	Clear(ctx context.Context, rng string) error
}

// ClientConfig configures the HTTP client.
type ClientConfig struct {
	BaseURL       string
	SpreadsheetID string
	AccessToken   string

	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration

	// Logger receives retry attempts. Nil disables transport logging.
	Logger *slog.Logger
}

// Client talks to one spreadsheet. Transient failures (connection errors,
// 429 and 5xx) are retried with exponential backoff.
type Client struct {
	cfg  ClientConfig
	http *retryablehttp.Client
}

var _ ValuesAPI = (*Client)(nil)

// NewClient creates a Client for cfg.SpreadsheetID.
func NewClient(cfg ClientConfig) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	if cfg.Timeout > 0 {
		rc.HTTPClient.Timeout = cfg.Timeout
	}
	// Hand back the last response so its error body can be decoded.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	if cfg.Logger != nil {
		rc.Logger = cfg.Logger
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: rc}
}

// valuesRequest is the JSON body of update and append calls.
type valuesRequest struct {
	Range          string     `json:"range,omitempty"`
	MajorDimension string     `json:"majorDimension"`
	Values         [][]string `json:"values"`
}

// Get returns the rows of rng. Empty rows inside the range come back as
// empty slices; trailing empty rows are omitted by the API.
func (c *Client) Get(ctx context.Context, rng string) ([][]string, error) {
	body, err := c.do(ctx, http.MethodGet, c.valuesURL(rng, "", nil), nil)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rng, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("reading %s: %w", rng, ErrMalformedResponse)
	}
	values := gjson.GetBytes(body, "values")
	if !values.Exists() {
		return [][]string{}, nil
	}
	if !values.IsArray() {
		return nil, fmt.Errorf("reading %s: values is not an array: %w", rng, ErrMalformedResponse)
	}
	var rows [][]string
	for _, r := range values.Array() {
		cells := r.Array()
		row := make([]string, len(cells))
		for i, cell := range cells {
			row[i] = cell.String()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append adds rows after the last non-empty row of the table in rng.
func (c *Client) Append(ctx context.Context, rng string, rows [][]string) error {
	q := url.Values{"valueInputOption": {"USER_ENTERED"}, "insertDataOption": {"INSERT_ROWS"}}
	payload := valuesRequest{MajorDimension: "ROWS", Values: rows}
	if _, err := c.do(ctx, http.MethodPost, c.valuesURL(rng, ":append", q), payload); err != nil {
		return fmt.Errorf("appending to %s: %w", rng, err)
	}
	return nil
}

// Update overwrites rng with rows.
func (c *Client) Update(ctx context.Context, rng string, rows [][]string) error {
	q := url.Values{"valueInputOption": {"USER_ENTERED"}}
	payload := valuesRequest{Range: rng, MajorDimension: "ROWS", Values: rows}
	if _, err := c.do(ctx, http.MethodPut, c.valuesURL(rng, "", q), payload); err != nil {
		return fmt.Errorf("updating %s: %w", rng, err)
	}
	return nil
}

// Clear empties every cell in rng without shifting rows.
func (c *Client) Clear(ctx context.Context, rng string) error {
	if _, err := c.do(ctx, http.MethodPost, c.valuesURL(rng, ":clear", nil), struct{}{}); err != nil {
		return fmt.Errorf("clearing %s: %w", rng, err)
	}
	return nil
}

func (c *Client) valuesURL(rng, verb string, q url.Values) string {
	u := c.cfg.BaseURL + "/v4/spreadsheets/" + url.PathEscape(c.cfg.SpreadsheetID) +
		"/values/" + url.PathEscape(rng) + verb
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, u string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil && resp == nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("reading response: %w", readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// decodeAPIError reads the {"error": {"code", "message", "status"}}
// envelope, falling back to the raw body.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if gjson.ValidBytes(body) {
		e := gjson.GetBytes(body, "error")
		apiErr.Message = e.Get("message").String()
		apiErr.Status = e.Get("status").String()
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
