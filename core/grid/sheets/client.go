package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subscriber-desk/core/errs"
	"subscriber-desk/core/grid"
)

// Client talks to a Google-Sheets-style REST API. Only the handful of
// calls the roster needs are implemented: read values, write one cell,
// and clear the highlight formatting of a row span.
type Client struct {
	cfg  grid.Config
	http *http.Client
}

// New creates a sheets-backed grid source.
func New(cfg grid.Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.SpreadsheetID == "" {
		return nil, errs.Configf("grid: sheets backend requires endpoint and spreadsheet_id")
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

// rangeRef builds an A1 range, prefixed with the worksheet title when
// one is configured.
func (c *Client) rangeRef(a1 string) string {
	if c.cfg.SheetName == "" {
		return a1
	}
	return "'" + c.cfg.SheetName + "'!" + a1
}

func (c *Client) valuesURL(a1 string, query url.Values) string {
	u := strings.TrimRight(c.cfg.Endpoint, "/") +
		"/v4/spreadsheets/" + url.PathEscape(c.cfg.SpreadsheetID) +
		"/values/" + url.PathEscape(c.rangeRef(a1))
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.UpstreamWrap(err, "grid: sheets call failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.UpstreamWrap(err, "grid: reading sheets response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Upstreamf("grid: sheets returned status %d", resp.StatusCode)
	}
	return body, nil
}

type valueRange struct {
	Values [][]string `json:"values"`
}

// Values returns the full grid as strings.
func (c *Client) Values(ctx context.Context) ([][]string, error) {
	q := url.Values{}
	q.Set("majorDimension", "ROWS")
	q.Set("valueRenderOption", "FORMATTED_VALUE")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.valuesURL("A1:ZZ", q), nil)
	if err != nil {
		return nil, fmt.Errorf("grid: building values request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var vr valueRange
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, errs.UpstreamWrap(err, "grid: decoding values response")
	}
	return vr.Values, nil
}

// ColumnValues returns a single column top to bottom.
func (c *Client) ColumnValues(ctx context.Context, col int) ([]string, error) {
	letter := grid.ColumnLetter(col)
	q := url.Values{}
	q.Set("majorDimension", "COLUMNS")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.valuesURL(letter+"1:"+letter, q), nil)
	if err != nil {
		return nil, fmt.Errorf("grid: building column request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var vr valueRange
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, errs.UpstreamWrap(err, "grid: decoding column response")
	}
	if len(vr.Values) == 0 {
		return nil, nil
	}
	return vr.Values[0], nil
}

// UpdateCell writes a single cell as a raw value.
func (c *Client) UpdateCell(ctx context.Context, row, col int, value string) error {
	a1 := fmt.Sprintf("%s%d", grid.ColumnLetter(col), row)
	q := url.Values{}
	q.Set("valueInputOption", "RAW")

	payload, err := json.Marshal(valueRange{Values: [][]string{{value}}})
	if err != nil {
		return fmt.Errorf("grid: encoding cell update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.valuesURL(a1, q), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("grid: building cell update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

// ClearRowFormat resets the text formatting of [fromCol, toCol] on a
// row, removing any highlight an operator left behind.
func (c *Client) ClearRowFormat(ctx context.Context, row, fromCol, toCol int) error {
	body := map[string]any{
		"requests": []any{
			map[string]any{
				"repeatCell": map[string]any{
					"range": map[string]any{
						"sheetId":          c.cfg.SheetID,
						"startRowIndex":    row - 1,
						"endRowIndex":      row,
						"startColumnIndex": fromCol - 1,
						"endColumnIndex":   toCol,
					},
					"cell": map[string]any{
						"userEnteredFormat": map[string]any{
							"textFormat": map[string]any{
								"foregroundColor": map[string]any{"red": 0, "green": 0, "blue": 0},
							},
						},
					},
					"fields": "userEnteredFormat.textFormat.foregroundColor",
				},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("grid: encoding format request: %w", err)
	}

	u := strings.TrimRight(c.cfg.Endpoint, "/") +
		"/v4/spreadsheets/" + url.PathEscape(c.cfg.SpreadsheetID) + ":batchUpdate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("grid: building format request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}
