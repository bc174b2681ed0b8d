package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"subscriber-desk/core/errs"

	"golang.org/x/sync/singleflight"
)

// tokenValidity is how long an issued API token stays usable. The
// provider invalidates tokens after roughly fifteen minutes; refreshing
// at twelve keeps a safety margin.
const tokenValidity = 12 * time.Minute

const userAgent = "subscriber-desk/1.0"

// rangeShape names the from/to parameters of one request shape. The
// provider's accepted parameter convention is not reliably documented,
// so the client tries each shape in order until one answers with data.
type rangeShape struct {
	From, To string
}

// rangeShapes is the negotiation order. New conventions are added here,
// not in control flow.
var rangeShapes = []rangeShape{
	{From: "ID_Desde", To: "ID_Hasta"},
	{From: "Id_Desde", To: "Id_Hasta"},
	{From: "IDDesde", To: "IDHasta"},
	{From: "Desde", To: "Hasta"},
}

// recordListKeys are the envelope keys under which the provider has
// been observed to nest its record list.
var recordListKeys = []string{"abonados", "Abonados", "data", "Data", "rows", "items", "result"}

// Client is the transport-level client for the provisioning API: it
// authenticates, caches the token, and performs the multi-shape record
// range query. Record interpretation beyond envelope unwrapping is the
// caller's concern.
type Client struct {
	cfg  Config
	http *http.Client

	mu      sync.Mutex
	token   string
	tokenAt time.Time
	tokenSF singleflight.Group
	now     func() time.Time
}

// New creates a provisioning API client.
func New(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 20
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(timeout * float64(time.Second))},
		now:  time.Now,
	}
}

// Token returns a valid API token, reusing the cached one while it is
// younger than its validity window. Concurrent refreshes collapse into
// a single authenticate call.
func (c *Client) Token(ctx context.Context) (string, error) {
	if c.cfg.URL == "" || c.cfg.User == "" || c.cfg.Pass == "" {
		return "", errs.Configf("upstream: url/user/pass not configured")
	}

	c.mu.Lock()
	if c.token != "" && c.now().Sub(c.tokenAt) < tokenValidity {
		tok := c.token
		c.mu.Unlock()
		return tok, nil
	}
	c.mu.Unlock()

	tok, err, _ := c.tokenSF.Do("token", func() (any, error) {
		// Re-check: another caller may have refreshed while we queued.
		c.mu.Lock()
		if c.token != "" && c.now().Sub(c.tokenAt) < tokenValidity {
			tok := c.token
			c.mu.Unlock()
			return tok, nil
		}
		c.mu.Unlock()

		token, err := c.authenticate(ctx)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		c.token = token
		c.tokenAt = c.now()
		c.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return tok.(string), nil
}

func (c *Client) authenticate(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("action", "autentificar")
	q.Set("api_user", c.cfg.User)
	q.Set("api_pass", c.cfg.Pass)
	q.Set("JSON", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("upstream: building auth request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.UpstreamWrap(err, "upstream: authenticate call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.Upstreamf("upstream: authenticate returned status %d", resp.StatusCode)
	}

	payload, err := decodeBody(resp.Body)
	if err != nil {
		return "", errs.UpstreamWrap(err, "upstream: decoding auth response")
	}

	token := ""
	if m, ok := payload.(map[string]any); ok {
		token, _ = m["token"].(string)
	}
	if token == "" {
		return "", errs.Upstreamf("upstream: provider returned an empty token")
	}
	return token, nil
}

// InvalidateToken drops the cached token, forcing the next call to
// re-authenticate.
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenAt = time.Time{}
	c.mu.Unlock()
}

// QueryRange asks for the records in the inclusive identifier range
// [id, id], negotiating request shapes and transport variants until one
// yields records. It returns the flattened record maps of the first
// usable payload, or nil when every shape came back empty.
//
// A payload whose "code" field is present but neither "200" nor "OK" is
// treated as empty and the next shape is tried.
func (c *Client) QueryRange(ctx context.Context, token string, id int) ([]map[string]any, error) {
	if c.cfg.URL == "" {
		return nil, errs.Configf("upstream: url not configured")
	}

	for _, shape := range rangeShapes {
		payload := map[string]any{
			"token":    token,
			shape.From: id,
			shape.To:   id,
		}
		data := c.tryVariants(ctx, payload)
		if data == nil {
			continue
		}
		if m, ok := data.(map[string]any); ok {
			if code, present := m["code"]; present {
				s := fmt.Sprintf("%v", code)
				if s != "200" && s != "OK" {
					continue
				}
			}
		}
		if records := collectRecords(data); len(records) > 0 {
			return records, nil
		}
	}
	return nil, nil
}

// tryVariants sends the payload as POST-JSON, POST-form, and GET-query
// in that order, returning the decoded body of the first 200 response.
// Transport errors just move negotiation to the next variant.
func (c *Client) tryVariants(ctx context.Context, payload map[string]any) any {
	base := url.Values{}
	base.Set("action", "Consulta_Masiva_Datos")
	base.Set("JSON", "1")

	type variant func() (*http.Request, error)
	variants := []variant{
		func() (*http.Request, error) {
			body, err := json.Marshal(payload)
			if err != nil {
				return nil, err
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"?"+base.Encode(), bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")
			return req, nil
		},
		func() (*http.Request, error) {
			form := url.Values{}
			for k, v := range payload {
				form.Set(k, fmt.Sprintf("%v", v))
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"?"+base.Encode(), strings.NewReader(form.Encode()))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return req, nil
		},
		func() (*http.Request, error) {
			q := url.Values{}
			for k, v := range base {
				q[k] = v
			}
			for k, v := range payload {
				q.Set(k, fmt.Sprintf("%v", v))
			}
			return http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+q.Encode(), nil)
		},
	}

	for _, build := range variants {
		req, err := build()
		if err != nil {
			continue
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			continue
		}
		data, err := decodeBody(resp.Body)
		resp.Body.Close()
		if err != nil {
			continue
		}
		return data
	}
	return nil
}

// decodeBody decodes a JSON response, tolerating a UTF-8 BOM and an
// entirely blank body.
func decodeBody(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// collectRecords flattens the provider's response envelope into record
// maps. The provider answers either with a bare list, with a dict
// nesting the list under one of several known keys, or with a single
// record dict identified by its scalar values.
func collectRecords(data any) []map[string]any {
	var records []map[string]any

	switch v := data.(type) {
	case []any:
		for _, item := range v {
			if rec, ok := item.(map[string]any); ok {
				records = append(records, rec)
			}
		}
	case map[string]any:
		for _, key := range recordListKeys {
			arr, ok := v[key].([]any)
			if !ok {
				continue
			}
			for _, item := range arr {
				if rec, ok := item.(map[string]any); ok {
					records = append(records, rec)
				}
			}
		}
		for _, val := range v {
			switch val.(type) {
			case string, float64, bool:
				return append(records, v)
			}
		}
	}
	return records
}
