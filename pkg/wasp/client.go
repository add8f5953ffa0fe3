// Package wasp is an HTTP client for the REST API of a wasp node.
package wasp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/log"
)

// maxErrorBody caps how much of an error response is kept in a StatusError.
const maxErrorBody = 4 << 10

// Client talks to one wasp node. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	lg      log.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 30s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(lg log.Logger) Option {
	return func(c *Client) { c.lg = lg.WithName("wasp") }
}

// NewClient creates a client for the node API at apiURL. http:// is assumed
// when apiURL has no scheme.
func NewClient(apiURL string, opts ...Option) *Client {
	if !strings.HasPrefix(apiURL, "http://") && !strings.HasPrefix(apiURL, "https://") {
		apiURL = "http://" + apiURL
	}
	c := &Client{
		baseURL: strings.TrimRight(apiURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		lg:      log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

type requestBody struct {
	Request string `json:"Request"`
}

type callViewItem struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type callViewResponse struct {
	Items []callViewItem `json:"Items"`
}

// ChainRecord is one entry of the node's chain registry.
type ChainRecord struct {
	ChainID string `json:"ChainID"`
	Active  bool   `json:"Active"`
}

// CallView runs a read-only entry point of contract and returns its results.
func (c *Client) CallView(ctx context.Context, chainID codec.ChainID, contract codec.Hname, view string, args *codec.Arguments) (*codec.Results, error) {
	encoded, err := args.Encode()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/chain/%s/contract/%s/callview/%s", chainID, contract, view)
	var resp callViewResponse
	if err := c.do(ctx, http.MethodPost, path, requestBody{Request: base64.StdEncoding.EncodeToString(encoded)}, &resp); err != nil {
		return nil, err
	}

	res := codec.NewResults()
	for _, item := range resp.Items {
		key, err := base64.StdEncoding.DecodeString(item.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: view %s: result key: %w", ErrTransport, view, err)
		}
		value, err := base64.StdEncoding.DecodeString(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: view %s: result %q: %w", ErrTransport, view, key, err)
		}
		res.Put(string(key), value)
	}
	return res, nil
}

// PostOffLedgerRequest submits a signed off-ledger request.
func (c *Client) PostOffLedgerRequest(ctx context.Context, chainID codec.ChainID, signed []byte) error {
	body := requestBody{Request: base64.StdEncoding.EncodeToString(signed)}
	return c.do(ctx, http.MethodPost, "/request/"+chainID.String(), body, nil)
}

// ExecuteRequest asks the node to schedule a posted request for execution.
func (c *Client) ExecuteRequest(ctx context.Context, chainID codec.ChainID, reqID codec.RequestID) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/chain/%s/request/%s/execute", chainID, reqID), nil, nil)
}

// WaitRequest blocks until the node has processed reqID.
func (c *Client) WaitRequest(ctx context.Context, chainID codec.ChainID, reqID codec.RequestID) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/chain/%s/request/%s/wait", chainID, reqID), nil, nil)
}

// ChainRecords lists the chains known to the node.
func (c *Client) ChainRecords(ctx context.Context) ([]ChainRecord, error) {
	var records []ChainRecord
	if err := c.do(ctx, http.MethodGet, "/adm/chainrecords", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DiscoverChainID returns the ID of the first chain the node reports.
func (c *Client) DiscoverChainID(ctx context.Context) (codec.ChainID, error) {
	records, err := c.ChainRecords(ctx)
	if err != nil {
		return codec.ChainID{}, err
	}
	if len(records) == 0 {
		return codec.ChainID{}, ErrNoChain
	}
	return codec.ParseChainID(records[0].ChainID)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()
	c.lg.Debug("Node request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", ErrTransport, path, err)
	}
	return nil
}
