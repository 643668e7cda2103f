package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// httpDoer lets tests stub the transport without a live endpoint.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a minimal query-string client for Etherscan-compatible explorer
// APIs. One request per call: pagination, retries and rate limiting are
// intentionally out of scope here.
type Client struct {
	baseURL string
	apiKey  string
	hc      httpDoer
}

// New constructs a Client for the given base URL (e.g. the public
// https://api.etherscan.io/api or a mock server in tests). A nil http.Client
// gets a 30s timeout so a stalled explorer cannot hang a run forever.
func New(baseURL, apiKey string, client *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("empty base URL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, hc: client}, nil
}

// apiResponse is the envelope every endpoint shares. Result stays raw: its
// shape depends on the action, and error replies put a plain string there.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (c *Client) get(ctx context.Context, op string, params url.Values) (*apiResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("etherscan %s: parse base URL: %w", op, err)
	}
	params.Set("apikey", c.apiKey)
	u.RawQuery = params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("etherscan %s: %w", op, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("etherscan %s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("etherscan %s: read body: %w", op, err)
	}
	if resp.StatusCode/100 != 2 {
		snippet := string(body)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Body: snippet}
	}
	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return &out, nil
}

const noTransactionsFound = "No transactions found"

// AccountTransactions lists normal transactions for address, newest first,
// across the full block range. The explorer caps a single reply at its page
// size (10k records on the public API); history beyond the cap is dropped.
func (c *Client) AccountTransactions(ctx context.Context, address string) ([]Transaction, error) {
	q := url.Values{}
	q.Set("module", "account")
	q.Set("action", "txlist")
	q.Set("address", address)
	q.Set("startblock", "0")
	q.Set("endblock", "99999999")
	q.Set("sort", "desc")
	resp, err := c.get(ctx, "txlist", q)
	if err != nil {
		return nil, err
	}
	if resp.Status != "1" {
		// An empty history is a normal outcome, not a failure.
		if strings.EqualFold(strings.TrimSpace(resp.Message), noTransactionsFound) {
			return nil, nil
		}
		return nil, &APIError{Op: "txlist", Message: resp.Message, Result: rawString(resp.Result)}
	}
	var txs []Transaction
	if err := json.Unmarshal(resp.Result, &txs); err != nil {
		return nil, &ParseError{Op: "txlist", Err: err}
	}
	return txs, nil
}

// ContractSource fetches verification metadata for a single contract.
// Returns ErrNoResult when the explorer has no record for the address.
func (c *Client) ContractSource(ctx context.Context, address string) (ContractInfo, error) {
	q := url.Values{}
	q.Set("module", "contract")
	q.Set("action", "getsourcecode")
	q.Set("address", address)
	resp, err := c.get(ctx, "getsourcecode", q)
	if err != nil {
		return ContractInfo{}, err
	}
	if resp.Status != "1" {
		return ContractInfo{}, &APIError{Op: "getsourcecode", Message: resp.Message, Result: rawString(resp.Result)}
	}
	var infos []ContractInfo
	if err := json.Unmarshal(resp.Result, &infos); err != nil {
		return ContractInfo{}, &ParseError{Op: "getsourcecode", Err: err}
	}
	if len(infos) == 0 {
		return ContractInfo{}, fmt.Errorf("%w: %s", ErrNoResult, address)
	}
	return infos[0], nil
}
