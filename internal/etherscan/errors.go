package etherscan

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoResult signals an empty result set for a single-record lookup.
var ErrNoResult = errors.New("etherscan: no result for address")

// StatusError reports a non-2xx HTTP reply.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("etherscan %s: http %d: %s", e.Op, e.Code, e.Body)
}

// APIError reports a business-level failure: the envelope arrived intact but
// its status field marked the request as unsuccessful.
type APIError struct {
	Op      string
	Message string
	Result  string
}

func (e *APIError) Error() string {
	if e.Result != "" {
		return fmt.Sprintf("etherscan %s: %s: %s", e.Op, e.Message, e.Result)
	}
	return fmt.Sprintf("etherscan %s: %s", e.Op, e.Message)
}

// ParseError reports a malformed response body.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("etherscan %s: parse response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// rawString renders a raw result for error messages, unquoting plain strings
// (error replies put a human-readable string in the result field).
func rawString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	out := string(raw)
	if len(out) > 256 {
		out = out[:256]
	}
	return out
}
