package ports

import (
	"context"
	"net/url"
)

// Result status values returned by the Payone Server API
const (
	StatusApproved = "APPROVED"
	StatusRedirect = "REDIRECT"
	StatusPending  = "PENDING"
	StatusError    = "ERROR"
)

// Transport delivers a form-encoded request body to the gateway and returns
// the raw response text. Implementations must negotiate TLS 1.2 or better.
// Returns error if:
//   - Network communication fails
//   - The gateway answers with a non-2xx HTTP status
type Transport interface {
	Post(ctx context.Context, endpoint string, body url.Values) (string, error)
}

// ResponseBuilder turns the merged request/response mapping into a typed result
type ResponseBuilder interface {
	Build(data map[string]string) (*Result, error)
}

// Result is the typed outcome of a Server API call
// Based on Payone Server API - response parameters (status, txid, userid, errorcode, ...)
type Result struct {
	Status          string // APPROVED, REDIRECT, PENDING, ERROR
	TransactionID   string // txid: Payone transaction ID
	UserID          string // userid: Payone debtor ID
	Reference       string // echo of our reference
	RedirectURL     string // set when Status is REDIRECT (3-D Secure)
	ErrorCode       string
	ErrorMessage    string // merchant-facing message
	CustomerMessage string // message that may be shown to the customer

	// Data is the request mapping overlaid with every parsed response line
	Data map[string]string
}

// IsSuccessful reports whether the gateway accepted the transaction
func (r *Result) IsSuccessful() bool {
	return r.Status == StatusApproved || r.Status == StatusPending
}

// IsRedirect reports whether the customer must be sent to RedirectURL
func (r *Result) IsRedirect() bool {
	return r.Status == StatusRedirect && r.RedirectURL != ""
}
