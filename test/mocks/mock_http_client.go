package mocks

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// MockHTTPClient is a mock implementation of ports.HTTPClient for testing
type MockHTTPClient struct {
	mu     sync.Mutex
	DoFunc func(req *http.Request) (*http.Response, error)
	Calls  []*http.Request
	Forms  []url.Values
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient(doFunc func(req *http.Request) (*http.Response, error)) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: doFunc,
	}
}

// NewTextResponder returns a DoFunc answering every request with body and status
func NewTextResponder(status int, body string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return TextResponse(status, body), nil
	}
}

// TextResponse builds a plain-text response as the Server API sends it
func TextResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"text/plain; charset=UTF-8"}},
	}
}

// Do captures the call and its decoded form body, then runs DoFunc
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	form := url.Values{}
	if req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(raw))
		if parsed, err := url.ParseQuery(string(raw)); err == nil {
			form = parsed
		}
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.Forms = append(m.Forms, form)
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	// Default approved response
	return TextResponse(http.StatusOK, "status=APPROVED\ntxid=100000001\nuserid=200000001\n"), nil
}

// LastForm returns the form body of the most recent call
func (m *MockHTTPClient) LastForm() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Forms) == 0 {
		return nil
	}
	return m.Forms[len(m.Forms)-1]
}

// Reset clears captured calls
func (m *MockHTTPClient) Reset() {
	m.mu.Lock()
	m.Calls = nil
	m.Forms = nil
	m.mu.Unlock()
}
