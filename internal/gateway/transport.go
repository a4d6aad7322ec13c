package gateway

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync"
)

// singleSendTransport sends each *http.Request at most once. A repeated
// send returns the failure recorded for the first attempt instead of
// reaching the network.
type singleSendTransport struct {
	base http.RoundTripper

	mu   sync.Mutex
	sent map[*http.Request]*HTTPError
}

var errAlreadySent = errors.New("request already sent, not retrying")

func newSingleSendTransport(base http.RoundTripper) *singleSendTransport {
	return &singleSendTransport{
		base: base,
		sent: make(map[*http.Request]*HTTPError),
	}
}

func (t *singleSendTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	first, seen := t.sent[req]
	if !seen {
		t.sent[req] = nil
	}
	t.mu.Unlock()
	if seen {
		if first != nil {
			return nil, first
		}
		return nil, errAlreadySent
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode < 300 {
		return resp, err
	}

	// Keep what the caller needs to report the failure if the request is retried.
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	t.mu.Lock()
	t.sent[req] = &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        req.URL.String(),
		Body:       string(body),
	}
	t.mu.Unlock()
	return resp, nil
}
