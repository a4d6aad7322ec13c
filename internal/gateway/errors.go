package gateway

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// HTTPError is returned for any non-2xx response from GitHub.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s for %s\n%s", e.Status, e.URL, e.Body)
}

// wrapHTTPError converts go-github's error types into *HTTPError, keeping
// the go-github error in the chain. Other errors are returned unchanged.
func wrapHTTPError(err error) error {
	resp := errorResponse(err)
	if resp == nil {
		return err
	}
	httpErr := &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
	if resp.Request != nil {
		httpErr.URL = resp.Request.URL.String()
	}
	// go-github puts the body back on the response after decoding it.
	if resp.Body != nil {
		if body, readErr := io.ReadAll(resp.Body); readErr == nil {
			httpErr.Body = string(body)
		}
	}
	return fmt.Errorf("%w: %w", httpErr, err)
}

func errorResponse(err error) *http.Response {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Response
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Response
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.Response
	}
	var otpErr *github.TwoFactorAuthError
	if errors.As(err, &otpErr) {
		return otpErr.Response
	}
	return nil
}
