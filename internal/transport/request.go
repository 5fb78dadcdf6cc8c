package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/logging"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 4 << 10

// Success reports whether a status code is in the 2xx range.
func Success(status int) bool {
	return status >= 200 && status < 300
}

// CheckResponse closes the body and returns an APIError for non-2xx statuses.
func CheckResponse(resp *http.Response, operation string) error {
	defer closeBody(resp)

	if Success(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return statusError(resp, operation)
}

// DecodeResponse decodes a 2xx JSON response into target. Non-2xx statuses
// become an APIError carrying the body text.
func DecodeResponse(resp *http.Response, operation string, target any) error {
	defer closeBody(resp)

	if !Success(resp.StatusCode) {
		return statusError(resp, operation)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", operation+" response", err)
	}
	return nil
}

func statusError(resp *http.Response, operation string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.String()
	}
	return errors.NewAPIError(operation, endpoint, resp.StatusCode, message)
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close response body")
	}
}
