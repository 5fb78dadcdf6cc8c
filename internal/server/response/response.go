// Package response writes the {"data": ..., "error": ...} envelope returned
// by health probes and the development product API.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/dreammattress/storefront/pkg/errors"
)

// Response is the JSON envelope. Exactly one of Data and Error is set.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is the failure half of the envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// codes names each status the storefront answers with.
var codes = map[int]string{
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusMethodNotAllowed:    "METHOD_NOT_ALLOWED",
	http.StatusInternalServerError: "INTERNAL_ERROR",
	http.StatusBadGateway:          "BAD_GATEWAY",
	http.StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
}

func Success(data any) Response { return Response{Data: data} }

func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON encodes resp after writing status. Encoding errors are dropped
// since the status line is already on the wire.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

func failure(w http.ResponseWriter, status int, message, details string) {
	JSON(w, status, Fail(codes[status], message, details))
}

func BadRequest(w http.ResponseWriter, message, details string) {
	failure(w, http.StatusBadRequest, message, details)
}

func NotFound(w http.ResponseWriter, message, details string) {
	failure(w, http.StatusNotFound, message, details)
}

func MethodNotAllowed(w http.ResponseWriter, method string) {
	failure(w, http.StatusMethodNotAllowed, "Method not allowed",
		"Method "+method+" is not supported for this endpoint")
}

// InternalError answers 500. The cause never reaches the client.
func InternalError(w http.ResponseWriter, _ error) {
	failure(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
}

func ServiceUnavailable(w http.ResponseWriter, details string) {
	failure(w, http.StatusServiceUnavailable, "Service unavailable", details)
}

// StatusFor picks the status for a typed error from pkg/errors.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsValidationError(err):
		return http.StatusBadRequest
	case errors.IsBackendUnavailable(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorFromType writes err with the status StatusFor chooses. Only client
// errors echo the message.
func ErrorFromType(w http.ResponseWriter, err error) {
	switch status := StatusFor(err); status {
	case http.StatusNotFound, http.StatusBadRequest:
		failure(w, status, err.Error(), "")
	case http.StatusBadGateway:
		failure(w, status, "Product API unavailable", "")
	default:
		InternalError(w, err)
	}
}
