// Package respond writes API responses: cached documents with validators
// and the {"error":{...}} envelope every failure uses.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Error codes.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeStoreError  = "STORE_ERROR"
	CodeEncodeError = "ENCODE_ERROR"
	CodeRateLimited = "RATE_LIMITED"
)

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a machine-readable code and a message for people.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Document writes an encoded document. Documents only change on a rebuild,
// which may happen at any time, so clients must revalidate once maxAge
// passes.
func Document(w http.ResponseWriter, data []byte, etag string, maxAge time.Duration, cacheHit bool) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("ETag", etag)
	h.Set("Vary", "Accept-Encoding")
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d, must-revalidate", int(maxAge.Seconds())))
	if cacheHit {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// NotModified answers a conditional request whose validator matched.
func NotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// NotFound reports a missing document, e.g. "Match 123 not found".
func NotFound(w http.ResponseWriter, kind, id string) {
	Error(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s %s not found", kind, id))
}

// Error writes the error envelope. Errors are never cached.
func Error(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// Status writes an uncached JSON value. Used for health checks.
func Status(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
