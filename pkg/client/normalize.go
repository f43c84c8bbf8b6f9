package client

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

// Normalize turns a failed call into a message that can be shown as-is.
//
// A response body carrying a string "detail" field yields that string
// verbatim, and a non-string detail yields its compact JSON. Any other JSON
// body yields its compact serialization. Everything else falls
// back to the error's own message, with wrapping prefixes stripped for the
// local error kinds (missing token, validation, transport).
func Normalize(err error) string {
	if err == nil {
		return ""
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := bodyMessage(httpErr.Body); ok {
			return msg
		}
		return httpErr.Error()
	}

	if errors.Is(err, ErrMissingToken) {
		return ErrMissingToken.Error()
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}

	var transient *TransientError
	if errors.As(err, &transient) {
		return transient.Error()
	}

	return err.Error()
}

// bodyMessage extracts the display message from a structured error body.
// It reports false when the body is empty or not JSON.
func bodyMessage(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return "", false
	}

	var withDetail struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &withDetail) == nil && len(withDetail.Detail) > 0 && !isNull(withDetail.Detail) {
		var s string
		if json.Unmarshal(withDetail.Detail, &s) == nil {
			return s, true
		}
		body = withDetail.Detail
	}

	if isNull(body) {
		return "", false
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return "", false
	}
	return compact.String(), true
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
