package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"detail verbatim", &HTTPError{StatusCode: 403, Body: []byte(`{"detail":"You do not have permission to perform this action."}`)}, "You do not have permission to perform this action."},
		{"detail wins over other keys", &HTTPError{StatusCode: 400, Body: []byte(`{"code":"x","detail":"Bad"}`)}, "Bad"},
		{"detail list", &HTTPError{StatusCode: 400, Body: []byte(`{"detail":["a","b"],"code":"x"}`)}, `["a","b"]`},
		{"detail object", &HTTPError{StatusCode: 400, Body: []byte(`{"detail":{"reason": "locked"}}`)}, `{"reason":"locked"}`},
		{"null detail", &HTTPError{StatusCode: 400, Body: []byte(`{"detail":null,"email":["taken"]}`)}, `{"detail":null,"email":["taken"]}`},
		{"empty detail", &HTTPError{StatusCode: 400, Body: []byte(`{"detail":""}`)}, ""},
		{"field errors serialized", &HTTPError{StatusCode: 400, Body: []byte("{\n  \"email\": [\"Enter a valid email address.\"]\n}")}, `{"email":["Enter a valid email address."]}`},
		{"key order kept", &HTTPError{StatusCode: 400, Body: []byte(`{"b":1,"a":2}`)}, `{"b":1,"a":2}`},
		{"array body", &HTTPError{StatusCode: 400, Body: []byte(`["nope"]`)}, `["nope"]`},
		{"html body", &HTTPError{StatusCode: 502, Body: []byte("<html>Bad Gateway</html>")}, "HTTP 502: <html>Bad Gateway</html>"},
		{"empty body", &HTTPError{StatusCode: 500}, "HTTP 500: Internal Server Error"},
		{"wrapped http error", fmt.Errorf("client.ListEmployees: %w", &HTTPError{StatusCode: 404, Body: []byte(`{"detail":"Not found."}`)}), "Not found."},
		{"transient wraps http", &TransientError{Err: &HTTPError{StatusCode: 503, Body: []byte(`{"detail":"busy"}`)}}, "busy"},
		{"missing token", fmt.Errorf("client.Profile: %w", ErrMissingToken), ErrMissingToken.Error()},
		{"validation", fmt.Errorf("service: %w", domain.ValidateLeaveRequest(domain.NewLeaveRequest{})), domain.MsgDatesRequired},
		{"transport", fmt.Errorf("client.ListLeaveRequests: %w", &TransientError{Err: errors.New("do request: dial tcp: connection refused")}), "do request: dial tcp: connection refused"},
		{"unknown", errors.New("something odd"), "something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.err))
		})
	}
}
