package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

// fieldErrors is the validation body: field name to messages.
type fieldErrors map[string][]string

func (f fieldErrors) require(field, value string) {
	if value == "" {
		f[field] = append(f[field], "This field is required.")
	}
}

// validationFields converts a local validation failure into the backend's
// field error shape. A nil or foreign error yields nil.
func validationFields(err error) fieldErrors {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	out := fieldErrors{}
	for _, f := range ve.Fields {
		field := f.Field
		if field == "" {
			field = "non_field_errors"
		}
		out[field] = append(out[field], f.Message)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
