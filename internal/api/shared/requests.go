package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into v.
// A missing, oversized or malformed body is reported as a validation error on "body".
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "is required", nil)
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewValidationError("body", "is too large", nil)
		}
		return domain.NewValidationError("body", "is not valid JSON", nil)
	}
	return nil
}
