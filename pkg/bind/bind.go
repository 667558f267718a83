// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ashrith-07/campus-bites-sub000/config"
	"github.com/ashrith-07/campus-bites-sub000/pkg/validate"
)

const defaultBodyLimit = 4 << 20

func bodyLimit() int64 {
	raw := config.Get("MAX_BODY_BYTES", "")
	if raw == "" {
		return defaultBodyLimit
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}

// JSON reads the request body into dest and validates it. A non-nil
// error means the body itself was unusable (malformed JSON, over the
// MAX_BODY_BYTES cap); a non-empty errs map means the JSON was fine but
// failed field validation.
func JSON(r *http.Request, dest any) (map[string]string, error) {
	limited := http.MaxBytesReader(nil, r.Body, bodyLimit())
	defer limited.Close()

	if err := json.NewDecoder(limited).Decode(dest); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", tooBig.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
