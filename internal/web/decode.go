// internal/web/decode.go
//
// Request-body decoding with declarative validation.
//
// Context
// -------
// Create payloads are typed DTO structs carrying `validate` tags
// (go-playground/validator), the same library the config loader uses.
// DecodeJSON unmarshals the body and runs the validator; failures come back
// as fault.Validation errors that name the offending fields, so handlers
// return 400 before touching any store.
package web

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/keepsake/internal/fault"
)

var validate = validator.New()

func init() {
	// Report errors under the JSON name clients actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// DecodeJSON unmarshals the request body into dst and validates it.
func DecodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fault.Validationf("request body is not valid JSON")
	}
	return Validate(dst)
}

// Validate runs struct validation on dst and converts the result into a
// fault.Validation error listing the missing or malformed fields.
func Validate(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fault.Validationf("invalid request body")
	}

	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	if len(names) == 1 {
		return fault.Validationf("%s is required", names[0])
	}
	return fault.Validationf("missing required fields: %s", strings.Join(names, ", "))
}
