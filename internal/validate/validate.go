// # internal/validate/validate.go
package validate

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"bundlelens/internal/observability"

	"github.com/getkin/kin-openapi/openapi3"
)

// Error aggregates every structural violation found in one pass. The
// document is rejected as a whole; no partial processing follows a
// failed validation.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	if len(e.Violations) == 1 {
		return "stats document invalid: " + e.Violations[0]
	}
	return fmt.Sprintf("stats document invalid (%d violations):\n  - %s",
		len(e.Violations), strings.Join(e.Violations, "\n  - "))
}

// Document checks raw stats JSON against the structural contract. It
// returns nil or a single *Error carrying all field-level violations,
// not just the first.
func Document(data []byte) error {
	start := time.Now()
	defer func() {
		observability.ValidateDuration.Observe(time.Since(start).Seconds())
	}()

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &Error{Violations: []string{fmt.Sprintf("document is not valid JSON: %v", err)}}
	}

	err := documentSchema.VisitJSON(raw, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	violations := collectViolations(err, nil)
	if len(violations) == 0 {
		violations = []string{err.Error()}
	}
	return &Error{Violations: violations}
}

func collectViolations(err error, out []string) []string {
	var multi openapi3.MultiError
	if stderrors.As(err, &multi) {
		for _, sub := range multi {
			out = collectViolations(sub, out)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if stderrors.As(err, &schemaErr) {
		pointer := strings.Join(schemaErr.JSONPointer(), "/")
		if pointer == "" {
			pointer = "document"
		}
		return append(out, fmt.Sprintf("%s: %s", pointer, schemaErr.Reason))
	}

	return append(out, err.Error())
}
