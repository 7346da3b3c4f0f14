// # internal/report/json.go
package report

import (
	"encoding/json"

	"bundlelens/internal/analysis"
)

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Format() string { return "json" }

func (r *JSONRenderer) Render(data *analysis.ReportData) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
