// # internal/report/tsv.go
package report

import (
	"fmt"
	"strings"

	"bundlelens/internal/analysis"
)

type TSVRenderer struct{}

func NewTSVRenderer() *TSVRenderer { return &TSVRenderer{} }

func (r *TSVRenderer) Format() string { return "tsv" }

func (r *TSVRenderer) Render(data *analysis.ReportData) (string, error) {
	var buf strings.Builder

	buf.WriteString("Asset\tModule\tBaseName\tSize\tChunks\tDependency\tSynthetic\n")
	for _, asset := range data.Assets {
		if len(asset.Modules) == 0 {
			buf.WriteString(fmt.Sprintf("%s\t\t\t%d\t%s\t\t\n",
				asset.Name, asset.Size, strings.Join(asset.Chunks, ",")))
			continue
		}
		for _, module := range asset.Modules {
			buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%d\t%s\t%t\t%t\n",
				asset.Name,
				module.Identifier,
				module.BaseName,
				module.Size,
				strings.Join(module.Chunks, ","),
				module.DependencyPackage,
				module.Synthetic,
			))
		}
	}

	return buf.String(), nil
}

// RenderModules emits the flat module list without asset association.
func (r *TSVRenderer) RenderModules(data *analysis.ReportData) (string, error) {
	var buf strings.Builder

	buf.WriteString("Module\tBaseName\tSize\tChunks\tDependency\tSynthetic\n")
	for _, module := range data.Modules {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%d\t%s\t%t\t%t\n",
			module.Identifier,
			module.BaseName,
			module.Size,
			strings.Join(module.Chunks, ","),
			module.DependencyPackage,
			module.Synthetic,
		))
	}

	return buf.String(), nil
}
