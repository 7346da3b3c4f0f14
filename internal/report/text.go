// # internal/report/text.go
package report

import (
	"fmt"
	"strings"

	"bundlelens/internal/analysis"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	assetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	depStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)
)

type TextRenderer struct{}

func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

func (r *TextRenderer) Format() string { return "text" }

func (r *TextRenderer) Render(data *analysis.ReportData) (string, error) {
	var buf strings.Builder

	buf.WriteString(titleStyle.Render("Bundle Report"))
	buf.WriteString("\n\n")
	buf.WriteString(fmt.Sprintf("Modules: %d (%d from dependency packages, %d synthetic)\n",
		data.Summary.Modules, data.Summary.DependencyModules, data.Summary.SyntheticModules))
	buf.WriteString(fmt.Sprintf("Script assets: %d\n", data.Summary.Assets))
	buf.WriteString(fmt.Sprintf("Total module size: %s\n", formatSize(data.Summary.TotalModuleSize)))

	for _, asset := range data.Assets {
		buf.WriteString("\n")
		buf.WriteString(assetStyle.Render(asset.Name))
		buf.WriteString(dimStyle.Render(fmt.Sprintf("  %s, %d modules, chunks [%s]",
			formatSize(asset.Size), len(asset.Modules), strings.Join(asset.Chunks, ", "))))
		buf.WriteString("\n")
		for _, module := range asset.Modules {
			label := module.Identifier
			if module.BaseName != "" {
				label = module.BaseName
			}
			line := fmt.Sprintf("  %s  %s", label, formatSize(module.Size))
			if module.DependencyPackage {
				line = depStyle.Render(line)
			}
			if module.Synthetic {
				line += dimStyle.Render("  (synthetic)")
			}
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}

	if len(data.Warnings) > 0 {
		buf.WriteString("\n")
		buf.WriteString(warnStyle.Render(fmt.Sprintf("%d resolution warnings", len(data.Warnings))))
		buf.WriteString("\n")
		for _, warning := range data.Warnings {
			buf.WriteString("  " + warning + "\n")
		}
	}

	return buf.String(), nil
}
