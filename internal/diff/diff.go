// # internal/diff/diff.go
package diff

import (
	"bundlelens/internal/analysis"

	"github.com/pmezard/go-difflib/difflib"
)

// ModuleLists renders a unified diff of the canonical module ids from
// two analyses. Both lists arrive in their contract ordering, so the
// diff is stable across runs. This compares module presence only, not
// sizes.
func ModuleLists(oldLabel, newLabel string, oldModules, newModules []*analysis.ResolvedModule) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        idLines(oldModules),
		B:        idLines(newModules),
		FromFile: oldLabel,
		ToFile:   newLabel,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}

func idLines(modules []*analysis.ResolvedModule) []string {
	lines := make([]string, 0, len(modules))
	for _, module := range modules {
		lines = append(lines, module.CanonicalID+"\n")
	}
	return lines
}
