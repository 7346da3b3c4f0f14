// # internal/diff/diff_test.go
package diff

import (
	"strings"
	"testing"

	"bundlelens/internal/analysis"
)

func modules(ids ...string) []*analysis.ResolvedModule {
	out := make([]*analysis.ResolvedModule, 0, len(ids))
	for _, id := range ids {
		out = append(out, &analysis.ResolvedModule{CanonicalID: id})
	}
	return out
}

func TestModuleLists_Identical(t *testing.T) {
	ms := modules("./src/a.js", "./src/b.js")
	out, err := ModuleLists("old.json", "new.json", ms, ms)
	if err != nil {
		t.Fatalf("ModuleLists failed: %v", err)
	}
	if out != "" {
		t.Errorf("identical lists must produce an empty diff, got:\n%s", out)
	}
}

func TestModuleLists_AddedAndRemoved(t *testing.T) {
	out, err := ModuleLists(
		"old.json", "new.json",
		modules("./src/a.js", "./src/removed.js"),
		modules("./src/a.js", "./src/added.js"),
	)
	if err != nil {
		t.Fatalf("ModuleLists failed: %v", err)
	}
	if !strings.Contains(out, "-./src/removed.js") {
		t.Errorf("diff missing removal:\n%s", out)
	}
	if !strings.Contains(out, "+./src/added.js") {
		t.Errorf("diff missing addition:\n%s", out)
	}
	if !strings.Contains(out, "--- old.json") || !strings.Contains(out, "+++ new.json") {
		t.Errorf("diff missing file labels:\n%s", out)
	}
}
