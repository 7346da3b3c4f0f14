// # internal/report/renderer_test.go
package report

import (
	"encoding/json"
	"strings"
	"testing"

	"bundlelens/internal/analysis"
	"bundlelens/internal/errors"
)

func sampleData() *analysis.ReportData {
	return &analysis.ReportData{
		Summary: analysis.Summary{
			Modules:           2,
			Assets:            2,
			DependencyModules: 1,
			SyntheticModules:  1,
			TotalModuleSize:   660,
			Warnings:          1,
		},
		Assets: []analysis.AssetReport{
			{
				Name:       "main.js",
				Size:       1200,
				ModuleSize: 500,
				Chunks:     []string{"0"},
				Modules: []analysis.ModuleReport{
					{
						Identifier:        "/root/node_modules/lodash/index.js",
						BaseName:          "lodash/index.js",
						Size:              500,
						Chunks:            []string{"0"},
						DependencyPackage: true,
					},
				},
			},
			{Name: "vendor.js", Size: 80, Chunks: []string{"7"}},
		},
		Modules: []analysis.ModuleReport{
			{Identifier: "/root/node_modules/lodash/index.js", BaseName: "lodash/index.js", Size: 500, Chunks: []string{"0"}, DependencyPackage: true},
			{Identifier: "./locale sync /es/", Size: 160, Chunks: []string{"1"}, Synthetic: true},
		},
		Warnings: []string{"identifier and name disagree for ./x.js"},
	}
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"json", "text", "tsv", "JSON", " text "} {
		r, err := ForFormat(format)
		if err != nil {
			t.Errorf("ForFormat(%q) failed: %v", format, err)
			continue
		}
		if r == nil {
			t.Errorf("ForFormat(%q) returned nil renderer", format)
		}
	}

	_, err := ForFormat("yaml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !errors.IsCode(err, errors.CodeNotSupported) {
		t.Errorf("expected CodeNotSupported, got %v", err)
	}
}

func TestJSONRenderer_RoundTrips(t *testing.T) {
	out, err := Render(NewJSONRenderer(), sampleData())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var decoded analysis.ReportData
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Summary.Modules != 2 || len(decoded.Assets) != 2 {
		t.Errorf("decoded report lost data: %+v", decoded.Summary)
	}
}

func TestTSVRenderer_EmptyGroupRow(t *testing.T) {
	out, err := Render(NewTSVRenderer(), sampleData())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Asset\tModule") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(out, "vendor.js\t\t\t80\t7") {
		t.Errorf("empty asset group must still emit a row:\n%s", out)
	}
	if !strings.Contains(out, "lodash/index.js") {
		t.Errorf("module row missing:\n%s", out)
	}
}

func TestTSVRenderer_ModulesView(t *testing.T) {
	out, err := NewTSVRenderer().RenderModules(sampleData())
	if err != nil {
		t.Fatalf("RenderModules failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 module rows, got %d", len(lines))
	}
	if !strings.Contains(out, "./locale sync /es/\t\t160\t1\tfalse\ttrue") {
		t.Errorf("synthetic module row malformed:\n%s", out)
	}
}

func TestTextRenderer_Sections(t *testing.T) {
	out, err := Render(NewTextRenderer(), sampleData())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"Bundle Report",
		"Modules: 2 (1 from dependency packages, 1 synthetic)",
		"Script assets: 2",
		"main.js",
		"vendor.js",
		"lodash/index.js",
		"1 resolution warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KiB"},
		{3 * 1024 * 1024, "3.00 MiB"},
	}
	for _, tc := range cases {
		if got := formatSize(tc.size); got != tc.want {
			t.Errorf("formatSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
