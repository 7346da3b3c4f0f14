// # internal/analysis/session_test.go
package analysis

import (
	"context"
	"testing"
)

const endToEndFixture = `{
	"modules": [
		{"identifier": "/root/node_modules/lodash/index.js", "name": "./node_modules/lodash/index.js", "size": 500, "source": "module.exports = {}", "chunks": [0]},
		{"identifier": "./locale sync /es/", "name": "./locale sync /es/", "size": 160, "chunks": [1]}
	],
	"assets": [
		{"name": "main.js", "chunks": [0], "size": 1200},
		{"name": "main.css", "chunks": [0], "size": 300}
	]
}`

func TestSession_EndToEnd(t *testing.T) {
	session := NewSession(mustDecode(t, endToEndFixture), nil)

	data, err := session.Data(context.Background())
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	if data.Summary.Modules != 2 {
		t.Errorf("expected 2 modules in summary, got %d", data.Summary.Modules)
	}
	if data.Summary.Assets != 1 {
		t.Errorf("expected 1 script asset, got %d", data.Summary.Assets)
	}
	if data.Summary.DependencyModules != 1 {
		t.Errorf("expected 1 dependency module, got %d", data.Summary.DependencyModules)
	}
	if data.Summary.SyntheticModules != 1 {
		t.Errorf("expected 1 synthetic module, got %d", data.Summary.SyntheticModules)
	}
	if data.Summary.TotalModuleSize != 660 {
		t.Errorf("expected total module size 660, got %d", data.Summary.TotalModuleSize)
	}

	asset := data.Assets[0]
	if asset.Name != "main.js" {
		t.Fatalf("expected main.js, got %q", asset.Name)
	}
	if len(asset.Modules) != 1 {
		t.Fatalf("expected only the chunk-0 module in main.js, got %d", len(asset.Modules))
	}
	if asset.Modules[0].BaseName != "lodash/index.js" {
		t.Errorf("expected lodash/index.js base name, got %q", asset.Modules[0].BaseName)
	}
	if asset.ModuleSize != 500 {
		t.Errorf("expected module size 500, got %d", asset.ModuleSize)
	}
}

func TestSession_MemoizesViews(t *testing.T) {
	session := NewSession(mustDecode(t, endToEndFixture), nil)

	first, err := session.Modules()
	if err != nil {
		t.Fatalf("Modules failed: %v", err)
	}
	second, err := session.Modules()
	if err != nil {
		t.Fatalf("Modules failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatal("repeated calls returned different lengths")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("repeated Modules calls must return the same underlying values")
		}
	}

	groupsA, err := session.Assets()
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}
	groupsB, err := session.Assets()
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}
	if len(groupsA) != len(groupsB) || groupsA[0] != groupsB[0] {
		t.Fatal("repeated Assets calls must return the same groups")
	}

	dataA, err := session.Data(context.Background())
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	dataB, err := session.Data(context.Background())
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if dataA != dataB {
		t.Fatal("repeated Data calls must return the cached pointer")
	}
}

func TestSession_DataReplaysError(t *testing.T) {
	session := NewSession(mustDecode(t, `{
		"modules": [{"chunks": [0]}],
		"assets": []
	}`), nil)

	_, errA := session.Data(context.Background())
	if errA == nil {
		t.Fatal("expected shape error")
	}
	_, errB := session.Data(context.Background())
	if errB == nil {
		t.Fatal("expected replayed shape error")
	}
}

func TestSession_DataHonorsContext(t *testing.T) {
	session := NewSession(mustDecode(t, endToEndFixture), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := session.Data(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestSession_AssetByName(t *testing.T) {
	session := NewSession(mustDecode(t, endToEndFixture), nil)

	group, ok := session.AssetByName("main.js")
	if !ok {
		t.Fatal("expected main.js group")
	}
	if group.Asset.Size != 1200 {
		t.Errorf("expected asset size 1200, got %d", group.Asset.Size)
	}
	if _, ok := session.AssetByName("main.css"); ok {
		t.Error("non-script asset must not be resolvable")
	}
}

func TestSession_UniqueIDs(t *testing.T) {
	a := NewSession(mustDecode(t, endToEndFixture), nil)
	b := NewSession(mustDecode(t, endToEndFixture), nil)
	if a.ID == b.ID {
		t.Error("sessions over the same document must still get distinct ids")
	}
}
