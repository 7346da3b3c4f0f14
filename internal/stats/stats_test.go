// # internal/stats/stats_test.go
package stats

import (
	"errors"
	"testing"
)

func TestDecode_ChunkIDsNumericAndString(t *testing.T) {
	doc, err := Decode([]byte(`{
		"modules": [],
		"assets": [
			{"name": "main.js", "chunks": [0, "runtime", 2], "size": 1024}
		]
	}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	got := doc.Assets[0].Chunks
	want := []ChunkID{"0", "runtime", "2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDecode_RejectsNonScalarChunkID(t *testing.T) {
	_, err := Decode([]byte(`{"modules": [], "assets": [{"name": "a.js", "chunks": [[1]], "size": 1}]}`))
	if err == nil {
		t.Fatal("expected decode error for array chunk id")
	}
}

func TestClassify_Container(t *testing.T) {
	node := RawModuleNode{Modules: []RawModuleNode{}}
	kind, err := node.Classify()
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if kind != KindContainer {
		t.Errorf("expected container, got %v", kind)
	}
}

func TestClassify_ContainerWinsOverLeafFields(t *testing.T) {
	id, name, size := "x", "x", int64(1)
	node := RawModuleNode{
		Identifier: &id,
		Name:       &name,
		Size:       &size,
		Modules:    []RawModuleNode{},
	}
	kind, err := node.Classify()
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if kind != KindContainer {
		t.Errorf("expected container priority, got %v", kind)
	}
}

func TestClassify_SourceLeaf(t *testing.T) {
	id, name, source := "./src/a.js", "./src/a.js", "export {}"
	size := int64(42)
	node := RawModuleNode{Identifier: &id, Name: &name, Size: &size, Source: &source}
	kind, err := node.Classify()
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if kind != KindSourceLeaf {
		t.Errorf("expected source leaf, got %v", kind)
	}
}

func TestClassify_SyntheticLeaf(t *testing.T) {
	id, name := "./locale sync /es/", "./locale sync /es/"
	size := int64(160)
	node := RawModuleNode{Identifier: &id, Name: &name, Size: &size}
	kind, err := node.Classify()
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if kind != KindSyntheticLeaf {
		t.Errorf("expected synthetic leaf, got %v", kind)
	}
}

func TestClassify_UnknownShape(t *testing.T) {
	name := "broken"
	node := RawModuleNode{Name: &name}
	_, err := node.Classify()
	if err == nil {
		t.Fatal("expected shape error")
	}
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
	if shapeErr.Node == nil || shapeErr.Node.Name == nil || *shapeErr.Node.Name != "broken" {
		t.Error("expected shape error to carry the offending node")
	}
}
