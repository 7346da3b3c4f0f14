// # internal/validate/schema.go
package validate

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// The structural contract for a stats document. Shape discrimination of
// individual module nodes is the flattener's job; here the boundary
// only guarantees the containers and field types it needs to start.
var documentSchema = buildDocumentSchema()

func buildDocumentSchema() *openapi3.Schema {
	chunkID := openapi3.NewOneOfSchema(
		openapi3.NewStringSchema(),
		openapi3.NewFloat64Schema(),
	)
	chunkList := openapi3.NewArraySchema().WithItems(chunkID)

	// Nested containers are re-validated structurally during
	// flattening, so sub-module entries stay generic objects here.
	moduleNode := openapi3.NewObjectSchema().
		WithProperty("identifier", openapi3.NewStringSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("size", openapi3.NewFloat64Schema()).
		WithProperty("source", openapi3.NewStringSchema()).
		WithProperty("chunks", chunkList).
		WithProperty("modules", openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema()))

	asset := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("size", openapi3.NewFloat64Schema()).
		WithProperty("chunks", chunkList)
	asset.Required = []string{"name", "chunks"}

	doc := openapi3.NewObjectSchema().
		WithProperty("modules", openapi3.NewArraySchema().WithItems(moduleNode)).
		WithProperty("assets", openapi3.NewArraySchema().WithItems(asset))
	doc.Required = []string{"modules", "assets"}

	return doc
}
