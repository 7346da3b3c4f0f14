// # internal/stats/classify.go
package stats

import "fmt"

// NodeKind discriminates the three module-node shapes.
type NodeKind int

const (
	// KindContainer groups nested modules (e.g. a concatenated module)
	// and contributes no record of its own.
	KindContainer NodeKind = iota
	// KindSourceLeaf is a real module with inspectable source text.
	KindSourceLeaf
	// KindSyntheticLeaf is a generated module (context/pattern match)
	// with no source text.
	KindSyntheticLeaf
)

func (k NodeKind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindSourceLeaf:
		return "source"
	case KindSyntheticLeaf:
		return "synthetic"
	}
	return "unknown"
}

// ShapeError reports a module node that matches none of the known
// shapes, usually a newer stats format. It carries the node for
// diagnosis.
type ShapeError struct {
	Node *RawModuleNode
}

func (e *ShapeError) Error() string {
	ident := "<missing identifier>"
	if e.Node != nil && e.Node.Identifier != nil {
		ident = *e.Node.Identifier
	}
	name := "<missing name>"
	if e.Node != nil && e.Node.Name != nil {
		name = *e.Node.Name
	}
	return fmt.Sprintf("module node matches no known shape (identifier=%q name=%q): unsupported stats format", ident, name)
}

// Classify determines a node's shape from field presence, checked in a
// fixed priority order: container first, then source leaf, then
// synthetic leaf. It runs once per node during flattening.
func (n *RawModuleNode) Classify() (NodeKind, error) {
	if n.Modules != nil {
		return KindContainer, nil
	}
	if n.Identifier != nil && n.Name != nil && n.Size != nil {
		if n.Source != nil {
			return KindSourceLeaf, nil
		}
		return KindSyntheticLeaf, nil
	}
	return 0, &ShapeError{Node: n}
}
