// # internal/analysis/flatten.go
package analysis

import (
	"sort"
	"time"

	"bundlelens/internal/observability"
	"bundlelens/internal/resolver"
	"bundlelens/internal/stats"
)

// Flatten walks the possibly nested module tree and produces the flat,
// collator-sorted list of resolved modules. Containers contribute no
// records of their own; their chunk ids are inherited by everything
// below them. A node matching no known shape aborts the whole document
// with a stats.ShapeError — grouping is only safe on a fully resolved
// list.
func Flatten(nodes []stats.RawModuleNode, inherited ChunkSet) ([]*ResolvedModule, []resolver.Mismatch, error) {
	start := time.Now()
	if inherited == nil {
		inherited = ChunkSet{}
	}

	modules, warnings, err := flattenInto(nil, nodes, inherited, nil)
	if err != nil {
		return nil, nil, err
	}

	coll := newCollator()
	sort.SliceStable(modules, func(i, j int) bool {
		return coll.CompareString(modules[i].CanonicalID, modules[j].CanonicalID) < 0
	})

	observability.FlattenDuration.Observe(time.Since(start).Seconds())
	return modules, warnings, nil
}

func flattenInto(out []*ResolvedModule, nodes []stats.RawModuleNode, inherited ChunkSet, warnings []resolver.Mismatch) ([]*ResolvedModule, []resolver.Mismatch, error) {
	for i := range nodes {
		node := &nodes[i]
		chunks := inherited.Union(node.Chunks)

		kind, err := node.Classify()
		if err != nil {
			return nil, nil, err
		}

		if kind == stats.KindContainer {
			out, warnings, err = flattenInto(out, node.Modules, chunks, warnings)
			if err != nil {
				return nil, nil, err
			}
			continue
		}

		name, _ := resolver.NormalizePath(*node.Name, "")
		canonical, mismatch := resolver.NormalizePath(*node.Identifier, name)
		if mismatch != nil {
			warnings = append(warnings, *mismatch)
			observability.ResolutionWarnings.Inc()
		}

		module := &ResolvedModule{
			Identifier:  *node.Identifier,
			CanonicalID: canonical,
			Chunks:      chunks,
			Size:        *node.Size,
			IsSynthetic: kind == stats.KindSyntheticLeaf,
		}
		if node.Source != nil {
			module.Source = *node.Source
			module.HasSource = true
		}
		if resolver.IsDependencyPath(canonical) {
			module.IsDependencyPackage = true
			module.BaseName = resolver.BaseName(canonical)
		}

		out = append(out, module)
	}
	return out, warnings, nil
}
