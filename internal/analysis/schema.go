// # internal/analysis/schema.go
package analysis

import (
	"sort"

	"bundlelens/internal/stats"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ChunkSet is a deduplicated set of chunk ids.
type ChunkSet map[stats.ChunkID]struct{}

// Union returns a new set holding the receiver's ids plus the given
// ones. The receiver is never mutated; inherited sets are shared across
// siblings during flattening.
func (s ChunkSet) Union(ids []stats.ChunkID) ChunkSet {
	out := make(ChunkSet, len(s)+len(ids))
	for id := range s {
		out[id] = struct{}{}
	}
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func (s ChunkSet) Contains(id stats.ChunkID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids as strings in byte order, for display and
// deterministic serialization.
func (s ChunkSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, string(id))
	}
	sort.Strings(out)
	return out
}

// ResolvedModule is one flattened module with its on-disk identity
// resolved. Built once during flattening and never mutated; grouping
// refers to these records by pointer identity.
type ResolvedModule struct {
	Identifier  string
	CanonicalID string
	// BaseName is the package-relative path, empty when the module is
	// not under a dependency package directory.
	BaseName  string
	Chunks    ChunkSet
	Size      int64
	Source    string
	HasSource bool

	IsDependencyPackage bool
	IsSynthetic         bool
}

// AssetGroup is one script asset plus the modules it contains, in the
// order they first appeared in the flattened module list.
type AssetGroup struct {
	Asset   stats.RawAsset
	Modules []*ResolvedModule
}

// newCollator builds the locale-aware comparator used for every
// externally visible ordering (flat module list, asset keys). Callers
// rely on this order for deterministic diffing between reports.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}
