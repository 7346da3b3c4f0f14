// # internal/analysis/group.go
package analysis

import (
	"sort"
	"time"

	"bundlelens/internal/observability"
	"bundlelens/internal/stats"

	"github.com/gobwas/glob"
)

// DefaultScriptPatterns match the asset names this system cares about.
// Stylesheets, source maps and images never enter the result.
var DefaultScriptPatterns = []glob.Glob{
	glob.MustCompile("*.js"),
	glob.MustCompile("*.mjs"),
}

// Group joins the flattened module list to the script assets through
// shared chunk ids. Every retained asset appears in the result, even
// with no matching modules; a module appears in a group at most once no
// matter how many chunks overlap, ordered by first insertion (the
// flattening order of the input list). The returned groups are sorted
// by asset name.
func Group(assets []stats.RawAsset, modules []*ResolvedModule, patterns []glob.Glob) []*AssetGroup {
	start := time.Now()
	if patterns == nil {
		patterns = DefaultScriptPatterns
	}

	groups := make([]*AssetGroup, 0, len(assets))
	chunkToGroups := make(map[stats.ChunkID][]*AssetGroup)
	for _, asset := range assets {
		if !matchesAny(asset.Name, patterns) {
			continue
		}
		group := &AssetGroup{Asset: asset, Modules: make([]*ResolvedModule, 0)}
		groups = append(groups, group)
		for _, chunk := range asset.Chunks {
			chunkToGroups[chunk] = append(chunkToGroups[chunk], group)
		}
	}

	seen := make(map[*AssetGroup]map[*ResolvedModule]struct{}, len(groups))
	for _, module := range modules {
		for chunk := range module.Chunks {
			for _, group := range chunkToGroups[chunk] {
				members := seen[group]
				if members == nil {
					members = make(map[*ResolvedModule]struct{})
					seen[group] = members
				}
				if _, dup := members[module]; dup {
					continue
				}
				members[module] = struct{}{}
				group.Modules = append(group.Modules, module)
			}
		}
	}

	coll := newCollator()
	sort.SliceStable(groups, func(i, j int) bool {
		return coll.CompareString(groups[i].Asset.Name, groups[j].Asset.Name) < 0
	})

	observability.GroupDuration.Observe(time.Since(start).Seconds())
	return groups
}

func matchesAny(name string, patterns []glob.Glob) bool {
	for _, p := range patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}
