// # internal/analysis/session.go
package analysis

import (
	"context"
	"sync"

	"bundlelens/internal/observability"
	"bundlelens/internal/resolver"
	"bundlelens/internal/stats"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
)

// Session owns every derived view of one stats document. The views are
// computed on first access and replayed afterwards; the document is
// never re-walked. All computation is deterministic and side-effect
// free, so compute-once-store-replay is the whole concurrency story.
type Session struct {
	ID  string
	doc *stats.Document

	scriptPatterns []glob.Glob

	modulesOnce sync.Once
	modules     []*ResolvedModule
	warnings    []resolver.Mismatch
	modulesErr  error

	assetsOnce sync.Once
	groups     []*AssetGroup

	dataOnce sync.Once
	data     *ReportData
	dataErr  error
}

func NewSession(doc *stats.Document, scriptPatterns []glob.Glob) *Session {
	return &Session{
		ID:             uuid.NewString(),
		doc:            doc,
		scriptPatterns: scriptPatterns,
	}
}

func (s *Session) Document() *stats.Document { return s.doc }

// Modules returns the flat, sorted module list. The flatten runs at
// most once per session.
func (s *Session) Modules() ([]*ResolvedModule, error) {
	s.modulesOnce.Do(func() {
		s.modules, s.warnings, s.modulesErr = Flatten(s.doc.Modules, nil)
		if s.modulesErr == nil {
			observability.ModulesTotal.Set(float64(len(s.modules)))
		}
	})
	return s.modules, s.modulesErr
}

// Warnings returns the resolution mismatches collected during
// flattening. Forces the flatten.
func (s *Session) Warnings() []resolver.Mismatch {
	_, _ = s.Modules()
	return s.warnings
}

// Assets returns the per-asset module groups, sorted by asset name.
func (s *Session) Assets() ([]*AssetGroup, error) {
	modules, err := s.Modules()
	if err != nil {
		return nil, err
	}
	s.assetsOnce.Do(func() {
		s.groups = Group(s.doc.Assets, modules, s.scriptPatterns)
		observability.AssetsTotal.Set(float64(len(s.groups)))
	})
	return s.groups, nil
}

// AssetByName looks up one group from the memoized view.
func (s *Session) AssetByName(name string) (*AssetGroup, bool) {
	groups, err := s.Assets()
	if err != nil {
		return nil, false
	}
	for _, group := range groups {
		if group.Asset.Name == name {
			return group, true
		}
	}
	return nil, false
}

// Data produces the renderer-agnostic report structure. The derivation
// runs at most once per session no matter how many renderers ask; the
// result (or its error) is cached and replayed.
func (s *Session) Data(ctx context.Context) (*ReportData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.dataOnce.Do(func() {
		s.data, s.dataErr = s.buildData()
	})
	return s.data, s.dataErr
}

func (s *Session) buildData() (*ReportData, error) {
	modules, err := s.Modules()
	if err != nil {
		return nil, err
	}
	groups, err := s.Assets()
	if err != nil {
		return nil, err
	}

	data := &ReportData{
		Assets:  make([]AssetReport, 0, len(groups)),
		Modules: make([]ModuleReport, 0, len(modules)),
	}

	for _, module := range modules {
		report := moduleReport(module)
		data.Modules = append(data.Modules, report)
		data.Summary.TotalModuleSize += module.Size
		if module.IsDependencyPackage {
			data.Summary.DependencyModules++
		}
		if module.IsSynthetic {
			data.Summary.SyntheticModules++
		}
	}
	data.Summary.Modules = len(modules)

	for _, group := range groups {
		asset := AssetReport{
			Name:   group.Asset.Name,
			Size:   group.Asset.Size,
			Chunks: chunkStrings(group.Asset.Chunks),
		}
		for _, module := range group.Modules {
			asset.Modules = append(asset.Modules, moduleReport(module))
			asset.ModuleSize += module.Size
		}
		data.Assets = append(data.Assets, asset)
	}
	data.Summary.Assets = len(groups)

	for _, warning := range s.warnings {
		data.Warnings = append(data.Warnings, warning.String())
	}
	data.Summary.Warnings = len(s.warnings)

	return data, nil
}

func moduleReport(module *ResolvedModule) ModuleReport {
	return ModuleReport{
		Identifier:        module.CanonicalID,
		BaseName:          module.BaseName,
		Size:              module.Size,
		Chunks:            module.Chunks.Sorted(),
		DependencyPackage: module.IsDependencyPackage,
		Synthetic:         module.IsSynthetic,
	}
}

func chunkStrings(ids []stats.ChunkID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

// ReportData is the structured result handed to renderers. It is fully
// derived from the memoized module and asset views and deterministic
// for a given input document.
type ReportData struct {
	Summary  Summary        `json:"summary"`
	Assets   []AssetReport  `json:"assets"`
	Modules  []ModuleReport `json:"modules"`
	Warnings []string       `json:"warnings,omitempty"`
}

type Summary struct {
	Modules           int   `json:"modules"`
	Assets            int   `json:"assets"`
	DependencyModules int   `json:"dependencyModules"`
	SyntheticModules  int   `json:"syntheticModules"`
	TotalModuleSize   int64 `json:"totalModuleSize"`
	Warnings          int   `json:"warnings"`
}

type AssetReport struct {
	Name       string         `json:"name"`
	Size       int64          `json:"size"`
	ModuleSize int64          `json:"moduleSize"`
	Chunks     []string       `json:"chunks"`
	Modules    []ModuleReport `json:"modules"`
}

type ModuleReport struct {
	Identifier        string   `json:"identifier"`
	BaseName          string   `json:"baseName,omitempty"`
	Size              int64    `json:"size"`
	Chunks            []string `json:"chunks"`
	DependencyPackage bool     `json:"dependencyPackage"`
	Synthetic         bool     `json:"synthetic"`
}
