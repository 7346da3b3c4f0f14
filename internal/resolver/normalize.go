// # internal/resolver/normalize.go
package resolver

import (
	"fmt"
	gopath "path"
	"regexp"
	"strings"
)

var (
	// Leading ./ and ../ runs on display names, both slash styles.
	relativePrefixRe = regexp.MustCompile(`^(?:\.{1,2}[\\/])+`)
	// Legacy dependency alias: a bare ~ path segment.
	legacyAliasRe = regexp.MustCompile(`(^|[\\/])~([\\/])`)
	// A node_modules (or legacy ~) segment bounded by separators or the
	// string edges.
	depBoundaryRe = regexp.MustCompile(`(?:^|[\\/])(?:node_modules|~)(?:[\\/]|$)`)
)

// Mismatch records an identifier/name pair the normalization heuristics
// could not reconcile: the cleaned display name does not occur in the
// de-prefixed identifier. The candidate (the longer of the two values)
// is still used, so a Mismatch is a warning, never a failure.
type Mismatch struct {
	Identifier string
	Name       string
	Candidate  string
}

func (m *Mismatch) String() string {
	return fmt.Sprintf("module name %q not found in identifier %q, keeping %q", m.Name, m.Identifier, m.Candidate)
}

// NormalizePath strips loader-pipeline prefixes and query suffixes from
// a raw module identifier and reconciles it against the optional
// display name for the same module. Pass name == "" when there is no
// second form. The returned path is canonical but not necessarily
// absolute; a non-nil Mismatch means the two forms disagreed and the
// identifier-derived candidate was kept as-is.
//
// Total over string input: malformed values degrade to best-effort
// output, never an error.
func NormalizePath(identifier, name string) (string, *Mismatch) {
	path := identifier
	if cut := lastPrefixCut(identifier); cut >= 0 {
		path = identifier[cut+1:]
	}
	if name == "" {
		return path, nil
	}

	cleaned := relativePrefixRe.ReplaceAllString(name, "")
	cleaned = legacyAliasRe.ReplaceAllString(cleaned, "${1}node_modules${2}")

	if idx := strings.LastIndex(path, cleaned); idx >= 0 {
		// The untruncated candidate can carry trailing loader noise the
		// display name does not have.
		if end := idx + len(cleaned); end < len(path) {
			path = path[:end]
		}
		return path, nil
	}

	return path, &Mismatch{Identifier: identifier, Name: cleaned, Candidate: path}
}

// lastPrefixCut returns the index of the last loader separator (!) or
// query marker (?), whichever comes later, or -1 when neither exists.
func lastPrefixCut(s string) int {
	bang := strings.LastIndexByte(s, '!')
	query := strings.LastIndexByte(s, '?')
	if query > bang {
		return query
	}
	return bang
}

// IsDependencyPath reports whether the canonicalized path lives under a
// third-party dependency directory (node_modules or its legacy ~
// alias, bounded by path separators or the string edges).
func IsDependencyPath(path string) bool {
	return len(depBoundaryRe.Split(path, -1)) > 1
}

// BaseName derives the package-relative part of a dependency path: the
// segment following the last dependency boundary, cleaned and in
// forward-slash form. Callers must have verified the path with
// IsDependencyPath first. An empty result means the remainder collapsed
// to the current directory.
//
// Synthetic context modules can be named like a directory; when the
// input ends with a path separator the cleanup drops it, so it is
// re-appended.
func BaseName(path string) string {
	parts := depBoundaryRe.Split(path, -1)
	last := parts[len(parts)-1]

	rel := gopath.Clean(strings.ReplaceAll(last, `\`, "/"))
	if rel == "." {
		rel = ""
	}
	if rel != "" && endsWithSeparator(path) && !strings.HasSuffix(rel, "/") {
		rel += "/"
	}
	return rel
}

func endsWithSeparator(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == '/' || last == '\\'
}
