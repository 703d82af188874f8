// Package attach locates attachment files referenced by bibliography
// entries on the local file system.
package attach

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/ansuz/internal/pathutil"
)

// Resolve locates the file described by a bibliography file field under
// rootDir. The field is a semicolon-separated list of candidates; each
// candidate is either a bare path or a colon-separated
// display-name:path:mime-type triple as exported by reference managers.
//
// Per candidate, resolution tries in order: the candidate as an absolute
// path, the candidate joined under rootDir, and the candidate's basename
// joined under rootDir (flattened storage layout). The first hit wins; ""
// is returned when nothing resolves.
func Resolve(field, rootDir string) string {
	if field == "" {
		return ""
	}

	for _, part := range strings.Split(field, ";") {
		candidate := candidatePath(part)
		if candidate == "" {
			continue
		}

		if filepath.IsAbs(candidate) && fileExists(candidate) {
			return candidate
		}

		if rootDir == "" {
			continue
		}
		root := pathutil.ExpandHome(rootDir)

		if full := filepath.Join(root, candidate); fileExists(full) {
			return full
		}

		// Flattened layout fallback: least specific, tried last.
		if flat := filepath.Join(root, filepath.Base(candidate)); fileExists(flat) {
			return flat
		}
	}

	return ""
}

// candidatePath extracts the path portion of one sub-descriptor. The triple
// form is recognised by its second segment ending in .pdf.
func candidatePath(part string) string {
	sub := strings.Split(part, ":")
	if len(sub) >= 2 && strings.HasSuffix(strings.TrimSpace(sub[1]), ".pdf") {
		return strings.TrimSpace(sub[1])
	}
	return strings.TrimSpace(part)
}

// FileURL returns the file:// URL for an attachment path, or "" for "".
func FileURL(path string) string {
	if path == "" {
		return ""
	}
	return "file://" + path
}

// LinkMarkup returns markdown link markup for an attachment path. The URL
// is wrapped in angle brackets so spaces survive.
func LinkMarkup(path string) string {
	if path == "" {
		return ""
	}
	return "[Open PDF](<" + FileURL(path) + ">)"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
