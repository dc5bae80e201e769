package goosu

import (
	"path/filepath"
	"regexp"
	"strings"
)

var versionSuffix = regexp.MustCompile(`\[([^\[\]]*)\]$`)

func IsOsuPath(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".osu"
}

// VersionFromPath extracts the difficulty name from a file named like
// "Artist - Title (Creator) [Version].osu". It returns "" if there is none.
func VersionFromPath(path string) string {
	m := versionSuffix.FindStringSubmatch(strings.TrimSpace(getPureFileName(path)))
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func getPureFileName(path string) string {
	return filepath.Base(path[:len(path)-len(filepath.Ext(path))])
}
