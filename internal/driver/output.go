package driver

import (
	"path/filepath"
	"strings"
)

// DefaultSuffix is appended to the input path (minus extension) when no
// explicit output path is given, matching the historic behavior of the tool.
const DefaultSuffix = ".json"

// OutputPathFor derives the output path for a recovered dump: the input
// path with its extension replaced by suffix.
func OutputPathFor(inputPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + suffix
}
