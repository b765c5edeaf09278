// Package shared provides common utility functions used across multiple
// packages in the urdf2sem codebase.
package shared

import (
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultOutputPath replaces the extension of input with the extension of
// the output format, e.g. robots/arm.urdf -> robots/arm.owl.
func DefaultOutputPath(input string, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + format
}

// SplitPathList splits colon separated search paths such as
// ROS_PACKAGE_PATH, dropping empty entries and duplicates.
func SplitPathList(values ...string) []string {
	seen := map[string]bool{}
	var out []string
	for _, value := range values {
		for _, entry := range filepath.SplitList(value) {
			entry = strings.TrimSpace(entry)
			if entry == "" || seen[entry] {
				continue
			}
			seen[entry] = true
			out = append(out, entry)
		}
	}
	return out
}

// NamespaceFromOutput derives the XML entity name of a map from its output
// file name. Characters that are not valid in an XML name become
// underscores.
func NamespaceFromOutput(output string) string {
	base := filepath.Base(output)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "map"
	}
	return b.String()
}
