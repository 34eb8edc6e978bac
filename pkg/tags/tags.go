// Package tags pulls #tag markers out of captured text.
package tags

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}_]+)`)

// Extract returns the unique tags found in content, in the order they first
// appear, and the content with the markers removed and whitespace collapsed.
// Tags are case-sensitive.
func Extract(content string) ([]string, string) {
	matches := tagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return []string{}, strings.Join(strings.Fields(content), " ")
	}

	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := m[2]
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	rest := tagPattern.ReplaceAllString(content, "$1")
	return tags, strings.Join(strings.Fields(rest), " ")
}

// Format renders tags with their markers, space separated.
func Format(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		out = append(out, "#"+t)
	}
	return strings.Join(out, " ")
}

// Has reports whether tag is present.
func Has(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
