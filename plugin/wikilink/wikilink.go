// Package wikilink extracts wiki-style link targets from raw note text.
package wikilink

import (
	"regexp"
	"strings"
)

// linkPattern matches [[target]] and embed-style ![[target]] markers.
// Unbalanced brackets simply never match.
var linkPattern = regexp.MustCompile(`!?\[\[([^\]]+)\]\]`)

// mediaPrefix marks link targets that point into the vault's media
// directory rather than to another note.
const mediaPrefix = "linked_media/"

// Extract returns the deduplicated note names referenced by text, in order
// of first occurrence. Alias segments (after "|") and anchor fragments
// (after "#") are stripped; media targets are skipped.
func Extract(text string) []string {
	matches := linkPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	var names []string
	for _, match := range matches {
		target := match[1]
		if strings.HasPrefix(target, mediaPrefix) {
			continue
		}
		if i := strings.Index(target, "|"); i >= 0 {
			target = target[:i]
		}
		if i := strings.Index(target, "#"); i >= 0 {
			target = target[:i]
		}
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		names = append(names, target)
	}
	return names
}
