package task

import "strings"

// ParseTags splits comma-separated input into trimmed tags.
// Blank input yields an empty, non-nil slice; blank entries are dropped.
func ParseTags(raw string) []string {
	tags := []string{}
	if strings.TrimSpace(raw) == "" {
		return tags
	}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
