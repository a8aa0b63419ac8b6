package persister

import "strings"

// MergeLabels joins labels in the given order with LabelSeparator, skipping empty labels and parts already
// present. Merging a label with itself, or with a label it already contains, is a no-op.
func MergeLabels(labels ...string) string {
	var parts []string
	seen := make(map[string]struct{})
	for _, label := range labels {
		for _, part := range strings.Split(label, LabelSeparator) {
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, LabelSeparator)
}
