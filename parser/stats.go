package parser

import "strings"

// DocumentStats contains statistical information about a parsed document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	TagCount       int // Number of distinct grouping tags (first tag per operation)
	SchemaCount    int // Number of schemas under components
}

// Stats returns statistics for the document. Only recognized HTTP methods
// count as operations; operations without tags count under the synthetic
// "untagged" group.
func (d *Document) Stats() DocumentStats {
	stats := DocumentStats{}

	tags := make(map[string]bool)
	for _, pathValue := range d.Paths() {
		pathItem, ok := pathValue.(map[string]any)
		if !ok {
			continue
		}
		stats.PathCount++
		for method, opValue := range pathItem {
			if !IsHTTPMethod(strings.ToLower(method)) {
				continue
			}
			op, ok := opValue.(map[string]any)
			if !ok {
				continue
			}
			stats.OperationCount++
			tags[groupingTag(op)] = true
		}
	}
	stats.TagCount = len(tags)

	if components, ok := d.raw["components"].(map[string]any); ok {
		if schemas, ok := components["schemas"].(map[string]any); ok {
			stats.SchemaCount = len(schemas)
		}
	}

	return stats
}

// groupingTag returns the first declared tag of an operation, or "untagged".
// Only the first tag is used for grouping; additional tags remain on the
// raw operation but do not create additional groups.
func groupingTag(op map[string]any) string {
	tags, ok := op["tags"].([]any)
	if !ok || len(tags) == 0 {
		return UntaggedLabel
	}
	first, _ := tags[0].(string)
	if first == "" {
		return UntaggedLabel
	}
	return first
}

// UntaggedLabel is the synthetic tag assigned to operations that declare
// no tags (or whose first tag is empty).
const UntaggedLabel = "untagged"
