package catalog

import "strings"

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// lowerAll normalizes tags so exact tag search can lower-case the needle.
func lowerAll(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
