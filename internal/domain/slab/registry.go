package slab

// rememberBlockNumber prepends bn unless already present, keeping at most limit entries.
func rememberBlockNumber(registry []string, bn string, limit int) []string {
	for _, existing := range registry {
		if existing == bn {
			return registry
		}
	}
	out := make([]string, 0, len(registry)+1)
	out = append(out, bn)
	out = append(out, registry...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// mergeBlockNumbers puts imported values ahead of the existing registry,
// dropping blanks and keeping the first occurrence of each value.
func mergeBlockNumbers(registry, imported []string) []string {
	seen := make(map[string]struct{}, len(registry)+len(imported))
	out := make([]string, 0, len(registry)+len(imported))
	for _, list := range [][]string{imported, registry} {
		for _, bn := range list {
			if bn == "" {
				continue
			}
			if _, dup := seen[bn]; dup {
				continue
			}
			seen[bn] = struct{}{}
			out = append(out, bn)
		}
	}
	return out
}
