package sequence

// FindDuplicates returns every value that occurs more than once in values,
// each exactly once. The order of the result is unspecified; callers should
// compare it as a set. An input without duplicates yields an empty,
// non-nil slice.
func FindDuplicates[T Number](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	reported := make(map[T]struct{})
	duplicates := make([]T, 0)

	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			continue
		}
		if _, ok := reported[v]; ok {
			continue
		}
		reported[v] = struct{}{}
		duplicates = append(duplicates, v)
	}
	return duplicates
}
