package utils

// FindIndex returns the position of item in slice, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Other returns the member of pair that is not item. It panics if item is not in pair.
func Other[T comparable](pair [2]T, item T) T {
	switch item {
	case pair[0]:
		return pair[1]
	case pair[1]:
		return pair[0]
	}
	panic("item is not part of the pair")
}
