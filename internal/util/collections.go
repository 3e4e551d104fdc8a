package util

import (
	"maps"
	"slices"
)

// ListContainsElement returns true if the given list contains the given element.
func ListContainsElement[S ~[]E, E comparable](list S, element E) bool {
	return slices.Contains(list, element)
}

// CloneStringList returns a copy of the given list of strings.
func CloneStringList(listToClone []string) []string {
	return slices.Clone(listToClone)
}

// CloneStringMap returns a copy of the given map of strings.
func CloneStringMap(mapToClone map[string]string) map[string]string {
	return maps.Clone(mapToClone)
}
