package domain

import "sort"

func distinctSorted[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	var values []string
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}
