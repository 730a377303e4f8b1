package filedupe

// groupBy partitions items by key. Buckets come back in the order their key
// first appears and members keep their input order, so grouping is
// deterministic for a deterministic input.
func groupBy[T any, K comparable](items []T, key func(T) K) [][]T {
	index := make(map[K]int, len(items))

	var buckets [][]T
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], item)
	}

	return buckets
}

// retainMulti keeps only buckets holding two or more members. A singleton
// carries no duplication information and must not reach later, more
// expensive stages.
func retainMulti[T any](groups [][]T) [][]T {
	var kept [][]T
	for _, g := range groups {
		if len(g) > 1 {
			kept = append(kept, g)
		}
	}
	return kept
}
