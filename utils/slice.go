package utils

func Map[T any, U any](src []T, mapper func(T) U) []U {
	dst := make([]U, 0, len(src))
	for _, item := range src {
		dst = append(dst, mapper(item))
	}
	return dst
}

func Find[T any](items []T, predicate func(T) bool) *T {
	for i := range items {
		if predicate(items[i]) {
			return &items[i]
		}
	}
	return nil
}
