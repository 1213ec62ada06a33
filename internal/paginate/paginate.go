// Package paginate slices a list into fixed-size pages.
package paginate

// Pages returns the number of pages needed for n items.
func Pages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Window returns the half-open [start, end) range of page (1-based).
// Pages outside the range yield an empty window.
func Window(n, page, size int) (start, end int) {
	if page < 1 || size <= 0 {
		return 0, 0
	}
	start = (page - 1) * size
	if start >= n {
		return n, n
	}
	end = start + size
	if end > n {
		end = n
	}
	return start, end
}

// Page returns the items on page (1-based).
func Page[T any](items []T, page, size int) []T {
	start, end := Window(len(items), page, size)
	return items[start:end]
}

// Clamp keeps page within [1, Pages(n, size)], or 1 when there are no items.
func Clamp(page, n, size int) int {
	last := Pages(n, size)
	if last == 0 || page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}
