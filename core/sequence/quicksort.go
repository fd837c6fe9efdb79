package sequence

import "slices"

// Quicksort returns a new slice holding values in ascending order. It
// partitions around the middle element into smaller, equal and larger
// groups, recursing on the outer two. The input is never modified.
func Quicksort[T Integer](values []T) []T {
	if len(values) <= 1 {
		return slices.Clone(values)
	}

	pivot := values[len(values)/2]
	var less, equal, greater []T
	for _, v := range values {
		switch {
		case v < pivot:
			less = append(less, v)
		case v > pivot:
			greater = append(greater, v)
		default:
			equal = append(equal, v)
		}
	}

	out := make([]T, 0, len(values))
	out = append(out, Quicksort(less)...)
	out = append(out, equal...)
	out = append(out, Quicksort(greater)...)
	return out
}

// QuicksortInPlace sorts values in ascending order by mutating the slice it
// is given. It uses the Lomuto scheme with the last element as pivot, so
// already-sorted input takes quadratic time.
func QuicksortInPlace[T Integer](values []T) {
	lomuto(values, 0, len(values)-1)
}

func lomuto[T Integer](values []T, low, high int) {
	if low >= high {
		return
	}
	p := partition(values, low, high)
	lomuto(values, low, p-1)
	lomuto(values, p+1, high)
}

func partition[T Integer](values []T, low, high int) int {
	pivot := values[high]
	i := low
	for j := low; j < high; j++ {
		if values[j] < pivot {
			values[i], values[j] = values[j], values[i]
			i++
		}
	}
	values[i], values[high] = values[high], values[i]
	return i
}
