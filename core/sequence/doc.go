// Package sequence implements the numeric sequence algorithms: duplicate
// detection, prime factorization, partition sorting and a few small
// statistics helpers.
//
// Functions are generic over the numeric constraints below, so passing a
// non-numeric sequence is a compile-time error. Data that arrives untyped
// (for example decoded JSON) goes through ParseNumbers or ParseIntegers,
// which reject non-numeric elements with core.ErrInvalidArgument.
package sequence

// Integer is the set of integer types accepted by the sorting routines.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Number is the set of numeric types accepted by FindDuplicates.
type Number interface {
	Integer | ~float32 | ~float64
}
