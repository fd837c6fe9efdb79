package sequence

import "github.com/asaidimu/go-qsdata/core"

// PrimeFactors returns the prime factors of n in non-decreasing order, with
// multiplicity, so that their product is n. PrimeFactors(1) is empty.
// n must be at least 1.
//
// Factorization is by trial division: the divisor starts at 2 and only
// advances once it no longer divides the remainder. Once the divisor
// exceeds the square root of the remainder, whatever is left is prime.
func PrimeFactors(n int64) ([]int64, error) {
	if n < 1 {
		return nil, core.InvalidArgument("input should be a positive integer, got %d", n)
	}

	factors := make([]int64, 0)
	remainder := n
	// divisor <= remainder/divisor avoids overflowing divisor*divisor.
	for divisor := int64(2); divisor <= remainder/divisor; {
		if remainder%divisor == 0 {
			factors = append(factors, divisor)
			remainder /= divisor
			continue
		}
		divisor++
	}
	if remainder > 1 {
		factors = append(factors, remainder)
	}
	return factors, nil
}
