package sequence

import "github.com/asaidimu/go-qsdata/core"

// MeanSquaredError returns the mean of the squared differences between
// yTrue and yPred. Both slices must be non-empty and of equal length.
func MeanSquaredError(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, core.InvalidArgument("input arrays should have the same shape, got %d and %d", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, core.InvalidArgument("input arrays should not be empty")
	}

	var sum float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return sum / float64(len(yTrue)), nil
}

// MovingAverage returns the mean of every full window of the given size
// over data, len(data)-window+1 values in total.
func MovingAverage(data []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, core.InvalidArgument("window size should be a positive integer, got %d", window)
	}
	if window > len(data) {
		return nil, core.InvalidArgument("window size %d exceeds data length %d", window, len(data))
	}

	out := make([]float64, 0, len(data)-window+1)
	for i := 0; i+window <= len(data); i++ {
		var sum float64
		for _, v := range data[i : i+window] {
			sum += v
		}
		out = append(out, sum/float64(window))
	}
	return out, nil
}
