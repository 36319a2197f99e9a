package style

import "math"

// scalerEpsilon is added to every per-feature standard deviation so that
// zero-variance features never divide by zero.
const scalerEpsilon = 1e-9

// Scaler standardizes vectors to zero mean and unit variance using
// statistics fitted over a reference population. Immutable after fit.
type Scaler struct {
	mean []float64
	std  []float64
}

// FitScaler computes per-feature mean and population standard deviation
// over the given rows. All rows must share the same width.
func FitScaler(rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyPopulation
	}

	dim := len(rows[0])
	mean := make([]float64, dim)
	std := make([]float64, dim)
	n := float64(len(rows))

	for _, row := range rows {
		for j, x := range row {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= n
	}

	for _, row := range rows {
		for j, x := range row {
			d := x - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j]/n) + scalerEpsilon
	}

	return &Scaler{mean: mean, std: std}, nil
}

// Transform returns the standardized copy of v. The input is not
// modified.
func (s *Scaler) Transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for j, x := range v {
		out[j] = (x - s.mean[j]) / s.std[j]
	}
	return out
}

// TransformAll standardizes every row.
func (s *Scaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}

// Mean returns a copy of the fitted per-feature means.
func (s *Scaler) Mean() []float64 {
	out := make([]float64, len(s.mean))
	copy(out, s.mean)
	return out
}

// Std returns a copy of the fitted per-feature standard deviations
// (epsilon included).
func (s *Scaler) Std() []float64 {
	out := make([]float64, len(s.std))
	copy(out, s.std)
	return out
}
