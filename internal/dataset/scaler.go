package dataset

import (
	"errors"
	"math"
)

// StandardScaler centers each feature to zero mean and unit variance.
// Fit it on the training partition only, then apply the same transform
// to test rows and the live inference row.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// Fit computes per-feature mean and standard deviation from rows.
// Zero-variance features get a scale of 1 so they pass through centered.
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return errors.New("cannot fit scaler on empty data")
	}
	width := len(rows[0])
	s.Mean = make([]float64, width)
	s.Scale = make([]float64, width)

	for _, row := range rows {
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= float64(len(rows))
	}
	for _, row := range rows {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Scale[j] += d * d
		}
	}
	for j := range s.Scale {
		s.Scale[j] = math.Sqrt(s.Scale[j] / float64(len(rows)))
		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}
	return nil
}

// Transform returns scaled copies of rows; the input is not mutated.
func (s *StandardScaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.TransformRow(row)
	}
	return out
}

// TransformRow returns a scaled copy of one row.
func (s *StandardScaler) TransformRow(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

// LabelScaler scales a one-dimensional label series and inverts
// predictions back to price units.
type LabelScaler struct {
	Mean  float64
	Scale float64
}

// Fit computes mean and standard deviation from labels.
func (s *LabelScaler) Fit(labels []float64) error {
	if len(labels) == 0 {
		return errors.New("cannot fit scaler on empty labels")
	}
	for _, v := range labels {
		s.Mean += v
	}
	s.Mean /= float64(len(labels))
	for _, v := range labels {
		d := v - s.Mean
		s.Scale += d * d
	}
	s.Scale = math.Sqrt(s.Scale / float64(len(labels)))
	if s.Scale == 0 {
		s.Scale = 1
	}
	return nil
}

// Transform returns a scaled copy of labels.
func (s *LabelScaler) Transform(labels []float64) []float64 {
	out := make([]float64, len(labels))
	for i, v := range labels {
		out[i] = (v - s.Mean) / s.Scale
	}
	return out
}

// Inverse maps a scaled prediction back to price units.
func (s *LabelScaler) Inverse(v float64) float64 {
	return v*s.Scale + s.Mean
}
