// Package dataset provides the chronological train/test split and the
// train-fitted scaling transforms.
package dataset

import (
	"errors"
	"fmt"
)

// ErrInsufficientData indicates the split left an empty train or test
// partition.
var ErrInsufficientData = errors.New("insufficient data")

// Split holds the chronological train/test partitions. Train rows are
// strictly earlier than every test row.
type Split struct {
	TrainX [][]float64
	TrainY []float64
	TestX  [][]float64
	TestY  []float64
}

// SplitChronological partitions rows into train (earliest) and test
// (latest) by ratio, preserving temporal order. Random shuffling would
// leak future information into training and is deliberately not offered.
func SplitChronological(rows [][]float64, labels []float64, ratio float64) (*Split, error) {
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("rows/labels length mismatch: %d vs %d", len(rows), len(labels))
	}
	if ratio <= 0 || ratio >= 1 {
		return nil, fmt.Errorf("split ratio must be in (0, 1), got %v", ratio)
	}

	cut := int(float64(len(rows)) * ratio)
	if cut == 0 || cut == len(rows) {
		return nil, fmt.Errorf("%w: %d rows split at ratio %v leaves an empty partition",
			ErrInsufficientData, len(rows), ratio)
	}
	return &Split{
		TrainX: rows[:cut],
		TrainY: labels[:cut],
		TestX:  rows[cut:],
		TestY:  labels[cut:],
	}, nil
}
