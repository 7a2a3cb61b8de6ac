// Package predictor implements a small feedforward regression network
// trained with minibatch Adam on mean squared error. A trained network
// lives for one run only; there is no persistence.
package predictor

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrNotTrained indicates inference was requested before Train.
var ErrNotTrained = errors.New("model not trained")

const (
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-8
)

// Config controls network shape and optimization.
type Config struct {
	Hidden       []int   // hidden layer widths
	LearningRate float64 // Adam step size
	Patience     int     // early-stop patience in epochs; 0 disables
	Seed         int64   // RNG seed; 0 means time-based
}

// DefaultConfig returns the standard network shape.
func DefaultConfig() Config {
	return Config{
		Hidden:       []int{64, 32},
		LearningRate: 0.001,
		Patience:     10,
	}
}

// Network is a feedforward net with ReLU hidden layers and a single
// linear output unit.
type Network struct {
	cfg Config
	rng *rand.Rand

	// w[l][out][in], b[l][out]; layer len(w)-1 is the linear output.
	w [][][]float64
	b [][]float64

	// Adam moment estimates, same shapes as w and b.
	mw, vw [][][]float64
	mb, vb [][]float64
	step   int

	inputs  int
	trained bool
}

// New creates an untrained network. Parameters are allocated lazily on
// the first Train call, when the input width is known.
func New(cfg Config) *Network {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.001
	}
	if len(cfg.Hidden) == 0 {
		cfg.Hidden = []int{64, 32}
	}
	return &Network{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

func (n *Network) init(inputs int) {
	sizes := make([]int, 0, len(n.cfg.Hidden)+2)
	sizes = append(sizes, inputs)
	sizes = append(sizes, n.cfg.Hidden...)
	sizes = append(sizes, 1)

	layers := len(sizes) - 1
	n.w = make([][][]float64, layers)
	n.b = make([][]float64, layers)
	n.mw = make([][][]float64, layers)
	n.vw = make([][][]float64, layers)
	n.mb = make([][]float64, layers)
	n.vb = make([][]float64, layers)

	for l := 0; l < layers; l++ {
		in, out := sizes[l], sizes[l+1]
		scale := math.Sqrt(2.0 / float64(in)) // He init for ReLU layers
		n.w[l] = make([][]float64, out)
		n.mw[l] = make([][]float64, out)
		n.vw[l] = make([][]float64, out)
		for o := 0; o < out; o++ {
			n.w[l][o] = make([]float64, in)
			n.mw[l][o] = make([]float64, in)
			n.vw[l][o] = make([]float64, in)
			for i := 0; i < in; i++ {
				n.w[l][o][i] = n.rng.NormFloat64() * scale
			}
		}
		n.b[l] = make([]float64, out)
		n.mb[l] = make([]float64, out)
		n.vb[l] = make([]float64, out)
	}
	n.inputs = inputs
	n.step = 0
}

// forward returns the activations of every layer; acts[0] is the input
// and acts[len(acts)-1] is the single linear output.
func (n *Network) forward(x []float64) [][]float64 {
	acts := make([][]float64, len(n.w)+1)
	acts[0] = x
	for l := range n.w {
		out := make([]float64, len(n.w[l]))
		for o := range n.w[l] {
			z := n.b[l][o]
			for i, v := range acts[l] {
				z += n.w[l][o][i] * v
			}
			if l < len(n.w)-1 && z < 0 {
				z = 0 // ReLU on hidden layers
			}
			out[o] = z
		}
		acts[l+1] = out
	}
	return acts
}

// Train fits the network to scaled features and labels.
func (n *Network) Train(features [][]float64, labels []float64, epochs, batchSize int) error {
	return n.TrainWithValidation(features, labels, nil, nil, epochs, batchSize)
}

// TrainWithValidation fits the network, monitoring validation MSE after
// each epoch. When Patience > 0 and the validation loss has not improved
// for Patience epochs, training stops and the best-seen parameters are
// restored.
func (n *Network) TrainWithValidation(features [][]float64, labels []float64, valX [][]float64, valY []float64, epochs, batchSize int) error {
	if len(features) == 0 {
		return errors.New("no training samples")
	}
	if len(features) != len(labels) {
		return fmt.Errorf("features/labels length mismatch: %d vs %d", len(features), len(labels))
	}
	if epochs <= 0 {
		return errors.New("epochs must be positive")
	}
	if batchSize <= 0 {
		return errors.New("batch size must be positive")
	}

	if n.w == nil {
		n.init(len(features[0]))
	} else if len(features[0]) != n.inputs {
		return fmt.Errorf("feature width %d does not match network input %d", len(features[0]), n.inputs)
	}

	idx := make([]int, len(features))
	for i := range idx {
		idx[i] = i
	}

	gw, gb := n.newGradBuffers()
	bestVal := math.Inf(1)
	var bestW [][][]float64
	var bestB [][]float64
	wait := 0

	for epoch := 0; epoch < epochs; epoch++ {
		n.rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		for from := 0; from < len(idx); from += batchSize {
			to := from + batchSize
			if to > len(idx) {
				to = len(idx)
			}
			n.zeroGrads(gw, gb)
			for _, s := range idx[from:to] {
				n.accumulate(features[s], labels[s], gw, gb)
			}
			n.adamStep(gw, gb, to-from)
		}

		if len(valX) > 0 && n.cfg.Patience > 0 {
			val := n.mse(valX, valY)
			if val < bestVal-1e-12 {
				bestVal = val
				bestW, bestB = n.snapshot()
				wait = 0
			} else {
				wait++
				if wait >= n.cfg.Patience {
					break
				}
			}
		}
	}

	if bestW != nil {
		n.w, n.b = bestW, bestB
	}
	n.trained = true
	return nil
}

// accumulate adds one sample's gradients (of squared error) into gw/gb.
func (n *Network) accumulate(x []float64, y float64, gw [][][]float64, gb [][]float64) {
	acts := n.forward(x)
	last := len(n.w) - 1

	delta := []float64{acts[last+1][0] - y}
	for l := last; l >= 0; l-- {
		for o := range n.w[l] {
			gb[l][o] += delta[o]
			for i, v := range acts[l] {
				gw[l][o][i] += delta[o] * v
			}
		}
		if l == 0 {
			break
		}
		prev := make([]float64, len(acts[l]))
		for i := range prev {
			sum := 0.0
			for o := range n.w[l] {
				sum += delta[o] * n.w[l][o][i]
			}
			if acts[l][i] > 0 { // ReLU derivative
				prev[i] = sum
			}
		}
		delta = prev
	}
}

// adamStep applies one Adam update using gradients averaged over batch.
func (n *Network) adamStep(gw [][][]float64, gb [][]float64, batch int) {
	n.step++
	lr := n.cfg.LearningRate
	c1 := 1 - math.Pow(adamBeta1, float64(n.step))
	c2 := 1 - math.Pow(adamBeta2, float64(n.step))
	inv := 1.0 / float64(batch)

	for l := range n.w {
		for o := range n.w[l] {
			for i := range n.w[l][o] {
				g := gw[l][o][i] * inv
				n.mw[l][o][i] = adamBeta1*n.mw[l][o][i] + (1-adamBeta1)*g
				n.vw[l][o][i] = adamBeta2*n.vw[l][o][i] + (1-adamBeta2)*g*g
				n.w[l][o][i] -= lr * (n.mw[l][o][i] / c1) / (math.Sqrt(n.vw[l][o][i]/c2) + adamEpsilon)
			}
			g := gb[l][o] * inv
			n.mb[l][o] = adamBeta1*n.mb[l][o] + (1-adamBeta1)*g
			n.vb[l][o] = adamBeta2*n.vb[l][o] + (1-adamBeta2)*g*g
			n.b[l][o] -= lr * (n.mb[l][o] / c1) / (math.Sqrt(n.vb[l][o]/c2) + adamEpsilon)
		}
	}
}

func (n *Network) newGradBuffers() ([][][]float64, [][]float64) {
	gw := make([][][]float64, len(n.w))
	gb := make([][]float64, len(n.w))
	for l := range n.w {
		gw[l] = make([][]float64, len(n.w[l]))
		for o := range n.w[l] {
			gw[l][o] = make([]float64, len(n.w[l][o]))
		}
		gb[l] = make([]float64, len(n.b[l]))
	}
	return gw, gb
}

func (n *Network) zeroGrads(gw [][][]float64, gb [][]float64) {
	for l := range gw {
		for o := range gw[l] {
			for i := range gw[l][o] {
				gw[l][o][i] = 0
			}
			gb[l][o] = 0
		}
	}
}

func (n *Network) snapshot() ([][][]float64, [][]float64) {
	w := make([][][]float64, len(n.w))
	b := make([][]float64, len(n.b))
	for l := range n.w {
		w[l] = make([][]float64, len(n.w[l]))
		for o := range n.w[l] {
			w[l][o] = append([]float64(nil), n.w[l][o]...)
		}
		b[l] = append([]float64(nil), n.b[l]...)
	}
	return w, b
}

func (n *Network) mse(features [][]float64, labels []float64) float64 {
	sum := 0.0
	for i, row := range features {
		d := n.forward(row)[len(n.w)][0] - labels[i]
		sum += d * d
	}
	return sum / float64(len(features))
}

// Evaluate returns the mean squared error on the given scaled partition.
// Purely diagnostic; parameters are not updated.
func (n *Network) Evaluate(features [][]float64, labels []float64) (float64, error) {
	if !n.trained {
		return 0, ErrNotTrained
	}
	if len(features) == 0 || len(features) != len(labels) {
		return 0, fmt.Errorf("invalid evaluation set: %d features, %d labels", len(features), len(labels))
	}
	return n.mse(features, labels), nil
}

// PredictOne returns the scaled prediction for a single feature row.
func (n *Network) PredictOne(row []float64) (float64, error) {
	if !n.trained {
		return 0, ErrNotTrained
	}
	if len(row) != n.inputs {
		return 0, fmt.Errorf("feature width %d does not match network input %d", len(row), n.inputs)
	}
	return n.forward(row)[len(n.w)][0], nil
}
