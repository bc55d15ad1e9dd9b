// Package model loads the serialized tsunami-potential network and runs its
// forward pass. The artifact is a JSON export of a dense feed-forward network:
//
//	{
//	  "name": "novianty2018",
//	  "input_size": 5,
//	  "layers": [
//	    {"weights": [[...], ...], "bias": [...], "activation": "sigmoid"}
//	  ]
//	}
//
// Weights are laid out [out][in]. A Network is immutable after Load and safe for
// concurrent use.
package model

import (
	"fmt"
	"math"
)

// Activation names accepted in the artifact.
const (
	ActivationLinear  = "linear"
	ActivationSigmoid = "sigmoid"
	ActivationTanh    = "tanh"
	ActivationReLU    = "relu"
	ActivationSoftmax = "softmax"
)

// Layer is one fully connected layer.
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

func (l *Layer) fanIn() int {
	if len(l.Weights) == 0 {
		return 0
	}
	return len(l.Weights[0])
}

func (l *Layer) fanOut() int {
	return len(l.Weights)
}

// Network is a dense feed-forward network.
type Network struct {
	Name      string  `json:"name"`
	InputSize int     `json:"input_size"`
	Layers    []Layer `json:"layers"`
}

// Validate checks that the layers chain and that every activation is known.
func (n *Network) Validate() error {
	if n.InputSize <= 0 {
		return fmt.Errorf("input_size must be positive, got %d", n.InputSize)
	}
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	width := n.InputSize
	for i := range n.Layers {
		l := &n.Layers[i]
		if l.fanOut() == 0 {
			return fmt.Errorf("layer %d has no units", i)
		}
		if l.fanIn() != width {
			return fmt.Errorf("layer %d expects %d inputs, previous width is %d", i, l.fanIn(), width)
		}
		for j, row := range l.Weights {
			if len(row) != width {
				return fmt.Errorf("layer %d unit %d has %d weights, want %d", i, j, len(row), width)
			}
		}
		if len(l.Bias) != l.fanOut() {
			return fmt.Errorf("layer %d has %d biases for %d units", i, len(l.Bias), l.fanOut())
		}
		switch l.Activation {
		case ActivationLinear, "", ActivationSigmoid, ActivationTanh, ActivationReLU, ActivationSoftmax:
		default:
			return fmt.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
		width = l.fanOut()
	}
	return nil
}

// OutputSize is the width of the final layer.
func (n *Network) OutputSize() int {
	return n.Layers[len(n.Layers)-1].fanOut()
}

// Forward runs x through every layer. It does not modify the network.
func (n *Network) Forward(x []float64) ([]float64, error) {
	if len(x) != n.InputSize {
		return nil, fmt.Errorf("input has %d features, model expects %d", len(x), n.InputSize)
	}
	a := x
	for i := range n.Layers {
		a = n.Layers[i].apply(a)
	}
	return a, nil
}

func (l *Layer) apply(x []float64) []float64 {
	out := make([]float64, len(l.Weights))
	for j, row := range l.Weights {
		sum := l.Bias[j]
		for k, w := range row {
			sum += w * x[k]
		}
		out[j] = sum
	}
	activate(l.Activation, out)
	return out
}

func activate(name string, v []float64) {
	switch name {
	case ActivationSigmoid:
		for i := range v {
			v[i] = 1 / (1 + math.Exp(-v[i]))
		}
	case ActivationTanh:
		for i := range v {
			v[i] = math.Tanh(v[i])
		}
	case ActivationReLU:
		for i := range v {
			v[i] = math.Max(0, v[i])
		}
	case ActivationSoftmax:
		peak := math.Inf(-1)
		for _, x := range v {
			peak = math.Max(peak, x)
		}
		var sum float64
		for i := range v {
			v[i] = math.Exp(v[i] - peak)
			sum += v[i]
		}
		for i := range v {
			v[i] /= sum
		}
	}
}
