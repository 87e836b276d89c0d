package mcts

import "math"

// GetPi reads child visit counts off the root and writes a move-probability
// distribution into out (length size*size, zero-filled first, never
// allocated by this call). Below visitEps, temperature is treated as
// argmax: ties across the maximum visit count split probability 1/k.
// Otherwise, visit counts are raised to the 1/temperature power and
// normalized (Boltzmann mode).
func (e *Engine) GetPi(temperature float64, out []float64) {
	e.ensureRoot()
	for i := range out {
		out[i] = 0
	}

	if temperature < visitEps {
		e.getPiArgmax(out)
		return
	}
	e.getPiBoltzmann(temperature, out)
}

func (e *Engine) getPiArgmax(out []float64) {
	var maxVisits uint32
	indices := make([]int, 0, e.size*e.size)

	for x := 0; x < e.size; x++ {
		for y := 0; y < e.size; y++ {
			child := e.root.Child(x, y)
			if child == nil {
				continue
			}
			idx := e.root.idx(x, y)
			switch {
			case child.N() > maxVisits:
				maxVisits = child.N()
				indices = indices[:0]
				indices = append(indices, idx)
			case child.N() == maxVisits:
				indices = append(indices, idx)
			}
		}
	}

	if len(indices) == 0 {
		return
	}
	share := 1.0 / float64(len(indices))
	for _, idx := range indices {
		out[idx] = share
	}
}

func (e *Engine) getPiBoltzmann(temperature float64, out []float64) {
	denom := 0.0
	for x := 0; x < e.size; x++ {
		for y := 0; y < e.size; y++ {
			child := e.root.Child(x, y)
			if child == nil {
				continue
			}
			idx := e.root.idx(x, y)
			out[idx] = math.Pow(float64(child.N()), 1/temperature)
			denom += out[idx]
		}
	}
	if denom == 0 {
		return
	}
	for i := range out {
		out[i] /= denom
	}
}
