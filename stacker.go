package nearmatch

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Stacker accumulates equal-length sample vectors by composite key and
// emits one averaged vector per unique key, in ascending key order.
// Typical use: stacking records that share a header key combination.
type Stacker struct {
	table    *Table[float64, stackBin]
	nsamples int
}

// stackBin is the running accumulator for one key.
type stackBin struct {
	sum  []float64
	fold int
}

// Stack is one averaged output of a Stacker.
type Stack struct {
	Key     []float64
	Samples []float64
	// Fold is the number of inputs accumulated under this key.
	Fold int
}

// NewStacker returns a Stacker for composite keys of the given arity over
// sample vectors of length nsamples. maxKeys caps the number of unique
// keys; 0 means unlimited.
func NewStacker(arity, nsamples, maxKeys int) (*Stacker, error) {
	if nsamples < 1 {
		return nil, fmt.Errorf("nearmatch: Stacker nsamples must be >= 1, got %d", nsamples)
	}
	table, err := NewTable[float64, stackBin](arity, maxKeys)
	if err != nil {
		return nil, err
	}
	return &Stacker{table: table, nsamples: nsamples}, nil
}

// Add accumulates one sample vector under key.
func (s *Stacker) Add(key, samples []float64) error {
	if len(samples) != s.nsamples {
		return fmt.Errorf("nearmatch: sample vector has length %d, want %d", len(samples), s.nsamples)
	}
	pos, inserted, err := s.table.FindOrInsert(key)
	if err != nil {
		return err
	}
	bin := s.table.Payload(pos)
	if inserted {
		bin.sum = make([]float64, s.nsamples)
	}
	floats.Add(bin.sum, samples)
	bin.fold++
	return nil
}

// Len returns the number of unique keys accumulated so far.
func (s *Stacker) Len() int { return s.table.Len() }

// Stacks returns one averaged output per unique key, ascending by key.
// The returned vectors are freshly allocated; the Stacker can keep
// accumulating afterwards.
func (s *Stacker) Stacks() []Stack {
	out := make([]Stack, s.table.Len())
	for i := range out {
		bin := s.table.Payload(i)
		avg := make([]float64, s.nsamples)
		floats.AddScaled(avg, 1/float64(bin.fold), bin.sum)
		out[i] = Stack{
			Key:     s.table.Key(i),
			Samples: avg,
			Fold:    bin.fold,
		}
	}
	return out
}
