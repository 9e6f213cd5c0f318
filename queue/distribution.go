package queue

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler produces independent draws of a non-negative duration in days.
// The set of implementations is closed: Exponential for inter-arrival
// gaps, ShiftedExponential for service durations.
type Sampler interface {
	// Sample returns the next draw. Always >= 0.
	Sample() float64
}

// Exponential draws from an exponential distribution with the given rate
// (events per day); mean = 1/rate.
type Exponential struct {
	dist distuv.Exponential
}

// NewExponential creates an Exponential sampler over the given source.
// The rate must be positive.
func NewExponential(rate float64, src rand.Source) (*Exponential, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("exponential rate must be positive, got %f", rate)
	}
	return &Exponential{dist: distuv.Exponential{Rate: rate, Src: src}}, nil
}

func (e *Exponential) Sample() float64 {
	return e.dist.Rand()
}

// ShiftedExponential draws shift + Exponential(rate): a guaranteed minimum
// duration plus exponential variability beyond it.
type ShiftedExponential struct {
	shift float64
	dist  distuv.Exponential
}

// NewShiftedExponential creates a ShiftedExponential sampler over the given
// source. The rate must be positive and the shift non-negative; the
// estimator upholds both already, but they are checked here as well.
func NewShiftedExponential(rate, shift float64, src rand.Source) (*ShiftedExponential, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("shifted exponential rate must be positive, got %f", rate)
	}
	if shift < 0 {
		return nil, fmt.Errorf("shifted exponential shift must be non-negative, got %f", shift)
	}
	return &ShiftedExponential{
		shift: shift,
		dist:  distuv.Exponential{Rate: rate, Src: src},
	}, nil
}

func (s *ShiftedExponential) Sample() float64 {
	return s.shift + s.dist.Rand()
}
