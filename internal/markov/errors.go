package markov

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrNoTrainingData is matched by every *NoTrainingDataError.
var ErrNoTrainingData = errors.New("no trainable data")

// NoTrainingDataError is returned when a chain has no sentence starts, e.g.
// because the corpus holds no lines for the requested speaker.
type NoTrainingDataError struct {
	Speaker string
}

func (e *NoTrainingDataError) Error() string {
	if e.Speaker == "" {
		return ErrNoTrainingData.Error()
	}
	return fmt.Sprintf("%s for speaker %q", ErrNoTrainingData, e.Speaker)
}

// Is makes errors.Is(err, ErrNoTrainingData) hold.
func (e *NoTrainingDataError) Is(target error) bool {
	return target == ErrNoTrainingData
}

// InvalidProbabilityError is returned for a probability outside [0, 1].
type InvalidProbabilityError struct {
	Probability float64
}

func (e *InvalidProbabilityError) Error() string {
	return fmt.Sprintf("probability %v must be between 0 and 1 inclusive", e.Probability)
}

// RandomBool returns true with probability p.
func RandomBool(r *rand.Rand, p float64) (bool, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return false, &InvalidProbabilityError{Probability: p}
	}
	return r.Float64() < p, nil
}
