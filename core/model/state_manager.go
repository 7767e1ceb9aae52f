// Package model provides the shared state and snapshot types for fitted models.
package model

import (
	"sync"

	"github.com/YuminosukeSato/glmcore/pkg/errors"
)

// StateManager tracks whether a model has been fitted, in a thread-safe manner.
// Models embed it by composition.
type StateManager struct {
	mu sync.RWMutex

	name   string
	fitted bool

	// dimensions seen during fitting
	nFeatures int
	nSamples  int
}

// NewStateManager creates a StateManager for the named model.
func NewStateManager(name string) *StateManager {
	return &StateManager{name: name}
}

// Name returns the model name used in NotFittedError messages.
func (s *StateManager) Name() string {
	return s.name
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted with the given dimensions.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset resets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// Dimensions returns the number of features (including the intercept column)
// and samples seen during fitting.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a NotFittedError if the model has not been fitted.
func (s *StateManager) RequireFitted(method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(s.name, method)
	}
	return nil
}
