// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ocrtools/ocrbatch/internal/engine"
)

// StubEngine is a test double for [engine.Engine]. The zero value
// succeeds for every path; failures are injected per input path.
type StubEngine struct {
	LoadFails map[string]bool // input paths whose Load fails
	SaveFails map[string]bool // input paths whose Save fails
	WorkDelay time.Duration   // artificial Save duration

	mu          sync.Mutex
	loads       []string
	saves       []string
	inFlight    int
	maxInFlight int
}

func (s *StubEngine) Load(ctx context.Context, path string) (*engine.Document, error) {
	s.mu.Lock()
	s.loads = append(s.loads, path)
	fail := s.LoadFails[path]
	s.mu.Unlock()

	if fail {
		return nil, errors.New("load failed")
	}
	return &engine.Document{Path: path}, nil
}

func (s *StubEngine) Save(ctx context.Context, doc *engine.Document, outputPath string, opts engine.SaveOptions) error {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	s.saves = append(s.saves, outputPath)
	fail := s.SaveFails[doc.Path]
	delay := s.WorkDelay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()

	if fail {
		return errors.New("save failed")
	}
	return nil
}

// Loads returns the input paths passed to Load, in call order.
func (s *StubEngine) Loads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.loads...)
}

// Saves returns the output paths passed to Save, in call order.
func (s *StubEngine) Saves() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saves...)
}

// MaxInFlight reports the peak number of concurrent Save calls observed.
func (s *StubEngine) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}
