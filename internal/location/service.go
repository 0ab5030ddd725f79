package location

import (
	"errors"
	"sync"
)

var ErrMissingField = errors.New("zip and city are required")

// Location is the household's area, used only as prompt context for the
// advisor. No validation beyond presence.
type Location struct {
	Zip  string
	City string
}

// Service holds the process-wide location. One instance per server, guarded
// by a mutex so concurrent set/get cannot tear.
type Service struct {
	mu  sync.Mutex
	loc Location
}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Set(zip, city string) error {
	if zip == "" || city == "" {
		return ErrMissingField
	}

	s.mu.Lock()
	s.loc = Location{Zip: zip, City: city}
	s.mu.Unlock()

	return nil
}

func (s *Service) Get() Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loc
}
