package state

import (
	"fmt"
	"slices"
	"sync"

	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
)

// Store holds the current State and applies actions to it.
type Store struct {
	mu      sync.RWMutex
	current *State

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Action)
}

// NewStore seeds a store from record. It fails with ErrEmptyModel when the
// record carries no columns and no values.
func NewStore(record model.Record) (*Store, error) {
	if record.Empty() {
		return nil, ErrEmptyModel
	}
	s := &State{Model: record.Clone()}
	if err := (AddColumns{}).apply(s); err != nil {
		return nil, fmt.Errorf("seed columns: %w", err)
	}
	return &Store{current: s, subs: make(map[int]func(Action))}, nil
}

// Dispatch applies a to a copy of the current state and publishes the copy.
// When the action fails the current state is kept and the error returned.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	next := s.current.clone()
	if err := a.apply(next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", a.Type(), err)
	}
	s.current = next
	s.mu.Unlock()

	s.notify(a)
	return nil
}

// Current returns the published state. It is shared and must not be
// modified; use Snapshot for a private copy.
func (s *Store) Current() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.deepCopy()
}

// Subscribe registers fn to run after every successful dispatch.
func (s *Store) Subscribe(fn func(Action)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(a Action) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Action), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(a)
	}
}

// FormatSource adapts the store to datatype.Source. Every call reads the
// current state.
func (s *Store) FormatSource() datatype.Source { return formatSource{s} }

type formatSource struct{ s *Store }

func (f formatSource) StringFormatForColumn(name string) (datatype.StringFormat, bool) {
	return f.s.Current().StringFormatForColumn(name)
}

func (f formatSource) StringFormatForType(name string) (datatype.StringFormat, bool) {
	return f.s.Current().StringFormatForType(name)
}

func (f formatSource) TimeStrings() []string             { return f.s.Current().TimeStrings() }
func (f formatSource) TimeZone() string                  { return f.s.Current().TimeZone() }
func (f formatSource) FormatForTimes() datatype.TimeUnit { return f.s.Current().FormatForTimes() }
