// Package session holds the observable, process-wide wallet session state.
package session

import (
	"sync"
	"time"
)

// Status of the wallet session
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnected    Status = "connected"
)

// State is a snapshot of the session
type State struct {
	CurrentAccount string
	Status         Status
	UpdatedAt      time.Time
}

// Connected reports whether an account is set
func (s State) Connected() bool {
	return s.Status == StatusConnected
}

// Listener receives the new state after every change
type Listener func(State)

// Store is a change-notifying holder for State. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[uint64]Listener
	nextID    uint64
	now       func() time.Time
}

// NewStore returns a store in the Disconnected state
func NewStore() *Store {
	return &Store{
		state:     State{Status: StatusDisconnected},
		listeners: make(map[uint64]Listener),
		now:       time.Now,
	}
}

// Get returns the current snapshot
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetAccount moves the session to Connected with the given account.
// Setting the account already held is a no-op and notifies nobody.
func (s *Store) SetAccount(account string) {
	s.mu.Lock()
	if s.state.Connected() && s.state.CurrentAccount == account {
		s.mu.Unlock()
		return
	}
	s.state = State{
		CurrentAccount: account,
		Status:         StatusConnected,
		UpdatedAt:      s.now(),
	}
	snapshot, listeners := s.state, s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, snapshot)
}

// Reset returns the session to Disconnected
func (s *Store) Reset() {
	s.mu.Lock()
	if !s.state.Connected() {
		s.mu.Unlock()
		return
	}
	s.state = State{Status: StatusDisconnected, UpdatedAt: s.now()}
	snapshot, listeners := s.state, s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, snapshot)
}

// Subscribe registers fn for change notifications and returns a func that removes it.
// Listeners run synchronously on the writer's goroutine, outside the store lock.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []Listener, state State) {
	for _, l := range listeners {
		l(state)
	}
}
