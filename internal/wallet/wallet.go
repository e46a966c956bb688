// Package wallet is the mock wallet connection shared by the home screen
// and the wizards. It holds no keys; connecting only flips a flag.
package wallet

import (
	"sync"

	"github.com/mark3labs/tokenforge/internal/logger"
)

// DefaultAddress is the mock address reported while connected.
const DefaultAddress = "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"

// DefaultTokens are the tickers the mock wallet holds.
var DefaultTokens = []string{"MYT", "DEMO", "TEST"}

// State is what subscribers receive on every change.
type State struct {
	Connected bool
	Address   string
}

type subscriber struct {
	id int
	fn func(State)
}

// Store is the connection flag with a subscriber list. Subscribers are
// called synchronously, in subscription order, after the lock is released.
type Store struct {
	mu        sync.Mutex
	connected bool
	address   string
	tokens    []string
	subs      []subscriber
	nextID    int
}

// NewStore creates a disconnected store. Empty arguments fall back to
// DefaultAddress and DefaultTokens.
func NewStore(address string, tokens []string) *Store {
	if address == "" {
		address = DefaultAddress
	}
	if len(tokens) == 0 {
		tokens = DefaultTokens
	}
	return &Store{
		address: address,
		tokens:  append([]string(nil), tokens...),
	}
}

// Connect marks the wallet connected.
func (s *Store) Connect() {
	s.update(func(bool) bool { return true })
}

// Disconnect marks the wallet disconnected.
func (s *Store) Disconnect() {
	s.update(func(bool) bool { return false })
}

// Toggle flips the connection and returns the new value.
func (s *Store) Toggle() bool {
	return s.update(func(on bool) bool { return !on })
}

// update applies next to the flag under the lock and notifies subscribers
// when it changed. It returns the resulting value.
func (s *Store) update(next func(bool) bool) bool {
	s.mu.Lock()
	on := next(s.connected)
	if s.connected == on {
		s.mu.Unlock()
		return on
	}
	s.connected = on
	st := s.state()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	logger.Debug("wallet connected=%t", on)
	for _, sub := range subs {
		sub.fn(st)
	}
	return on
}

func (s *Store) state() State {
	st := State{Connected: s.connected}
	if s.connected {
		st.Address = s.address
	}
	return st
}

// Connected reports the connection flag.
func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Address returns the wallet address, or "" while disconnected.
func (s *Store) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state().Address
}

// State returns a snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Tokens returns the tickers held by the wallet.
func (s *Store) Tokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Unsubscribing twice is harmless.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// ShortAddress abbreviates an address for headers: first 8 and last 6
// characters.
func ShortAddress(addr string) string {
	if len(addr) <= 17 {
		return addr
	}
	return addr[:8] + "…" + addr[len(addr)-6:]
}
