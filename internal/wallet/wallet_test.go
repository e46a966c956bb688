package wallet

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore("", nil)
	assert.False(t, s.Connected())
	assert.Empty(t, s.Address(), "no address while disconnected")
	assert.Equal(t, DefaultTokens, s.Tokens())

	s.Connect()
	assert.Equal(t, DefaultAddress, s.Address())
}

func TestStore_ConnectDisconnect(t *testing.T) {
	s := NewStore("erd1test", []string{"ABC"})
	var got []State
	s.Subscribe(func(st State) { got = append(got, st) })

	s.Connect()
	s.Connect() // no change, no notification
	s.Disconnect()

	require.Len(t, got, 2)
	assert.Equal(t, State{Connected: true, Address: "erd1test"}, got[0])
	assert.Equal(t, State{}, got[1])
}

func TestStore_Toggle(t *testing.T) {
	s := NewStore("", nil)
	assert.True(t, s.Toggle())
	assert.True(t, s.Connected())
	assert.False(t, s.Toggle())
	assert.False(t, s.Connected())
}

func TestStore_ConcurrentTogglesEachFlip(t *testing.T) {
	s := NewStore("", nil)
	var notified atomic.Int64
	s.Subscribe(func(State) { notified.Add(1) })

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle()
		}()
	}
	wg.Wait()

	assert.False(t, s.Connected(), "an even number of flips ends disconnected")
	assert.Equal(t, int64(n), notified.Load(), "every toggle changes the flag")
}

func TestStore_SubscribersInOrderAndUnsubscribe(t *testing.T) {
	s := NewStore("", nil)
	var order []string
	unsubA := s.Subscribe(func(State) { order = append(order, "a") })
	s.Subscribe(func(State) { order = append(order, "b") })

	s.Connect()
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	unsubA()
	s.Disconnect()
	assert.Equal(t, []string{"a", "b", "b"}, order)
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	s := NewStore("", nil)
	var seen bool
	s.Subscribe(func(State) { seen = s.Connected() })
	s.Connect()
	assert.True(t, seen)
}

func TestStore_TokensAreCopied(t *testing.T) {
	in := []string{"ABC"}
	s := NewStore("", in)
	in[0] = "XYZ"
	out := s.Tokens()
	out[0] = "QQQ"
	assert.Equal(t, []string{"ABC"}, s.Tokens())
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "erd1qyu5…ycr6th", ShortAddress(DefaultAddress))
	assert.Equal(t, "short", ShortAddress("short"))
}
