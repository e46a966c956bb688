// Package events carries the activity feed over an embedded, in-process
// NATS server. Nothing is persisted: subscribers only see activity
// published while they are subscribed.
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/mark3labs/tokenforge/internal/logger"
)

// Kind classifies activity.
type Kind string

const (
	KindWallet     Kind = "wallet"
	KindStep       Kind = "step"
	KindSubmission Kind = "submission"
	KindCompletion Kind = "completion"
)

const subjectPrefix = "tokenforge.activity"

// Subject returns the subject activity of kind is published on.
// Example: "tokenforge.activity.wallet"
func Subject(kind Kind) string {
	return fmt.Sprintf("%s.%s", subjectPrefix, kind)
}

// SubjectAll matches every activity kind.
const SubjectAll = subjectPrefix + ".>"

// Activity is one feed entry.
type Activity struct {
	Kind    Kind      `json:"kind"`
	Flow    string    `json:"flow,omitempty"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Bus owns the embedded server and its in-process connection. A nil *Bus
// accepts publishes and drops them.
type Bus struct {
	ns *server.Server
	nc *nats.Conn

	mu     sync.Mutex
	closed bool
	now    func() time.Time
}

// Start launches an embedded NATS server that listens on no port and
// connects to it in-process.
func Start() (*Bus, error) {
	logger.Debug("starting embedded NATS server")

	ns, err := server.NewServer(&server.Options{
		DontListen: true,
		NoSigs:     true,
		NoLog:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}
	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}

	nc, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("connect in-process: %w", err)
	}
	logger.Debug("activity bus ready")
	return &Bus{ns: ns, nc: nc, now: time.Now}, nil
}

// Publish sends a on its kind's subject. A zero At is stamped with the
// current time.
func (b *Bus) Publish(a Activity) error {
	if b == nil {
		return nil
	}
	if a.At.IsZero() {
		a.At = b.now()
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}
	if err := b.nc.Publish(Subject(a.Kind), data); err != nil {
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}

// Subscribe delivers every activity to fn on a NATS dispatch goroutine.
// Malformed payloads are logged and skipped.
func (b *Bus) Subscribe(fn func(Activity)) (func(), error) {
	if b == nil {
		return func() {}, nil
	}
	sub, err := b.nc.Subscribe(SubjectAll, func(msg *nats.Msg) {
		var a Activity
		if err := json.Unmarshal(msg.Data, &a); err != nil {
			logger.Warn("dropping malformed activity on %s: %v", msg.Subject, err)
			return
		}
		fn(a)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe activity: %w", err)
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			logger.Debug("unsubscribe activity: %v", err)
		}
	}, nil
}

// Flush waits until the server has processed everything published so far.
func (b *Bus) Flush() error {
	if b == nil {
		return nil
	}
	return b.nc.Flush()
}

// Close drains the connection and shuts the server down. It is safe to
// call more than once.
func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	drainDone := make(chan error, 1)
	go func() {
		drainDone <- b.nc.Drain()
	}()
	select {
	case err := <-drainDone:
		if err != nil {
			logger.Warn("NATS drain failed, forcing close: %v", err)
			b.nc.Close()
		}
	case <-time.After(2 * time.Second):
		logger.Warn("NATS drain timed out after 2s, forcing close")
		b.nc.Close()
	}

	b.ns.Shutdown()
	shutdownDone := make(chan struct{})
	go func() {
		b.ns.WaitForShutdown()
		close(shutdownDone)
	}()
	select {
	case <-shutdownDone:
		logger.Debug("activity bus stopped")
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("nats server shutdown timed out")
	}
}
