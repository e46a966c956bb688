package events

import (
	"fmt"
	"sync"

	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/wallet"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

// FromEvent converts a wizard event into a feed entry.
func FromEvent(ev wizard.Event) Activity {
	a := Activity{Flow: ev.Flow}
	switch ev.Kind {
	case wizard.EventStepEntered:
		a.Kind = KindStep
		a.Message = fmt.Sprintf("%s: entered %s", ev.Flow, ev.Step)
	case wizard.EventSubmitted:
		a.Kind = KindSubmission
		a.Message = fmt.Sprintf("%s: transaction submitted", ev.Flow)
	case wizard.EventConfirmed:
		a.Kind = KindSubmission
		id := ""
		if ev.Receipt != nil {
			id = ev.Receipt.ID
		}
		a.Message = fmt.Sprintf("%s: transaction %s confirmed", ev.Flow, id)
	case wizard.EventFailed:
		a.Kind = KindSubmission
		a.Message = fmt.Sprintf("%s: transaction failed: %v", ev.Flow, ev.Err)
	case wizard.EventCompleted:
		a.Kind = KindCompletion
		a.Message = fmt.Sprintf("%s: finished", ev.Flow)
	default:
		a.Kind = KindStep
		a.Message = fmt.Sprintf("%s: %s", ev.Flow, ev.Kind)
	}
	return a
}

// WizardObserver returns an engine observer that publishes every event.
func (b *Bus) WizardObserver() func(wizard.Event) {
	return func(ev wizard.Event) {
		if err := b.Publish(FromEvent(ev)); err != nil {
			logger.Warn("publish wizard event: %v", err)
		}
	}
}

// WatchWallet publishes wallet connection changes until the returned
// function is called.
func (b *Bus) WatchWallet(s *wallet.Store) func() {
	return s.Subscribe(func(st wallet.State) {
		msg := "wallet disconnected"
		if st.Connected {
			msg = "wallet connected: " + wallet.ShortAddress(st.Address)
		}
		if err := b.Publish(Activity{Kind: KindWallet, Message: msg}); err != nil {
			logger.Warn("publish wallet change: %v", err)
		}
	})
}

// Feed keeps the most recent activity for display.
type Feed struct {
	mu    sync.Mutex
	limit int
	items []Activity
}

// NewFeed keeps at most limit entries; limit below 1 means 1.
func NewFeed(limit int) *Feed {
	if limit < 1 {
		limit = 1
	}
	return &Feed{limit: limit}
}

// Add appends a, evicting the oldest entry when full.
func (f *Feed) Add(a Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, a)
	if over := len(f.items) - f.limit; over > 0 {
		f.items = append([]Activity(nil), f.items[over:]...)
	}
}

// Items returns the entries, oldest first.
func (f *Feed) Items() []Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Activity(nil), f.items...)
}
