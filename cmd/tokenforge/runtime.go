package main

import (
	"fmt"

	"github.com/mark3labs/tokenforge/internal/config"
	"github.com/mark3labs/tokenforge/internal/events"
	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/liquidity"
	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/wallet"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

// runtime is the composition root shared by the commands: one wallet, one
// activity bus and factories for flows wired to both.
type runtime struct {
	cfg     *config.Config
	wallet  *wallet.Store
	bus     *events.Bus
	unwatch func()

	// observers receive every wizard event in addition to the bus.
	observers []func(wizard.Event)
}

// newRuntime starts the activity bus and creates the wallet. connect
// connects the mock wallet up front, as direct subcommands do.
func newRuntime(cfg *config.Config, connect bool) (*runtime, error) {
	bus, err := events.Start()
	if err != nil {
		return nil, fmt.Errorf("failed to start activity bus: %w", err)
	}

	rt := &runtime{
		cfg:    cfg,
		wallet: wallet.NewStore(cfg.Wallet.Address, cfg.Wallet.Tokens),
		bus:    bus,
	}
	rt.unwatch = bus.WatchWallet(rt.wallet)
	if connect {
		rt.wallet.Connect()
	}
	return rt, nil
}

// Close stops the bus.
func (rt *runtime) Close() {
	if rt.unwatch != nil {
		rt.unwatch()
	}
	if err := rt.bus.Close(); err != nil {
		logger.Warn("closing activity bus: %v", err)
	}
}

func (rt *runtime) submitter() *wizard.Submitter {
	// Validate already rejected a malformed delay.
	delay, _ := rt.cfg.SubmitDelay()
	var opts []wizard.SubmitOption
	if n := rt.cfg.Submission.Fail; n > 0 {
		opts = append(opts, wizard.WithFailureHook(wizard.FailTimes(n)))
	}
	return wizard.NewSubmitter(delay, opts...)
}

func (rt *runtime) allObservers() []func(wizard.Event) {
	return append([]func(wizard.Event){rt.bus.WizardObserver()}, rt.observers...)
}

func (rt *runtime) newIssuance() *issuance.Flow {
	return issuance.NewFlow(issuance.Config{
		Submitter: rt.submitter(),
		Observers: rt.allObservers(),
	})
}

func (rt *runtime) newLiquidity() *liquidity.Flow {
	return liquidity.NewFlow(liquidity.Config{
		NativeCurrency: rt.cfg.Network.NativeCurrency,
		HeldTokens:     rt.wallet.Tokens(),
		PairingTokens:  rt.cfg.Network.PairingTokens,
		Submitter:      rt.submitter(),
		Observers:      rt.allObservers(),
	})
}
