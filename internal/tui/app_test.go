package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/tokenforge/internal/events"
	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/liquidity"
	"github.com/mark3labs/tokenforge/internal/tui/components"
	"github.com/mark3labs/tokenforge/internal/tui/issuewizard"
	"github.com/mark3labs/tokenforge/internal/tui/liquiditywizard"
	"github.com/mark3labs/tokenforge/internal/wallet"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func newApp(t *testing.T, bus *events.Bus) (*App, *wallet.Store) {
	t.Helper()
	store := wallet.NewStore("", []string{"MYT"})
	submitter := func() *wizard.Submitter {
		return wizard.NewSubmitter(time.Millisecond, wizard.WithSleep(func(time.Duration) {}))
	}
	a := New(Options{
		Wallet:  store,
		Bus:     bus,
		Network: "devnet",
		NewIssuance: func() *issuance.Flow {
			return issuance.NewFlow(issuance.Config{Submitter: submitter()})
		},
		NewLiquidity: func() *liquidity.Flow {
			return liquidity.NewFlow(liquidity.Config{HeldTokens: store.Tokens(), Submitter: submitter()})
		},
	})
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, store
}

func TestApp_WizardsNeedWallet(t *testing.T) {
	a, store := newApp(t, nil)
	assert.Contains(t, ansi.Strip(a.Render()), "Wallet disconnected")

	a.Update(key("i"))
	assert.Nil(t, a.active)
	assert.Contains(t, ansi.Strip(a.Render()), "Connect a wallet first")

	a.Update(key("w"))
	require.True(t, store.Connected())
	out := ansi.Strip(a.Render())
	assert.Contains(t, out, "Disconnect")
	assert.Contains(t, out, wallet.ShortAddress(wallet.DefaultAddress))

	a.Update(key("i"))
	_, ok := a.active.(*issuewizard.Model)
	assert.True(t, ok)
}

func TestApp_MenuFocusSkipsDisabled(t *testing.T) {
	a, _ := newApp(t, nil)
	assert.Equal(t, menuWallet, a.menu.FocusedButton())

	a.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, menuQuit, a.menu.FocusedButton())
	a.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, menuWallet, a.menu.FocusedButton(), "issue and liquidity are disabled")

	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	a.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, menuLiquidity, a.menu.FocusedButton())

	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, ok := a.active.(*liquiditywizard.Model)
	assert.True(t, ok)
}

func TestApp_ExitReturnsHome(t *testing.T) {
	a, store := newApp(t, nil)
	store.Connect()
	a.Update(key("i"))
	require.NotNil(t, a.active)

	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	a.Update(cmd())
	assert.Nil(t, a.active)

	a.Update(components.ExitMsg{
		Flow:      issuance.FlowName,
		Completed: true,
		Receipt:   &wizard.Receipt{ID: "abc"},
	})
	assert.Contains(t, ansi.Strip(a.Render()), "Token issued (abc)")
}

func TestApp_ActivityFeed(t *testing.T) {
	bus, err := events.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })

	a, store := newApp(t, bus)
	unwatch := bus.WatchWallet(store)
	defer unwatch()
	assert.Contains(t, ansi.Strip(a.Render()), "nothing yet")

	store.Connect()
	require.NoError(t, bus.Flush())

	cmd := a.Init()
	require.NotNil(t, cmd)
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		a.Update(msg)
	case <-time.After(5 * time.Second):
		t.Fatal("no activity delivered")
	}
	assert.Contains(t, ansi.Strip(a.Render()), "wallet connected: "+wallet.ShortAddress(wallet.DefaultAddress))
}

func TestApp_QuitKeys(t *testing.T) {
	a, _ := newApp(t, nil)
	_, cmd := a.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
