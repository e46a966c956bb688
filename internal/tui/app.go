// Package tui is the TokenForge home screen: wallet status, the activity
// feed and a menu that opens the issuance and liquidity wizards.
package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/tokenforge/internal/events"
	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/liquidity"
	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/tui/components"
	"github.com/mark3labs/tokenforge/internal/tui/issuewizard"
	"github.com/mark3labs/tokenforge/internal/tui/liquiditywizard"
	"github.com/mark3labs/tokenforge/internal/tui/theme"
	"github.com/mark3labs/tokenforge/internal/wallet"
)

// Menu entries, in button order.
const (
	menuIssue = iota
	menuLiquidity
	menuWallet
	menuQuit
)

// feedSize is how many activity lines the home screen keeps.
const feedSize = 8

// Options wires the App to its collaborators. Wallet and the flow
// factories are required; Bus may be nil.
type Options struct {
	Wallet  *wallet.Store
	Bus     *events.Bus
	Network string

	NewIssuance  func() *issuance.Flow
	NewLiquidity func() *liquidity.Flow
}

// ActivityMsg delivers one bus entry to the update loop.
type ActivityMsg struct {
	Activity events.Activity
}

// App is the root BubbleTea model.
type App struct {
	opts   Options
	width  int
	height int

	menu          *components.ButtonBar
	menuConnected bool
	notice        string
	errMsg        string

	feed     *events.Feed
	activity chan events.Activity
	unsub    func()

	// active is the open wizard, nil on the home screen.
	active tea.Model
}

// New creates the app. Call Close when the program has exited.
func New(opts Options) *App {
	a := &App{
		opts:     opts,
		width:    100,
		height:   30,
		feed:     events.NewFeed(feedSize),
		activity: make(chan events.Activity, 64),
	}
	a.rebuildMenu(menuIssue)

	if opts.Bus != nil {
		unsub, err := opts.Bus.Subscribe(func(act events.Activity) {
			select {
			case a.activity <- act:
			default:
				logger.Warn("activity feed full, dropping %q", act.Message)
			}
		})
		if err != nil {
			logger.Warn("activity feed unavailable: %v", err)
		} else {
			a.unsub = unsub
		}
	}
	return a
}

// Run starts the program and blocks until the user quits.
func Run(opts Options) error {
	a := New(opts)
	defer a.Close()

	if _, err := tea.NewProgram(a).Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// Close stops the feed subscription.
func (a *App) Close() {
	if a.unsub != nil {
		a.unsub()
		a.unsub = nil
	}
}

// Init starts listening for activity.
func (a *App) Init() tea.Cmd {
	return a.waitForActivity()
}

func (a *App) waitForActivity() tea.Cmd {
	if a.opts.Bus == nil {
		return nil
	}
	ch := a.activity
	return func() tea.Msg {
		return ActivityMsg{Activity: <-ch}
	}
}

// Update handles messages for the app.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.active != nil {
			_, cmd := a.active.Update(msg)
			return a, cmd
		}
		return a, nil

	case ActivityMsg:
		a.feed.Add(msg.Activity)
		return a, a.waitForActivity()

	case components.ExitMsg:
		a.active = nil
		a.errMsg = ""
		a.notice = exitNotice(msg)
		return a, nil
	}

	if a.active != nil {
		_, cmd := a.active.Update(msg)
		return a, cmd
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		return a, a.handleKey(key)
	}
	return a, nil
}

func exitNotice(msg components.ExitMsg) string {
	if !msg.Completed {
		return ""
	}
	id := ""
	if msg.Receipt != nil {
		id = " (" + msg.Receipt.ID + ")"
	}
	switch msg.Flow {
	case issuance.FlowName:
		return "Token issued" + id
	case liquidity.FlowName:
		return "Pool created" + id
	default:
		return msg.Flow + " finished" + id
	}
}

func (a *App) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if a.menuConnected != a.opts.Wallet.Connected() {
		a.rebuildMenu(a.menu.FocusedButton())
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return tea.Quit
	case "tab", "right", "l":
		a.menu.FocusNext()
	case "shift+tab", "left", "h":
		a.menu.FocusPrev()
	case "i":
		return a.activate(menuIssue)
	case "a":
		return a.activate(menuLiquidity)
	case "w":
		return a.activate(menuWallet)
	case "enter":
		return a.activate(a.menu.FocusedButton())
	}
	return nil
}

func (a *App) activate(item int) tea.Cmd {
	a.notice = ""
	a.errMsg = ""

	switch item {
	case menuIssue, menuLiquidity:
		if !a.opts.Wallet.Connected() {
			a.errMsg = "Connect a wallet first (press w)"
			return nil
		}
		return a.open(item)
	case menuWallet:
		a.opts.Wallet.Toggle()
		a.rebuildMenu(menuWallet)
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (a *App) open(item int) tea.Cmd {
	size := tea.WindowSizeMsg{Width: a.width, Height: a.height}
	var m tea.Model
	if item == menuIssue {
		m = issuewizard.New(issuewizard.Options{
			Flow:     a.opts.NewIssuance(),
			Embedded: true,
			Address:  a.opts.Wallet.Address(),
		})
	} else {
		m = liquiditywizard.New(liquiditywizard.Options{
			Flow:     a.opts.NewLiquidity(),
			Embedded: true,
		})
	}
	m.Update(size)
	a.active = m
	return m.Init()
}

func (a *App) menuButtons() []components.Button {
	walletLabel := "Connect Wallet"
	if a.opts.Wallet.Connected() {
		walletLabel = "Disconnect"
	}
	gated := components.ButtonNormal
	if !a.opts.Wallet.Connected() {
		gated = components.ButtonDisabled
	}
	return []components.Button{
		{Label: "Issue Token", State: gated},
		{Label: "Add Liquidity", State: gated},
		{Label: walletLabel, State: components.ButtonNormal},
		{Label: "Quit", State: components.ButtonNormal},
	}
}

func (a *App) rebuildMenu(focus int) {
	a.menuConnected = a.opts.Wallet.Connected()
	a.menu = components.NewButtonBar(a.menuButtons())
	if !a.menu.Focus(focus) {
		a.menu.FocusNext()
	}
}

// View renders the app.
func (a *App) View() tea.View {
	if a.active != nil {
		return a.active.View()
	}
	return components.Screen(a.Render(), a.width, a.height)
}

// Render returns the home screen as a string.
func (a *App) Render() string {
	s := theme.Current().S()
	inner := components.InnerWidth(components.ModalWidth(a.width))

	st := a.opts.Wallet.State()
	walletLine := s.Muted.Render("○ Wallet disconnected")
	if st.Connected {
		walletLine = s.Success.Render("● ") + s.Text.Render("Wallet ") + s.Value.Render(wallet.ShortAddress(st.Address))
	}
	if a.opts.Network != "" {
		walletLine += s.Muted.Render("  ·  " + a.opts.Network)
	}

	a.menu.SetWidth(inner)
	sections := []string{
		s.Text.Render("Issue a token or seed a liquidity pool. Nothing leaves this machine."),
		"",
		walletLine,
		"",
		a.menu.Render(),
	}
	if a.errMsg != "" {
		sections = append(sections, "", s.Error.Render("✗ "+a.errMsg))
	}
	if a.notice != "" {
		sections = append(sections, "", s.Success.Render("✓ "+a.notice))
	}

	sections = append(sections, "", s.Label.Render("Activity"), a.renderFeed())
	sections = append(sections, "", components.RenderHintBar(
		"←→", "select", "enter", "open", "i", "issue", "a", "liquidity", "w", "wallet", "q", "quit",
	))

	return components.Modal("TokenForge", lipgloss.JoinVertical(lipgloss.Left, sections...), a.width, a.height)
}

func (a *App) renderFeed() string {
	s := theme.Current().S()
	items := a.feed.Items()
	if len(items) == 0 {
		return s.Muted.Render("  nothing yet")
	}
	lines := make([]string, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		stamp := ""
		if !it.At.IsZero() {
			stamp = it.At.Format("15:04:05") + "  "
		}
		lines = append(lines, "  "+s.Muted.Render(stamp)+s.Text.Render(it.Message))
	}
	return strings.Join(lines, "\n")
}
