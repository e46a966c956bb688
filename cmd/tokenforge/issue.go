package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/tui/issuewizard"
	"github.com/mark3labs/tokenforge/internal/wallet"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

var issueFlags struct {
	name         string
	ticker       string
	supply       string
	decimals     string
	preset       string
	capabilities []string
	acceptTerms  bool
	headless     bool
}

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a new token",
	Long: `Issue a new token through the issuance wizard.

Flags prefill the wizard. With --headless the wizard is skipped and the
token is issued from the flags alone; --accept-terms is then required.`,
	RunE: runIssue,
}

func init() {
	f := issueCmd.Flags()
	f.StringVarP(&issueFlags.name, "name", "n", "", "Token name")
	f.StringVarP(&issueFlags.ticker, "ticker", "t", "", "Ticker, 3-10 letters or digits (default: suggested from the name)")
	f.StringVarP(&issueFlags.supply, "supply", "s", "", "Initial supply (default: 1000000)")
	f.StringVarP(&issueFlags.decimals, "decimals", "d", "", "Decimals, 0-18 (default: 18)")
	f.StringVarP(&issueFlags.preset, "preset", "p", "", "Capability preset: recommended, fixed or full")
	f.StringSliceVarP(&issueFlags.capabilities, "capability", "c", nil, "Enable only these capabilities (e.g. canMint,canBurn)")
	f.BoolVar(&issueFlags.acceptTerms, "accept-terms", false, "Accept the terms and conditions")
	f.BoolVar(&issueFlags.headless, "headless", false, "Issue without the TUI")
}

func runIssue(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cfg, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	if issueFlags.headless {
		rt.observers = append(rt.observers, traceObserver)
	}

	flow := rt.newIssuance()
	if err := prefillIssuance(flow); err != nil {
		return err
	}

	if !issueFlags.headless {
		res, err := issuewizard.Run(flow, rt.wallet.Address())
		if err != nil {
			return err
		}
		if res.Completed && res.Receipt != nil {
			printIssued(res.Form, *res.Receipt)
		}
		return nil
	}
	return issueHeadless(flow, rt.wallet)
}

// prefillIssuance copies the flags into the form.
func prefillIssuance(flow *issuance.Flow) error {
	for field, v := range map[string]string{
		issuance.FieldName:     issueFlags.name,
		issuance.FieldTicker:   issueFlags.ticker,
		issuance.FieldSupply:   issueFlags.supply,
		issuance.FieldDecimals: issueFlags.decimals,
	} {
		if v == "" {
			continue
		}
		if _, err := flow.SetField(field, v); err != nil {
			return err
		}
	}
	if issueFlags.ticker == "" && issueFlags.name != "" {
		if s := flow.Preview().SuggestedTicker; s != "" {
			if _, err := flow.SetField(issuance.FieldTicker, s); err != nil {
				return err
			}
		}
	}

	if issueFlags.preset != "" {
		p, err := issuance.ParsePreset(issueFlags.preset)
		if err != nil {
			return err
		}
		if _, err := flow.ApplyPreset(p); err != nil {
			return err
		}
	}
	if len(issueFlags.capabilities) > 0 {
		for _, c := range issueFlags.capabilities {
			if !slices.Contains(issuance.CapabilityFields, c) {
				return fmt.Errorf("unknown capability %q (valid: %v)", c, issuance.CapabilityFields)
			}
		}
		if slices.Contains(issueFlags.capabilities, issuance.FieldCanWipe) &&
			!slices.Contains(issueFlags.capabilities, issuance.FieldCanFreeze) {
			return fmt.Errorf("capability %s requires %s", issuance.FieldCanWipe, issuance.FieldCanFreeze)
		}
		if _, err := flow.ApplyPreset(issuance.PresetFixed); err != nil {
			return err
		}
		// Freeze first so wipe is accepted in any flag order.
		ordered := slices.Clone(issueFlags.capabilities)
		slices.SortStableFunc(ordered, func(a, b string) int {
			switch {
			case a == issuance.FieldCanFreeze:
				return -1
			case b == issuance.FieldCanFreeze:
				return 1
			}
			return 0
		})
		for _, c := range ordered {
			if _, err := flow.Toggle(c, true); err != nil {
				return err
			}
		}
	}
	if issueFlags.acceptTerms {
		if _, err := flow.Toggle(issuance.FieldTermsAccepted, true); err != nil {
			return err
		}
	}
	return nil
}

func issueHeadless(flow *issuance.Flow, w *wallet.Store) error {
	form := flow.Form()
	p := flow.Preview()

	printHeader("Issuing token")
	printKV("Name", form.Name)
	printKV("Ticker", form.Ticker)
	printKV("Supply", form.Supply)
	printKV("Decimals", form.Decimals)
	printKV("Raw supply", p.RawSupply)
	printKV("Issuance fee", p.FeeDisplay+" "+form.Ticker)
	printKV("Capabilities", fmt.Sprint(form.Capabilities()))
	printKV("Issuer", wallet.ShortAddress(w.Address()))
	fmt.Println()

	// basic info, then capabilities
	for range 2 {
		if _, err := flow.Next(); err != nil {
			return err
		}
	}
	if err := flow.Begin(); err != nil {
		if errors.Is(err, wizard.ErrNotAcknowledged) {
			return fmt.Errorf("%w (pass --accept-terms)", err)
		}
		return err
	}

	var receipt wizard.Receipt
	err := withSpinner(fmt.Sprintf("Issuing %s...", form.Ticker), func() error {
		r, err := flow.Await()
		receipt = r
		return flow.Finish(r, err)
	})
	if err != nil {
		color.Red("✗ %v", err)
		return err
	}
	if err := flow.Complete(); err != nil {
		return err
	}
	printIssued(form, receipt)
	return nil
}

func printIssued(form issuance.Form, r wizard.Receipt) {
	color.Green("✓ %s (%s) issued", form.Name, form.Ticker)
	printKV("Transaction", r.ID)
	printKV("Confirmed", r.ConfirmedAt.Format("2006-01-02 15:04:05"))
}
