package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mark3labs/tokenforge/internal/liquidity"
	"github.com/mark3labs/tokenforge/internal/tui/liquiditywizard"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

var liquidityFlags struct {
	token         string
	pairing       string
	amount        string
	pairingAmount string
	acceptRisks   bool
	headless      bool
}

var liquidityCmd = &cobra.Command{
	Use:     "liquidity",
	Aliases: []string{"pool"},
	Short:   "Create a liquidity pool for a token",
	Long: `Create a liquidity pool through the liquidity wizard.

Flags prefill the wizard. With --headless the pool is created from the
flags alone: deposits are made automatically and --accept-risks is
required.`,
	RunE: runLiquidity,
}

func init() {
	f := liquidityCmd.Flags()
	f.StringVarP(&liquidityFlags.token, "token", "t", "", "Your token (must be held by the wallet)")
	f.StringVarP(&liquidityFlags.pairing, "pairing", "p", "", "Pairing token (default: the native currency)")
	f.StringVarP(&liquidityFlags.amount, "amount", "a", "", "Amount of your token")
	f.StringVarP(&liquidityFlags.pairingAmount, "pairing-amount", "b", "", "Amount of the pairing token")
	f.BoolVar(&liquidityFlags.acceptRisks, "accept-risks", false, "Acknowledge the impermanent loss risks")
	f.BoolVar(&liquidityFlags.headless, "headless", false, "Create the pool without the TUI")
}

func runLiquidity(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cfg, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	if liquidityFlags.headless {
		rt.observers = append(rt.observers, traceObserver)
	}

	flow := rt.newLiquidity()
	if err := prefillLiquidity(flow); err != nil {
		return err
	}

	if !liquidityFlags.headless {
		res, err := liquiditywizard.Run(flow)
		if err != nil {
			return err
		}
		if res.Completed && res.Receipt != nil {
			printPool(flow, res.Form, *res.Receipt)
		}
		return nil
	}
	return liquidityHeadless(flow)
}

func prefillLiquidity(flow *liquidity.Flow) error {
	for _, kv := range [][2]string{
		{liquidity.FieldOwnToken, liquidityFlags.token},
		{liquidity.FieldPairingToken, liquidityFlags.pairing},
		{liquidity.FieldOwnAmount, liquidityFlags.amount},
		{liquidity.FieldPairingAmount, liquidityFlags.pairingAmount},
	} {
		if kv[1] == "" {
			continue
		}
		if _, err := flow.SetField(kv[0], kv[1]); err != nil {
			return err
		}
	}
	if liquidityFlags.acceptRisks {
		if _, err := flow.Toggle(liquidity.FieldRisksAccepted, true); err != nil {
			return err
		}
	}
	return nil
}

func liquidityHeadless(flow *liquidity.Flow) error {
	// pair, amounts, risks
	for range 3 {
		if _, err := flow.Next(); err != nil {
			if errors.Is(err, wizard.ErrNotAcknowledged) {
				return fmt.Errorf("%w (pass --accept-risks)", err)
			}
			return err
		}
	}

	form := flow.Form()
	p := flow.Preview()
	printHeader("Creating liquidity pool")
	printKV("Pool", form.OwnToken+"/"+form.PairingToken)
	printKV("Deposit", form.OwnAmount+" "+form.OwnToken)
	printKV("Pairing", form.PairingAmount+" "+form.PairingToken)
	printKV("Initial price", fmt.Sprintf("1 %s = %s %s", form.OwnToken, p.Price, form.PairingToken))
	printKV("Expected LP tokens", p.LPDisplay)
	printKV("LP fee", p.FeeDisplay)
	fmt.Println()

	if _, err := flow.Toggle(liquidity.FieldOwnDeposited, true); err != nil {
		return err
	}
	color.Cyan("  deposited %s %s", form.OwnAmount, form.OwnToken)
	if flow.PairingNeedsDeposit() {
		if _, err := flow.Toggle(liquidity.FieldPairingDeposited, true); err != nil {
			return err
		}
		color.Cyan("  deposited %s %s", form.PairingAmount, form.PairingToken)
	}

	if err := flow.Begin(); err != nil {
		return err
	}
	var receipt wizard.Receipt
	err := withSpinner(fmt.Sprintf("Creating %s/%s pool...", form.OwnToken, form.PairingToken), func() error {
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
	printPool(flow, form, receipt)
	return nil
}

func printPool(flow *liquidity.Flow, form liquidity.Form, r wizard.Receipt) {
	color.Green("✓ %s/%s pool is live", form.OwnToken, form.PairingToken)
	printKV("LP tokens received", liquidity.PreviewOf(form).LPDisplay)
	printKV("Transaction", r.ID)
	printKV("Confirmed", r.ConfirmedAt.Format("2006-01-02 15:04:05"))
	if !flow.PairingNeedsDeposit() {
		faint.Printf("  %s was sent with the pool transaction\n", flow.NativeCurrency())
	}
}
