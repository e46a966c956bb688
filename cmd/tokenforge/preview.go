package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/liquidity"
	"github.com/mark3labs/tokenforge/internal/mcpserver"
)

var previewFlags struct {
	name          string
	supply        string
	decimals      string
	amount        string
	pairingAmount string
	pairing       string
	json          bool
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print calculator results without running a wizard",
}

var previewIssuanceCmd = &cobra.Command{
	Use:   "issuance",
	Short: "Preview the issuance fee and raw supply",
	RunE:  runPreviewIssuance,
}

var previewLiquidityCmd = &cobra.Command{
	Use:   "liquidity",
	Short: "Preview the initial price, LP tokens and LP fee",
	RunE:  runPreviewLiquidity,
}

func init() {
	previewCmd.PersistentFlags().BoolVar(&previewFlags.json, "json", false, "Print JSON instead of a table")

	f := previewIssuanceCmd.Flags()
	f.StringVarP(&previewFlags.name, "name", "n", "", "Token name, used to suggest a ticker")
	f.StringVarP(&previewFlags.supply, "supply", "s", "1000000", "Initial supply")
	f.StringVarP(&previewFlags.decimals, "decimals", "d", "18", "Decimals")

	f = previewLiquidityCmd.Flags()
	f.StringVarP(&previewFlags.amount, "amount", "a", "", "Amount of your token")
	f.StringVarP(&previewFlags.pairingAmount, "pairing-amount", "b", "", "Amount of the pairing token")
	f.StringVarP(&previewFlags.pairing, "pairing", "p", "", "Pairing token (default: the native currency)")

	previewCmd.AddCommand(previewIssuanceCmd)
	previewCmd.AddCommand(previewLiquidityCmd)
}

func runPreviewIssuance(cmd *cobra.Command, args []string) error {
	form := issuance.NewForm()
	for _, kv := range [][2]string{
		{issuance.FieldName, previewFlags.name},
		{issuance.FieldSupply, previewFlags.supply},
		{issuance.FieldDecimals, previewFlags.decimals},
	} {
		if err := form.SetField(kv[0], kv[1]); err != nil {
			return err
		}
	}
	p := issuance.PreviewOf(form)

	if previewFlags.json {
		return printJSON(mcpserver.IssuancePreview{
			Fee:             p.FeeDisplay,
			RawSupply:       p.RawSupply,
			SuggestedTicker: p.SuggestedTicker,
		})
	}
	printHeader("Issuance preview")
	printKV("Issuance fee", p.FeeDisplay)
	if p.RawSupply == "" {
		printKV("Raw supply", "invalid supply or decimals")
	} else {
		printKV("Raw supply", p.RawSupply)
	}
	if p.SuggestedTicker != "" {
		printKV("Suggested ticker", p.SuggestedTicker)
	}
	return nil
}

func runPreviewLiquidity(cmd *cobra.Command, args []string) error {
	form := liquidity.NewForm(cfg.Network.NativeCurrency)
	if previewFlags.pairing != "" {
		if err := form.SetField(liquidity.FieldPairingToken, previewFlags.pairing); err != nil {
			return err
		}
	}
	if err := form.SetField(liquidity.FieldOwnAmount, previewFlags.amount); err != nil {
		return err
	}
	if err := form.SetField(liquidity.FieldPairingAmount, previewFlags.pairingAmount); err != nil {
		return err
	}
	p := liquidity.PreviewOf(form)

	if previewFlags.json {
		return printJSON(mcpserver.LiquidityPreview{
			InitialPrice:     p.Price,
			ExpectedLPTokens: p.LPDisplay,
			LPFee:            p.FeeDisplay,
		})
	}
	printHeader("Liquidity preview")
	printKV("Initial price", fmt.Sprintf("1 token = %s %s", p.Price, form.PairingToken))
	printKV("Expected LP tokens", p.LPDisplay)
	printKV("LP fee (0.1%)", p.FeeDisplay)
	if !form.IsNative(cfg.Network.NativeCurrency) {
		printKV("Deposits", "two")
	} else {
		printKV("Deposits", "one ("+form.PairingToken+" travels with the pool transaction)")
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
