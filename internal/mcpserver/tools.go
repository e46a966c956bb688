package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mark3labs/tokenforge/internal/guidance"
	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/liquidity"
)

// Tool names.
const (
	ToolIssuancePreview   = "issuance-preview"
	ToolLiquidityPreview  = "liquidity-preview"
	ToolValidateToken     = "validate-token"
	ToolValidateLiquidity = "validate-liquidity"
	ToolGuidance          = "guidance"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(ToolIssuancePreview,
			mcp.WithDescription("Compute the issuance fee and raw supply for a new token"),
			mcp.WithString("supply", mcp.Required(), mcp.Description("Initial supply, e.g. 1000000")),
			mcp.WithString("decimals", mcp.Description("Number of decimals, 0-18 (default 18)")),
			mcp.WithString("name", mcp.Description("Token name, used to suggest a ticker")),
		),
		s.handleIssuancePreview,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(ToolLiquidityPreview,
			mcp.WithDescription("Compute the initial price, expected LP tokens and LP fee for a new pool"),
			mcp.WithString("own_amount", mcp.Required(), mcp.Description("Amount of your token to deposit")),
			mcp.WithString("pairing_amount", mcp.Required(), mcp.Description("Amount of the pairing token to deposit")),
		),
		s.handleLiquidityPreview,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(ToolValidateToken,
			mcp.WithDescription("Check token details the way the issuance wizard does"),
			mcp.WithString("name", mcp.Required()),
			mcp.WithString("ticker", mcp.Required()),
			mcp.WithString("supply", mcp.Required()),
			mcp.WithString("decimals", mcp.Description("Number of decimals, 0-18 (default 18)")),
		),
		s.handleValidateToken,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(ToolValidateLiquidity,
			mcp.WithDescription("Check a token pair and deposit amounts the way the liquidity wizard does"),
			mcp.WithString("own_token", mcp.Required()),
			mcp.WithString("pairing_token", mcp.Description("Pairing token ticker (default: native currency)")),
			mcp.WithString("own_amount", mcp.Required()),
			mcp.WithString("pairing_amount", mcp.Required()),
		),
		s.handleValidateLiquidity,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(ToolGuidance,
			mcp.WithDescription("Return the help text for a wizard topic as markdown"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Topic key, e.g. capabilities or impermanentLoss")),
		),
		s.handleGuidance,
	)
}

// IssuancePreview is the JSON body returned by issuance-preview.
type IssuancePreview struct {
	Fee             string `json:"fee"`
	RawSupply       string `json:"raw_supply,omitempty"`
	SuggestedTicker string `json:"suggested_ticker,omitempty"`
}

// LiquidityPreview is the JSON body returned by liquidity-preview.
type LiquidityPreview struct {
	InitialPrice     string `json:"initial_price"`
	ExpectedLPTokens string `json:"expected_lp_tokens"`
	LPFee            string `json:"lp_fee"`
}

func (s *Server) handleIssuancePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	supply, err := request.RequireString("supply")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	form := issuance.NewForm()
	_ = form.SetField(issuance.FieldSupply, supply)
	_ = form.SetField(issuance.FieldDecimals, request.GetString("decimals", form.Decimals))
	_ = form.SetField(issuance.FieldName, request.GetString("name", ""))

	p := issuance.PreviewOf(form)
	return jsonResult(IssuancePreview{
		Fee:             p.FeeDisplay,
		RawSupply:       p.RawSupply,
		SuggestedTicker: p.SuggestedTicker,
	})
}

func (s *Server) handleLiquidityPreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	own, err := request.RequireString("own_amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pairing, err := request.RequireString("pairing_amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	form := liquidity.NewForm(s.native)
	_ = form.SetField(liquidity.FieldOwnAmount, own)
	_ = form.SetField(liquidity.FieldPairingAmount, pairing)

	p := liquidity.PreviewOf(form)
	return jsonResult(LiquidityPreview{
		InitialPrice:     p.Price,
		ExpectedLPTokens: p.LPDisplay,
		LPFee:            p.FeeDisplay,
	})
}

func (s *Server) handleValidateToken(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := issuance.NewForm()
	for _, field := range []string{issuance.FieldName, issuance.FieldTicker, issuance.FieldSupply} {
		v, err := request.RequireString(field)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		_ = form.SetField(field, v)
	}
	_ = form.SetField(issuance.FieldDecimals, request.GetString("decimals", form.Decimals))

	if err := issuance.ValidateBasicInfo(form); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("valid: %s (%s), fee %s %s",
		form.Name, form.Ticker, issuance.PreviewOf(form).FeeDisplay, form.Ticker)), nil
}

func (s *Server) handleValidateLiquidity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := liquidity.NewForm(s.native)
	for _, f := range []struct{ arg, field string }{
		{"own_token", liquidity.FieldOwnToken},
		{"own_amount", liquidity.FieldOwnAmount},
		{"pairing_amount", liquidity.FieldPairingAmount},
	} {
		v, err := request.RequireString(f.arg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		_ = form.SetField(f.field, v)
	}
	_ = form.SetField(liquidity.FieldPairingToken, request.GetString("pairing_token", s.native))

	if err := liquidity.ValidateTokenSelection(form); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := liquidity.ValidateAmounts(form); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	deposits := "one deposit (native pairing travels with the final transaction)"
	if !form.IsNative(s.native) {
		deposits = "two deposits"
	}
	return mcp.NewToolResultText(fmt.Sprintf("valid: %s/%s at %s, requires %s",
		form.OwnToken, form.PairingToken, liquidity.PreviewOf(form).Price, deposits)), nil
}

func (s *Server) handleGuidance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, ok := guidance.Lookup(guidance.Key(key))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown guidance key %q", key)), nil
	}
	return mcp.NewToolResultText(e.Markdown()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
