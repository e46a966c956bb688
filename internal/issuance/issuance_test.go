package issuance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/tokenforge/internal/guidance"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

func validForm() Form {
	f := NewForm()
	f.Name = "My Token"
	f.Ticker = "MYT"
	return f
}

func TestNewForm_Defaults(t *testing.T) {
	f := NewForm()
	assert.Equal(t, "1000000", f.Supply)
	assert.Equal(t, "18", f.Decimals)
	assert.True(t, f.CanMint)
	assert.True(t, f.CanBurn)
	assert.True(t, f.CanChangeOwner)
	assert.True(t, f.CanUpgrade)
	assert.True(t, f.CanAddSpecialRoles)
	assert.False(t, f.CanFreeze)
	assert.False(t, f.CanWipe)
	assert.False(t, f.CanPause)
	assert.False(t, f.TermsAccepted)

	p, ok := f.MatchPreset()
	require.True(t, ok)
	assert.Equal(t, PresetRecommended, p)
}

func TestSetField(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetField(FieldTicker, " myt1 "))
	assert.Equal(t, "MYT1", f.Ticker)

	require.NoError(t, f.SetField(FieldTicker, "abcdefghijklmnop"))
	assert.Equal(t, "ABCDEFGHIJ", f.Ticker)

	require.NoError(t, f.SetField(FieldSupply, " 500 "))
	assert.Equal(t, "500", f.Supply)

	err := f.SetField("color", "blue")
	assert.ErrorIs(t, err, wizard.ErrUnknownField)
}

func TestToggle_WipeRequiresFreeze(t *testing.T) {
	f := NewForm()

	require.NoError(t, f.Toggle(FieldCanWipe, true))
	assert.False(t, f.CanWipe, "wipe stays off without freeze")
	assert.False(t, f.WipeAvailable())

	require.NoError(t, f.Toggle(FieldCanFreeze, true))
	require.NoError(t, f.Toggle(FieldCanWipe, true))
	assert.True(t, f.CanWipe)

	require.NoError(t, f.Toggle(FieldCanFreeze, false))
	assert.False(t, f.CanWipe, "turning freeze off clears wipe")

	assert.ErrorIs(t, f.Toggle("canFly", true), wizard.ErrUnknownField)
}

func TestApplyPreset(t *testing.T) {
	f := validForm()
	f.TermsAccepted = true

	f.ApplyPreset(PresetFull)
	for _, c := range CapabilityFields {
		assert.True(t, f.Flag(c), c)
	}
	assert.Equal(t, "My Token", f.Name, "presets leave text fields alone")
	assert.True(t, f.TermsAccepted)

	f.ApplyPreset(PresetFixed)
	assert.Empty(t, f.Capabilities())

	p, ok := f.MatchPreset()
	require.True(t, ok)
	assert.Equal(t, PresetFixed, p)

	require.NoError(t, f.Toggle(FieldCanMint, true))
	_, ok = f.MatchPreset()
	assert.False(t, ok)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("full")
	require.NoError(t, err)
	assert.Equal(t, PresetFull, p)

	_, err = ParsePreset("custom")
	assert.Error(t, err)
}

func TestValidateBasicInfo(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Form)
		kind   error
		field  string
	}{
		{name: "valid", modify: func(*Form) {}},
		{name: "missing name", modify: func(f *Form) { f.Name = "  " }, kind: wizard.ErrRequiredField, field: FieldName},
		{name: "missing ticker", modify: func(f *Form) { f.Ticker = "" }, kind: wizard.ErrRequiredField, field: FieldTicker},
		{name: "missing supply", modify: func(f *Form) { f.Supply = "" }, kind: wizard.ErrRequiredField, field: FieldSupply},
		{name: "ticker too short", modify: func(f *Form) { f.Ticker = "AB" }, kind: wizard.ErrTickerFormat},
		{name: "ticker three chars", modify: func(f *Form) { f.Ticker = "ABC" }},
		{name: "ticker symbol", modify: func(f *Form) { f.Ticker = "abc!" }, kind: wizard.ErrTickerFormat},
		{name: "ticker alnum", modify: func(f *Form) { f.Ticker = "ABC1" }},
		{name: "ticker too long", modify: func(f *Form) { f.Ticker = "ABCDEFGHIJK" }, kind: wizard.ErrTickerFormat},
		{name: "zero supply", modify: func(f *Form) { f.Supply = "0" }, kind: wizard.ErrInvalidSupply},
		{name: "negative supply", modify: func(f *Form) { f.Supply = "-5" }, kind: wizard.ErrInvalidSupply},
		{name: "garbage supply", modify: func(f *Form) { f.Supply = "abc" }, kind: wizard.ErrInvalidSupply},
		{name: "trailing garbage supply", modify: func(f *Form) { f.Supply = "12abc" }, kind: wizard.ErrInvalidSupply},
		{name: "overflowing supply", modify: func(f *Form) { f.Supply = "1e400" }, kind: wizard.ErrInvalidSupply},
		{name: "fractional supply", modify: func(f *Form) { f.Supply = "0.5" }},
		{name: "decimals 0", modify: func(f *Form) { f.Decimals = "0" }},
		{name: "decimals 19", modify: func(f *Form) { f.Decimals = "19" }, kind: wizard.ErrInvalidDecimals},
		{name: "decimals negative", modify: func(f *Form) { f.Decimals = "-1" }, kind: wizard.ErrInvalidDecimals},
		{name: "decimals fraction", modify: func(f *Form) { f.Decimals = "1.5" }, kind: wizard.ErrInvalidDecimals},
		{name: "decimals empty", modify: func(f *Form) { f.Decimals = "" }, kind: wizard.ErrInvalidDecimals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.modify(&f)
			before := f

			err := ValidateBasicInfo(f)
			assert.Equal(t, before, f)
			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, wizard.IsValidation(err))
			assert.NotEmpty(t, err.Error())
			if tt.field != "" {
				var ve *wizard.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.field, ve.Field)
			}
		})
	}
}

func TestValidateBasicInfo_SupplyMessage(t *testing.T) {
	for _, supply := range []string{"0", "12abc", "1e400"} {
		f := validForm()
		f.Supply = supply
		err := ValidateBasicInfo(f)
		require.Error(t, err, supply)
		assert.Equal(t, "Supply must be a positive number", err.Error(), supply)
	}
}

func TestValidateTerms(t *testing.T) {
	f := validForm()
	assert.ErrorIs(t, ValidateTerms(f), wizard.ErrNotAcknowledged)
	f.TermsAccepted = true
	assert.NoError(t, ValidateTerms(f))
}

func TestSuggestTicker(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Super Cool Coin", "SCC"},
		{"My Token", "MYTOKEN"},
		{"Bitcoin", "BITCOIN"},
		{"A Very Long Token Name For Testing Purposes Here", "AVLTNFTPH"},
		{"Extraordinarily", "EXTRAORDIN"},
		{"Ab", ""},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestTicker(tt.name)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.Regexp(t, `^[A-Z0-9]{3,10}$`, got)
			}
		})
	}
}

func TestPreviewOf(t *testing.T) {
	f := NewForm()
	f.Name = "Super Cool Coin"
	p := PreviewOf(f)
	assert.InDelta(t, 100.0, p.Fee, 1e-9)
	assert.Equal(t, "100.0000", p.FeeDisplay)
	assert.Equal(t, "1000000000000000000000000", p.RawSupply)
	assert.Equal(t, "SCC", p.SuggestedTicker)

	f.Ticker = "SCC"
	f.Decimals = "99"
	p = PreviewOf(f)
	assert.Empty(t, p.SuggestedTicker, "no suggestion once a ticker is set")

	f.Supply = "0.4"
	p = PreviewOf(f)
	assert.InDelta(t, 4e-05, p.Fee, 1e-12)
	assert.Equal(t, "0.00004", p.FeeDisplay)
	assert.Empty(t, p.RawSupply)
}

func newTestFlow(t *testing.T, hook wizard.FailureHook, onComplete func(), observers ...func(wizard.Event)) *Flow {
	t.Helper()
	opts := []wizard.SubmitOption{wizard.WithSleep(func(time.Duration) {})}
	if hook != nil {
		opts = append(opts, wizard.WithFailureHook(hook))
	}
	return NewFlow(Config{
		Submitter:  wizard.NewSubmitter(wizard.DefaultSubmitDelay, opts...),
		OnComplete: onComplete,
		Observers:  observers,
	})
}

func TestFlow_HappyPath(t *testing.T) {
	completed := 0
	var events []wizard.EventKind
	fl := newTestFlow(t, nil, func() { completed++ }, func(ev wizard.Event) {
		events = append(events, ev.Kind)
	})

	_, err := fl.SetField(FieldName, "My Token")
	require.NoError(t, err)
	_, err = fl.SetField(FieldTicker, "MYT")
	require.NoError(t, err)
	_, err = fl.SetField(FieldSupply, "1000000")
	require.NoError(t, err)
	form, err := fl.SetField(FieldDecimals, "18")
	require.NoError(t, err)
	assert.Equal(t, "MYT", form.Ticker)

	_, err = fl.Next()
	require.NoError(t, err)
	assert.Equal(t, "Token capabilities", fl.Guidance().Title)

	_, err = fl.Next()
	require.NoError(t, err)
	assert.Equal(t, wizard.StepReview, fl.Engine().Current().ID)

	_, err = fl.Next()
	require.ErrorIs(t, err, wizard.ErrNotAcknowledged)
	assert.Equal(t, wizard.StepReview, fl.Engine().Current().ID)

	_, err = fl.Toggle(FieldTermsAccepted, true)
	require.NoError(t, err)

	r, err := fl.Submit()
	require.NoError(t, err)
	assert.Equal(t, FlowName, r.Flow)
	assert.Equal(t, wizard.StepSuccess, fl.Engine().Current().ID)
	assert.Equal(t, 2000*time.Millisecond, fl.Engine().SubmitDelay())

	tr, err := fl.Next()
	require.NoError(t, err)
	assert.Equal(t, wizard.TransitionCompleted, tr)
	require.NoError(t, fl.Complete())
	assert.Equal(t, 1, completed)
	assert.Contains(t, events, wizard.EventConfirmed)
}

func TestFlow_BasicInfoRejected(t *testing.T) {
	fl := newTestFlow(t, nil, nil)
	_, err := fl.SetField(FieldName, "My Token")
	require.NoError(t, err)
	_, err = fl.SetField(FieldTicker, "AB")
	require.NoError(t, err)

	_, err = fl.Next()
	require.ErrorIs(t, err, wizard.ErrTickerFormat)
	assert.Equal(t, wizard.StepBasicInfo, fl.Engine().Current().ID)
	assert.Equal(t, guidance.KeyTokenBasics, guidance.ForStep(fl.Engine().Current().ID))
}

func TestFlow_FailureReturnsToReview(t *testing.T) {
	fl := newTestFlow(t, wizard.AlwaysFail(), nil)
	_, _ = fl.SetField(FieldName, "My Token")
	_, _ = fl.SetField(FieldTicker, "MYT")
	_, _ = fl.Next()
	_, _ = fl.Next()
	_, _ = fl.Toggle(FieldTermsAccepted, true)

	_, err := fl.Submit()
	require.ErrorIs(t, err, wizard.ErrSimulatedRejection)
	assert.Equal(t, wizard.StepReview, fl.Engine().Current().ID)
	assert.False(t, fl.Engine().Processing())
	assert.True(t, fl.Form().TermsAccepted, "form survives a failed submission")
}

func TestFlow_EditsRefusedWhileProcessing(t *testing.T) {
	fl := newTestFlow(t, nil, nil)
	_, _ = fl.SetField(FieldName, "My Token")
	_, _ = fl.SetField(FieldTicker, "MYT")
	_, _ = fl.Next()
	_, _ = fl.Next()
	_, _ = fl.Toggle(FieldTermsAccepted, true)
	require.NoError(t, fl.Begin())

	form, err := fl.SetField(FieldName, "Other")
	assert.ErrorIs(t, err, wizard.ErrBusy)
	assert.Equal(t, "My Token", form.Name)

	_, err = fl.ApplyPreset(PresetFull)
	assert.ErrorIs(t, err, wizard.ErrBusy)
	assert.False(t, fl.Form().CanPause)

	r, err := fl.Await()
	require.NoError(t, fl.Finish(r, err))
	assert.Equal(t, "Done", fl.Guidance().Title)
}

func TestFlow_PreviewTracksForm(t *testing.T) {
	fl := newTestFlow(t, nil, nil)
	assert.InDelta(t, 100.0, fl.Preview().Fee, 1e-9)

	_, err := fl.SetField(FieldSupply, "abc")
	require.NoError(t, err)
	assert.Equal(t, 0.0, fl.Preview().Fee)

	_, err = fl.SetField(FieldSupply, "2500")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, fl.Preview().Fee, 1e-12)
}
