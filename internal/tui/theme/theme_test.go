package theme

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestCurrentIsMocha(t *testing.T) {
	th := Current()
	assert.Equal(t, "catppuccin-mocha", th.Name)
	assert.Same(t, th, Current())
	assert.Same(t, th.S(), th.S())

	for name, got := range map[string]string{
		"Primary":   th.Primary,
		"Secondary": th.Secondary,
		"BgBase":    th.BgBase,
		"FgBase":    th.FgBase,
		"Success":   th.Success,
		"Error":     th.Error,
	} {
		assert.Regexp(t, `^#[0-9a-f]{6}$`, got, name)
	}
}

func TestInterpolateColor(t *testing.T) {
	tests := []struct {
		a, b string
		pos  float64
		want string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ffffff", 0.5, "#7f7f7f"},
		{"#000000", "#ffffff", 2, "#ffffff"},
		{"#000000", "#ffffff", -1, "#000000"},
		{"bad", "#ffffff", 0, "#000000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InterpolateColor(tt.a, tt.b, tt.pos), "%s→%s@%v", tt.a, tt.b, tt.pos)
	}
}

func TestGradientKeepsText(t *testing.T) {
	assert.Equal(t, "", Gradient("", "#000000", "#ffffff", 0))
	out := Gradient("issued", "#cba6f7", "#89b4fa", 3)
	assert.Equal(t, "issued", ansi.Strip(out))
}
