package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/tokenforge/internal/wizard"
)

func TestForStep_EveryStepHasEntry(t *testing.T) {
	steps := append(wizard.IssuanceSteps(), wizard.LiquiditySteps()...)
	for _, st := range steps {
		key := ForStep(st.ID)
		require.NotEmpty(t, key, "step %s", st.ID)
		e, ok := Lookup(key)
		require.True(t, ok, "key %s", key)
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Body)
	}
	assert.Equal(t, Key(""), ForStep("unknown"))
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	assert.Len(t, Keys(), 9)
}

func TestMarkdown(t *testing.T) {
	md := Entry{
		Title:   "Title",
		Body:    "Body text.",
		Pros:    []string{"good"},
		Cons:    []string{"bad", "worse"},
		Warning: "careful",
	}.Markdown()

	assert.Contains(t, md, "## Title\n\nBody text.\n")
	assert.Contains(t, md, "**Pros**\n\n- good\n")
	assert.Contains(t, md, "**Cons**\n\n- bad\n- worse\n")
	assert.Contains(t, md, "> **Warning:** careful")
}

func TestMarkdown_OmitsEmptySections(t *testing.T) {
	md := Entry{Title: "T", Body: "B"}.Markdown()
	assert.NotContains(t, md, "Pros")
	assert.NotContains(t, md, "Cons")
	assert.NotContains(t, md, "Warning")
}
