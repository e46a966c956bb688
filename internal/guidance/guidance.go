// Package guidance is the static help content shown beside wizard steps.
package guidance

import (
	"fmt"
	"strings"

	"github.com/mark3labs/tokenforge/internal/wizard"
)

// Key names a guidance entry.
type Key string

const (
	KeyTokenBasics     Key = "tokenBasics"
	KeyCapabilities    Key = "capabilities"
	KeyIssuanceReview  Key = "issuanceReview"
	KeyPairSelection   Key = "pairSelection"
	KeyAmounts         Key = "amounts"
	KeyImpermanentLoss Key = "impermanentLoss"
	KeyDeposit         Key = "deposit"
	KeyProcessing      Key = "processing"
	KeySuccess         Key = "success"
)

// Entry is one piece of help text. Pros, Cons and Warning are optional.
type Entry struct {
	Title   string
	Body    string
	Pros    []string
	Cons    []string
	Warning string
}

var entries = map[Key]Entry{
	KeyTokenBasics: {
		Title: "Token basics",
		Body: "The name is what wallets and explorers display. The ticker is the short " +
			"symbol traders see; the network appends a random suffix to keep it unique. " +
			"Supply and decimals together fix how many smallest units exist.",
		Pros: []string{
			"18 decimals matches most tokens and keeps amounts divisible",
			"A round supply makes percentages easy to reason about",
		},
		Cons: []string{
			"Name, ticker and decimals cannot be changed after issuance",
		},
	},
	KeyCapabilities: {
		Title: "Token capabilities",
		Body: "Capabilities are permissions the owner keeps over the token. They can be " +
			"given up later but never added back once removed.",
		Pros: []string{
			"Mint and burn let you manage supply as the project grows",
			"Upgrade and change-owner allow recovery from mistakes",
		},
		Cons: []string{
			"Freeze, wipe and pause give the owner power over holders' balances",
			"Holders and exchanges often distrust tokens that keep them",
		},
		Warning: "Wipe only works on frozen accounts, so it requires freeze.",
	},
	KeyIssuanceReview: {
		Title: "Before you issue",
		Body: "Issuing costs a flat 0.01% of the initial supply, paid in the new token. " +
			"Check every field: the transaction cannot be reverted.",
		Warning: "This is a simulation. No real transaction is broadcast.",
	},
	KeyPairSelection: {
		Title: "Choosing a pair",
		Body: "A pool trades your token against one pairing token. Pairing with the " +
			"network's native currency gives the widest reach.",
		Pros: []string{
			"Native pairs need one deposit less",
			"Stablecoin pairs make the price easy to read",
		},
		Cons: []string{
			"Each additional pair splits liquidity",
		},
	},
	KeyAmounts: {
		Title: "Setting the initial price",
		Body: "The ratio of the two deposits sets the starting price. You receive pool " +
			"tokens equal to the geometric mean of both amounts, minus a 0.1% fee.",
		Warning: "A mispriced pool is arbitraged immediately at your expense.",
	},
	KeyImpermanentLoss: {
		Title: "Impermanent loss",
		Body: "When the relative price of the two tokens moves, the pool rebalances and " +
			"your share is worth less than simply holding both tokens.",
		Pros: []string{
			"You earn a share of every swap fee",
		},
		Cons: []string{
			"Large price moves can outweigh fee income",
			"The loss becomes permanent when you withdraw at a different price",
		},
		Warning: "Only provide liquidity you can afford to leave in the pool.",
	},
	KeyDeposit: {
		Title: "Deposits",
		Body: "Your token must be deposited into the pool contract first. A non-native " +
			"pairing token needs its own deposit; the native currency travels with " +
			"the final transaction.",
	},
	KeyProcessing: {
		Title: "Waiting for confirmation",
		Body:  "The transaction has been sent and is waiting for the network to confirm it.",
	},
	KeySuccess: {
		Title: "Done",
		Body:  "The transaction is confirmed.",
	},
}

// Lookup returns the entry for key.
func Lookup(key Key) (Entry, bool) {
	e, ok := entries[key]
	return e, ok
}

// Keys returns every defined key.
func Keys() []Key {
	keys := make([]Key, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	return keys
}

// ForStep returns the guidance key shown while step id is current, or ""
// when the step has none.
func ForStep(id wizard.StepID) Key {
	switch id {
	case wizard.StepBasicInfo:
		return KeyTokenBasics
	case wizard.StepCapabilities:
		return KeyCapabilities
	case wizard.StepReview:
		return KeyIssuanceReview
	case wizard.StepSelectTokens:
		return KeyPairSelection
	case wizard.StepSetAmounts:
		return KeyAmounts
	case wizard.StepRisks:
		return KeyImpermanentLoss
	case wizard.StepDeposit:
		return KeyDeposit
	case wizard.StepProcessing:
		return KeyProcessing
	case wizard.StepSuccess:
		return KeySuccess
	default:
		return ""
	}
}

// Markdown renders the entry for a markdown renderer.
func (e Entry) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n%s\n", e.Title, e.Body)
	writeList(&b, "Pros", e.Pros)
	writeList(&b, "Cons", e.Cons)
	if e.Warning != "" {
		fmt.Fprintf(&b, "\n> **Warning:** %s\n", e.Warning)
	}
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s**\n\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}
