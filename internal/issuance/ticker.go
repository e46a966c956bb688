package issuance

import (
	"strings"

	"github.com/gosimple/slug"
)

// SuggestTicker derives a ticker from a token name: the initials of a
// multi-word name, or the leading characters of a single word, padded from
// the name itself when too short. It returns "" when nothing usable remains.
func SuggestTicker(name string) string {
	s := slug.Make(name)
	if s == "" {
		return ""
	}
	words := strings.Split(s, "-")

	var b strings.Builder
	if len(words) > 1 {
		for _, w := range words {
			if w != "" {
				b.WriteByte(w[0])
			}
		}
	}
	if b.Len() < 3 {
		b.Reset()
		b.WriteString(strings.Join(words, ""))
	}

	t := strings.ToUpper(b.String())
	if len(t) > MaxTickerLen {
		t = t[:MaxTickerLen]
	}
	if len(t) < 3 {
		return ""
	}
	return t
}
