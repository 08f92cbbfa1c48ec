package sentiment

import (
	"strconv"
	"strings"

	"github.com/yildizm/sentimoji/internal/emoji"
)

// Tier is one of five sentiment buckets, or TierUnknown
type Tier int

const (
	TierUnknown Tier = iota
	TierWorst
	TierBad
	TierNormal
	TierGood
	TierBest
)

var tierLabels = map[Tier]string{
	TierUnknown: "Unknown",
	TierWorst:   "Worst",
	TierBad:     "Bad",
	TierNormal:  "Normal",
	TierGood:    "Good",
	TierBest:    "Best",
}

// MapLabel converts a provider label such as "4 stars" to a tier. Leading
// blanks are skipped and the whole leading digit run is parsed, so "10 stars"
// is unknown rather than tier 1. A run with a leading zero ("05") or a
// fractional part ("4.5") is unknown too.
func MapLabel(label string) Tier {
	s := strings.TrimLeft(label, " \t")

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || s[0] == '0' {
		return TierUnknown
	}
	if end < len(s) && s[end] == '.' {
		return TierUnknown
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < int(TierWorst) || n > int(TierBest) {
		return TierUnknown
	}
	return Tier(n)
}

// Legend returns the five known tiers from worst to best
func Legend() []Tier {
	return []Tier{TierWorst, TierBad, TierNormal, TierGood, TierBest}
}

// Stars returns 1-5, or 0 for TierUnknown
func (t Tier) Stars() int {
	if t < TierWorst || t > TierBest {
		return 0
	}
	return int(t)
}

// Label returns the legend caption
func (t Tier) Label() string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return tierLabels[TierUnknown]
}

// Emoji returns the tier glyph, or its ASCII fallback when emoji are disabled
func (t Tier) Emoji() string {
	return emoji.GetEmoji(t.key())
}

// Glyph always returns the emoji
func (t Tier) Glyph() string {
	return emoji.Raw(t.key())
}

func (t Tier) String() string {
	return t.Label()
}

func (t Tier) key() string {
	if s := t.Stars(); s > 0 {
		return "tier_" + strconv.Itoa(s)
	}
	return "unknown"
}
