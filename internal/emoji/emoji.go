package emoji

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"tier_1":  {"😢", "[1/5]"},
	"tier_2":  {"😕", "[2/5]"},
	"tier_3":  {"😐", "[3/5]"},
	"tier_4":  {"🙂", "[4/5]"},
	"tier_5":  {"😄", "[5/5]"},
	"unknown": {"❓", "[?]"},
	"wave":    {"👋", ""},
	"error":   {"❌", "[ERR]"},
	"success": {"✅", "[OK]"},
	"info":    {"ℹ️", "[INF]"},
	"loading": {"⏳", "[..]"},
	"scale":   {"⚖️", "[SCALE]"},
	"brain":   {"🧠", "[AI]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}

// Raw returns the emoji for key regardless of the disabled switch.
// Browser output always renders the real glyph.
func Raw(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		return mapping[0]
	}
	return emojiMap["unknown"][0]
}
