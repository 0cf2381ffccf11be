package loader

import (
	"regexp"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// Documents above TruncateThreshold chars are cut to the head plus the
	// tail with a single elision marker between them. The head carries the
	// operative terms, the tail the signature block.
	TruncateThreshold = 20000
	truncateHead      = 15000
	truncateTail      = 5000

	ElisionMarker = "\n...[MIDDLE CONTENT TRUNCATED]...\n"

	// MinContractLength is the shortest text worth extracting from. Shorter
	// texts are almost always filing stubs or decode failures.
	MinContractLength = 100
)

var (
	metadataTagPattern = regexp.MustCompile(`(?s)<(TYPE|SEQUENCE|FILENAME)>.*?</(TYPE|SEQUENCE|FILENAME)>`)
	residualTagPattern = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

var specialCharReplacer = strings.NewReplacer(
	" ", " ",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// CleanText normalizes extracted contract text: SEC filing metadata tags and
// residual markup are dropped, whitespace runs collapse to single spaces and
// typographic characters are folded to ASCII.
func CleanText(text string) string {
	text = metadataTagPattern.ReplaceAllString(text, "")
	text = residualTagPattern.ReplaceAllString(text, "")
	text = specialCharReplacer.Replace(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate bounds text for generative extraction. Text at or below the
// threshold passes through unchanged; longer text keeps the head and tail
// joined by exactly one elision marker.
func Truncate(text string) string {
	if len(text) <= TruncateThreshold {
		return text
	}
	return text[:truncateHead] + ElisionMarker + text[len(text)-truncateTail:]
}

// TokenCount returns the o200k token count of text, for logging how much of
// the model context a document consumes. Returns 0 when the encoding is
// unavailable.
func TokenCount(text string) int {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}
