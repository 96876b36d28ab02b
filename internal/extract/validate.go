package extract

import "strings"

const minTextLength = 50

// leaseKeywords are terms expected in a genuine lease document. Extraction
// output matching fewer than two is treated as noise (blank scans, photos of
// something else entirely).
var leaseKeywords = []string{
	"lease", "tenant", "landlord", "rent", "property",
	"agreement", "monthly", "deposit", "premises",
}

// ValidText reports whether extracted text looks like usable lease content.
func ValidText(text string) bool {
	if len(strings.TrimSpace(text)) < minTextLength {
		return false
	}
	lower := strings.ToLower(text)
	count := 0
	for _, keyword := range leaseKeywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count >= 2
}
