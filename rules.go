package wpextract

import (
	"regexp"
	"strings"
	"unicode"
)

// Pattern rule table. Every regular expression used for field detection
// lives here, next to its normalizer, so that precedence between rules
// (phone before address, address before service) is declared once instead
// of being re-derived at each call site.
var (
	// PhonePattern matches US phone numbers in their common shapes,
	// including an optional leading +1 and (NNN) grouping.
	PhonePattern = regexp.MustCompile(`(?:\+?1[\s\-.]?)?(?:\(\d{3}\)|\d{3})[\s\-.]?\d{3}[\s\-.]?\d{4}`)

	// DashedPhonePattern matches the canonical NNN-NNN-NNNN shape that
	// NormalizePhone produces.
	DashedPhonePattern = regexp.MustCompile(`\d{3}-\d{3}-\d{4}`)

	phoneOnlyPattern = regexp.MustCompile(`^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)
	phoneToken       = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	// StreetPattern matches a street number followed by a street-suffix
	// word ("100 Main St", "24678 County Rd").
	StreetPattern = regexp.MustCompile(`(?i)\b\d+\s+\w+.*?\b(?:st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|ct|court|hwy|highway)\b`)

	streetLeadPattern = regexp.MustCompile(`(?i)^\d+\s+\w+.*?\b(?:st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|ct|court|hwy|highway)\b`)

	// StateZipPattern matches a trailing "MN 56001" style state/ZIP pair.
	StateZipPattern = regexp.MustCompile(`\b[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`)

	// ZipPattern matches a bare 5 or 5+4 ZIP code.
	ZipPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

	// CityStateZipPattern captures (city, state, zip) from "Anytown, MN 56001".
	CityStateZipPattern = regexp.MustCompile(`([A-Z][a-zA-Z\s]+),\s*([A-Z]{2})\s*(\d{5}(?:-\d{4})?)`)

	// EmailPattern matches one email address.
	EmailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// URLPattern matches one absolute http(s) URL.
	URLPattern = regexp.MustCompile(`https?://[^\s]+`)

	// WebsiteLinePattern captures the URL from the "Website | <url>" form
	// the enhanced text transform produces for anchor tags.
	WebsiteLinePattern = regexp.MustCompile(`Website \| (https?://[^\s]+)`)

	// MarkerTriplePattern captures one "lat | lon | label" marker entry.
	MarkerTriplePattern = regexp.MustCompile(`([\d.-]+)\s*\|\s*([\d.-]+)\s*\|\s*([^\n\r]+)`)

	// CoordPairPattern detects leftover "46.38 | -95.74" coordinate noise.
	CoordPairPattern = regexp.MustCompile(`\d+\.\d+\s*\|\s*-?\d+\.\d+`)

	numericEntityPattern = regexp.MustCompile(`&#\d+;`)
	namedEntityPattern   = regexp.MustCompile(`&\w+;`)
	nonDigitPattern      = regexp.MustCompile(`\D`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// serviceKeywords flag a line as service-related during line
// classification.
var serviceKeywords = []string{
	"service", "repair", "parts", "sales", "marine", "boat", "engine", "motor",
}

// nameContinuations are short second lines that extend a business name
// rather than starting a new field ("Advanced Auto" + "& Marine").
var nameContinuations = map[string]bool{
	"marine":  true,
	"auto":    true,
	"sales":   true,
	"service": true,
	"inc":     true,
	"llc":     true,
	"corp":    true,
}

// NormalizePhone canonicalizes a phone-shaped string to NNN-NNN-NNNN.
// A leading country code 1 is dropped. Input whose digits don't form a
// ten-digit number is returned unchanged.
func NormalizePhone(s string) string {
	digits := nonDigitPattern.ReplaceAllString(s, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return s
	}
	return digits[0:3] + "-" + digits[3:6] + "-" + digits[6:10]
}

// FindPhone returns the first phone-shaped token in s, or "".
func FindPhone(s string) string {
	return phoneToken.FindString(s)
}

// HasPhone reports whether s contains a phone-shaped token.
func HasPhone(s string) bool {
	return phoneToken.MatchString(s)
}

// IsPhoneLine reports whether s is nothing but a phone number.
func IsPhoneLine(s string) bool {
	return phoneOnlyPattern.MatchString(strings.TrimSpace(s))
}

// IsStreetAddress reports whether s looks like a street address line.
func IsStreetAddress(s string) bool {
	return streetLeadPattern.MatchString(strings.TrimSpace(s))
}

// FindEmail returns the first email address in s, or "".
func FindEmail(s string) string {
	return EmailPattern.FindString(s)
}

// CleanLabel removes numeric and named HTML entity references from a
// marker label and collapses internal whitespace.
func CleanLabel(s string) string {
	s = numericEntityPattern.ReplaceAllString(s, "")
	s = namedEntityPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// LineKind classifies one line of de-tagged text during sequential
// extraction.
type LineKind int

const (
	LineOther LineKind = iota
	LinePhone
	LineStreetAddress
	LineStateZip
	LineService
)

// lineRules declares the classification precedence: phone wins over
// address, address over state/ZIP continuation, state/ZIP over service
// keywords. Evaluated in order; first match wins.
var lineRules = []struct {
	kind  LineKind
	match func(string) bool
}{
	{LinePhone, HasPhone},
	{LineStreetAddress, func(s string) bool { return streetLeadPattern.MatchString(s) }},
	{LineStateZip, func(s string) bool { return StateZipPattern.MatchString(s) }},
	{LineService, ContainsServiceKeyword},
}

// ClassifyLine returns the field kind of one content line inside a
// business block.
func ClassifyLine(line string) LineKind {
	line = strings.TrimSpace(line)
	for _, rule := range lineRules {
		if rule.match(line) {
			return rule.kind
		}
	}
	return LineOther
}

// ContainsServiceKeyword reports whether a line mentions any of the fixed
// service keyword set.
func ContainsServiceKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range serviceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsNameLine reports whether a line starts a new business entity: fully
// upper-case, at least two words, and not itself a phone number or street
// address.
func IsNameLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(strings.Fields(line)) < 2 {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	if !hasLetter {
		return false
	}
	return !HasPhone(line) && !StreetPattern.MatchString(line)
}

// IsNameContinuation reports whether a short second line extends the
// business name on the line before it.
func IsNameContinuation(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) >= 20 {
		return false
	}
	if strings.HasPrefix(line, "&") {
		return true
	}
	return nameContinuations[strings.ToLower(line)]
}
