// Package normalize converts page-builder HTML into plain text. It
// offers a minimal strip that discards all markup semantics and an
// enhanced strip that preserves link targets and heading levels in a
// textual form suitable for downstream pattern extraction.
package normalize

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	scriptPattern   = regexp.MustCompile(`(?i)<script[\s\S]*?</script>`)
	stylePattern    = regexp.MustCompile(`(?i)<style[\s\S]*?</style>`)
	noscriptPattern = regexp.MustCompile(`(?i)<noscript[\s\S]*?</noscript>`)

	brPattern         = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockClosePattern = regexp.MustCompile(`(?i)</(p|div|li|h[1-6])>`)
	// The enhanced transform breaks on semantic sectioning closers too, so
	// article and nav boundaries survive as line breaks.
	sectionClosePattern = regexp.MustCompile(`(?i)</(p|div|li|article|section|header|footer|nav|main)>`)

	anchorPattern = regexp.MustCompile(`(?is)<a[^>]*href\s*=\s*["']([^"']+)["'][^>]*>(.*?)</a>`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)

	leadingSpacePattern  = regexp.MustCompile(`\r?\n[ \t]+`)
	trailingSpacePattern = regexp.MustCompile(`[ \t]+\r?\n`)
	blankRunPattern      = regexp.MustCompile(`\n{3,}`)

	headingPatterns = compileHeadingPatterns()
)

func compileHeadingPatterns() [6]*regexp.Regexp {
	var patterns [6]*regexp.Regexp
	for i := range patterns {
		patterns[i] = regexp.MustCompile(fmt.Sprintf(`(?is)<h%d[^>]*>(.*?)</h%d>`, i+1, i+1))
	}
	return patterns
}

// StripToText removes all markup from s and returns plain text. Script,
// style and noscript blocks are dropped entirely, line-break and
// block-closing tags become newlines, every other tag is deleted, and
// runs of three or more newlines collapse to two. Link targets and
// heading levels are discarded. The function is total and idempotent:
// any string input yields a result, and re-running on stripped output is
// a no-op.
func StripToText(s string) string {
	if s == "" {
		return ""
	}
	s = scriptPattern.ReplaceAllString(s, "")
	s = stylePattern.ReplaceAllString(s, "")
	s = noscriptPattern.ReplaceAllString(s, "")
	s = brPattern.ReplaceAllString(s, "\n")
	s = blockClosePattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// EnhanceToText converts markup to plain text while keeping the
// information that entity extraction feeds on. HTML entities are decoded
// first, script/style/noscript blocks are dropped, anchors become
// "text | url" lines, headings become "[Hn] text" lines, block closers
// become newlines, and remaining tags are stripped. Line-leading and
// line-trailing whitespace is removed and blank runs collapse to a
// single empty line. Total and idempotent like StripToText.
func EnhanceToText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)

	s = scriptPattern.ReplaceAllString(s, "")
	s = stylePattern.ReplaceAllString(s, "")
	s = noscriptPattern.ReplaceAllString(s, "")

	s = anchorPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := anchorPattern.FindStringSubmatch(m)
		text := strings.TrimSpace(tagPattern.ReplaceAllString(sub[2], ""))
		return text + " | " + strings.TrimSpace(sub[1])
	})

	for i, p := range headingPatterns {
		s = p.ReplaceAllString(s, fmt.Sprintf("[H%d] $1", i+1))
	}

	s = brPattern.ReplaceAllString(s, "\n")
	s = sectionClosePattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")

	s = leadingSpacePattern.ReplaceAllString(s, "\n")
	s = trailingSpacePattern.ReplaceAllString(s, "\n")
	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
