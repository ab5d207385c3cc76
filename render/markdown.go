package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fwojciec/wpextract"
)

// maxHeaderLength is the longest line still considered a heading
// candidate during markdown formatting.
const maxHeaderLength = 60

// Markdown returns the markdown rendering of a page: a title header,
// a source link, and the pretty text reformatted line by line with
// heading promotion and phone/website/email/address annotations.
func Markdown(title, sourceURL, markup string, businesses []*wpextract.Business) string {
	return formatMarkdown(prettyBody(markup, businesses), title, sourceURL)
}

func formatMarkdown(content, title, sourceURL string) string {
	if content == "" {
		return ""
	}

	var md []string
	if title = strings.TrimSpace(title); title != "" {
		md = append(md, "# "+title, "")
	}
	if sourceURL != "" {
		md = append(md, fmt.Sprintf("**Source:** [%s](%s)", sourceURL, sourceURL), "", "---", "")
	}

	var section []string
	flush := func() {
		if len(section) > 0 {
			md = append(md, section...)
			md = append(md, "")
			section = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		if isHeaderLine(line) {
			flush()
			md = append(md, "## "+line, "")
			continue
		}

		if wpextract.DashedPhonePattern.MatchString(line) {
			line = "📞 **Phone:** " + line
		}
		if rest, ok := strings.CutPrefix(line, "Website |"); ok {
			url := strings.TrimSpace(rest)
			line = fmt.Sprintf("🌐 **Website:** [%s](%s)", url, url)
		}
		if strings.Contains(line, "@") && strings.Contains(line, ".") {
			if email := wpextract.FindEmail(line); email != "" {
				line = fmt.Sprintf("✉️ **Email:** [%s](mailto:%s)", email, email)
			}
		}
		if wpextract.CityStateZipPattern.MatchString(line) {
			line = "📍 **Address:** " + line
		}

		section = append(section, line)
	}
	flush()

	return strings.Join(md, "\n")
}

// isHeaderLine reports whether a short capitalized line should be
// promoted to a level-two heading.
func isHeaderLine(line string) bool {
	if len(line) >= maxHeaderLength || strings.HasSuffix(line, ".") || strings.HasPrefix(line, "http") {
		return false
	}
	if wpextract.DashedPhonePattern.MatchString(line) {
		return false
	}
	return unicode.IsUpper([]rune(line)[0])
}
