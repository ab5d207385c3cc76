package normalize

import "regexp"

// rawHTMLPattern spans the whole [vc_raw_html] element including its
// base64 payload, which carries no extractable text. It must run before
// the vc_ family patterns or only the tags would be removed, leaving the
// payload behind as noise.
var rawHTMLPattern = regexp.MustCompile(`(?i)\[vc_raw_html\][^\[]*\[/vc_raw_html\]`)

// shortcodeFamilies strips the known page-builder tag families while
// leaving their enclosed text in place. Visual Composer, Elementor, Divi,
// Nectar/Salient and Ultimate Addons cover the builders seen in dumped
// content.
var shortcodeFamilies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[vc_\w+[^\]]*\]`),
	regexp.MustCompile(`(?i)\[/vc_\w+\]`),
	regexp.MustCompile(`(?i)\[elementor-template[^\]]*\]`),
	regexp.MustCompile(`(?i)\[/elementor-template\]`),
	regexp.MustCompile(`(?i)\[et_pb_\w+[^\]]*\]`),
	regexp.MustCompile(`(?i)\[/et_pb_\w+\]`),
	regexp.MustCompile(`(?i)\[nectar_\w+[^\]]*\]`),
	regexp.MustCompile(`(?i)\[divider[^\]]*\]`),
	regexp.MustCompile(`(?i)\[/divider\]`),
	regexp.MustCompile(`(?i)\[ultimate_\w+[^\]]*\]`),
	regexp.MustCompile(`(?i)\[/ultimate_\w+\]`),
}

var (
	genericOpenPattern  = regexp.MustCompile(`\[\w+(?:\s+\w+="[^"]*")*\s*\]`)
	genericClosePattern = regexp.MustCompile(`\[/\w+\]`)
)

// CleanShortcodes removes page-builder shortcode syntax from text.
// Named tag families are stripped tag-by-tag so their enclosed content
// survives, except vc_raw_html whose opaque payload is removed along
// with its tags. A generic catch-all then removes any remaining
// [name attr="value"] and [/name] forms. Text without shortcodes passes
// through unchanged.
func CleanShortcodes(text string) string {
	if text == "" {
		return text
	}
	text = rawHTMLPattern.ReplaceAllString(text, "")
	for _, p := range shortcodeFamilies {
		text = p.ReplaceAllString(text, "")
	}
	text = genericOpenPattern.ReplaceAllString(text, "")
	text = genericClosePattern.ReplaceAllString(text, "")
	return text
}
