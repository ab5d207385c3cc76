// Package wpextract extracts readable text and structured business records
// from WordPress page content. It cleans page-builder shortcode markup,
// runs a cascade of entity-extraction strategies over the cleaned content,
// and renders each page as raw text, pretty text, and markdown.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., wordpress/, sqlite/,
// goquery/).
package wpextract
