package main

import (
	"context"
	"io"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/dump"
	"github.com/fwojciec/wpextract/extract"
	"github.com/fwojciec/wpextract/render"
	"github.com/fwojciec/wpextract/sqlite"
	"github.com/fwojciec/wpextract/wordpress"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	DB    *sqlite.DB
	Index wpextract.IndexService

	// Dump command dependencies.
	Dumper    *dump.Dumper
	Sitemap   dump.URLDiscoverer
	Fetcher   wpextract.Fetcher
	Extractor wpextract.ContentExtractor

	// Page command dependencies.
	Client   *wordpress.Client
	Pipeline *extract.Pipeline
	Renderer *render.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dump    DumpCmd    `cmd:"" help:"Dump a WordPress site to text files"`
	Page    PageCmd    `cmd:"" help:"Extract a single page to JSON or CSV"`
	Analyze AnalyzeCmd `cmd:"" help:"Report content statistics for a dumped site"`
}

// DumpCmd is the "dump" subcommand.
type DumpCmd struct {
	URL            string  `arg:"" help:"WordPress site URL"`
	Out            string  `short:"o" default:"wp_dump" help:"Output directory"`
	AllTypes       bool    `help:"Include discovered custom post types"`
	SkipMedia      bool    `help:"Skip the media library download"`
	RPS            float64 `name:"rps" default:"2" help:"Request rate limit (requests per second)"`
	Username       string  `env:"WPEXTRACT_USERNAME" help:"Basic auth username"`
	Password       string  `env:"WPEXTRACT_PASSWORD" help:"Basic auth application password"`
	Concurrency    int     `short:"c" default:"4" help:"Concurrent page limit"`
	MarkdownEngine string  `enum:"shortcode,generic" default:"shortcode" help:"Markdown engine (shortcode or generic)"`
	Verbose        bool    `short:"v" help:"Log each fetch and write"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Format   string `enum:"json,csv" default:"json" help:"Output format (json or csv)"`
	Output   string `short:"o" help:"Write to file instead of stdout"`
	Detailed bool   `help:"Write per-section CSV files (summary, headings, links, businesses)"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Dir string `arg:"" help:"Dumped site directory"`
}
