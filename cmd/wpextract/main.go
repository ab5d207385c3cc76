package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/dump"
	"github.com/fwojciec/wpextract/extract"
	"github.com/fwojciec/wpextract/fs"
	"github.com/fwojciec/wpextract/goquery"
	"github.com/fwojciec/wpextract/htmltomarkdown"
	wphttp "github.com/fwojciec/wpextract/http"
	"github.com/fwojciec/wpextract/render"
	wpslog "github.com/fwojciec/wpextract/slog"
	"github.com/fwojciec/wpextract/sqlite"
	"github.com/fwojciec/wpextract/trafilatura"
	"github.com/fwojciec/wpextract/wordpress"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the dump index.
	DB *sqlite.DB

	// Index service for end-to-end testing.
	IndexService wpextract.IndexService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wpextract"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wpextract --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire command-specific dependencies based on command
	if cmd == "dump" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WPEXTRACT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.IndexService = sqlite.NewIndexService(m.DB)
		deps.DB = m.DB
		deps.Index = m.IndexService

		opts := []wordpress.Option{wordpress.WithRateLimit(cli.Dump.RPS)}
		if cli.Dump.Username != "" {
			opts = append(opts, wordpress.WithAuth(cli.Dump.Username, cli.Dump.Password))
		}
		client := wordpress.NewClient(cli.Dump.URL, opts...)

		writer := fs.NewWriter(cli.Dump.Out)
		dumper := dump.NewDumper(client, writer)
		dumper.Index = m.IndexService
		dumper.AllTypes = cli.Dump.AllTypes
		dumper.SkipMedia = cli.Dump.SkipMedia
		if cli.Dump.Concurrency > 0 {
			dumper.Concurrency = cli.Dump.Concurrency
		}
		if cli.Dump.MarkdownEngine == "generic" {
			dumper.Renderer = render.NewRenderer(render.WithConverter(htmltomarkdown.NewConverter()))
		}

		var fetcher wpextract.Fetcher = wphttp.NewFetcher()
		if cli.Dump.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			fetcher = wpslog.NewLoggingFetcher(fetcher, logger)
			dumper.Writer = &dumpWriter{
				Writer: writer,
				pages:  wpslog.NewLoggingPageWriter(writer, logger),
			}
		}

		deps.Dumper = dumper
		deps.Sitemap = wordpress.NewSitemap(client)
		deps.Fetcher = fetcher
		deps.Extractor = trafilatura.NewExtractor()
	}

	if cmd == "page" {
		base, err := siteBase(cli.Page.URL)
		if err != nil {
			return err
		}
		deps.Client = wordpress.NewClient(base)
		deps.Pipeline = extract.NewPipeline(goquery.NewListings(), extract.NewSections(), extract.NewLines())
		deps.Renderer = render.NewRenderer()
		deps.Fetcher = wphttp.NewFetcher()
		deps.Extractor = trafilatura.NewExtractor()
	}

	return kongCtx.Run(deps)
}

// dumpWriter routes page writes through the slog decorator while keeping
// the filesystem writer for media, index, and CSV output.
type dumpWriter struct {
	*fs.Writer
	pages wpextract.PageWriter
}

func (w *dumpWriter) WritePage(ctx context.Context, site string, page *wpextract.Page, rendered *wpextract.RenderedPage) error {
	return w.pages.WritePage(ctx, site, page, rendered)
}

func defaultDBPath() string {
	if path := os.Getenv("WPEXTRACT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "wpextract.db"
	}
	dir := filepath.Join(home, ".wpextract")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "wpextract.db")
}
