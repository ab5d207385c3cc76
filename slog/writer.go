package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wpextract"
)

// Ensure LoggingPageWriter implements wpextract.PageWriter.
var _ wpextract.PageWriter = (*LoggingPageWriter)(nil)

// LoggingPageWriter wraps a PageWriter with per-page logging.
type LoggingPageWriter struct {
	next   wpextract.PageWriter
	logger *slog.Logger
}

// NewLoggingPageWriter creates a new LoggingPageWriter.
func NewLoggingPageWriter(next wpextract.PageWriter, logger *slog.Logger) *LoggingPageWriter {
	return &LoggingPageWriter{next: next, logger: logger}
}

// WritePage delegates to the wrapped writer and logs the operation.
func (w *LoggingPageWriter) WritePage(ctx context.Context, site string, page *wpextract.Page, rendered *wpextract.RenderedPage) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write page",
			"site", site,
			"file", page.FileName(".txt"),
			"businesses", len(rendered.Businesses),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WritePage(ctx, site, page, rendered)
}
