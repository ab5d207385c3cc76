package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/wpextract"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wpextract.IndexService = (*IndexService)(nil)

// IndexService implements wpextract.IndexService using SQLite.
type IndexService struct {
	db *DB
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB) *IndexService {
	return &IndexService{db: db}
}

// EnsureSite returns the site with the given URL, creating it first if
// necessary. The name is updated when it differs from the stored one.
func (s *IndexService) EnsureSite(ctx context.Context, name, url string) (*wpextract.Site, error) {
	site := &wpextract.Site{Name: name, URL: url}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM sites WHERE url = ?
	`, url).Scan(&site.ID, &site.Name, &createdAt)

	if err == sql.ErrNoRows {
		site.ID = uuid.New().String()
		site.Name = name
		site.CreatedAt = time.Now().UTC()
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO sites (id, name, url, created_at) VALUES (?, ?, ?, ?)
		`, site.ID, site.Name, site.URL, site.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return nil, err
		}
		return site, nil
	}
	if err != nil {
		return nil, err
	}

	site.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	if name != "" && name != site.Name {
		if _, err := s.db.ExecContext(ctx, "UPDATE sites SET name = ? WHERE id = ?", name, site.ID); err != nil {
			return nil, err
		}
		site.Name = name
	}

	return site, nil
}

// UpsertPage inserts or updates the index entry for a page keyed by
// (site, type, slug). It reports whether the stored content hash changed.
func (s *IndexService) UpsertPage(ctx context.Context, rec *wpextract.PageRecord) (bool, error) {
	if err := rec.Validate(); err != nil {
		return false, err
	}

	var existingID, existingHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash FROM pages WHERE site_id = ? AND type = ? AND slug = ?
	`, rec.SiteID, rec.Type, rec.Slug).Scan(&existingID, &existingHash)

	rec.DumpedAt = time.Now().UTC()

	if err == sql.ErrNoRows {
		rec.ID = uuid.New().String()
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO pages (id, site_id, type, slug, title, source_url, content_hash, businesses, dumped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.SiteID, rec.Type, rec.Slug, rec.Title, rec.SourceURL,
			rec.ContentHash, rec.Businesses, rec.DumpedAt.Format(time.RFC3339))
		if err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	rec.ID = existingID
	_, err = s.db.ExecContext(ctx, `
		UPDATE pages
		SET title = ?, source_url = ?, content_hash = ?, businesses = ?, dumped_at = ?
		WHERE id = ?
	`, rec.Title, rec.SourceURL, rec.ContentHash, rec.Businesses,
		rec.DumpedAt.Format(time.RFC3339), rec.ID)
	if err != nil {
		return false, err
	}

	return existingHash != rec.ContentHash, nil
}

// FindPagesBySite returns all index entries for a site, ordered by type
// then slug.
func (s *IndexService) FindPagesBySite(ctx context.Context, siteID string) ([]*wpextract.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, site_id, type, slug, title, source_url, content_hash, businesses, dumped_at
		FROM pages
		WHERE site_id = ?
		ORDER BY type, slug
	`, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*wpextract.PageRecord
	for rows.Next() {
		var rec wpextract.PageRecord
		var dumpedAt string
		if err := rows.Scan(&rec.ID, &rec.SiteID, &rec.Type, &rec.Slug, &rec.Title,
			&rec.SourceURL, &rec.ContentHash, &rec.Businesses, &dumpedAt); err != nil {
			return nil, err
		}
		rec.DumpedAt, err = time.Parse(time.RFC3339, dumpedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dumped_at: %w", err)
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// SaveBusinesses replaces the stored business records for a page. Each
// business is stored as a JSON blob so schema changes in the record do
// not require migrations.
func (s *IndexService) SaveBusinesses(ctx context.Context, pageID string, businesses []*wpextract.Business) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM page_businesses WHERE page_id = ?", pageID); err != nil {
		return err
	}

	for i, b := range businesses {
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO page_businesses (id, page_id, position, data) VALUES (?, ?, ?, ?)
		`, uuid.New().String(), pageID, i, string(data))
		if err != nil {
			return err
		}
	}

	return nil
}

// FindBusinessesByPage returns the stored business records for a page in
// insertion order.
func (s *IndexService) FindBusinessesByPage(ctx context.Context, pageID string) ([]*wpextract.Business, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM page_businesses WHERE page_id = ? ORDER BY position
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []*wpextract.Business
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var b wpextract.Business
		if err := json.Unmarshal([]byte(data), &b); err != nil {
			return nil, err
		}
		businesses = append(businesses, &b)
	}

	return businesses, rows.Err()
}
