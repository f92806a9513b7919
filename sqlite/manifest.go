package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wprecover"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ wprecover.RecordWriter = (*ManifestService)(nil)
	_ wprecover.SkipLog      = (*ManifestService)(nil)
)

// ManifestService records the emitted records and skips of one run.
type ManifestService struct {
	db    *DB
	runID string
}

// NewManifestService creates a ManifestService for a new run with a
// generated run ID. Call StartRun before storing anything.
func NewManifestService(db *DB) *ManifestService {
	return &ManifestService{db: db, runID: uuid.New().String()}
}

// RunID returns the ID of the run being recorded.
func (s *ManifestService) RunID() string {
	return s.runID
}

// StartRun registers the run.
func (s *ManifestService) StartRun(ctx context.Context, archiveRoot string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, archive_root, started_at)
		VALUES (?, ?, ?)
	`, s.runID, archiveRoot, time.Now().UTC().Format(time.RFC3339))
	return err
}

// hashBody computes the xxHash of a body and returns it as hex.
func hashBody(body string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(body))
	return hex.EncodeToString(b)
}

// CreateRecords stores the records of a site and their attachments in a
// single transaction.
func (s *ManifestService) CreateRecords(ctx context.Context, site *wprecover.Site, records []*wprecover.PostRecord) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (run_id, id, site_url, type, title, guid, post_date, slug, source_path, body_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, s.runID, rec.ID, site.URL, string(rec.Type), rec.Title, rec.GUID, rec.Date, rec.Slug,
			rec.SourcePath, hashBody(rec.Body)); err != nil {
			return fmt.Errorf("insert record %d: %w", rec.ID, err)
		}

		for _, att := range rec.Media {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO attachments (run_id, id, parent_id, url, filename, title, post_date)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, s.runID, att.ID, att.ParentID, att.URL, att.Filename, att.Title, att.Date); err != nil {
				return fmt.Errorf("insert attachment %d: %w", att.ID, err)
			}
		}
	}

	return tx.Commit()
}

// RecordSkip stores a skip.
func (s *ManifestService) RecordSkip(ctx context.Context, skip wprecover.Skip) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO skips (run_id, path, reason, detail)
		VALUES (?, ?, ?, ?)
	`, s.runID, skip.Path, string(skip.Reason), skip.Detail)
	return err
}

// FindRecords returns the records stored for a run in insertion order,
// with their attachments. Bodies are not stored and are left empty.
func (s *ManifestService) FindRecords(ctx context.Context, runID string) ([]*wprecover.PostRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, guid, post_date, slug, source_path
		FROM records
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*wprecover.PostRecord
	byID := make(map[int][]*wprecover.PostRecord)
	for rows.Next() {
		var rec wprecover.PostRecord
		var postType string
		if err := rows.Scan(&rec.ID, &postType, &rec.Title, &rec.GUID, &rec.Date, &rec.Slug, &rec.SourcePath); err != nil {
			return nil, err
		}
		rec.Type = wprecover.PostType(postType)
		records = append(records, &rec)
		byID[rec.ID] = append(byID[rec.ID], &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	atts, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, url, filename, title, post_date
		FROM attachments
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer atts.Close()

	for atts.Next() {
		var att wprecover.MediaAttachment
		if err := atts.Scan(&att.ID, &att.ParentID, &att.URL, &att.Filename, &att.Title, &att.Date); err != nil {
			return nil, err
		}
		// Identities can collide across distinct bodies; attach to the first.
		if parents := byID[att.ParentID]; len(parents) > 0 {
			parents[0].Media = append(parents[0].Media, &att)
		}
	}
	return records, atts.Err()
}

// FindSkips returns the skips stored for a run in insertion order.
func (s *ManifestService) FindSkips(ctx context.Context, runID string) ([]wprecover.Skip, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, reason, detail
		FROM skips
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skips []wprecover.Skip
	for rows.Next() {
		var skip wprecover.Skip
		var reason string
		if err := rows.Scan(&skip.Path, &reason, &skip.Detail); err != nil {
			return nil, err
		}
		skip.Reason = wprecover.SkipReason(reason)
		skips = append(skips, skip)
	}
	return skips, rows.Err()
}
