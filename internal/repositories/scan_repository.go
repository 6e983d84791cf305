package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusrfid/ledger/internal/models"
)

type ScanRepository struct {
	db *sql.DB
}

func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

func (r *ScanRepository) Insert(ctx context.Context, s *models.Scan) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO scans (tag_id, student_name, grade)
		VALUES ($1, $2, $3)
		RETURNING id, scan_time`,
		s.TagID, s.StudentName, s.Grade,
	).Scan(&s.ID, &s.ScanTime)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

// ListRecent returns up to limit scans, newest first.
func (r *ScanRepository) ListRecent(ctx context.Context, limit int) ([]models.Scan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tag_id, student_name, grade, scan_time
		FROM scans
		ORDER BY scan_time DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scans := []models.Scan{}
	for rows.Next() {
		var s models.Scan
		if err := rows.Scan(&s.ID, &s.TagID, &s.StudentName, &s.Grade, &s.ScanTime); err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}
