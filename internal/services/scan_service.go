package services

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"strings"

	"github.com/campusrfid/ledger/internal/config"
	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/repositories"
	"github.com/go-redis/redis/v8"
)

const (
	scanFeedKey      = "scan_feed"
	defaultScanLimit = 100
)

// ScanService records RFID tag reads from the gate readers.
type ScanService struct {
	scans    *repositories.ScanRepository
	roster   *Roster
	redis    *redis.Client
	feedSize int64
	pick     func(n int) int
}

func NewScanService(scans *repositories.ScanRepository, roster *Roster, redisClient *redis.Client, cfg config.ScanConfig) *ScanService {
	if roster == nil {
		roster = NewRoster(nil)
	}
	return &ScanService{
		scans:    scans,
		roster:   roster,
		redis:    redisClient,
		feedSize: cfg.FeedSize,
		pick:     rand.Intn,
	}
}

// RecordScan stores a read of tagID, resolving the student from the roster.
func (s *ScanService) RecordScan(ctx context.Context, tagID string) (*models.Scan, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return nil, ErrInvalidTag
	}

	student := s.roster.Lookup(tagID)
	scan := &models.Scan{
		TagID:       tagID,
		StudentName: student.Name,
		Grade:       student.Grade,
	}
	if err := s.scans.Insert(ctx, scan); err != nil {
		return nil, err
	}

	log.Printf("[SCAN] Tag %s read for %s", scan.TagID, scan.StudentName)
	s.publish(ctx, scan)
	return scan, nil
}

// ListScans returns the most recent scans, newest first.
func (s *ScanService) ListScans(ctx context.Context, limit int) ([]models.Scan, error) {
	if limit <= 0 {
		limit = defaultScanLimit
	}
	return s.scans.ListRecent(ctx, limit)
}

// SimulateScan records a read for a random registered tag.
func (s *ScanService) SimulateScan(ctx context.Context) (*models.Scan, error) {
	tags := s.roster.Tags()
	if len(tags) == 0 {
		return nil, ErrEmptyRoster
	}
	return s.RecordScan(ctx, tags[s.pick(len(tags))])
}

func (s *ScanService) publish(ctx context.Context, scan *models.Scan) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(scan)
	if err != nil {
		return
	}

	if err := s.redis.RPush(ctx, scanFeedKey, payload).Err(); err != nil {
		log.Printf("[SCAN] Failed to publish scan to feed: %v", err)
		return
	}
	if s.feedSize > 0 {
		if err := s.redis.LTrim(ctx, scanFeedKey, -s.feedSize, -1).Err(); err != nil {
			log.Printf("[SCAN] Failed to trim scan feed: %v", err)
		}
	}
}
