package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// HistoryStore manages analysis and message history records
type HistoryStore interface {
	SaveAnalysis(ctx context.Context, record *AnalysisRecord) error
	GetAnalysis(ctx context.Context, id uint) (*AnalysisRecord, error)
	ListAnalyses(ctx context.Context, limit int) ([]*AnalysisRecord, error)
	ListAnalysesForRepo(ctx context.Context, owner, repo string, limit int) ([]*AnalysisRecord, error)
	DeleteAnalysis(ctx context.Context, id uint) error

	SaveMessage(ctx context.Context, record *MessageRecord) error
	ListMessages(ctx context.Context, limit int) ([]*MessageRecord, error)
}

type historyStore struct {
	db *gorm.DB
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(db *gorm.DB) HistoryStore {
	return &historyStore{db: db}
}

// defaultListLimit bounds list queries when the caller passes no limit.
const defaultListLimit = 50

func (s *historyStore) SaveAnalysis(ctx context.Context, record *AnalysisRecord) error {
	if record.Owner == "" || record.Repo == "" {
		return ErrMissingRepository
	}
	if record.Review == "" {
		return ErrMissingReview
	}
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *historyStore) GetAnalysis(ctx context.Context, id uint) (*AnalysisRecord, error) {
	var record AnalysisRecord
	if err := s.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: analysis id=%d", ErrRecordNotFound, id)
		}
		return nil, err
	}
	return &record, nil
}

func (s *historyStore) ListAnalyses(ctx context.Context, limit int) ([]*AnalysisRecord, error) {
	var records []*AnalysisRecord
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *historyStore) ListAnalysesForRepo(ctx context.Context, owner, repo string, limit int) ([]*AnalysisRecord, error) {
	var records []*AnalysisRecord
	if err := s.db.WithContext(ctx).
		Where("owner = ? AND repo = ?", owner, repo).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *historyStore) DeleteAnalysis(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&AnalysisRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: analysis id=%d", ErrRecordNotFound, id)
	}
	return nil
}

func (s *historyStore) SaveMessage(ctx context.Context, record *MessageRecord) error {
	if record.Message == "" {
		return ErrMissingMessage
	}
	if record.Kind == "" {
		record.Kind = MessageKindDescription
	}
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *historyStore) ListMessages(ctx context.Context, limit int) ([]*MessageRecord, error) {
	var records []*MessageRecord
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
